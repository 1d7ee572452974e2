package audio

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
)

// DefaultGain is the master gain applied to every cue.
const DefaultGain = 0.3

// Player is a Sink backed by a system audio player.
// It is safe for concurrent use.
type Player struct {
	cache *cueCache
	mixer *mixer
	gain  float64

	backend *Backend
	cmd     *exec.Cmd
	stdin   io.WriteCloser

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool

	wg sync.WaitGroup
}

// NewPlayer creates a stopped player with the given master gain.
func NewPlayer(gain float64) *Player {
	if gain <= 0 || gain > 1 {
		gain = DefaultGain
	}
	return &Player{cache: newCueCache(), gain: gain}
}

// Start detects a backend and launches it with the mixer.
// A missing backend puts the player in silent mode and is not an error.
func (p *Player) Start() error {
	if p.running.Load() {
		return fmt.Errorf("audio: player already running")
	}

	backend, err := DetectBackend()
	if err != nil {
		p.silent.Store(true)
		p.running.Store(true)
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.silent.Store(true)
		p.running.Store(true)
		return fmt.Errorf("audio: %s stdin: %w", backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		p.silent.Store(true)
		p.running.Store(true)
		return fmt.Errorf("audio: start %s: %w", backend.Name, err)
	}

	p.backend = backend
	p.cmd = cmd
	p.stdin = stdin

	p.wg.Add(1)
	go p.monitorProcess()

	p.startMixer(stdin)
	return nil
}

// StartWriter runs the mixer against w instead of a system player.
func (p *Player) StartWriter(w io.Writer) error {
	if p.running.Load() {
		return fmt.Errorf("audio: player already running")
	}
	p.startMixer(w)
	return nil
}

func (p *Player) startMixer(w io.Writer) {
	p.cache.preload()
	p.mixer = newMixer(w, p.cache, p.gain)
	p.mixer.start()

	p.wg.Add(1)
	go p.monitorMixer()

	p.running.Store(true)
}

// monitorProcess watches for subprocess exit
func (p *Player) monitorProcess() {
	defer p.wg.Done()
	if err := p.cmd.Wait(); err != nil && p.running.Load() {
		p.silent.Store(true)
	}
}

// monitorMixer watches for pipe errors
func (p *Player) monitorMixer() {
	defer p.wg.Done()
	select {
	case <-p.mixer.errChan:
		p.silent.Store(true)
	case <-p.mixer.stopChan:
	}
}

// Close stops the mixer and the backend process.
func (p *Player) Close() error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	if p.mixer != nil {
		p.mixer.stop()
	}
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.wg.Wait()
	return nil
}

// Play queues a cue. It never blocks.
func (p *Player) Play(c Cue) {
	if !p.running.Load() || p.muted.Load() || p.silent.Load() || p.mixer == nil {
		return
	}
	p.mixer.play(c)
}

// SetMuted implements Sink.
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Silent reports whether the player has no working output.
func (p *Player) Silent() bool {
	return p.silent.Load()
}

// BackendName returns the detected player, or "" in silent mode.
func (p *Player) BackendName() string {
	if p.backend == nil {
		return ""
	}
	return p.backend.Name
}

// Stats returns played and dropped cue counts.
func (p *Player) Stats() (played, dropped uint64) {
	if p.mixer == nil {
		return 0, 0
	}
	return p.mixer.played.Load(), p.mixer.dropped.Load()
}
