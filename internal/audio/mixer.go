package audio

import (
	"encoding/binary"
	"io"
	"sync/atomic"
	"time"
)

const (
	bufferDuration = 50 * time.Millisecond
	bufferSamples  = 44100 * 50 / 1000
	bytesPerFrame  = 4 // s16le stereo
)

// activeCue tracks a playing cue instance
type activeCue struct {
	buffer floatBuffer
	pos    int
}

// mixer sums active cues and writes PCM to output on a fixed cadence.
type mixer struct {
	output io.Writer
	cache  *cueCache
	gain   float64

	queue    chan Cue
	stopChan chan struct{}
	stopped  atomic.Bool
	errChan  chan error

	// Accessed only by the mix goroutine
	active []activeCue

	played  atomic.Uint64
	dropped atomic.Uint64
}

func newMixer(out io.Writer, cache *cueCache, gain float64) *mixer {
	return &mixer{
		output:   out,
		cache:    cache,
		gain:     gain,
		queue:    make(chan Cue, 32),
		stopChan: make(chan struct{}),
		errChan:  make(chan error, 1),
		active:   make([]activeCue, 0, 8),
	}
}

func (m *mixer) start() {
	go m.loop()
}

func (m *mixer) stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// play queues a cue without blocking; a full queue drops it.
func (m *mixer) play(c Cue) {
	if m.stopped.Load() {
		return
	}
	select {
	case m.queue <- c:
	default:
		m.dropped.Add(1)
	}
}

func (m *mixer) loop() {
	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	mixBuf := make([]float64, bufferSamples)
	out := make([]byte, bufferSamples*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case c := <-m.queue:
			if buf := m.cache.get(c); len(buf) > 0 {
				m.active = append(m.active, activeCue{buffer: buf})
				m.played.Add(1)
			}

		case <-ticker.C:
			for i := range mixBuf {
				mixBuf[i] = 0
			}
			m.active = m.mixActive(mixBuf)
			floatToBytes(mixBuf, m.gain, out)

			if _, err := m.output.Write(out); err != nil {
				select {
				case m.errChan <- err:
				default:
				}
				return
			}
		}
	}
}

// mixActive adds every active cue into buf and returns the ones still playing
func (m *mixer) mixActive(buf []float64) []activeCue {
	remaining := m.active[:0]
	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < len(buf) && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos]
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}
	return remaining
}

// floatToBytes converts mono floats to interleaved stereo int16 LE bytes,
// soft limiting before the hard clip.
func floatToBytes(in []float64, gain float64, out []byte) {
	for i, v := range in {
		v *= gain
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}

		s := uint16(int16(v * 32767))
		idx := i * bytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], s)
		binary.LittleEndian.PutUint16(out[idx+2:], s)
	}
}
