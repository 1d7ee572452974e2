package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestCueNames(t *testing.T) {
	want := map[Cue]string{
		CueSessionStart:       "start",
		CueCrash:              "crash",
		CueScoreMilestone:     "score",
		CueHighScoreMilestone: "highscore",
		CuePickup:             "pickup",
		CueUIClick:            "ui_click",
		CueUIHover:            "ui_hover",
	}
	for c, name := range want {
		if c.String() != name {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), name)
		}
	}
	if Cue(99).String() != "unknown" {
		t.Error("out of range cue should be unknown")
	}
	if len(Cues()) != len(want) {
		t.Errorf("Cues() = %d entries, want %d", len(Cues()), len(want))
	}
}

func TestSynthesizeAllCues(t *testing.T) {
	for _, c := range Cues() {
		t.Run(c.String(), func(t *testing.T) {
			buf := synthesize(c)
			if len(buf) == 0 {
				t.Fatal("empty buffer")
			}
			if len(buf) > maxCueSamples+512 {
				t.Errorf("buffer too long: %d samples", len(buf))
			}
			peak := 0.0
			for _, v := range buf {
				if math.IsNaN(v) {
					t.Fatal("NaN sample")
				}
				peak = math.Max(peak, math.Abs(v))
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
			if peak > 1.5 {
				t.Errorf("peak %v exceeds headroom", peak)
			}
		})
	}
}

func TestSynthesizeDurations(t *testing.T) {
	tests := []struct {
		cue  Cue
		want time.Duration
	}{
		{CueUIHover, 30 * time.Millisecond},
		{CuePickup, 150 * time.Millisecond},
		{CueSessionStart, 300 * time.Millisecond},
		{CueCrash, 500 * time.Millisecond},
		{CueHighScoreMilestone, 600 * time.Millisecond},
	}
	for _, tt := range tests {
		got := len(synthesize(tt.cue))
		want := sampleRate.N(tt.want)
		if got < want-3 || got > want+3 {
			t.Errorf("%s: %d samples, want about %d", tt.cue, got, want)
		}
	}
}

func TestCacheReturnsSameBuffer(t *testing.T) {
	c := newCueCache()
	a := c.get(CuePickup)
	b := c.get(CuePickup)
	if len(a) == 0 || &a[0] != &b[0] {
		t.Error("cache should return the stored buffer")
	}
	if c.get(Cue(-1)) != nil || c.get(cueCount) != nil {
		t.Error("invalid cues should yield nil")
	}
}

func TestFloatToBytesClips(t *testing.T) {
	in := []float64{0, 1, -1, 10, -10}
	out := make([]byte, len(in)*bytesPerFrame)
	floatToBytes(in, 1.0, out)

	for i := range in {
		l := int16(binary.LittleEndian.Uint16(out[i*4:]))
		r := int16(binary.LittleEndian.Uint16(out[i*4+2:]))
		if l != r {
			t.Errorf("sample %d: channels differ %d/%d", i, l, r)
		}
	}
	if v := int16(binary.LittleEndian.Uint16(out[0:])); v != 0 {
		t.Errorf("zero sample = %d", v)
	}
	if v := int16(binary.LittleEndian.Uint16(out[12:])); v <= 0 || v > 32767 {
		t.Errorf("clipped positive = %d", v)
	}
	if v := int16(binary.LittleEndian.Uint16(out[16:])); v >= 0 || v < -32767 {
		t.Errorf("clipped negative = %d", v)
	}
}

func TestMixActiveDropsFinished(t *testing.T) {
	m := newMixer(&bytes.Buffer{}, newCueCache(), 1)
	m.active = []activeCue{
		{buffer: floatBuffer{0.5, 0.5}},
		{buffer: floatBuffer{0.25, 0.25, 0.25, 0.25, 0.25}},
	}
	buf := make([]float64, 3)
	m.active = m.mixActive(buf)

	if len(m.active) != 1 {
		t.Fatalf("active = %d, want 1", len(m.active))
	}
	if buf[0] != 0.75 || buf[2] != 0.25 {
		t.Errorf("mixed = %v", buf)
	}
	if m.active[0].pos != 3 {
		t.Errorf("pos = %d, want 3", m.active[0].pos)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) nonZero() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range b.buf.Bytes() {
		if v != 0 {
			return true
		}
	}
	return false
}

func TestPlayerWritesPCM(t *testing.T) {
	out := &syncBuffer{}
	p := NewPlayer(0.5)
	if err := p.StartWriter(out); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.Play(CuePickup)

	deadline := time.Now().Add(3 * time.Second)
	for !out.nonZero() {
		if time.Now().After(deadline) {
			t.Fatal("no audio written")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if played, _ := p.Stats(); played != 1 {
		t.Errorf("played = %d, want 1", played)
	}
}

func TestPlayerMuted(t *testing.T) {
	p := NewPlayer(0)
	if err := p.StartWriter(&syncBuffer{}); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.SetMuted(true)
	if !p.Muted() {
		t.Fatal("Muted() = false")
	}
	p.Play(CueCrash)
	time.Sleep(20 * time.Millisecond)
	if played, _ := p.Stats(); played != 0 {
		t.Errorf("muted player played %d cues", played)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestPlayerSilentOnWriteError(t *testing.T) {
	p := NewPlayer(0)
	if err := p.StartWriter(failWriter{}); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	deadline := time.Now().Add(3 * time.Second)
	for !p.Silent() {
		if time.Now().After(deadline) {
			t.Fatal("player did not enter silent mode")
		}
		time.Sleep(10 * time.Millisecond)
	}
	p.Play(CuePickup) // must not block or panic
}

func TestStartWithoutBackendIsSilent(t *testing.T) {
	old := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = old }()

	p := NewPlayer(0)
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	if !p.Silent() {
		t.Error("expected silent mode")
	}
	if p.BackendName() != "" {
		t.Errorf("BackendName = %q", p.BackendName())
	}
	p.Play(CueCrash)
}

func TestDetectBackendPriority(t *testing.T) {
	old := lookPath
	defer func() { lookPath = old }()

	lookPath = func(name string) (string, error) {
		if name == "aplay" || name == "pw-cat" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	b, err := DetectBackend()
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "pw-cat" || b.Path != "/usr/bin/pw-cat" {
		t.Errorf("backend = %+v", b)
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if _, err := DetectBackend(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("err = %v, want ErrNoBackend", err)
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	s.Play(CueCrash)
	s.SetMuted(true)
}
