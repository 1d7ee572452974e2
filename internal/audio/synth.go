package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	sampleRate    = beep.SampleRate(44100)
	maxCueSamples = 44100 * 2
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// sweep is an oscillator whose frequency moves exponentially from one
// value to another over its duration.
type sweep struct {
	from, to float64
	wave     WaveType
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newSweep(wave WaveType, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, wave: wave, total: rate.N(d), rate: rate}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := o.from
		if o.to > 0 && o.from > 0 && o.to != o.from {
			freq = o.from * math.Pow(o.to/o.from, float64(o.position)/float64(o.total))
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// envelope applies a linear attack and an exponential-looking release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		releaseStart := e.total - e.release
		if e.position >= releaseStart && e.release > 0 {
			r := float64(e.total-e.position) / float64(e.release)
			vol *= r * r
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. Zero gain is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain), Silent: false}
}

// tone is a single swept note with a short attack and a release over
// most of its length.
func tone(wave WaveType, from, to float64, d time.Duration, gain float64) beep.Streamer {
	osc := newSweep(wave, from, to, d, sampleRate)
	shaped := newEnvelope(osc, d, 5*time.Millisecond, d*4/5, sampleRate)
	return newVolume(shaped, gain)
}

// cueStreamer builds the streamer for a cue.
func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueSessionStart:
		osc := newSweep(WaveSine, 220, 880, 300*time.Millisecond, sampleRate)
		return newEnvelope(osc, 300*time.Millisecond, 50*time.Millisecond, 250*time.Millisecond, sampleRate)
	case CueCrash:
		return beep.Mix(
			tone(WaveSaw, 100, 20, 500*time.Millisecond, 0.8),
			tone(WaveNoise, 0, 0, 200*time.Millisecond, 0.2),
		)
	case CueScoreMilestone:
		return tone(WaveSine, 800, 800, 100*time.Millisecond, 0.3)
	case CueHighScoreMilestone:
		return beep.Seq(
			tone(WaveSquare, 440, 440, 200*time.Millisecond, 0.5),
			tone(WaveSquare, 554, 554, 200*time.Millisecond, 0.5),
			tone(WaveSquare, 659, 659, 200*time.Millisecond, 0.5),
		)
	case CuePickup:
		return tone(WaveTriangle, 1200, 1800, 150*time.Millisecond, 0.4)
	case CueUIClick:
		return tone(WaveTriangle, 600, 300, 100*time.Millisecond, 0.15)
	case CueUIHover:
		return tone(WaveSine, 800, 800, 30*time.Millisecond, 0.05)
	default:
		return nil
	}
}

// render drains a streamer into a mono buffer (left channel).
func render(s beep.Streamer) floatBuffer {
	if s == nil {
		return nil
	}
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, chunk[i][0])
		}
		if !ok || n == 0 || len(out) > maxCueSamples {
			break
		}
	}
	return out
}

// synthesize renders the cue to a unity-gain mono buffer.
func synthesize(c Cue) floatBuffer {
	return render(cueStreamer(c))
}
