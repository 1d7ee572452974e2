// Package audio plays short synthesized cues for game events.
//
// Cues are synthesized once with beep, cached as mono float buffers and
// mixed into a raw PCM stream piped to a system player (pacat, pw-cat or
// aplay). Without a player the package runs silently.
package audio

// Cue names a sound effect from the closed set the game emits.
type Cue int

const (
	CueSessionStart Cue = iota
	CueCrash
	CueScoreMilestone
	CueHighScoreMilestone
	CuePickup
	CueUIClick
	CueUIHover
	cueCount
)

var cueNames = [cueCount]string{
	CueSessionStart:       "start",
	CueCrash:              "crash",
	CueScoreMilestone:     "score",
	CueHighScoreMilestone: "highscore",
	CuePickup:             "pickup",
	CueUIClick:            "ui_click",
	CueUIHover:            "ui_hover",
}

// String returns the cue's short name.
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Cues returns every cue in declaration order.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

// Sink receives fire-and-forget cues.
type Sink interface {
	Play(c Cue)
	SetMuted(muted bool)
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) Play(Cue)      {}
func (Nop) SetMuted(bool) {}
