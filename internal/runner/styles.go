package runner

// StyleColors holds the hex colors of a trail style.
type StyleColors struct {
	Core     string // Ball and trail head
	Glow     string // Halo, death burst
	Fade     string // Trail tail
	Particle string
}

// TrailStyle is a cosmetic ball/trail palette. It has no gameplay effect.
type TrailStyle struct {
	ID     string
	Name   string
	Cost   int
	Colors StyleColors
}

// DefaultStyleID is always unlocked.
const DefaultStyleID = "default"

var trailStyles = []TrailStyle{
	{
		ID:     DefaultStyleID,
		Name:   "Neon Cyan",
		Cost:   0,
		Colors: StyleColors{Core: "#ffffff", Glow: "#00ffff", Fade: "#8b5cf6", Particle: "#22d3ee"},
	},
	{
		ID:     "plasma",
		Name:   "Plasma Red",
		Cost:   100,
		Colors: StyleColors{Core: "#ffffff", Glow: "#ff0055", Fade: "#fbbf24", Particle: "#ff0055"},
	},
	{
		ID:     "void",
		Name:   "Void Purple",
		Cost:   250,
		Colors: StyleColors{Core: "#e9d5ff", Glow: "#7c3aed", Fade: "#4c1d95", Particle: "#a855f7"},
	},
	{
		ID:     "midas",
		Name:   "Midas Gold",
		Cost:   500,
		Colors: StyleColors{Core: "#fffbeb", Glow: "#fbbf24", Fade: "#d97706", Particle: "#fcd34d"},
	},
	{
		ID:     "matrix",
		Name:   "The Source",
		Cost:   1000,
		Colors: StyleColors{Core: "#f0fdf4", Glow: "#22c55e", Fade: "#14532d", Particle: "#4ade80"},
	},
	{
		ID:     "frost",
		Name:   "Deep Frost",
		Cost:   750,
		Colors: StyleColors{Core: "#f0f9ff", Glow: "#38bdf8", Fade: "#0ea5e9", Particle: "#7dd3fc"},
	},
}

// Styles returns a copy of the trail style catalog in display order.
func Styles() []TrailStyle {
	out := make([]TrailStyle, len(trailStyles))
	copy(out, trailStyles)
	return out
}

// StyleByID looks up a style. The second result is false for unknown IDs.
func StyleByID(id string) (TrailStyle, bool) {
	for _, s := range trailStyles {
		if s.ID == id {
			return s, true
		}
	}
	return TrailStyle{}, false
}

// DefaultStyle returns the free starting style.
func DefaultStyle() TrailStyle {
	return trailStyles[0]
}
