package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-zigzag/internal/core"
	"github.com/vovakirdan/neon-zigzag/internal/runner"
)

// Fixed palette for things the trail style does not color.
const (
	colorCoin     core.Color = "#fbbf24"
	colorShield   core.Color = "#38bdf8"
	colorMagnet   core.Color = "#d946ef"
	colorObstacle core.Color = "#ff0055"
	colorNearMiss core.Color = "#fef08a"
	colorRespawn  core.Color = "#ffffff"
	colorDustNear core.Color = "244"
	colorDustFar  core.Color = "238"
	colorDim      core.Color = "241"
	colorTitle    core.Color = "229"
)

var tintColors = map[runner.Tint]core.Color{
	runner.TintCoin:     colorCoin,
	runner.TintShield:   colorShield,
	runner.TintMagnet:   colorMagnet,
	runner.TintObstacle: colorObstacle,
	runner.TintNearMiss: colorNearMiss,
	runner.TintScore:    colorTitle,
	runner.TintRespawn:  colorRespawn,
}

var itemGlyphs = map[runner.ItemKind]struct {
	r rune
	c core.Color
}{
	runner.ItemCoin:     {'$', colorCoin},
	runner.ItemShield:   {'◆', colorShield},
	runner.ItemMagnet:   {'∪', colorMagnet},
	runner.ItemObstacle: {'✖', colorObstacle},
}

// painter projects world snapshots onto a cell screen. It implements
// runner.Renderer.
type painter struct {
	screen *core.Screen
	cellW  float64 // World units per column
	cellH  float64 // World units per row
	viewX  float64 // World x of the leftmost column
	blink  bool    // Alternates every few frames for cosmetic pulses
}

var _ runner.Renderer = (*painter)(nil)

func (p *painter) col(x float64) int { return int(math.Floor((x - p.viewX) / p.cellW)) }

// Render draws one frame. Later layers overwrite earlier ones.
func (p *painter) Render(s runner.Snapshot) {
	p.screen.Clear()
	p.drawDust(s)

	if s.State == runner.StateMenu || len(s.Path) < 2 {
		return
	}

	p.drawCorridor(s)
	p.drawItems(s)
	p.drawParticles(s)
	p.drawBall(s)
}

func (p *painter) drawDust(s runner.Snapshot) {
	for _, d := range s.Dust {
		c := colorDustFar
		if d.Alpha > 0.3 {
			c = colorDustNear
		}
		p.screen.SetColored(p.col(d.Pos.X()), int(d.Pos.Y()/p.cellH), '·', c)
	}
}

// drawCorridor traces both corridor walls row by row, filling the columns
// a wall crosses within the row so diagonal walls stay connected.
func (p *painter) drawCorridor(s runner.Snapshot) {
	half := s.PathWidth / 2
	glow := core.Color(s.Style.Colors.Glow)

	for row := 0; row < p.screen.Height(); row++ {
		top := s.CameraY + float64(row)*p.cellH
		bottom := top + p.cellH

		xt, slopeT, okT := centerAt(s.Path, top)
		xb, slopeB, okB := centerAt(s.Path, bottom)
		if !okT && !okB {
			continue
		}
		if !okT {
			xt, slopeT = xb, slopeB
		}
		if !okB {
			xb = xt
		}

		glyph := wallGlyph((slopeT+slopeB)/2, p.cellW, p.cellH)
		for _, off := range []float64{-half, half} {
			from, to := p.col(xt+off), p.col(xb+off)
			if from > to {
				from, to = to, from
			}
			for c := from; c <= to; c++ {
				p.screen.SetColored(c, row, glyph, glow)
			}
		}
	}
}

// centerAt returns the centerline x at world y and the segment's dx/dy.
func centerAt(path []runner.Vec2, y float64) (x, slope float64, ok bool) {
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		hi, lo := a.Y(), b.Y()
		if lo > hi {
			hi, lo = lo, hi
		}
		if y > hi || y < lo {
			continue
		}
		dy := b.Y() - a.Y()
		if dy == 0 {
			return a.X(), 0, true
		}
		return core.Lerp(a.X(), b.X(), (y-a.Y())/dy), (b.X() - a.X()) / dy, true
	}
	return 0, 0, false
}

// wallGlyph picks a line character for a wall with the given dx/dy.
// Rows are taller than columns are wide, so slopes are compared in cells.
func wallGlyph(slope, cellW, cellH float64) rune {
	cells := slope * cellH / cellW
	switch {
	case math.Abs(cells) < 0.5:
		return '│'
	case math.Abs(cells) > 3:
		return '─'
	case cells < 0:
		return '/'
	default:
		return '\\'
	}
}

func (p *painter) drawItems(s runner.Snapshot) {
	for _, it := range s.Items {
		if it.Collected {
			continue
		}
		g := itemGlyphs[it.Kind]
		c := g.c
		// Power-ups pulse with their animation phase
		if it.Kind != runner.ItemObstacle && math.Sin(it.Phase) < -0.6 {
			c = colorDim
		}
		p.screen.SetColored(p.col(it.Pos.X()), p.row(s, it.Pos.Y()), g.r, c)
	}
}

func (p *painter) drawParticles(s runner.Snapshot) {
	for _, pt := range s.Particles {
		c, ok := tintColors[pt.Tint]
		if !ok {
			c = core.Color(s.Style.Colors.Glow)
		}
		r := '·'
		switch {
		case pt.Life > 0.6:
			r = '*'
		case pt.Life > 0.3:
			r = '+'
		}
		p.screen.SetColored(p.col(pt.Pos.X()), p.row(s, pt.Pos.Y()), r, c)
	}
}

func (p *painter) drawBall(s runner.Snapshot) {
	b := s.Ball
	if !b.Visible {
		return
	}

	fade := core.Color(s.Style.Colors.Fade)
	glow := core.Color(s.Style.Colors.Glow)
	for i, pt := range b.Trail {
		c := fade
		if i >= len(b.Trail)*2/3 {
			c = glow
		}
		p.screen.SetColored(p.col(pt.X()), p.row(s, pt.Y()), '•', c)
	}

	glyph, c := '●', core.Color(s.Style.Colors.Core)
	if b.Invulnerable {
		glyph, c = '◉', colorShield
	}
	if s.Phase == runner.PhaseWaiting && p.blink {
		c = colorDim
	}
	p.screen.SetColored(p.col(b.Pos.X()), p.row(s, b.Pos.Y()), glyph, c)
}

func (p *painter) row(s runner.Snapshot, y float64) int {
	return int(math.Floor((y - s.CameraY) / p.cellH))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(startColor))
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
