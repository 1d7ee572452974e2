package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a world-space point or vector. World y grows downward; the
// corridor advances toward negative y.
type Vec2 = mgl64.Vec2

// closestOnSegment returns the point of segment ab nearest to p using a
// clamped parametric projection. A zero-length segment yields a.
func closestOnSegment(a, b, p Vec2) Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// perpendicular returns the unit normal (-dy, dx) of dir, or (1, 0) for a
// zero vector.
func perpendicular(dir Vec2) Vec2 {
	l := dir.Len()
	if l == 0 {
		return Vec2{1, 0}
	}
	return Vec2{-dir.Y() / l, dir.X() / l}
}

// reflect mirrors v about the plane with unit normal n.
func reflect(v, n Vec2) Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
