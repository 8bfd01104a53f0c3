package core

// Bounds is a float axis-aligned arena rectangle.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds returns a [0,w]x[0,h] arena.
func NewBounds(w, h float64) Bounds {
	return Bounds{MaxX: w, MaxY: h}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the arena.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Inset shrinks the bounds by d on every side. If the result would be
// inverted it collapses onto the center line instead.
func (b Bounds) Inset(d float64) Bounds {
	out := Bounds{MinX: b.MinX + d, MinY: b.MinY + d, MaxX: b.MaxX - d, MaxY: b.MaxY - d}
	if out.MinX > out.MaxX {
		c := (b.MinX + b.MaxX) / 2
		out.MinX, out.MaxX = c, c
	}
	if out.MinY > out.MaxY {
		c := (b.MinY + b.MaxY) / 2
		out.MinY, out.MaxY = c, c
	}
	return out
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ClampPoint returns the closest point to p within b.
func (b Bounds) ClampPoint(p Vec2) Vec2 {
	return Vec2{X: ClampF(p.X, b.MinX, b.MaxX), Y: ClampF(p.Y, b.MinY, b.MaxY)}
}

// PerimeterPoint walks the edge clockwise from the top-left corner.
// t is taken modulo 1, so t=0.25 on a square lands on the top-right corner.
func (b Bounds) PerimeterPoint(t float64) Vec2 {
	t -= float64(int(t))
	if t < 0 {
		t++
	}
	w, h := b.Width(), b.Height()
	d := t * 2 * (w + h)
	switch {
	case d < w:
		return Vec2{X: b.MinX + d, Y: b.MinY}
	case d < w+h:
		return Vec2{X: b.MaxX, Y: b.MinY + (d - w)}
	case d < 2*w+h:
		return Vec2{X: b.MaxX - (d - w - h), Y: b.MaxY}
	default:
		return Vec2{X: b.MinX, Y: b.MaxY - (d - 2*w - h)}
	}
}
