package core

// CirclesOverlap reports whether two circles touch or overlap.
// Squared distances keep the square root off the per-frame hot path.
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	r := ra + rb
	return a.DistSq(b) <= r*r
}

// CirclesOverlapSlack is CirclesOverlap with an extra tolerance margin
// added to the combined radius.
func CirclesOverlapSlack(a Vec2, ra float64, b Vec2, rb float64, slack float64) bool {
	r := ra + rb + slack
	return a.DistSq(b) <= r*r
}

// PointInCircle reports whether p is within r of c.
func PointInCircle(p, c Vec2, r float64) bool {
	return p.DistSq(c) <= r*r
}

// PointInRect reports whether p is inside b.
func PointInRect(p Vec2, b Bounds) bool {
	return b.Contains(p)
}

// CircleInRect reports whether the whole circle lies within b.
func CircleInRect(c Vec2, r float64, b Bounds) bool {
	return c.X-r >= b.MinX && c.X+r <= b.MaxX && c.Y-r >= b.MinY && c.Y+r <= b.MaxY
}

// CircleIntersectsRect reports whether any part of the circle is inside b.
func CircleIntersectsRect(c Vec2, r float64, b Bounds) bool {
	closest := b.ClampPoint(c)
	return c.DistSq(closest) <= r*r
}
