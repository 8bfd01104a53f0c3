package core

import "math"

// Viewport maps arena coordinates onto a rectangle of screen cells.
type Viewport struct {
	World  Bounds
	Screen Rect
}

// FitViewport places the arena inside area, keeping its aspect ratio
// with terminal cells counted as twice as tall as they are wide.
func FitViewport(world Bounds, area Rect) Viewport {
	ww, wh := world.Width(), world.Height()
	if ww <= 0 || wh <= 0 || area.W <= 0 || area.H <= 0 {
		return Viewport{World: world, Screen: area}
	}
	scale := math.Min(float64(area.W)/ww, 2*float64(area.H)/wh)
	w := Clamp(int(math.Round(ww*scale)), 1, area.W)
	h := Clamp(int(math.Round(wh*scale/2)), 1, area.H)
	return Viewport{
		World:  world,
		Screen: NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h),
	}
}

// Project returns the cell covering p. ok is false outside the viewport.
func (v Viewport) Project(p Vec2) (x, y int, ok bool) {
	ww, wh := v.World.Width(), v.World.Height()
	if ww <= 0 || wh <= 0 {
		return 0, 0, false
	}
	fx := (p.X - v.World.MinX) / ww
	fy := (p.Y - v.World.MinY) / wh
	x = v.Screen.X + Clamp(int(fx*float64(v.Screen.W)), 0, v.Screen.W-1)
	y = v.Screen.Y + Clamp(int(fy*float64(v.Screen.H)), 0, v.Screen.H-1)
	return x, y, fx >= 0 && fx <= 1 && fy >= 0 && fy <= 1
}

// Center returns the arena point at the middle of cell (x, y).
func (v Viewport) Center(x, y int) Vec2 {
	return Vec2{
		X: v.World.MinX + (float64(x-v.Screen.X)+0.5)/float64(v.Screen.W)*v.World.Width(),
		Y: v.World.MinY + (float64(y-v.Screen.Y)+0.5)/float64(v.Screen.H)*v.World.Height(),
	}
}

// DrawMessage draws a framed two-line message in the middle of the screen.
func (s *Screen) DrawMessage(title, subtitle string, c Color) {
	boxW := Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 4
	if subtitle == "" {
		boxH = 3
	}
	r := NewRect((s.width-boxW)/2, (s.height-boxH)/2, boxW, boxH)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColor(x, y, ' ', ColorDefault)
		}
	}
	s.DrawBox(r, c)
	s.DrawTextCentered(r.Y+1, title, c)
	if subtitle != "" {
		s.DrawTextCentered(r.Y+2, subtitle, ColorDefault)
	}
}
