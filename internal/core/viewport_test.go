package core

import (
	"strings"
	"testing"
)

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name  string
		world Bounds
		area  Rect
		want  Rect
	}{
		{"exact fit", NewBounds(80, 40), NewRect(0, 0, 80, 20), NewRect(0, 0, 80, 20)},
		{"wide area centers horizontally", NewBounds(28, 31), NewRect(0, 2, 80, 20), NewRect(22, 2, 36, 20)},
		{"tall area centers vertically", NewBounds(80, 40), NewRect(0, 0, 40, 40), NewRect(0, 15, 40, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitViewport(tt.world, tt.area).Screen; got != tt.want {
				t.Errorf("Screen = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewportProject(t *testing.T) {
	v := FitViewport(NewBounds(80, 40), NewRect(0, 0, 80, 20))

	tests := []struct {
		p      Vec2
		x, y   int
		inside bool
	}{
		{V2(0, 0), 0, 0, true},
		{V2(40, 20), 40, 10, true},
		{V2(80, 40), 79, 19, true},
		{V2(-1, 5), 0, 2, false},
	}
	for _, tt := range tests {
		x, y, ok := v.Project(tt.p)
		if x != tt.x || y != tt.y || ok != tt.inside {
			t.Errorf("Project(%v) = (%d, %d, %v), want (%d, %d, %v)", tt.p, x, y, ok, tt.x, tt.y, tt.inside)
		}
	}

	if c := v.Center(0, 0); c != V2(0.5, 1) {
		t.Errorf("Center(0, 0) = %v", c)
	}
	x, y, _ := v.Project(v.Center(17, 9))
	if x != 17 || y != 9 {
		t.Errorf("Center does not round-trip: (%d, %d)", x, y)
	}
}

func TestDrawMessage(t *testing.T) {
	s := NewScreen(30, 9)
	s.DrawText(0, 4, strings.Repeat("#", 30))
	s.DrawMessage("PAUSED", "press p", ColorYellow)

	if !strings.Contains(s.Row(3), "PAUSED") || !strings.Contains(s.Row(4), "press p") {
		t.Errorf("message not drawn:\n%s", s.String())
	}
	if inner := []rune(s.Row(4))[10:19]; strings.ContainsRune(string(inner), '#') {
		t.Error("message box should clear what is underneath")
	}
}
