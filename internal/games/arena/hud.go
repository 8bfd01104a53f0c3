package arena

import (
	"strconv"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// Playfield fits the arena below the HUD and inside a border, draws the
// border and returns the viewport for the interior.
func Playfield(dst *core.Screen, world core.Bounds, border core.Color) core.Viewport {
	area := core.NewRect(1, HUDRows+1, dst.Width()-2, dst.Height()-HUDRows-2)
	v := core.FitViewport(world, area)
	s := v.Screen
	dst.DrawBox(core.NewRect(s.X-1, s.Y-1, s.W+2, s.H+2), border)
	return v
}

// DrawHUD writes left-aligned and right-aligned status text on the top row.
func DrawHUD(dst *core.Screen, left, right string) {
	dst.DrawTextColor(1, 0, left, core.ColorWhite)
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)
}

// DrawPopups draws the live capture labels centered on their positions.
func DrawPopups(dst *core.Screen, v core.Viewport, popups []Popup) {
	for _, p := range popups {
		x, y, ok := v.Project(p.Pos)
		if !ok {
			continue
		}
		dst.DrawTextColor(x-len(p.Text)/2, y-1, p.Text, core.ColorBrightYellow)
	}
}

// DrawStatus overlays the round status message, if the status has one.
func DrawStatus(dst *core.Screen, st sim.Stats, ready, won, lost string) {
	switch st.Status {
	case sim.StatusReady:
		dst.DrawMessage(ready, "move or press space to start", core.ColorCyan)
	case sim.StatusPaused:
		dst.DrawMessage("PAUSED", "press p to resume", core.ColorYellow)
	case sim.StatusWon:
		dst.DrawMessage(won, "score "+strconv.Itoa(st.Score)+" | r to restart", core.ColorGreen)
	case sim.StatusLost:
		dst.DrawMessage(lost, "score "+strconv.Itoa(st.Score)+" | r to restart", core.ColorRed)
	}
}
