package marcopolo

import (
	"fmt"
	"math"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Render characters.
const (
	SwimmerChar = '@'
	SharkChar   = '▲'
	FogChar     = '░'
	RippleChar  = '~'
	CallChar    = '∙'
)

// Render draws the pool as the swimmer sees it: clear water inside the
// fog radius, fish that are in range or answering a call, and the rest
// hidden.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.Engine()
	if e == nil {
		return
	}
	snap := e.Snapshot()
	v := arena.Playfield(dst, e.Rules().Arena, core.ColorBlue)
	g.drawWater(dst, v, snap)

	p := snap.Player
	if p.Special {
		drawRing(dst, v, p.Pos, e.Rules().Special.Radius)
	}

	for _, c := range snap.Collectibles {
		if c.Caught || !g.visible(p.Pos, c, snap.Now) {
			continue
		}
		if x, y, ok := v.Project(c.Pos); ok {
			dst.SetColor(x, y, fishRune(c), fishColor(c, snap.Now))
		}
	}
	for _, s := range snap.Pursuers {
		if !s.Active {
			continue
		}
		if x, y, ok := v.Project(s.Pos); ok {
			dst.SetColor(x, y, SharkChar, core.ColorRed)
		}
	}
	if x, y, ok := v.Project(p.Pos); ok {
		dst.SetColor(x, y, SwimmerChar, core.ColorBrightYellow)
	}
	arena.DrawPopups(dst, v, g.Popups())

	g.drawHUD(dst, snap.Stats)
	lost := "CAUGHT BY A SHARK"
	if snap.Stats.TimeRemaining <= 0 && e.Rules().TimeLimit > 0 {
		lost = "TIME'S UP"
	}
	arena.DrawStatus(dst, snap.Stats, "MARCO POLO", "ALL FISH FOUND!", lost)
}

func (g *Game) visible(from core.Vec2, c sim.Collectible, now float64) bool {
	fog := g.cfg.Fog.Radius
	return fog <= 0 || from.DistSq(c.Pos) <= fog*fog || c.Revealed(now)
}

func (g *Game) drawWater(dst *core.Screen, v core.Viewport, snap sim.Snapshot) {
	fog := g.cfg.Fog.Radius
	wave := int(snap.Now * 3)
	s := v.Screen
	for y := s.Y; y < s.Bottom(); y++ {
		for x := s.X; x < s.Right(); x++ {
			if fog > 0 && v.Center(x, y).DistSq(snap.Player.Pos) > fog*fog {
				dst.SetColor(x, y, FogChar, core.ColorGray)
				continue
			}
			if (x+2*y+wave)%7 == 0 {
				dst.SetColor(x, y, RippleChar, core.ColorBlue)
			}
		}
	}
}

func drawRing(dst *core.Screen, v core.Viewport, center core.Vec2, radius float64) {
	if radius <= 0 {
		return
	}
	const steps = 64
	for i := range steps {
		pt := center.Add(core.FromAngle(2 * math.Pi * float64(i) / steps).Scale(radius))
		if x, y, ok := v.Project(pt); ok {
			dst.SetColor(x, y, CallChar, core.ColorCyan)
		}
	}
}

func fishRune(c sim.Collectible) rune {
	if c.Vel.X < 0 {
		return '<'
	}
	return '>'
}

func fishColor(c sim.Collectible, now float64) core.Color {
	switch {
	case c.Revealed(now):
		return core.ColorBrightYellow
	case c.AI == sim.FishFleeing:
		return core.ColorBrightCyan
	default:
		return core.ColorOrange
	}
}

func (g *Game) drawHUD(dst *core.Screen, st sim.Stats) {
	left := fmt.Sprintf("Score %d  Fish %d/%d", st.Score, st.Collected, st.Total)
	if st.TimeRemaining > 0 {
		left += fmt.Sprintf("  Time %ds", int(math.Ceil(st.TimeRemaining)))
	}
	if st.Combo > 0 {
		left += fmt.Sprintf("  x%d", st.Multiplier)
	}

	call := "ready"
	switch {
	case st.ChargesLeft == 0:
		call = "hoarse"
	case st.Cooldown > 0:
		call = fmt.Sprintf("%.1fs", st.Cooldown)
	}
	right := fmt.Sprintf("Marco %d (%s)  Best %d", st.ChargesLeft, call, st.Best)
	arena.DrawHUD(dst, left, right)
}
