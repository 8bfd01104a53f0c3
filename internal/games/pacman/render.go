package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Render characters.
const (
	PacChar    = 'C'
	GhostChar  = 'M'
	EyesChar   = '"'
	PelletChar = '·'
	PowerChar  = '●'
)

// blinkWindow is when frightened ghosts start flashing, in seconds left.
const blinkWindow = 2.0

var personalityColor = map[sim.Personality]core.Color{
	sim.Direct:      core.ColorBrightRed,
	sim.Ambusher:    core.ColorPink,
	sim.Flanker:     core.ColorBrightCyan,
	sim.Opportunist: core.ColorOrange,
}

// Render projects the maze world positions onto the screen, back to front:
// pellets, the player, then ghosts and floating eyes.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.Engine()
	if e == nil {
		return
	}
	snap := e.Snapshot()
	v := arena.Playfield(dst, e.Rules().Arena, core.ColorBlue)

	blink := int(snap.Now*4)%2 == 0
	for _, c := range snap.Collectibles {
		if c.Caught {
			continue
		}
		x, y, ok := project(v, PelletWorld(c))
		if !ok {
			continue
		}
		if c.Kind == sim.KindPower {
			if blink {
				dst.SetColor(x, y, PowerChar, core.ColorWhite)
			}
			continue
		}
		dst.SetColor(x, y, PelletChar, core.ColorYellow)
	}

	if x, y, ok := project(v, PlayerWorld(snap.Player)); ok {
		dst.SetColor(x, y, PacChar, core.ColorBrightYellow)
	}

	for _, gh := range snap.Pursuers {
		if !gh.Active {
			continue
		}
		x, y, ok := project(v, GhostWorld(gh, snap.Now))
		if !ok {
			continue
		}
		dst.SetColor(x, y, ghostRune(gh), ghostColor(gh, snap.Stats, blink))
	}
	arena.DrawPopups(dst, v, g.Popups())

	drawHUD(dst, snap.Stats)
	arena.DrawStatus(dst, snap.Stats, "PAC-MAN 3D", "YOU WIN!", "GAME OVER")
}

func ghostRune(gh sim.Pursuer) rune {
	if gh.Mode == sim.ModeEaten {
		return EyesChar
	}
	return GhostChar
}

func ghostColor(gh sim.Pursuer, st sim.Stats, blink bool) core.Color {
	switch gh.Mode {
	case sim.ModeEaten:
		return core.ColorWhite
	case sim.ModeFrightened:
		if st.FrightenedLeft < blinkWindow && blink {
			return core.ColorWhite
		}
		return core.ColorBrightBlue
	}
	if c, ok := personalityColor[gh.Personality]; ok {
		return c
	}
	return core.ColorRed
}

func drawHUD(dst *core.Screen, st sim.Stats) {
	left := fmt.Sprintf("Score %d  Lives %s  Level %d  Pellets %d/%d",
		st.Score, strings.Repeat(string(PacChar), max(st.Lives, 0)), st.Level, st.Collected, st.Total)

	mode := strings.ToUpper(st.ScheduleMode.String())
	if st.Frightened {
		mode = fmt.Sprintf("POWER %.1fs", st.FrightenedLeft)
		if st.Multiplier > 1 {
			mode += fmt.Sprintf(" x%d", st.Multiplier)
		}
	}
	arena.DrawHUD(dst, left, fmt.Sprintf("%s  Best %d", mode, st.Best))
}
