package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/platform/tui"
	"github.com/vovakirdan/chase-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space        - Call "Marco!" (Marco Polo)
  P            - Pause
  R            - Restart (after game over)
  Esc          - Leave (when paused or after game over)
  ?            - Toggle full help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Gentler tuning and a slow difficulty ramp
  normal - Default tuning, starting at 30% difficulty
  hard   - Tighter tuning, starting at 70% difficulty
  fixed  - No progression, stays at the config's initial level

Examples:
  arcade play marcopolo
  arcade play pacman --difficulty hard
  arcade play pacman --seed 42 --mute
  arcade play marcopolo --config ./my-marcopolo.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd, true)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q, use easy, normal, hard or fixed", flagDifficulty)
	}

	svc, cleanup, err := terminalServices()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := runtimeConfig()
	svc.Logger.Info("starting game", "game", gameID, "difficulty", cfg.Difficulty, "seed", cfg.Seed)
	if err := tui.Run(gameID, svc, cfg); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}
