package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right     - Change difficulty
  Enter/Space    - Select game
  Tab            - Scoreboard
  Q              - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db --theme mono`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd, false)
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q, use easy, normal, hard or fixed", flagDifficulty)
	}

	svc, cleanup, err := terminalServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunSession(svc, runtimeConfig())
}
