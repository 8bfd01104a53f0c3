// arcade is a terminal arcade of chase games: Marco Polo and Pac-Man 3D.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores and recent runs for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination for terminal play (default: ~/.arcade/arcade.log)
//	--theme <name>       - Menu theme: default or mono
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chase-arcade/internal/audio"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/platform/tui"
	"github.com/vovakirdan/chase-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/chase-arcade/internal/games/marcopolo"
	_ "github.com/vovakirdan/chase-arcade/internal/games/pacman"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagTheme    string

	// Game flags shared by play and menu
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Chase Arcade - real-time chase games in your terminal",
	Long: `Chase Arcade is a terminal arcade of real-time chase games.

Available games:
  marcopolo  - Find the hidden fish by calling "Marco!" before time runs out
  pacman     - Eat every pellet in the maze while four ghosts hunt you

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs

Examples:
  arcade list
  arcade play pacman
  arcade menu
  arcade serve --ssh :2222
  arcade scores marcopolo`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file for terminal play")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// addGameFlags registers the flags that tune a game round. A config
// file belongs to one game, so only play takes --config.
func addGameFlags(cmd *cobra.Command, withConfig bool) {
	if withConfig {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	}
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultOptions().Volume, "Sound volume from 0 to 1")
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger builds the process logger. Terminal play owns stdout, so
// it logs to a file; the server logs to stderr and gets a nil closer.
func newLogger(toStderr bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	if !toStderr {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the score database. A failure is logged and play
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig builds the base config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	if flagDifficulty != "" {
		cfg.Difficulty = flagDifficulty
	}
	return cfg
}

// terminalServices wires storage, audio and logging for local play. The
// returned cleanup closes them in reverse order.
func terminalServices() (tui.Services, func(), error) {
	logger, logCloser, err := newLogger(false)
	if err != nil {
		return tui.Services{}, nil, err
	}
	store := openStore(logger)

	opts := audio.DefaultOptions()
	opts.Enabled = !flagMute
	opts.Volume = flagVolume
	speaker := audio.New(opts, logger)
	speaker.Start()

	svc := tui.Services{
		Store:  store,
		Sink:   speaker,
		Logger: logger,
		Theme:  tui.ThemeByName(flagTheme),
	}
	cleanup := func() {
		speaker.Close()
		if store != nil {
			store.Close()
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}
	return svc, cleanup, nil
}
