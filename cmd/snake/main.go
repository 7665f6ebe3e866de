// snake is the classic grid snake game for the terminal.
//
// Usage:
//
//	snake play [board]       - Play a board (default: snake)
//	snake menu               - Start menu to pick boards interactively
//	snake list               - List available boards
//	snake scores [board]     - Show high scores for a board
//	snake serve              - Start SSH server for remote play
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: config tick_rate, 33)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.snake/scores.db)
//	--config <path>     - Use a specific config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is a terminal version of the classic grid game.

Steer the snake with the arrow keys (or WASD / HJKL), eat food to grow,
and avoid the walls and your own body. Every food eaten makes the game
a little faster.

Available commands:
  play     - Play a board directly
  menu     - Interactive board picker menu
  list     - Show all available boards
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  snake play
  snake play snake_mini --seed 42
  snake menu
  snake serve --ssh :2222
  snake scores -i`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in ticks per second (0 = config tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the logger for a command. Interactive commands pass
// stderr=false because log lines would corrupt the alternate screen.
// The returned function closes the log file, if any.
func newLogger(stderr bool, prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q: %v", flagLogLevel, err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case stderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn
}

// loadConfig loads the effective game configuration and hands the config
// path and logger to the snake package.
func loadConfig(logger *log.Logger) config.SnakeConfig {
	cfg, src, err := config.LoadSnakeWithSource(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("config loaded", "source", src)

	snake.SetConfigPath(flagConfig)
	snake.SetLogger(logger)
	return cfg
}

// tickRate resolves --fps against the configured tick rate.
func tickRate(cfg config.SnakeConfig) int {
	if flagFPS > 0 {
		return flagFPS
	}
	return cfg.Speed.TickRate
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig(cfg config.SnakeConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(cfg),
		Seed:     flagSeed,
	}
}

// openStore opens the score database. A failure is reported and the game
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}
