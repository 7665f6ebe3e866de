package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: snake).

Controls:
  Arrows/WASD/HJKL  - Steer (each press moves one cell at once)
  P/Esc             - Pause
  R                 - Restart (after game over)
  B                 - Back (ends the game)
  Ctrl+S            - Save an ASCII screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

Examples:
  snake play
  snake play snake_mini
  snake play --seed 42 --fps 20
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := snake.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available boards.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(false, "snake")
	defer closeLog()

	rc := runtimeConfig(loadConfig(logger))

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)

	_, runErr := tui.Run(game, store, rc, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
