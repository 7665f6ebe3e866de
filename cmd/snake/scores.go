package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores for a board",
	Long: `Display the top high scores for the specified board (default: snake).
The score of a game is the final length of the snake.

Examples:
  snake scores
  snake scores snake_mini --limit 20
  snake scores -i
  snake scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the board")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := snake.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available boards.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %s\n", "Rank", "Length", "Steps", "Cause", "When")
	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-6d  %-8s  %-8s  %s\n",
			i+1, entry.Score, humanize.Comma(entry.Steps), entry.Cause, humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println(tui.FormatStats(stats))
	}
}
