package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifegame/internal/adapters/sqlite"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over stored game results",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := sqlite.Open(env.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		summary, err := store.Summary(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read summary: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Stored Results ==="))
		if summary.Games == 0 {
			fmt.Printf("  %s\n\n", gray("No games recorded yet. Run `lifegame simulate` first."))
			return
		}

		fmt.Printf("  Games:          %d\n", summary.Games)
		fmt.Printf("  Victories:      %d\n", summary.Victories)
		fmt.Printf("  Game overs:     %d\n", summary.GameOvers)
		fmt.Printf("  Win rate:       %.1f%%\n", summary.WinRate()*100)
		fmt.Printf("  Avg turns:      %.1f\n", summary.AvgTurns)
		fmt.Printf("  Avg vitality:   %.1f\n", summary.AvgVitality)
		fmt.Printf("  Challenges won: %d\n", summary.ChallengesWon)
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
