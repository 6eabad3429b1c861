package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifegame/internal/adapters/sqlite"
	"lifegame/internal/sim"
)

var (
	simGames    int
	simSeed     int64
	simStrategy string
	simNoStore  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run automated games for balance tuning",
	Long: `Run a batch of seeded games with a bot strategy and store the results.

Example:
  lifegame simulate --games 500 --strategy aggressive
  lifegame simulate --games 100 --seed 7 --no-store`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		runner := sim.NewRunner(logger, factory, balance, nil)
		if !simNoStore {
			store, err := sqlite.Open(env.DatabasePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to open results database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()
			runner = sim.NewRunner(logger, factory, balance, store)
		}

		if simSeed == 0 {
			simSeed = time.Now().UnixNano()
		}

		summary, err := runner.Run(ctx, sim.Options{
			Games:    simGames,
			Seed:     simSeed,
			Strategy: simStrategy,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: simulation failed: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Simulation Summary ==="))
		fmt.Printf("  Strategy:       %s\n", simStrategy)
		fmt.Printf("  Games:          %d\n", summary.Games)
		fmt.Printf("  Victories:      %s\n", green(fmt.Sprintf("%d", summary.Victories)))
		fmt.Printf("  Game overs:     %s\n", red(fmt.Sprintf("%d", summary.GameOvers)))
		fmt.Printf("  Win rate:       %.1f%%\n", summary.WinRate()*100)
		fmt.Printf("  Avg turns:      %.1f\n", summary.AvgTurns)
		fmt.Printf("  Avg vitality:   %.1f\n", summary.AvgVitality)
		fmt.Printf("  Challenges won: %d\n", summary.ChallengesWon)
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVar(&simGames, "games", 100, "Number of games to simulate")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Base RNG seed (0 = time-based)")
	simulateCmd.Flags().StringVar(&simStrategy, "strategy", "cautious", "Bot strategy: cautious or aggressive")
	simulateCmd.Flags().BoolVar(&simNoStore, "no-store", false, "Skip persisting results")
}
