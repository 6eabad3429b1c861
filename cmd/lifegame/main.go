package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lifegame/internal/cards"
	"lifegame/internal/config"
	"lifegame/internal/domain"
)

var (
	env     config.Env
	logger  *zap.Logger
	balance *domain.Balance
	factory *cards.Factory
)

var rootCmd = &cobra.Command{
	Use:   "lifegame",
	Short: "Life-stage insurance card game: simulator and stats tooling",
	Long: `lifegame drives the card game rules engine from the command line:
play single games, run balance simulations and inspect stored results.

Configuration comes from the environment:
  LIFEGAME_DB       results database path (default lifegame.db)
  LIFEGAME_BALANCE  optional balance JSON overriding the default ruleset
  LIFEGAME_CARDS    optional card catalog YAML
  LIFEGAME_DEBUG    enable debug logging`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if env, err = config.ParseEnv(); err != nil {
			return err
		}

		if env.Debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if balance, err = config.LoadBalance(env.BalancePath); err != nil {
			return err
		}

		catalog := cards.DefaultCatalog()
		if env.CardsPath != "" {
			if catalog, err = cards.LoadCatalog(env.CardsPath); err != nil {
				return err
			}
		}
		factory = cards.NewFactory(catalog, balance)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
