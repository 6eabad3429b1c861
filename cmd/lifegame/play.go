package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifegame/internal/app"
	"lifegame/internal/bot"
	"lifegame/internal/domain"
)

var (
	playSeed     int64
	playStrategy string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one bot-driven game with a turn-by-turn log",
	Run: func(cmd *cobra.Command, args []string) {
		if playSeed == 0 {
			playSeed = time.Now().UnixNano()
		}
		strategy := bot.ByName(playStrategy)
		svc := app.NewService(factory, balance, rand.New(rand.NewSource(playSeed)))
		g := svc.NewGame()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("\n%s  seed=%d strategy=%s\n\n", cyan("=== New Game ==="), playSeed, strategy.Name())

		events, err := svc.Start(g)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printEvents(events)

		for g.InProgress() {
			switch g.Phase {
			case domain.PhaseDraw:
				events, err = svc.StartChallenge(g)
			case domain.PhaseChallenge:
				events, err = svc.ResolveChallenge(g, strategy.ChooseCards(g))
			case domain.PhaseCardSelection:
				events, err = svc.SelectCard(g, strategy.ChooseCard(g))
			case domain.PhaseInsuranceTypeSelection:
				events, err = svc.SelectInsuranceType(g, strategy.ChooseInsurance(g))
			default:
				events, err = svc.NextTurn(g)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printEvents(events)
		}

		printOutcome(g)
	},
}

func printEvents(events []app.Event) {
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.TurnStartedPayload:
			fmt.Printf("\n%s turn %d (%s)\n", yellow("▸"), p.Turn, p.Stage)
		case app.ChallengeStartedPayload:
			fmt.Printf("  challenge: %s (power %d)\n", p.Challenge.Name, p.Challenge.Power)
		case app.ChallengeResolvedPayload:
			if p.Result.Success {
				fmt.Printf("  %s total %d vs %d, vitality %+d -> %d\n",
					green("success"), p.Result.Breakdown.Total, p.Result.TargetPower, p.Result.VitalityDelta, p.Vitality)
			} else {
				fmt.Printf("  %s total %d vs %d, vitality %+d -> %d\n",
					red("failure"), p.Result.Breakdown.Total, p.Result.TargetPower, p.Result.VitalityDelta, p.Vitality)
			}
		case app.CardAcquiredPayload:
			fmt.Printf("  acquired: %s\n", p.Card.Name)
		case app.InsuranceAcquiredPayload:
			fmt.Printf("  insured: %s (%s, burden %.1f)\n", p.Card.Name, p.Card.DurationType, p.Burden)
		case app.InsuranceExpiredPayload:
			fmt.Printf("  %s\n", gray(p.Notice.Message))
		case app.InsuranceLapsedPayload:
			fmt.Printf("  %s premium %d unpayable, %d policies lapsed\n", red("lapsed:"), p.PremiumDue, len(p.Lapsed))
		case app.PremiumChargedPayload:
			fmt.Printf("  %s premium %d, vitality %d\n", gray("paid:"), p.Amount, p.Vitality)
		case app.StageAdvancedPayload:
			fmt.Printf("  %s\n", yellow(p.Transition.Message))
		}
	}
}

func printOutcome(g *domain.Game) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	fmt.Println()
	if g.Status == domain.StatusVictory {
		fmt.Printf("%s reached turn %d with %d vitality\n", green("VICTORY:"), g.Turn, g.Vitality.Value())
	} else {
		fmt.Printf("%s vitality depleted on turn %d\n", red("GAME OVER:"), g.Turn)
	}
	fmt.Printf("  challenges: %d won / %d lost, cards acquired: %d, peak vitality: %d\n\n",
		g.Stats.SuccessfulChallenges, g.Stats.FailedChallenges, g.Stats.CardsAcquired, g.Stats.HighestVitality)
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "RNG seed (0 = time-based)")
	playCmd.Flags().StringVar(&playStrategy, "strategy", "cautious", "Bot strategy: cautious or aggressive")
}
