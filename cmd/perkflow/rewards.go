package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perkflow/perkflow/internal/cli"
	"github.com/perkflow/perkflow/internal/valuation"
)

func rewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show the stored reward set",
		Long:  `List the rewards found by the most recent scan, with estimated values and category totals.`,
		RunE:  runRewards,
	}

	cmd.Flags().Bool("history", false, "also show scan history")

	return cmd
}

func runRewards(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	history, _ := cmd.Flags().GetBool("history")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rewards, err := store.GetRewards(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rewards: %w", err)
	}

	if len(rewards) == 0 {
		fmt.Println(cli.FormatInfo("No rewards stored - run 'perkflow scan' first"))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(cli.CoinIcon + " Rewards"))
	for _, r := range rewards {
		fmt.Printf("  %-36s %12s   %s  %s\n",
			cli.BoldStyle.Render(r.DisplayName),
			r.BalanceDisplayText,
			formatDollars(r.EstimatedValue),
			cli.SubtleStyle.Render(fmt.Sprintf("confidence %d%%", r.ConfidenceScore)))
	}

	summary := valuation.Aggregate(rewards)
	fmt.Println()
	for _, t := range summary.ByCategory {
		fmt.Printf("  %-20s %s\n", t.Category, formatDollars(t.EstimatedValue))
	}
	fmt.Printf("  %-20s %s\n", "Total", cli.BoldStyle.Render(formatDollars(summary.GrandTotal)))

	if history {
		scans, scanErr := store.GetScans(ctx, 10)
		if scanErr != nil {
			return fmt.Errorf("failed to load scan history: %w", scanErr)
		}
		fmt.Println()
		fmt.Println(cli.SubtitleStyle.Render("Recent scans"))
		for _, s := range scans {
			fmt.Printf("  #%d  %s  %d rewards / %d messages, avg confidence %d%%\n",
				s.ID,
				s.RanAt.Format("2006-01-02 15:04"),
				s.Summary.RewardsFound,
				s.Summary.MessagesProcessed,
				s.Summary.AverageConfidence)
		}
	}

	return nil
}
