package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perkflow/perkflow/internal/cli"
	"github.com/perkflow/perkflow/internal/config"
	"github.com/perkflow/perkflow/internal/gmail"
	"github.com/perkflow/perkflow/internal/scan"
	"github.com/perkflow/perkflow/internal/service"
	"github.com/perkflow/perkflow/internal/valuation"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the mailbox for loyalty rewards",
		Long: `Fetch candidate messages, extract reward balances, and replace the stored
reward set with the result.

Examples:
  # Full scan with defaults
  perkflow scan

  # Only these providers, stricter threshold
  perkflow scan --providers delta,marriott --min-confidence 80

  # Replay a captured batch without touching Gmail
  perkflow scan --offline mailbox.json --dry-run`,
		RunE: runScan,
	}

	cmd.Flags().Int("min-confidence", 0, "minimum confidence score for accepting a match (default 70)")
	cmd.Flags().StringSlice("providers", nil, "restrict the scan to these provider ids")
	cmd.Flags().Int("max-results", 100, "maximum number of messages to fetch")
	cmd.Flags().Int("workers", 0, "message classification workers (default 4)")
	cmd.Flags().BoolP("dry-run", "d", false, "scan without persisting results")
	cmd.Flags().String("offline", "", "read messages from a JSON batch file instead of Gmail")
	cmd.Flags().Bool("show-skipped", false, "print per-message skip diagnostics")

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	minConfidence, _ := cmd.Flags().GetInt("min-confidence")
	providers, _ := cmd.Flags().GetStringSlice("providers")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	workers, _ := cmd.Flags().GetInt("workers")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	offline, _ := cmd.Flags().GetString("offline")
	showSkipped, _ := cmd.Flags().GetBool("show-skipped")

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	var source service.MessageSource
	if offline != "" {
		source = &gmail.FileSource{Path: config.ExpandPath(offline)}
	} else {
		cfg, cfgErr := config.LoadGmailConfig()
		if cfgErr != nil {
			return cfgErr
		}
		token, tokenErr := gmail.GetOrCreateToken(ctx, *cfg)
		if tokenErr != nil {
			return fmt.Errorf("failed to get Gmail token: %w", tokenErr)
		}
		source, err = gmail.NewClient(ctx, *cfg, token, cat, true)
		if err != nil {
			return err
		}
	}

	messages, err := source.Fetch(ctx, maxResults)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	opts := scan.DefaultOptions()
	if minConfidence > 0 {
		opts.MinConfidence = minConfidence
	}
	if workers > 0 {
		opts.Workers = workers
	}
	opts.Providers = providers

	result, err := scan.Run(ctx, messages, cat, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printScanResult(result, showSkipped)

	if dryRun {
		fmt.Println(cli.FormatInfo("Dry run - results not saved"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	scanID, err := store.ReplaceRewards(ctx, result.Rewards, result.Summary)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved scan #%d with %d rewards", scanID, len(result.Rewards))))
	return nil
}

func printScanResult(result *scan.Result, showSkipped bool) {
	fmt.Println(cli.TitleStyle.Render(cli.MailIcon + " Scan Results"))

	for _, r := range result.Rewards {
		fmt.Printf("  %s %s: %s %s (%s, confidence %d%%)\n",
			cli.SuccessStyle.Render(cli.SuccessIcon),
			cli.BoldStyle.Render(r.DisplayName),
			r.BalanceDisplayText,
			strings.ToLower(string(r.Category)),
			formatDollars(r.EstimatedValue),
			r.ConfidenceScore)
	}

	summary := valuation.Aggregate(result.Rewards)
	if len(summary.ByCategory) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtitleStyle.Render("By category"))
		for _, t := range summary.ByCategory {
			fmt.Printf("  %-20s %3d reward(s)  %s\n", t.Category, t.Rewards, formatDollars(t.EstimatedValue))
		}
	}

	s := result.Summary
	fmt.Println()
	fmt.Println(cli.ChartIcon, cli.BoldStyle.Render("Summary"))
	fmt.Printf("  Messages considered: %d\n", s.TotalMessagesConsidered)
	fmt.Printf("  Messages processed:  %d\n", s.MessagesProcessed)
	fmt.Printf("  Rewards found:       %d\n", s.RewardsFound)
	fmt.Printf("  Skipped:             %d\n", s.SkippedCount)
	fmt.Printf("  Average confidence:  %d%%\n", s.AverageConfidence)
	fmt.Printf("  Estimated value:     %s\n", cli.BoldStyle.Render(formatDollars(s.TotalEstimatedValue)))

	if showSkipped && len(result.Skipped) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtitleStyle.Render("Skipped messages"))
		for _, sk := range result.Skipped {
			detail := sk.Reason
			if sk.Details != "" {
				detail += " (" + sk.Details + ")"
			}
			fmt.Printf("  %s %s - %s\n",
				cli.WarningStyle.Render(cli.WarningIcon),
				truncate(sk.Subject, 50),
				cli.SubtleStyle.Render(detail))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
