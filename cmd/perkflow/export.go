package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/perkflow/perkflow/internal/cli"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored reward set as CSV",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rewards, err := store.GetRewards(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rewards: %w", err)
	}

	out := os.Stdout
	if output != "" {
		f, createErr := os.Create(output) // #nosec G304
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w := csv.NewWriter(out)
	header := []string{"program_id", "program", "category", "balance", "balance_text", "estimated_value", "confidence", "message_date", "source_message_id"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rewards {
		record := []string{
			r.ProgramID,
			r.DisplayName,
			string(r.Category),
			strconv.FormatInt(r.Balance, 10),
			r.BalanceDisplayText,
			strconv.FormatInt(r.EstimatedValue, 10),
			strconv.Itoa(r.ConfidenceScore),
			r.MessageDate.Format("2006-01-02"),
			r.SourceMessageID,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if output != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d rewards to %s", len(rewards), output)))
	}
	return nil
}
