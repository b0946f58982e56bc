package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/perkflow/perkflow/internal/model"
	"github.com/perkflow/perkflow/internal/service"
)

// ReplaceRewards swaps the stored reward set for a new scan's result and
// records the scan summary, all in one transaction. A scan reflects current
// balances, so the prior set is dropped rather than merged.
func (s *SQLiteStorage) ReplaceRewards(ctx context.Context, rewards []model.ExtractedReward, summary model.ScanSummary) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM rewards`); err != nil {
		return 0, fmt.Errorf("failed to clear prior rewards: %w", err)
	}

	for _, r := range rewards {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rewards (
				program_id, display_name, category, balance, balance_text,
				estimated_value, source_message_id, message_date, confidence, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ProgramID,
			r.DisplayName,
			string(r.Category),
			r.Balance,
			r.BalanceDisplayText,
			r.EstimatedValue,
			r.SourceMessageID,
			r.MessageDate,
			r.ConfidenceScore,
			time.Now(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save reward %s: %w", r.ProgramID, err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO scans (
			messages_considered, messages_processed, rewards_found,
			skipped_count, average_confidence, total_estimated_value
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		summary.TotalMessagesConsidered,
		summary.MessagesProcessed,
		summary.RewardsFound,
		summary.SkippedCount,
		summary.AverageConfidence,
		summary.TotalEstimatedValue,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}

	return scanID, nil
}

// GetRewards returns the current reward set, most valuable first.
func (s *SQLiteStorage) GetRewards(ctx context.Context) ([]model.ExtractedReward, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT program_id, display_name, category, balance, balance_text,
		       estimated_value, source_message_id, message_date, confidence
		FROM rewards
		ORDER BY estimated_value DESC, program_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rewards []model.ExtractedReward
	for rows.Next() {
		var r model.ExtractedReward
		var category string
		var messageDate *time.Time
		if err := rows.Scan(
			&r.ProgramID,
			&r.DisplayName,
			&category,
			&r.Balance,
			&r.BalanceDisplayText,
			&r.EstimatedValue,
			&r.SourceMessageID,
			&messageDate,
			&r.ConfidenceScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		r.Category = model.Category(category)
		if messageDate != nil {
			r.MessageDate = *messageDate
		}
		rewards = append(rewards, r)
	}

	return rewards, rows.Err()
}

// GetScans returns scan history, newest first.
func (s *SQLiteStorage) GetScans(ctx context.Context, limit int) ([]service.ScanRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ran_at, messages_considered, messages_processed,
		       rewards_found, skipped_count, average_confidence, total_estimated_value
		FROM scans
		ORDER BY ran_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []service.ScanRecord
	for rows.Next() {
		var rec service.ScanRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RanAt,
			&rec.Summary.TotalMessagesConsidered,
			&rec.Summary.MessagesProcessed,
			&rec.Summary.RewardsFound,
			&rec.Summary.SkippedCount,
			&rec.Summary.AverageConfidence,
			&rec.Summary.TotalEstimatedValue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scan row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
