// Package service defines the interfaces between the extraction engine and
// its host-side collaborators: the mailbox source and the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/perkflow/perkflow/internal/model"
)

// MessageSource fetches raw messages from a mailbox. Search syntax,
// pagination, and rate limits all live behind this boundary; the engine only
// ever sees a finite, already-fetched batch.
type MessageSource interface {
	// Fetch returns up to maxResults raw messages matching the source's
	// reward search query.
	Fetch(ctx context.Context, maxResults int) ([]*model.RawMessage, error)
}

// ScanRecord is one persisted scan run.
type ScanRecord struct {
	RanAt   time.Time
	Summary model.ScanSummary
	ID      int64
}

// Storage defines the contract for the reward persistence layer. A scan is a
// full refresh: the new reward set replaces the prior one atomically.
type Storage interface {
	// ReplaceRewards atomically swaps the stored reward set for the result
	// of a new scan and records its summary.
	ReplaceRewards(ctx context.Context, rewards []model.ExtractedReward, summary model.ScanSummary) (int64, error)
	// GetRewards returns the current reward set, most valuable first.
	GetRewards(ctx context.Context) ([]model.ExtractedReward, error)
	// GetScans returns scan history, newest first.
	GetScans(ctx context.Context, limit int) ([]ScanRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations against remote
// services.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
