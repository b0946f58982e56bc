package scan

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.ProviderRule{
		{
			ID:              "delta",
			DisplayName:     "Delta SkyMiles",
			Category:        model.CategoryMiles,
			SenderDomains:   []string{"delta.com"},
			SubjectPatterns: []string{`skymiles`},
			BalancePatterns: []string{`(\d{1,3}(?:,\d{3})*)\s*SkyMiles`},
			ValuePerUnit:    0.012,
			Enabled:         true,
		},
		{
			ID:              "marriott",
			DisplayName:     "Marriott Bonvoy",
			Category:        model.CategoryHotelPoints,
			SenderDomains:   []string{"marriott.com"},
			SubjectPatterns: []string{`bonvoy`},
			BalancePatterns: []string{`(\d{1,3}(?:,\d{3})*)\s*points`},
			ValuePerUnit:    0.007,
			Enabled:         true,
		},
	})
	require.NoError(t, err)
	return cat
}

func rawMessage(id, from, subject, body string, date time.Time) *model.RawMessage {
	return &model.RawMessage{
		ID: id,
		Headers: []model.Header{
			{Name: "From", Value: from},
			{Name: "Subject", Value: subject},
		},
		Body: model.Part{
			Parts: []model.Part{{
				MimeType: "text/plain",
				Data:     base64.RawURLEncoding.EncodeToString([]byte(body)),
			}},
		},
		Internal: date,
	}
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC)
}

func TestRun_ExtractsRewards(t *testing.T) {
	messages := []*model.RawMessage{
		rawMessage("m1", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 1,234 SkyMiles", day(10)),
		rawMessage("m2", "stay@marriott.com", "Bonvoy monthly summary",
			"Your balance: 52,000 points", day(11)),
	}

	result, err := Run(context.Background(), messages, testCatalog(t), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Rewards, 2)
	assert.Equal(t, "delta", result.Rewards[0].ProgramID)
	assert.Equal(t, int64(1234), result.Rewards[0].Balance)
	assert.Equal(t, 90, result.Rewards[0].ConfidenceScore)
	assert.Equal(t, "marriott", result.Rewards[1].ProgramID)
	assert.Equal(t, int64(52000), result.Rewards[1].Balance)
	assert.Equal(t, int64(364), result.Rewards[1].EstimatedValue) // 52,000 * 0.007

	assert.Equal(t, 2, result.Summary.TotalMessagesConsidered)
	assert.Equal(t, 2, result.Summary.MessagesProcessed)
	assert.Equal(t, 2, result.Summary.RewardsFound)
	assert.Equal(t, 0, result.Summary.SkippedCount)
}

func TestRun_DedupKeepsLatestDate(t *testing.T) {
	messages := []*model.RawMessage{
		rawMessage("newer", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 2,000 SkyMiles", day(15)),
		rawMessage("older", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 9,999 SkyMiles", day(10)),
	}

	result, err := Run(context.Background(), messages, testCatalog(t), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Rewards, 1)
	assert.Equal(t, "newer", result.Rewards[0].SourceMessageID)
	assert.Equal(t, int64(2000), result.Rewards[0].Balance)
	// Summary counts the post-dedup set.
	assert.Equal(t, 1, result.Summary.RewardsFound)
	assert.Equal(t, 2, result.Summary.MessagesProcessed)
}

func TestRun_DedupTieBreaksOnConfidence(t *testing.T) {
	// Same message date; the second message scores lower (heuristic balance),
	// so the higher-confidence first message survives.
	messages := []*model.RawMessage{
		rawMessage("exact", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 2,000 SkyMiles", day(10)),
		rawMessage("fuzzy", "rewards@delta.com", "Your SkyMiles Activity",
			"delta: you earned 500 miles", day(10)),
	}

	result, err := Run(context.Background(), messages, testCatalog(t), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Rewards, 1)
	assert.Equal(t, "exact", result.Rewards[0].SourceMessageID)
	assert.Equal(t, 90, result.Rewards[0].ConfidenceScore)
}

func TestRun_DeterministicAcrossWorkerCounts(t *testing.T) {
	var messages []*model.RawMessage
	for d := 1; d <= 20; d++ {
		id := "delta-" + string(rune('a'+d-1))
		messages = append(messages, rawMessage(id, "rewards@delta.com",
			"Your SkyMiles Activity", "You have earned 1,000 SkyMiles", day(d)))
	}

	opts := DefaultOptions()
	opts.Workers = 1
	serial, err := Run(context.Background(), messages, testCatalog(t), opts)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := Run(context.Background(), messages, testCatalog(t), opts)
	require.NoError(t, err)

	assert.Equal(t, serial.Rewards, parallel.Rewards)
	assert.Equal(t, serial.Summary, parallel.Summary)
	require.Len(t, serial.Rewards, 1)
	assert.Equal(t, day(20), serial.Rewards[0].MessageDate)
}

func TestRun_SkipReasons(t *testing.T) {
	messages := []*model.RawMessage{
		rawMessage("unknown", "promo@randomstore.com", "Big sale",
			"everything must go", day(1)),
		rawMessage("no-balance", "rewards@delta.com", "Your SkyMiles Activity",
			"we hope you enjoyed your flight", day(2)),
		rawMessage("weak", "rewards@delta.com", "Travel update",
			"delta: you earned 300 miles", day(3)),
	}

	result, err := Run(context.Background(), messages, testCatalog(t), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, result.Rewards)
	require.Len(t, result.Skipped, 3)

	byID := make(map[string]model.SkippedEmail)
	for _, s := range result.Skipped {
		byID[s.MessageID] = s
	}
	assert.Equal(t, model.SkipNoProviderCandidate, byID["unknown"].Reason)
	assert.Equal(t, model.SkipNoBalancePattern, byID["no-balance"].Reason)
	// Heuristic match at 55 is below the default threshold of 70.
	assert.Equal(t, model.SkipBelowConfidence, byID["weak"].Reason)

	assert.Equal(t, 3, result.Summary.SkippedCount)
	assert.Equal(t, 0, result.Summary.RewardsFound)
}

func TestRun_MinConfidenceOverride(t *testing.T) {
	messages := []*model.RawMessage{
		rawMessage("weak", "rewards@delta.com", "Travel update",
			"delta: you earned 300 miles", day(3)),
	}

	opts := DefaultOptions()
	opts.MinConfidence = 50
	result, err := Run(context.Background(), messages, testCatalog(t), opts)
	require.NoError(t, err)

	require.Len(t, result.Rewards, 1)
	assert.Equal(t, 55, result.Rewards[0].ConfidenceScore)
}

func TestRun_ProviderRestriction(t *testing.T) {
	messages := []*model.RawMessage{
		rawMessage("m1", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 1,234 SkyMiles", day(10)),
		rawMessage("m2", "stay@marriott.com", "Bonvoy monthly summary",
			"Your balance: 52,000 points", day(11)),
	}

	opts := DefaultOptions()
	opts.Providers = []string{"marriott"}
	result, err := Run(context.Background(), messages, testCatalog(t), opts)
	require.NoError(t, err)

	require.Len(t, result.Rewards, 1)
	assert.Equal(t, "marriott", result.Rewards[0].ProgramID)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, model.SkipNoProviderCandidate, result.Skipped[0].Reason)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	messages := []*model.RawMessage{
		rawMessage("m1", "rewards@delta.com", "Your SkyMiles Activity",
			"You have earned 1,234 SkyMiles", day(10)),
	}

	result, err := Run(ctx, messages, testCatalog(t), DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.LessOrEqual(t, result.Summary.MessagesProcessed, 1)
}

func TestRun_EmptyBatch(t *testing.T) {
	result, err := Run(context.Background(), nil, testCatalog(t), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Rewards)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 0, result.Summary.TotalMessagesConsidered)
}

func TestRun_MalformedMessageBecomesSkip(t *testing.T) {
	messages := []*model.RawMessage{
		{
			ID: "broken",
			Headers: []model.Header{
				{Name: "From", Value: "rewards@delta.com"},
			},
			Body: model.Part{
				Parts: []model.Part{{MimeType: "text/plain", Data: "%%% not base64 %%%"}},
			},
			Internal: day(1),
		},
	}

	result, err := Run(context.Background(), messages, testCatalog(t), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, result.Rewards)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, model.SkipNoBalancePattern, result.Skipped[0].Reason)
}
