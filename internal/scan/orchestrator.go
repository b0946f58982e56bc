// Package scan implements the scan orchestrator: it drives a batch of
// messages through the matcher, applies the confidence threshold,
// deduplicates per program, and produces the final reward list and summary.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/match"
	"github.com/perkflow/perkflow/internal/model"
	"github.com/perkflow/perkflow/internal/normalize"
	"github.com/perkflow/perkflow/internal/valuation"
)

// Options configures a single scan.
type Options struct {
	// MinConfidence is the acceptance threshold for match results.
	MinConfidence int
	// Workers bounds the message-classification pool. Message work is
	// independent, so the pool size only trades throughput for memory.
	Workers int
	// Providers optionally restricts the scan to the named provider ids.
	Providers []string
}

// DefaultOptions returns the standard scan configuration.
func DefaultOptions() Options {
	return Options{
		MinConfidence: 70,
		Workers:       4,
	}
}

// Result is everything one scan produces.
type Result struct {
	Rewards []model.ExtractedReward
	Skipped []model.SkippedEmail
	Summary model.ScanSummary
}

// outcome is one message's classification, tagged with its arrival index so
// concurrent completion order never leaks into the final result.
type outcome struct {
	index  int
	reward *model.ExtractedReward
	skip   *model.SkippedEmail
}

// Run scans a batch of raw messages against the catalogue. Messages are
// normalized and classified concurrently; the reward set is deduplicated per
// program after every message has been classified. On cancellation the
// already-classified portion is returned alongside ctx.Err().
func Run(ctx context.Context, messages []*model.RawMessage, cat *catalog.Catalog, opts Options) (*Result, error) {
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultOptions().MinConfidence
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	cat = cat.Restrict(opts.Providers)

	slog.Info("Starting reward scan",
		"messages", len(messages),
		"providers", cat.Len(),
		"min_confidence", opts.MinConfidence,
		"workers", opts.Workers)

	outcomes := make([]outcome, len(messages))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = classify(messages[i], i, cat, opts.MinConfidence)
			}
		}()
	}

	var scanErr error
dispatch:
	for i := range messages {
		select {
		case <-ctx.Done():
			scanErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result := collect(outcomes, len(messages))
	if scanErr != nil {
		slog.Warn("Scan canceled, returning partial result",
			"classified", result.Summary.MessagesProcessed)
		return result, scanErr
	}

	slog.Info("Scan complete",
		"rewards", result.Summary.RewardsFound,
		"skipped", result.Summary.SkippedCount,
		"average_confidence", result.Summary.AverageConfidence)
	return result, nil
}

// classify runs one message through the matcher for each candidate provider.
// First candidate clearing the threshold wins; a message yields at most one
// reward. A panic anywhere in per-message work becomes a processing-error
// skip rather than aborting the scan.
func classify(raw *model.RawMessage, index int, cat *catalog.Catalog, minConfidence int) (out outcome) {
	out.index = index

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Message processing panicked", "message_id", raw.ID, "panic", r)
			out.reward = nil
			out.skip = &model.SkippedEmail{
				MessageID: raw.ID,
				Reason:    model.SkipProcessingError,
				Details:   fmt.Sprint(r),
			}
		}
	}()

	msg := normalize.Message(raw)

	candidates := cat.Candidates(msg.SenderDomain())
	if len(candidates) == 0 {
		out.skip = &model.SkippedEmail{
			MessageID:   msg.ID,
			Subject:     msg.Subject,
			FromAddress: msg.FromAddress,
			Reason:      model.SkipNoProviderCandidate,
			Details:     fmt.Sprintf("sender domain %q matched no enabled provider", msg.SenderDomain()),
		}
		return out
	}

	bestScore := 0
	bestReason := ""
	for _, rule := range candidates {
		result := match.Match(msg, rule)
		if result.Matched && result.ConfidenceScore >= minConfidence {
			out.reward = &model.ExtractedReward{
				ProgramID:          rule.ID,
				DisplayName:        rule.DisplayName,
				Category:           rule.Category,
				Balance:            result.Reward.RawBalance,
				BalanceDisplayText: result.Reward.BalanceDisplayText,
				EstimatedValue:     valuation.Estimate(rule.Category, result.Reward.RawBalance, rule.ValuePerUnit),
				SourceMessageID:    msg.ID,
				MessageDate:        msg.ReceivedAt,
				ConfidenceScore:    result.ConfidenceScore,
			}
			return out
		}

		if result.ConfidenceScore > bestScore {
			bestScore = result.ConfidenceScore
		}
		// Prefer the most informative reason seen so far.
		switch {
		case result.Matched:
			bestReason = model.SkipBelowConfidence
		case result.SkipReason == model.SkipNoBalancePattern && bestReason != model.SkipBelowConfidence:
			bestReason = model.SkipNoBalancePattern
		}
	}

	if bestReason == "" {
		bestReason = model.SkipNoDomainMatch
	}
	out.skip = &model.SkippedEmail{
		MessageID:   msg.ID,
		Subject:     msg.Subject,
		FromAddress: msg.FromAddress,
		Reason:      bestReason,
		Details:     fmt.Sprintf("best attempted confidence %d", bestScore),
	}
	return out
}

// collect deduplicates accepted rewards and computes the summary. Dedup runs
// in arrival order with a deterministic tie-break (latest message date, then
// higher confidence, then later arrival), so worker scheduling never changes
// the output.
func collect(outcomes []outcome, total int) *Result {
	result := &Result{}

	type kept struct {
		reward model.ExtractedReward
		pos    int
	}
	byProgram := make(map[string]kept)
	processed := 0

	for i, out := range outcomes {
		if out.reward == nil && out.skip == nil {
			continue // never classified: canceled before dispatch
		}
		processed++
		if out.skip != nil {
			result.Skipped = append(result.Skipped, *out.skip)
			continue
		}
		r := *out.reward
		prev, ok := byProgram[r.ProgramID]
		if !ok || supersedes(r, prev.reward) {
			byProgram[r.ProgramID] = kept{reward: r, pos: i}
		}
	}

	// Emit kept rewards in arrival order of the surviving message.
	positions := make([]int, 0, len(byProgram))
	chosen := make(map[int]model.ExtractedReward, len(byProgram))
	for _, k := range byProgram {
		positions = append(positions, k.pos)
		chosen[k.pos] = k.reward
	}
	sort.Ints(positions)
	for _, p := range positions {
		result.Rewards = append(result.Rewards, chosen[p])
	}

	var confidenceSum, totalValue int64
	for _, r := range result.Rewards {
		confidenceSum += int64(r.ConfidenceScore)
		totalValue += r.EstimatedValue
	}
	avg := 0
	if len(result.Rewards) > 0 {
		avg = int(confidenceSum / int64(len(result.Rewards)))
	}

	result.Summary = model.ScanSummary{
		TotalMessagesConsidered: total,
		MessagesProcessed:       processed,
		RewardsFound:            len(result.Rewards),
		SkippedCount:            len(result.Skipped),
		AverageConfidence:       avg,
		TotalEstimatedValue:     totalValue,
	}
	return result
}

// supersedes reports whether candidate replaces incumbent for the same
// program: later message date wins, then higher confidence, then later
// arrival. Candidate is always the later arrival here.
func supersedes(candidate, incumbent model.ExtractedReward) bool {
	if candidate.MessageDate.After(incumbent.MessageDate) {
		return true
	}
	if incumbent.MessageDate.After(candidate.MessageDate) {
		return false
	}
	return candidate.ConfidenceScore >= incumbent.ConfidenceScore
}
