package model

import "time"

// Category groups loyalty programs by what their balance unit means.
type Category string

// Program categories.
const (
	CategoryMiles            Category = "Miles"
	CategoryHotelPoints      Category = "Hotel Points"
	CategoryCreditCardPoints Category = "Credit Card Points"
	CategoryTravelCredit     Category = "Travel Credit"
	CategoryCashBack         Category = "Cash Back"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMiles, CategoryHotelPoints, CategoryCreditCardPoints,
		CategoryTravelCredit, CategoryCashBack:
		return true
	}
	return false
}

// Signal names the independent evidence sources that contribute to a match's
// confidence score.
type Signal string

// Match signals. SignalBalance and SignalBalanceHeuristic are mutually
// exclusive on any single result.
const (
	SignalDomain           Signal = "domain"
	SignalSubject          Signal = "subject"
	SignalBalance          Signal = "balance"
	SignalBalanceHeuristic Signal = "balance-heuristic"
	SignalContext          Signal = "context"
)

// Skip reasons surfaced on SkippedEmail and MatchResult.
const (
	SkipNoDomainMatch       = "no-domain-match"
	SkipNoBalancePattern    = "no-balance-pattern"
	SkipNoProviderCandidate = "no-provider-candidate"
	SkipBelowConfidence     = "below-confidence"
	SkipProcessingError     = "processing-error"
)

// RewardDetail is the extracted payload of a successful match.
type RewardDetail struct {
	ProgramID          string
	Category           Category
	RawBalance         int64 // smallest stored unit: cents for cash back, points/miles otherwise
	BalanceDisplayText string
	ContextDate        string // optional date/flight capture, verbatim
}

// MatchResult is the matcher's verdict for one (message, provider) pair.
// Matched implies Reward is non-nil and Reward.RawBalance > 0. A non-match
// still carries whatever partial score and signals accumulated, for
// diagnostics.
type MatchResult struct {
	Matched         bool
	ConfidenceScore int
	MatchedSignals  []Signal
	Reward          *RewardDetail
	SkipReason      string
}

// HasSignal reports whether the named signal contributed to this result.
func (r *MatchResult) HasSignal(s Signal) bool {
	for _, got := range r.MatchedSignals {
		if got == s {
			return true
		}
	}
	return false
}

// ExtractedReward is one finalized reward record for a scan. The set of
// extracted rewards from a scan fully replaces any prior set for the same
// user; a scan is a refresh, not a merge.
type ExtractedReward struct {
	ProgramID          string
	DisplayName        string
	Category           Category
	Balance            int64
	BalanceDisplayText string
	EstimatedValue     int64 // whole currency units
	SourceMessageID    string
	MessageDate        time.Time
	ConfidenceScore    int
}

// SkippedEmail records why a message yielded no reward. Diagnostic only.
type SkippedEmail struct {
	MessageID   string
	Subject     string
	FromAddress string
	Reason      string
	Details     string
}

// ScanSummary aggregates one full scan.
type ScanSummary struct {
	TotalMessagesConsidered int
	MessagesProcessed       int
	RewardsFound            int
	SkippedCount            int
	AverageConfidence       int
	TotalEstimatedValue     int64
}
