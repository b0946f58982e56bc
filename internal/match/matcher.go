// Package match implements the reward matcher: given one normalized message
// and one provider rule, it decides whether the message mentions a reward and
// how confident that call is.
//
// The score is an additive sum over independent signals:
//
//	domain 30, subject 20, balance 40 (or heuristic fallback 25), context 10
//
// Domain is a gate, not just a signal: a message that cannot be attributed to
// the provider's sender domains is rejected before any pattern work runs. A
// balance is mandatory; domain plus subject alone is never a reward.
package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/model"
)

// Signal point values. The maximum achievable score is 100.
const (
	domainPoints    = 30
	subjectPoints   = 20
	balancePoints   = 40
	heuristicPoints = 25 // lower than balancePoints: the fallback trades precision for recall
	contextPoints   = 10

	// heuristicCeiling bounds fallback captures so phone numbers and dates
	// do not pass as balances.
	heuristicCeiling = 1_000_000
)

// heuristicPatterns are the generic number-near-keyword templates used when
// no configured balance pattern hits. Built once; keyword order matters and
// earlier keywords win.
var heuristicPatterns = buildHeuristicPatterns([]string{"miles", "points", "earned"})

func buildHeuristicPatterns(keywords []string) []*regexp.Regexp {
	const number = `(\d{1,3}(?:,\d{3})*)`
	var patterns []*regexp.Regexp
	for _, kw := range keywords {
		kw = regexp.QuoteMeta(kw)
		patterns = append(patterns,
			regexp.MustCompile(`(?i)`+number+`\s*`+kw),
			regexp.MustCompile(`(?i)`+kw+`\s*[:=]?\s*`+number),
			regexp.MustCompile(`(?i)`+number+`\s+`+kw+`\s+earned`),
		)
	}
	return patterns
}

// Match scores one message against one provider rule. The result is a pure
// function of its inputs.
func Match(msg *model.NormalizedMessage, rule *catalog.CompiledRule) model.MatchResult {
	if !rule.MatchesDomain(msg.SenderDomain()) {
		return model.MatchResult{
			SkipReason: model.SkipNoDomainMatch,
		}
	}

	result := model.MatchResult{
		ConfidenceScore: domainPoints,
		MatchedSignals:  []model.Signal{model.SignalDomain},
	}

	subjectMatched := rule.MatchesSubject(msg.Subject)
	if subjectMatched {
		result.ConfidenceScore += subjectPoints
		result.MatchedSignals = append(result.MatchedSignals, model.SignalSubject)
	}

	balance, display, ok := extractBalance(msg.BodyText, rule)
	if ok {
		result.ConfidenceScore += balancePoints
		result.MatchedSignals = append(result.MatchedSignals, model.SignalBalance)
	} else if subjectMatched || strings.Contains(strings.ToLower(msg.BodyText), rule.ID) {
		// Provider formats drift. If the mail otherwise looks like this
		// provider's, fall back to a generic number-near-keyword search.
		balance, display, ok = heuristicBalance(msg.BodyText, rule.Scale())
		if ok {
			result.ConfidenceScore += heuristicPoints
			result.MatchedSignals = append(result.MatchedSignals, model.SignalBalanceHeuristic)
		}
	}

	if !ok {
		result.SkipReason = model.SkipNoBalancePattern
		return result
	}

	detail := &model.RewardDetail{
		ProgramID:          rule.ID,
		Category:           rule.Category,
		RawBalance:         balance,
		BalanceDisplayText: display,
	}

	if capture, matched := rule.ContextCapture(msg.BodyText); matched {
		result.ConfidenceScore += contextPoints
		result.MatchedSignals = append(result.MatchedSignals, model.SignalContext)
		detail.ContextDate = capture
	}

	result.Matched = true
	result.Reward = detail
	return result
}

// extractBalance runs the rule's balance patterns in order; the first
// pattern producing a positive numeric capture wins.
func extractBalance(body string, rule *catalog.CompiledRule) (int64, string, bool) {
	capture, ok := rule.FirstBalanceCapture(body)
	if !ok {
		return 0, "", false
	}
	n, err := parseAmount(capture)
	if err != nil || n <= 0 {
		return 0, "", false
	}
	return n * rule.Scale(), capture, true
}

// heuristicBalance searches for a number adjacent to a generic reward
// keyword, accepting only values inside the sanity bound.
func heuristicBalance(body string, scale int64) (int64, string, bool) {
	for _, re := range heuristicPatterns {
		m := re.FindStringSubmatch(body)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		n, err := parseAmount(m[1])
		if err != nil || n <= 0 || n >= heuristicCeiling {
			continue
		}
		return n * scale, m[1], true
	}
	return 0, "", false
}

func parseAmount(s string) (int64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}
