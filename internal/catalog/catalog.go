// Package catalog holds the provider catalogue: the recognition profiles for
// every known loyalty program. Rules are data; they are validated and their
// patterns compiled once at load time so that a malformed entry fails before
// any scan runs.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/perkflow/perkflow/internal/model"
)

// ProviderRule is one loyalty program's recognition profile in its data form,
// as authored in the built-in table or a catalogue file.
type ProviderRule struct {
	ID              string         `yaml:"id"`
	DisplayName     string         `yaml:"display_name"`
	Category        model.Category `yaml:"category"`
	SenderDomains   []string       `yaml:"sender_domains"`
	SubjectPatterns []string       `yaml:"subject_patterns"`
	BalancePatterns []string       `yaml:"balance_patterns"`
	ContextPatterns []string       `yaml:"context_patterns,omitempty"`
	ValuePerUnit    float64        `yaml:"value_per_unit"`
	UnitScale       int64          `yaml:"unit_scale,omitempty"` // capture multiplier; 100 turns cash-back dollars into cents
	Enabled         bool           `yaml:"enabled"`
}

// CompiledRule is a ProviderRule with its patterns compiled. Compilation is
// the only place regexes are built; scan time never compiles.
type CompiledRule struct {
	ProviderRule
	subjectRes []*regexp.Regexp
	balanceRes []*regexp.Regexp
	contextRes []*regexp.Regexp
}

// MatchesDomain reports whether a sender domain identifies this provider.
// Matching is substring in both directions so that news.delta.com matches a
// registered delta.com and vice versa.
func (r *CompiledRule) MatchesDomain(senderDomain string) bool {
	if senderDomain == "" {
		return false
	}
	for _, d := range r.SenderDomains {
		if strings.Contains(senderDomain, d) || strings.Contains(d, senderDomain) {
			return true
		}
	}
	return false
}

// MatchesSubject reports whether any subject pattern matches.
func (r *CompiledRule) MatchesSubject(subject string) bool {
	for _, re := range r.subjectRes {
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}

// FirstBalanceCapture tries each balance pattern in order against the body
// and returns the first non-empty capture group. Order is part of the rule's
// contract: earlier patterns are more specific.
func (r *CompiledRule) FirstBalanceCapture(body string) (string, bool) {
	for _, re := range r.balanceRes {
		if m := re.FindStringSubmatch(body); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// ContextCapture returns the first context-pattern capture (a date or flight
// identifier) from the body, if any pattern matches.
func (r *CompiledRule) ContextCapture(body string) (string, bool) {
	for _, re := range r.contextRes {
		if m := re.FindStringSubmatch(body); m != nil {
			if len(m) > 1 {
				return m[1], true
			}
			return m[0], true
		}
	}
	return "", false
}

// Scale returns the multiplier applied to a captured balance, defaulting to 1.
func (r *CompiledRule) Scale() int64 {
	if r.UnitScale <= 0 {
		return 1
	}
	return r.UnitScale
}

// Catalog is an immutable, ordered collection of compiled provider rules.
// Pass it by value into the orchestrator; there is no shared mutable state.
type Catalog struct {
	rules []*CompiledRule
}

// New validates and compiles a set of provider rules into a catalogue.
// Any invalid rule is a load-time error; no partially valid catalogue is
// ever returned.
func New(rules []ProviderRule) (*Catalog, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	seen := make(map[string]bool, len(rules))

	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			return nil, err
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("provider %q: duplicate id", rule.ID)
		}
		seen[rule.ID] = true

		cr := &CompiledRule{ProviderRule: rule}
		var err error
		if cr.subjectRes, err = compilePatterns(rule.ID, "subject", rule.SubjectPatterns); err != nil {
			return nil, err
		}
		if cr.balanceRes, err = compilePatterns(rule.ID, "balance", rule.BalancePatterns); err != nil {
			return nil, err
		}
		if cr.contextRes, err = compilePatterns(rule.ID, "context", rule.ContextPatterns); err != nil {
			return nil, err
		}
		compiled = append(compiled, cr)
	}

	return &Catalog{rules: compiled}, nil
}

// MustNew is New for the built-in catalogue, where a compile failure is a
// programming error.
func MustNew(rules []ProviderRule) *Catalog {
	c, err := New(rules)
	if err != nil {
		panic(err)
	}
	return c
}

func validateRule(rule ProviderRule) error {
	if rule.ID == "" {
		return fmt.Errorf("provider rule missing id")
	}
	if rule.DisplayName == "" {
		return fmt.Errorf("provider %q: missing display name", rule.ID)
	}
	if !rule.Category.Valid() {
		return fmt.Errorf("provider %q: unknown category %q", rule.ID, rule.Category)
	}
	if len(rule.SenderDomains) == 0 {
		return fmt.Errorf("provider %q: no sender domains", rule.ID)
	}
	for _, d := range rule.SenderDomains {
		if strings.TrimSpace(d) == "" || strings.Contains(d, "*") {
			return fmt.Errorf("provider %q: empty or wildcard sender domain %q", rule.ID, d)
		}
	}
	if len(rule.BalancePatterns) == 0 {
		return fmt.Errorf("provider %q: no balance patterns", rule.ID)
	}
	if rule.ValuePerUnit < 0 {
		return fmt.Errorf("provider %q: negative value per unit", rule.ID)
	}
	return nil
}

func compilePatterns(id, kind string, patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p // case-insensitive by default
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("provider %q: invalid %s pattern %q: %w", id, kind, p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Rules returns all rules in catalogue order.
func (c *Catalog) Rules() []*CompiledRule {
	return c.rules
}

// Len returns the number of rules, enabled or not.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Candidates returns the enabled rules whose sender domains match the given
// domain, in catalogue order. Disabled rules never participate.
func (c *Catalog) Candidates(senderDomain string) []*CompiledRule {
	var out []*CompiledRule
	for _, r := range c.rules {
		if r.Enabled && r.MatchesDomain(senderDomain) {
			out = append(out, r)
		}
	}
	return out
}

// EnabledDomains returns the sender domains of all enabled rules, in
// catalogue order. Used to build mailbox search queries.
func (c *Catalog) EnabledDomains() []string {
	var out []string
	for _, r := range c.rules {
		if r.Enabled {
			out = append(out, r.SenderDomains...)
		}
	}
	return out
}

// Restrict returns a catalogue containing only the named providers, in the
// original order. Unknown ids are ignored. The receiver is unchanged, so a
// per-scan allow-list never touches shared state.
func (c *Catalog) Restrict(ids []string) *Catalog {
	if len(ids) == 0 {
		return c
	}
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	var rules []*CompiledRule
	for _, r := range c.rules {
		if allowed[r.ID] {
			rules = append(rules, r)
		}
	}
	return &Catalog{rules: rules}
}
