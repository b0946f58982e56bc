package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perkflow/perkflow/internal/model"
)

// catalogFile is the on-disk catalogue schema. Enabled is a pointer so that
// an omitted field means enabled, matching how people actually author these
// files.
type catalogFile struct {
	Providers []fileRule `yaml:"providers"`
}

type fileRule struct {
	ID              string         `yaml:"id"`
	DisplayName     string         `yaml:"display_name"`
	Category        model.Category `yaml:"category"`
	SenderDomains   []string       `yaml:"sender_domains"`
	SubjectPatterns []string       `yaml:"subject_patterns"`
	BalancePatterns []string       `yaml:"balance_patterns"`
	ContextPatterns []string       `yaml:"context_patterns"`
	ValuePerUnit    float64        `yaml:"value_per_unit"`
	UnitScale       int64          `yaml:"unit_scale"`
	Enabled         *bool          `yaml:"enabled"`
}

// LoadFile reads a provider catalogue from a YAML file, validating and
// compiling every rule. Any bad entry fails the whole load; a scan never
// runs against a half-valid catalogue.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalogue from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("catalogue contains no providers")
	}

	rules := make([]ProviderRule, 0, len(file.Providers))
	for _, fr := range file.Providers {
		enabled := true
		if fr.Enabled != nil {
			enabled = *fr.Enabled
		}
		rules = append(rules, ProviderRule{
			ID:              fr.ID,
			DisplayName:     fr.DisplayName,
			Category:        fr.Category,
			SenderDomains:   fr.SenderDomains,
			SubjectPatterns: fr.SubjectPatterns,
			BalancePatterns: fr.BalancePatterns,
			ContextPatterns: fr.ContextPatterns,
			ValuePerUnit:    fr.ValuePerUnit,
			UnitScale:       fr.UnitScale,
			Enabled:         enabled,
		})
	}

	return New(rules)
}
