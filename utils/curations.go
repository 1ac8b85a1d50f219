package utils

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// CurationRule represents a single entry in a curation file
type CurationRule struct {
	Target  string `yaml:"target"`  // exact target or glob, e.g. "@maven://com.example:*"
	Exclude bool   `yaml:"exclude"` // drop matching records from the report
	Reason  string `yaml:"reason"`  // optional, informational
}

// Matches reports whether the rule applies to target
func (r CurationRule) Matches(target string) bool {
	if r.Target == target {
		return true
	}
	ok, err := doublestar.Match(r.Target, target)
	return err == nil && ok
}

// LoadCurations reads curation rules from a YAML file
func LoadCurations(curationFile string) ([]CurationRule, error) {
	data, err := os.ReadFile(curationFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read curation file: %w", err)
	}

	var rules []CurationRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse curation file: %w", err)
	}
	for i, r := range rules {
		if !doublestar.ValidatePattern(r.Target) {
			return nil, fmt.Errorf("curation rule %d: invalid target pattern %q", i, r.Target)
		}
	}
	return rules, nil
}

// ApplyCurations drops records excluded by the rules. Records are never rewritten.
func ApplyCurations(deps []SquareDependency, rules []CurationRule) []SquareDependency {
	if len(rules) == 0 {
		return deps
	}
	kept := make([]SquareDependency, 0, len(deps))
	for _, d := range deps {
		excluded := false
		for _, r := range rules {
			if r.Exclude && r.Matches(d.Target) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, d)
		}
	}
	return kept
}
