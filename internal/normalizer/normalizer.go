// Package normalizer maps raw statement descriptions to canonical vendor
// names. It evaluates a curated, ordered table of anchored regular
// expressions; the table order is an input, not something the normalizer
// computes, so more specific variants (KROGER FUEL) must be listed ahead of
// their generic parent (KROGER).
package normalizer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pattern is one row of the normalization table: an anchored,
// case-insensitive regular expression and the canonical vendor it resolves
// to.
type Pattern struct {
	Match  string `yaml:"match"`
	Vendor string `yaml:"vendor"`
}

type entry struct {
	re     *regexp.Regexp
	vendor string
}

// Normalizer resolves descriptions to canonical vendors. It is immutable
// after construction and safe for concurrent use.
type Normalizer struct {
	entries []entry
}

// New compiles the given pattern table, preserving its order. Each pattern is
// anchored at the start of the description and matched case-insensitively.
func New(patterns []Pattern) (*Normalizer, error) {
	entries := make([]entry, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)^(?:" + p.Match + ")")
		if err != nil {
			return nil, fmt.Errorf("compiling vendor pattern %q: %w", p.Match, err)
		}
		entries = append(entries, entry{re: re, vendor: p.Vendor})
	}
	return &Normalizer{entries: entries}, nil
}

// LoadPatterns reads a pattern table from a YAML file. The file is a plain
// list of {match, vendor} pairs whose order is significant.
func LoadPatterns(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("reading vendor patterns file: %w", err)
	}
	var patterns []Pattern
	if err := yaml.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("parsing vendor patterns file: %w", err)
	}
	return patterns, nil
}

// Normalize returns the canonical vendor for a raw description. The first
// pattern that matches from the start of the upper-cased description wins.
// With no match the first whitespace-delimited token is used; an empty
// description yields "".
func (n *Normalizer) Normalize(description string) string {
	d := strings.ToUpper(strings.TrimSpace(description))
	if d == "" {
		return ""
	}

	for _, e := range n.entries {
		if e.re.MatchString(d) {
			return e.vendor
		}
	}

	return strings.Fields(d)[0]
}
