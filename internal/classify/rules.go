// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// RuleSet holds the externalized classification rules: corporate keywords
// matched against affiliation text, and the domain markers that identify
// an academic email address. Rule files let a team tune the heuristic
// without rebuilding. Implements: prd002-classification R4.
type RuleSet struct {
	// CorporateKeywords are matched case-insensitively against affiliation
	// text at word boundaries. Multi-word phrases and dotted suffixes
	// ("co.") are matched literally.
	CorporateKeywords []string `yaml:"corporate_keywords" json:"corporate_keywords"`

	// AcademicEmailDomains are the domain labels that mark an email as
	// academic or governmental: "edu" covers stanford.edu and unam.edu.mx,
	// "ac" covers ox.ac.uk, "gov" covers nih.gov.
	AcademicEmailDomains []string `yaml:"academic_email_domains" json:"academic_email_domains"`
}

// DefaultRules returns the compiled-in rule set (R4.1). Legal-suffix
// tokens ("inc", "gmbh") carry most of the signal; sector terms
// ("pharma", "therapeutics") catch companies named without one.
func DefaultRules() RuleSet {
	return RuleSet{
		CorporateKeywords: []string{
			"pharma",
			"biotech",
			"biosciences",
			"therapeutics",
			"diagnostics",
			"inc",
			"ltd",
			"llc",
			"gmbh",
			"ag",
			"plc",
			"corp",
			"co.",
			"industries",
			"solutions",
			"company",
			"laboratories",
			"labs",
		},
		AcademicEmailDomains: []string{"edu", "ac", "gov"},
	}
}

// LoadRules reads a YAML rule set from path. A list missing from the file
// falls back to the default list, so a rules file can override just one
// of the two (R4.2, R4.4).
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("reading rules file: %w", err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	def := DefaultRules()
	if len(rs.CorporateKeywords) == 0 {
		rs.CorporateKeywords = def.CorporateKeywords
	}
	if len(rs.AcademicEmailDomains) == 0 {
		rs.AcademicEmailDomains = def.AcademicEmailDomains
	}
	return rs, nil
}

// normalizeTerms lowercases and trims terms, dropping empties and
// duplicates while preserving order (R4.3). Order matters: the first
// keyword to match supplies MatchedTerm.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
