// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify flags non-academic (industry) authors from affiliation
// text and contact email domains using a rule-based heuristic.
// Implements: prd002-classification (R1-R4);
//
//	docs/ARCHITECTURE § Classification.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/paperscreen/pkg/types"
)

// Result is the classifier verdict for one author record.
type Result struct {
	// NonAcademic is true when either signal fired.
	NonAcademic bool `json:"non_academic"`

	// MatchedTerm is the evidence: the keyword as written in the
	// affiliation text, or the email domain. Empty for academic.
	MatchedTerm string `json:"matched_term,omitempty"`
}

// Classifier applies a RuleSet to author records. Construct with New;
// the zero value matches nothing.
type Classifier struct {
	keywords []string
	domains  []string
}

// New builds a Classifier from rules, normalizing both lists (R4.3).
func New(rules RuleSet) *Classifier {
	return &Classifier{
		keywords: normalizeTerms(rules.CorporateKeywords),
		domains:  normalizeTerms(rules.AcademicEmailDomains),
	}
}

// Classify applies both signals to an affiliation string and an email
// address. The signals are independent and either suffices (R3.1); the
// affiliation signal is checked first and supplies MatchedTerm when both
// fire (R3.2). An empty affiliation with an empty email is academic, the
// conservative default (R3.3).
func (c *Classifier) Classify(affiliation, email string) Result {
	if term := c.matchKeyword(affiliation); term != "" {
		return Result{NonAcademic: true, MatchedTerm: term}
	}
	if domain := emailDomain(email); domain != "" && !c.academicDomain(domain) {
		return Result{NonAcademic: true, MatchedTerm: domain}
	}
	return Result{}
}

// ClassifyAuthor wraps Classify for a types.Author record.
func (c *Classifier) ClassifyAuthor(a types.Author) types.ClassifiedAuthor {
	res := c.Classify(a.Affiliation, a.Email)
	return types.ClassifiedAuthor{
		Author:      a,
		NonAcademic: res.NonAcademic,
		MatchedTerm: res.MatchedTerm,
	}
}

// matchKeyword returns the first corporate keyword found in the
// affiliation at word boundaries, as written in the source text ("Inc"
// for keyword "inc"), or "" when none matches. Boundary matching keeps
// "inc" from firing inside "Princeton" (R1.1-R1.4).
func (c *Classifier) matchKeyword(affiliation string) string {
	if affiliation == "" {
		return ""
	}
	lower := asciiLower(affiliation)
	for _, kw := range c.keywords {
		if idx := indexWord(lower, kw); idx >= 0 {
			return affiliation[idx : idx+len(kw)]
		}
	}
	return ""
}

// academicDomain reports whether domain matches an academic marker:
// the marker exactly, as a ".marker" suffix, or as an interior ".marker."
// label. Covers stanford.edu, ox.ac.uk, and cancer.gov.au while leaving
// biotechcorp.com and edu.com untouched (R2.2).
func (c *Classifier) academicDomain(domain string) bool {
	for _, m := range c.domains {
		if domain == m || strings.HasSuffix(domain, "."+m) || strings.Contains(domain, "."+m+".") {
			return true
		}
	}
	return false
}

// emailDomain returns the lowercased domain of addr with trailing dots
// trimmed, or "" when addr is empty or has no domain part (R2.1).
func emailDomain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimRight(addr[at+1:], "."))
}

// indexWord returns the byte offset of the first occurrence of word in s
// delimited by non-alphanumeric runes or string edges, or -1.
func indexWord(s, word string) int {
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return -1
		}
		idx += start
		if isBoundary(s, idx, idx+len(word)) {
			return idx
		}
		start = idx + 1
	}
}

// isBoundary reports whether s[from:to] is bounded by non-word runes.
func isBoundary(s string, from, to int) bool {
	if from > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:from]); isWordRune(r) {
			return false
		}
	}
	if to < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[to:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// asciiLower lowercases ASCII letters only, so byte offsets into the
// result map back to the original string even when the affiliation
// carries multibyte runes.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
