package classify

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	rs := DefaultRules()
	if len(rs.CorporateKeywords) == 0 {
		t.Fatal("DefaultRules has no corporate keywords")
	}
	if len(rs.AcademicEmailDomains) == 0 {
		t.Fatal("DefaultRules has no academic email domains")
	}

	wantKeywords := []string{"pharma", "inc", "gmbh", "co."}
	for _, kw := range wantKeywords {
		if !containsTerm(rs.CorporateKeywords, kw) {
			t.Errorf("DefaultRules missing keyword %q", kw)
		}
	}
	for _, d := range []string{"edu", "ac", "gov"} {
		if !containsTerm(rs.AcademicEmailDomains, d) {
			t.Errorf("DefaultRules missing academic domain %q", d)
		}
	}
}

func containsTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `corporate_keywords:
  - skunkworks
  - inc
academic_email_domains:
  - edu
`)

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if want := []string{"skunkworks", "inc"}; !reflect.DeepEqual(rs.CorporateKeywords, want) {
		t.Errorf("CorporateKeywords = %v, want %v", rs.CorporateKeywords, want)
	}
	if want := []string{"edu"}; !reflect.DeepEqual(rs.AcademicEmailDomains, want) {
		t.Errorf("AcademicEmailDomains = %v, want %v", rs.AcademicEmailDomains, want)
	}
}

func TestLoadRulesPartialFileKeepsDefaults(t *testing.T) {
	path := writeRules(t, `corporate_keywords:
  - skunkworks
`)

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if want := []string{"skunkworks"}; !reflect.DeepEqual(rs.CorporateKeywords, want) {
		t.Errorf("CorporateKeywords = %v, want %v", rs.CorporateKeywords, want)
	}
	if want := DefaultRules().AcademicEmailDomains; !reflect.DeepEqual(rs.AcademicEmailDomains, want) {
		t.Errorf("AcademicEmailDomains = %v, want defaults %v", rs.AcademicEmailDomains, want)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadRules on a missing file returned nil error")
	}
	if !strings.Contains(err.Error(), "reading rules file") {
		t.Errorf("error = %q, want reading context", err)
	}
}

func TestLoadRulesMalformed(t *testing.T) {
	path := writeRules(t, "corporate_keywords: [unterminated\n")

	_, err := LoadRules(path)
	if err == nil {
		t.Fatal("LoadRules on malformed YAML returned nil error")
	}
	if !strings.Contains(err.Error(), "parsing rules file") {
		t.Errorf("error = %q, want parsing context", err)
	}
}

func TestNormalizeTerms(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases", []string{"Inc", "GMBH"}, []string{"inc", "gmbh"}},
		{"trims", []string{"  pharma ", "\tltd\n"}, []string{"pharma", "ltd"}},
		{"drops empties", []string{"inc", "", "   "}, []string{"inc"}},
		{"dedupes preserving order", []string{"inc", "ltd", "INC", "ltd"}, []string{"inc", "ltd"}},
		{"nil input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTerms(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTerms(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
