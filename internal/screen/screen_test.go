// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperscreen/internal/classify"
	"github.com/pdiddy/paperscreen/pkg/types"
)

// fakeSource returns canned papers or a canned error.
type fakeSource struct {
	papers []types.Paper
	err    error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Search(ctx context.Context, query types.Query) ([]types.Paper, error) {
	return f.papers, f.err
}

func testClassifier() *classify.Classifier {
	return classify.New(classify.DefaultRules())
}

func TestRunFiltersToFlaggedPapers(t *testing.T) {
	src := &fakeSource{papers: []types.Paper{
		{
			PMID:  "1",
			Title: "Industry trial",
			Authors: []types.Author{
				{Name: "Ann Chu", Affiliation: "Genentech Inc., South San Francisco, CA"},
				{Name: "Bo Lee", Affiliation: "Stanford University, Stanford, CA"},
			},
		},
		{
			PMID:  "2",
			Title: "Academic study",
			Authors: []types.Author{
				{Name: "Cara Diaz", Affiliation: "University of Oxford, Oxford, UK"},
			},
		},
	}}

	got, summary, err := Run(context.Background(), src, types.Query{Term: "q"}, testClassifier(), Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != 1 || got[0].PMID != "1" {
		t.Fatalf("Run kept %d papers, want only PMID 1: %+v", len(got), got)
	}
	want := Summary{Fetched: 2, Flagged: 1, Reported: 1}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRunIncludeAllKeepsAcademicPapers(t *testing.T) {
	src := &fakeSource{papers: []types.Paper{
		{PMID: "1", Authors: []types.Author{{Name: "A", Affiliation: "MIT, Cambridge, MA"}}},
		{PMID: "2", Authors: []types.Author{{Name: "B", Affiliation: "Novartis AG, Basel"}}},
	}}

	got, summary, err := Run(context.Background(), src, types.Query{Term: "q"}, testClassifier(), Options{IncludeAll: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Run kept %d papers, want 2", len(got))
	}
	want := Summary{Fetched: 2, Flagged: 1, Reported: 2}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRunAggregatesFlaggedAuthors(t *testing.T) {
	src := &fakeSource{papers: []types.Paper{{
		PMID:    "7",
		Title:   "Combination therapy",
		PubDate: "2024-Mar",
		Authors: []types.Author{
			{Name: "Dana Evans", Affiliation: "Harvard Medical School, Boston, MA", Email: "devans@hms.harvard.edu"},
			{Name: "Eli Fox", Affiliation: "Vertex Pharma, Boston, MA", Email: "efox@vrtx.com"},
			{Name: "Gus Hale", Affiliation: "Vertex Pharma, Boston, MA"},
			// Same person listed twice, e.g. a consortium entry.
			{Name: "Eli Fox", Affiliation: "Vertex Pharma, Boston, MA"},
		},
	}}}

	got, _, err := Run(context.Background(), src, types.Query{Term: "q"}, testClassifier(), Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Run kept %d papers, want 1", len(got))
	}
	sp := got[0]

	wantNames := []string{"Eli Fox", "Gus Hale"}
	if !reflect.DeepEqual(sp.NonAcademicAuthors, wantNames) {
		t.Errorf("NonAcademicAuthors = %v, want %v", sp.NonAcademicAuthors, wantNames)
	}
	wantAffiliations := []string{"Vertex Pharma, Boston, MA"}
	if !reflect.DeepEqual(sp.CompanyAffiliations, wantAffiliations) {
		t.Errorf("CompanyAffiliations = %v, want %v", sp.CompanyAffiliations, wantAffiliations)
	}

	// First non-empty email in source order, not the first flagged author's.
	if sp.CorrespondingEmail != "devans@hms.harvard.edu" {
		t.Errorf("CorrespondingEmail = %q, want %q", sp.CorrespondingEmail, "devans@hms.harvard.edu")
	}

	// The full author list keeps every entry with its verdict, in order.
	if len(sp.Authors) != 4 {
		t.Fatalf("len(Authors) = %d, want 4", len(sp.Authors))
	}
	if sp.Authors[0].NonAcademic {
		t.Errorf("academic author flagged: %+v", sp.Authors[0])
	}
	if !sp.Authors[1].NonAcademic || sp.Authors[1].MatchedTerm != "Pharma" {
		t.Errorf("flagged author verdict = %+v, want NonAcademic with MatchedTerm Pharma", sp.Authors[1])
	}
}

func TestRunFetchErrorIsTerminal(t *testing.T) {
	fetchErr := errors.New("esearch down")
	src := &fakeSource{err: fetchErr}

	got, summary, err := Run(context.Background(), src, types.Query{Term: "q"}, testClassifier(), Options{}, zerolog.Nop())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Run err = %v, want %v", err, fetchErr)
	}
	if got != nil {
		t.Errorf("Run returned papers alongside error: %+v", got)
	}
	if summary != (Summary{}) {
		t.Errorf("summary = %+v, want zero", summary)
	}
}

func TestRunZeroHits(t *testing.T) {
	src := &fakeSource{}

	got, summary, err := Run(context.Background(), src, types.Query{Term: "q"}, testClassifier(), Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Run returned %d papers for zero hits", len(got))
	}
	if summary != (Summary{}) {
		t.Errorf("summary = %+v, want zero", summary)
	}
}
