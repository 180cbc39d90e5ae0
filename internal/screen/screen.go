// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen runs the screening pipeline: fetch papers for a query,
// classify every author, and aggregate the flagged ones per paper.
// Implements: prd003-screen (R1-R3); docs/ARCHITECTURE § Screen.
package screen

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperscreen/internal/classify"
	"github.com/pdiddy/paperscreen/pkg/types"
)

// Source fetches papers for a query. pubmed.Client implements it; tests
// substitute a fake (R3.1).
type Source interface {
	Name() string
	Search(ctx context.Context, query types.Query) ([]types.Paper, error)
}

// Options control which papers make it into the result.
type Options struct {
	// IncludeAll keeps papers with no flagged authors. The default is
	// the screening behavior: only papers with at least one
	// non-academic author are reported (R2.1, R2.2).
	IncludeAll bool
}

// Summary holds the run counters.
type Summary struct {
	// Fetched is the number of papers returned by the source.
	Fetched int

	// Flagged is the number of fetched papers with at least one
	// non-academic author.
	Flagged int

	// Reported is the number of papers in the returned slice.
	Reported int
}

// Run fetches papers matching query from src, classifies every author,
// and returns the screened papers in fetch order with the run summary.
// A fetch failure is terminal: no partial result is returned (R3.2).
func Run(ctx context.Context, src Source, query types.Query, c *classify.Classifier, opts Options, log zerolog.Logger) ([]types.ScreenedPaper, Summary, error) {
	log = log.With().Str("component", "screen").Str("source", src.Name()).Logger()

	papers, err := src.Search(ctx, query)
	if err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{Fetched: len(papers)}
	screened := make([]types.ScreenedPaper, 0, len(papers))
	for _, p := range papers {
		sp := screenPaper(p, c)

		if sp.HasNonAcademic() {
			summary.Flagged++
		}
		log.Debug().
			Str("pmid", sp.PMID).
			Int("authors", len(sp.Authors)).
			Strs("non_academic", sp.NonAcademicAuthors).
			Msg("paper screened")

		if !sp.HasNonAcademic() && !opts.IncludeAll {
			continue
		}
		screened = append(screened, sp)
	}
	summary.Reported = len(screened)

	log.Debug().
		Int("fetched", summary.Fetched).
		Int("flagged", summary.Flagged).
		Int("reported", summary.Reported).
		Msg("screening complete")
	return screened, summary, nil
}

// screenPaper classifies every author of p and builds the report
// aggregates: flagged names and affiliations deduplicated in source
// order, and the first non-empty author email as the corresponding
// address (R1.1-R1.4).
func screenPaper(p types.Paper, c *classify.Classifier) types.ScreenedPaper {
	sp := types.ScreenedPaper{
		PMID:    p.PMID,
		Title:   p.Title,
		PubDate: p.PubDate,
		DOI:     p.DOI,
		Authors: make([]types.ClassifiedAuthor, 0, len(p.Authors)),
	}

	seenNames := make(map[string]struct{})
	seenAffiliations := make(map[string]struct{})
	for _, a := range p.Authors {
		ca := c.ClassifyAuthor(a)
		sp.Authors = append(sp.Authors, ca)

		if sp.CorrespondingEmail == "" && a.Email != "" {
			sp.CorrespondingEmail = a.Email
		}
		if !ca.NonAcademic {
			continue
		}

		if _, ok := seenNames[ca.Name]; !ok {
			seenNames[ca.Name] = struct{}{}
			sp.NonAcademicAuthors = append(sp.NonAcademicAuthors, ca.Name)
		}
		if ca.Affiliation != "" {
			if _, ok := seenAffiliations[ca.Affiliation]; !ok {
				seenAffiliations[ca.Affiliation] = struct{}{}
				sp.CompanyAffiliations = append(sp.CompanyAffiliations, ca.Affiliation)
			}
		}
	}
	return sp
}
