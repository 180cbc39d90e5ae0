// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes screened papers to CSV or JSON.
// Implements: prd004-report (R1-R3); docs/ARCHITECTURE § Report.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/paperscreen/pkg/types"
)

// csvHeader is the fixed column order of the CSV report (R1.1).
var csvHeader = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Write serializes papers to w in the given format. Unknown formats are
// an error so a typoed --format fails instead of silently picking CSV.
func Write(papers []types.ScreenedPaper, format types.ReportFormat, w io.Writer) error {
	switch format {
	case types.ReportCSV, "":
		return WriteCSV(papers, w)
	case types.ReportJSON:
		return WriteJSON(papers, w)
	default:
		return fmt.Errorf("unknown report format %q (use csv or json)", format)
	}
}

// WriteCSV writes the header row and one row per paper (R1.2): N papers
// produce exactly N+1 lines. Multi-value cells join with ", ".
func WriteCSV(papers []types.ScreenedPaper, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range papers {
		row := []string{
			p.PMID,
			p.Title,
			p.PubDate,
			strings.Join(p.NonAcademicAuthors, ", "),
			strings.Join(p.CompanyAffiliations, ", "),
			p.CorrespondingEmail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", p.PMID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteJSON writes papers as an indented JSON array (R2.1). An empty
// result serializes as [] rather than null.
func WriteJSON(papers []types.ScreenedPaper, w io.Writer) error {
	if papers == nil {
		papers = []types.ScreenedPaper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, or to stdout when path is empty
// (R3.1). Create and close failures carry the path (R3.2).
func WriteFile(papers []types.ScreenedPaper, format types.ReportFormat, path string) error {
	if path == "" {
		return Write(papers, format, os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file %s: %w", path, err)
	}

	if err := Write(papers, format, f); err != nil {
		f.Close()
		return fmt.Errorf("writing report file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file %s: %w", path, err)
	}
	return nil
}
