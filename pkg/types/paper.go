// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperscreen pipeline.
// Implements: prd001-fetch (Query, Paper, Author, R3.1-R3.6);
//
//	prd002-classification (ClassifiedAuthor, R1.4, R2.4);
//	prd003-screen (ScreenedPaper, R1.1-R1.4).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import (
	"strings"
	"time"
)

// Query holds the PubMed search parameters (prd001-fetch R1.1, R1.2).
type Query struct {
	// Term is the free-text search expression, passed to esearch verbatim
	// (PubMed field tags like "cancer[Title]" work unmodified).
	Term string `json:"term" yaml:"term"`

	// From bounds the publication date range (inclusive). Zero means open.
	From time.Time `json:"from,omitempty" yaml:"from,omitempty"`

	// To bounds the publication date range (inclusive). Zero means open.
	To time.Time `json:"to,omitempty" yaml:"to,omitempty"`
}

// IsEmpty reports whether the query contains no searchable term (prd001-fetch R1.3).
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Term) == ""
}

// Author is one entry of a paper's author list as the source reports it.
// Affiliation and Email are empty when the record omits them.
type Author struct {
	// Name is the display name ("Jane Doe" or a collective name).
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw affiliation text. Authors with several
	// affiliations have them joined with "; " (prd001-fetch R3.4).
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the contact address embedded in the affiliation text,
	// when present (prd001-fetch R3.5).
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Paper holds one fetched literature record.
// Per prd001-fetch R3: identifier, title, source-format publication date,
// and the author list in source order.
type Paper struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date in source format ("2020-Jan-15",
	// "1998 Dec-1999 Jan", "2021"). Never normalized (prd001-fetch R3.2).
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// DOI is the digital object identifier, when the record carries one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

// ClassifiedAuthor is an Author plus the classifier verdict.
// Per prd002-classification R1.4, R2.4.
type ClassifiedAuthor struct {
	Author `yaml:",inline"`

	// NonAcademic is true when either classification signal fired.
	NonAcademic bool `json:"non_academic" yaml:"non_academic"`

	// MatchedTerm is the evidence for a non-academic verdict: the
	// affiliation substring as it appears in the source text, or the
	// email domain when only the email signal fired. Empty for academic.
	MatchedTerm string `json:"matched_term,omitempty" yaml:"matched_term,omitempty"`
}

// ScreenedPaper is a Paper with classified authors and the aggregates
// the report columns are built from. Per prd003-screen R1.
type ScreenedPaper struct {
	// PMID, Title, PubDate and DOI mirror the fetched Paper.
	PMID    string `json:"pmid" yaml:"pmid"`
	Title   string `json:"title" yaml:"title"`
	PubDate string `json:"pub_date" yaml:"pub_date"`
	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Authors is the full author list with per-author verdicts.
	Authors []ClassifiedAuthor `json:"authors" yaml:"authors"`

	// NonAcademicAuthors lists the names of flagged authors,
	// deduplicated, in source order (prd003-screen R1.2).
	NonAcademicAuthors []string `json:"non_academic_authors,omitempty" yaml:"non_academic_authors,omitempty"`

	// CompanyAffiliations lists the affiliation strings of flagged
	// authors, deduplicated, in source order (prd003-screen R1.3).
	CompanyAffiliations []string `json:"company_affiliations,omitempty" yaml:"company_affiliations,omitempty"`

	// CorrespondingEmail is the first non-empty author email in source
	// order (prd003-screen R1.4).
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}

// HasNonAcademic reports whether at least one author was flagged.
func (p ScreenedPaper) HasNonAcademic() bool {
	return len(p.NonAcademicAuthors) > 0
}
