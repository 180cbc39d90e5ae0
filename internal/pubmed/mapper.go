// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paperscreen/pkg/types"
)

// emailPattern finds addresses embedded in affiliation text, e.g.
// "... Electronic address: jdoe@example.org.". The trailing sentence dot
// falls outside the match.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// articleToPaper maps one PubmedArticle to the pipeline record.
// Missing elements become empty fields, never errors (prd001-fetch R3.5).
func articleToPaper(pa pubmedArticle) types.Paper {
	citation := pa.MedlineCitation
	return types.Paper{
		PMID:    strings.TrimSpace(citation.PMID),
		Title:   strings.TrimSpace(citation.Article.ArticleTitle),
		PubDate: formatPubDate(citation.Article),
		DOI:     extractDOI(citation.Article, pa.PubmedData),
		Authors: extractAuthors(citation.Article.AuthorList),
	}
}

// formatPubDate renders the publication date in source format rather than
// normalizing it (prd001-fetch R3.2): MedlineDate verbatim when present,
// otherwise the structured parts joined with "-" ("2020-Jan-15", "2021"),
// with the season appended when the issue has one instead of a month.
// Falls back to the first usable ArticleDate.
func formatPubDate(a article) string {
	pd := a.Journal.JournalIssue.PubDate
	if md := strings.TrimSpace(pd.MedlineDate); md != "" {
		return md
	}
	if s := joinDateParts(pd.Year, pd.Month, pd.Day); s != "" {
		if pd.Season != "" && pd.Month == "" {
			return s + " " + pd.Season
		}
		return s
	}
	for _, ad := range a.ArticleDate {
		if s := joinDateParts(ad.Year, ad.Month, ad.Day); s != "" {
			return s
		}
	}
	return ""
}

func joinDateParts(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, "-")
}

// extractAuthors flattens the author list. Authors with ValidYN="N" are
// corrections superseded elsewhere in the record and are skipped, as are
// entries with no resolvable name. A collective name is used whole;
// otherwise ForeName and LastName join with a space (prd001-fetch R3.3).
func extractAuthors(al *authorList) []types.Author {
	if al == nil || len(al.Authors) == 0 {
		return nil
	}

	authors := make([]types.Author, 0, len(al.Authors))
	for _, a := range al.Authors {
		if a.ValidYN == "N" {
			continue
		}

		name := strings.TrimSpace(a.CollectiveName)
		if name == "" {
			parts := make([]string, 0, 2)
			if a.ForeName != "" {
				parts = append(parts, a.ForeName)
			}
			if a.LastName != "" {
				parts = append(parts, a.LastName)
			}
			name = strings.Join(parts, " ")
		}
		if name == "" {
			continue
		}

		affiliation := joinAffiliations(a.AffiliationInfo)
		authors = append(authors, types.Author{
			Name:        name,
			Affiliation: affiliation,
			Email:       emailPattern.FindString(affiliation),
		})
	}
	return authors
}

// joinAffiliations concatenates every affiliation of an author with "; ".
// PubMed records routinely carry more than one and any of them can hold
// the corporate keyword or the contact address (prd001-fetch R3.4).
func joinAffiliations(infos []affiliationInfo) string {
	if len(infos) == 0 {
		return ""
	}
	parts := make([]string, 0, len(infos))
	for _, ai := range infos {
		if s := strings.TrimSpace(ai.Affiliation); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}

// extractDOI prefers ELocationID (authoritative when valid) and falls back
// to the ArticleIdList.
func extractDOI(a article, pd pubmedData) string {
	for _, eloc := range a.ELocationID {
		if eloc.EIdType == "doi" && eloc.ValidYN != "N" {
			return strings.TrimSpace(eloc.Value)
		}
	}
	for _, aid := range pd.ArticleIDList.IDs {
		if aid.IDType == "doi" {
			return strings.TrimSpace(aid.Value)
		}
	}
	return ""
}
