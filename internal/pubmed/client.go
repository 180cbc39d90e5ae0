// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed fetches bibliographic records from the NCBI PubMed
// E-utilities API. A search is two calls: esearch.fcgi resolves a query
// term to PMIDs, efetch.fcgi expands PMIDs to article records.
// Implements: prd001-fetch (R1-R6); docs/ARCHITECTURE § Fetch.
//
// API reference: https://www.ncbi.nlm.nih.gov/books/NBK25499/
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paperscreen/internal/httputil"
	"github.com/pdiddy/paperscreen/pkg/types"
)

// pubmedAPIBase is the E-utilities endpoint root. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "paperscreen/1.0 (+https://github.com/pdiddy/paperscreen)"
	defaultTool       = "paperscreen"
	defaultPageSize   = 100
	defaultMaxResults = 20

	// maxResultsLimit is the esearch retstart+retmax ceiling (R1.5).
	maxResultsLimit = 10000

	// efetchBatchSize is the most PMIDs sent to one efetch call (R2.3).
	efetchBatchSize = 200

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 10 << 20

	// NCBI allows 3 req/s without an API key and 10 req/s with one (R4.1).
	defaultRateLimit = 3
	keyedRateLimit   = 10
)

// Client queries PubMed. Construct with New. Requests share a token
// bucket so a run never exceeds the NCBI rate tier, and retry 429/5xx
// through httputil.DoWithRetry.
type Client struct {
	httpClient *http.Client
	cfg        types.FetchConfig
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// Page is one page of search results: the lazily-fetched cursor over a
// query's hits. NextOffset feeds the next SearchPage call while HasMore
// reports whether one exists (R6).
type Page struct {
	Papers     []types.Paper
	Total      int // total hits reported by esearch, not the page size
	NextOffset int
	HasMore    bool
}

// New builds a Client, applying NCBI defaults for unset fields: 30 s
// timeout, 100-id pages, a 20-record result cap, and the rate tier
// matching whether cfg.APIKey is set.
func New(cfg types.FetchConfig, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.MaxResults > maxResultsLimit {
		cfg.MaxResults = maxResultsLimit
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
		if cfg.APIKey != "" {
			cfg.RateLimit = keyedRateLimit
		}
	}

	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		log:        log.With().Str("component", "pubmed").Logger(),
	}
}

// Name identifies the source in logs and summaries.
func (c *Client) Name() string { return "pubmed" }

// Search runs the esearch/efetch pipeline for query, paging until the
// hits are exhausted or MaxResults is reached (R1).
func (c *Client) Search(ctx context.Context, query types.Query) ([]types.Paper, error) {
	if query.IsEmpty() {
		return nil, fmt.Errorf("empty pubmed query")
	}

	max := c.cfg.MaxResults
	var papers []types.Paper
	offset := 0
	for {
		limit := c.cfg.PageSize
		if remaining := max - len(papers); remaining < limit {
			limit = remaining
		}

		page, err := c.searchPage(ctx, query, offset, limit)
		if err != nil {
			return nil, err
		}
		papers = append(papers, page.Papers...)

		if !page.HasMore || len(papers) >= max || len(page.Papers) == 0 {
			c.log.Debug().
				Str("term", query.Term).
				Int("total_hits", page.Total).
				Int("fetched", len(papers)).
				Msg("search complete")
			break
		}
		offset = page.NextOffset
	}

	if len(papers) > max {
		papers = papers[:max]
	}
	return papers, nil
}

// SearchPage fetches one page of results starting at offset, using the
// configured page size (R6).
func (c *Client) SearchPage(ctx context.Context, query types.Query, offset int) (*Page, error) {
	return c.searchPage(ctx, query, offset, c.cfg.PageSize)
}

func (c *Client) searchPage(ctx context.Context, query types.Query, offset, limit int) (*Page, error) {
	sr, err := c.esearch(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	// A phrase with no index entries is a zero-hit result, not a failure.
	if sr.ErrorList != nil && len(sr.ErrorList.PhraseNotFound) > 0 {
		c.log.Debug().
			Strs("phrases", sr.ErrorList.PhraseNotFound).
			Msg("query phrase not found")
		return &Page{NextOffset: offset}, nil
	}

	ids := sr.IDList.IDs
	if len(ids) == 0 {
		return &Page{Total: sr.Count, NextOffset: offset}, nil
	}

	papers := make([]types.Paper, 0, len(ids))
	for start := 0; start < len(ids); start += efetchBatchSize {
		end := min(start+efetchBatchSize, len(ids))
		articles, err := c.efetch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		for _, a := range articles {
			papers = append(papers, articleToPaper(a))
		}
	}

	next := offset + len(ids)
	return &Page{
		Papers:     papers,
		Total:      sr.Count,
		NextOffset: next,
		HasMore:    next < sr.Count,
	}, nil
}

// esearch resolves query to PMIDs (R2.1).
func (c *Client) esearch(ctx context.Context, query types.Query, offset, limit int) (*esearchResult, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query.Term)
	params.Set("retmode", "xml")
	params.Set("retmax", strconv.Itoa(limit))
	if offset > 0 {
		params.Set("retstart", strconv.Itoa(offset))
	}

	// Publication-date window (R1.2).
	if !query.From.IsZero() || !query.To.IsZero() {
		params.Set("datetype", "pdat")
		if !query.From.IsZero() {
			params.Set("mindate", query.From.Format("2006/01/02"))
		}
		if !query.To.IsZero() {
			params.Set("maxdate", query.To.Format("2006/01/02"))
		}
	}
	c.identify(params)

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var sr esearchResult
	if err := xml.Unmarshal(body, &sr); err != nil {
		return nil, apiErr("esearch.fcgi", 0, fmt.Errorf("%w: %v", ErrParse, err))
	}

	c.log.Debug().
		Int("count", sr.Count).
		Int("ids", len(sr.IDList.IDs)).
		Int("offset", offset).
		Msg("esearch page")
	return &sr, nil
}

// efetch expands PMIDs to article records (R2.2). Callers chunk the id
// list to efetchBatchSize.
func (c *Client) efetch(ctx context.Context, pmids []string) ([]pubmedArticle, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")
	params.Set("rettype", "abstract")
	c.identify(params)

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, apiErr("efetch.fcgi", 0, fmt.Errorf("%w: %v", ErrParse, err))
	}

	c.log.Debug().
		Int("requested", len(pmids)).
		Int("returned", len(set.Articles)).
		Msg("efetch batch")
	return set.Articles, nil
}

// identify adds the NCBI etiquette parameters (R4.2).
func (c *Client) identify(params url.Values) {
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
}

// get performs one rate-limited GET against an E-utilities endpoint and
// classifies failures into the package error taxonomy (R5).
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := pubmedAPIBase + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, apiErr(endpoint, 0, fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apiErr(endpoint, resp.StatusCode, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, apiErr(endpoint, resp.StatusCode, ErrNetwork)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apiErr(endpoint, resp.StatusCode, fmt.Errorf("%w: reading body: %v", ErrNetwork, err))
	}
	return body, nil
}
