package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperscreen/0.1"). Per prd001-fetch R2.5.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
// Per prd001-fetch R1.4, R1.5, R2.4, R2.5, R4.1.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of papers to fetch (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PageSize is the esearch retmax per page (default 100, cap 10000).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RateLimit is the sustained request rate in requests per second.
	// Zero selects the NCBI default: 3 req/s, or 10 req/s with an API key.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// APIKey is the NCBI API key for the higher rate limit tier.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Tool is the NCBI etiquette tool parameter sent with every request.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the NCBI etiquette contact address sent with every request.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ClassifyConfig holds settings for the classification stage.
// Per prd002-classification R4.2.
type ClassifyConfig struct {
	// RulesFile is an optional YAML rule set overriding the compiled-in
	// defaults. Empty means defaults only.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// ReportFormat selects the report output format.
// Per prd004-report R1, R2.
type ReportFormat string

const (
	ReportCSV  ReportFormat = "csv"
	ReportJSON ReportFormat = "json"
)

// ReportConfig holds settings for the report stage.
// Per prd004-report R3.1-R3.2, prd003-screen R2.
type ReportConfig struct {
	// File is the output path. Empty writes to stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Format selects the output format: csv or json.
	Format ReportFormat `json:"format" yaml:"format"`

	// IncludeAll keeps papers with no flagged authors in the report.
	IncludeAll bool `json:"include_all" yaml:"include_all"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
