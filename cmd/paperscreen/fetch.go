// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscreen/internal/classify"
	"github.com/pdiddy/paperscreen/internal/pubmed"
	"github.com/pdiddy/paperscreen/internal/report"
	"github.com/pdiddy/paperscreen/internal/screen"
	"github.com/pdiddy/paperscreen/internal/secrets"
	"github.com/pdiddy/paperscreen/pkg/types"
)

const dateLayout = "2006-01-02"

var fetchCmd = &cobra.Command{
	Use:   "fetch [query...]",
	Short: "Fetch papers for a query and report industry-affiliated authors",
	Long: `Fetch runs the screening pipeline: the query is sent to PubMed, every
author of every hit is classified against the corporate keyword and academic
email rules, and the papers with at least one non-academic author are written
as CSV (or JSON) to --file or stdout.

PubMed field tags work in the query, e.g.:

  paperscreen fetch 'cancer immunotherapy[Title]' -f results.csv`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "output file path (default: stdout)")
	fetchCmd.Flags().String("format", "csv", "output format: csv or json")
	fetchCmd.Flags().Int("max-results", 0, "maximum papers to fetch (default 20)")
	fetchCmd.Flags().Int("page-size", 0, "esearch page size (default 100)")
	fetchCmd.Flags().Bool("all", false, "include papers with no non-academic authors")
	fetchCmd.Flags().String("from", "", "publication date lower bound (YYYY-MM-DD)")
	fetchCmd.Flags().String("to", "", "publication date upper bound (YYYY-MM-DD)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	fetchCmd.Flags().String("contact-email", "", "NCBI etiquette contact email (default: .secrets/contact-email)")
	fetchCmd.Flags().String("rules", "", "YAML rules file overriding the built-in classification rules")

	viper.BindPFlag("fetch.max_results", fetchCmd.Flags().Lookup("max-results"))
	viper.BindPFlag("fetch.page_size", fetchCmd.Flags().Lookup("page-size"))
	viper.BindPFlag("fetch.timeout", fetchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("fetch.api_key", fetchCmd.Flags().Lookup("api-key"))
	viper.BindPFlag("fetch.email", fetchCmd.Flags().Lookup("contact-email"))
	viper.BindPFlag("classify.rules_file", fetchCmd.Flags().Lookup("rules"))
	viper.BindPFlag("report.format", fetchCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := types.Query{Term: strings.Join(args, " ")}
	if query.IsEmpty() {
		return fmt.Errorf("provide a search query, e.g.: paperscreen fetch 'cancer immunotherapy'")
	}

	var err error
	if query.From, err = parseDateFlag(cmd, "from"); err != nil {
		return err
	}
	if query.To, err = parseDateFlag(cmd, "to"); err != nil {
		return err
	}

	classifier, err := buildClassifier(viper.GetString("classify.rules_file"))
	if err != nil {
		return err
	}

	fetchCfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout: viper.GetDuration("fetch.timeout"),
		},
		MaxResults: viper.GetInt("fetch.max_results"),
		PageSize:   viper.GetInt("fetch.page_size"),
		APIKey:     secrets.Resolve(loadedSecrets, "ncbi-api-key", viper.GetString("fetch.api_key")),
		Email:      secrets.Resolve(loadedSecrets, "contact-email", viper.GetString("fetch.email")),
	}

	includeAll, _ := cmd.Flags().GetBool("all")
	file, _ := cmd.Flags().GetString("file")
	format := types.ReportFormat(viper.GetString("report.format"))

	client := pubmed.New(fetchCfg, logger)
	screened, summary, err := screen.Run(context.Background(), client, query, classifier, screen.Options{IncludeAll: includeAll}, logger)
	if err != nil {
		return err
	}

	if err := report.WriteFile(screened, format, file); err != nil {
		return err
	}

	logger.Info().
		Int("fetched", summary.Fetched).
		Int("flagged", summary.Flagged).
		Int("reported", summary.Reported).
		Msg("screening complete")
	return nil
}

// buildClassifier loads the rules file when one is configured, otherwise
// uses the compiled-in defaults.
func buildClassifier(rulesFile string) (*classify.Classifier, error) {
	rules := classify.DefaultRules()
	if rulesFile != "" {
		var err error
		if rules, err = classify.LoadRules(rulesFile); err != nil {
			return nil, err
		}
	}
	return classify.New(rules), nil
}

func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	val, _ := cmd.Flags().GetString(name)
	if val == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (use YYYY-MM-DD)", name, val)
	}
	return t, nil
}
