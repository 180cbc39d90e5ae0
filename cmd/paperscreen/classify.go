// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [affiliation...]",
	Short: "Classify a single affiliation or email against the rules",
	Long: `Classify runs the affiliation heuristic on one input and prints the
verdict. Useful for debugging a rules file before a fetch run:

  paperscreen classify 'Pfizer Inc., New York, NY'
  paperscreen classify --email jdoe@biotechcorp.com
  paperscreen classify --rules myrules.yaml 'Acme Therapeutics, Basel'`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("email", "", "author email to classify")
	classifyCmd.Flags().String("rules", "", "YAML rules file overriding the built-in classification rules")
	classifyCmd.Flags().Bool("json", false, "print the verdict as JSON")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	affiliation := strings.Join(args, " ")
	email, _ := cmd.Flags().GetString("email")
	if affiliation == "" && email == "" {
		return fmt.Errorf("provide an affiliation string, --email, or both")
	}

	rulesFile, _ := cmd.Flags().GetString("rules")
	classifier, err := buildClassifier(rulesFile)
	if err != nil {
		return err
	}

	result := classifier.Classify(affiliation, email)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.NonAcademic {
		fmt.Printf("non-academic (matched %q)\n", result.MatchedTerm)
	} else {
		fmt.Println("academic")
	}
	return nil
}
