// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperscreen CLI.
// Implements: prd001-fetch, prd002-classification, prd003-screen,
//             prd004-report (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscreen/internal/logging"
	"github.com/pdiddy/paperscreen/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the run logger, configured in PersistentPreRunE. It writes
// to stderr: stdout carries the report.
var logger zerolog.Logger

// rootCmd is the base command for the paperscreen CLI.
var rootCmd = &cobra.Command{
	Use:   "paperscreen",
	Short: "Screen PubMed search results for industry-affiliated authors",
	Long: `paperscreen fetches biomedical literature records from the NCBI PubMed
E-utilities API for a query, classifies each author's affiliation as academic
or non-academic (pharmaceutical/biotech/industry) with a rule-based heuristic,
and writes a CSV report of the papers that have at least one non-academic
author.

The pipeline is one subcommand: fetch. Use classify to test the heuristic
against a single affiliation or email.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		level := "info"
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = "debug"
		}
		logger = logging.New(os.Stderr, level)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperscreen.yaml or ~/.config/paperscreen/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
}

func initConfig() {
	// A .env file in the working directory supplies environment
	// variables; absence is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperscreen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperscreen"))
		}
	}

	viper.SetEnvPrefix("PAPERSCREEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
