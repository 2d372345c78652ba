/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for condprob. Manages binary joint distribution
tables, answers conditional queries against them and runs performance sweeps of the
inference engine.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/condprob/cmd/condprob/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	logDir     string
	jsonLogs   bool
	seed       int64
	precision  int
	zeroBased  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "condprob",
		Short: "condprob - exact conditional probabilities over binary variables",
		Long: `condprob computes P(X_I | X_C = c) exactly from a full joint distribution over
up to 64 binary variables. Tables are flat "bitstring,probability" files, optionally
compressed with gzip, zstd or lz4 according to their extension.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty disables log files)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 6, "Decimal places in printed probabilities")
	rootCmd.PersistentFlags().BoolVar(&zeroBased, "zero-based", false, "Number variables from 0 instead of 1")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("precision", rootCmd.PersistentFlags().Lookup("precision"))
	viper.BindPFlag("zero_based", rootCmd.PersistentFlags().Lookup("zero-based"))

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random normalized joint distribution",
		RunE:  commands.RunGenerate,
	}
	generateCmd.Flags().Int("variables", 3, "Number of binary variables")
	generateCmd.Flags().String("output", "", "Output table file (required)")
	generateCmd.MarkFlagRequired("output")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the non-zero states of a table",
		RunE:  commands.RunShow,
	}
	showCmd.Flags().String("input", "", "Input table file (required)")
	showCmd.MarkFlagRequired("input")

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rescale a table so its probabilities sum to one",
		RunE:  commands.RunNormalize,
	}
	normalizeCmd.Flags().String("input", "", "Input table file (required)")
	normalizeCmd.Flags().String("output", "", "Output table file (defaults to the input)")
	normalizeCmd.MarkFlagRequired("input")

	inferCmd := &cobra.Command{
		Use:   "infer",
		Short: "Compute a conditional distribution",
		Long: `Compute P(interest | given) from a joint table. Interest variables are a comma
separated list and conditions are index=value pairs, for example:

  condprob infer --input joint.txt --interest 1,2 --given 3=1,4=0`,
		RunE: commands.RunInfer,
	}
	inferCmd.Flags().String("input", "", "Input table file (required)")
	inferCmd.Flags().String("interest", "", "Interest variables, e.g. 1,2 (required)")
	inferCmd.Flags().String("given", "", "Conditions, e.g. 3=1,4=0")
	inferCmd.Flags().String("output", "", "Write the conditional table to this file")
	inferCmd.MarkFlagRequired("input")
	inferCmd.MarkFlagRequired("interest")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Measure inference cost across query configurations",
		RunE:  commands.RunAnalyze,
	}
	analyzeCmd.Flags().String("input", "", "Input table file")
	analyzeCmd.Flags().Int("variables", 0, "Generate a random table with this many variables instead of --input")
	analyzeCmd.Flags().Int("max-interest", 3, "Largest number of interest variables")
	analyzeCmd.Flags().Int("max-conditioned", 3, "Largest number of conditioned variables")
	analyzeCmd.Flags().Int("repetitions", 10, "Random queries per configuration")
	analyzeCmd.Flags().String("csv", "", "Write measurements as CSV")
	analyzeCmd.Flags().String("report", "", "Write a narrative report")
	analyzeCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in the text exposition format")
	analyzeCmd.Flags().Bool("json-summary", false, "Write a JSON summary under ./metrics/analysis")
	analyzeCmd.Flags().String("profile-dir", "", "Write CPU and heap profiles of the sweep to this directory")
	viper.BindPFlag("analysis.max_interest", analyzeCmd.Flags().Lookup("max-interest"))
	viper.BindPFlag("analysis.max_conditioned", analyzeCmd.Flags().Lookup("max-conditioned"))
	viper.BindPFlag("analysis.repetitions", analyzeCmd.Flags().Lookup("repetitions"))

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Guided query session on a random distribution",
		RunE:  commands.RunInteractive,
	}

	rootCmd.AddCommand(generateCmd, showCmd, normalizeCmd, inferCmd, analyzeCmd, interactiveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
