/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the recombination augmenter. Parses the
folder/domain/strategy/count arguments, binds flags to configuration and dispatches to
the augment, grammar and listing commands.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kleascm/recomb/cmd/recomb/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recomb <folder> <domain> <aug-type> <num>",
		Short: "Recombination data augmentation for semantic parsing corpora",
		Long: `recomb induces a synchronous grammar from (utterance, logical form) pairs and
samples new pairs from it. <aug-type> is a '+'-joined list of entity, nesting and
concat<K>; the output holds the original rows followed by <num> sampled rows.`,
		Example:       "  recomb train geoquery entity+nesting+concat2 600",
		Args:          cobra.ExactArgs(4),
		RunE:          commands.RunAugment,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       "1.0.0",
	}

	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Also write logs to timestamped files in this directory")
	rootCmd.PersistentFlags().Bool("log-colors", false, "Colorize console logs")
	rootCmd.PersistentFlags().String("data-dir", "geoQueryData", "Root directory of the folder tables")
	rootCmd.PersistentFlags().String("lexicon", "", "Lexicon file for the lexicon domain")
	rootCmd.PersistentFlags().Int64("seed", -1, "Random seed (negative = time based)")
	rootCmd.PersistentFlags().Int("max-attempts", 0, "Maximum draws before giving up (0 = 1000 per requested sample)")
	rootCmd.PersistentFlags().Int("max-depth", 32, "Maximum grammar recursion depth")

	rootCmd.Flags().Bool("unique", false, "Also reject repeats among sampled rows")
	rootCmd.Flags().String("report-dir", "", "Write a JSON run report to this directory")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics of the run to this textfile")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_colors", rootCmd.PersistentFlags().Lookup("log-colors"))
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("lexicon_file", rootCmd.PersistentFlags().Lookup("lexicon"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("max_attempts", rootCmd.PersistentFlags().Lookup("max-attempts"))
	viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("unique", rootCmd.Flags().Lookup("unique"))
	viper.BindPFlag("report_dir", rootCmd.Flags().Lookup("report-dir"))
	viper.BindPFlag("metrics_file", rootCmd.Flags().Lookup("metrics-file"))

	grammarCmd := &cobra.Command{
		Use:   "grammar <folder> <domain> <aug-type>",
		Short: "Induce and print the recombination grammar",
		Args:  cobra.ExactArgs(3),
		RunE:  commands.RunGrammar,
	}
	grammarCmd.Flags().String("format", "text", "Output format (text, json, yaml)")
	grammarCmd.Flags().String("output", "", "Write the grammar to this file instead of stdout")
	viper.BindPFlag("grammar_format", grammarCmd.Flags().Lookup("format"))
	viper.BindPFlag("grammar_output", grammarCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(grammarCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "list-domains",
		Short: "List registered domains and augmentation strategies",
		Args:  cobra.NoArgs,
		Run:   commands.ListDomains,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
