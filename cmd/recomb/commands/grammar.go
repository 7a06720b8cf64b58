/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grammar.go
Description: Grammar command: induces the recombination grammar for a dataset folder and
prints it as text or JSON without sampling.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kleascm/recomb/pkg/core"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/strategies"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// grammarDocument is the YAML layout of a dumped grammar
type grammarDocument struct {
	Root  string            `yaml:"root"`
	Rules []interfaces.Rule `yaml:"rules"`
}

// RunGrammar handles "recomb grammar <folder> <domain> <aug-type>"
func RunGrammar(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	specs, err := strategies.ParseSpecs(args[2])
	if err != nil {
		return err
	}
	domain, err := loadDomain(args[1])
	if err != nil {
		return err
	}
	folder, err := loadFolder(args[0])
	if err != nil {
		return err
	}
	data, err := loadInput(folder, domain, logger)
	if err != nil {
		return err
	}

	opts, _ := augmenterOptions(logger, nil)
	aug, err := core.NewAugmenter(domain, data, specs, opts...)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if path := viper.GetString("grammar_output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create grammar file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch format := viper.GetString("grammar_format"); format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(aug.Grammar())
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(grammarDocument{Root: aug.Grammar().Root, Rules: aug.Grammar().Rules()}); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := aug.Grammar().WriteTo(out)
		return err
	default:
		return fmt.Errorf("unsupported grammar format: %s", format)
	}
}
