/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the recomb commands. Provides configuration loading,
logging setup, and domain, folder and augmenter construction from viper settings.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/kleascm/recomb/pkg/core"
	"github.com/kleascm/recomb/pkg/dataset"
	"github.com/kleascm/recomb/pkg/domains"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/logging"
	"github.com/kleascm/recomb/pkg/monitoring"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("RECOMB")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the logger from the log_* settings
func SetupLogging() (*logging.Logger, error) {
	config := logging.DefaultLoggerConfig()
	if level := viper.GetString("log_level"); level != "" {
		config.Level = logging.LogLevel(level)
	}
	if format := viper.GetString("log_format"); format != "" {
		config.Format = logging.LogFormat(format)
	}
	config.OutputDir = viper.GetString("log_dir")
	config.Colors = viper.GetBool("log_colors")

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// loadDomain creates the named domain. The lexicon comes from --lexicon if
// given, otherwise from the "lexicon" key of the main configuration.
func loadDomain(name string) (interfaces.Domain, error) {
	var opts domains.Options
	if path := viper.GetString("lexicon_file"); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read lexicon file: %w", err)
		}
		if err := v.UnmarshalKey("lexicon", &opts.Lexicon); err != nil {
			return nil, fmt.Errorf("failed to decode lexicon file: %w", err)
		}
	} else if err := viper.UnmarshalKey("lexicon", &opts.Lexicon); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return domains.New(name, opts)
}

// loadFolder resolves a folder preset, applying "folders" overrides
func loadFolder(name string) (dataset.Folder, error) {
	var overrides map[string]dataset.Folder
	if err := viper.UnmarshalKey("folders", &overrides); err != nil {
		return dataset.Folder{}, fmt.Errorf("failed to decode folders: %w", err)
	}
	return dataset.LookupFolder(name, overrides)
}

// augmenterOptions maps sampling settings to augmenter options. A negative
// seed selects a time-based one; the seed used is returned for logging.
func augmenterOptions(logger *logging.Logger, metrics *monitoring.Metrics) ([]core.Option, int64) {
	seed := viper.GetInt64("seed")
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	opts := []core.Option{
		core.WithSeed(seed),
		core.WithLogger(logger),
		core.WithMetrics(metrics),
		core.WithMaxAttempts(viper.GetInt("max_attempts")),
		core.WithMaxDepth(viper.GetInt("max_depth")),
	}
	if viper.GetBool("unique") {
		opts = append(opts, core.WithUnique())
	}
	return opts, seed
}

// loadInput reads the folder's table with the domain's preprocessing
func loadInput(folder dataset.Folder, domain interfaces.Domain, logger *logging.Logger) ([]interfaces.Example, error) {
	path := folder.InputPath(viper.GetString("data_dir"))
	data, err := dataset.ReadFile(path, domain.PreprocessLF)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{"path": path, "rows": len(data)}
	if len(data) != folder.Count {
		fields["baseline"] = folder.Count
		logger.Warning("Dataset row count differs from folder baseline", fields)
	} else {
		logger.Info("Dataset loaded", fields)
	}
	return data, nil
}
