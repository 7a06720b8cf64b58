/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: augment.go
Description: Augment command: induces the recombination grammar for a dataset folder and
writes the original rows followed by freshly sampled ones.
*/

package commands

import (
	"fmt"
	"strconv"

	"github.com/kleascm/recomb/pkg/core"
	"github.com/kleascm/recomb/pkg/dataset"
	"github.com/kleascm/recomb/pkg/monitoring"
	"github.com/kleascm/recomb/pkg/strategies"
	"github.com/kleascm/recomb/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunAugment handles "recomb <folder> <domain> <aug-type> <num>"
func RunAugment(cmd *cobra.Command, args []string) error {
	folderName, domainName, augType := args[0], args[1], args[2]
	num, err := strconv.Atoi(args[3])
	if err != nil || num < 0 {
		return fmt.Errorf("num must be a non-negative integer, got %q", args[3])
	}

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	runID := core.NewRunID()
	logger = logger.With(map[string]interface{}{"run_id": runID})

	specs, err := strategies.ParseSpecs(augType)
	if err != nil {
		return err
	}
	domain, err := loadDomain(domainName)
	if err != nil {
		return err
	}
	folder, err := loadFolder(folderName)
	if err != nil {
		return err
	}
	data, err := loadInput(folder, domain, logger)
	if err != nil {
		return err
	}

	var metrics *monitoring.Metrics
	if viper.GetString("metrics_file") != "" {
		metrics = monitoring.NewMetrics()
	}
	opts, seed := augmenterOptions(logger, metrics)
	logger.Info("Starting augmentation", map[string]interface{}{
		"folder":     folder.Name,
		"domain":     domain.Name(),
		"strategies": strategies.JoinSpecs(specs),
		"num":        num,
		"seed":       seed,
	})

	aug, err := core.NewAugmenter(domain, data, specs, opts...)
	if err != nil {
		return err
	}
	samples, err := aug.Sample(cmd.Context(), num)
	if err != nil {
		return err
	}

	dataDir := viper.GetString("data_dir")
	outPath := folder.OutputPath(dataDir, len(data)+num, augType)
	if err := dataset.WriteFile(outPath, data, samples); err != nil {
		return err
	}
	logger.Info("Dataset written", map[string]interface{}{
		"path": outPath,
		"rows": len(data) + len(samples),
	})

	if reportDir := viper.GetString("report_dir"); reportDir != "" {
		report := aug.Report(runID)
		report.Output = outPath
		path, err := utils.WriteRunReport(reportDir, runID, report)
		if err != nil {
			return err
		}
		logger.Info("Run report written", map[string]interface{}{"path": path})
	}

	if path := viper.GetString("metrics_file"); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Info("Metrics written", map[string]interface{}{"path": path})
	}

	fmt.Fprintln(cmd.OutOrStdout(), outPath)
	return nil
}
