/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers configuration validation, the custom
formatter's stage prefixes, file output with rotation and nil-safe helpers.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleascm/recomb/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(t *testing.T, format logging.LogFormat, level logging.LogLevel) (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: format,
		Output: &buf,
	})
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger, &buf
}

// TestLoggerConfigValidate rejects unknown levels and formats
func TestLoggerConfigValidate(t *testing.T) {
	assert.NoError(t, logging.DefaultLoggerConfig().Validate())

	cfg := logging.DefaultLoggerConfig()
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = logging.DefaultLoggerConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = logging.DefaultLoggerConfig()
	cfg.OutputDir = t.TempDir()
	cfg.MaxFiles = 0
	assert.Error(t, cfg.Validate())

	_, err := logging.NewLogger(cfg)
	assert.Error(t, err)
}

// TestCustomFormat renders stage prefixes and sorted fields
func TestCustomFormat(t *testing.T) {
	logger, buf := bufferLogger(t, logging.LogFormatCustom, logging.LogLevelInfo)

	logger.LogInduction("entity", 600, 742, 15*time.Millisecond)
	logger.Info("Dataset loaded", map[string]interface{}{"rows": 600, "path": "train/geo880 train600.tsv"})
	logger.Info("Plain message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "INFO [INDUCE] Grammar induced duration=15ms rules_in=600 rules_out=742 strategy=entity", lines[0])
	assert.Equal(t, `INFO [DATA] Dataset loaded path="train/geo880 train600.tsv" rows=600`, lines[1])
	assert.Equal(t, "INFO Plain message", lines[2])
}

// TestLogLevels filters entries below the configured level
func TestLogLevels(t *testing.T) {
	logger, buf := bufferLogger(t, logging.LogFormatCustom, logging.LogLevelWarning)

	logger.Debug("debug", nil)
	logger.Info("info", nil)
	logger.LogSample(3, "duplicate", nil)
	assert.Empty(t, buf.String())

	logger.Warning("warn", nil)
	logger.Error("error", nil)
	out := buf.String()
	assert.Contains(t, out, "WARNING warn")
	assert.Contains(t, out, "ERROR error")
}

// TestJSONFormat emits one object per entry with merged fields
func TestJSONFormat(t *testing.T) {
	logger, buf := bufferLogger(t, logging.LogFormatJSON, logging.LogLevelDebug)

	logger.With(map[string]interface{}{"run_id": "abc"}).LogSample(7, "failure", map[string]interface{}{"error": "depth"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Sample rejected", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "failure", entry["reason"])
	assert.EqualValues(t, 7, entry["attempt"])
}

// TestLogStats reports sampling counters
func TestLogStats(t *testing.T) {
	logger, buf := bufferLogger(t, logging.LogFormatCustom, logging.LogLevelInfo)

	logger.LogStats(120, 100, 15, 5, map[string]interface{}{"requested": 100})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO [STATS] Sampling statistics "))
	for _, kv := range []string{"accepted=100", "attempts=120", "duplicates=15", "failures=5", "requested=100", "uptime="} {
		assert.Contains(t, out, kv)
	}
}

// TestFileOutput tees into a timestamped file and prunes old ones
func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"recomb_2000-01-01_00-00-00.log", "recomb_2000-01-02_00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	var console bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  2,
		Output:    &console,
	})
	require.NoError(t, err)

	logger.Info("Dataset written", map[string]interface{}{"rows": 3})
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "recomb_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.NotContains(t, files, filepath.Join(dir, "recomb_2000-01-01_00-00-00.log"))

	var current string
	for _, f := range files {
		if !strings.HasPrefix(filepath.Base(f), "recomb_2000") {
			current = f
		}
	}
	require.NotEmpty(t, current)
	data, err := os.ReadFile(current)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dataset written")
	assert.Contains(t, console.String(), "Dataset written")
}

// TestNilLogger discards everything without panicking
func TestNilLogger(t *testing.T) {
	var logger *logging.Logger

	assert.NotPanics(t, func() {
		logger.Info("ignored", map[string]interface{}{"k": "v"})
		logger.LogInduction("entity", 1, 2, time.Second)
		logger.LogSample(1, "duplicate", nil)
		logger.LogStats(1, 1, 0, 0, nil)
		assert.Nil(t, logger.With(map[string]interface{}{"k": "v"}))
		assert.Nil(t, logger.GetLogger())
		assert.NoError(t, logger.Close())
	})
}
