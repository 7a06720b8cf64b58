/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Dataset folder presets and output naming. Each folder (train, dev, test)
maps to a fixed input table with a known baseline row count; presets can be overridden
from configuration.
*/

package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// DefaultDataDir is the root of the preset tables.
const DefaultDataDir = "geoQueryData"

// ErrUnknownFolder is returned for a folder without a preset.
var ErrUnknownFolder = errors.New("unknown dataset folder")

// Folder is one preset input table.
type Folder struct {
	Name   string `json:"name" mapstructure:"name"`
	Path   string `json:"path" mapstructure:"path"`     // Relative to the data dir unless absolute
	Count  int    `json:"count" mapstructure:"count"`   // Baseline row count
	Prefix string `json:"prefix" mapstructure:"prefix"` // Output file prefix
}

// DefaultFolders returns the GeoQuery 880 splits.
func DefaultFolders() map[string]Folder {
	return map[string]Folder{
		"train": {Name: "train", Path: "train/geo880_train600.tsv", Count: 600, Prefix: "geo880"},
		"dev":   {Name: "dev", Path: "dev/geo880_dev100.tsv", Count: 100, Prefix: "geo880"},
		"test":  {Name: "test", Path: "test/geo880_test280.tsv", Count: 280, Prefix: "geo880"},
	}
}

// LookupFolder resolves name in overrides first, then in DefaultFolders.
// Empty override fields fall back to the default preset.
func LookupFolder(name string, overrides map[string]Folder) (Folder, error) {
	def, hasDef := DefaultFolders()[name]
	over, hasOver := overrides[name]
	if !hasDef && !hasOver {
		return Folder{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownFolder, name, folderNames(overrides))
	}
	f := def
	f.Name = name
	if over.Path != "" {
		f.Path = over.Path
	}
	if over.Count > 0 {
		f.Count = over.Count
	}
	if over.Prefix != "" {
		f.Prefix = over.Prefix
	}
	if f.Prefix == "" {
		f.Prefix = "data"
	}
	return f, nil
}

func folderNames(overrides map[string]Folder) []string {
	seen := make(map[string]bool)
	for n := range DefaultFolders() {
		seen[n] = true
	}
	for n := range overrides {
		seen[n] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// InputPath returns the folder's table path under dataDir.
func (f Folder) InputPath(dataDir string) string {
	if filepath.IsAbs(f.Path) {
		return f.Path
	}
	return filepath.Join(dataDir, f.Path)
}

// OutputPath returns <dataDir>/<folder>/<prefix>_<folder>_<total>_<augType>_recomb.tsv.
func (f Folder) OutputPath(dataDir string, total int, augType string) string {
	name := fmt.Sprintf("%s_%s_%d_%s_recomb.tsv", f.Prefix, f.Name, total, augType)
	return filepath.Join(dataDir, f.Name, name)
}
