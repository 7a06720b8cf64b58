/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Run reports for augmentation runs. Captures the run identifier, the induced
grammar's shape and the sampling statistics in a JSON-friendly structure.
*/

package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/recomb/pkg/strategies"
)

// RunReport summarizes one augmentation run.
type RunReport struct {
	RunID      string         `json:"run_id"`
	Domain     string         `json:"domain"`
	Strategies string         `json:"strategies"`
	Dataset    int            `json:"dataset_size"`
	Rules      int            `json:"rules"`
	Categories map[string]int `json:"categories"` // Rules per category
	Stats      RunStats       `json:"stats"`
	Output     string         `json:"output,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Report builds a RunReport for the augmenter's latest run.
func (a *Augmenter) Report(runID string) *RunReport {
	if runID == "" {
		runID = NewRunID()
	}
	cats := make(map[string]int)
	for _, c := range a.grammar.Categories() {
		cats[c] = len(a.grammar.RulesFor(c))
	}
	domain := ""
	if a.domain != nil {
		domain = a.domain.Name()
	}
	return &RunReport{
		RunID:      runID,
		Domain:     domain,
		Strategies: strategies.JoinSpecs(a.specs),
		Dataset:    len(a.dataset),
		Rules:      a.grammar.Len(),
		Categories: cats,
		Stats:      a.stats,
		CreatedAt:  time.Now(),
	}
}
