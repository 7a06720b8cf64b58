/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: composite.go
Description: Composite induction pipeline. Chains inducers left to right, each one
consuming the grammar produced by the previous one.
*/

package strategies

import (
	"fmt"
	"strings"
	"time"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/logging"
	"github.com/kleascm/recomb/pkg/monitoring"
)

// Pipeline composes Inducer instances sequentially.
type Pipeline struct {
	inducers []Inducer
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewPipeline creates a Pipeline from already bound inducers.
func NewPipeline(inducers []Inducer, logger *logging.Logger) *Pipeline {
	return &Pipeline{inducers: inducers, logger: logger}
}

// NewPipelineFromSpecs binds every spec to domain.
func NewPipelineFromSpecs(domain interfaces.Domain, specs []Spec, logger *logging.Logger) *Pipeline {
	inducers := make([]Inducer, len(specs))
	for i, s := range specs {
		inducers[i] = s.Inducer(domain)
	}
	return NewPipeline(inducers, logger)
}

// Induce folds every inducer over base. With no inducers base is returned.
func (p *Pipeline) Induce(base *grammar.Grammar, data []interfaces.Example) (*grammar.Grammar, error) {
	g := base
	for _, ind := range p.inducers {
		start := time.Now()
		next, err := ind.Induce(g, data)
		if err != nil {
			return nil, fmt.Errorf("inducing %s grammar: %w", ind.Name(), err)
		}
		elapsed := time.Since(start)
		p.logger.LogInduction(ind.Name(), g.Len(), next.Len(), elapsed)
		p.metrics.ObserveInduction(ind.Name(), elapsed)
		g = next
	}
	return g, nil
}

// SetMetrics records per-strategy induction time in m.
func (p *Pipeline) SetMetrics(m *monitoring.Metrics) {
	p.metrics = m
}

// Name returns the '+'-joined names of the chained inducers.
func (p *Pipeline) Name() string {
	names := make([]string, len(p.inducers))
	for i, ind := range p.inducers {
		names[i] = ind.Name()
	}
	return strings.Join(names, "+")
}
