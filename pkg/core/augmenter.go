/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: augmenter.go
Description: Augmenter orchestrates recombination: it builds the base grammar from the
dataset, folds the requested induction strategies over it and draws novel examples by
bounded rejection sampling against the original dataset.
*/

package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kleascm/recomb/pkg/dataset"
	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/logging"
	"github.com/kleascm/recomb/pkg/monitoring"
	"github.com/kleascm/recomb/pkg/strategies"
)

// DefaultAttemptsPerSample scales the default attempt budget of Sample.
const DefaultAttemptsPerSample = 1000

// Option configures an Augmenter.
type Option func(*Augmenter)

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(a *Augmenter) { a.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(a *Augmenter) { a.rng = rand.New(rand.NewSource(seed)) }
}

// WithMaxAttempts caps the draws of one Sample call. Zero or less selects
// (n+1)*DefaultAttemptsPerSample.
func WithMaxAttempts(n int) Option {
	return func(a *Augmenter) { a.maxAttempts = n }
}

// WithMaxDepth bounds the recursion depth of grammar sampling.
func WithMaxDepth(depth int) Option {
	return func(a *Augmenter) { a.maxDepth = depth }
}

// WithUnique also rejects repeats of samples already accepted in the same call.
func WithUnique() Option {
	return func(a *Augmenter) { a.unique = true }
}

// WithLogger sets the logger. The default is silent.
func WithLogger(l *logging.Logger) Option {
	return func(a *Augmenter) { a.logger = l }
}

// WithMetrics records induction and sampling metrics in m.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(a *Augmenter) { a.metrics = m }
}

// Augmenter samples recombined examples. It is not safe for concurrent use.
type Augmenter struct {
	domain     interfaces.Domain
	dataset    []interfaces.Example
	datasetSet map[interfaces.Example]struct{}
	specs      []strategies.Spec
	grammar    *grammar.Grammar

	rng         *rand.Rand
	maxAttempts int
	maxDepth    int
	unique      bool
	logger      *logging.Logger
	metrics     *monitoring.Metrics

	stats RunStats
}

// NewAugmenter induces the final grammar for specs over data.
func NewAugmenter(domain interfaces.Domain, data []interfaces.Example, specs []strategies.Spec, opts ...Option) (*Augmenter, error) {
	a := &Augmenter{
		domain:     domain,
		dataset:    data,
		datasetSet: dataset.Set(data),
		specs:      specs,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for _, s := range specs {
		if _, ok := s.(strategies.ConcatSpec); !ok && domain == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoDomain, s)
		}
	}

	if err := a.setupGrammar(); err != nil {
		return nil, err
	}
	return a, nil
}

// setupGrammar builds the base grammar and folds every strategy over it.
func (a *Augmenter) setupGrammar() error {
	base, err := grammar.FromExamples(a.dataset)
	if err != nil {
		return fmt.Errorf("building base grammar: %w", err)
	}
	if a.maxDepth > 0 {
		base.SetMaxDepth(a.maxDepth)
	}

	pipeline := strategies.NewPipelineFromSpecs(a.domain, a.specs, a.logger)
	pipeline.SetMetrics(a.metrics)
	g, err := pipeline.Induce(base, a.dataset)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("induced grammar is incomplete: %w", err)
	}

	a.grammar = g
	for _, c := range g.Categories() {
		a.metrics.SetRules(c, len(g.RulesFor(c)))
	}
	a.logger.Info("Grammar ready", map[string]interface{}{
		"strategies": pipeline.Name(),
		"rules":      g.Len(),
		"categories": len(g.Categories()),
	})
	return nil
}

// Grammar returns the final induced grammar. Callers must not modify it.
func (a *Augmenter) Grammar() *grammar.Grammar {
	return a.grammar
}

// Specs returns the strategies the grammar was induced with.
func (a *Augmenter) Specs() []strategies.Spec {
	return a.specs
}

// Stats returns statistics of the most recent Sample call.
func (a *Augmenter) Stats() RunStats {
	return a.stats
}

// Sample draws n examples that are not exact copies of any dataset example.
// It fails with ExhaustedSampleSpaceError once the attempt budget is spent,
// and returns ctx.Err() if ctx is cancelled.
func (a *Augmenter) Sample(ctx context.Context, n int) ([]interfaces.Example, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	budget := a.maxAttempts
	if budget <= 0 {
		budget = (n + 1) * DefaultAttemptsPerSample
	}

	start := time.Now()
	stats := RunStats{Requested: n}
	defer func() {
		stats.Duration = time.Since(start)
		a.stats = stats
		a.metrics.ObserveSample(stats.Duration)
	}()

	out := make([]interfaces.Example, 0, n)
	var accepted map[interfaces.Example]struct{}
	if a.unique {
		accepted = make(map[interfaces.Example]struct{}, n)
	}

	for len(out) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stats.Attempts >= budget {
			a.logger.LogStats(stats.Attempts, stats.Accepted, stats.Duplicates, stats.Failures, nil)
			return nil, &ExhaustedSampleSpaceError{Requested: n, Accepted: len(out), Attempts: stats.Attempts}
		}
		stats.Attempts++

		x, y, err := a.grammar.Sample(a.rng)
		if err != nil {
			if errors.Is(err, grammar.ErrMaxDepthExceeded) {
				stats.Failures++
				a.metrics.Draw(monitoring.Failure)
				a.logger.LogSample(stats.Attempts, "depth", nil)
				continue
			}
			return nil, fmt.Errorf("sampling grammar: %w", err)
		}

		ex := interfaces.Example{X: x, Y: y}
		if _, dup := a.datasetSet[ex]; dup {
			stats.Duplicates++
			a.metrics.Draw(monitoring.Duplicate)
			a.logger.LogSample(stats.Attempts, "in dataset", nil)
			continue
		}
		if accepted != nil {
			if _, dup := accepted[ex]; dup {
				stats.Duplicates++
				a.metrics.Draw(monitoring.Repeat)
				a.logger.LogSample(stats.Attempts, "repeat", nil)
				continue
			}
			accepted[ex] = struct{}{}
		}
		out = append(out, ex)
		stats.Accepted++
		a.metrics.Draw(monitoring.Accepted)
	}

	a.logger.LogStats(stats.Attempts, stats.Accepted, stats.Duplicates, stats.Failures, nil)
	return out, nil
}
