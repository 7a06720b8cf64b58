/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: entity.go
Description: Entity-substitution induction. Collects aligned entities of the raw dataset
as reusable literal rules and turns every base rule into a template with a hole per
aligned entity mention.
*/

package strategies

import (
	"fmt"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
)

// EntityInducer swaps aligned entities between examples.
type EntityInducer struct {
	Domain interfaces.Domain
}

// NewEntityInducer creates an EntityInducer for domain.
func NewEntityInducer(domain interfaces.Domain) *EntityInducer {
	return &EntityInducer{Domain: domain}
}

// Name returns "entity".
func (e *EntityInducer) Name() string {
	return "entity"
}

// Induce adds one literal rule per entity alignment in data, then one
// templated rule per base rule.
func (e *EntityInducer) Induce(base *grammar.Grammar, data []interfaces.Example) (*grammar.Grammar, error) {
	g := derive(base)

	for i, ex := range data {
		for _, a := range e.Domain.EntityAlignments(ex.X, ex.Y) {
			x, y, err := literal(ex.X, ex.Y, a)
			if err != nil {
				return nil, fmt.Errorf("entity: example %d: %w", i, err)
			}
			if err := g.AddRule(a.Category, x, y); err != nil {
				return nil, fmt.Errorf("entity: example %d: %w", i, err)
			}
		}
	}

	for _, r := range base.Rules() {
		alignments := e.Domain.EntityAlignments(r.X, r.Y)
		x, y, err := templateRule(r.X, r.Y, alignments)
		if err != nil {
			return nil, fmt.Errorf("entity: rule %s %q: %w", r.Category, r.X, err)
		}
		if err := g.AddRule(r.Category, x, y); err != nil {
			return nil, fmt.Errorf("entity: %w", err)
		}
	}

	return g, nil
}
