/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: nesting.go
Description: Nesting induction. Inserts the domain's factored-out sub-query productions
verbatim and templates each base rule so nested sub-queries can fill its holes.
*/

package strategies

import (
	"fmt"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
)

// NestingInducer nests sub-queries of one example inside another.
type NestingInducer struct {
	Domain interfaces.Domain
}

// NewNestingInducer creates a NestingInducer for domain.
func NewNestingInducer(domain interfaces.Domain) *NestingInducer {
	return &NestingInducer{Domain: domain}
}

// Name returns "nesting".
func (n *NestingInducer) Name() string {
	return "nesting"
}

// Induce copies the productions of every base rule and the rule's template.
// data is not consulted; productions come from the base rules themselves.
func (n *NestingInducer) Induce(base *grammar.Grammar, _ []interfaces.Example) (*grammar.Grammar, error) {
	g := derive(base)

	for _, r := range base.Rules() {
		alignments, productions := n.Domain.NestingAlignments(r.X, r.Y)

		for _, p := range productions {
			if err := g.AddRule(p.Category, p.X, p.Y); err != nil {
				return nil, fmt.Errorf("nesting: production of %q: %w", r.X, err)
			}
		}

		x, y, err := templateRule(r.X, r.Y, alignments)
		if err != nil {
			return nil, fmt.Errorf("nesting: rule %s %q: %w", r.Category, r.X, err)
		}
		if err := g.AddRule(r.Category, x, y); err != nil {
			return nil, fmt.Errorf("nesting: %w", err)
		}
	}

	return g, nil
}
