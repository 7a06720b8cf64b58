/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inducer.go
Description: Grammar induction strategies. An Inducer turns one grammar into a new
grammar using the raw dataset and the domain's alignments; the shared templating step
punches synchronized placeholder holes into a rule.
*/

package strategies

import (
	"fmt"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
)

// Inducer builds a new grammar from base. Implementations never modify base
// or data.
type Inducer interface {
	Induce(base *grammar.Grammar, data []interfaces.Example) (*grammar.Grammar, error)
	// Name returns the strategy identifier, e.g. "entity" or "concat2".
	Name() string
}

// derive returns an empty grammar with base's root and depth bound.
func derive(base *grammar.Grammar) *grammar.Grammar {
	g := grammar.New()
	g.Root = base.Root
	g.MaxDepth = base.MaxDepth
	return g
}

// templateRule replaces every aligned span of x and y with the placeholder
// of its inner category anchored at the x-span start. The x side is
// deduplicated so a span aligned to several y spans is replaced once; the y
// side gets one swap per alignment.
func templateRule(x, y string, alignments []interfaces.Alignment) (string, string, error) {
	if len(alignments) == 0 {
		return x, y, nil
	}

	xSwaps := make([]Swap, 0, len(alignments))
	seen := make(map[Swap]bool, len(alignments))
	ySwaps := make([]Swap, 0, len(alignments))
	for _, a := range alignments {
		tok := grammar.Placeholder(a.Category, a.X.Start)
		xs := Swap{Span: a.X, Text: tok}
		if !seen[xs] {
			seen[xs] = true
			xSwaps = append(xSwaps, xs)
		}
		ySwaps = append(ySwaps, Swap{Span: a.Y, Text: tok})
	}

	xNew, err := Splice(x, xSwaps)
	if err != nil {
		return "", "", fmt.Errorf("templating x: %w", err)
	}
	yNew, err := Splice(y, ySwaps)
	if err != nil {
		return "", "", fmt.Errorf("templating y: %w", err)
	}
	return xNew, yNew, nil
}

// literal extracts the aligned texts of a against (x, y).
func literal(x, y string, a interfaces.Alignment) (string, string, error) {
	if err := checkSpan(x, a.X); err != nil {
		return "", "", err
	}
	if err := checkSpan(y, a.Y); err != nil {
		return "", "", err
	}
	return a.X.Slice(x), a.Y.Slice(y), nil
}
