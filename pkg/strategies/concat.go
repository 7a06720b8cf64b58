/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: concat.go
Description: Concatenation induction. Demotes root rules to a sentence category and adds
a single root rule that joins k independent sentences with the separator token.
*/

package strategies

import (
	"fmt"
	"strings"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
)

const (
	// Separator joins concatenated sentences on both sides.
	Separator = "[SEP]"
	// SentenceCategory holds the demoted root rules.
	SentenceCategory = "$sentence"
)

// ConcatInducer concatenates Count sentences.
type ConcatInducer struct {
	Count int
}

// NewConcatInducer creates a ConcatInducer for k sentences.
func NewConcatInducer(k int) *ConcatInducer {
	return &ConcatInducer{Count: k}
}

// Name returns "concat<k>".
func (c *ConcatInducer) Name() string {
	return fmt.Sprintf("concat%d", c.Count)
}

// RootPattern returns "$sentence_0 [SEP] ... $sentence_{k-1}".
func (c *ConcatInducer) RootPattern() string {
	holes := make([]string, c.Count)
	for i := range holes {
		holes[i] = grammar.Placeholder(SentenceCategory, i)
	}
	return strings.Join(holes, " "+Separator+" ")
}

// Induce copies base, moving root rules under SentenceCategory.
func (c *ConcatInducer) Induce(base *grammar.Grammar, _ []interfaces.Example) (*grammar.Grammar, error) {
	if c.Count < 1 {
		return nil, fmt.Errorf("%w: concatenation count must be positive, got %d", ErrUnsupportedAugmentationType, c.Count)
	}
	g := derive(base)

	for _, r := range base.Rules() {
		cat := r.Category
		if cat == base.Root {
			cat = SentenceCategory
		}
		if err := g.AddRule(cat, r.X, r.Y); err != nil {
			return nil, fmt.Errorf("concat: %w", err)
		}
	}

	root := c.RootPattern()
	if err := g.AddRule(g.Root, root, root); err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}
	return g, nil
}
