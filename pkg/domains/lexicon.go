/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lexicon.go
Description: Lexicon domain: a configurable phrase/denotation table for datasets without a
dedicated domain. Aligns every lexicon phrase found in the utterance with its denotation
in the logical form.
*/

package domains

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kleascm/recomb/pkg/interfaces"
)

// LexiconName is the registry name of the lexicon domain.
const LexiconName = "lexicon"

// ErrEmptyLexicon is returned when the lexicon domain has no entries.
var ErrEmptyLexicon = errors.New("lexicon domain needs at least one entry")

// LexiconEntry pairs an utterance phrase with its logical-form denotation.
type LexiconEntry struct {
	Category   string `json:"category" mapstructure:"category"`
	Phrase     string `json:"phrase" mapstructure:"phrase"`
	Denotation string `json:"denotation" mapstructure:"denotation"`
}

// Lexicon implements interfaces.Domain from a phrase table.
type Lexicon struct {
	entries []LexiconEntry
}

// NewLexicon validates entries and orders them longest phrase first so
// longer mentions win over their sub-phrases.
func NewLexicon(entries []LexiconEntry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLexicon
	}
	sorted := make([]LexiconEntry, len(entries))
	copy(sorted, entries)
	for i, e := range sorted {
		if !strings.HasPrefix(e.Category, "$") || e.Phrase == "" || e.Denotation == "" {
			return nil, fmt.Errorf("lexicon entry %d: category must start with '$' and phrase and denotation must be set: %+v", i, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Phrase) > len(sorted[j].Phrase)
	})
	return &Lexicon{entries: sorted}, nil
}

// Name returns "lexicon".
func (d *Lexicon) Name() string {
	return LexiconName
}

// PreprocessLF collapses runs of whitespace.
func (d *Lexicon) PreprocessLF(y string) string {
	return strings.Join(strings.Fields(y), " ")
}

// EntityAlignments aligns the first mention of each phrase in x with every
// whole-word occurrence of its denotation in y.
func (d *Lexicon) EntityAlignments(x, y string) []interfaces.Alignment {
	var c collector
	for _, e := range d.entries {
		xs, ok := findMention(x, e.Phrase)
		if !ok {
			continue
		}
		for _, ys := range findMentions(y, e.Denotation, -1) {
			c.add(interfaces.Alignment{Category: e.Category, X: xs, Y: ys})
		}
	}
	sort.SliceStable(c.alignments, func(i, j int) bool {
		return c.alignments[i].X.Start < c.alignments[j].X.Start
	})
	return c.alignments
}

// NestingAlignments has no sub-query structure to factor out, so it offers
// the aligned entities as productions.
func (d *Lexicon) NestingAlignments(x, y string) ([]interfaces.Alignment, []interfaces.Rule) {
	alignments := d.EntityAlignments(x, y)
	return alignments, literalProductions(x, y, alignments)
}
