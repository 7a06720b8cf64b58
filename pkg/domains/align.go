/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: align.go
Description: Helpers shared by the built-in domains: whole-word mention search and an
alignment collector that drops conflicting overlaps.
*/

package domains

import (
	"strings"

	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
)

// findMention returns the span of the first whole-word occurrence of phrase in s.
func findMention(s, phrase string) (interfaces.Span, bool) {
	spans := findMentions(s, phrase, 1)
	if len(spans) == 0 {
		return interfaces.Span{}, false
	}
	return spans[0], true
}

// findMentions returns up to limit non-overlapping whole-word occurrences of
// phrase in s, or all of them when limit < 0. A phrase edge that is a word
// character must not touch another word character.
func findMentions(s, phrase string, limit int) []interfaces.Span {
	if phrase == "" {
		return nil
	}
	var spans []interfaces.Span
	for off := 0; off <= len(s)-len(phrase) && limit != 0; {
		i := strings.Index(s[off:], phrase)
		if i < 0 {
			break
		}
		start, end := off+i, off+i+len(phrase)
		if bounded(s, phrase, start, end) {
			spans = append(spans, interfaces.Span{Start: start, End: end})
			limit--
			off = end
			continue
		}
		off = start + 1
	}
	return spans
}

func bounded(s, phrase string, start, end int) bool {
	if isWordByte(phrase[0]) && start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if isWordByte(phrase[len(phrase)-1]) && end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func overlaps(a, b interfaces.Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// collector accumulates alignments whose spans can be spliced together: x
// spans either coincide exactly with the same category or are disjoint, and
// y spans are always disjoint.
type collector struct {
	alignments []interfaces.Alignment
}

func (c *collector) add(a interfaces.Alignment) bool {
	for _, prev := range c.alignments {
		sameX := prev.X == a.X && prev.Category == a.Category
		if !sameX && overlaps(prev.X, a.X) {
			return false
		}
		if overlaps(prev.Y, a.Y) {
			return false
		}
	}
	c.alignments = append(c.alignments, a)
	return true
}

// literalProductions returns one literal rule per alignment.
func literalProductions(x, y string, alignments []interfaces.Alignment) []interfaces.Rule {
	rules := make([]interfaces.Rule, 0, len(alignments))
	for _, a := range alignments {
		rules = append(rules, interfaces.Rule{Category: a.Category, X: a.X.Slice(x), Y: a.Y.Slice(y)})
	}
	return rules
}

// synchronous reports whether x and y reference the same placeholder set.
func synchronous(x, y string) bool {
	xs, ys := grammar.Placeholders(x), grammar.Placeholders(y)
	if len(xs) != len(ys) {
		return false
	}
	in := make(map[string]bool, len(xs))
	for _, t := range xs {
		in[t] = true
	}
	for _, t := range ys {
		if !in[t] {
			return false
		}
	}
	return true
}
