/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared types and interfaces for the recombination augmenter. Defines spans,
alignments, rules, examples and the Domain contract used across packages to break import
cycles between the grammar, strategy and core packages.
*/

package interfaces

import "fmt"

// Span is a half-open [Start, End) byte interval into a string.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Slice returns the text of str covered by the span.
func (s Span) Slice(str string) string {
	return str[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Alignment asserts that X (into an utterance) and Y (into a logical form)
// denote the same entity or sub-expression of the given category.
type Alignment struct {
	Category string `json:"category"`
	X        Span   `json:"x"`
	Y        Span   `json:"y"`
}

// Rule is a synchronous production: Category expands to the pair (X, Y).
// X and Y may embed placeholder tokens of the form "<category>_<anchor>".
type Rule struct {
	Category string `json:"category" yaml:"category"`
	X        string `json:"x" yaml:"x"`
	Y        string `json:"y" yaml:"y"`
}

// Example is one (utterance, logical form) training pair.
type Example struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Domain supplies alignments and logical-form normalization for one
// semantic parsing dataset.
type Domain interface {
	// Name returns the registry name of the domain.
	Name() string
	// PreprocessLF normalizes a raw logical form.
	PreprocessLF(y string) string
	// EntityAlignments returns the entity alignments between x and y.
	EntityAlignments(x, y string) []Alignment
	// NestingAlignments returns the alignments to template in (x, y) together
	// with self-contained productions for the factored-out sub-queries.
	NestingAlignments(x, y string) ([]Alignment, []Rule)
}
