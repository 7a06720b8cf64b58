/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: splice.go
Description: Span splicing for grammar induction. Replaces disjoint byte ranges of a
string with substitute text, working right to left so absolute offsets stay valid.
*/

package strategies

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kleascm/recomb/pkg/interfaces"
)

var (
	// ErrNonDisjointSpans is matched by NonDisjointSpansError.
	ErrNonDisjointSpans = errors.New("non-disjoint spans detected")
	// ErrSpanOutOfRange reports a span outside its string or with Start > End.
	ErrSpanOutOfRange = errors.New("span out of range")
)

// Swap replaces the text covered by Span with Text.
type Swap struct {
	Span interfaces.Span
	Text string
}

// NonDisjointSpansError identifies the string and the full swap list of a
// splice whose spans overlap.
type NonDisjointSpansError struct {
	Input string
	Swaps []Swap
}

func (e *NonDisjointSpansError) Error() string {
	return fmt.Sprintf("%v: %q with swaps %v", ErrNonDisjointSpans, e.Input, e.Swaps)
}

func (e *NonDisjointSpansError) Unwrap() error {
	return ErrNonDisjointSpans
}

func checkSpan(s string, sp interfaces.Span) error {
	if sp.Start < 0 || sp.Start > sp.End || sp.End > len(s) {
		return fmt.Errorf("%w: %v in %q (len %d)", ErrSpanOutOfRange, sp, s, len(s))
	}
	return nil
}

// Splice applies swaps to s. Spans are taken in descending start order, ties
// broken by descending end, and must be pairwise disjoint. swaps is not modified.
func Splice(s string, swaps []Swap) (string, error) {
	ordered := make([]Swap, len(swaps))
	copy(ordered, swaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Span.Start != ordered[j].Span.Start {
			return ordered[i].Span.Start > ordered[j].Span.Start
		}
		return ordered[i].Span.End > ordered[j].Span.End
	})

	curLeft := len(s)
	out := s
	for _, sw := range ordered {
		if err := checkSpan(s, sw.Span); err != nil {
			return "", err
		}
		if sw.Span.End > curLeft {
			return "", &NonDisjointSpansError{Input: s, Swaps: ordered}
		}
		out = out[:sw.Span.Start] + sw.Text + out[sw.Span.End:]
		curLeft = sw.Span.Start
	}
	return out, nil
}
