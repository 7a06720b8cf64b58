/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: spec.go
Description: Augmentation strategy specifications. Each strategy is a distinct variant
carrying its own typed parameters; identifiers such as "entity+concat2" are parsed into
an ordered list of specs up front so unknown strategies fail fast.
*/

package strategies

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/recomb/pkg/interfaces"
)

// ErrUnsupportedAugmentationType is returned for unknown strategy identifiers.
var ErrUnsupportedAugmentationType = errors.New("unsupported augmentation type")

// Spec describes one augmentation strategy.
type Spec interface {
	// String returns the identifier the spec was parsed from.
	String() string
	// Inducer binds the strategy to a domain.
	Inducer(domain interfaces.Domain) Inducer
}

// EntitySpec selects entity substitution.
type EntitySpec struct{}

func (EntitySpec) String() string { return "entity" }

func (EntitySpec) Inducer(domain interfaces.Domain) Inducer {
	return NewEntityInducer(domain)
}

// NestingSpec selects sub-query nesting.
type NestingSpec struct{}

func (NestingSpec) String() string { return "nesting" }

func (NestingSpec) Inducer(domain interfaces.Domain) Inducer {
	return NewNestingInducer(domain)
}

// ConcatSpec selects concatenation of Count sentences.
type ConcatSpec struct {
	Count int
}

func (s ConcatSpec) String() string { return fmt.Sprintf("concat%d", s.Count) }

func (s ConcatSpec) Inducer(interfaces.Domain) Inducer {
	return NewConcatInducer(s.Count)
}

const concatPrefix = "concat"

// ParseSpec parses a single identifier: "entity", "nesting" or "concat<K>"
// with K a positive integer.
func ParseSpec(id string) (Spec, error) {
	switch {
	case id == "entity":
		return EntitySpec{}, nil
	case id == "nesting":
		return NestingSpec{}, nil
	case strings.HasPrefix(id, concatPrefix):
		digits := id[len(concatPrefix):]
		k, err := strconv.Atoi(digits)
		if err != nil || k < 1 || strings.HasPrefix(digits, "+") {
			return nil, fmt.Errorf("%w: %q (want concat<K> with K >= 1)", ErrUnsupportedAugmentationType, id)
		}
		return ConcatSpec{Count: k}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAugmentationType, id)
	}
}

// ParseSpecs parses a '+'-joined list of identifiers, preserving order.
func ParseSpecs(s string) ([]Spec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty augmentation type", ErrUnsupportedAugmentationType)
	}
	parts := strings.Split(s, "+")
	specs := make([]Spec, 0, len(parts))
	for _, p := range parts {
		spec, err := ParseSpec(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// JoinSpecs formats specs back into the '+'-joined identifier.
func JoinSpecs(specs []Spec) string {
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.String()
	}
	return strings.Join(ids, "+")
}
