/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grammar.go
Description: Synchronous context-free grammar used for recombination. Stores rules per
category, enforces x/y placeholder synchrony on insertion, and samples paired strings by
recursively expanding the root category with a bounded recursion depth.
*/

package grammar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"sort"
	"strconv"

	"github.com/kleascm/recomb/pkg/interfaces"
	"go.uber.org/multierr"
)

// Root is the designated start category.
const Root = "$ROOT"

// DefaultMaxDepth bounds the recursion depth of Sample.
const DefaultMaxDepth = 32

var (
	// ErrAsynchronousRule is returned when a rule's x and y patterns do not
	// reference the same placeholder tokens.
	ErrAsynchronousRule = errors.New("asynchronous rule")
	// ErrUndefinedCategory is returned when a placeholder references a
	// category without rules.
	ErrUndefinedCategory = errors.New("undefined category")
	// ErrMaxDepthExceeded is returned when sampling recurses past MaxDepth.
	ErrMaxDepthExceeded = errors.New("maximum sampling depth exceeded")
)

var placeholderPattern = regexp.MustCompile(`(\$[A-Za-z][A-Za-z0-9_]*)_(\d+)\b`)

// Placeholder returns the hole token for category anchored at offset.
func Placeholder(category string, anchor int) string {
	return category + "_" + strconv.Itoa(anchor)
}

// Placeholders returns the distinct placeholder tokens of pattern in order of
// first occurrence.
func Placeholders(pattern string) []string {
	matches := placeholderPattern.FindAllString(pattern, -1)
	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// CategoryOf returns the category encoded in a placeholder token.
func CategoryOf(token string) (string, bool) {
	m := placeholderPattern.FindStringSubmatch(token)
	if m == nil || m[0] != token {
		return "", false
	}
	return m[1], true
}

// Grammar is a synchronous context-free grammar. Rules are kept in insertion
// order and identical rules within a category are stored once.
type Grammar struct {
	Root     string
	MaxDepth int

	rules      []interfaces.Rule
	byCategory map[string][]interfaces.Rule
	seen       map[interfaces.Rule]struct{}
}

// New creates an empty grammar rooted at Root.
func New() *Grammar {
	return &Grammar{
		Root:       Root,
		MaxDepth:   DefaultMaxDepth,
		byCategory: make(map[string][]interfaces.Rule),
		seen:       make(map[interfaces.Rule]struct{}),
	}
}

// FromExamples builds the base grammar: one literal root rule per example.
func FromExamples(examples []interfaces.Example) (*Grammar, error) {
	g := New()
	for _, ex := range examples {
		if err := g.AddRule(g.Root, ex.X, ex.Y); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SetMaxDepth sets the maximum recursion depth used by Sample.
func (g *Grammar) SetMaxDepth(depth int) {
	g.MaxDepth = depth
}

// AddRule inserts category -> (x, y). Both patterns must reference the same
// set of placeholder tokens.
func (g *Grammar) AddRule(category, x, y string) error {
	if err := checkSynchrony(x, y); err != nil {
		return fmt.Errorf("rule %s -> (%q, %q): %w", category, x, y, err)
	}
	r := interfaces.Rule{Category: category, X: x, Y: y}
	if _, ok := g.seen[r]; ok {
		return nil
	}
	g.seen[r] = struct{}{}
	g.rules = append(g.rules, r)
	g.byCategory[category] = append(g.byCategory[category], r)
	return nil
}

// checkSynchrony compares placeholder sets. A single x-side hole may fill
// several y-side holes, so multiplicity is not compared.
func checkSynchrony(x, y string) error {
	xs := Placeholders(x)
	ys := Placeholders(y)
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: x holes %v, y holes %v", ErrAsynchronousRule, xs, ys)
	}
	inX := make(map[string]bool, len(xs))
	for _, t := range xs {
		inX[t] = true
	}
	for _, t := range ys {
		if !inX[t] {
			return fmt.Errorf("%w: x holes %v, y holes %v", ErrAsynchronousRule, xs, ys)
		}
	}
	return nil
}

// Rules returns every rule in insertion order.
func (g *Grammar) Rules() []interfaces.Rule {
	out := make([]interfaces.Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RulesFor returns the rules of one category.
func (g *Grammar) RulesFor(category string) []interfaces.Rule {
	rs := g.byCategory[category]
	out := make([]interfaces.Rule, len(rs))
	copy(out, rs)
	return out
}

// Categories returns the defined categories sorted by name.
func (g *Grammar) Categories() []string {
	cats := make([]string, 0, len(g.byCategory))
	for c := range g.byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Len returns the number of distinct rules.
func (g *Grammar) Len() int {
	return len(g.rules)
}

// Validate reports every placeholder whose category has no rules, and a
// missing root.
func (g *Grammar) Validate() error {
	var err error
	if len(g.byCategory[g.Root]) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: root %s has no rules", ErrUndefinedCategory, g.Root))
	}
	reported := make(map[string]bool)
	for _, r := range g.rules {
		for _, tok := range Placeholders(r.X) {
			cat, _ := CategoryOf(tok)
			if len(g.byCategory[cat]) == 0 && !reported[cat] {
				reported[cat] = true
				err = multierr.Append(err, fmt.Errorf("%w: %s referenced by %s rule %q", ErrUndefinedCategory, cat, r.Category, r.X))
			}
		}
	}
	return err
}

// Sample expands the root category into one (x, y) pair, choosing uniformly
// among rules of the same category at every hole.
func (g *Grammar) Sample(rng *rand.Rand) (string, string, error) {
	return g.expand(g.Root, rng, 0)
}

func (g *Grammar) expand(category string, rng *rand.Rand, depth int) (string, string, error) {
	if depth > g.MaxDepth {
		return "", "", fmt.Errorf("%w: %d expanding %s", ErrMaxDepthExceeded, g.MaxDepth, category)
	}
	rs := g.byCategory[category]
	if len(rs) == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrUndefinedCategory, category)
	}
	r := rs[rng.Intn(len(rs))]

	tokens := Placeholders(r.X)
	if len(tokens) == 0 {
		return r.X, r.Y, nil
	}
	xFill := make(map[string]string, len(tokens))
	yFill := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		cat, _ := CategoryOf(tok)
		x, y, err := g.expand(cat, rng, depth+1)
		if err != nil {
			return "", "", err
		}
		xFill[tok] = x
		yFill[tok] = y
	}
	x := placeholderPattern.ReplaceAllStringFunc(r.X, func(tok string) string {
		return xFill[tok]
	})
	y := placeholderPattern.ReplaceAllStringFunc(r.Y, func(tok string) string {
		return yFill[tok]
	})
	return x, y, nil
}

type grammarJSON struct {
	Root  string            `json:"root"`
	Rules []interfaces.Rule `json:"rules"`
}

// MarshalJSON encodes the root and the rule list.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	rules := g.rules
	if rules == nil {
		rules = []interfaces.Rule{}
	}
	return json.Marshal(grammarJSON{Root: g.Root, Rules: rules})
}

// UnmarshalJSON decodes a grammar written by MarshalJSON, re-checking synchrony.
func (g *Grammar) UnmarshalJSON(data []byte) error {
	var raw grammarJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fresh := New()
	if raw.Root != "" {
		fresh.Root = raw.Root
	}
	if g.MaxDepth > 0 {
		fresh.MaxDepth = g.MaxDepth
	}
	for _, r := range raw.Rules {
		if err := fresh.AddRule(r.Category, r.X, r.Y); err != nil {
			return err
		}
	}
	*g = *fresh
	return nil
}

// WriteTo prints one rule per line as "category ::= x ||| y".
func (g *Grammar) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range g.rules {
		n, err := fmt.Fprintf(w, "%s ::= %s ||| %s\n", r.Category, r.X, r.Y)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
