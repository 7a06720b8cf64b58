/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inducer_test.go
Description: Tests for the entity, nesting and concatenation inducers and their
composition, using a stub domain with hand-written alignments.
*/

package strategies_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kleascm/recomb/pkg/grammar"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/strategies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDomain aligns state names with every stateid(<name>) occurrence in y
type stubDomain struct {
	states      []string
	productions map[string][]interfaces.Rule // keyed by x
}

func (d *stubDomain) Name() string                 { return "stub" }
func (d *stubDomain) PreprocessLF(y string) string { return y }

func (d *stubDomain) EntityAlignments(x, y string) []interfaces.Alignment {
	var out []interfaces.Alignment
	for _, s := range d.states {
		xi := strings.Index(x, s)
		if xi < 0 {
			continue
		}
		lf := "stateid(" + s + ")"
		for off := 0; ; {
			yi := strings.Index(y[off:], lf)
			if yi < 0 {
				break
			}
			out = append(out, interfaces.Alignment{
				Category: "$state",
				X:        interfaces.Span{Start: xi, End: xi + len(s)},
				Y:        interfaces.Span{Start: off + yi, End: off + yi + len(lf)},
			})
			off += yi + len(lf)
		}
	}
	return out
}

func (d *stubDomain) NestingAlignments(x, y string) ([]interfaces.Alignment, []interfaces.Rule) {
	return d.EntityAlignments(x, y), d.productions[x]
}

var geoExamples = []interfaces.Example{
	{X: "what states border texas ?", Y: "answer(state(next_to(stateid(texas))))"},
	{X: "what is the capital of ohio ?", Y: "answer(capital(loc_2(stateid(ohio))))"},
}

func baseGrammar(t *testing.T, data []interfaces.Example) *grammar.Grammar {
	g, err := grammar.FromExamples(data)
	require.NoError(t, err)
	return g
}

func findRule(rules []interfaces.Rule, category string, pred func(interfaces.Rule) bool) (interfaces.Rule, bool) {
	for _, r := range rules {
		if r.Category == category && pred(r) {
			return r, true
		}
	}
	return interfaces.Rule{}, false
}

// TestEntityInducer collects entities and templates root rules
func TestEntityInducer(t *testing.T) {
	domain := &stubDomain{states: []string{"texas", "ohio"}}
	base := baseGrammar(t, geoExamples)

	g, err := strategies.NewEntityInducer(domain).Induce(base, geoExamples)
	require.NoError(t, err)

	assert.ElementsMatch(t, []interfaces.Rule{
		{Category: "$state", X: "texas", Y: "stateid(texas)"},
		{Category: "$state", X: "ohio", Y: "stateid(ohio)"},
	}, g.RulesFor("$state"))

	wantRoot := []interfaces.Rule{
		{Category: grammar.Root, X: "what is the capital of $state_23 ?", Y: "answer(capital(loc_2($state_23)))"},
		{Category: grammar.Root, X: "what states border $state_19 ?", Y: "answer(state(next_to($state_19)))"},
	}
	byX := cmpopts.SortSlices(func(a, b interfaces.Rule) bool { return a.X < b.X })
	if diff := cmp.Diff(wantRoot, g.RulesFor(grammar.Root), byX); diff != "" {
		t.Errorf("root rules mismatch (-want +got):\n%s", diff)
	}

	// base is untouched
	assert.Equal(t, geoExamples[0].X, base.RulesFor(grammar.Root)[0].X)
	assert.Equal(t, 2, base.Len())
}

// TestEntityRoundTrip substitutes the aligned literal back into the template
func TestEntityRoundTrip(t *testing.T) {
	domain := &stubDomain{states: []string{"texas", "ohio"}}
	g, err := strategies.NewEntityInducer(domain).Induce(baseGrammar(t, geoExamples), geoExamples)
	require.NoError(t, err)

	for _, ex := range geoExamples {
		a := domain.EntityAlignments(ex.X, ex.Y)[0]
		tok := grammar.Placeholder(a.Category, a.X.Start)
		tmpl, ok := findRule(g.Rules(), grammar.Root, func(r interfaces.Rule) bool {
			return strings.Contains(r.X, tok)
		})
		require.True(t, ok, "template for %q", ex.X)

		assert.Equal(t, ex.X, strings.ReplaceAll(tmpl.X, tok, a.X.Slice(ex.X)))
		assert.Equal(t, ex.Y, strings.ReplaceAll(tmpl.Y, tok, a.Y.Slice(ex.Y)))
	}
}

// TestEntityOneToMany fills several y holes from one x mention
func TestEntityOneToMany(t *testing.T) {
	domain := &stubDomain{states: []string{"texas"}}
	data := []interfaces.Example{{X: "in texas", Y: "f(stateid(texas),stateid(texas))"}}

	g, err := strategies.NewEntityInducer(domain).Induce(baseGrammar(t, data), data)
	require.NoError(t, err)

	root := g.RulesFor(grammar.Root)
	require.Len(t, root, 1)
	assert.Equal(t, "in $state_3", root[0].X)
	assert.Equal(t, "f($state_3,$state_3)", root[0].Y)

	x, y, err := g.Sample(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, data[0].X, x)
	assert.Equal(t, data[0].Y, y)
}

// TestNestingInducer inserts productions verbatim and templates the rule
func TestNestingInducer(t *testing.T) {
	productions := []interfaces.Rule{
		{Category: "$state", X: "texas", Y: "stateid(texas)"},
		{Category: "$state", X: "states border texas", Y: "state(next_to(stateid(texas)))"},
	}
	domain := &stubDomain{
		states:      []string{"texas"},
		productions: map[string][]interfaces.Rule{geoExamples[0].X: productions},
	}
	data := geoExamples[:1]

	g, err := strategies.NewNestingInducer(domain).Induce(baseGrammar(t, data), data)
	require.NoError(t, err)

	for _, p := range productions {
		assert.Contains(t, g.RulesFor(p.Category), p)
	}

	root := g.RulesFor(grammar.Root)
	require.Len(t, root, 1)
	assert.True(t, strings.HasPrefix(root[0].X, "what states border "))
	assert.True(t, strings.HasSuffix(root[0].X, " ?"))
	assert.Equal(t, "what states border $state_19 ?", root[0].X)
	assert.Equal(t, "answer(state(next_to($state_19)))", root[0].Y)

	// nested samples keep both sides in step
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		x, y, err := g.Sample(rng)
		require.NoError(t, err)
		depth := strings.Count(x, "states border")
		assert.Equal(t, depth, strings.Count(y, "state(next_to("), "x=%q y=%q", x, y)
	}
}

// TestConcatInducer samples two independent sentences joined by [SEP]
func TestConcatInducer(t *testing.T) {
	data := []interfaces.Example{{X: "a", Y: "A"}, {X: "b", Y: "B"}}
	base := baseGrammar(t, data)
	require.NoError(t, base.AddRule("$thing", "c", "C"))

	g, err := strategies.NewConcatInducer(2).Induce(base, data)
	require.NoError(t, err)

	assert.Equal(t, []interfaces.Rule{{Category: grammar.Root, X: "$sentence_0 [SEP] $sentence_1", Y: "$sentence_0 [SEP] $sentence_1"}}, g.RulesFor(grammar.Root))
	assert.Len(t, g.RulesFor(strategies.SentenceCategory), 2)
	assert.Equal(t, []interfaces.Rule{{Category: "$thing", X: "c", Y: "C"}}, g.RulesFor("$thing"))

	valid := map[string]string{"a": "A", "b": "B"}
	seen := make(map[string]bool)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		x, y, err := g.Sample(rng)
		require.NoError(t, err)
		xs := strings.Split(x, " [SEP] ")
		ys := strings.Split(y, " [SEP] ")
		require.Len(t, xs, 2)
		require.Len(t, ys, 2)
		for j := range xs {
			assert.Equal(t, valid[xs[j]], ys[j])
		}
		seen[x] = true
	}
	assert.Len(t, seen, 4, "all four combinations should be reachable")
}

// TestConcatInducerRejectsZero requires a positive count
func TestConcatInducerRejectsZero(t *testing.T) {
	_, err := strategies.NewConcatInducer(0).Induce(grammar.New(), nil)
	assert.ErrorIs(t, err, strategies.ErrUnsupportedAugmentationType)
}

// TestInducerPropagatesSpliceErrors surfaces overlapping alignments
func TestInducerPropagatesSpliceErrors(t *testing.T) {
	domain := &stubDomain{states: []string{"new york", "york"}}
	data := []interfaces.Example{{X: "in new york", Y: "f(stateid(new york),stateid(york))"}}

	_, err := strategies.NewEntityInducer(domain).Induce(baseGrammar(t, data), data)
	assert.ErrorIs(t, err, strategies.ErrNonDisjointSpans)
}

// TestPipeline folds strategies left to right
func TestPipeline(t *testing.T) {
	domain := &stubDomain{states: []string{"texas", "ohio"}}
	specs, err := strategies.ParseSpecs("entity+concat2")
	require.NoError(t, err)

	p := strategies.NewPipelineFromSpecs(domain, specs, nil)
	assert.Equal(t, "entity+concat2", p.Name())

	base := baseGrammar(t, geoExamples)
	g, err := p.Induce(base, geoExamples)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Len(t, g.RulesFor(grammar.Root), 1)
	assert.Len(t, g.RulesFor(strategies.SentenceCategory), 2)
	assert.Len(t, g.RulesFor("$state"), 2)
	assert.Equal(t, 2, base.Len())

	x, y, err := g.Sample(rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(x, strategies.Separator))
	assert.Equal(t, 1, strings.Count(y, strategies.Separator))
}

// TestPipelineEmpty returns the base grammar unchanged
func TestPipelineEmpty(t *testing.T) {
	base := baseGrammar(t, geoExamples)
	g, err := strategies.NewPipeline(nil, nil).Induce(base, geoExamples)
	require.NoError(t, err)
	assert.Same(t, base, g)
}
