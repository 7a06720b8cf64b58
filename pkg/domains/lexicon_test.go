/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lexicon_test.go
Description: Tests for the lexicon domain and the domain registry.
*/

package domains_test

import (
	"context"
	"testing"

	"github.com/kleascm/recomb/pkg/core"
	"github.com/kleascm/recomb/pkg/domains"
	"github.com/kleascm/recomb/pkg/interfaces"
	"github.com/kleascm/recomb/pkg/strategies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colors = []domains.LexiconEntry{
	{Category: "$color", Phrase: "red", Denotation: "RED"},
	{Category: "$color", Phrase: "dark red", Denotation: "DARKRED"},
	{Category: "$shape", Phrase: "square", Denotation: "SQ"},
}

func TestNewLexicon(t *testing.T) {
	_, err := domains.NewLexicon(nil)
	assert.ErrorIs(t, err, domains.ErrEmptyLexicon)

	_, err = domains.NewLexicon([]domains.LexiconEntry{{Category: "color", Phrase: "red", Denotation: "RED"}})
	assert.Error(t, err)

	_, err = domains.NewLexicon([]domains.LexiconEntry{{Category: "$color", Phrase: "", Denotation: "RED"}})
	assert.Error(t, err)

	d, err := domains.NewLexicon(colors)
	require.NoError(t, err)
	assert.Equal(t, "lexicon", d.Name())
	assert.Equal(t, "f ( a , b )", d.PreprocessLF("  f (  a ,\tb ) "))
}

func TestLexiconLongestMatchWins(t *testing.T) {
	d, err := domains.NewLexicon(colors)
	require.NoError(t, err)

	x, y := "a dark red square", "f(DARKRED,SQ)"
	got := d.EntityAlignments(x, y)
	assert.Equal(t, []interfaces.Alignment{
		{Category: "$color", X: interfaces.Span{Start: 2, End: 10}, Y: interfaces.Span{Start: 2, End: 9}},
		{Category: "$shape", X: interfaces.Span{Start: 11, End: 17}, Y: interfaces.Span{Start: 10, End: 12}},
	}, got)

	_, productions := d.NestingAlignments(x, y)
	assert.Equal(t, []interfaces.Rule{
		{Category: "$color", X: "dark red", Y: "DARKRED"},
		{Category: "$shape", X: "square", Y: "SQ"},
	}, productions)
}

func TestLexiconOrdersByMention(t *testing.T) {
	d, err := domains.NewLexicon(colors)
	require.NoError(t, err)

	got := d.EntityAlignments("red square", "g(SQ,RED)")
	require.Len(t, got, 2)
	assert.Equal(t, "$color", got[0].Category)
	assert.Equal(t, "$shape", got[1].Category)

	assert.Empty(t, d.EntityAlignments("a blue circle", "h(BLUE,CIRCLE)"))
	assert.Empty(t, d.EntityAlignments("a red circle", "h(BLUE,CIRCLE)"))
}

var states = []domains.LexiconEntry{
	{Category: "$state", Phrase: "texas", Denotation: "texas"},
	{Category: "$state", Phrase: "ohio", Denotation: "ohio"},
}

func TestLexiconDenotationBoundaries(t *testing.T) {
	d, err := domains.NewLexicon(states)
	require.NoError(t, err)

	// texas_state is a different identifier
	got := d.EntityAlignments("rivers in texas", "answer(river(loc_2(texas_state,texas)))")
	assert.Equal(t, []interfaces.Alignment{
		{Category: "$state", X: interfaces.Span{Start: 10, End: 15}, Y: interfaces.Span{Start: 31, End: 36}},
	}, got)

	assert.Empty(t, d.EntityAlignments("rivers in texas", "answer(river(loc_2(texas_state)))"))
	assert.Empty(t, d.EntityAlignments("rivers in texasville", "answer(river(loc_2(texas)))"))
}

func TestLexiconPunctuatedDenotation(t *testing.T) {
	d, err := domains.NewLexicon([]domains.LexiconEntry{
		{Category: "$city", Phrase: "st. louis", Denotation: "cityid(st. louis)"},
	})
	require.NoError(t, err)

	got := d.EntityAlignments("where is st. louis ?", "answer(loc_1(cityid(st. louis)))")
	assert.Equal(t, []interfaces.Alignment{
		{Category: "$city", X: interfaces.Span{Start: 9, End: 18}, Y: interfaces.Span{Start: 13, End: 30}},
	}, got)

	assert.Empty(t, d.EntityAlignments("where is st. louis ?", "answer(loc_1(xcityid(st. louis)))"))
}

func TestLexiconRepeatedDenotation(t *testing.T) {
	d, err := domains.NewLexicon(states)
	require.NoError(t, err)

	got := d.EntityAlignments("cities in ohio", "answer(city(loc_2(ohio),ohio))")
	assert.Equal(t, []interfaces.Alignment{
		{Category: "$state", X: interfaces.Span{Start: 10, End: 14}, Y: interfaces.Span{Start: 18, End: 22}},
		{Category: "$state", X: interfaces.Span{Start: 10, End: 14}, Y: interfaces.Span{Start: 24, End: 28}},
	}, got)
}

func TestLexiconAugmentation(t *testing.T) {
	d, err := domains.NewLexicon(states)
	require.NoError(t, err)
	specs, err := strategies.ParseSpecs("entity")
	require.NoError(t, err)

	data := []interfaces.Example{
		{X: "rivers in texas", Y: "answer(river(loc_2(texas_state,texas)))"},
		{X: "cities in ohio", Y: "answer(city(loc_2(ohio),ohio))"},
	}
	a, err := core.NewAugmenter(d, data, specs, core.WithSeed(1))
	require.NoError(t, err)

	want := map[interfaces.Example]bool{
		{X: "rivers in ohio", Y: "answer(river(loc_2(texas_state,ohio)))"}: true,
		{X: "cities in texas", Y: "answer(city(loc_2(texas),texas))"}:      true,
	}
	samples, err := a.Sample(context.Background(), 20)
	require.NoError(t, err)
	for _, s := range samples {
		assert.True(t, want[s], "unexpected sample %+v", s)
	}
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, domains.Names(), []string{domains.GeoQueryName, domains.LexiconName})

	d, err := domains.New(domains.GeoQueryName, domains.Options{})
	require.NoError(t, err)
	assert.Equal(t, domains.GeoQueryName, d.Name())

	_, err = domains.New("atis", domains.Options{})
	assert.ErrorIs(t, err, domains.ErrUnknownDomain)

	d, err = domains.New(domains.LexiconName, domains.Options{})
	assert.ErrorIs(t, err, domains.ErrEmptyLexicon)
	assert.Nil(t, d)

	d, err = domains.New(domains.LexiconName, domains.Options{Lexicon: colors})
	require.NoError(t, err)
	assert.Equal(t, domains.LexiconName, d.Name())

	domains.Register("registry-test", func(domains.Options) (interfaces.Domain, error) {
		return domains.NewGeoQuery(), nil
	})
	assert.Contains(t, domains.Names(), "registry-test")
}
