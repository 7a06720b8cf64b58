/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: geoquery.go
Description: GeoQuery domain over FunQL logical forms such as
answer(state(next_to(stateid('texas')))). Aligns entity constants with their mentions in
the question and factors wh-question bodies out as nested sub-queries.
*/

package domains

import (
	"regexp"
	"strings"

	"github.com/kleascm/recomb/pkg/interfaces"
)

// GeoQueryName is the registry name of the GeoQuery domain.
const GeoQueryName = "geoquery"

var (
	geoSpaces    = regexp.MustCompile(`\s+`)
	geoPunct     = regexp.MustCompile(`\s*([(),])\s*`)
	geoEntity    = regexp.MustCompile(`(stateid|cityid|riverid|countryid|placeid)\((?:'([^']*)'|([a-z][a-z0-9_ ]*?))(?:,[^()]*)?\)`)
	geoAnswer    = regexp.MustCompile(`^answer\((.*)\)$`)
	geoFunctor   = regexp.MustCompile(`^([a-z_0-9]+)\(`)
	geoQuestion  = regexp.MustCompile(`^(?:what|which|name|give me|list)(?: (?:is|are))?(?: (?:all the|the|all))? (.+?)(?: [?.])?$`)
	geoEntityCat = map[string]string{
		"stateid":   "$state",
		"cityid":    "$city",
		"riverid":   "$river",
		"countryid": "$country",
		"placeid":   "$place",
	}
)

// Head functors that determine the category of a nested query.
var geoTypeFunctors = map[string]string{
	"state":    "$state",
	"city":     "$city",
	"capital":  "$city",
	"river":    "$river",
	"lake":     "$lake",
	"mountain": "$mountain",
	"place":    "$place",
}

// Functors whose first argument carries the type of the whole expression.
var geoWrappers = map[string]bool{
	"largest": true, "smallest": true, "highest": true, "lowest": true,
	"longest": true, "shortest": true, "most": true, "fewest": true,
	"major": true, "largest_one": true, "smallest_one": true,
	"exclude": true, "intersection": true,
}

// GeoQuery implements interfaces.Domain for GeoQuery FunQL.
type GeoQuery struct{}

// NewGeoQuery creates the GeoQuery domain.
func NewGeoQuery() *GeoQuery {
	return &GeoQuery{}
}

// Name returns "geoquery".
func (d *GeoQuery) Name() string {
	return GeoQueryName
}

// PreprocessLF collapses whitespace and removes it around parentheses and commas.
func (d *GeoQuery) PreprocessLF(y string) string {
	y = geoSpaces.ReplaceAllString(strings.TrimSpace(y), " ")
	return geoPunct.ReplaceAllString(y, "$1")
}

// EntityAlignments aligns every entity constant of y with its first
// whole-word mention in x.
func (d *GeoQuery) EntityAlignments(x, y string) []interfaces.Alignment {
	var c collector
	for _, m := range geoEntity.FindAllStringSubmatchIndex(y, -1) {
		cat := geoEntityCat[y[m[2]:m[3]]]
		var name string
		switch {
		case m[4] >= 0:
			name = y[m[4]:m[5]]
		case m[6] >= 0:
			name = strings.ReplaceAll(y[m[6]:m[7]], "_", " ")
		}
		xs, ok := findMention(x, name)
		if !ok {
			continue
		}
		c.add(interfaces.Alignment{
			Category: cat,
			X:        xs,
			Y:        interfaces.Span{Start: m[0], End: m[1]},
		})
	}
	return c.alignments
}

// NestingAlignments templates the entities of (x, y) and offers as
// productions the entities themselves plus, for wh-questions, the question
// body typed by the head of the answer expression.
func (d *GeoQuery) NestingAlignments(x, y string) ([]interfaces.Alignment, []interfaces.Rule) {
	alignments := d.EntityAlignments(x, y)
	productions := literalProductions(x, y, alignments)

	if body, inner, cat, ok := d.questionBody(x, y); ok {
		productions = append(productions, interfaces.Rule{Category: cat, X: body, Y: inner})
	}
	return alignments, productions
}

func (d *GeoQuery) questionBody(x, y string) (string, string, string, bool) {
	am := geoAnswer.FindStringSubmatch(y)
	if am == nil {
		return "", "", "", false
	}
	qm := geoQuestion.FindStringSubmatch(x)
	if qm == nil {
		return "", "", "", false
	}
	body, inner := qm[1], am[1]
	cat, ok := headCategory(inner)
	if !ok || !synchronous(body, inner) {
		return "", "", "", false
	}
	return body, inner, cat, true
}

// headCategory types an expression by its head functor, looking through
// superlatives and set operators.
func headCategory(expr string) (string, bool) {
	rest := expr
	for {
		m := geoFunctor.FindStringSubmatch(rest)
		if m == nil {
			return "", false
		}
		if cat, ok := geoTypeFunctors[m[1]]; ok {
			return cat, true
		}
		if !geoWrappers[m[1]] {
			return "", false
		}
		rest = rest[len(m[0]):]
	}
}
