package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPredicateRegistry = `{
	"relationshipTypes": [
		{
			"id": "rel-depends-on",
			"predicate": "depends-on",
			"inversePredicate": "supports",
			"semantics": {
				"directionality": "bidirectional",
				"transitivity": true,
				"cardinality": "one-to-many"
			},
			"applicableLayers": ["07", "08"]
		},
		{
			"id": "rel-supports",
			"predicate": "supports",
			"inversePredicate": "depends-on",
			"semantics": {
				"directionality": "bidirectional",
				"cardinality": "one-to-many"
			},
			"applicableLayers": ["07", "08"]
		},
		{
			"id": "rel-succeeds",
			"predicate": "succeeds",
			"semantics": {
				"directionality": "unidirectional",
				"cardinality": "one-to-one"
			}
		}
	]
}`

func parseTestPredicates(t *testing.T) *PredicateCatalog {
	t.Helper()
	c, err := ParsePredicateCatalog([]byte(testPredicateRegistry))
	require.NoError(t, err)
	return c
}

func TestParsePredicateCatalog(t *testing.T) {
	c := parseTestPredicates(t)
	assert.Equal(t, 3, c.Len())

	rt := c.Get("depends-on")
	require.NotNil(t, rt)
	assert.Equal(t, "supports", rt.InversePredicate)
	assert.True(t, rt.IsBidirectional())
	assert.True(t, rt.Semantics.Transitivity)

	assert.Nil(t, c.Get("unknown"))
}

func TestParsePredicateCatalog_DuplicatePredicate(t *testing.T) {
	_, err := ParsePredicateCatalog([]byte(`{
		"relationshipTypes": [
			{"id": "a", "predicate": "dup", "semantics": {"directionality": "unidirectional", "cardinality": "one-to-one"}},
			{"id": "b", "predicate": "dup", "semantics": {"directionality": "unidirectional", "cardinality": "one-to-one"}}
		]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate predicate")
}

func TestParsePredicateCatalog_InvalidSemantics(t *testing.T) {
	_, err := ParsePredicateCatalog([]byte(`{
		"relationshipTypes": [
			{"id": "a", "predicate": "p", "semantics": {"directionality": "sideways", "cardinality": "one-to-one"}}
		]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid relationship type")
}

func TestParsePredicateCatalog_NullEntry(t *testing.T) {
	_, err := ParsePredicateCatalog([]byte(`{"relationshipTypes": [null]}`))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Reason, "malformed relationship type entry")
}

func TestParsePredicateCatalog_BidirectionalWithoutInverse(t *testing.T) {
	_, err := ParsePredicateCatalog([]byte(`{
		"relationshipTypes": [
			{"id": "a", "predicate": "composes", "semantics": {"directionality": "bidirectional", "cardinality": "one-to-many"}}
		]
	}`))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Reason, "declares no inverse predicate")
}

func TestPredicateInverse(t *testing.T) {
	c := parseTestPredicates(t)
	assert.Equal(t, "supports", c.Inverse("depends-on"))
	assert.Equal(t, "depends-on", c.Inverse("supports"))
	assert.Equal(t, "", c.Inverse("succeeds"))
	assert.Equal(t, "", c.Inverse("unknown"))
}

func TestPredicatesForLayer(t *testing.T) {
	c := parseTestPredicates(t)

	// Long and short layer forms resolve identically.
	assert.Equal(t, []string{"depends-on", "supports", "succeeds"}, c.ForLayer("07-data-model"))
	assert.Equal(t, []string{"depends-on", "supports", "succeeds"}, c.ForLayer("07"))

	// succeeds has no layer restriction, so it applies everywhere.
	assert.Equal(t, []string{"succeeds"}, c.ForLayer("02-business-layer"))
}

func TestAppliesTo(t *testing.T) {
	c := parseTestPredicates(t)

	restricted := c.Get("depends-on")
	assert.True(t, restricted.AppliesTo("07"))
	assert.True(t, restricted.AppliesTo("07-data-model"))
	assert.False(t, restricted.AppliesTo("02-business-layer"))

	unrestricted := c.Get("succeeds")
	assert.True(t, unrestricted.AppliesTo("99-anything"))
}

func TestLayerPrefix(t *testing.T) {
	assert.Equal(t, "07", LayerPrefix("07-data-model"))
	assert.Equal(t, "07", LayerPrefix("07"))
	assert.Equal(t, "motivation", LayerPrefix("motivation"))
}

func TestPredicateCatalogAll(t *testing.T) {
	c := parseTestPredicates(t)
	assert.Equal(t, []string{"depends-on", "supports", "succeeds"}, c.All())
}
