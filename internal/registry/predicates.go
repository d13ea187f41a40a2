package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// predicateSource is the on-disk shape of a relationship predicate registry.
type predicateSource struct {
	RelationshipTypes []*RelationshipType `json:"relationshipTypes"`
	Categories        map[string]Category `json:"categories"`
}

// PredicateCatalog indexes intra-layer relationship types by predicate.
// Like Catalog it is immutable after load.
type PredicateCatalog struct {
	byPredicate map[string]*RelationshipType
	categories  map[string]Category
	order       []string
}

// LoadPredicateCatalog reads and indexes a relationship registry file.
func LoadPredicateCatalog(path string) (*PredicateCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot read registry file", Err: err}
	}
	c, err := ParsePredicateCatalog(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Source = path
		}
		return nil, err
	}
	return c, nil
}

// ParsePredicateCatalog indexes a relationship registry from raw JSON.
func ParsePredicateCatalog(data []byte) (*PredicateCatalog, error) {
	var src predicateSource
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, &LoadError{Reason: "malformed JSON", Err: err}
	}

	v := validator.New()
	c := &PredicateCatalog{
		byPredicate: make(map[string]*RelationshipType, len(src.RelationshipTypes)),
		categories:  src.Categories,
	}
	if c.categories == nil {
		c.categories = map[string]Category{}
	}

	for _, rt := range src.RelationshipTypes {
		if rt == nil {
			return nil, &LoadError{Reason: "malformed relationship type entry: null"}
		}
		if err := v.Struct(rt); err != nil {
			return nil, &LoadError{
				Reason: fmt.Sprintf("invalid relationship type %q: %v", rt.ID, err),
				Err:    err,
			}
		}
		if rt.IsBidirectional() && rt.InversePredicate == "" {
			return nil, &LoadError{
				Reason: fmt.Sprintf("bidirectional relationship type %q declares no inverse predicate", rt.ID),
			}
		}
		if _, dup := c.byPredicate[rt.Predicate]; dup {
			return nil, &LoadError{Reason: fmt.Sprintf("duplicate predicate %q", rt.Predicate)}
		}
		if rt.Category != "" && len(src.Categories) > 0 {
			if _, ok := c.categories[rt.Category]; !ok {
				return nil, &LoadError{
					Reason: fmt.Sprintf("relationship type %q references unknown category %q", rt.ID, rt.Category),
				}
			}
		}
		c.byPredicate[rt.Predicate] = rt
		c.order = append(c.order, rt.Predicate)
	}

	return c, nil
}

// Get returns the relationship type for predicate, or nil if unknown.
func (c *PredicateCatalog) Get(predicate string) *RelationshipType {
	return c.byPredicate[predicate]
}

// Inverse returns the inverse predicate of predicate, or "" when the
// predicate is unknown or has no declared inverse.
func (c *PredicateCatalog) Inverse(predicate string) string {
	rt := c.byPredicate[predicate]
	if rt == nil {
		return ""
	}
	return rt.InversePredicate
}

// ForLayer returns the predicates applicable to the given layer, in load
// order. Both the long form ("07-data-model") and the short numeric form
// ("07") are accepted.
func (c *PredicateCatalog) ForLayer(layer string) []string {
	var out []string
	for _, p := range c.order {
		if c.byPredicate[p].AppliesTo(layer) {
			out = append(out, p)
		}
	}
	return out
}

// All returns every known predicate in load order.
func (c *PredicateCatalog) All() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of relationship types in the catalog.
func (c *PredicateCatalog) Len() int {
	return len(c.order)
}
