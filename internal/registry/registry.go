// Package registry provides the declarative catalogs that drive link
// analysis: cross-layer link type definitions and intra-layer relationship
// predicates.
//
// Catalogs are loaded once from JSON registry files and are immutable
// afterwards, so they are safe for unlimited concurrent reads. Loading
// validates structural consistency (duplicate ids, unknown category
// references, malformed definitions) and fails fast with a *LoadError;
// everything after a successful load is a pure lookup.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// LoadError reports a malformed or internally inconsistent catalog source.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("registry %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("registry: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// catalogSource is the on-disk shape of a link type registry.
type catalogSource struct {
	LinkTypes  []*LinkType         `json:"linkTypes"`
	Categories map[string]Category `json:"categories"`
}

// Catalog indexes link type definitions for lookup by id, layer,
// predicate, and field path. It holds no model data.
type Catalog struct {
	linkTypes  map[string]*LinkType
	categories map[string]Category
	order      []string
}

// LoadCatalog reads and indexes a link type registry file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot read registry file", Err: err}
	}
	c, err := ParseCatalog(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Source = path
		}
		return nil, err
	}
	return c, nil
}

// ParseCatalog indexes a link type registry from raw JSON.
func ParseCatalog(data []byte) (*Catalog, error) {
	var src catalogSource
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, &LoadError{Reason: "malformed JSON", Err: err}
	}

	v := validator.New()
	c := &Catalog{
		linkTypes:  make(map[string]*LinkType, len(src.LinkTypes)),
		categories: src.Categories,
	}
	if c.categories == nil {
		c.categories = map[string]Category{}
	}

	for _, lt := range src.LinkTypes {
		if lt == nil {
			return nil, &LoadError{Reason: "malformed link type entry: null"}
		}
		if err := v.Struct(lt); err != nil {
			return nil, &LoadError{
				Reason: fmt.Sprintf("invalid link type %q: %v", lt.ID, err),
				Err:    err,
			}
		}
		if _, dup := c.linkTypes[lt.ID]; dup {
			return nil, &LoadError{Reason: fmt.Sprintf("duplicate link type id %q", lt.ID)}
		}
		if _, ok := c.categories[lt.Category]; !ok {
			return nil, &LoadError{
				Reason: fmt.Sprintf("link type %q references unknown category %q", lt.ID, lt.Category),
			}
		}
		c.linkTypes[lt.ID] = lt
		c.order = append(c.order, lt.ID)
	}

	return c, nil
}

// Get returns the link type with the given id, or nil if unknown.
func (c *Catalog) Get(id string) *LinkType {
	return c.linkTypes[id]
}

// Len returns the number of link types in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// All returns every link type in load order.
func (c *Catalog) All() []*LinkType {
	out := make([]*LinkType, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.linkTypes[id])
	}
	return out
}

// CategoryName resolves a category id to its display name.
// Unknown ids resolve to the id itself.
func (c *Catalog) CategoryName(id string) string {
	if cat, ok := c.categories[id]; ok {
		return cat.Name
	}
	return id
}

// BySourceLayer returns every link type that can originate from layer.
func (c *Catalog) BySourceLayer(layer string) []*LinkType {
	var out []*LinkType
	for _, id := range c.order {
		if lt := c.linkTypes[id]; lt.HasSourceLayer(layer) {
			out = append(out, lt)
		}
	}
	return out
}

// ByTargetLayer returns every link type pointing into layer.
func (c *Catalog) ByTargetLayer(layer string) []*LinkType {
	var out []*LinkType
	for _, id := range c.order {
		if lt := c.linkTypes[id]; lt.TargetLayer == layer {
			out = append(out, lt)
		}
	}
	return out
}

// Between returns the link types that run from sourceLayer to targetLayer.
func (c *Catalog) Between(sourceLayer, targetLayer string) []*LinkType {
	var out []*LinkType
	for _, id := range c.order {
		lt := c.linkTypes[id]
		if lt.HasSourceLayer(sourceLayer) && lt.TargetLayer == targetLayer {
			out = append(out, lt)
		}
	}
	return out
}

// ByPredicate returns the link types whose effective predicate matches.
func (c *Catalog) ByPredicate(predicate string) []*LinkType {
	var out []*LinkType
	for _, id := range c.order {
		if lt := c.linkTypes[id]; lt.EffectivePredicate() == predicate {
			out = append(out, lt)
		}
	}
	return out
}

// ByFieldPath returns the link types declaring the given field path.
func (c *Catalog) ByFieldPath(fieldPath string) []*LinkType {
	var out []*LinkType
	for _, id := range c.order {
		lt := c.linkTypes[id]
		for _, fp := range lt.FieldPaths {
			if fp == fieldPath {
				out = append(out, lt)
				break
			}
		}
	}
	return out
}
