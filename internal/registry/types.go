package registry

import "strings"

// Cardinality describes how many target ids a link field holds.
type Cardinality string

const (
	// CardinalitySingle means the field holds exactly one target id.
	CardinalitySingle Cardinality = "single"

	// CardinalityArray means the field holds a list of target ids.
	CardinalityArray Cardinality = "array"
)

// Directionality describes whether an intra-layer relationship implies
// a reverse relationship on the target element.
type Directionality string

const (
	Unidirectional Directionality = "unidirectional"
	Bidirectional  Directionality = "bidirectional"
)

// RelationCardinality classifies intra-layer relationship multiplicity.
type RelationCardinality string

const (
	OneToOne   RelationCardinality = "one-to-one"
	OneToMany  RelationCardinality = "one-to-many"
	ManyToMany RelationCardinality = "many-to-many"
)

// ValidationRules holds the optional per-link-type validation settings.
type ValidationRules struct {
	// TargetExists controls whether a missing target is an error.
	// Defaults to true when absent.
	TargetExists *bool `json:"targetExists,omitempty"`

	// TargetType restricts targets to a single element type.
	TargetType string `json:"targetType,omitempty"`

	// FormatPattern is a regular expression target ids must match.
	FormatPattern string `json:"formatPattern,omitempty"`
}

// RequireTargetExists reports whether missing targets should be treated
// as errors for this rule set (the default when unset).
func (r ValidationRules) RequireTargetExists() bool {
	if r.TargetExists == nil {
		return true
	}
	return *r.TargetExists
}

// LinkType is the immutable definition of a possible cross-layer link:
// where it originates, where it points, which element properties carry it,
// and how its values are shaped.
type LinkType struct {
	ID                 string          `json:"id" validate:"required"`
	Name               string          `json:"name" validate:"required"`
	Category           string          `json:"category" validate:"required"`
	Predicate          string          `json:"predicate,omitempty"`
	SourceLayers       []string        `json:"sourceLayers" validate:"required,min=1"`
	TargetLayer        string          `json:"targetLayer" validate:"required"`
	TargetElementTypes []string        `json:"targetElementTypes,omitempty"`
	FieldPaths         []string        `json:"fieldPaths" validate:"required,min=1"`
	Cardinality        Cardinality     `json:"cardinality" validate:"required,oneof=single array"`
	Format             string          `json:"format,omitempty"`
	Description        string          `json:"description,omitempty"`
	Examples           []string        `json:"examples,omitempty"`
	ValidationRules    ValidationRules `json:"validationRules,omitempty"`
}

// EffectivePredicate returns the predicate name for this link type.
// An explicit predicate declaration wins; otherwise the predicate is
// derived from the first field path: its last dotted segment, with a
// leading "x-" extension prefix trimmed.
func (t *LinkType) EffectivePredicate() string {
	if t.Predicate != "" {
		return t.Predicate
	}
	if len(t.FieldPaths) == 0 {
		return ""
	}
	path := t.FieldPaths[0]
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimPrefix(path, "x-")
}

// HasSourceLayer reports whether layer is one of the declared source layers.
func (t *LinkType) HasSourceLayer(layer string) bool {
	for _, l := range t.SourceLayers {
		if l == layer {
			return true
		}
	}
	return false
}

// AllowsTargetType reports whether an element of the given type is an
// acceptable link target. An empty TargetElementTypes set allows any type.
func (t *LinkType) AllowsTargetType(elementType string) bool {
	if len(t.TargetElementTypes) == 0 {
		return true
	}
	for _, et := range t.TargetElementTypes {
		if et == elementType {
			return true
		}
	}
	return false
}

// Category is a named grouping of link types.
type Category struct {
	Name string `json:"name" validate:"required"`
}

// Semantics captures the logical properties of an intra-layer relationship.
type Semantics struct {
	Directionality Directionality      `json:"directionality" validate:"required,oneof=unidirectional bidirectional"`
	Transitivity   bool                `json:"transitivity"`
	Symmetry       bool                `json:"symmetry"`
	Cardinality    RelationCardinality `json:"cardinality" validate:"required,oneof=one-to-one one-to-many many-to-many"`
}

// RelationshipType is the definition of a same-layer relationship predicate.
type RelationshipType struct {
	ID                 string    `json:"id" validate:"required"`
	Predicate          string    `json:"predicate" validate:"required"`
	InversePredicate   string    `json:"inversePredicate,omitempty"`
	Category           string    `json:"category,omitempty"`
	ArchimateAlignment string    `json:"archimateAlignment,omitempty"`
	Description        string    `json:"description,omitempty"`
	Semantics          Semantics `json:"semantics"`
	ApplicableLayers   []string  `json:"applicableLayers,omitempty"`
	Examples           []string  `json:"examples,omitempty"`
}

// IsBidirectional reports whether the relationship implies an inverse
// entry on the target element.
func (t *RelationshipType) IsBidirectional() bool {
	return t.Semantics.Directionality == Bidirectional
}

// AppliesTo reports whether the relationship may be used on elements of
// the given layer. Layers are matched on their short numeric prefix, so
// both "07-data-model" and "07" resolve to the same layer. An empty
// ApplicableLayers set applies everywhere.
func (t *RelationshipType) AppliesTo(layer string) bool {
	if len(t.ApplicableLayers) == 0 {
		return true
	}
	prefix := LayerPrefix(layer)
	for _, l := range t.ApplicableLayers {
		if l == prefix || l == layer {
			return true
		}
	}
	return false
}

// LayerPrefix extracts the short numeric form of a layer identifier,
// e.g. "07-data-model" → "07". Identifiers without a dash are returned
// unchanged.
func LayerPrefix(layer string) string {
	if i := strings.Index(layer, "-"); i > 0 {
		return layer[:i]
	}
	return layer
}
