package validation

import (
	"fmt"

	"github.com/archlens/archlens/internal/model"
	"github.com/archlens/archlens/internal/registry"
)

// ModelSource supplies on-demand element lookups for relationship checks.
// *model.Store satisfies it; tests may substitute a fixture.
type ModelSource interface {
	GetElement(id string) *model.Element
}

// PredicateValidator checks intra-layer relationship declarations against
// the relationship predicate catalog. Unlike LinkValidator it is not
// graph-based: it inspects one element's declared relationships at a
// time, plus reverse lookups for inverse-consistency checks.
type PredicateValidator struct {
	catalog *registry.PredicateCatalog
	strict  bool
}

// NewPredicateValidator creates a validator over the relationship
// catalog. Strict mode promotes inverse-consistency warnings to errors.
func NewPredicateValidator(catalog *registry.PredicateCatalog, strict bool) *PredicateValidator {
	return &PredicateValidator{catalog: catalog, strict: strict}
}

// ValidatePredicateExists checks that a predicate is declared in the catalog.
func (v *PredicateValidator) ValidatePredicateExists(predicate string) *Result {
	result := &Result{}
	if v.catalog.Get(predicate) == nil {
		result.AddError(Entry{
			Message:       fmt.Sprintf("Unknown predicate '%s'", predicate),
			FixSuggestion: "check the relationship registry for the list of declared predicates",
		})
	}
	return result
}

// ValidatePredicateForLayer checks that a predicate may be used on
// elements of the given layer. Both the long layer form ("07-data-model")
// and the short numeric form ("07") are accepted.
func (v *PredicateValidator) ValidatePredicateForLayer(predicate, layer, elementID string) *Result {
	result := v.ValidatePredicateExists(predicate)
	if !result.IsValid() {
		return result
	}

	rt := v.catalog.Get(predicate)
	if !rt.AppliesTo(layer) {
		result.AddError(Entry{
			Message:       fmt.Sprintf("Predicate '%s' is not valid for layer '%s'", predicate, layer),
			Layer:         layer,
			ElementID:     elementID,
			FixSuggestion: fmt.Sprintf("applicable layers: %v", rt.ApplicableLayers),
		})
	}
	return result
}

// ValidateInverseConsistency checks that a bidirectional relationship
// from source to target has the matching inverse entry declared on the
// target element. Unidirectional predicates always pass. A missing
// inverse is a warning, or an error in strict mode.
func (v *PredicateValidator) ValidateInverseConsistency(sourceID, targetID, predicate string, src ModelSource) *Result {
	result := &Result{}

	rt := v.catalog.Get(predicate)
	if rt == nil || !rt.IsBidirectional() {
		return result
	}

	target := src.GetElement(targetID)
	if target == nil {
		// Target existence is the link validator's concern.
		return result
	}

	for _, rel := range target.Relationships() {
		if rel.TargetID == sourceID && rel.Predicate == rt.InversePredicate {
			return result
		}
	}

	entry := Entry{
		Message: fmt.Sprintf("Element '%s' is missing the inverse relationship '%s' back to '%s'",
			targetID, rt.InversePredicate, sourceID),
		ElementID:     targetID,
		FixSuggestion: fmt.Sprintf("add {targetId: %s, predicate: %s} to '%s'", sourceID, rt.InversePredicate, targetID),
	}
	if v.strict {
		result.AddError(entry)
	} else {
		result.AddWarning(entry)
	}
	return result
}

// ValidateCardinality enforces the relationship class cardinality on one
// element: one-to-one predicates may appear at most once per element,
// one-to-many and many-to-many are unbounded.
func (v *PredicateValidator) ValidateCardinality(sourceID, predicate string, src ModelSource) *Result {
	result := &Result{}

	rt := v.catalog.Get(predicate)
	if rt == nil || rt.Semantics.Cardinality != registry.OneToOne {
		return result
	}

	element := src.GetElement(sourceID)
	if element == nil {
		return result
	}

	count := 0
	for _, rel := range element.Relationships() {
		if rel.Predicate == predicate {
			count++
		}
	}
	if count > 1 {
		result.AddError(Entry{
			Message: fmt.Sprintf("Cardinality violation on '%s': predicate '%s' is one-to-one but appears %d times",
				sourceID, predicate, count),
			ElementID: sourceID,
		})
	}
	return result
}

// ValidateRelationship composes the predicate-existence and
// layer-validity checks for a single relationship declaration. Inverse
// and cardinality checks are separate opt-in calls.
func (v *PredicateValidator) ValidateRelationship(sourceID, targetID, predicate, sourceLayer string) *Result {
	result := v.ValidatePredicateExists(predicate)
	if !result.IsValid() {
		return result
	}
	result.Merge(v.ValidatePredicateForLayer(predicate, sourceLayer, sourceID))
	return result
}

// RelationshipInfo is a flattened view of a relationship type for
// tooling and UI use.
type RelationshipInfo struct {
	Predicate        string                       `json:"predicate"`
	InversePredicate string                       `json:"inverse_predicate,omitempty"`
	Category         string                       `json:"category,omitempty"`
	IsBidirectional  bool                         `json:"is_bidirectional"`
	Cardinality      registry.RelationCardinality `json:"cardinality"`
}

// GetRelationshipInfo returns the flattened view of a predicate, or nil
// when the predicate isn't known.
func (v *PredicateValidator) GetRelationshipInfo(predicate string) *RelationshipInfo {
	rt := v.catalog.Get(predicate)
	if rt == nil {
		return nil
	}
	return &RelationshipInfo{
		Predicate:        rt.Predicate,
		InversePredicate: rt.InversePredicate,
		Category:         rt.Category,
		IsBidirectional:  rt.IsBidirectional(),
		Cardinality:      rt.Semantics.Cardinality,
	}
}

// ListPredicatesForLayer returns the predicates applicable to a layer.
func (v *PredicateValidator) ListPredicatesForLayer(layer string) []string {
	return v.catalog.ForLayer(layer)
}
