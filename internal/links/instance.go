package links

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/archlens/archlens/internal/registry"
)

// Instance is a concrete occurrence of a link type found on one source
// element. It is created during analysis and never mutated afterwards;
// re-running the analyzer discards all previous instances.
type Instance struct {
	// SourceID is the id of the element the link was found on.
	SourceID string `json:"source_id"`

	// TargetIDs are the resolved target ids. Always a slice, even for
	// single-cardinality links; the declared cardinality lives on Type.
	TargetIDs []string `json:"target_ids"`

	// Type is the link type definition that discovered this instance.
	Type *registry.LinkType `json:"link_type"`

	// SourceLayer is the layer section the source element was found under.
	SourceLayer string `json:"source_layer"`

	// FieldPath is the declared path that actually matched.
	FieldPath string `json:"field_path"`

	// WasList records whether the raw value was a list, regardless of the
	// declared cardinality. Needed to flag single-cardinality fields that
	// were populated with arrays.
	WasList bool `json:"was_list"`
}

// IsEmptyArray reports whether an array-cardinality field was present but
// held no ids. Such instances are kept so the validator can flag them.
func (i *Instance) IsEmptyArray() bool {
	return i.Type.Cardinality == registry.CardinalityArray && i.WasList && len(i.TargetIDs) == 0
}

// ValidFormat re-checks every target id against the link type's declared
// value format. Types without a format constraint always pass.
func (i *Instance) ValidFormat() bool {
	for _, id := range i.TargetIDs {
		if !matchesFormat(i.Type, id) {
			return false
		}
	}
	return true
}

// matchesFormat checks one id against a link type's format hint. An
// explicit formatPattern rule wins over the named format; format "uuid"
// implies RFC 4122 parsing.
func matchesFormat(t *registry.LinkType, id string) bool {
	if p := t.ValidationRules.FormatPattern; p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			// An uncompilable pattern cannot reject anything.
			return true
		}
		return re.MatchString(id)
	}
	if t.Format == "uuid" {
		_, err := uuid.Parse(id)
		return err == nil
	}
	return true
}
