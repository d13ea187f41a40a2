// Package links discovers link instances across an in-memory model
// snapshot and answers graph queries over them.
//
// The Analyzer scans every element record in a snapshot against the link
// type catalog, building a directed multigraph of element-to-element edges
// keyed by link type. Traversal (shortest path, all paths, connected
// elements) and diagnostics (broken links, orphans, statistics) all run
// over the indices built during a single AnalyzeModel pass.
//
// Analysis is a point-in-time rebuild: AnalyzeModel replaces all prior
// state, and callers must not run it concurrently with reads.
package links

import (
	"sort"

	"github.com/archlens/archlens/internal/registry"
)

// Snapshot is a raw model: layer section → collection name → element
// records. Every record is expected to carry an "id" field; records
// without one are skipped.
type Snapshot map[string]map[string][]map[string]any

// Analyzer builds and queries the link graph of a model snapshot.
type Analyzer struct {
	registry *registry.Catalog

	links        []*Instance
	bySource     map[string][]*Instance
	byTarget     map[string][]*Instance
	elementTypes map[string]string
}

// NewAnalyzer creates an analyzer over the given link type catalog.
// The graph is empty until AnalyzeModel is called.
func NewAnalyzer(catalog *registry.Catalog) *Analyzer {
	a := &Analyzer{registry: catalog}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.links = nil
	a.bySource = make(map[string][]*Instance)
	a.byTarget = make(map[string][]*Instance)
	a.elementTypes = make(map[string]string)
}

// AnalyzeModel scans a model snapshot and rebuilds the link graph.
// Previous analysis state is discarded entirely.
func (a *Analyzer) AnalyzeModel(model Snapshot) {
	a.reset()

	// First pass: register every element so broken-link and type checks
	// can see targets that live in layers scanned later.
	for _, collections := range model {
		for collection, elements := range collections {
			for _, record := range elements {
				id, ok := record["id"].(string)
				if !ok || id == "" {
					continue
				}
				a.elementTypes[id] = elementType(record, collection)
			}
		}
	}

	// Second pass: discover link instances on each element.
	for layer, collections := range model {
		types := a.registry.BySourceLayer(layer)
		if len(types) == 0 {
			continue
		}
		for _, elements := range collections {
			for _, record := range elements {
				id, ok := record["id"].(string)
				if !ok || id == "" {
					continue
				}
				for _, lt := range types {
					a.scanElement(id, layer, record, lt)
				}
			}
		}
	}
}

// scanElement resolves each declared field path of one link type against
// one element record, recording an instance for every value found. Empty
// arrays and wrong-shape values are recorded too; the validator decides
// what to make of them.
func (a *Analyzer) scanElement(id, layer string, record map[string]any, lt *registry.LinkType) {
	for _, fieldPath := range lt.FieldPaths {
		value, ok := resolveFieldPath(record, fieldPath)
		if !ok || value == nil {
			continue
		}

		ids, wasList := targetIDs(value)
		inst := &Instance{
			SourceID:    id,
			TargetIDs:   ids,
			Type:        lt,
			SourceLayer: layer,
			FieldPath:   fieldPath,
			WasList:     wasList,
		}
		a.index(inst)
	}
}

func (a *Analyzer) index(inst *Instance) {
	a.links = append(a.links, inst)
	a.bySource[inst.SourceID] = append(a.bySource[inst.SourceID], inst)
	for _, t := range inst.TargetIDs {
		a.byTarget[t] = append(a.byTarget[t], inst)
	}
}

// elementType derives an element's type: an explicit "type" field wins,
// otherwise the collection name stands in for it.
func elementType(record map[string]any, collection string) string {
	if t, ok := record["type"].(string); ok && t != "" {
		return t
	}
	return collection
}

// Links returns every discovered link instance in discovery order.
func (a *Analyzer) Links() []*Instance {
	return a.links
}

// ElementType returns the recorded type of an element, or "" if the id
// was never seen during analysis.
func (a *Analyzer) ElementType(id string) string {
	return a.elementTypes[id]
}

// HasElement reports whether an element id was seen during analysis.
func (a *Analyzer) HasElement(id string) bool {
	_, ok := a.elementTypes[id]
	return ok
}

// ElementCount returns the number of distinct elements seen.
func (a *Analyzer) ElementCount() int {
	return len(a.elementTypes)
}

// ElementIDs returns every element id seen during analysis, sorted.
func (a *Analyzer) ElementIDs() []string {
	ids := make([]string, 0, len(a.elementTypes))
	for id := range a.elementTypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LinksFrom returns the outgoing links of an element, optionally filtered
// by link type id (empty = all). Unknown ids yield an empty result.
func (a *Analyzer) LinksFrom(id, typeID string) []*Instance {
	return filterByType(a.bySource[id], typeID)
}

// LinksTo returns the incoming links of an element, optionally filtered
// by link type id (empty = all).
func (a *Analyzer) LinksTo(id, typeID string) []*Instance {
	return filterByType(a.byTarget[id], typeID)
}

// LinksByType returns every instance discovered by the given link type.
func (a *Analyzer) LinksByType(typeID string) []*Instance {
	var out []*Instance
	for _, inst := range a.links {
		if inst.Type.ID == typeID {
			out = append(out, inst)
		}
	}
	return out
}

func filterByType(in []*Instance, typeID string) []*Instance {
	if typeID == "" {
		return in
	}
	var out []*Instance
	for _, inst := range in {
		if inst.Type.ID == typeID {
			out = append(out, inst)
		}
	}
	return out
}

// Direction selects which edges ConnectedElements follows.
type Direction string

const (
	// Down follows outgoing links to their targets.
	Down Direction = "down"
	// Up follows incoming links back to their sources.
	Up Direction = "up"
	// Both is the union of Up and Down.
	Both Direction = "both"
)

// ConnectedElements returns the ids directly connected to an element in
// the given direction, sorted for stable output.
func (a *Analyzer) ConnectedElements(id string, dir Direction) []string {
	seen := make(map[string]bool)
	if dir == Down || dir == Both {
		for _, inst := range a.bySource[id] {
			for _, t := range inst.TargetIDs {
				seen[t] = true
			}
		}
	}
	if dir == Up || dir == Both {
		for _, inst := range a.byTarget[id] {
			seen[inst.SourceID] = true
		}
	}

	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// BrokenLink pairs a link instance with the subset of its target ids that
// do not correspond to any known element.
type BrokenLink struct {
	Link           *Instance `json:"link"`
	MissingTargets []string  `json:"missing_targets"`
}

// BrokenLinks returns every instance with at least one dangling target.
func (a *Analyzer) BrokenLinks() []BrokenLink {
	var out []BrokenLink
	for _, inst := range a.links {
		var missing []string
		for _, t := range inst.TargetIDs {
			if !a.HasElement(t) {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			out = append(out, BrokenLink{Link: inst, MissingTargets: missing})
		}
	}
	return out
}

// OrphanedElements returns the ids of elements with neither incoming nor
// outgoing links, sorted.
func (a *Analyzer) OrphanedElements() []string {
	var out []string
	for id := range a.elementTypes {
		if len(a.bySource[id]) == 0 && len(a.byTarget[id]) == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
