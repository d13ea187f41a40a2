// Package model provides the file-backed architecture model the analyzer
// and validators consume.
//
// A model is a directory of YAML layer files. Each file is one layer
// section, keyed by its base name ("02-business-layer.yaml" becomes the
// "02-business-layer" section), and contains collections of element
// records:
//
//	businessServices:
//	  - id: service-1
//	    name: Order Service
//	    motivation:
//	      supports-goals: [goal-1, goal-2]
//	relationships are plain lists of {targetId, predicate} entries.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/archlens/archlens/internal/links"
)

// Relationship is one declared intra-layer relationship on an element.
type Relationship struct {
	TargetID  string `yaml:"targetId" json:"targetId"`
	Predicate string `yaml:"predicate" json:"predicate"`
}

// Element is one model element: its id plus the raw property tree the
// link field paths are resolved against.
type Element struct {
	ID    string
	Layer string
	Data  map[string]any
}

// Relationships extracts the element's declared relationship list.
// Elements without one return nil.
func (e *Element) Relationships() []Relationship {
	raw, ok := e.Data["relationships"].([]any)
	if !ok {
		return nil
	}
	out := make([]Relationship, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		rel := Relationship{}
		if t, ok := m["targetId"].(string); ok {
			rel.TargetID = t
		}
		if p, ok := m["predicate"].(string); ok {
			rel.Predicate = p
		}
		if rel.TargetID != "" && rel.Predicate != "" {
			out = append(out, rel)
		}
	}
	return out
}

// Store is an in-memory model loaded from a layer directory. It serves
// both roles the validators need: a point-in-time snapshot for the link
// analyzer and on-demand element lookups for the predicate validator.
type Store struct {
	layers   map[string]map[string][]map[string]any
	elements map[string]*Element
	dir      string
}

// Load reads every *.yaml layer file in dir into a Store.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read model directory: %w", err)
	}

	s := &Store{
		layers:   make(map[string]map[string][]map[string]any),
		elements: make(map[string]*Element),
		dir:      dir,
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		layer := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if err := s.loadLayer(layer, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) loadLayer(layer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read layer file %s: %w", path, err)
	}

	var collections map[string][]map[string]any
	if err := yaml.Unmarshal(data, &collections); err != nil {
		return fmt.Errorf("failed to parse layer file %s: %w", path, err)
	}

	s.layers[layer] = collections
	for _, records := range collections {
		for _, record := range records {
			id, ok := record["id"].(string)
			if !ok || id == "" {
				continue
			}
			s.elements[id] = &Element{ID: id, Layer: layer, Data: record}
		}
	}
	return nil
}

// Dir returns the directory the store was loaded from.
func (s *Store) Dir() string {
	return s.dir
}

// Snapshot returns the raw nested model for link analysis.
func (s *Store) Snapshot() links.Snapshot {
	return s.layers
}

// GetElement returns the element with the given id, or nil if unknown.
// Absence is a normal outcome for exploratory lookups, not an error.
func (s *Store) GetElement(id string) *Element {
	return s.elements[id]
}

// Layers returns the loaded layer section names, sorted.
func (s *Store) Layers() []string {
	out := make([]string, 0, len(s.layers))
	for layer := range s.layers {
		out = append(out, layer)
	}
	sort.Strings(out)
	return out
}

// ElementCount returns the number of loaded elements.
func (s *Store) ElementCount() int {
	return len(s.elements)
}

// Elements returns all loaded elements sorted by id.
func (s *Store) Elements() []*Element {
	out := make([]*Element, 0, len(s.elements))
	for _, e := range s.elements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
