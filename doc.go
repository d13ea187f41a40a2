// Package archlens is a link analysis toolkit for layered architecture
// models.
//
// # Overview
//
// Archlens loads a multi-layer architecture model from YAML layer files,
// discovers cross-layer links between elements using a declarative link
// type registry, and validates referential and semantic integrity.
//
// The toolkit consists of three main components:
//   - CLI: analyze, validate, and trace paths through the link graph
//   - API Server: REST endpoints over the analyzed graph, with WebSocket
//     push of live model updates to visualizers
//   - Registries: JSON catalogs of link types and relationship predicates
//
// # Architecture
//
//	┌─────────────────┐
//	│   Visualizer    │
//	│  (WebSocket)    │
//	└────────┬────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  API Server     │◄──────┤  File Watcher   │
//	│  (Echo REST)    │       │  (fsnotify)     │
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  Link Analyzer  │◄──────┤  Registries     │
//	│  (graph index)  │       │  (JSON)         │
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐
//	│  Model Store    │
//	│  (YAML layers)  │
//	└─────────────────┘
//
// # Core Features
//
// Link discovery:
//   - Declarative field paths, including nested dotted paths and x-
//     extension keys
//   - Directed multigraph indexed by source, target, and link type
//   - Broken link and orphaned element detection
//
// Graph traversal:
//   - Shortest path between any two elements (BFS, bounded hops)
//   - Exhaustive acyclic path enumeration
//   - Directional connectivity queries
//
// Validation:
//   - Target existence, element types, cardinality, and id formats
//   - Intra-layer relationship predicates with inverse-consistency and
//     one-to-one cardinality checks
//   - Strict mode escalation and fuzzy "did you mean" suggestions
//
// # Quick Start
//
//	archlens analyze --model-dir ./model
//	archlens validate --strict
//	archlens path service-1 goal-1
//	archlens server
package archlens
