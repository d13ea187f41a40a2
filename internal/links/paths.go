package links

import (
	"fmt"
	"strings"
)

// DefaultMaxHops bounds traversal when the caller does not supply a
// limit. Keeping the ceiling small guarantees termination on cyclic
// graphs and keeps all-paths search tractable.
const DefaultMaxHops = 5

// Hop is one traversal step: one edge of a path, labelled with the link
// type that produced it.
type Hop struct {
	SourceID  string `json:"source_id"`
	TargetID  string `json:"target_id"`
	TypeID    string `json:"type_id"`
	Predicate string `json:"predicate"`
}

// Path is a route through the link graph from SourceID to TargetID.
// A path from an element to itself has no hops.
type Path struct {
	SourceID string
	TargetID string
	Hops     []Hop
}

// TotalDistance is the number of hops on the path.
func (p *Path) TotalDistance() int {
	return len(p.Hops)
}

// Description renders the path as a human-readable chain, e.g.
//
//	service-1 -[supports-goals]-> goal-1
//
// A zero-hop path renders a sentinel instead of an empty chain.
func (p *Path) Description() string {
	if len(p.Hops) == 0 {
		return fmt.Sprintf("%s (no hops)", p.SourceID)
	}
	var b strings.Builder
	b.WriteString(p.Hops[0].SourceID)
	for _, hop := range p.Hops {
		fmt.Fprintf(&b, " -[%s]-> %s", hop.Predicate, hop.TargetID)
	}
	return b.String()
}

// FindPath runs a breadth-first search for the shortest path from source
// to target over outgoing links. maxHops is a hard ceiling on path
// length; passing a value <= 0 applies DefaultMaxHops. The search prunes
// at the ceiling rather than post-filtering, so cyclic graphs terminate.
// Returns nil when no path exists within the limit.
func (a *Analyzer) FindPath(source, target string, maxHops int) *Path {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if source == target {
		return &Path{SourceID: source, TargetID: target}
	}

	type node struct {
		id   string
		hops []Hop
	}

	visited := map[string]bool{source: true}
	queue := []node{{id: source}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.hops) >= maxHops {
			continue
		}

		for _, inst := range a.bySource[current.id] {
			for _, next := range inst.TargetIDs {
				if visited[next] {
					continue
				}
				hops := append(append([]Hop(nil), current.hops...), Hop{
					SourceID:  current.id,
					TargetID:  next,
					TypeID:    inst.Type.ID,
					Predicate: inst.Type.EffectivePredicate(),
				})
				if next == target {
					return &Path{SourceID: source, TargetID: target, Hops: hops}
				}
				visited[next] = true
				queue = append(queue, node{id: next, hops: hops})
			}
		}
	}

	return nil
}

// FindAllPaths enumerates every simple path from source to target up to
// maxLength hops (DefaultMaxHops when <= 0). Cycle avoidance is per path:
// an element may appear on many returned paths but never twice on one.
// All-paths search is exponential in the worst case, which is why the
// length ceiling is mandatory.
func (a *Analyzer) FindAllPaths(source, target string, maxLength int) []*Path {
	if maxLength <= 0 {
		maxLength = DefaultMaxHops
	}
	if source == target {
		return []*Path{{SourceID: source, TargetID: target}}
	}

	var paths []*Path
	onPath := map[string]bool{source: true}
	var hops []Hop

	var walk func(current string)
	walk = func(current string) {
		if len(hops) >= maxLength {
			return
		}
		for _, inst := range a.bySource[current] {
			for _, next := range inst.TargetIDs {
				if onPath[next] {
					continue
				}
				hops = append(hops, Hop{
					SourceID:  current,
					TargetID:  next,
					TypeID:    inst.Type.ID,
					Predicate: inst.Type.EffectivePredicate(),
				})
				if next == target {
					paths = append(paths, &Path{
						SourceID: source,
						TargetID: target,
						Hops:     append([]Hop(nil), hops...),
					})
				} else {
					onPath[next] = true
					walk(next)
					delete(onPath, next)
				}
				hops = hops[:len(hops)-1]
			}
		}
	}

	walk(source)
	return paths
}
