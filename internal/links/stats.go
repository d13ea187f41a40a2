package links

import "fmt"

// Statistics aggregates counts over the analyzed link graph.
type Statistics struct {
	TotalLinks           int            `json:"total_links"`
	TotalElements        int            `json:"total_elements"`
	ElementsWithOutgoing int            `json:"elements_with_outgoing_links"`
	ElementsWithIncoming int            `json:"elements_with_incoming_links"`
	LinksByType          map[string]int `json:"links_by_type"`
	LinksByCategory      map[string]int `json:"links_by_category"`
}

// Stats computes statistics over the current graph.
func (a *Analyzer) Stats() *Statistics {
	stats := &Statistics{
		TotalLinks:      len(a.links),
		TotalElements:   len(a.elementTypes),
		LinksByType:     make(map[string]int),
		LinksByCategory: make(map[string]int),
	}

	for id := range a.elementTypes {
		if len(a.bySource[id]) > 0 {
			stats.ElementsWithOutgoing++
		}
		if len(a.byTarget[id]) > 0 {
			stats.ElementsWithIncoming++
		}
	}

	for _, inst := range a.links {
		stats.LinksByType[inst.Type.ID]++
		stats.LinksByCategory[inst.Type.Category]++
	}

	return stats
}

// String returns a formatted summary of the statistics.
func (s *Statistics) String() string {
	return fmt.Sprintf(
		"Link graph:\n"+
			"  Total Links: %d\n"+
			"  Total Elements: %d\n"+
			"  Elements with Outgoing Links: %d\n"+
			"  Elements with Incoming Links: %d\n"+
			"  Link Types in Use: %d\n",
		s.TotalLinks,
		s.TotalElements,
		s.ElementsWithOutgoing,
		s.ElementsWithIncoming,
		len(s.LinksByType),
	)
}
