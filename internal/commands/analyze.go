package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	analyzeFormat string
	analyzeBroken bool
	analyzeOrphan bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the model and report link graph statistics",
	Long: `Scan the model directory against the link type registry and report
the discovered link graph.

Examples:
  archlens analyze
  archlens analyze --broken
  archlens analyze --orphans --format json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format (table, json)")
	analyzeCmd.Flags().BoolVar(&analyzeBroken, "broken", false, "list broken links")
	analyzeCmd.Flags().BoolVar(&analyzeOrphan, "orphans", false, "list orphaned elements")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	catalog, _, err := loadCatalogs()
	if err != nil {
		return err
	}

	_, analyzer, err := loadAnalyzedModel(catalog)
	if err != nil {
		return err
	}

	stats := analyzer.Stats()

	if analyzeFormat == "json" {
		out := map[string]interface{}{"statistics": stats}
		if analyzeBroken {
			out["broken_links"] = analyzer.BrokenLinks()
		}
		if analyzeOrphan {
			out["orphaned_elements"] = analyzer.OrphanedElements()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(stats.String())

	if len(stats.LinksByType) > 0 {
		fmt.Println("\nLinks by type:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		typeIDs := make([]string, 0, len(stats.LinksByType))
		for id := range stats.LinksByType {
			typeIDs = append(typeIDs, id)
		}
		sort.Strings(typeIDs)
		for _, id := range typeIDs {
			fmt.Fprintf(w, "  %s\t%d\n", id, stats.LinksByType[id])
		}
		w.Flush()
	}

	if analyzeBroken {
		broken := analyzer.BrokenLinks()
		fmt.Printf("\nBroken links: %d\n", len(broken))
		for _, b := range broken {
			fmt.Printf("  ✗ %s -[%s]-> %v\n", b.Link.SourceID, b.Link.Type.EffectivePredicate(), b.MissingTargets)
		}
	}

	if analyzeOrphan {
		orphans := analyzer.OrphanedElements()
		fmt.Printf("\nOrphaned elements: %d\n", len(orphans))
		for _, id := range orphans {
			fmt.Printf("  - %s\n", id)
		}
	}

	return nil
}
