package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/links"
)

var (
	pathAll     bool
	pathMaxHops int
	pathJSONOut bool
)

var pathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Find paths between two elements in the link graph",
	Long: `Find the shortest directed path between two elements, following
links discovered by the analyzer. With --all, enumerate every acyclic
path up to the hop limit instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

var connectedCmd = &cobra.Command{
	Use:   "connected <element-id>",
	Short: "List elements directly connected to an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnected,
}

var connectedDirection string

func init() {
	pathCmd.Flags().BoolVar(&pathAll, "all", false, "enumerate all acyclic paths instead of the shortest")
	pathCmd.Flags().IntVar(&pathMaxHops, "max-hops", 0, "hop limit (default from config)")
	pathCmd.Flags().BoolVar(&pathJSONOut, "json", false, "emit JSON instead of text")

	connectedCmd.Flags().StringVar(&connectedDirection, "direction", "both", "traversal direction: down, up, or both")
	pathCmd.AddCommand(connectedCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	from, to := args[0], args[1]

	catalog, _, err := loadCatalogs()
	if err != nil {
		return err
	}
	_, analyzer, err := loadAnalyzedModel(catalog)
	if err != nil {
		return err
	}

	if !analyzer.HasElement(from) {
		return fmt.Errorf("unknown element: %s", from)
	}
	if !analyzer.HasElement(to) {
		return fmt.Errorf("unknown element: %s", to)
	}

	maxHops := pathMaxHops
	if maxHops <= 0 {
		maxHops = cfg.Validation.MaxHops
	}

	if pathAll {
		paths := analyzer.FindAllPaths(from, to, maxHops)
		if pathJSONOut {
			return printJSON(paths)
		}
		if len(paths) == 0 {
			fmt.Printf("No path from %s to %s within %d hops\n", from, to, maxHops)
			return nil
		}
		fmt.Printf("Found %d paths from %s to %s:\n", len(paths), from, to)
		for _, p := range paths {
			fmt.Printf("  [%d hops] %s\n", p.TotalDistance(), p.Description())
		}
		return nil
	}

	path := analyzer.FindPath(from, to, maxHops)
	if pathJSONOut {
		return printJSON(path)
	}
	if path == nil {
		fmt.Printf("No path from %s to %s within %d hops\n", from, to, maxHops)
		return nil
	}
	fmt.Printf("[%d hops] %s\n", path.TotalDistance(), path.Description())
	return nil
}

func runConnected(cmd *cobra.Command, args []string) error {
	id := args[0]

	var dir links.Direction
	switch connectedDirection {
	case "down":
		dir = links.Down
	case "up":
		dir = links.Up
	case "both":
		dir = links.Both
	default:
		return fmt.Errorf("invalid direction: %s (want down, up, or both)", connectedDirection)
	}

	catalog, _, err := loadCatalogs()
	if err != nil {
		return err
	}
	_, analyzer, err := loadAnalyzedModel(catalog)
	if err != nil {
		return err
	}

	if !analyzer.HasElement(id) {
		return fmt.Errorf("unknown element: %s", id)
	}

	connected := analyzer.ConnectedElements(id, dir)
	if len(connected) == 0 {
		fmt.Printf("%s has no %s connections\n", id, connectedDirection)
		return nil
	}
	fmt.Printf("%s (%s, %d connections):\n", id, connectedDirection, len(connected))
	for _, c := range connected {
		fmt.Printf("  %s (%s)\n", c, analyzer.ElementType(c))
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
