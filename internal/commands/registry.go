package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/registry"
)

var registryJSONOut bool

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the loaded registries",
}

var registryLinksCmd = &cobra.Command{
	Use:   "link-types",
	Short: "List registered link types",
	RunE:  runRegistryLinks,
}

var registryPredicatesCmd = &cobra.Command{
	Use:   "predicates",
	Short: "List registered relationship predicates",
	RunE:  runRegistryPredicates,
}

func init() {
	registryCmd.PersistentFlags().BoolVar(&registryJSONOut, "json", false, "emit JSON instead of text")
	registryCmd.AddCommand(registryLinksCmd)
	registryCmd.AddCommand(registryPredicatesCmd)
}

func runRegistryLinks(cmd *cobra.Command, args []string) error {
	catalog, _, err := loadCatalogs()
	if err != nil {
		return err
	}

	linkTypes := catalog.All()
	if registryJSONOut {
		return printJSON(linkTypes)
	}

	fmt.Printf("Link types: %d\n\n", len(linkTypes))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTARGET\tCARDINALITY\tPREDICATE")
	for _, lt := range linkTypes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			lt.ID, strings.Join(lt.SourceLayers, ","), lt.TargetLayer, lt.Cardinality, lt.EffectivePredicate())
	}
	return w.Flush()
}

func runRegistryPredicates(cmd *cobra.Command, args []string) error {
	_, predicates, err := loadCatalogs()
	if err != nil {
		return err
	}

	names := predicates.All()
	sort.Strings(names)

	all := make([]*registry.RelationshipType, 0, len(names))
	for _, name := range names {
		all = append(all, predicates.Get(name))
	}
	if registryJSONOut {
		return printJSON(all)
	}

	fmt.Printf("Relationship predicates: %d\n\n", len(all))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PREDICATE\tDIRECTIONALITY\tCARDINALITY\tINVERSE")
	for _, rt := range all {
		inverse := rt.InversePredicate
		if inverse == "" {
			inverse = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rt.Predicate, rt.Semantics.Directionality, rt.Semantics.Cardinality, inverse)
	}
	return w.Flush()
}
