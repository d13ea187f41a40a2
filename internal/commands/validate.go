package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/model"
	"github.com/archlens/archlens/internal/registry"
	"github.com/archlens/archlens/internal/validation"
)

var (
	validateStrict bool
	validateJSON   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate model links and relationships",
	Long: `Validate every discovered link against the link type registry and
every intra-layer relationship against the relationship predicate registry.

Link checks cover target existence, target element types, cardinality,
empty reference arrays, and identifier formats. Relationship checks cover
unknown predicates, layer applicability, inverse consistency for
bidirectional predicates, and one-to-one cardinality.

Exits non-zero when any error-severity issue is found.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "escalate warnings to errors")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit a JSON report instead of text")
}

// validateReport is the JSON shape of a full validation run.
type validateReport struct {
	Summary       *validation.Summary `json:"summary"`
	LinkIssues    []validation.Issue  `json:"link_issues"`
	Relationships *validation.Result  `json:"relationships"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	catalog, predicates, err := loadCatalogs()
	if err != nil {
		return err
	}
	store, analyzer, err := loadAnalyzedModel(catalog)
	if err != nil {
		return err
	}

	strict := validateStrict || cfg.Validation.Strict

	linkValidator := validation.NewLinkValidator(catalog, analyzer, strict)
	issues := linkValidator.ValidateAll()

	relResult := validateRelationships(store, predicates, strict)

	if validateJSON {
		report := validateReport{
			Summary:       linkValidator.Summarize(),
			LinkIssues:    issues,
			Relationships: relResult,
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(out))
	} else {
		printValidateReport(store, linkValidator, relResult)
	}

	if linkValidator.HasErrors() || !relResult.IsValid() {
		os.Exit(1)
	}
	return nil
}

// validateRelationships runs the predicate checks over every element's
// declared relationships.
func validateRelationships(store *model.Store, predicates *registry.PredicateCatalog, strict bool) *validation.Result {
	validator := validation.NewPredicateValidator(predicates, strict)
	result := &validation.Result{}

	predicateCounts := make(map[string]map[string]bool)
	for _, elem := range store.Elements() {
		for _, rel := range elem.Relationships() {
			result.Merge(validator.ValidateRelationship(elem.ID, rel.TargetID, rel.Predicate, elem.Layer))
			result.Merge(validator.ValidateInverseConsistency(elem.ID, rel.TargetID, rel.Predicate, store))

			if predicateCounts[elem.ID] == nil {
				predicateCounts[elem.ID] = make(map[string]bool)
			}
			if !predicateCounts[elem.ID][rel.Predicate] {
				predicateCounts[elem.ID][rel.Predicate] = true
				result.Merge(validator.ValidateCardinality(elem.ID, rel.Predicate, store))
			}
		}
	}
	return result
}

func printValidateReport(store *model.Store, lv *validation.LinkValidator, rel *validation.Result) {
	summary := lv.Summarize()

	fmt.Printf("Validated %d elements across %d layers\n\n", store.ElementCount(), len(store.Layers()))

	if summary.TotalIssues == 0 && rel.IsValid() && len(rel.Warnings) == 0 {
		fmt.Println("✓ No issues found")
		return
	}

	if summary.TotalIssues > 0 {
		fmt.Printf("Link issues (%d errors, %d warnings):\n", summary.Errors, summary.Warnings)
		lv.PrintIssues("")
		fmt.Println()
	}

	if len(rel.Errors) > 0 || len(rel.Warnings) > 0 {
		fmt.Printf("Relationship issues (%d errors, %d warnings):\n", len(rel.Errors), len(rel.Warnings))
		for _, e := range rel.Errors {
			fmt.Printf("✗ [%s] %s: %s\n", e.Layer, e.ElementID, e.Message)
			if e.FixSuggestion != "" {
				fmt.Printf("    %s\n", e.FixSuggestion)
			}
		}
		for _, w := range rel.Warnings {
			fmt.Printf("⚠ [%s] %s: %s\n", w.Layer, w.ElementID, w.Message)
			if w.FixSuggestion != "" {
				fmt.Printf("    %s\n", w.FixSuggestion)
			}
		}
	}
}
