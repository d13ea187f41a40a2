// Package validation checks the discovered link graph and per-element
// relationship declarations against their catalogs.
//
// There are two validators. LinkValidator walks every cross-layer link
// instance the analyzer found and reports missing targets, type
// mismatches, cardinality violations, empty arrays, and format
// violations. PredicateValidator is the intra-layer counterpart: it
// inspects one element's declared relationships at a time against the
// relationship predicate catalog.
//
// Findings are always returned as data (Issue or Result values), never
// raised as errors, so callers choose whether to fail a build or merely
// warn. A strict mode promotes most warning-class findings to errors;
// empty-array warnings are the deliberate exception, since an empty array
// is a valid "no relationships yet" state.
package validation

import (
	"fmt"

	"github.com/archlens/archlens/internal/links"
	"github.com/archlens/archlens/internal/registry"
)

// LinkValidator checks every link instance in an analyzed model.
type LinkValidator struct {
	registry *registry.Catalog
	analyzer *links.Analyzer
	strict   bool

	issues []Issue
}

// NewLinkValidator creates a validator over a catalog and an analyzer
// that has already run AnalyzeModel. With strict enabled, warning-class
// issues (except empty arrays) are reported as errors.
func NewLinkValidator(catalog *registry.Catalog, analyzer *links.Analyzer, strict bool) *LinkValidator {
	return &LinkValidator{registry: catalog, analyzer: analyzer, strict: strict}
}

// escalate returns error severity in strict mode, warning otherwise.
func (v *LinkValidator) escalate() Severity {
	if v.strict {
		return SeverityError
	}
	return SeverityWarning
}

// ValidateAll runs every check against every link instance and returns
// the collected issues. The result replaces any issues from a prior run.
func (v *LinkValidator) ValidateAll() []Issue {
	v.issues = nil
	for _, inst := range v.analyzer.Links() {
		v.checkMissingTargets(inst)
		v.checkTargetTypes(inst)
		v.checkCardinality(inst)
		v.checkEmptyArray(inst)
		v.checkFormat(inst)
	}
	return v.issues
}

// checkMissingTargets flags every target id that does not resolve to a
// known element. The severity follows the link type's targetExists rule
// (default true → error), escalated by strict mode.
func (v *LinkValidator) checkMissingTargets(inst *links.Instance) {
	severity := SeverityWarning
	if inst.Type.ValidationRules.RequireTargetExists() || v.strict {
		severity = SeverityError
	}

	for _, target := range inst.TargetIDs {
		if target == "" || v.analyzer.HasElement(target) {
			continue
		}
		v.issues = append(v.issues, Issue{
			Severity:   severity,
			Type:       IssueMissingTarget,
			Link:       inst,
			SourceID:   inst.SourceID,
			Message:    fmt.Sprintf("link %q on %q: target %q does not exist", inst.Type.ID, inst.SourceID, target),
			Suggestion: suggestSimilar(target, v.suggestionCandidates(inst.Type)),
		})
	}
}

// suggestionCandidates collects known element ids restricted to the
// expected target types of the link, falling back to all elements when
// the type declares no restriction.
func (v *LinkValidator) suggestionCandidates(lt *registry.LinkType) []string {
	var candidates []string
	for _, id := range v.analyzer.ElementIDs() {
		if lt.AllowsTargetType(v.analyzer.ElementType(id)) {
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// checkTargetTypes flags resolved targets whose actual element type is
// outside the link type's declared target set.
func (v *LinkValidator) checkTargetTypes(inst *links.Instance) {
	expectType := inst.Type.ValidationRules.TargetType
	if len(inst.Type.TargetElementTypes) == 0 && expectType == "" {
		return
	}
	for _, target := range inst.TargetIDs {
		actual := v.analyzer.ElementType(target)
		if actual == "" {
			// Missing targets are reported separately.
			continue
		}
		badType := !inst.Type.AllowsTargetType(actual)
		if expectType != "" && actual != expectType {
			badType = true
		}
		if badType {
			v.issues = append(v.issues, Issue{
				Severity: v.escalate(),
				Type:     IssueTypeMismatch,
				Link:     inst,
				SourceID: inst.SourceID,
				Message: fmt.Sprintf("link %q on %q: target %q has type %q, expected one of %v",
					inst.Type.ID, inst.SourceID, target, actual, inst.Type.TargetElementTypes),
			})
		}
	}
}

// checkCardinality flags single-cardinality fields populated with lists
// or multiple ids. Cardinality violations are structural, so they are
// errors regardless of strict mode.
func (v *LinkValidator) checkCardinality(inst *links.Instance) {
	if inst.Type.Cardinality != registry.CardinalitySingle {
		return
	}
	if len(inst.TargetIDs) > 1 || inst.WasList {
		v.issues = append(v.issues, Issue{
			Severity: SeverityError,
			Type:     IssueCardinalityMismatch,
			Link:     inst,
			SourceID: inst.SourceID,
			Message: fmt.Sprintf("link %q on %q: field %q declares single cardinality but holds %d values",
				inst.Type.ID, inst.SourceID, inst.FieldPath, len(inst.TargetIDs)),
		})
	}
}

// checkEmptyArray flags array fields present but empty. This stays a
// warning even in strict mode: an empty array is valid, just worth noting.
func (v *LinkValidator) checkEmptyArray(inst *links.Instance) {
	if !inst.IsEmptyArray() {
		return
	}
	v.issues = append(v.issues, Issue{
		Severity: SeverityWarning,
		Type:     IssueEmptyArray,
		Link:     inst,
		SourceID: inst.SourceID,
		Message:  fmt.Sprintf("link %q on %q: field %q is an empty array", inst.Type.ID, inst.SourceID, inst.FieldPath),
	})
}

// checkFormat flags target ids that fail the link type's value format
// (an explicit pattern, or the implied UUID shape for format "uuid").
func (v *LinkValidator) checkFormat(inst *links.Instance) {
	if inst.ValidFormat() {
		return
	}
	v.issues = append(v.issues, Issue{
		Severity: v.escalate(),
		Type:     IssueFormatMismatch,
		Link:     inst,
		SourceID: inst.SourceID,
		Message: fmt.Sprintf("link %q on %q: target ids do not match the %q format",
			inst.Type.ID, inst.SourceID, inst.Type.Format),
	})
}

// Issues returns the findings of the last ValidateAll run.
func (v *LinkValidator) Issues() []Issue {
	return v.issues
}

// HasErrors reports whether any stored issue is an error.
func (v *LinkValidator) HasErrors() bool {
	for _, issue := range v.issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// IssuesBySeverity filters stored issues by severity.
func (v *LinkValidator) IssuesBySeverity(severity Severity) []Issue {
	var out []Issue
	for _, issue := range v.issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// IssuesByType filters stored issues by issue type.
func (v *LinkValidator) IssuesByType(issueType IssueType) []Issue {
	var out []Issue
	for _, issue := range v.issues {
		if issue.Type == issueType {
			out = append(out, issue)
		}
	}
	return out
}

// IssuesForElement returns the issues whose source element matches id.
func (v *LinkValidator) IssuesForElement(id string) []Issue {
	var out []Issue
	for _, issue := range v.issues {
		if issue.SourceID == id {
			out = append(out, issue)
		}
	}
	return out
}

// Summary aggregates the stored issues.
type Summary struct {
	TotalIssues  int               `json:"total_issues"`
	Errors       int               `json:"errors"`
	Warnings     int               `json:"warnings"`
	StrictMode   bool              `json:"strict_mode"`
	IssuesByType map[IssueType]int `json:"issues_by_type"`
}

// Summarize computes a summary of the last validation run.
func (v *LinkValidator) Summarize() *Summary {
	s := &Summary{
		TotalIssues:  len(v.issues),
		StrictMode:   v.strict,
		IssuesByType: make(map[IssueType]int),
	}
	for _, issue := range v.issues {
		s.IssuesByType[issue.Type]++
		switch issue.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		}
	}
	return s
}

// PrintIssues writes a console report of the stored issues, optionally
// filtered by severity (empty = all). Presentation only; the validation
// contract is the returned issue list.
func (v *LinkValidator) PrintIssues(severity Severity) {
	for _, issue := range v.issues {
		if severity != "" && issue.Severity != severity {
			continue
		}
		marker := "⚠"
		if issue.Severity == SeverityError {
			marker = "✗"
		}
		fmt.Printf("%s [%s] %s\n", marker, issue.Type, issue.Message)
		if issue.Suggestion != "" {
			fmt.Printf("    %s\n", issue.Suggestion)
		}
	}
}
