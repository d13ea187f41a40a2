package validation

import "github.com/archlens/archlens/internal/links"

// Severity classifies how serious a validation issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueType identifies the kind of defect a validation issue reports.
type IssueType string

const (
	// Cross-layer link issues.
	IssueMissingTarget       IssueType = "missing_target"
	IssueTypeMismatch        IssueType = "type_mismatch"
	IssueCardinalityMismatch IssueType = "cardinality_mismatch"
	IssueEmptyArray          IssueType = "empty_array"
	IssueFormatMismatch      IssueType = "format_mismatch"

	// Intra-layer relationship issues.
	IssueUnknownPredicate     IssueType = "unknown_predicate"
	IssueLayerMismatch        IssueType = "layer_mismatch"
	IssueMissingInverse       IssueType = "missing_inverse"
	IssueCardinalityViolation IssueType = "cardinality_violation"
)

// Issue is one validation finding. Issues are immutable once created and
// collected into a flat list per validation run.
type Issue struct {
	Severity Severity  `json:"severity"`
	Type     IssueType `json:"type"`

	// Link is the offending link instance for cross-layer issues;
	// nil for intra-layer issues, which carry SourceID and Predicate.
	Link *links.Instance `json:"-"`

	SourceID  string `json:"source_id"`
	Predicate string `json:"predicate,omitempty"`
	Message   string `json:"message"`

	// Suggestion is an optional fuzzy-match hint, e.g. a "Did you mean"
	// pointer at a close element id.
	Suggestion string `json:"suggestion,omitempty"`
}
