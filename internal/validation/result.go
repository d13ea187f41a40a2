package validation

// Entry is a single typed finding inside a Result.
type Entry struct {
	Message       string `json:"message"`
	Layer         string `json:"layer,omitempty"`
	ElementID     string `json:"element_id,omitempty"`
	FixSuggestion string `json:"fix_suggestion,omitempty"`
}

// Result accumulates errors and warnings from one validation call.
// Warnings never affect validity.
type Result struct {
	Errors   []Entry `json:"errors,omitempty"`
	Warnings []Entry `json:"warnings,omitempty"`
}

// IsValid reports whether the result carries no errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends an error entry.
func (r *Result) AddError(e Entry) {
	r.Errors = append(r.Errors, e)
}

// AddWarning appends a warning entry.
func (r *Result) AddWarning(e Entry) {
	r.Warnings = append(r.Warnings, e)
}

// Merge folds another result's entries into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
