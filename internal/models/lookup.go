package models

// LookupResult is the open-ended structured payload produced by a
// single-case (CNR) fetch. The field set depends on what the registry
// page exposes; an empty map means the fetch succeeded but produced no
// structured data.
type LookupResult map[string]any

// IsEmpty reports whether the lookup produced no structured data.
func (r LookupResult) IsEmpty() bool {
	return len(r) == 0
}

// PipelineOutcome is the transient result of one fetch+ingest cycle.
// It is returned to the caller and never persisted.
type PipelineOutcome struct {
	Succeeded  bool   `json:"succeeded"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// FailedOutcome builds a failure outcome carrying diagnostic text.
func FailedOutcome(diagnostic string) PipelineOutcome {
	return PipelineOutcome{Succeeded: false, Diagnostic: diagnostic}
}

// SuccessOutcome builds a success outcome.
func SuccessOutcome() PipelineOutcome {
	return PipelineOutcome{Succeeded: true}
}
