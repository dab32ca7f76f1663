// -----------------------------------------------------------------------
// Fetcher Interface - external acquisition of cause-list documents and
// single-case details from the court registry
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/causelist/internal/models"
)

// FetchStatus is the typed outcome of one fetch attempt.
type FetchStatus int

const (
	// FetchOK means the fetch completed and deposited its output.
	FetchOK FetchStatus = iota
	// FetchFailed means the fetch ran but reported a failure.
	FetchFailed
	// FetchTimeout means the fetch exceeded its deadline.
	FetchTimeout
)

// String returns the status name for logging.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchFailed:
		return "failed"
	case FetchTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// FetchOutcome pairs a status with captured diagnostic text.
type FetchOutcome struct {
	Status     FetchStatus
	Diagnostic string
}

// CauseListRequest identifies one cause-list fetch target.
type CauseListRequest struct {
	State string // jurisdiction, e.g. "Karnataka"
	Day   string // relative-day selector: "today" or "tomorrow"
}

// Fetcher abstracts the browser-automation step that acquires documents
// from the remote court registry. Implementations deposit cause-list PDFs
// into the intake location; single-case fetches return the structured
// payload directly. The orchestrator owns timeouts via ctx.
type Fetcher interface {
	// FetchCauseList downloads the cause-list documents for the request
	// into the intake location.
	FetchCauseList(ctx context.Context, req CauseListRequest) FetchOutcome

	// FetchCaseDetails retrieves the case-status page for a CNR and
	// extracts its fields. The result is nil unless Status is FetchOK.
	FetchCaseDetails(ctx context.Context, cnr string) (models.LookupResult, FetchOutcome)
}
