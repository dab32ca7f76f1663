package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
)

// CaseHandler handles single-case (CNR) lookup requests
type CaseHandler struct {
	orchestrator interfaces.Orchestrator
	logger       arbor.ILogger
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(orchestrator interfaces.Orchestrator, logger arbor.ILogger) *CaseHandler {
	return &CaseHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GetCaseHandler handles GET /cnr/{id}. It triggers a single-case fetch
// and returns the structured payload, or an explanatory marker when the
// registry published no structured data.
func (h *CaseHandler) GetCaseHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	cnr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/cnr/"), "/")
	if cnr == "" || strings.Contains(cnr, "/") {
		WriteError(w, http.StatusBadRequest, "CNR number is required")
		return
	}

	result, outcome := h.orchestrator.LookupCase(r.Context(), cnr)
	if !outcome.Succeeded {
		h.logger.Warn().
			Str("cnr", cnr).
			Str("diagnostic", outcome.Diagnostic).
			Msg("Case lookup request failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch case details: "+outcome.Diagnostic)
		return
	}

	var details interface{}
	if result.IsEmpty() {
		details = "No structured data found for this case"
	} else {
		details = result
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Case details fetched for CNR: %s", cnr),
		"details": details,
	})
}
