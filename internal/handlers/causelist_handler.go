package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
)

// CauseListHandler handles cause-list fetch requests
type CauseListHandler struct {
	orchestrator interfaces.Orchestrator
	store        interfaces.Store
	logger       arbor.ILogger
}

// NewCauseListHandler creates a new CauseListHandler
func NewCauseListHandler(orchestrator interfaces.Orchestrator, store interfaces.Store, logger arbor.ILogger) *CauseListHandler {
	return &CauseListHandler{
		orchestrator: orchestrator,
		store:        store,
		logger:       logger,
	}
}

// GetCauseListHandler handles GET /causelist. It triggers one
// fetch+ingest cycle and returns a capped preview of the resulting
// snapshot: the first records flattened across documents, plus the full
// record count.
func (h *CauseListHandler) GetCauseListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = common.DefaultState
	}
	day := r.URL.Query().Get("day")
	if day == "" {
		day = common.DefaultDay
	}
	if day != "today" && day != "tomorrow" {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid day %q (expected 'today' or 'tomorrow')", day))
		return
	}

	outcome := h.orchestrator.RefreshCauseList(r.Context(), state, day)
	if !outcome.Succeeded {
		h.logger.Warn().
			Str("state", state).
			Str("day", day).
			Str("diagnostic", outcome.Diagnostic).
			Msg("Cause-list request failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch cause list: "+outcome.Diagnostic)
		return
	}

	snapshot, err := h.store.ReadSnapshot(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrSlotEmpty) {
			snapshot = &models.IngestionSnapshot{}
		} else {
			h.logger.Error().Err(err).Msg("Failed to read snapshot")
			WriteError(w, http.StatusInternalServerError, "Failed to read parsed data")
			return
		}
	}

	sample := snapshot.FlattenRecords(common.SampleSize)
	if sample == nil {
		sample = []models.Record{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       fmt.Sprintf("Cause list fetched and parsed for %s (%s)", state, day),
		"total_records": snapshot.RecordCount(),
		"sample":        sample,
	})
}
