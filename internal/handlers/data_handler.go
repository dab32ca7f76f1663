package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
)

// DataHandler serves the read-only views over the persisted store
type DataHandler struct {
	store  interfaces.Store
	logger arbor.ILogger
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(store interfaces.Store, logger arbor.ILogger) *DataHandler {
	return &DataHandler{
		store:  store,
		logger: logger,
	}
}

// GetResultsHandler handles GET /results. It returns the last lookup
// payload without triggering a fetch.
func (h *DataHandler) GetResultsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	results, err := h.store.ReadResults(r.Context())
	if err != nil && !errors.Is(err, interfaces.ErrSlotEmpty) {
		h.logger.Error().Err(err).Msg("Failed to read results slot")
		WriteError(w, http.StatusInternalServerError, "Failed to read results")
		return
	}
	if results.IsEmpty() {
		WriteMessage(w, http.StatusNotFound, "No results found yet")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(results),
		"data":  results,
	})
}

// GetParsedHandler handles GET /parsed. It returns the last ingestion
// snapshot without triggering a fetch.
func (h *DataHandler) GetParsedHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	snapshot, err := h.store.ReadSnapshot(r.Context())
	if err != nil && !errors.Is(err, interfaces.ErrSlotEmpty) {
		h.logger.Error().Err(err).Msg("Failed to read parsed-data slot")
		WriteError(w, http.StatusInternalServerError, "Failed to read parsed data")
		return
	}
	if snapshot == nil || len(snapshot.Documents) == 0 {
		WriteMessage(w, http.StatusNotFound, "No parsed data found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":       len(snapshot.Documents),
		"parsed_data": snapshot,
	})
}
