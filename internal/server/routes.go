package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Index and fallthrough 404
	mux.HandleFunc("/", s.app.APIHandler.IndexHandler)

	// Cause list acquisition and lookup
	mux.HandleFunc("/causelist", s.app.CauseListHandler.GetCauseListHandler)
	mux.HandleFunc("/cnr/", s.app.CaseHandler.GetCaseHandler)

	// Persisted data
	mux.HandleFunc("/results", s.app.DataHandler.GetResultsHandler)
	mux.HandleFunc("/parsed", s.app.DataHandler.GetParsedHandler)

	// System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	return mux
}
