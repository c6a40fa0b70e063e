// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// PlayersHandler handles roster and lookup requests.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleListPlayers handles GET /players?competition=NAME requests.
// The competition filter is required; the full roster lives under the
// analysis endpoints in aggregated form.
func (h *PlayersHandler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	competition := r.URL.Query().Get("competition")
	if competition == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCompetition)
		return
	}
	roster, err := h.deps.FilterByCompetition(r.Context(), competition)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// HandleGetPlayer handles GET /players/{name} requests. Names may
// contain spaces; the mux hands them to us already unescaped.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/players/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	record, err := h.deps.Lookup(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
