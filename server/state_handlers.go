package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/harpersystem/harper-gateway/state"
)

// stateKey namespaces UI state by tenant so tenants never read each other's
// entries. Requests without a resolvable tenant share the "default" namespace.
func (s *Server) stateKey(r *http.Request) string {
	slug := s.tenants.FromRequest(r)
	if slug == "" {
		slug = "default"
	}
	return slug + ":" + r.PathValue("key")
}

// GetStateHandler returns a stored UI state value (GET /api/state/{key})
func (s *Server) GetStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := s.state.Get(r.Context(), s.stateKey(r))
		if errors.Is(err, state.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, apiResponse{OK: false, Error: "not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{OK: true, Value: value})
	}
}

// PutStateHandler stores the raw request body as a UI state value
// (PUT /api/state/{key})
func (s *Server) PutStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64*1024))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: err.Error()})
			return
		}

		if err := s.state.Set(r.Context(), s.stateKey(r), string(body)); err != nil {
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	}
}

// DeleteStateHandler removes a UI state value (DELETE /api/state/{key})
func (s *Server) DeleteStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.state.Remove(r.Context(), s.stateKey(r)); err != nil {
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	}
}
