package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/harpersystem/harper-gateway/session"
)

// sessionRequest is the body of POST /api/session, sent by the browser after
// it has obtained tokens from the backend directly.
type sessionRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// EstablishSessionHandler persists backend tokens as session cookies
// (POST /api/session)
func (s *Server) EstablishSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeSessionRequest(w, r)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: err.Error()})
			return
		}

		accessToken := strings.TrimSpace(req.AccessToken)
		refreshToken := strings.TrimSpace(req.RefreshToken)

		if err := s.sessionCookies(r).Set(w, accessToken, refreshToken); err != nil {
			if errors.Is(err, session.ErrEmptyAccessToken) {
				writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	}
}

// TerminateSessionHandler clears the session cookies (DELETE /api/session).
// Always succeeds, including when no session exists.
func (s *Server) TerminateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessionCookies(r).Clear(w)
		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	}
}

// decodeSessionRequest resolves the two accepted body shapes (JSON, or plain
// text whose content is JSON) into one validated struct before any cookie
// work runs.
func decodeSessionRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64*1024))
	if err != nil {
		return sessionRequest{}, fmt.Errorf("failed to read request body: %w", err)
	}

	var req sessionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return sessionRequest{}, fmt.Errorf("invalid session payload: %w", err)
	}
	return req, nil
}
