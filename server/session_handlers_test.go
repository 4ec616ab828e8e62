package server_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/harpersystem/harper-gateway/session"
	"github.com/stretchr/testify/require"
)

func TestEstablishSession(t *testing.T) {
	s := newTestServer(t)

	t.Run("json body sets both cookies verbatim", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `{"accessToken":"abc","refreshToken":"xyz"}`,
			header: map[string]string{"Content-Type": "application/json"},
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		require.JSONEq(t, `{"ok":true}`, readBody(t, resp))

		access := responseCookie(t, resp, session.AccessTokenCookie)
		require.NotNil(t, access)
		require.Equal(t, "abc", access.Value)
		require.True(t, access.HttpOnly)

		refresh := responseCookie(t, resp, session.RefreshTokenCookie)
		require.NotNil(t, refresh)
		require.Equal(t, "xyz", refresh.Value)
	})

	t.Run("plain text body containing json is accepted", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `{"accessToken":"abc"}`,
			header: map[string]string{"Content-Type": "text/plain"},
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, responseCookie(t, resp, session.AccessTokenCookie))
	})

	t.Run("tokens are trimmed before storage", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `{"accessToken":" abc ","refreshToken":" xyz "}`,
			header: map[string]string{"Content-Type": "application/json"},
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "abc", responseCookie(t, resp, session.AccessTokenCookie).Value)
		require.Equal(t, "xyz", responseCookie(t, resp, session.RefreshTokenCookie).Value)
	})

	t.Run("whitespace-only access token is rejected", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `{"accessToken":"  "}`,
			header: map[string]string{"Content-Type": "application/json"},
		})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, readBody(t, resp), `"ok":false`)
		require.Nil(t, responseCookie(t, resp, session.AccessTokenCookie))
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `{"accessToken":"` + strings.Repeat("a", 65*1024) + `"}`,
			header: map[string]string{"Content-Type": "application/json"},
		})

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.Nil(t, responseCookie(t, resp, session.AccessTokenCookie))
	})

	t.Run("malformed body is a server error", func(t *testing.T) {
		resp := doRequest(t, s, testRequest{
			method: "POST",
			target: "/api/session",
			body:   `not json at all`,
			header: map[string]string{"Content-Type": "application/json"},
		})

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.Contains(t, readBody(t, resp), `"ok":false`)
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	})
}

func TestTerminateSession(t *testing.T) {
	s := newTestServer(t)

	terminate := func() *http.Response {
		return doRequest(t, s, testRequest{method: "DELETE", target: "/api/session", token: "tok"})
	}

	t.Run("clears both cookies", func(t *testing.T) {
		resp := terminate()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		require.JSONEq(t, `{"ok":true}`, readBody(t, resp))

		access := responseCookie(t, resp, session.AccessTokenCookie)
		require.NotNil(t, access)
		require.Empty(t, access.Value)
		require.Negative(t, access.MaxAge)

		refresh := responseCookie(t, resp, session.RefreshTokenCookie)
		require.NotNil(t, refresh)
		require.Negative(t, refresh.MaxAge)
	})

	t.Run("idempotent across repeated calls", func(t *testing.T) {
		first := terminate()
		second := terminate()

		require.Equal(t, http.StatusOK, first.StatusCode)
		require.Equal(t, http.StatusOK, second.StatusCode)
		require.Negative(t, responseCookie(t, second, session.AccessTokenCookie).MaxAge)
	})
}
