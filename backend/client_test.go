package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harpersystem/harper-gateway/backend"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("camelCase token response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)
			require.Equal(t, "acme", r.Header.Get(backend.TenantHeader))

			var creds backend.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			require.Equal(t, "broker@acme.com", creds.Email)

			_, _ = w.Write([]byte(`{"accessToken":"tok1","refreshToken":"ref1"}`))
		}))
		defer srv.Close()

		tokens, err := backend.New(srv.URL).Login(ctx, "acme", backend.Credentials{Email: "broker@acme.com", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, "tok1", tokens.AccessToken)
		require.Equal(t, "ref1", tokens.RefreshToken)
	})

	t.Run("snake_case token response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"tok1","refresh_token":"ref1"}`))
		}))
		defer srv.Close()

		tokens, err := backend.New(srv.URL).Login(ctx, "", backend.Credentials{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, "tok1", tokens.AccessToken)
		require.Equal(t, "ref1", tokens.RefreshToken)
	})

	t.Run("tenant header omitted when unresolved", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header[http.CanonicalHeaderKey(backend.TenantHeader)]
			require.False(t, present)
			_, _ = w.Write([]byte(`{"accessToken":"tok1"}`))
		}))
		defer srv.Close()

		_, err := backend.New(srv.URL).Login(ctx, "", backend.Credentials{Email: "a@b.c", Password: "pw"})
		require.NoError(t, err)
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
		}))
		defer srv.Close()

		_, err := backend.New(srv.URL).Login(ctx, "acme", backend.Credentials{Email: "a@b.c", Password: "pw"})

		var upstream *backend.UpstreamError
		require.ErrorAs(t, err, &upstream)
		require.Equal(t, http.StatusUnauthorized, upstream.Status)
		require.Contains(t, upstream.Body, "bad credentials")
	})

	t.Run("missing access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"refreshToken":"ref1"}`))
		}))
		defer srv.Close()

		_, err := backend.New(srv.URL).Login(ctx, "acme", backend.Credentials{Email: "a@b.c", Password: "pw"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no access token")
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := backend.New(srv.URL).Login(ctx, "acme", backend.Credentials{Email: "a@b.c", Password: "pw"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := backend.New("").Login(ctx, "acme", backend.Credentials{Email: "a@b.c", Password: "pw"})
		require.ErrorIs(t, err, backend.ErrNotConfigured)
	})
}

func TestClient_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("sends bearer token and tenant header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/logout", r.URL.Path)
			require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
			require.Equal(t, "acme", r.Header.Get(backend.TenantHeader))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, backend.New(srv.URL).Logout(ctx, "acme", "tok1"))
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := backend.New(srv.URL).Logout(ctx, "acme", "tok1")

		var upstream *backend.UpstreamError
		require.ErrorAs(t, err, &upstream)
		require.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	})

	t.Run("not configured", func(t *testing.T) {
		require.ErrorIs(t, backend.New("").Logout(ctx, "acme", "tok1"), backend.ErrNotConfigured)
	})
}
