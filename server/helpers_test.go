package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harpersystem/harper-gateway/internal/config"
	"github.com/harpersystem/harper-gateway/server"
	"github.com/harpersystem/harper-gateway/session"
)

// newTestServer builds a gateway from the current environment. Tests adjust
// behaviour through t.Setenv before calling this.
func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	t.Setenv("ENV", "TEST")
	return server.New(config.New())
}

type testRequest struct {
	method string
	target string
	host   string
	token  string
	body   string
	header map[string]string
}

func doRequest(t *testing.T, s *server.Server, tr testRequest) *http.Response {
	t.Helper()

	var body io.Reader
	if tr.body != "" {
		body = strings.NewReader(tr.body)
	}

	r := httptest.NewRequest(tr.method, tr.target, body)
	if tr.host != "" {
		r.Host = tr.host
	}
	if tr.token != "" {
		r.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: tr.token})
	}
	for key, value := range tr.header {
		r.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	return rec.Result()
}

func responseCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(body)
}
