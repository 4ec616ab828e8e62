// Package session manages the browser cookies that carry the backend-issued
// tokens between requests.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenCookie holds the access token issued by the backend.
	AccessTokenCookie = "hs_at"
	// RefreshTokenCookie holds the optional refresh token.
	RefreshTokenCookie = "hs_rt"

	defaultAccessMaxAge  = int(time.Hour / time.Second)
	defaultRefreshMaxAge = int(30 * 24 * time.Hour / time.Second)
)

// ErrEmptyAccessToken is returned by Set when no access token is supplied.
var ErrEmptyAccessToken = errors.New("access token is required")

// CookieStore writes, clears, and reads the session cookies. Cookies are
// HttpOnly, SameSite Lax, path-scoped to the whole application, and host-only
// (no Domain attribute). Secure should be false only in local development,
// where the gateway serves plain HTTP.
type CookieStore struct {
	Secure bool
}

// Set writes the access token cookie and, when refreshToken is non-empty, the
// refresh token cookie. Token values are stored verbatim.
func (c CookieStore) Set(w http.ResponseWriter, accessToken, refreshToken string) error {
	if accessToken == "" {
		return ErrEmptyAccessToken
	}

	http.SetCookie(w, c.cookie(AccessTokenCookie, accessToken, maxAge(accessToken, defaultAccessMaxAge)))
	if refreshToken != "" {
		http.SetCookie(w, c.cookie(RefreshTokenCookie, refreshToken, maxAge(refreshToken, defaultRefreshMaxAge)))
	}
	return nil
}

// Clear expires both cookies. Safe to call repeatedly.
func (c CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, "", -1))
}

// Read returns the access token carried by r, or "" when absent.
func (c CookieStore) Read(r *http.Request) string {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// maxAge derives the cookie lifetime from the token's exp claim when the token
// happens to be a JWT. The token is otherwise opaque and never verified here.
func maxAge(token string, fallback int) int {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	remaining := int(time.Until(exp.Time) / time.Second)
	if remaining <= 0 {
		return fallback
	}
	return remaining
}
