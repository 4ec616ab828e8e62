package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/harpersystem/harper-gateway/backend"
)

// LoginActionHandler processes the login form submission (POST /auth/login).
// It forwards the credentials and tenant context to the backend, persists the
// returned tokens as cookies, and sends the user to their destination.
func (s *Server) LoginActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.renderLoginError(w, r, "Email and password are required", email)
			return
		}

		slug := s.tenants.FromRequest(r)

		tokens, err := s.backend.Login(r.Context(), slug, backend.Credentials{Email: email, Password: password})
		if err != nil {
			loginAttempts.WithLabelValues("failure").Inc()
			if errors.Is(err, backend.ErrNotConfigured) {
				log.Error().Msg("Login attempted without BACKEND_BASE_URL configured")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Err(err).Str("tenant", slug).Msg("Login rejected by backend")
			s.renderLoginError(w, r, "Invalid email or password", email)
			return
		}

		if err := s.sessionCookies(r).Set(w, tokens.AccessToken, tokens.RefreshToken); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		loginAttempts.WithLabelValues("success").Inc()
		http.Redirect(w, r, appRedirectURL(r.FormValue("next")), http.StatusSeeOther)
	}
}

// LogoutActionHandler revokes the backend session on a best-effort basis and
// always clears the local cookies (POST /auth/logout). Backend unavailability
// must never block the local logout.
func (s *Server) LogoutActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := s.sessionCookies(r).Read(r)
		if accessToken != "" && s.backend.Configured() {
			_ = s.backend.Logout(r.Context(), s.tenants.FromRequest(r), accessToken)
		}

		s.sessionCookies(r).Clear(w)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// renderLoginError redirects back to the login page with an error message,
// preserving the typed email and the pending destination
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	if next := r.FormValue("next"); strings.HasPrefix(next, "/") {
		redirectURL += "&next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
