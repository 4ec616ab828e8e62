package server

import (
	"fmt"
	"net/http"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Tenant  string
	Error   string
	Email   string // Preserve email on error
	Next    string
}

// AppPageData contains data for rendering the app shell
type AppPageData struct {
	AppName string
	Title   string
	Tenant  string
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Tenant:  s.tenants.FromRequest(r),
			Error:   query.Get("error"),
			Email:   query.Get("email"),
			Next:    query.Get("next"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// ForgotPasswordHandler displays the password recovery page
// (GET /forgot-password)
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Tenant:  s.tenants.FromRequest(r),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

// IndexHandler sends the app root to the default landing page (GET /)
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DefaultLandingPath, http.StatusSeeOther)
	}
}

// AppPageHandler renders the app shell for a section. The tenant comes from
// the headers the gate set on the forwarded request.
func (s *Server) AppPageHandler(title string) http.HandlerFunc {
	tmpl, err := ParseTemplate("app.html")
	if err != nil {
		panic("Failed to parse app template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := AppPageData{
			AppName: s.config.GetAppName(),
			Title:   title,
			Tenant:  r.Header.Get(HeaderTenantSlug),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

// ClientDetailHandler renders the app shell for a single client
// (GET /clients/{id})
func (s *Server) ClientDetailHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("app.html")
	if err != nil {
		panic("Failed to parse app template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := AppPageData{
			AppName: s.config.GetAppName(),
			Title:   fmt.Sprintf("Cliente %s", r.PathValue("id")),
			Tenant:  r.Header.Get(HeaderTenantSlug),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

// HealthzHandler is the liveness endpoint (GET /healthz)
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
