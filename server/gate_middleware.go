package server

import (
	"net/http"
	"net/url"
	"strings"
)

// Headers set on the forwarded request so downstream handlers can read tenant
// context without recomputing it
const (
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	HeaderTenantSlug      = "X-Tenant-Slug"
)

// GateMiddleware is the per-request routing gate. It resolves the tenant,
// classifies the path, and checks for the presence of the access token cookie,
// then allows the request, redirects to login, or redirects into the app.
// The cookie value is never verified here; the backend validates tokens on
// every API call it receives.
func (s *Server) GateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if gateExcluded(path) {
			next(w, r)
			return
		}

		slug := s.tenants.FromRequest(r)
		hasAccess := s.sessionCookies(r).Read(r) != ""

		if !isPublicPath(path) && !hasAccess {
			gateDecisions.WithLabelValues("login_redirect").Inc()
			http.Redirect(w, r, loginRedirectURL(slug, r.URL), http.StatusSeeOther)
			return
		}

		if path == RouteLogin && hasAccess {
			gateDecisions.WithLabelValues("app_redirect").Inc()
			http.Redirect(w, r, appRedirectURL(r.URL.Query().Get("next")), http.StatusSeeOther)
			return
		}

		gateDecisions.WithLabelValues("allow").Inc()
		// Scrub inbound values so downstream handlers only ever see the
		// gate's own resolution
		r.Header.Del(HeaderTenantSubdomain)
		r.Header.Del(HeaderTenantSlug)
		if slug != "" {
			r.Header.Set(HeaderTenantSubdomain, slug)
			r.Header.Set(HeaderTenantSlug, slug)
		}
		next(w, r)
	}
}

// isPublicPath reports whether path is reachable without a session: an exact
// allow-list match or a descendant of an allow-listed prefix.
func isPublicPath(path string) bool {
	for _, public := range publicPaths {
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

// gateExcluded filters requests that never reach the gate: API routes,
// operational endpoints, and static files (any path whose last segment
// contains a file extension).
func gateExcluded(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}
	if path == RouteHealthz || path == RouteMetrics {
		return true
	}
	return strings.Contains(path[strings.LastIndex(path, "/")+1:], ".")
}

// loginRedirectURL builds the login redirect, preserving the original
// destination in "next" and attaching the tenant when one was resolved.
// Tenant resolution failure never blocks the redirect.
func loginRedirectURL(slug string, original *url.URL) string {
	next := original.Path
	if original.RawQuery != "" {
		next += "?" + original.RawQuery
	}

	query := url.Values{}
	if slug != "" {
		query.Set("tenant", slug)
	}
	query.Set("next", next)

	return RouteLogin + "?" + query.Encode()
}

// appRedirectURL picks the post-login destination. Only same-origin
// ("/"-prefixed) next values are honoured; anything else falls back to the
// default landing path. Protocol-relative forms ("//host", "/\host") are
// rejected too, since browsers resolve those off-origin. An embedded query
// string is split off and reapplied.
func appRedirectURL(next string) string {
	if !strings.HasPrefix(next, "/") {
		return DefaultLandingPath
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return DefaultLandingPath
	}

	path, query, _ := strings.Cut(next, "?")
	if query == "" {
		return path
	}
	return path + "?" + query
}
