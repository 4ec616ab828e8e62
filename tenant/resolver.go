// Package tenant derives the tenant slug for an incoming request.
package tenant

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	// QueryParam overrides any host-derived tenant.
	QueryParam = "tenant"
	// QueryParamShort is the abbreviated form of QueryParam.
	QueryParamShort = "t"

	// localSuffix marks local development hosts such as acme.localhost
	localSuffix = ".localhost"
)

// Resolver derives tenant slugs from request data. AppDomain is the public
// application domain whose subdomains carry tenant slugs (acme.<AppDomain>
// resolves to "acme"); DefaultTenant is the fallback when neither the query
// string nor the host yields one. The zero value resolves query parameters
// and .localhost subdomains only.
type Resolver struct {
	AppDomain     string
	DefaultTenant string
}

// FromRequest resolves the tenant slug for r, or "" when none can be derived.
// The result is always lowercase.
func (res Resolver) FromRequest(r *http.Request) string {
	return res.Resolve(r.URL.Query(), r.Header.Get("X-Forwarded-Host"), r.Host)
}

// Resolve applies the precedence query parameter > host subdomain > configured
// default. A forwarded host takes priority over the direct host.
func (res Resolver) Resolve(query url.Values, forwardedHost, host string) string {
	for _, param := range []string{QueryParam, QueryParamShort} {
		if slug := strings.TrimSpace(query.Get(param)); slug != "" {
			return strings.ToLower(slug)
		}
	}

	if slug := res.fromHost(forwardedHost, host); slug != "" {
		return slug
	}

	return strings.ToLower(strings.TrimSpace(res.DefaultTenant))
}

func (res Resolver) fromHost(forwardedHost, host string) string {
	h := forwardedHost
	if h == "" {
		h = host
	}
	h = strings.ToLower(strings.SplitN(h, ":", 2)[0]) // strip port

	if strings.HasSuffix(h, localSuffix) {
		return leftmostLabel(h)
	}

	domain := strings.ToLower(strings.TrimSpace(res.AppDomain))
	if domain != "" && strings.HasSuffix(h, "."+domain) {
		return leftmostLabel(h)
	}

	return ""
}

func leftmostLabel(host string) string {
	return strings.SplitN(host, ".", 2)[0]
}
