package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/harpersystem/harper-gateway/backend"
	"github.com/harpersystem/harper-gateway/internal/config"
	"github.com/harpersystem/harper-gateway/session"
	"github.com/harpersystem/harper-gateway/state"
	"github.com/harpersystem/harper-gateway/tenant"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "production")
	mux     *http.ServeMux
	routes  []string
	gate    http.HandlerFunc
	config  config.Config
	tenants tenant.Resolver
	backend *backend.Client
	state   state.Store
}

func New(config config.Config) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		tenants: tenant.Resolver{
			AppDomain:     config.GetAppDomain(),
			DefaultTenant: config.GetDefaultTenant(),
		},
		backend: backend.New(config.GetBackendBaseURL()),
		state:   newStateStore(config),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	// The gate wraps the whole mux so it runs once per request, before routing
	s.gate = s.GateMiddleware(s.mux.ServeHTTP)

	return s
}

func newStateStore(config config.Config) state.Store {
	if addr := config.GetRedisAddr(); addr != "" {
		return state.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
	}
	return state.NewMemoryStore()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.gate(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// sessionCookies returns the cookie store for r. Cookies are marked Secure
// whenever the request arrived over HTTPS.
func (s *Server) sessionCookies(r *http.Request) session.CookieStore {
	return session.CookieStore{Secure: getScheme(r) == "https"}
}
