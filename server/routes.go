package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Pages (the gate wraps the whole mux, so these render only when allowed)
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteClients, ChainMiddleware(s.AppPageHandler("Clientes"), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteClientDetail, ChainMiddleware(s.ClientDetailHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteReconciliation, ChainMiddleware(s.AppPageHandler("Conciliação de Faturas"), s.HTMLMiddleWare()...))

	// Public pages
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.HTMLMiddleWare()...))

	// Auth actions
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginActionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutActionHandler(), s.HTMLMiddleWare()...))

	// Session API
	s.RegisterRouteHandler("POST "+RouteAPISession, ChainMiddleware(s.EstablishSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPISession, ChainMiddleware(s.TerminateSessionHandler(), s.APIMiddleware()...))

	// UI state API
	s.RegisterRouteHandler("GET "+RouteAPIState, ChainMiddleware(s.GetStateHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPIState, ChainMiddleware(s.PutStateHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPIState, ChainMiddleware(s.DeleteStateHandler(), s.APIMiddleware()...))

	// Operational routes
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// Static assets (bypass the gate via the file-extension exclusion)
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logFileError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logFileError(method, path, errorMsg string) {
	var displayMethod string
	paddedMethod := " " + method
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%s] %s %s\n", displayMethod, path, Red+errorMsg+ResetColor)
}
