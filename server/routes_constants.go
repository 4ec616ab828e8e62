package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Page routes (protected by the gate)
	RouteIndex          = "/"
	RouteClients        = "/clients"
	RouteClientDetail   = "/clients/{id}"
	RouteReconciliation = "/reconciliation"

	// Public page routes
	RouteLogin          = "/login"
	RouteForgotPassword = "/forgot-password"

	// Auth action routes (public so that unauthenticated form posts reach them)
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// API routes (excluded from the gate by pattern)
	RouteAPISession = "/api/session"
	RouteAPIState   = "/api/state/{key}"

	// Operational routes
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"

	// Static asset routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)

// DefaultLandingPath is where authenticated users land when no explicit
// destination is supplied.
const DefaultLandingPath = RouteClients

// publicPaths is the allow-list of paths reachable without a session. A path
// is public when it equals an entry or is a "/"-descendant of one.
var publicPaths = []string{RouteLogin, RouteForgotPassword, "/auth"}
