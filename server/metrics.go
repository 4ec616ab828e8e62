package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gateDecisions counts routing gate outcomes by decision
	// (allow, login_redirect, app_redirect).
	gateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harper_gate_decisions_total",
			Help: "Routing gate decisions",
		},
		[]string{"decision"},
	)

	// loginAttempts counts login action outcomes (success, failure).
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harper_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)
