// Package server exposes the ledger over a small JSON HTTP API, the
// transport the mobile client talks to.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitpocket/splitpocket/internal/auth"
	"github.com/splitpocket/splitpocket/internal/ledger"
)

// Server wires the ledger store to HTTP handlers.
type Server struct {
	store *ledger.Store
	jwt   *auth.JWTManager
}

// Option configures a Server.
type Option func(*Server)

// WithAuth enables bearer-token validation on the /v1 API.
func WithAuth(manager *auth.JWTManager) Option {
	return func(s *Server) {
		s.jwt = manager
	}
}

// New creates a Server over the given ledger store.
func New(store *ledger.Store, opts ...Option) *Server {
	s := &Server{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full HTTP handler: routes plus logging, CORS, metrics,
// and (when configured) auth middleware.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /v1/groups", s.handleCreateGroup)
	api.HandleFunc("GET /v1/groups", s.handleListGroups)
	api.HandleFunc("GET /v1/groups/{id}", s.handleGetGroup)
	api.HandleFunc("DELETE /v1/groups/{id}", s.handleDeleteGroup)
	api.HandleFunc("POST /v1/groups/{id}/select", s.handleSelectGroup)
	api.HandleFunc("GET /v1/selected", s.handleGetSelected)
	api.HandleFunc("POST /v1/groups/{id}/expenses", s.handleAddExpense)
	api.HandleFunc("DELETE /v1/groups/{id}/expenses/{expenseID}", s.handleDeleteExpense)
	api.HandleFunc("POST /v1/groups/{id}/members", s.handleAddMember)
	api.HandleFunc("DELETE /v1/groups/{id}/members/{memberID}", s.handleRemoveMember)
	api.HandleFunc("POST /v1/groups/{id}/settle", s.handleSettleUp)
	api.HandleFunc("GET /v1/groups/{id}/balances", s.handleGetBalances)
	api.HandleFunc("GET /v1/groups/{id}/debts", s.handleGetDebts)

	var apiHandler http.Handler = api
	if s.jwt != nil {
		apiHandler = requireAuth(s.jwt, apiHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/", apiHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return loggingMiddleware(corsMiddleware(metricsMiddleware(mux)))
}
