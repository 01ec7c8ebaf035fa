// Package server wires the HTTP router: broker API, Telegram webhook, and
// health endpoints, behind request-ID and panic-recovery middleware.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	approvalhandler "approval-relay/internal/approval/handler"
	healthhandler "approval-relay/internal/health/handler"
)

// Deps holds the handlers the router serves.
type Deps struct {
	// API is the broker's HTTP surface (notify, result, webhook).
	API *approvalhandler.API
	// Health serves healthz/readyz. If nil, the endpoints are not registered.
	Health *healthhandler.Handler
}

// NewRouter builds the service router.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Recover)

	r.HandleFunc("/api/notify", deps.API.Notify).Methods(http.MethodPost)
	r.HandleFunc("/api/result/{token}", deps.API.Result).Methods(http.MethodGet)
	r.HandleFunc("/telegram/webhook", deps.API.Webhook).Methods(http.MethodPost)

	if deps.Health != nil {
		r.HandleFunc("/healthz", deps.Health.Healthz).Methods(http.MethodGet)
		r.HandleFunc("/readyz", deps.Health.Readyz).Methods(http.MethodGet)
	}
	return r
}
