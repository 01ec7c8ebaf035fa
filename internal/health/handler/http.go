// Package handler provides liveness and readiness endpoints.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// Pinger verifies a dependency is reachable (e.g. the Telegram API).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves /healthz and /readyz.
type Handler struct {
	pinger Pinger
}

// New returns a health handler. pinger, if non-nil, is checked on /readyz;
// a failing ping reports 503.
func New(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Healthz reports process liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

// Readyz reports readiness to take traffic.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	writeStatus(w, http.StatusOK, "ok")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
