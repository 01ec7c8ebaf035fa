// Package handler exposes the broker over HTTP: the caller-facing notify and
// result endpoints plus the inbound Telegram webhook.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"approval-relay/internal/approval/service"
	"approval-relay/internal/gateway/telegram"
)

// webhookSecretHeader is set by Telegram when the webhook was registered with
// a secret_token.
const webhookSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// API holds the HTTP handlers around the broker.
type API struct {
	broker        *service.Broker
	webhookSecret string
}

// NewAPI returns the HTTP API for the given broker. webhookSecret is
// optional; when set, webhook calls must carry it.
func NewAPI(broker *service.Broker, webhookSecret string) *API {
	return &API{broker: broker, webhookSecret: webhookSecret}
}

type notifyRequest struct {
	Subject string `json:"subject"`
	Kind    string `json:"kind"`
	Note    string `json:"note"`
}

// Notify issues an approval request and returns the correlation token.
func (a *API) Notify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	token, err := a.broker.Issue(r.Context(), req.Subject, req.Kind, req.Note)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	case errors.Is(err, service.ErrMissingSubject), errors.Is(err, service.ErrUnknownKind):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		// Dispatch or internal failure; the caller gets a generic detail.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "approval request could not be delivered"})
	}
}

// Result polls the decision for a token. The body is one of
// {"status":"pending"}, {"status":"expired"}, or {"status":"<outcome>"}.
func (a *API) Result(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	status, err := a.broker.Poll(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// Webhook receives Telegram updates. The transport is acknowledged with 200
// immediately; verification and side effects run as a detached unit of work
// whose failures are only logged.
func (a *API) Webhook(w http.ResponseWriter, r *http.Request) {
	if a.webhookSecret != "" && r.Header.Get(webhookSecretHeader) != a.webhookSecret {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	cb, ok, err := telegram.ParseUpdate(r.Body)
	if err != nil {
		log.Printf("webhook: bad update body: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusOK)
	if !ok {
		return
	}
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("webhook: callback handling panicked: %v", rec)
			}
		}()
		// The request context dies with the 200 above; the detached work gets
		// its own.
		a.broker.HandleCallback(context.Background(), cb)
	}()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("http: write response: %v", err)
	}
}
