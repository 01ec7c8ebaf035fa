// Package service implements the decision protocol: issuing authenticated
// correlation tokens, verifying approver callbacks, and handing each decision
// to its caller exactly once.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"approval-relay/internal/approval/domain"
	"approval-relay/internal/approval/store"
	"approval-relay/internal/gateway"
	"approval-relay/internal/security"
	"approval-relay/internal/telemetry"
)

// Sentinel errors for the broker; the handler maps them to HTTP statuses.
var (
	ErrMissingSubject = errors.New("subject is required")
	ErrUnknownKind    = errors.New("unknown approval kind")
	ErrBadToken       = errors.New("malformed token")
	ErrNotifyFailed   = errors.New("approval request could not be delivered")
)

// Poll statuses besides the fixed outcomes. A consumed, expired, or unknown
// token is indistinguishable from one still awaiting a decision; internal
// distinctions are never leaked to the polling side.
const (
	StatusPending = "pending"
	StatusExpired = "expired"
)

var tracer = otel.Tracer("approval-relay/broker")

// Broker is the session/result broker. All state is process-local and
// TTL-bounded; the only authorization on the decision-write path is the
// configured approver identity plus the integrity tag.
type Broker struct {
	signer     *security.TagSigner
	store      *store.Store
	notifier   gateway.Notifier
	responder  gateway.Responder
	approverID int64
	ttl        time.Duration
	metrics    *telemetry.Metrics
}

// NewBroker returns a Broker with the given dependencies. ttl bounds both
// pending sessions and unconsumed decisions. metrics may be nil.
func NewBroker(
	signer *security.TagSigner,
	st *store.Store,
	notifier gateway.Notifier,
	responder gateway.Responder,
	approverID int64,
	ttl time.Duration,
	metrics *telemetry.Metrics,
) *Broker {
	return &Broker{
		signer:     signer,
		store:      st,
		notifier:   notifier,
		responder:  responder,
		approverID: approverID,
		ttl:        ttl,
		metrics:    metrics,
	}
}

// Issue mints a token and tag for subject, records the pending session, and
// dispatches the approval request. Dispatch failure is returned to the
// caller; the pending entry is left to expire unclaimed, so no rollback is
// needed.
func (b *Broker) Issue(ctx context.Context, subject, kind, note string) (string, error) {
	ctx, span := tracer.Start(ctx, "broker.Issue")
	defer span.End()

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrMissingSubject
	}
	k, ok := domain.ParseKind(strings.TrimSpace(kind))
	if !ok {
		return "", ErrUnknownKind
	}
	span.SetAttributes(attribute.String("approval.kind", string(k)))

	token, err := security.NewToken()
	if err != nil {
		return "", err
	}
	tag := b.signer.Sign(token, subject)
	b.store.PutPending(ctx, domain.PendingSession{
		Token:     token,
		Subject:   subject,
		Tag:       tag,
		ExpiresAt: time.Now().UTC().Add(b.ttl),
	})

	if err := b.notifier.SendApproval(ctx, b.approvalMessage(token, subject, k, note)); err != nil {
		log.Printf("broker: dispatch failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrNotifyFailed, err)
	}
	b.metrics.Issued(ctx, string(k))
	return token, nil
}

// approvalMessage builds the approver-facing text and buttons. Each button
// payload is "action:token"; subject and tag stay server-side.
func (b *Broker) approvalMessage(token, subject string, k domain.Kind, note string) gateway.ApprovalMessage {
	var text string
	switch k {
	case domain.KindOTP:
		text = fmt.Sprintf("OTP submitted for %s", subject)
	default:
		text = fmt.Sprintf("Login attempt for %s", subject)
	}
	if note != "" {
		text += "\n" + note
	}
	buttons := make([]gateway.ActionButton, 0, 2)
	for _, btn := range domain.ButtonsForKind(k) {
		buttons = append(buttons, gateway.ActionButton{
			Label: btn.Label,
			Data:  string(btn.Action) + ":" + token,
		})
	}
	return gateway.ApprovalMessage{Text: text, Buttons: buttons}
}

// Poll retrieves the decision for token. The first poll after a decision
// receives the outcome and erases it; every other poll sees "pending" while
// the session is live and "expired" otherwise.
func (b *Broker) Poll(ctx context.Context, token string) (string, error) {
	if !security.ValidToken(token) {
		return "", ErrBadToken
	}
	if d, ok := b.store.TakeDecision(ctx, token); ok {
		b.metrics.Consumed(ctx)
		return string(d.Outcome), nil
	}
	if _, ok := b.store.GetPending(ctx, token); ok {
		return StatusPending, nil
	}
	return StatusExpired, nil
}

// HandleCallback runs the verification gates over an inbound approver
// callback and records the decision on success. Every path answers the
// callback; failures past the transport acknowledgment are logged only and
// never mutate state.
func (b *Broker) HandleCallback(ctx context.Context, cb gateway.Callback) {
	ctx, span := tracer.Start(ctx, "broker.HandleCallback")
	defer span.End()

	if cb.FromID != b.approverID {
		log.Printf("broker: callback from unauthorized user id=%d username=%q", cb.FromID, cb.FromUsername)
		b.metrics.Rejected(ctx, "unauthorized")
		b.answer(ctx, cb, "Unauthorized.", true)
		return
	}

	action, token, ok := splitCallbackData(cb.Data)
	if !ok {
		log.Printf("broker: malformed callback data")
		b.metrics.Rejected(ctx, "invalid_data")
		b.answer(ctx, cb, "Invalid data.", true)
		return
	}

	pending, ok := b.store.GetPending(ctx, token)
	if !ok || !b.signer.Verify(token, pending.Subject, pending.Tag) {
		log.Printf("broker: callback for missing or unverifiable session")
		b.metrics.Rejected(ctx, "invalid_session")
		b.answer(ctx, cb, "Expired or invalid.", true)
		return
	}

	outcome, ok := domain.OutcomeForAction(action)
	if !ok {
		log.Printf("broker: unknown action %q", action)
		b.metrics.Rejected(ctx, "unknown_action")
		b.answer(ctx, cb, "Unknown action.", true)
		return
	}

	// TakePending is the atomic gate: when two callbacks race for the same
	// token, exactly one gets to write the decision.
	if _, ok := b.store.TakePending(ctx, token); !ok {
		b.metrics.Rejected(ctx, "already_handled")
		b.answer(ctx, cb, "Already handled.", false)
		return
	}
	b.store.PutDecision(ctx, token, domain.Decision{
		Outcome:   outcome,
		ExpiresAt: time.Now().UTC().Add(b.ttl),
	})
	span.SetAttributes(attribute.String("approval.outcome", string(outcome)))
	b.metrics.Decided(ctx, string(outcome))

	if cb.MessageID != 0 {
		if err := b.responder.ClearButtons(ctx, cb.ChatID, cb.MessageID); err != nil {
			log.Printf("broker: clear buttons: %v", err)
		}
	}
	b.answer(ctx, cb, fmt.Sprintf("Recorded: %s", outcome), false)
}

// answer acknowledges the callback; ack failures are logged only.
func (b *Broker) answer(ctx context.Context, cb gateway.Callback, text string, alert bool) {
	if err := b.responder.AnswerCallback(ctx, cb.ID, text, alert); err != nil {
		log.Printf("broker: answer callback: %v", err)
	}
}

// splitCallbackData parses "action:token" and applies the token format gate.
func splitCallbackData(data string) (domain.Action, string, bool) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || !security.ValidToken(parts[1]) {
		return "", "", false
	}
	return domain.Action(parts[0]), parts[1], true
}
