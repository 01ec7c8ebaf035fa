// Package gateway defines the notification-gateway boundary: the broker
// dispatches approval requests through a Notifier and answers inbound
// callbacks through a Responder. Wire formats belong to the implementations.
package gateway

import "context"

// ActionButton is one approver choice: a display label plus the opaque
// payload round-tripped in the callback.
type ActionButton struct {
	Label string
	Data  string
}

// ApprovalMessage is a request for approval: human-readable text plus an
// ordered list of mutually exclusive actions.
type ApprovalMessage struct {
	Text    string
	Buttons []ActionButton
}

// Callback is an approver's inbound action, normalized from the gateway's
// wire format.
type Callback struct {
	// ID is the acknowledgment handle; the broker must answer it regardless
	// of outcome.
	ID string
	// FromID is the gateway identity of the user who pressed the button.
	FromID int64
	// FromUsername is the display name of that user, for logs only.
	FromUsername string
	// ChatID and MessageID locate the approval message for button removal.
	ChatID    int64
	MessageID int
	// Data is the action payload exactly as issued.
	Data string
}

// Notifier delivers approval requests to the approver channel.
type Notifier interface {
	SendApproval(ctx context.Context, msg ApprovalMessage) error
}

// Responder answers callbacks and edits already-delivered messages.
type Responder interface {
	// AnswerCallback acknowledges the callback with a short status text.
	// alert requests prominent display on the approver's client.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	// ClearButtons removes the action buttons from a delivered approval
	// message so the same decision cannot be clicked twice.
	ClearButtons(ctx context.Context, chatID int64, messageID int) error
}
