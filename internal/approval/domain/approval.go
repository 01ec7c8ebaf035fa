// Package domain holds the approval-relay data model: approval kinds,
// decision outcomes, approver actions, and the broker's stored entities.
package domain

import "time"

// Kind selects what the approver is asked to approve.
type Kind string

const (
	// KindLogin asks the approver to confirm a login attempt.
	KindLogin Kind = "login"
	// KindOTP asks the approver to judge a submitted OTP.
	KindOTP Kind = "otp"
)

// ParseKind returns the Kind for s and true, or "" and false for anything
// outside the closed set.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindLogin, KindOTP:
		return Kind(s), true
	default:
		return "", false
	}
}

// Outcome is one of the fixed approver decisions recorded against a token.
type Outcome string

const (
	OutcomeOTPAllowed Outcome = "otp_allowed"
	OutcomeOTPCorrect Outcome = "otp_correct"
	OutcomeOTPWrong   Outcome = "otp_wrong"
	OutcomeWrongPIN   Outcome = "wrong_pin"
)

// Action is a button/action identifier carried in the callback payload.
type Action string

const (
	ActionAllow      Action = "allow"
	ActionWrongPIN   Action = "wrong_pin"
	ActionOTPCorrect Action = "otp_correct"
	ActionOTPWrong   Action = "otp_wrong"
)

// actionOutcomes is the exhaustive action → outcome mapping. Unknown actions
// are rejected, never silently ignored.
var actionOutcomes = map[Action]Outcome{
	ActionAllow:      OutcomeOTPAllowed,
	ActionWrongPIN:   OutcomeWrongPIN,
	ActionOTPCorrect: OutcomeOTPCorrect,
	ActionOTPWrong:   OutcomeOTPWrong,
}

// OutcomeForAction maps an action identifier to its outcome. Returns false
// for any identifier outside the known set.
func OutcomeForAction(a Action) (Outcome, bool) {
	o, ok := actionOutcomes[a]
	return o, ok
}

// Button is one approver choice: a display label plus the action it triggers.
type Button struct {
	Label  string
	Action Action
}

// ButtonsForKind returns the ordered, mutually exclusive button set shown to
// the approver for the given kind.
func ButtonsForKind(k Kind) []Button {
	switch k {
	case KindLogin:
		return []Button{
			{Label: "Allow", Action: ActionAllow},
			{Label: "Wrong PIN", Action: ActionWrongPIN},
		}
	case KindOTP:
		return []Button{
			{Label: "OTP correct", Action: ActionOTPCorrect},
			{Label: "OTP wrong", Action: ActionOTPWrong},
		}
	default:
		return nil
	}
}

// PendingSession is an issued approval awaiting the approver's decision.
type PendingSession struct {
	Token     string
	Subject   string
	Tag       string
	ExpiresAt time.Time
}

// Decision is a recorded outcome awaiting its single consuming poll.
type Decision struct {
	Outcome   Outcome
	ExpiresAt time.Time
}
