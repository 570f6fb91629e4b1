package models

import "time"

// Session states for the conversation state machine.
const (
	StateInitial           = "initial"
	StateRegistering       = "registering"
	StateConfirmingProfile = "confirming_profile"
	StateConversing        = "conversing"
)

// PendingOptions holds the alternative slots offered to a user after a
// rejected request, awaiting their selection on the next turn.
type PendingOptions struct {
	Date      string   `json:"date"`      // normalized YYYY-MM-DD
	DateLabel string   `json:"dateLabel"` // human-readable Spanish date
	Times     []string `json:"times"`     // ordered time labels, earliest first
}

// Session tracks one user's conversation across turns. It lives only in the
// session store and is never persisted with booking outcomes.
type Session struct {
	UserID       string          `json:"userId"`
	State        string          `json:"state"`
	Profile      UserProfile     `json:"profile"`
	IsNewUser    bool            `json:"isNewUser"`
	SecondChance bool            `json:"secondChance"`
	AskedForSlot bool            `json:"askedForSlot"`
	Pending      *PendingOptions `json:"pending,omitempty"`
	LastActivity time.Time       `json:"lastActivity"`
}

// Touch refreshes the inactivity clock.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}

// Expired reports whether the session exceeded the inactivity window.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return !s.LastActivity.IsZero() && now.Sub(s.LastActivity) > ttl
}
