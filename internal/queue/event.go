// Package queue defines message payloads exchanged over the message broker.
package queue

// AuthEvent is published after every successful signup, login or
// refresh.  It carries enough information for downstream consumers to
// log or alert on authentication activity without querying the primary
// database.
type AuthEvent struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	EventType   string `json:"event_type"`
	Fingerprint string `json:"fingerprint"`
	Device      string `json:"device"`
	OccurredAt  string `json:"occurred_at"`
}
