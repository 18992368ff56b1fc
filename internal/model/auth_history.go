package model

import "time"

// Auth event types recorded in the history.
const (
	AuthEventSignup  = "signup"
	AuthEventLogin   = "login"
	AuthEventRefresh = "refresh"
)

// AuthHistoryEvent is an append-only audit record of a successful
// authentication, one row per signup, login or refresh.  The fingerprint
// is an opaque string built from request metadata (typically the
// User-Agent header); nothing in the service parses it back.
//
// Fields:
//  ID          – UUID primary key.
//  UserID      – user the event belongs to.
//  EventType   – one of the AuthEvent* constants.
//  Fingerprint – opaque client fingerprint.
//  Device      – coarse device class ("desktop", "mobile", ...).
//  EventTime   – when the event happened.
type AuthHistoryEvent struct {
	ID          string    // auth_history.id
	UserID      string    // auth_history.user_id
	EventType   string    // auth_history.auth_event_type
	Fingerprint string    // auth_history.auth_event_fingerprint
	Device      string    // auth_history.device
	EventTime   time.Time // auth_history.auth_event_time
}
