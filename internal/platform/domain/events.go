package domain

// AuthEventType names a session-state transition.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "signed_in"
	AuthEventSignedOut      AuthEventType = "signed_out"
	AuthEventTokenRefreshed AuthEventType = "token_refreshed"
)

// AuthEvent is published on every session-state transition. Session is nil
// for signed_out events. Delivery is at least once; there is no ordering
// guarantee between the initial session check and the first event.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}
