package auth

import (
	"fmt"
	"net/http"

	"github.com/academic-hub/csv-portal/internal/store"
)

// State is the login machine position derived from the session record.
//
//	NoAttempt -> Pending -> Authenticated
//	NoAttempt -> Pending -> Denied
//
// Pending only exists while a token fetch is in flight; it is never
// persisted. Denied -> NoAttempt requires a fresh session (page reload).
type State int

const (
	StateNoAttempt State = iota
	StatePending
	StateAuthenticated
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateNoAttempt:
		return "no_attempt"
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// StateOf derives the machine state from the last token-endpoint status.
// A 400 counts as NoAttempt so the user can retry the external login.
func StateOf(sess *store.Session) State {
	switch sess.AuthStatus {
	case 0, http.StatusBadRequest:
		return StateNoAttempt
	case http.StatusOK:
		return StateAuthenticated
	default:
		return StateDenied
	}
}

// LoginURL builds the external identity-flow link. The session id rides
// along as the correlation token.
func LoginURL(authURL, sessionID string) string {
	return fmt.Sprintf("%s?hub-id=%s", authURL, sessionID)
}

// DeniedMessage is shown verbatim with the failing status code; the user
// must restart the login, there is no automatic retry.
func DeniedMessage(status int) string {
	return fmt.Sprintf("Error (%d): cannot login, make sure to use the correct hub account", status)
}
