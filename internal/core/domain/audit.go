package domain

import "time"

// AuthAction identifies the kind of authentication attempt being audited.
type AuthAction string

const (
	ActionRegister AuthAction = "register"
	ActionLogin    AuthAction = "login"
)

// AuthEvent records the outcome of a single authentication attempt. Only the
// email and outcome are kept; passwords and tokens never reach the audit trail.
type AuthEvent struct {
	Action    AuthAction
	Email     string
	Success   bool
	Reason    string // short failure tag, empty on success
	Timestamp time.Time
}
