package domain

import "fmt"

// ValidationError indicates malformed input from a caller (empty fields,
// out-of-range gesture codes, bad capture requests).  It is never audited:
// it points at a caller bug, not an access attempt.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf builds a ValidationError with a formatted message.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthenticationError is an expected, user-facing factor failure
// (wrong RFID, wrong PIN, pattern mismatch, lockout).
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

func Unauthenticatedf(format string, args ...any) error {
	return &AuthenticationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError is an expected, user-facing gate failure
// (no current permit, outside the area's opening hours).
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func Unauthorizedf(format string, args ...any) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// HardwareError reports a sensor or actuator malfunction.  Unlike the
// other kinds it may be attributable to infrastructure rather than to
// the person at the door, so the orchestrator audits it with a
// distinguishing reason prefix.
type HardwareError struct {
	Device string // "sensor", "actuator", ...
	Err    error
}

func (e *HardwareError) Error() string {
	if e.Err == nil {
		return e.Device
	}
	return e.Device + ": " + e.Err.Error()
}

func (e *HardwareError) Unwrap() error { return e.Err }
