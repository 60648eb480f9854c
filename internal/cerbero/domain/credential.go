package domain

import "time"

// Credential is a physical RFID token bound to exactly one owner.
// Keyed by serial.
type Credential struct {
	Serial    string
	OwnerID   string
	IssuedOn  time.Time
	ExpiresOn time.Time
	State     CredentialState
	FailCount    int
	SuccessCount int
	LastUsed     *time.Time
}

// NewCredential validates identifiers and the issue/expiry ordering.
// A fresh credential starts ACTIVE with zeroed counters.
func NewCredential(serial, ownerID string, issuedOn, expiresOn time.Time) (Credential, error) {
	var c Credential
	var err error

	if c.Serial, err = requireNonEmpty(serial, "credential serial"); err != nil {
		return Credential{}, err
	}
	if c.OwnerID, err = requireNonEmpty(ownerID, "owner ID"); err != nil {
		return Credential{}, err
	}
	if expiresOn.Before(issuedOn) {
		return Credential{}, Invalidf("credential expiry precedes issue date")
	}
	c.IssuedOn = issuedOn
	c.ExpiresOn = expiresOn
	c.State = CredentialActive
	return c, nil
}

// IsCurrent reports whether the credential may still be presented: not
// BLOCKED or LOST, and today is on or before the expiry date.
func (c Credential) IsCurrent(today time.Time) bool {
	if c.State == CredentialBlocked || c.State == CredentialLost {
		return false
	}
	return !dateOf(today).After(dateOf(c.ExpiresOn))
}
