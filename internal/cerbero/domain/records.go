package domain

import "time"

// AuditRecord describes one authentication attempt's outcome.  Records
// are append-only and never mutated after creation.
type AuditRecord struct {
	ID           string
	Timestamp    time.Time
	OwnerID      string
	AreaID       string
	Method       Factor
	Factors      []Factor // factors that had passed when the outcome was decided
	Result       AuthResult
	Reason       string
	PermissionID string // empty when authorization never succeeded
}

// AccessRecord marks a granted entry.  Created only paired with a
// SUCCESS audit record.
type AccessRecord struct {
	ID            string
	OwnerID       string
	AreaID        string
	EnteredAt     time.Time
	AuditRecordID string
	ExitedAt      *time.Time
}
