package store

import (
	"context"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

// StudentStore holds enrolled students keyed by national ID.
type StudentStore interface {
	Save(ctx context.Context, s domain.Student) error
	Get(ctx context.Context, nationalID string) (domain.Student, error)
	Find(ctx context.Context, nationalID string) (domain.Student, bool, error)
	List(ctx context.Context) ([]domain.Student, error)
}

// AreaStore holds access-controlled areas keyed by area ID.
type AreaStore interface {
	Save(ctx context.Context, a domain.Area) error
	Get(ctx context.Context, areaID string) (domain.Area, error)
	Find(ctx context.Context, areaID string) (domain.Area, bool, error)
	List(ctx context.Context) ([]domain.Area, error)
}

// PermissionStore holds permissions keyed by permission ID.
type PermissionStore interface {
	Save(ctx context.Context, p domain.Permission) error
	Get(ctx context.Context, permissionID string) (domain.Permission, error)
	// FindCurrent returns the first permission for (owner, area) that is
	// current as of today, if any.
	FindCurrent(ctx context.Context, ownerID, areaID string, today time.Time) (domain.Permission, bool, error)
	List(ctx context.Context) ([]domain.Permission, error)
}

// CredentialStore holds RFID credentials keyed by serial.  Save enforces
// serial<->owner uniqueness in both directions: a serial belongs to at
// most one owner and an owner holds at most one serial; reassignment is
// rejected with a ConflictError naming the existing owner.
type CredentialStore interface {
	Save(ctx context.Context, c domain.Credential) error
	Get(ctx context.Context, serial string) (domain.Credential, error)
	// Update applies fn to the stored credential under the store lock so
	// that counter increments and state transitions are atomic across
	// concurrent attempts.  The mutation is kept even when fn returns an
	// error; that error is passed through to the caller.
	Update(ctx context.Context, serial string, fn func(*domain.Credential) error) error
	List(ctx context.Context) ([]domain.Credential, error)
}

// PINStore holds area PINs keyed by (owner, area).  Save enforces global
// PIN-ID uniqueness across all pairs.
type PINStore interface {
	Save(ctx context.Context, p domain.PIN) error
	Get(ctx context.Context, ownerID, areaID string) (domain.PIN, error)
	// Update has the same locked read-modify-write semantics as
	// CredentialStore.Update.
	Update(ctx context.Context, ownerID, areaID string, fn func(*domain.PIN) error) error
	List(ctx context.Context) ([]domain.PIN, error)
}

// PatternStore holds behavioral patterns keyed by owner, one pattern per
// owner.  Save enforces global pattern-ID uniqueness across owners.
type PatternStore interface {
	Save(ctx context.Context, p domain.Pattern) error
	Get(ctx context.Context, ownerID string) (domain.Pattern, error)
	List(ctx context.Context) ([]domain.Pattern, error)
}

// AuditStore persists authentication attempt records as an append-only
// log.
type AuditStore interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
	List(ctx context.Context) ([]domain.AuditRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error)
	ListByArea(ctx context.Context, areaID string) ([]domain.AuditRecord, error)
	// PruneOlderThan deletes records whose timestamp precedes cutoff and
	// reports how many were removed.  Used by the optional retention job.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AccessStore persists granted entries.
type AccessStore interface {
	Append(ctx context.Context, rec domain.AccessRecord) error
	List(ctx context.Context) ([]domain.AccessRecord, error)
	// CloseExit stamps the exit time on an open access record.
	CloseExit(ctx context.Context, accessID string, exitedAt time.Time) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
