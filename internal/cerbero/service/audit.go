package service

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// AuditEntry carries the fields of one authentication attempt outcome.
// Timestamp defaults to now when zero.
type AuditEntry struct {
	OwnerID      string
	AreaID       string
	Method       domain.Factor
	Factors      []domain.Factor
	Result       domain.AuthResult
	Reason       string
	PermissionID string
	Timestamp    time.Time
}

// AuditService appends immutable attempt records.  Identical entries are
// never deduplicated; every call produces a fresh record with its own ID.
type AuditService struct {
	records store.AuditStore
}

func NewAuditService(records store.AuditStore) *AuditService {
	return &AuditService{records: records}
}

// Record appends e as a new audit record and returns it.  IDs are
// ksuids, so the log sorts chronologically by ID.
func (s *AuditService) Record(ctx context.Context, e AuditEntry) (domain.AuditRecord, error) {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	rec := domain.AuditRecord{
		ID:           ksuid.New().String(),
		Timestamp:    ts,
		OwnerID:      e.OwnerID,
		AreaID:       e.AreaID,
		Method:       e.Method,
		Factors:      append([]domain.Factor(nil), e.Factors...),
		Result:       e.Result,
		Reason:       e.Reason,
		PermissionID: e.PermissionID,
	}

	if err := s.records.Append(ctx, rec); err != nil {
		return domain.AuditRecord{}, err
	}
	return rec, nil
}
