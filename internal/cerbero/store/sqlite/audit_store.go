package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	dbpkg "github.com/dvillamarin/cerbero/internal/db"
)

// AuditStore persists authentication attempt records in SQLite.  All
// writes go through the single-writer worker; reads use the shared
// connection directly.
type AuditStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAuditStore(db *sql.DB, writer *dbpkg.Worker) *AuditStore {
	return &AuditStore{db: db, writer: writer}
}

func (s *AuditStore) Append(ctx context.Context, rec domain.AuditRecord) error {
	var permissionID any
	if rec.PermissionID != "" {
		permissionID = rec.PermissionID
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO audit_records(id, ts_ms, owner_id, area_id, method, factors, result, reason, permission_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			rec.ID,
			rec.Timestamp.UTC().UnixMilli(),
			rec.OwnerID,
			rec.AreaID,
			string(rec.Method),
			joinFactors(rec.Factors),
			string(rec.Result),
			rec.Reason,
			permissionID,
		)
		if err != nil {
			return fmt.Errorf("insert audit record: %w", err)
		}
		return nil
	})
}

func (s *AuditStore) List(ctx context.Context) ([]domain.AuditRecord, error) {
	return s.query(ctx, `SELECT id, ts_ms, owner_id, area_id, method, factors, result, reason, permission_id
FROM audit_records ORDER BY ts_ms, id;`)
}

func (s *AuditStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error) {
	return s.query(ctx, `SELECT id, ts_ms, owner_id, area_id, method, factors, result, reason, permission_id
FROM audit_records WHERE owner_id = ? ORDER BY ts_ms, id;`, ownerID)
}

func (s *AuditStore) ListByArea(ctx context.Context, areaID string) ([]domain.AuditRecord, error) {
	return s.query(ctx, `SELECT id, ts_ms, owner_id, area_id, method, factors, result, reason, permission_id
FROM audit_records WHERE area_id = ? ORDER BY ts_ms, id;`, areaID)
}

func (s *AuditStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM audit_records WHERE ts_ms < ?;`, cutoff.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("prune audit records: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

func (s *AuditStore) query(ctx context.Context, q string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditRecord
	for rows.Next() {
		var (
			rec          domain.AuditRecord
			tsMs         int64
			method       string
			factors      string
			result       string
			permissionID sql.NullString
		)
		if err := rows.Scan(&rec.ID, &tsMs, &rec.OwnerID, &rec.AreaID,
			&method, &factors, &result, &rec.Reason, &permissionID); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		rec.Method = domain.Factor(method)
		rec.Factors = splitFactors(factors)
		rec.Result = domain.AuthResult(result)
		if permissionID.Valid {
			rec.PermissionID = permissionID.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func joinFactors(fs []domain.Factor) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitFactors(s string) []domain.Factor {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.Factor, len(parts))
	for i, p := range parts {
		out[i] = domain.Factor(p)
	}
	return out
}
