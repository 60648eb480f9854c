package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
	dbpkg "github.com/dvillamarin/cerbero/internal/db"
)

// AccessStore persists granted entries in SQLite.
type AccessStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAccessStore(db *sql.DB, writer *dbpkg.Worker) *AccessStore {
	return &AccessStore{db: db, writer: writer}
}

func (s *AccessStore) Append(ctx context.Context, rec domain.AccessRecord) error {
	var exitedMs any
	if rec.ExitedAt != nil {
		exitedMs = rec.ExitedAt.UTC().UnixMilli()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO access_records(id, owner_id, area_id, entered_at_ms, audit_record_id, exited_at_ms)
VALUES (?, ?, ?, ?, ?, ?);`,
			rec.ID,
			rec.OwnerID,
			rec.AreaID,
			rec.EnteredAt.UTC().UnixMilli(),
			rec.AuditRecordID,
			exitedMs,
		)
		if err != nil {
			return fmt.Errorf("insert access record: %w", err)
		}
		return nil
	})
}

func (s *AccessStore) List(ctx context.Context) ([]domain.AccessRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, owner_id, area_id, entered_at_ms, audit_record_id, exited_at_ms
FROM access_records ORDER BY entered_at_ms, id;`)
	if err != nil {
		return nil, fmt.Errorf("query access records: %w", err)
	}
	defer rows.Close()

	var out []domain.AccessRecord
	for rows.Next() {
		var (
			rec       domain.AccessRecord
			enteredMs int64
			exitedMs  sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.AreaID,
			&enteredMs, &rec.AuditRecordID, &exitedMs); err != nil {
			return nil, fmt.Errorf("scan access record: %w", err)
		}
		rec.EnteredAt = time.UnixMilli(enteredMs).UTC()
		if exitedMs.Valid {
			t := time.UnixMilli(exitedMs.Int64).UTC()
			rec.ExitedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *AccessStore) CloseExit(ctx context.Context, accessID string, exitedAt time.Time) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE access_records SET exited_at_ms = ? WHERE id = ?;`,
			exitedAt.UTC().UnixMilli(), accessID)
		if err != nil {
			return fmt.Errorf("close exit: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return &store.NotFoundError{Kind: "access", Key: accessID}
		}
		return nil
	})
}

func (s *AccessStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM access_records WHERE entered_at_ms < ?;`, cutoff.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("prune access records: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
