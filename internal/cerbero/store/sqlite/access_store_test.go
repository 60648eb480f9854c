package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
	"github.com/dvillamarin/cerbero/internal/cerbero/store/sqlite"
)

// seedAudit inserts the audit record an access record must reference.
func seedAudit(t *testing.T, s *sqlite.AuditStore, id string) {
	t.Helper()
	err := s.Append(context.Background(), domain.AuditRecord{
		ID:        id,
		Timestamp: time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
		OwnerID:   "1710034065",
		AreaID:    "LAB-01",
		Method:    domain.FactorRFID,
		Result:    domain.ResultSuccess,
	})
	if err != nil {
		t.Fatalf("seedAudit: %v", err)
	}
}

func TestAccessStore_AppendAndCloseExit(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlite.NewAccessStore(conn, w)
	ctx := context.Background()
	seedAudit(t, sqlite.NewAuditStore(conn, w), "2abc")

	entered := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	rec := domain.AccessRecord{
		ID:            "acc-1",
		OwnerID:       "1710034065",
		AreaID:        "LAB-01",
		EnteredAt:     entered,
		AuditRecordID: "2abc",
	}
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ExitedAt != nil {
		t.Fatalf("expected one open record, got %+v", got)
	}
	if !got[0].EnteredAt.Equal(entered) {
		t.Errorf("expected EnteredAt=%v, got %v", entered, got[0].EnteredAt)
	}

	exit := entered.Add(2 * time.Hour)
	if err := s.CloseExit(ctx, "acc-1", exit); err != nil {
		t.Fatalf("CloseExit: %v", err)
	}
	got, _ = s.List(ctx)
	if got[0].ExitedAt == nil || !got[0].ExitedAt.Equal(exit) {
		t.Errorf("expected exit stamped %v, got %+v", exit, got[0].ExitedAt)
	}
}

func TestAccessStore_CloseExitUnknownID(t *testing.T) {
	conn := openTestDB(t)
	s := sqlite.NewAccessStore(conn, newTestWriter(t, conn))

	err := s.CloseExit(context.Background(), "acc-404", time.Now())
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAccessStore_Prune(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlite.NewAccessStore(conn, w)
	ctx := context.Background()
	seedAudit(t, sqlite.NewAuditStore(conn, w), "2abc")
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"acc-1", "acc-2", "acc-3"} {
		rec := domain.AccessRecord{
			ID:            id,
			OwnerID:       "1710034065",
			AreaID:        "LAB-01",
			EnteredAt:     base.Add(time.Duration(i) * 24 * time.Hour),
			AuditRecordID: "2abc",
		}
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}

	n, err := s.PruneOlderThan(ctx, base.Add(36*time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pruned, got %d", n)
	}
	rest, _ := s.List(ctx)
	if len(rest) != 1 || rest[0].ID != "acc-3" {
		t.Errorf("expected only acc-3 to survive, got %+v", rest)
	}
}
