// Package seed loads a small demo data set so a dev deployment can
// exercise the full access pipeline without any management calls.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// Stores collects everything Demo populates.
type Stores struct {
	Students    store.StudentStore
	Areas       store.AreaStore
	Permissions store.PermissionStore
	Credentials store.CredentialStore
	PINs        store.PINStore
	Patterns    store.PatternStore
}

// DemoOwnerID is the national ID of the seeded student.
const DemoOwnerID = "1710034065"

// DemoAreaID and DemoSerial identify the seeded area and credential.
const (
	DemoAreaID = "LAB-01"
	DemoSerial = "RFID-0001"
)

// Demo saves one student with a full enrollment: an area open 07:00 to
// 20:00, an active open-ended permission, a valid credential, the PIN
// [1 3 7 15] and the pattern [1 1 2 3 5 8].
func Demo(ctx context.Context, st Stores, now time.Time) error {
	student, err := domain.NewStudent(DemoOwnerID, "Ana María", "Quishpe Lema",
		"ana.quishpe@uni.edu.ec", "A00123456", "Computer Science")
	if err != nil {
		return fmt.Errorf("seed student: %w", err)
	}
	if err := st.Students.Save(ctx, student); err != nil {
		return err
	}

	area, err := domain.NewArea(DemoAreaID, "Networks Laboratory", domain.AreaLaboratory,
		"Building C, floor 2",
		domain.TimeOfDay{Hour: 7}, domain.TimeOfDay{Hour: 20})
	if err != nil {
		return fmt.Errorf("seed area: %w", err)
	}
	if err := st.Areas.Save(ctx, area); err != nil {
		return err
	}

	perm, err := domain.NewPermission("PERM-0001", DemoOwnerID, DemoAreaID,
		domain.PermissionActive, nil, nil)
	if err != nil {
		return fmt.Errorf("seed permission: %w", err)
	}
	if err := st.Permissions.Save(ctx, perm); err != nil {
		return err
	}

	cred, err := domain.NewCredential(DemoSerial, DemoOwnerID,
		now.AddDate(0, -1, 0), now.AddDate(1, 0, 0))
	if err != nil {
		return fmt.Errorf("seed credential: %w", err)
	}
	if err := st.Credentials.Save(ctx, cred); err != nil {
		return err
	}

	pin, err := domain.NewPIN("PIN-0001", DemoOwnerID, DemoAreaID, student.BadgeID,
		[]int{1, 3, 7, 15}, 0)
	if err != nil {
		return fmt.Errorf("seed pin: %w", err)
	}
	if err := st.PINs.Save(ctx, pin); err != nil {
		return err
	}

	pattern, err := domain.NewPattern("PAT-0001", DemoOwnerID,
		[]int{1, 1, 2, 3, 5, 8}, now, []float64{0.5, 0.5, 0.6, 0.7, 0.8})
	if err != nil {
		return fmt.Errorf("seed pattern: %w", err)
	}
	return st.Patterns.Save(ctx, pattern)
}
