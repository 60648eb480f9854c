package domain

import "time"

// Permission grants an owner entry to an area, bounded by an optional
// validity window.  Keyed by permission ID.
type Permission struct {
	ID        string
	OwnerID   string
	AreaID    string
	State     PermissionState
	ValidFrom *time.Time // nil = open-ended
	ValidTo   *time.Time // nil = open-ended
}

// NewPermission validates identifiers and the validity window.
func NewPermission(id, ownerID, areaID string, state PermissionState, validFrom, validTo *time.Time) (Permission, error) {
	var p Permission
	var err error

	if p.ID, err = requireNonEmpty(id, "permission ID"); err != nil {
		return Permission{}, err
	}
	if p.OwnerID, err = requireNonEmpty(ownerID, "owner ID"); err != nil {
		return Permission{}, err
	}
	if p.AreaID, err = requireNonEmpty(areaID, "area ID"); err != nil {
		return Permission{}, err
	}
	if validFrom != nil && validTo != nil && validTo.Before(*validFrom) {
		return Permission{}, Invalidf("permission valid-to precedes valid-from")
	}
	p.State = state
	p.ValidFrom = validFrom
	p.ValidTo = validTo
	return p, nil
}

// IsCurrent reports whether the permission is ACTIVE and today falls
// within its validity window.  Comparison is by calendar date.
func (p Permission) IsCurrent(today time.Time) bool {
	if p.State != PermissionActive {
		return false
	}
	day := dateOf(today)
	if p.ValidFrom != nil && day.Before(dateOf(*p.ValidFrom)) {
		return false
	}
	if p.ValidTo != nil && day.After(dateOf(*p.ValidTo)) {
		return false
	}
	return true
}

// dateOf truncates t to its calendar date in t's location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
