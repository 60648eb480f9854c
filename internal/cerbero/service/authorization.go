package service

import (
	"context"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// AuthorizationService gates access attempts behind the area's opening
// window and a current permission.
type AuthorizationService struct {
	areas       store.AreaStore
	permissions store.PermissionStore
}

func NewAuthorizationService(areas store.AreaStore, permissions store.PermissionStore) *AuthorizationService {
	return &AuthorizationService{areas: areas, permissions: permissions}
}

// CheckAccess verifies the area is open at now and that owner holds a
// current permission for it, returning the matched permission.  An
// unknown area propagates as the store's NotFoundError: that is operator
// misconfiguration, not an access attempt.
func (s *AuthorizationService) CheckAccess(ctx context.Context, ownerID, areaID string, now time.Time) (domain.Permission, error) {
	area, err := s.areas.Get(ctx, areaID)
	if err != nil {
		return domain.Permission{}, err
	}

	if !area.AccessibleAt(now) {
		return domain.Permission{}, domain.Unauthorizedf("access denied: outside permitted hours")
	}

	perm, ok, err := s.permissions.FindCurrent(ctx, ownerID, areaID, now)
	if err != nil {
		return domain.Permission{}, err
	}
	if !ok {
		return domain.Permission{}, domain.Unauthorizedf("access denied: no active permit for this area")
	}
	return perm, nil
}
