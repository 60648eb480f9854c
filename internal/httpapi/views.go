package httpapi

import (
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

type studentView struct {
	NationalID string `json:"national_id"`
	FirstNames string `json:"first_names"`
	LastNames  string `json:"last_names"`
	Email      string `json:"email"`
	BadgeID    string `json:"badge_id"`
	Program    string `json:"program"`
}

func toStudentView(s domain.Student) studentView {
	return studentView{
		NationalID: s.NationalID,
		FirstNames: s.FirstNames,
		LastNames:  s.LastNames,
		Email:      s.Email,
		BadgeID:    s.BadgeID,
		Program:    s.Program,
	}
}

type areaView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

func toAreaView(a domain.Area) areaView {
	return areaView{
		ID:       a.ID,
		Name:     a.Name,
		Kind:     string(a.Kind),
		Location: a.Location,
		OpensAt:  a.OpensAt.String(),
		ClosesAt: a.ClosesAt.String(),
	}
}

type permissionView struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	AreaID    string `json:"area_id"`
	State     string `json:"state"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
}

func toPermissionView(p domain.Permission) permissionView {
	v := permissionView{
		ID:      p.ID,
		OwnerID: p.OwnerID,
		AreaID:  p.AreaID,
		State:   string(p.State),
	}
	if p.ValidFrom != nil {
		v.ValidFrom = p.ValidFrom.Format(time.DateOnly)
	}
	if p.ValidTo != nil {
		v.ValidTo = p.ValidTo.Format(time.DateOnly)
	}
	return v
}

type credentialView struct {
	Serial       string `json:"serial"`
	OwnerID      string `json:"owner_id"`
	IssuedOn     string `json:"issued_on"`
	ExpiresOn    string `json:"expires_on"`
	State        string `json:"state"`
	FailCount    int    `json:"fail_count"`
	SuccessCount int    `json:"success_count"`
	LastUsed     string `json:"last_used,omitempty"`
}

func toCredentialView(c domain.Credential) credentialView {
	v := credentialView{
		Serial:       c.Serial,
		OwnerID:      c.OwnerID,
		IssuedOn:     c.IssuedOn.Format(time.DateOnly),
		ExpiresOn:    c.ExpiresOn.Format(time.DateOnly),
		State:        string(c.State),
		FailCount:    c.FailCount,
		SuccessCount: c.SuccessCount,
	}
	if c.LastUsed != nil {
		v.LastUsed = c.LastUsed.Format(time.RFC3339)
	}
	return v
}

// pinView deliberately withholds the gesture sequence.
type pinView struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	AreaID      string `json:"area_id"`
	BadgeID     string `json:"badge_id"`
	State       string `json:"state"`
	FailCount   int    `json:"fail_count"`
	MaxAttempts int    `json:"max_attempts"`
}

func toPINView(p domain.PIN) pinView {
	return pinView{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		AreaID:      p.AreaID,
		BadgeID:     p.BadgeID,
		State:       string(p.State),
		FailCount:   p.FailCount,
		MaxAttempts: p.MaxAttempts,
	}
}

// patternView withholds the enrolled sequence, exposing only its shape.
type patternView struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Length       int    `json:"length"`
	HasIntervals bool   `json:"has_intervals"`
	CapturedAt   string `json:"captured_at"`
}

func toPatternView(p domain.Pattern) patternView {
	return patternView{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Length:       len(p.Gestures),
		HasIntervals: p.Intervals != nil,
		CapturedAt:   p.CapturedAt.Format(time.RFC3339),
	}
}

type auditView struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"`
	OwnerID      string   `json:"owner_id"`
	AreaID       string   `json:"area_id"`
	Method       string   `json:"method"`
	Factors      []string `json:"factors"`
	Result       string   `json:"result"`
	Reason       string   `json:"reason,omitempty"`
	PermissionID string   `json:"permission_id,omitempty"`
}

func toAuditView(r domain.AuditRecord) auditView {
	factors := make([]string, len(r.Factors))
	for i, f := range r.Factors {
		factors[i] = string(f)
	}
	return auditView{
		ID:           r.ID,
		Timestamp:    r.Timestamp.Format(time.RFC3339Nano),
		OwnerID:      r.OwnerID,
		AreaID:       r.AreaID,
		Method:       string(r.Method),
		Factors:      factors,
		Result:       string(r.Result),
		Reason:       r.Reason,
		PermissionID: r.PermissionID,
	}
}

type accessView struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	AreaID        string `json:"area_id"`
	EnteredAt     string `json:"entered_at"`
	AuditRecordID string `json:"audit_record_id"`
	ExitedAt      string `json:"exited_at,omitempty"`
}

func toAccessView(r domain.AccessRecord) accessView {
	v := accessView{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AreaID:        r.AreaID,
		EnteredAt:     r.EnteredAt.Format(time.RFC3339Nano),
		AuditRecordID: r.AuditRecordID,
	}
	if r.ExitedAt != nil {
		v.ExitedAt = r.ExitedAt.Format(time.RFC3339Nano)
	}
	return v
}
