package httpapi

import (
	"net/http"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

// Management endpoints: enrollment and listing for every entity the
// access pipeline reads.  Creation goes through the domain constructors
// so every invariant is enforced at the boundary.

type studentRequest struct {
	NationalID string `json:"national_id" validate:"required"`
	FirstNames string `json:"first_names" validate:"required"`
	LastNames  string `json:"last_names" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	BadgeID    string `json:"badge_id" validate:"required"`
	Program    string `json:"program" validate:"required"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if !s.decode(w, r, &req) {
		return
	}
	student, err := domain.NewStudent(req.NationalID, req.FirstNames, req.LastNames,
		req.Email, req.BadgeID, req.Program)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.students.Save(r.Context(), student); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStudentView(student))
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]studentView, 0, len(students))
	for _, st := range students {
		out = append(out, toStudentView(st))
	}
	writeJSON(w, http.StatusOK, out)
}

type areaRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=LABORATORY STOREROOM SENSITIVE"`
	Location string `json:"location" validate:"required"`
	OpensAt  string `json:"opens_at" validate:"required"`
	ClosesAt string `json:"closes_at" validate:"required"`
}

func (s *Server) handleCreateArea(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if !s.decode(w, r, &req) {
		return
	}
	opensAt, err := domain.ParseTimeOfDay(req.OpensAt)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	closesAt, err := domain.ParseTimeOfDay(req.ClosesAt)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	area, err := domain.NewArea(req.ID, req.Name, domain.AreaKind(req.Kind),
		req.Location, opensAt, closesAt)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.areas.Save(r.Context(), area); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAreaView(area))
}

func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.areas.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]areaView, 0, len(areas))
	for _, a := range areas {
		out = append(out, toAreaView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

type permissionRequest struct {
	ID        string `json:"id" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required"`
	AreaID    string `json:"area_id" validate:"required"`
	State     string `json:"state" validate:"omitempty,oneof=ACTIVE SUSPENDED EXPIRED"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
}

func (s *Server) handleCreatePermission(w http.ResponseWriter, r *http.Request) {
	var req permissionRequest
	if !s.decode(w, r, &req) {
		return
	}
	state := domain.PermissionState(req.State)
	if req.State == "" {
		state = domain.PermissionActive
	}
	validFrom, ok := s.parseOptionalDate(w, r, req.ValidFrom, "valid_from")
	if !ok {
		return
	}
	validTo, ok := s.parseOptionalDate(w, r, req.ValidTo, "valid_to")
	if !ok {
		return
	}
	perm, err := domain.NewPermission(req.ID, req.OwnerID, req.AreaID, state, validFrom, validTo)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.permissions.Save(r.Context(), perm); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPermissionView(perm))
}

func (s *Server) handleListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := s.permissions.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]permissionView, 0, len(perms))
	for _, p := range perms {
		out = append(out, toPermissionView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type credentialRequest struct {
	Serial    string `json:"serial" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required"`
	IssuedOn  string `json:"issued_on" validate:"required"`
	ExpiresOn string `json:"expires_on" validate:"required"`
}

func (s *Server) handleCreateCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if !s.decode(w, r, &req) {
		return
	}
	issuedOn, err := time.Parse(time.DateOnly, req.IssuedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "issued_on malformed (want YYYY-MM-DD)")
		return
	}
	expiresOn, err := time.Parse(time.DateOnly, req.ExpiresOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "expires_on malformed (want YYYY-MM-DD)")
		return
	}
	cred, err := domain.NewCredential(req.Serial, req.OwnerID, issuedOn, expiresOn)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.credentials.Save(r.Context(), cred); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCredentialView(cred))
}

func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := s.credentials.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]credentialView, 0, len(creds))
	for _, c := range creds {
		out = append(out, toCredentialView(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type pinRequest struct {
	ID          string `json:"id" validate:"required"`
	OwnerID     string `json:"owner_id" validate:"required"`
	AreaID      string `json:"area_id" validate:"required"`
	BadgeID     string `json:"badge_id" validate:"required"`
	Gestures    []int  `json:"gestures" validate:"required,len=4"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
}

func (s *Server) handleCreatePIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if !s.decode(w, r, &req) {
		return
	}
	pin, err := domain.NewPIN(req.ID, req.OwnerID, req.AreaID, req.BadgeID,
		req.Gestures, req.MaxAttempts)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.pins.Save(r.Context(), pin); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPINView(pin))
}

func (s *Server) handleListPINs(w http.ResponseWriter, r *http.Request) {
	pins, err := s.pins.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]pinView, 0, len(pins))
	for _, p := range pins {
		out = append(out, toPINView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type patternRequest struct {
	ID        string    `json:"id" validate:"required"`
	OwnerID   string    `json:"owner_id" validate:"required"`
	Gestures  []int     `json:"gestures" validate:"required,min=1"`
	Intervals []float64 `json:"intervals,omitempty"`
}

func (s *Server) handleEnrollPattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if !s.decode(w, r, &req) {
		return
	}
	pattern, err := domain.NewPattern(req.ID, req.OwnerID, req.Gestures, time.Now(), req.Intervals)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.patterns.Save(r.Context(), pattern); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPatternView(pattern))
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.patterns.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]patternView, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, toPatternView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) parseOptionalDate(w http.ResponseWriter, _ *http.Request, v, field string) (*time.Time, bool) {
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", field+" malformed (want YYYY-MM-DD)")
		return nil, false
	}
	return &t, true
}
