package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/hardware"
	"github.com/dvillamarin/cerbero/internal/cerbero/service"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// maxRequestBody caps request body size.  The largest payload (a pattern
// enrollment with intervals) stays well under 4 KiB.
const maxRequestBody = 4096

type Dependencies struct {
	Logger *zap.Logger
	Addr   string

	AccessService *service.AccessService

	Students    store.StudentStore
	Areas       store.AreaStore
	Permissions store.PermissionStore
	Credentials store.CredentialStore
	PINs        store.PINStore
	Patterns    store.PatternStore
	Audits      store.AuditStore
	Accesses    store.AccessStore
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	validate   *validator.Validate

	access      *service.AccessService
	students    store.StudentStore
	areas       store.AreaStore
	permissions store.PermissionStore
	credentials store.CredentialStore
	pins        store.PINStore
	patterns    store.PatternStore
	audits      store.AuditStore
	accesses    store.AccessStore
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:      d.Logger,
		mux:         mux,
		validate:    validator.New(),
		access:      d.AccessService,
		students:    d.Students,
		areas:       d.Areas,
		permissions: d.Permissions,
		credentials: d.Credentials,
		pins:        d.PINs,
		patterns:    d.Patterns,
		audits:      d.Audits,
		accesses:    d.Accesses,
	}

	mux.HandleFunc("POST /v1/students", s.handleCreateStudent)
	mux.HandleFunc("GET /v1/students", s.handleListStudents)
	mux.HandleFunc("POST /v1/areas", s.handleCreateArea)
	mux.HandleFunc("GET /v1/areas", s.handleListAreas)
	mux.HandleFunc("POST /v1/permissions", s.handleCreatePermission)
	mux.HandleFunc("GET /v1/permissions", s.handleListPermissions)
	mux.HandleFunc("POST /v1/credentials", s.handleCreateCredential)
	mux.HandleFunc("GET /v1/credentials", s.handleListCredentials)
	mux.HandleFunc("POST /v1/pins", s.handleCreatePIN)
	mux.HandleFunc("GET /v1/pins", s.handleListPINs)
	mux.HandleFunc("POST /v1/patterns", s.handleEnrollPattern)
	mux.HandleFunc("GET /v1/patterns", s.handleListPatterns)

	mux.HandleFunc("POST /v1/access_request", s.handleAccessRequest)
	mux.HandleFunc("GET /v1/audit", s.handleListAudit)
	mux.HandleFunc("GET /v1/accesses", s.handleListAccesses)
	mux.HandleFunc("POST /v1/accesses/{id}/exit", s.handleCloseExit)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           loggingMiddleware(d.Logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// accessRequest carries one full attempt.  The operator front end
// supplies the captured sequences; the server replays them through a
// request-scoped sensor so the pipeline sees the same capture contract
// a live camera would provide.
type accessRequest struct {
	OwnerID          string    `json:"owner_id" validate:"required"`
	AreaID           string    `json:"area_id" validate:"required"`
	RFIDSerial       string    `json:"rfid_serial" validate:"required"`
	PINCapture       []int     `json:"pin_capture"`
	PatternCapture   []int     `json:"pattern_capture"`
	PatternIntervals []float64 `json:"pattern_intervals,omitempty"`
}

type accessResponse struct {
	Granted bool         `json:"granted"`
	Reason  string       `json:"reason,omitempty"`
	Access  *accessView  `json:"access,omitempty"`
	Audit   *auditView   `json:"audit,omitempty"`
}

func (s *Server) handleAccessRequest(w http.ResponseWriter, r *http.Request) {
	var req accessRequest
	if !s.decode(w, r, &req) {
		return
	}

	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: req.PINCapture},
		hardware.Capture{Codes: req.PatternCapture, Intervals: req.PatternIntervals},
	)
	actuator := &hardware.LogActuator{Logger: s.logger}

	access, audit, err := s.access.RequestAccess(r.Context(),
		req.OwnerID, req.AreaID, req.RFIDSerial, sensor, actuator, time.Time{})
	if err != nil {
		var authnErr *domain.AuthenticationError
		var authzErr *domain.AuthorizationError
		if errors.As(err, &authnErr) || errors.As(err, &authzErr) {
			writeJSON(w, http.StatusForbidden, accessResponse{Granted: false, Reason: err.Error()})
			return
		}
		s.writeDomainError(w, r, err)
		return
	}

	av := toAccessView(access)
	dv := toAuditView(audit)
	writeJSON(w, http.StatusOK, accessResponse{Granted: true, Access: &av, Audit: &dv})
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	var (
		recs []domain.AuditRecord
		err  error
	)
	switch {
	case r.URL.Query().Get("owner") != "":
		recs, err = s.audits.ListByOwner(r.Context(), r.URL.Query().Get("owner"))
	case r.URL.Query().Get("area") != "":
		recs, err = s.audits.ListByArea(r.Context(), r.URL.Query().Get("area"))
	default:
		recs, err = s.audits.List(r.Context())
	}
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]auditView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toAuditView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListAccesses(w http.ResponseWriter, r *http.Request) {
	recs, err := s.accesses.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]accessView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toAccessView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCloseExit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.accesses.CloseExit(r.Context(), id, time.Now()); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decode reads, size-limits, and validates a JSON request body.
// Writes the error response itself and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return false
	}
	return true
}

// writeDomainError maps the domain/store error taxonomy onto HTTP.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr   *domain.ValidationError
		authnErr *domain.AuthenticationError
		authzErr *domain.AuthorizationError
		hwErr    *domain.HardwareError
		nfErr    *store.NotFoundError
		cfErr    *store.ConflictError
	)
	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.As(err, &nfErr):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &cfErr):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.As(err, &authnErr):
		writeError(w, http.StatusForbidden, "authentication_failed", err.Error())
	case errors.As(err, &authzErr):
		writeError(w, http.StatusForbidden, "authorization_failed", err.Error())
	case errors.As(err, &hwErr):
		writeError(w, http.StatusBadGateway, "hardware_failure", err.Error())
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}
