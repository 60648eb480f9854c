package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/hardware"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// OrchestratorConfig tunes the access pipeline.  All behavior that the
// embedding used to pull from ambient environment state is passed here
// explicitly.  Zero values select the documented defaults.
type OrchestratorConfig struct {
	// EnableGestureClose lets the configured close gesture abort a
	// capture during the authentication flow.  Off by default so a hand
	// withdrawn mid-capture does not cut the sequence short; enrollment
	// front ends always honor the close gesture, this flow must opt in.
	EnableGestureClose bool
	GestureCloseCode   int

	// PINTimeout bounds the 4-gesture PIN capture.  Default 60s.
	PINTimeout time.Duration

	// PatternTimeout bounds the pattern capture.  Default 120s.
	PatternTimeout time.Duration

	// PatternLength is how many gestures the pattern capture requests.
	// Default 6.
	PatternLength int
}

func (c OrchestratorConfig) withDefaults() OrchestratorConfig {
	if c.PINTimeout <= 0 {
		c.PINTimeout = 60 * time.Second
	}
	if c.PatternTimeout <= 0 {
		c.PatternTimeout = 120 * time.Second
	}
	if c.PatternLength <= 0 {
		c.PatternLength = 6
	}
	return c
}

// AccessService drives one access attempt through the fixed pipeline:
// authorization, RFID, PIN, pattern, actuation, audit, access record.
// Factor order is not configurable and no factor is retried within one
// attempt; a retry is an entirely new RequestAccess call with its own
// lockout consequences.
type AccessService struct {
	authz    *AuthorizationService
	authn    *AuthenticationService
	audit    *AuditService
	accesses store.AccessStore
	cfg      OrchestratorConfig
	logger   *zap.Logger
}

func NewAccessService(authz *AuthorizationService, authn *AuthenticationService, audit *AuditService, accesses store.AccessStore, cfg OrchestratorConfig, logger *zap.Logger) *AccessService {
	return &AccessService{
		authz:    authz,
		authn:    authn,
		audit:    audit,
		accesses: accesses,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// RequestAccess runs the full pipeline for one attempt.  A zero now uses
// the wall clock.  On success it returns the created access record and
// its SUCCESS audit record; on an authentication, authorization, or
// hardware failure it writes a FAILURE audit record (retaining the
// factors that had already passed) and returns the original error.
// Validation errors and an unknown area propagate unaudited.
func (s *AccessService) RequestAccess(ctx context.Context, ownerID, areaID, rfidSerial string, sensor hardware.GestureSensor, actuator hardware.Actuator, now time.Time) (domain.AccessRecord, domain.AuditRecord, error) {
	if now.IsZero() {
		now = time.Now()
	}

	closeGesture := hardware.NoCloseGesture
	if s.cfg.EnableGestureClose {
		closeGesture = s.cfg.GestureCloseCode
	}

	var factors []domain.Factor

	// 1) Authorization gate.  No factors attempted yet.
	perm, err := s.authz.CheckAccess(ctx, ownerID, areaID, now)
	if err != nil {
		return s.deny(ctx, ownerID, areaID, "", factors, actuator, now, err)
	}

	// 2) RFID.
	if err := s.authn.CheckRFID(ctx, rfidSerial, ownerID, now); err != nil {
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	factors = append(factors, domain.FactorRFID)

	// 3) PIN capture + check.
	pinSeq, _, err := sensor.Capture(ctx, domain.PINLength, closeGesture, s.cfg.PINTimeout)
	if err != nil {
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	if len(pinSeq) != domain.PINLength {
		err = domain.Unauthenticatedf("PIN incomplete: got %d/%d", len(pinSeq), domain.PINLength)
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	if err := s.authn.CheckPIN(ctx, ownerID, areaID, pinSeq); err != nil {
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	factors = append(factors, domain.FactorPIN)

	// 4) Pattern capture + check.
	patSeq, timings, err := sensor.Capture(ctx, s.cfg.PatternLength, closeGesture, s.cfg.PatternTimeout)
	if err != nil {
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	if len(patSeq) != s.cfg.PatternLength {
		err = domain.Unauthenticatedf("pattern incomplete: got %d/%d", len(patSeq), s.cfg.PatternLength)
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	if err := s.authn.CheckPattern(ctx, ownerID, patSeq, timings); err != nil {
		return s.deny(ctx, ownerID, areaID, perm.ID, factors, actuator, now, err)
	}
	factors = append(factors, domain.FactorPattern)

	// 5) Grant: actuate, audit, record the entry.
	s.signal(actuator.SignalSuccess)
	s.signal(actuator.OpenDoor)

	audit, err := s.audit.Record(ctx, AuditEntry{
		OwnerID:      ownerID,
		AreaID:       areaID,
		Method:       domain.FactorRFID,
		Factors:      factors,
		Result:       domain.ResultSuccess,
		PermissionID: perm.ID,
		Timestamp:    now,
	})
	if err != nil {
		return domain.AccessRecord{}, domain.AuditRecord{}, err
	}

	access := domain.AccessRecord{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		AreaID:        areaID,
		EnteredAt:     now,
		AuditRecordID: audit.ID,
	}
	if err := s.accesses.Append(ctx, access); err != nil {
		return domain.AccessRecord{}, domain.AuditRecord{}, err
	}
	return access, audit, nil
}

// deny classifies the failure.  Authentication, authorization, and
// hardware errors are audited (hardware with a distinguishing reason
// prefix) and then returned; anything else — validation errors, an
// unknown area, store faults — propagates untouched because it is not an
// access attempt outcome.
func (s *AccessService) deny(ctx context.Context, ownerID, areaID, permissionID string, factors []domain.Factor, actuator hardware.Actuator, now time.Time, cause error) (domain.AccessRecord, domain.AuditRecord, error) {
	var (
		authnErr *domain.AuthenticationError
		authzErr *domain.AuthorizationError
		hwErr    *domain.HardwareError
	)

	reason := ""
	switch {
	case errors.As(cause, &authnErr), errors.As(cause, &authzErr):
		reason = cause.Error()
	case errors.As(cause, &hwErr):
		reason = "hardware failure: " + cause.Error()
	default:
		return domain.AccessRecord{}, domain.AuditRecord{}, cause
	}

	s.signal(actuator.SignalFailure)

	if _, err := s.audit.Record(ctx, AuditEntry{
		OwnerID:      ownerID,
		AreaID:       areaID,
		Method:       domain.FactorRFID,
		Factors:      factors,
		Result:       domain.ResultFailure,
		Reason:       reason,
		PermissionID: permissionID,
		Timestamp:    now,
	}); err != nil {
		s.logger.Error("audit write failed on denied attempt", zap.Error(err))
	}

	return domain.AccessRecord{}, domain.AuditRecord{}, cause
}

// signal fires an actuator call and discards its error: a dead LED
// must never change the logical outcome of an attempt.
func (s *AccessService) signal(fn func() error) {
	if err := fn(); err != nil {
		s.logger.Warn("actuator signal failed", zap.Error(err))
	}
}
