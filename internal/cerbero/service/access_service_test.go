package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/hardware"
	"github.com/dvillamarin/cerbero/internal/cerbero/service"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
	"github.com/dvillamarin/cerbero/internal/cerbero/store/memory"
)

type pipelineFixture struct {
	students    *memory.StudentStore
	areas       *memory.AreaStore
	permissions *memory.PermissionStore
	credentials *memory.CredentialStore
	pins        *memory.PINStore
	patterns    *memory.PatternStore
	audits      *memory.AuditStore
	accesses    *memory.AccessStore
	svc         *service.AccessService
}

// newPipelineFixture builds the full orchestrator over in-memory stores,
// seeded with one student who holds a credential, a PIN, a pattern, and
// a current permission for LAB-01 (open 07:00-20:00).
func newPipelineFixture(t *testing.T, orch service.OrchestratorConfig, auth service.AuthConfig) *pipelineFixture {
	t.Helper()
	ctx := context.Background()

	f := &pipelineFixture{
		students:    memory.NewStudentStore(),
		areas:       memory.NewAreaStore(),
		permissions: memory.NewPermissionStore(),
		credentials: memory.NewCredentialStore(),
		pins:        memory.NewPINStore(),
		patterns:    memory.NewPatternStore(),
		audits:      memory.NewAuditStore(),
		accesses:    memory.NewAccessStore(),
	}

	st, err := domain.NewStudent(testOwner, "Ana María", "Quishpe Lema",
		"ana.quishpe@uni.edu.ec", "A00123456", "Mechatronics")
	if err != nil {
		t.Fatalf("NewStudent: %v", err)
	}
	if err := f.students.Save(ctx, st); err != nil {
		t.Fatalf("Save student: %v", err)
	}

	area, err := domain.NewArea(testArea, "Robotics Lab", domain.AreaLaboratory, "Building C",
		domain.TimeOfDay{Hour: 7}, domain.TimeOfDay{Hour: 20})
	if err != nil {
		t.Fatalf("NewArea: %v", err)
	}
	if err := f.areas.Save(ctx, area); err != nil {
		t.Fatalf("Save area: %v", err)
	}

	perm, err := domain.NewPermission("perm-1", testOwner, testArea, domain.PermissionActive, nil, nil)
	if err != nil {
		t.Fatalf("NewPermission: %v", err)
	}
	if err := f.permissions.Save(ctx, perm); err != nil {
		t.Fatalf("Save permission: %v", err)
	}

	cred, err := domain.NewCredential("RFID-0001", testOwner,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewCredential: %v", err)
	}
	if err := f.credentials.Save(ctx, cred); err != nil {
		t.Fatalf("Save credential: %v", err)
	}

	pin, err := domain.NewPIN("pin-1", testOwner, testArea, "A00123456", []int{1, 3, 7, 15}, 0)
	if err != nil {
		t.Fatalf("NewPIN: %v", err)
	}
	if err := f.pins.Save(ctx, pin); err != nil {
		t.Fatalf("Save PIN: %v", err)
	}

	pat, err := domain.NewPattern("pat-1", testOwner, []int{1, 1, 2, 3, 5, 8}, time.Now(), nil)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	if err := f.patterns.Save(ctx, pat); err != nil {
		t.Fatalf("Save pattern: %v", err)
	}

	authz := service.NewAuthorizationService(f.areas, f.permissions)
	authn := service.NewAuthenticationService(f.credentials, f.pins, f.patterns, auth)
	audit := service.NewAuditService(f.audits)
	f.svc = service.NewAccessService(authz, authn, audit, f.accesses, orch, zap.NewNop())
	return f
}

var duringHours = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func TestRequestAccess_FullPipelineGrant(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: []int{1, 3, 7, 15}},
		hardware.Capture{Codes: []int{1, 1, 2, 3, 5, 8}},
	)
	actuator := &hardware.RecordingActuator{}

	access, audit, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor, actuator, duringHours)
	if err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}

	if audit.Result != domain.ResultSuccess {
		t.Errorf("expected SUCCESS audit, got %s", audit.Result)
	}
	wantFactors := []domain.Factor{domain.FactorRFID, domain.FactorPIN, domain.FactorPattern}
	if !reflect.DeepEqual(audit.Factors, wantFactors) {
		t.Errorf("expected factors %v, got %v", wantFactors, audit.Factors)
	}
	if audit.PermissionID != "perm-1" {
		t.Errorf("expected permission perm-1 on audit, got %q", audit.PermissionID)
	}

	if access.ID == "" || access.AuditRecordID != audit.ID {
		t.Errorf("expected access record linked to audit, got %+v", access)
	}
	if !access.EnteredAt.Equal(duringHours) {
		t.Errorf("expected EnteredAt=%v, got %v", duringHours, access.EnteredAt)
	}

	want := []string{"success", "open"}
	if got := actuator.Recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected actuator signals %v, got %v", want, got)
	}

	records, _ := f.accesses.List(ctx)
	if len(records) != 1 {
		t.Fatalf("expected 1 access record, got %d", len(records))
	}
}

func TestRequestAccess_AuthorizationDeniedIsAudited(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor() // must never be consulted
	actuator := &hardware.RecordingActuator{}

	afterHours := time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC)
	_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor, actuator, afterHours)
	var authz *domain.AuthorizationError
	if !errors.As(err, &authz) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}

	audits, _ := f.audits.List(ctx)
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audits))
	}
	rec := audits[0]
	if rec.Result != domain.ResultFailure {
		t.Errorf("expected FAILURE, got %s", rec.Result)
	}
	if len(rec.Factors) != 0 {
		t.Errorf("no factor passed before the gate, got %v", rec.Factors)
	}
	if rec.Reason != "access denied: outside permitted hours" {
		t.Errorf("unexpected reason %q", rec.Reason)
	}

	if got := actuator.Recorded(); !reflect.DeepEqual(got, []string{"failure"}) {
		t.Errorf("expected a failure signal, got %v", got)
	}
	if records, _ := f.accesses.List(ctx); len(records) != 0 {
		t.Errorf("denied attempt must not create an access record, got %d", len(records))
	}
}

func TestRequestAccess_PINTimeoutShortCapture(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: []int{1, 3}}, // capture ended after 2 of 4
	)
	actuator := &hardware.RecordingActuator{}

	_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor, actuator, duringHours)
	var authn *domain.AuthenticationError
	if !errors.As(err, &authn) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if authn.Msg != "PIN incomplete: got 2/4" {
		t.Errorf("unexpected message %q", authn.Msg)
	}

	audits, _ := f.audits.List(ctx)
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audits))
	}
	if want := []domain.Factor{domain.FactorRFID}; !reflect.DeepEqual(audits[0].Factors, want) {
		t.Errorf("expected factors %v (RFID had passed), got %v", want, audits[0].Factors)
	}
	if records, _ := f.accesses.List(ctx); len(records) != 0 {
		t.Errorf("expected no access record, got %d", len(records))
	}
}

func TestRequestAccess_PatternIncomplete(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: []int{1, 3, 7, 15}},
		hardware.Capture{Codes: []int{1, 1, 2}}, // 3 of 6
	)

	_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor,
		&hardware.RecordingActuator{}, duringHours)
	var authn *domain.AuthenticationError
	if !errors.As(err, &authn) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if authn.Msg != "pattern incomplete: got 3/6" {
		t.Errorf("unexpected message %q", authn.Msg)
	}

	audits, _ := f.audits.List(ctx)
	want := []domain.Factor{domain.FactorRFID, domain.FactorPIN}
	if len(audits) != 1 || !reflect.DeepEqual(audits[0].Factors, want) {
		t.Fatalf("expected one FAILURE audit with factors %v, got %+v", want, audits)
	}
}

func TestRequestAccess_SensorFaultAuditedWithHardwarePrefix(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor() // exhausted immediately

	_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor,
		&hardware.RecordingActuator{}, duringHours)
	var hw *domain.HardwareError
	if !errors.As(err, &hw) {
		t.Fatalf("expected HardwareError, got %v", err)
	}

	audits, _ := f.audits.List(ctx)
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audits))
	}
	if audits[0].Reason != "hardware failure: sensor: no scripted captures left" {
		t.Errorf("unexpected reason %q", audits[0].Reason)
	}
}

func TestRequestAccess_ActuatorFaultNeverChangesOutcome(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: []int{1, 3, 7, 15}},
		hardware.Capture{Codes: []int{1, 1, 2, 3, 5, 8}},
	)
	actuator := &hardware.RecordingActuator{
		Err: &domain.HardwareError{Device: "actuator", Err: errors.New("led driver offline")},
	}

	access, audit, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor, actuator, duringHours)
	if err != nil {
		t.Fatalf("actuator fault must not fail a granted attempt: %v", err)
	}
	if audit.Result != domain.ResultSuccess || access.ID == "" {
		t.Errorf("expected full grant despite actuator fault, got audit=%+v access=%+v", audit, access)
	}
}

func TestRequestAccess_UnknownAreaPropagatesUnaudited(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})
	actuator := &hardware.RecordingActuator{}

	_, _, err := f.svc.RequestAccess(ctx, testOwner, "NOPE", "RFID-0001",
		hardware.NewScriptedSensor(), actuator, duringHours)
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if audits, _ := f.audits.List(ctx); len(audits) != 0 {
		t.Errorf("operator misconfiguration is not an attempt; got %d audits", len(audits))
	}
	if got := actuator.Recorded(); len(got) != 0 {
		t.Errorf("expected no actuator signal, got %v", got)
	}
}

func TestRequestAccess_WrongPINCountsTowardLockout(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{}, service.AuthConfig{})

	// Three attempts with a wrong PIN block the PIN for this pair.
	for i := 0; i < 3; i++ {
		sensor := hardware.NewScriptedSensor(hardware.Capture{Codes: []int{0, 0, 0, 0}})
		_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor,
			&hardware.RecordingActuator{}, duringHours)
		if err == nil {
			t.Fatalf("attempt %d: expected failure", i+1)
		}
	}

	p, err := f.pins.Get(ctx, testOwner, testArea)
	if err != nil {
		t.Fatalf("Get PIN: %v", err)
	}
	if p.State != domain.PINBlocked {
		t.Fatalf("expected PIN blocked after 3 wrong attempts, got %s", p.State)
	}

	// The correct PIN now fails too, and each attempt left an audit trail.
	sensor := hardware.NewScriptedSensor(hardware.Capture{Codes: []int{1, 3, 7, 15}})
	_, _, err = f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor,
		&hardware.RecordingActuator{}, duringHours)
	var authn *domain.AuthenticationError
	if !errors.As(err, &authn) || authn.Msg != "PIN blocked" {
		t.Fatalf("expected \"PIN blocked\", got %v", err)
	}
	if audits, _ := f.audits.List(ctx); len(audits) != 4 {
		t.Errorf("expected 4 FAILURE audits, got %d", len(audits))
	}
}

func TestRequestAccess_GestureCloseCutsCapture(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, service.OrchestratorConfig{
		EnableGestureClose: true,
		GestureCloseCode:   31,
	}, service.AuthConfig{})
	sensor := hardware.NewScriptedSensor(
		hardware.Capture{Codes: []int{1, 3, 31, 7, 15}}, // close gesture at position 3
	)

	_, _, err := f.svc.RequestAccess(ctx, testOwner, testArea, "RFID-0001", sensor,
		&hardware.RecordingActuator{}, duringHours)
	var authn *domain.AuthenticationError
	if !errors.As(err, &authn) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if authn.Msg != "PIN incomplete: got 2/4" {
		t.Errorf("unexpected message %q", authn.Msg)
	}
}
