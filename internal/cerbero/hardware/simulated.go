package hardware

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

// Capture is one scripted sensor reading.
type Capture struct {
	Codes     []int
	Intervals []float64
}

// ScriptedSensor replays queued captures in order.  Useful when no
// camera is attached and for tests; a request-scoped instance also backs
// the HTTP access endpoint, where the operator supplies the sequences.
type ScriptedSensor struct {
	mu    sync.Mutex
	queue []Capture
}

func NewScriptedSensor(captures ...Capture) *ScriptedSensor {
	return &ScriptedSensor{queue: captures}
}

// Push appends a capture to the replay queue.
func (s *ScriptedSensor) Push(codes []int, intervals []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, Capture{Codes: codes, Intervals: intervals})
}

// Capture pops the next scripted reading.  The result is cut at the
// first occurrence of closeGesture (when enabled) and then truncated to
// count, mimicking a live capture that ended early.  An exhausted queue
// is a hardware fault, not a timeout.
func (s *ScriptedSensor) Capture(_ context.Context, count int, closeGesture int, _ time.Duration) ([]int, []float64, error) {
	if count <= 0 {
		return nil, nil, domain.Invalidf("capture count must be positive, got %d", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, nil, &domain.HardwareError{Device: "sensor", Err: errors.New("no scripted captures left")}
	}
	next := s.queue[0]
	s.queue = s.queue[1:]

	codes := append([]int(nil), next.Codes...)
	if closeGesture >= 0 {
		for i, g := range codes {
			if g == closeGesture {
				codes = codes[:i]
				break
			}
		}
	}
	if len(codes) > count {
		codes = codes[:count]
	}

	var intervals []float64
	if next.Intervals != nil && len(codes) > 0 {
		intervals = append([]float64(nil), next.Intervals...)
		if len(intervals) > len(codes)-1 {
			intervals = intervals[:len(codes)-1]
		}
	}
	return codes, intervals, nil
}

// LogActuator renders outcomes to the process log.  Stands in for the
// serial LED/door driver in dev deployments.
type LogActuator struct {
	Logger *zap.Logger
}

func (a *LogActuator) SignalSuccess() error {
	a.Logger.Info("actuator: success signal (green)")
	return nil
}

func (a *LogActuator) SignalFailure() error {
	a.Logger.Info("actuator: failure signal (red)")
	return nil
}

func (a *LogActuator) OpenDoor() error {
	a.Logger.Info("actuator: door open")
	return nil
}

// RecordingActuator captures the order of signals it received.
// Test-only helper.
type RecordingActuator struct {
	mu      sync.Mutex
	Signals []string
	// Err, when set, is returned from every method so tests can verify
	// actuator faults never surface from the pipeline.
	Err error
}

func (a *RecordingActuator) note(s string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Signals = append(a.Signals, s)
	return a.Err
}

func (a *RecordingActuator) SignalSuccess() error { return a.note("success") }
func (a *RecordingActuator) SignalFailure() error { return a.note("failure") }
func (a *RecordingActuator) OpenDoor() error      { return a.note("open") }

// Recorded returns a copy of the signal log.
func (a *RecordingActuator) Recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.Signals))
	copy(out, a.Signals)
	return out
}
