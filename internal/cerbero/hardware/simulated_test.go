package hardware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

func TestScriptedSensor_ReplaysInOrder(t *testing.T) {
	s := NewScriptedSensor(
		Capture{Codes: []int{1, 2, 3, 4}},
		Capture{Codes: []int{5, 6}},
	)

	codes, _, err := s.Capture(context.Background(), 4, NoCloseGesture, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, codes)

	codes, _, err = s.Capture(context.Background(), 4, NoCloseGesture, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, codes, "short captures are returned as-is")
}

func TestScriptedSensor_TruncatesToCount(t *testing.T) {
	s := NewScriptedSensor(Capture{
		Codes:     []int{1, 2, 3, 4, 5, 6},
		Intervals: []float64{0.1, 0.2, 0.3, 0.4, 0.5},
	})

	codes, intervals, err := s.Capture(context.Background(), 4, NoCloseGesture, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, codes)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, intervals, "intervals follow the truncation")
}

func TestScriptedSensor_CloseGestureCutsSequence(t *testing.T) {
	s := NewScriptedSensor(Capture{Codes: []int{1, 2, 31, 3, 4}})

	codes, _, err := s.Capture(context.Background(), 5, 31, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, codes)

	// Disabled close gesture leaves the sequence intact.
	s.Push([]int{1, 2, 31, 3, 4}, nil)
	codes, _, err = s.Capture(context.Background(), 5, NoCloseGesture, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 31, 3, 4}, codes)
}

func TestScriptedSensor_ExhaustedQueueIsHardwareFault(t *testing.T) {
	s := NewScriptedSensor()
	_, _, err := s.Capture(context.Background(), 4, NoCloseGesture, time.Minute)
	var hw *domain.HardwareError
	require.ErrorAs(t, err, &hw)
	assert.Equal(t, "sensor", hw.Device)
}

func TestScriptedSensor_RejectsNonPositiveCount(t *testing.T) {
	s := NewScriptedSensor(Capture{Codes: []int{1}})
	_, _, err := s.Capture(context.Background(), 0, NoCloseGesture, time.Minute)
	var val *domain.ValidationError
	require.ErrorAs(t, err, &val)
}

func TestRecordingActuator(t *testing.T) {
	a := &RecordingActuator{}
	require.NoError(t, a.SignalFailure())
	require.NoError(t, a.SignalSuccess())
	require.NoError(t, a.OpenDoor())
	assert.Equal(t, []string{"failure", "success", "open"}, a.Recorded())

	a.Err = assert.AnError
	assert.Error(t, a.OpenDoor())
}
