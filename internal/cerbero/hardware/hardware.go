// Package hardware defines the capability interfaces for the gesture
// sensor and the door actuator, plus simulated implementations.  The
// real camera/hand-landmark capture stack and the LED/door driver live
// outside this repository; everything here is the boundary the access
// pipeline talks to.
package hardware

import (
	"context"
	"time"
)

// NoCloseGesture disables early-abort on a close gesture during capture.
const NoCloseGesture = -1

// GestureSensor captures a sequence of gesture codes (0-31, a 5-bit
// hand-shape bitmask).  The returned sequence may be shorter than count
// on timeout or when closeGesture (>= 0) was shown; a short result is
// never an error.  Intervals, if non-nil, hold the seconds between
// consecutive captured gestures and have length len(codes)-1.
type GestureSensor interface {
	Capture(ctx context.Context, count int, closeGesture int, timeout time.Duration) (codes []int, intervals []float64, err error)
}

// Actuator renders access outcomes on the physical side: LEDs, the door
// lock, an alarm.  All methods are fire-and-forget from the pipeline's
// perspective; returned errors are typed so malfunctions are observable
// but the orchestrator swallows them.
type Actuator interface {
	SignalSuccess() error
	SignalFailure() error
	OpenDoor() error
}
