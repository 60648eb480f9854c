package domain

import "time"

// Pattern is a longer gestural behavioral enrollment, one per owner.
// The pattern ID is globally unique across owners.  Intervals, when
// present, hold the seconds elapsed between consecutive gestures.
type Pattern struct {
	ID         string
	OwnerID    string
	Gestures   []int
	CapturedAt time.Time
	Intervals  []float64 // nil, or length len(Gestures)-1
}

// NewPattern validates identifiers, the gesture range, and the interval
// array shape.
func NewPattern(id, ownerID string, gestures []int, capturedAt time.Time, intervals []float64) (Pattern, error) {
	var p Pattern
	var err error

	if p.ID, err = requireNonEmpty(id, "pattern ID"); err != nil {
		return Pattern{}, err
	}
	if p.OwnerID, err = requireNonEmpty(ownerID, "owner ID"); err != nil {
		return Pattern{}, err
	}
	if len(gestures) == 0 {
		return Pattern{}, Invalidf("pattern gesture sequence must not be empty")
	}
	if err = ValidateGestures(gestures); err != nil {
		return Pattern{}, err
	}
	if intervals != nil {
		if len(intervals) != len(gestures)-1 {
			return Pattern{}, Invalidf("pattern intervals must have length %d, got %d",
				len(gestures)-1, len(intervals))
		}
		for i, v := range intervals {
			if v < 0 {
				return Pattern{}, Invalidf("pattern interval %d is negative", i)
			}
		}
		p.Intervals = append([]float64(nil), intervals...)
	}
	p.Gestures = append([]int(nil), gestures...)
	p.CapturedAt = capturedAt
	return p, nil
}

// Similarity scores captured against the enrolled sequence: positional
// matches over the longer of the two lengths, so a length mismatch is
// penalized by the denominator rather than special-cased.
func (p Pattern) Similarity(captured []int) float64 {
	n := len(p.Gestures)
	if len(captured) > n {
		n = len(captured)
	}
	if n == 0 {
		return 0
	}
	matches := 0
	for i := 0; i < len(p.Gestures) && i < len(captured); i++ {
		if p.Gestures[i] == captured[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}
