package domain

// A gesture code is a 5-bit hand-shape bitmask: bit 0 = thumb ... bit 4 =
// little finger.  Codes therefore range 0 (fist) to 31 (open hand).
const (
	MinGestureCode = 0
	MaxGestureCode = 31
)

// PINLength is the fixed length of an area PIN gesture sequence.
const PINLength = 4

// ValidateGestures checks every code in seq is within the 5-bit range.
func ValidateGestures(seq []int) error {
	for i, g := range seq {
		if g < MinGestureCode || g > MaxGestureCode {
			return Invalidf("gesture %d out of range at position %d (want %d-%d)",
				g, i, MinGestureCode, MaxGestureCode)
		}
	}
	return nil
}
