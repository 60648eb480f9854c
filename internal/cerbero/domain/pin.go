package domain

// DefaultPINMaxAttempts is the lockout threshold applied to a PIN when
// none is specified at enrollment.
const DefaultPINMaxAttempts = 3

// PIN is a short gestural code bound to one (owner, area) pair.
// The PIN ID is globally unique across all pairs.
type PIN struct {
	ID       string
	OwnerID  string
	AreaID   string
	BadgeID  string
	Gestures []int // exactly PINLength codes
	State    PINState
	FailCount   int
	MaxAttempts int
}

// NewPIN validates identifiers, the fixed sequence length, and the
// gesture range.  maxAttempts <= 0 selects the default threshold.
func NewPIN(id, ownerID, areaID, badgeID string, gestures []int, maxAttempts int) (PIN, error) {
	var p PIN
	var err error

	if p.ID, err = requireNonEmpty(id, "PIN ID"); err != nil {
		return PIN{}, err
	}
	if p.OwnerID, err = requireNonEmpty(ownerID, "owner ID"); err != nil {
		return PIN{}, err
	}
	if p.AreaID, err = requireNonEmpty(areaID, "area ID"); err != nil {
		return PIN{}, err
	}
	if p.BadgeID, err = requireNonEmpty(badgeID, "badge ID"); err != nil {
		return PIN{}, err
	}
	if len(gestures) != PINLength {
		return PIN{}, Invalidf("PIN must be exactly %d gestures, got %d", PINLength, len(gestures))
	}
	if err = ValidateGestures(gestures); err != nil {
		return PIN{}, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultPINMaxAttempts
	}
	if maxAttempts > 10 {
		return PIN{}, Invalidf("PIN max attempts must be 1-10, got %d", maxAttempts)
	}
	p.Gestures = append([]int(nil), gestures...)
	p.State = PINActive
	p.MaxAttempts = maxAttempts
	return p, nil
}
