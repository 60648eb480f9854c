package domain

// Student is an enrolled person who may be granted area access.
// Keyed by national ID.
type Student struct {
	NationalID string
	FirstNames string
	LastNames  string
	Email      string
	BadgeID    string
	Program    string
}

// NewStudent validates every field and returns a normalized Student.
func NewStudent(nationalID, firstNames, lastNames, email, badgeID, program string) (Student, error) {
	var s Student
	var err error

	if s.NationalID, err = ValidateNationalID(nationalID); err != nil {
		return Student{}, err
	}
	if s.FirstNames, err = ValidateName(firstNames, "first names"); err != nil {
		return Student{}, err
	}
	if s.LastNames, err = ValidateName(lastNames, "last names"); err != nil {
		return Student{}, err
	}
	if s.Email, err = ValidateEmail(email); err != nil {
		return Student{}, err
	}
	if s.BadgeID, err = ValidateBadgeID(badgeID); err != nil {
		return Student{}, err
	}
	if s.Program, err = requireNonEmpty(program, "program"); err != nil {
		return Student{}, err
	}
	return s, nil
}
