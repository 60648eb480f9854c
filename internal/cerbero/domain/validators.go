package domain

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(
		`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+$`)
	reName  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ]+(?:[ '\-][A-Za-zÁÉÍÓÚÜÑáéíóúüñ]+)*$`)
	reBadge = regexp.MustCompile(`^A\d{8}$`)
)

func requireNonEmpty(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", Invalidf("%s must not be empty", field)
	}
	return value, nil
}

// ValidateEmail checks an institutional email address.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", Invalidf("institutional email is required")
	}
	if len(email) > 254 {
		return "", Invalidf("institutional email too long")
	}
	if !reEmail.MatchString(email) {
		return "", Invalidf("institutional email malformed (want user@domain)")
	}
	return email, nil
}

// ValidateName checks a personal name: letters plus space/'/- separators,
// 2 to 60 characters.
func ValidateName(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", Invalidf("%s is required", field)
	}
	if n := len([]rune(name)); n < 2 || n > 60 {
		return "", Invalidf("%s must be 2-60 characters", field)
	}
	if !reName.MatchString(name) {
		return "", Invalidf("%s must contain only letters and separators (space, '-', ')", field)
	}
	return name, nil
}

// ValidateBadgeID checks an external badge identifier: 'A' followed by
// eight digits.
func ValidateBadgeID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", Invalidf("badge ID is required")
	}
	if !reBadge.MatchString(id) {
		return "", Invalidf("badge ID malformed (want A########)")
	}
	return id, nil
}

// ValidateNationalID checks a 10-digit national identifier: digits 0-1 are
// a province code in 01-24, digit 2 must be 0-5 (natural person), and the
// tenth digit is a checksum over the first nine.
func ValidateNationalID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", Invalidf("national ID is required")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", Invalidf("national ID must contain only digits")
		}
	}
	if len(id) != 10 {
		return "", Invalidf("national ID must be exactly 10 digits")
	}
	province := int(id[0]-'0')*10 + int(id[1]-'0')
	if province < 1 || province > 24 {
		return "", Invalidf("national ID has an invalid province code")
	}
	if third := int(id[2] - '0'); third > 5 {
		return "", Invalidf("national ID third digit does not denote a natural person")
	}
	if !nationalIDChecksumOK(id) {
		return "", Invalidf("national ID check digit does not match")
	}
	return id, nil
}

// nationalIDChecksumOK applies alternating weights [2,1,2,1,2,1,2,1,2] to
// the first nine digits, subtracting 9 from any doubled product >= 10, and
// compares (10 - sum mod 10) mod 10 against the tenth digit.
func nationalIDChecksumOK(id string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		p := int(id[i] - '0')
		if i%2 == 0 {
			p *= 2
			if p >= 10 {
				p -= 9
			}
		}
		sum += p
	}
	check := (10 - sum%10) % 10
	return check == int(id[9]-'0')
}
