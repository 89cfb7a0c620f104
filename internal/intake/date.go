package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the accepted date input format.
	DateLayout = "2006-01-02"
	// DateLayoutHint is DateLayout as shown to users.
	DateLayoutHint = "YYYY-MM-DD"
)

// ErrDateOutOfRange is returned for a birth date before 1900-01-01 or after today.
var ErrDateOutOfRange = errors.New("date out of range")

var earliestBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// CheckBirthDate parses s and checks it lies between 1900-01-01 and today.
func CheckBirthDate(s string, today time.Time) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := today.Date()
	if t.Before(earliestBirthDate) || t.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, s)
	}
	return t, nil
}

// Age returns the completed years between dob and today.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// AgeFromString parses dob and returns the age on today.
func AgeFromString(dob string, today time.Time) (int, error) {
	t, err := ParseDate(dob)
	if err != nil {
		return 0, err
	}
	return Age(t, today), nil
}
