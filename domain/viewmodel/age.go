package viewmodel

import (
	"errors"
	"fmt"
	"time"
)

// AdultAge is the minimum derived age that may be edited.
const AdultAge = 18

var ErrInvalidDOB = errors.New("invalid date of birth")

var dobLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
}

// ParseDOB accepts a date or date-time. Values without a zone are UTC.
func ParseDOB(dob string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDOB, dob)
}

// Age returns whole years between dob and now using epoch-year arithmetic:
// the millisecond difference is read back as a UTC instant and its distance
// from 1970 is the age. It is not day-precise; every caller must use it.
func Age(dob string, now time.Time) (int, error) {
	birth, err := ParseDOB(dob)
	if err != nil {
		return 0, err
	}
	diff := now.UnixMilli() - birth.UnixMilli()
	years := time.UnixMilli(diff).UTC().Year() - 1970
	if years < 0 {
		years = -years
	}
	return years, nil
}

// CanEdit reports whether the record behind dob is old enough to edit.
func CanEdit(dob string, now time.Time) bool {
	age, err := Age(dob, now)
	return err == nil && age >= AdultAge
}
