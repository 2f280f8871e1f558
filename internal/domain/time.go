package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for hour/minute values outside 00:00..23:59.
var ErrOutOfRange = errors.New("time out of range")

// Time is a time of day with no date or zone attached.
// Values are only meaningful when Valid reports true.
type Time struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Valid reports whether t lies within 0..23 hours and 0..59 minutes.
func (t Time) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Minutes returns minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// FromMinutes is the inverse of Minutes for 0..1439.
func FromMinutes(mins int) (Time, error) {
	if mins < 0 || mins > 1439 {
		return Time{}, fmt.Errorf("%w: %d minutes", ErrOutOfRange, mins)
	}
	return Time{Hour: mins / 60, Minute: mins % 60}, nil
}

// String returns the canonical 12-hour form, e.g. "9:30am".
func (t Time) String() string {
	s, err := Format(t)
	if err != nil {
		return fmt.Sprintf("invalid(%d:%d)", t.Hour, t.Minute)
	}
	return s
}

// Format renders t as H:MMam / H:MMpm. Midnight is 12:00am, noon 12:00pm.
func Format(t Time) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: %d:%d", ErrOutOfRange, t.Hour, t.Minute)
	}
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "am"
	if t.Hour >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", h, t.Minute, suffix), nil
}
