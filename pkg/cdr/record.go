package cdr

import (
	"strings"
	"time"
)

// Identifier is a cleaned phone number. It is the node key of the
// communication graph and one half of every edge key.
type Identifier string

// Record is a single normalized interaction row, independent of the
// source schema it was parsed from. Records are value types and are
// never mutated after normalization.
type Record struct {
	Caller          Identifier
	Callee          Identifier
	Timestamp       time.Time
	DurationSeconds int
	IsSMS           bool
	DeviceID        string
	Location        string
}

// HasCaller reports whether the record carries a usable caller number.
func (r Record) HasCaller() bool { return r.Caller != "" }

// HasCallee reports whether the record carries a usable callee number.
func (r Record) HasCallee() bool { return r.Callee != "" }

// Day returns the calendar-date portion of the record timestamp.
func (r Record) Day() string {
	return r.Timestamp.Format("2006-01-02")
}

// CleanIdentifier normalizes a raw phone number: every non-digit
// character is stripped, except a leading "+". Numbers with fewer than
// seven digits are rejected. Cleaning an already-clean identifier
// returns it unchanged.
func CleanIdentifier(raw string) (Identifier, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	if digits < 7 {
		return "", false
	}
	return Identifier(b.String()), true
}
