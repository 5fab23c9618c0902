package cdr

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockPattern  = regexp.MustCompile(`(\d+):(\d+)(?::(\d+))?`)
	numberPattern = regexp.MustCompile(`(\d+)`)
	hexPattern    = regexp.MustCompile(`^[A-Fa-f0-9]{6,}$`)
)

// IsSMSMarker reports whether a duration-column value actually marks the
// row as an SMS. Operators either write a literal "SMS" tag or a hex
// message identifier where the call duration would be.
func IsSMSMarker(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if strings.Contains(strings.ToUpper(trimmed), "SMS") {
		return true
	}
	return hexPattern.MatchString(trimmed)
}

// ParseDuration interprets a raw duration cell. It understands
// "h:mm:ss" and "mm:ss" clock forms and bare second counts. An SMS
// marker yields zero seconds and isSMS=true; the interaction type is
// tagged here, at ingestion, so a genuine zero-second call is never
// reclassified downstream.
func ParseDuration(raw string) (seconds int, isSMS bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	if IsSMSMarker(trimmed) {
		return 0, true
	}

	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		if m[3] != "" {
			h, _ := strconv.Atoi(m[1])
			mi, _ := strconv.Atoi(m[2])
			s, _ := strconv.Atoi(m[3])
			return h*3600 + mi*60 + s, false
		}
		mi, _ := strconv.Atoi(m[1])
		s, _ := strconv.Atoi(m[2])
		return mi*60 + s, false
	}

	if m := numberPattern.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, false
	}
	return 0, false
}

// timestampLayouts covers the date forms seen across operator exports.
// Day-first layouts come before month-first ones: the sources are
// French-market CDRs.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp parses a date cell, optionally combined with a
// separate time cell.
func ParseTimestamp(date, clock string) (time.Time, bool) {
	candidate := strings.TrimSpace(date)
	if candidate == "" {
		return time.Time{}, false
	}
	if c := strings.TrimSpace(clock); c != "" {
		candidate = candidate + " " + c
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, candidate, time.UTC); err == nil {
			return ts, true
		}
	}

	// Retry on the date alone when the time cell held junk.
	if strings.TrimSpace(clock) != "" {
		return ParseTimestamp(date, "")
	}
	return time.Time{}, false
}
