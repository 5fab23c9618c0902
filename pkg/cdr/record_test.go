package cdr

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCleanIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Identifier
		valid bool
	}{
		{"plain number", "677123456", "677123456", true},
		{"international prefix", "+237 677 123 456", "+237677123456", true},
		{"formatted", "(677) 12-34-56", "677123456", true},
		{"interior plus dropped", "677+123456", "677123456", true},
		{"too short", "12345", "", false},
		{"six digits", "123456", "", false},
		{"seven digits", "1234567", "1234567", true},
		{"letters only", "unknown", "", false},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanIdentifier(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Cleaning is idempotent: a clean identifier passes through unchanged.
func TestCleanIdentifierIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("clean(clean(x)) == clean(x)", prop.ForAll(
		func(raw string) bool {
			first, ok := CleanIdentifier(raw)
			if !ok {
				return true
			}
			second, ok2 := CleanIdentifier(string(first))
			return ok2 && second == first
		},
		gen.RegexMatch(`[+]?[0-9 ().-]{0,20}`),
	))

	properties.TestingRun(t)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw     string
		seconds int
		isSMS   bool
	}{
		{"120", 120, false},
		{"0", 0, false},
		{"2:30", 150, false},
		{"1:02:03", 3723, false},
		{"00:00:45", 45, false},
		{"SMS", 0, true},
		{"sms envoyé", 0, true},
		{"A1B2C3D4", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		seconds, isSMS := ParseDuration(tt.raw)
		assert.Equal(t, tt.seconds, seconds, "duration %q", tt.raw)
		assert.Equal(t, tt.isSMS, isSMS, "sms flag %q", tt.raw)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("15/03/2024", "14:30:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), ts)

	ts, ok = ParseTimestamp("2024-03-15 08:05:00", "")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 5, 0, 0, time.UTC), ts)

	ts, ok = ParseTimestamp("15/03/2024", "")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ts)

	// Junk in the time cell falls back to the date alone.
	ts, ok = ParseTimestamp("15/03/2024", "??")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ts)

	_, ok = ParseTimestamp("not a date", "")
	assert.False(t, ok)

	_, ok = ParseTimestamp("", "")
	assert.False(t, ok)
}

func TestRecordDay(t *testing.T) {
	r := Record{Timestamp: time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03-15", r.Day())
}
