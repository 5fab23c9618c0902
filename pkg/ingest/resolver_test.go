package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Numéro Appelant", "numero appelant"},
		{"NUMERO_APPELANT", "numero appelant"},
		{"  Durée  (appel)  ", "duree appel"},
		{"Fréquence par Durée appel", "frequence par duree appel"},
		{"IMEI", "imei"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "NormalizeKey(%q)", tt.in)
	}
}

func TestResolveField(t *testing.T) {
	row := Row{
		"Numéro Appelant": "0700000001",
		"Durée":           "00:02:00",
		"Vide":            "   ",
	}

	v, ok := ResolveField(row, []string{"caller_num", "numéro appelant"})
	require.True(t, ok)
	assert.Equal(t, "0700000001", v)

	// accent-free candidate matches the accented header
	v, ok = ResolveField(row, []string{"numero appelant"})
	require.True(t, ok)
	assert.Equal(t, "0700000001", v)

	// whitespace-only cells do not count as present
	_, ok = ResolveField(row, []string{"vide"})
	assert.False(t, ok)

	_, ok = ResolveField(row, []string{"absent"})
	assert.False(t, ok)
}

func TestResolveFieldPriorityOrder(t *testing.T) {
	row := Row{"caller": "first", "appelant": "second"}
	v, ok := ResolveField(row, []string{"caller", "appelant"})
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestResolveFieldEmptyRow(t *testing.T) {
	_, ok := ResolveField(nil, []string{"caller"})
	assert.False(t, ok)
	_, ok = ResolveField(Row{}, []string{"caller"})
	assert.False(t, ok)
}

func TestMatchName(t *testing.T) {
	actual := []string{"Abonne", "Listing_Appel", "Fréquence par cellule"}

	name, ok := MatchName(actual, "Abonné", []string{"Abonne", "Subscribers"})
	require.True(t, ok)
	assert.Equal(t, "Abonne", name)

	name, ok = MatchName(actual, "Listing Appel", nil)
	require.True(t, ok)
	assert.Equal(t, "Listing_Appel", name)

	_, ok = MatchName(actual, "Listing SMS", []string{"SMS Listing"})
	assert.False(t, ok)
}
