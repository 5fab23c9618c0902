package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Row is one raw table row: column header to cell value, as exported by
// the source system. Headers vary per operator and per language.
type Row map[string]string

// keyFolder strips diacritics so "Numéro appelant" and
// "Numero Appelant" normalize to the same key.
var keyFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey folds a column or sheet name to its canonical matching
// form: diacritics removed, lowercased, every run of non-alphanumeric
// characters collapsed to a single space, trimmed.
func NormalizeKey(s string) string {
	folded, _, err := transform.String(keyFolder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// ResolveField finds the first candidate field present in the row with
// a non-empty value. Candidates are semantic field names with their
// known aliases, in priority order. Matching follows NormalizeKey, so
// header punctuation, case and accents are irrelevant. A row with no
// usable match yields ok=false, never an error.
func ResolveField(row Row, candidates []string) (string, bool) {
	if len(row) == 0 {
		return "", false
	}

	normalized := make(map[string]string, len(row))
	for key, value := range row {
		if strings.TrimSpace(value) == "" {
			continue
		}
		nk := NormalizeKey(key)
		if _, exists := normalized[nk]; !exists {
			normalized[nk] = value
		}
	}

	for _, candidate := range candidates {
		if value, ok := normalized[NormalizeKey(candidate)]; ok {
			return value, true
		}
	}
	return "", false
}

// MatchName resolves a wanted sheet or table name against the names
// actually present in a source, using the NormalizeKey rule plus the
// given alias list. Returns the actual name as spelled in the source.
func MatchName(actual []string, want string, aliases []string) (string, bool) {
	wantKey := NormalizeKey(want)
	for _, name := range actual {
		if NormalizeKey(name) == wantKey {
			return name, true
		}
	}
	for _, alias := range aliases {
		aliasKey := NormalizeKey(alias)
		for _, name := range actual {
			if NormalizeKey(name) == aliasKey {
				return name, true
			}
		}
	}
	return "", false
}
