package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telintel/cdrlink/pkg/metrics"
)

func TestProcessFilesBatchIsolation(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "mtn_june.xlsx")
	writeTestWorkbook(t, good, mtnTestSheets())

	// detected as shared-IMEI but missing its listing sheet
	bad := filepath.Join(dir, "imei_june.xlsx")
	writeTestWorkbook(t, bad, map[string][][]string{
		"IMEI partagé":               {{"IMEI"}, {"354000000000001"}},
		"Fréquence par cellule":      {{"Cellule"}},
		"Fréquence Correspondant":    {{"Numéro"}},
		"Identification des abonnés": {{"Numéro"}},
	})

	p := NewProcessor(WithMetrics(metrics.NewRegistry()))
	result := p.ProcessFiles([]string{good, bad})

	require.Len(t, result.Statuses, 2)
	assert.True(t, result.Succeeded())

	byName := make(map[string]SourceStatus)
	for _, s := range result.Statuses {
		byName[s.SourceName] = s
		assert.NotEmpty(t, s.ID)
	}

	okStatus := byName["mtn_june.xlsx"]
	assert.Equal(t, StatusSuccess, okStatus.Status)
	assert.Equal(t, "MTN Listing", okStatus.LayoutName)
	assert.Empty(t, okStatus.SheetsMissing)

	failStatus := byName["imei_june.xlsx"]
	assert.Equal(t, StatusFailure, failStatus.Status)
	assert.Equal(t, "IMEI Listing", failStatus.LayoutName)
	assert.Equal(t, []string{"Listing"}, failStatus.SheetsMissing)
	assert.NotEmpty(t, failStatus.Err)

	// the failed source contributed zero rows
	assert.Len(t, result.Data.Listings, 2)
}

func TestProcessFilesUnreadableSource(t *testing.T) {
	p := NewProcessor()
	result := p.ProcessFiles([]string{filepath.Join(t.TempDir(), "missing.xlsx")})

	require.Len(t, result.Statuses, 1)
	assert.Equal(t, StatusFailure, result.Statuses[0].Status)
	assert.False(t, result.Succeeded())
}

func TestProcessFilesStatusOrderDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a_june.xlsx")
	b := filepath.Join(dir, "b_june.xlsx")
	writeTestWorkbook(t, a, mtnTestSheets())
	writeTestWorkbook(t, b, mtnTestSheets())

	p := NewProcessor()
	result := p.ProcessFiles([]string{b, a})

	require.Len(t, result.Statuses, 2)
	assert.Equal(t, "a_june.xlsx", result.Statuses[0].SourceName)
	assert.Equal(t, "b_june.xlsx", result.Statuses[1].SourceName)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mtn_june.xlsx")
	writeTestWorkbook(t, path, mtnTestSheets())

	p := NewProcessor(WithMetrics(metrics.NewRegistry()))
	result := p.ProcessFiles([]string{path})

	set, err := p.Extract(result)
	require.NoError(t, err)
	assert.Len(t, set.Records, 2)
	assert.Equal(t, 0, set.MalformedRows)
}

func TestExtractNoUsableRows(t *testing.T) {
	p := NewProcessor()
	_, err := p.Extract(BatchResult{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoUsableRows)
}
