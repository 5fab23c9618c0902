package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecordsFrenchHeaders(t *testing.T) {
	listings := []Row{
		{
			"Numéro A":     "0701020304",
			"Numéro B":     "0705060708",
			"Date":         "12/03/2024",
			"Heure":        "14:05:00",
			"Durée":        "00:02:00",
			"IMEI":         "354000000000001",
			"Localisation": "ABIDJAN PLATEAU",
		},
	}

	set := ExtractRecords(listings)
	require.Len(t, set.Records, 1)
	assert.Equal(t, 0, set.MalformedRows)

	r := set.Records[0]
	assert.Equal(t, "0701020304", string(r.Caller))
	assert.Equal(t, "0705060708", string(r.Callee))
	assert.Equal(t, 120, r.DurationSeconds)
	assert.False(t, r.IsSMS)
	assert.Equal(t, "354000000000001", r.DeviceID)
	assert.Equal(t, "ABIDJAN PLATEAU", r.Location)
	assert.Equal(t, time.Date(2024, time.March, 12, 14, 5, 0, 0, time.UTC), r.Timestamp)
}

func TestExtractRecordsTypeTagWinsOverDuration(t *testing.T) {
	set := ExtractRecords([]Row{{
		"Numéro A": "0701020304",
		"Numéro B": "0705060708",
		"Date":     "12/03/2024",
		"Durée":    "00:02:00",
		"Type":     "SMS",
	}})
	require.Len(t, set.Records, 1)
	assert.True(t, set.Records[0].IsSMS)
	assert.Equal(t, 0, set.Records[0].DurationSeconds)
}

func TestExtractRecordsSingleEndpointKept(t *testing.T) {
	set := ExtractRecords([]Row{{
		"Numéro A": "0701020304",
		"Numéro B": "inconnu",
		"Date":     "12/03/2024",
	}})
	require.Len(t, set.Records, 1)
	assert.True(t, set.Records[0].HasCaller())
	assert.False(t, set.Records[0].HasCallee())
}

func TestExtractRecordsSkipsUnusableRows(t *testing.T) {
	listings := []Row{
		{}, // empty
		{"Numéro A": "123", "Date": "12/03/2024"},        // too few digits
		{"Numéro A": "0701020304"},                       // no date
		{"Numéro A": "0701020304", "Date": "not a date"}, // junk date
		{"Numéro A": "0701020304", "Date": "12/03/2024"}, // usable
	}

	set := ExtractRecords(listings)
	assert.Len(t, set.Records, 1)
	assert.Equal(t, 4, set.MalformedRows)
}

func TestSubscriberNames(t *testing.T) {
	names := SubscriberNames([]Row{
		{"Numéro": "0701020304", "Nom": "K. Yao"},
		{"Numéro": "0701020304", "Nom": "duplicate ignored"},
		{"Numéro": "123", "Nom": "too short"},
		{"Nom": "no number"},
		{"Numéro": "0705060708"},
	})

	require.Len(t, names, 1)
	assert.Equal(t, "K. Yao", names["0701020304"])
}

func TestExtractRecordsEnglishHeaders(t *testing.T) {
	set := ExtractRecords([]Row{{
		"caller_num": "+2250701020304",
		"callee_num": "0705060708",
		"date":       "2024-03-12 14:05:00",
		"duration":   "130",
	}})
	require.Len(t, set.Records, 1)
	r := set.Records[0]
	assert.Equal(t, "+2250701020304", string(r.Caller))
	assert.Equal(t, 130, r.DurationSeconds)
}
