package ingest

import (
	"strings"

	"github.com/telintel/cdrlink/pkg/cdr"
)

// Semantic field candidates for listing rows, across the source
// systems' English and French header vocabularies. Order matters: the
// first present non-empty candidate wins.
var (
	callerFields = []string{
		"caller_num", "caller", "calling_number", "from_number", "source_number",
		"numéro a", "numero a",
		"numéro appelant", "numero appelant", "appelant", "émetteur", "emetteur",
	}
	calleeFields = []string{
		"callee_num", "callee", "called_number", "to_number", "destination_number",
		"numéro b", "numero b",
		"numéro appelé", "numero appele", "appelé", "appele",
		"destinataire", "récepteur", "recepteur",
	}
	durationFields = []string{
		"duration", "duration_str", "call_duration", "length",
		"durée", "duree", "durée appel", "duree appel",
	}
	dateFields = []string{
		"date", "call_date", "timestamp", "datetime", "date appel",
	}
	timeFields = []string{
		"heure", "time", "call_time", "heure appel",
	}
	typeFields = []string{
		"type", "interaction_type", "call_type",
	}
	deviceFields = []string{
		"imei", "device_id", "imei_caller", "imei_source",
	}
	locationFields = []string{
		"location", "caller_location", "source_location",
		"localisation", "localisation numéro appelant", "localisation numero appelant",
	}
)

var (
	subscriberNumberFields = []string{
		"numéro", "numero", "msisdn", "numéro abonné", "numero abonne", "phone",
	}
	subscriberNameFields = []string{
		"nom", "nom abonné", "nom abonne", "nom et prénom", "nom et prenom",
		"name", "subscriber_name", "titulaire",
	}
)

// SubscriberNames indexes the roster rows by cleaned number, for
// showing who a number belongs to next to its aggregates. Rows without
// a usable number or name are ignored.
func SubscriberNames(subscribers []Row) map[cdr.Identifier]string {
	names := make(map[cdr.Identifier]string)
	for _, row := range subscribers {
		number, ok := ResolveField(row, subscriberNumberFields)
		if !ok {
			continue
		}
		id, valid := cdr.CleanIdentifier(number)
		if !valid {
			continue
		}
		name, ok := ResolveField(row, subscriberNameFields)
		if !ok {
			continue
		}
		if _, exists := names[id]; !exists {
			names[id] = strings.TrimSpace(name)
		}
	}
	return names
}

// RecordSet is the canonical interaction set extracted from normalized
// listing rows, with counts of rows that could not be used.
type RecordSet struct {
	Records       []cdr.Record
	MalformedRows int // rows skipped for unusable endpoints or dates
}

// ExtractRecords turns normalized listing rows into canonical records.
// A row needs at least one valid endpoint and a parseable date;
// anything else is counted and skipped, never an error: partial loss
// inside an otherwise valid table is expected.
func ExtractRecords(listings []Row) RecordSet {
	set := RecordSet{Records: make([]cdr.Record, 0, len(listings))}

	for _, row := range listings {
		record, ok := extractRecord(row)
		if !ok {
			set.MalformedRows++
			continue
		}
		set.Records = append(set.Records, record)
	}
	return set
}

func extractRecord(row Row) (cdr.Record, bool) {
	if len(row) == 0 {
		return cdr.Record{}, false
	}

	var record cdr.Record

	if raw, ok := ResolveField(row, callerFields); ok {
		if id, valid := cdr.CleanIdentifier(raw); valid {
			record.Caller = id
		}
	}
	if raw, ok := ResolveField(row, calleeFields); ok {
		if id, valid := cdr.CleanIdentifier(raw); valid {
			record.Callee = id
		}
	}
	if !record.HasCaller() && !record.HasCallee() {
		return cdr.Record{}, false
	}

	date, _ := ResolveField(row, dateFields)
	clock, _ := ResolveField(row, timeFields)
	ts, ok := cdr.ParseTimestamp(date, clock)
	if !ok {
		return cdr.Record{}, false
	}
	record.Timestamp = ts

	duration, _ := ResolveField(row, durationFields)
	record.DurationSeconds, record.IsSMS = cdr.ParseDuration(duration)

	// The SMS-listing transform tags rows explicitly; that tag wins
	// over whatever sits in the duration column.
	if kind, ok := ResolveField(row, typeFields); ok {
		if strings.EqualFold(strings.TrimSpace(kind), "SMS") {
			record.IsSMS = true
			record.DurationSeconds = 0
		}
	}

	if v, ok := ResolveField(row, deviceFields); ok {
		record.DeviceID = strings.TrimSpace(v)
	}
	if v, ok := ResolveField(row, locationFields); ok {
		record.Location = strings.TrimSpace(v)
	}
	return record, true
}
