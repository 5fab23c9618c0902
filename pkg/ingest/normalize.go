package ingest

// SourceData is the normalized output of one or more sources: raw rows
// regrouped into the two canonical categories every layout maps onto.
type SourceData struct {
	Subscribers []Row
	Listings    []Row
}

// Append concatenates another source's output. Sources are independent;
// order between them carries no meaning.
func (d *SourceData) Append(other SourceData) {
	d.Subscribers = append(d.Subscribers, other.Subscribers...)
	d.Listings = append(d.Listings, other.Listings...)
}

// SMS-listing source columns, with operator spelling variants.
var (
	smsSenderFields   = []string{"Numéro émetteur", "Numero emetteur", "Emetteur", "Sender"}
	smsReceiverFields = []string{"Numéro récepteur", "Numero recepteur", "Récepteur", "Receiver"}
	smsDateFields     = []string{"Date SMS", "Date", "Horodatage"}
	smsLocationFields = []string{"Localisation numéro Destination (Longitude, Latitude)", "Localisation", "Location"}
	smsIMEIFields     = []string{"IMEI numéro récepteur", "IMEI", "IMEI récepteur"}
)

// TransformSMSRow maps an SMS-listing row onto the standard call
// listing columns, tagging the interaction type explicitly. The SMS
// sheet has its own header vocabulary (sender/receiver/SMS date); after
// this transform the aggregation pipeline sees one uniform shape.
func TransformSMSRow(row Row) Row {
	out := Row{"Type": "SMS"}
	if v, ok := ResolveField(row, smsSenderFields); ok {
		out["Numéro A"] = v
	}
	if v, ok := ResolveField(row, smsReceiverFields); ok {
		out["Numéro B"] = v
	}
	if v, ok := ResolveField(row, smsDateFields); ok {
		out["Date"] = v
	}
	if v, ok := ResolveField(row, smsLocationFields); ok {
		out["Localisation"] = v
	}
	if v, ok := ResolveField(row, smsIMEIFields); ok {
		out["IMEI"] = v
	}
	return out
}

// Normalize validates one source against the registry and regroups its
// sheets into SourceData. The layout is detected from the sheet names;
// a missing required sheet fails the whole source (no partial import),
// and an unmatched source fails with ErrUnrecognizedSchema. The input
// sheets are never mutated.
func (r *Registry) Normalize(sourceName string, sheets map[string][]Row) (SourceData, LayoutConfig, error) {
	sheetNames := make([]string, 0, len(sheets))
	for name := range sheets {
		sheetNames = append(sheetNames, name)
	}

	layout, ok := r.Detect(sheetNames)
	if !ok {
		return SourceData{}, LayoutConfig{}, UnrecognizedSchemaError(sourceName)
	}

	found, missing := r.Validate(layout, sheetNames)
	if len(missing) > 0 {
		return SourceData{}, layout, ValidationError(sourceName, layout.Name, missing)
	}

	var data SourceData
	for _, canonical := range layout.Subscribers {
		data.Subscribers = append(data.Subscribers, sheets[found[canonical]]...)
	}
	for _, canonical := range layout.Listings {
		rows := sheets[found[canonical]]
		if transform, ok := r.transformers[canonical]; ok {
			for _, row := range rows {
				data.Listings = append(data.Listings, transform(row))
			}
		} else {
			data.Listings = append(data.Listings, rows...)
		}
	}
	return data, layout, nil
}
