package ingest

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/telintel/cdrlink/pkg/logging"
	"github.com/telintel/cdrlink/pkg/metrics"
)

// Status of one processed source.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// SourceStatus reports the outcome of normalizing one source. It is a
// first-class output: a batch can partially fail and the caller needs
// the per-source picture to report back.
type SourceStatus struct {
	ID            string
	SourceName    string
	Status        Status
	LayoutName    string
	SheetsFound   []string
	SheetsMissing []string
	Err           string
}

// BatchResult is the combined outcome of processing a batch of files.
type BatchResult struct {
	Data     SourceData
	Statuses []SourceStatus
}

// Succeeded reports whether at least one source normalized cleanly.
func (b *BatchResult) Succeeded() bool {
	for _, s := range b.Statuses {
		if s.Status == StatusSuccess {
			return true
		}
	}
	return false
}

// Processor runs schema detection and normalization over uploaded
// files. It holds no mutable state between batches; every call starts
// from its inputs alone.
type Processor struct {
	registry *Registry
	log      logging.Logger
	metrics  *metrics.Registry
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor's logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithRegistry replaces the default layout registry.
func WithRegistry(r *Registry) Option {
	return func(p *Processor) { p.registry = r }
}

// NewProcessor creates a processor with the embedded layout registry
// and a no-op logger.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		registry: NewRegistry(),
		log:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFiles normalizes every workbook found in the given files.
// Sources are independent: a file that fails to read or validate
// contributes a failure status and zero rows while the rest of the
// batch proceeds.
func (p *Processor) ProcessFiles(paths []string) BatchResult {
	var result BatchResult

	for _, path := range paths {
		workbooks, err := OpenWorkbooks(path)
		if err != nil {
			p.log.Error("source unreadable", logging.Source(path), logging.Error(err))
			result.Statuses = append(result.Statuses, failureStatus(path, "", nil, err))
			if p.metrics != nil {
				p.metrics.RecordSource(string(StatusFailure), "")
			}
			continue
		}
		for _, wb := range workbooks {
			result.Statuses = append(result.Statuses, p.processWorkbook(wb, &result.Data))
		}
	}

	sort.Slice(result.Statuses, func(i, j int) bool {
		return result.Statuses[i].SourceName < result.Statuses[j].SourceName
	})
	return result
}

// ProcessWorkbook normalizes a single already-read workbook and
// appends its output to combined.
func (p *Processor) processWorkbook(wb *Workbook, combined *SourceData) SourceStatus {
	sheetNames := wb.SheetNames()

	if p.metrics != nil {
		p.metrics.SheetsParsedTotal.Add(float64(len(sheetNames)))
	}

	data, layout, err := p.registry.Normalize(wb.Name, wb.Sheets)
	if err != nil {
		p.log.Warn("source rejected",
			logging.Source(wb.Name),
			logging.Layout(layout.Name),
			logging.Error(err))
		if p.metrics != nil {
			p.metrics.RecordSource(string(StatusFailure), layout.Name)
		}
		return failureStatus(wb.Name, layout.Name, sheetNames, err)
	}

	combined.Append(data)

	p.log.Info("source normalized",
		logging.Source(wb.Name),
		logging.Layout(layout.Name),
		logging.Records(len(data.Listings)))
	if p.metrics != nil {
		p.metrics.RecordSource(string(StatusSuccess), layout.Name)
	}

	return SourceStatus{
		ID:          uuid.NewString(),
		SourceName:  wb.Name,
		Status:      StatusSuccess,
		LayoutName:  layout.Name,
		SheetsFound: sheetNames,
	}
}

// Extract converts the batch's combined listings into canonical
// records, reporting malformed-row counts through the logger and
// metrics.
func (p *Processor) Extract(result BatchResult) (RecordSet, error) {
	set := ExtractRecords(result.Data.Listings)

	calls, sms := 0, 0
	for _, r := range set.Records {
		if r.IsSMS {
			sms++
		} else {
			calls++
		}
	}
	if p.metrics != nil {
		p.metrics.RecordNormalization(calls, sms, set.MalformedRows)
	}
	if set.MalformedRows > 0 {
		p.log.Warn("rows skipped during extraction", logging.Skipped(set.MalformedRows))
	}

	if len(set.Records) == 0 {
		return set, &SchemaError{Source: "batch", Cause: ErrNoUsableRows}
	}
	return set, nil
}

func failureStatus(source, layoutName string, sheets []string, err error) SourceStatus {
	status := SourceStatus{
		ID:          uuid.NewString(),
		SourceName:  source,
		Status:      StatusFailure,
		LayoutName:  layoutName,
		SheetsFound: sheets,
		Err:         err.Error(),
	}
	var se *SchemaError
	if errors.As(err, &se) {
		status.SheetsMissing = se.Missing
		if status.LayoutName == "" {
			status.LayoutName = se.LayoutName
		}
	}
	return status
}
