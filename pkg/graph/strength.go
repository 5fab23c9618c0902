package graph

import (
	"math"
	"time"

	"github.com/telintel/cdrlink/pkg/cdr"
)

// Classification is the three-way strength label of an edge.
type Classification string

const (
	LinkPrimary   Classification = "primary"
	LinkSecondary Classification = "secondary"
	LinkWeak      Classification = "weak"
)

// LinkStrength summarizes how strong a pairwise relationship is. It is
// a pure function of the edge's record list: same records, same score,
// in any order.
type LinkStrength struct {
	CallFrequency   int
	TotalDuration   int
	AverageDuration float64
	UniqueDays      int
	TimeSpread      int // days between earliest and latest active date
	StrengthScore   int // composite, 0..100
	Classification  Classification
}

// Thresholds gathers every constant of the scoring formula and the
// classification cutoffs, so tuning is auditable and testable apart
// from the formula itself.
type Thresholds struct {
	// Normalization ceilings for the five sub-scores.
	FrequencyCeiling       float64 // records for a full frequency score
	DurationCeiling        float64 // total seconds for a full duration score
	AverageDurationCeiling float64 // average seconds for a full score
	CallsPerDayCeiling     float64 // records per active day for a full consistency score
	RegularityWindowDays   float64 // week window for the temporal score

	// Weights of the sub-scores; they sum to 1.
	WeightFrequency       float64
	WeightDuration        float64
	WeightAverageDuration float64
	WeightConsistency     float64
	WeightTemporal        float64

	// Classification cutoffs.
	PrimaryScore       int
	PrimaryFrequency   int
	PrimaryUniqueDays  int
	SecondaryScore     int
	SecondaryFrequency int
	SecondaryDays      int
}

// DefaultThresholds returns the production scoring configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FrequencyCeiling:       50,   // 50+ interactions max out frequency
		DurationCeiling:        3600, // one hour of talk time maxes out duration
		AverageDurationCeiling: 300,  // five-minute average maxes out
		CallsPerDayCeiling:     5,
		RegularityWindowDays:   7,

		WeightFrequency:       0.30,
		WeightDuration:        0.20,
		WeightAverageDuration: 0.15,
		WeightConsistency:     0.20,
		WeightTemporal:        0.15,

		PrimaryScore:       70,
		PrimaryFrequency:   20,
		PrimaryUniqueDays:  5,
		SecondaryScore:     30,
		SecondaryFrequency: 5,
		SecondaryDays:      2,
	}
}

// ComputeStrength scores one edge's record list. An empty list yields
// score 0 and a weak classification; there is no failure path.
func ComputeStrength(records []cdr.Record, th Thresholds) LinkStrength {
	if len(records) == 0 {
		return LinkStrength{Classification: LinkWeak}
	}

	s := LinkStrength{CallFrequency: len(records)}

	days := make(map[string]struct{}, len(records))
	var earliest, latest time.Time
	for _, record := range records {
		s.TotalDuration += record.DurationSeconds
		day := record.Timestamp.Truncate(24 * time.Hour)
		days[record.Day()] = struct{}{}
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
		if day.After(latest) {
			latest = day
		}
	}
	s.AverageDuration = float64(s.TotalDuration) / float64(s.CallFrequency)
	s.UniqueDays = len(days)

	if s.UniqueDays > 1 {
		s.TimeSpread = int(math.Ceil(latest.Sub(earliest).Hours() / 24))
	} else {
		s.TimeSpread = 1
	}

	s.StrengthScore = compositeScore(s, th)
	s.Classification = classify(s, th)
	return s
}

func compositeScore(s LinkStrength, th Thresholds) int {
	frequency := math.Min(float64(s.CallFrequency)/th.FrequencyCeiling, 1)
	duration := math.Min(float64(s.TotalDuration)/th.DurationCeiling, 1)
	avgDuration := math.Min(s.AverageDuration/th.AverageDurationCeiling, 1)

	consistency := 0.0
	if s.UniqueDays > 1 {
		consistency = math.Min(float64(s.CallFrequency)/float64(s.UniqueDays)/th.CallsPerDayCeiling, 1)
	}

	var temporal float64
	if float64(s.TimeSpread) > th.RegularityWindowDays {
		temporal = math.Min(float64(s.UniqueDays)/(float64(s.TimeSpread)/th.RegularityWindowDays), 1)
	} else {
		temporal = float64(s.UniqueDays) / th.RegularityWindowDays
	}

	composite := frequency*th.WeightFrequency +
		duration*th.WeightDuration +
		avgDuration*th.WeightAverageDuration +
		consistency*th.WeightConsistency +
		temporal*th.WeightTemporal

	score := int(math.Round(composite * 100))
	if score > 100 {
		score = 100
	}
	return score
}

func classify(s LinkStrength, th Thresholds) Classification {
	if s.StrengthScore >= th.PrimaryScore ||
		(s.CallFrequency >= th.PrimaryFrequency && s.UniqueDays >= th.PrimaryUniqueDays) {
		return LinkPrimary
	}
	if s.StrengthScore >= th.SecondaryScore ||
		(s.CallFrequency >= th.SecondaryFrequency && s.UniqueDays >= th.SecondaryDays) {
		return LinkSecondary
	}
	return LinkWeak
}

// Classify attaches a LinkStrength to every edge. Deterministic and
// idempotent: reclassifying the same graph gives the same result.
func Classify(g *Graph, th Thresholds) {
	for _, edge := range g.Edges {
		edge.Strength = ComputeStrength(edge.Records, th)
	}
}
