package graph

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/telintel/cdrlink/pkg/cdr"
)

// InteractionType selects which interaction kinds a node must have.
type InteractionType string

const (
	InteractionsAll   InteractionType = "all"
	InteractionsCalls InteractionType = "calls"
	InteractionsSMS   InteractionType = "sms"
)

// DateRange bounds node activity. Zero bounds are open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range is unbounded on both sides.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// DurationRange bounds per-call durations in seconds. A zero Max is
// open-ended.
type DurationRange struct {
	Min int `validate:"min=0"`
	Max int `validate:"min=0"`
}

// Filters is the workbench predicate. Re-applied from scratch on every
// change; applying it classifies the input's edges in place (an
// idempotent write) but leaves its node and edge sets untouched.
type Filters struct {
	InteractionType InteractionType  `validate:"omitempty,oneof=all calls sms"`
	DateRange       DateRange
	Individuals     []cdr.Identifier // node allow-list; empty allows all
	MinInteractions int              `validate:"min=0"`
	Contacts        []cdr.Identifier // contact allow-list; empty allows all
	DurationRange   DurationRange

	LinkTypes        []Classification `validate:"omitempty,dive,oneof=primary secondary weak"`
	MinStrengthScore int              `validate:"min=0,max=100"`
	ShowWeakLinks    bool
}

// DefaultFilters is the everything-visible predicate.
func DefaultFilters() Filters {
	return Filters{
		InteractionType: InteractionsAll,
		LinkTypes:       []Classification{LinkPrimary, LinkSecondary, LinkWeak},
		ShowWeakLinks:   true,
	}
}

var filterValidator = validator.New()

// Validate checks the predicate's field ranges.
func (f Filters) Validate() error {
	if err := filterValidator.Struct(f); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	if f.DurationRange.Max > 0 && f.DurationRange.Min > f.DurationRange.Max {
		return fmt.Errorf("filters: duration range inverted")
	}
	if !f.DateRange.Start.IsZero() && !f.DateRange.End.IsZero() && f.DateRange.End.Before(f.DateRange.Start) {
		return fmt.Errorf("filters: date range inverted")
	}
	return nil
}

func (f Filters) allowsClass(c Classification) bool {
	if len(f.LinkTypes) == 0 {
		return true
	}
	for _, allowed := range f.LinkTypes {
		if allowed == c {
			return true
		}
	}
	return false
}

func (f Filters) edgeVisible(e *Edge) bool {
	if !f.allowsClass(e.Strength.Classification) {
		return false
	}
	if e.Strength.StrengthScore < f.MinStrengthScore {
		return false
	}
	if !f.ShowWeakLinks && e.Strength.Classification == LinkWeak {
		return false
	}
	if f.DurationRange.Max > 0 {
		inRange := false
		for _, r := range e.Records {
			if !r.IsSMS && r.DurationSeconds >= f.DurationRange.Min && r.DurationSeconds <= f.DurationRange.Max {
				inRange = true
				break
			}
		}
		if !inRange {
			return false
		}
	}
	return true
}

func (f Filters) nodeVisible(n *Node) bool {
	if n.TotalInteractions() < f.MinInteractions {
		return false
	}
	switch f.InteractionType {
	case InteractionsCalls:
		if n.TotalCalls == 0 {
			return false
		}
	case InteractionsSMS:
		if n.TotalSMS == 0 {
			return false
		}
	}
	if len(f.Individuals) > 0 && !containsID(f.Individuals, n.ID) {
		return false
	}
	if len(f.Contacts) > 0 {
		touchesContact := false
		for _, c := range f.Contacts {
			if _, ok := n.Contacts[c]; ok || c == n.ID {
				touchesContact = true
				break
			}
		}
		if !touchesContact {
			return false
		}
	}
	if !f.DateRange.IsZero() {
		if n.FirstSeen.IsZero() {
			return false
		}
		if !f.DateRange.Start.IsZero() && n.LastSeen.Before(f.DateRange.Start) {
			return false
		}
		if !f.DateRange.End.IsZero() && n.FirstSeen.After(f.DateRange.End) {
			return false
		}
	}
	return true
}

func containsID(ids []cdr.Identifier, id cdr.Identifier) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Apply classifies the full graph and projects the visible subgraph:
// edges are dropped first on classification criteria, then nodes on
// their own criteria, then edges missing a surviving endpoint, and
// finally nodes left with no incident edge. When no edge survives at
// all, the surviving nodes are kept as-is so a calls-only or sparse
// view still shows the individuals. An empty result is a valid result.
// The projection shares the input's node and edge structs; the edge
// classifications written by Classify are the only write back into the
// input.
func Apply(g *Graph, f Filters, th Thresholds) *Graph {
	Classify(g, th)

	edges := make([]*Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if f.edgeVisible(e) {
			edges = append(edges, e)
		}
	}

	visible := make(map[cdr.Identifier]*Node, len(g.Nodes))
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if f.nodeVisible(n) {
			visible[n.ID] = n
			nodes = append(nodes, n)
		}
	}

	kept := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if _, okA := visible[e.A]; !okA {
			continue
		}
		if _, okB := visible[e.B]; !okB {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) > 0 {
		connected := make(map[cdr.Identifier]struct{}, len(kept)*2)
		for _, e := range kept {
			connected[e.A] = struct{}{}
			connected[e.B] = struct{}{}
		}
		pruned := nodes[:0:0]
		for _, n := range nodes {
			if _, ok := connected[n.ID]; ok {
				pruned = append(pruned, n)
			}
		}
		nodes = pruned
	}

	sub := &Graph{
		Nodes:     nodes,
		Edges:     kept,
		nodeIndex: make(map[cdr.Identifier]*Node, len(nodes)),
		edgeIndex: make(map[EdgeKey]*Edge, len(kept)),
	}
	for _, n := range nodes {
		sub.nodeIndex[n.ID] = n
	}
	for _, e := range kept {
		sub.edgeIndex[e.Key] = e
	}
	return sub
}
