package graph

import (
	"strings"
	"time"

	"github.com/telintel/cdrlink/pkg/cdr"
)

// RoleClass is the derived role of an individual in the network.
type RoleClass string

const (
	RolePrimary   RoleClass = "primary"
	RoleSecondary RoleClass = "secondary"
	RoleService   RoleClass = "service"
)

// Node aggregate thresholds: heavy talkers read as primary targets,
// numbers touching many distinct contacts read as service numbers.
const (
	primaryInteractionThreshold = 20
	serviceContactThreshold     = 10
)

// Node is the per-individual aggregate over the canonical record set.
// Nodes are rebuilt from scratch whenever the record set changes; they
// are never incrementally mutated afterwards.
type Node struct {
	ID                   cdr.Identifier
	TotalCalls           int
	TotalSMS             int
	TotalDurationSeconds int
	Contacts             map[cdr.Identifier]struct{}
	DeviceID             string
	Location             string
	FirstSeen            time.Time
	LastSeen             time.Time
	Role                 RoleClass
}

// TotalInteractions is the node's combined call and SMS count.
func (n *Node) TotalInteractions() int {
	return n.TotalCalls + n.TotalSMS
}

// DistinctContacts is the number of distinct counterparts observed.
func (n *Node) DistinctContacts() int {
	return len(n.Contacts)
}

func (n *Node) roleClass() RoleClass {
	// Service takes precedence when both thresholds are met.
	if n.DistinctContacts() > serviceContactThreshold {
		return RoleService
	}
	if n.TotalInteractions() > primaryInteractionThreshold {
		return RolePrimary
	}
	return RoleSecondary
}

// EdgeKey identifies the unordered pair of an edge's endpoints: the two
// identifiers sorted lexicographically and joined, so call direction
// never splits a pair across two edges.
type EdgeKey string

// NewEdgeKey builds the key for an unordered endpoint pair.
func NewEdgeKey(a, b cdr.Identifier) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey(string(a) + "|" + string(b))
}

// Endpoints recovers the two endpoint identifiers, in key order.
func (k EdgeKey) Endpoints() (cdr.Identifier, cdr.Identifier) {
	parts := strings.SplitN(string(k), "|", 2)
	if len(parts) != 2 {
		return cdr.Identifier(string(k)), ""
	}
	return cdr.Identifier(parts[0]), cdr.Identifier(parts[1])
}

// Edge is the pairwise interaction history between two individuals. An
// edge exists iff at least one record connects its endpoints. Records
// keep input order; every aggregate on the edge is order-independent.
type Edge struct {
	Key                  EdgeKey
	A, B                 cdr.Identifier
	Records              []cdr.Record
	CallCount            int
	SMSCount             int
	TotalDurationSeconds int

	// Strength is attached by classification; zero until then.
	Strength LinkStrength
}

// Interactions is the edge's combined call and SMS count.
func (e *Edge) Interactions() int {
	return e.CallCount + e.SMSCount
}

// Touches reports whether the edge is incident to the given node.
func (e *Edge) Touches(id cdr.Identifier) bool {
	return e.A == id || e.B == id
}

// Other returns the endpoint across from the given one.
func (e *Edge) Other(id cdr.Identifier) cdr.Identifier {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Stats carries aggregation counters for reporting.
type Stats struct {
	RecordsSeen    int
	RecordsSkipped int // records with no valid endpoint
}

// Graph is the full aggregate: every individual and every connected
// pair observed in the canonical record set.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
	Stats Stats

	nodeIndex map[cdr.Identifier]*Node
	edgeIndex map[EdgeKey]*Edge
}

// Node returns the node with the given identifier, if present.
func (g *Graph) Node(id cdr.Identifier) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// Edge returns the edge with the given key, if present.
func (g *Graph) Edge(key EdgeKey) (*Edge, bool) {
	e, ok := g.edgeIndex[key]
	return e, ok
}

// Neighbors returns the identifiers directly connected to id.
func (g *Graph) Neighbors(id cdr.Identifier) []cdr.Identifier {
	var out []cdr.Identifier
	for _, e := range g.Edges {
		if e.Touches(id) {
			out = append(out, e.Other(id))
		}
	}
	return out
}
