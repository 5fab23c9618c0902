package graph

import (
	"sort"

	"github.com/telintel/cdrlink/pkg/cdr"
)

// Build aggregates canonical records into the full graph in one pass.
// Records with no valid endpoint are counted and skipped; a record with
// a single valid endpoint still updates that endpoint's node but
// creates no edge. Counters are independent of record order; the
// record list inside each edge keeps input order.
func Build(records []cdr.Record) *Graph {
	g := &Graph{
		nodeIndex: make(map[cdr.Identifier]*Node),
		edgeIndex: make(map[EdgeKey]*Edge),
	}
	g.Stats.RecordsSeen = len(records)

	for _, record := range records {
		caller := record.Caller
		callee := record.Callee
		if caller == "" && callee == "" {
			g.Stats.RecordsSkipped++
			continue
		}

		if caller != "" {
			g.touch(caller, record, callee)
		}
		if callee != "" {
			g.touch(callee, record, caller)
		}
		if caller != "" && callee != "" {
			g.connect(caller, callee, record)
		}
	}

	g.finalize()
	return g
}

// touch updates the aggregate for one endpoint of a record.
func (g *Graph) touch(id cdr.Identifier, record cdr.Record, counterpart cdr.Identifier) {
	node, ok := g.nodeIndex[id]
	if !ok {
		node = &Node{ID: id, Contacts: make(map[cdr.Identifier]struct{})}
		g.nodeIndex[id] = node
		g.Nodes = append(g.Nodes, node)
	}

	if record.IsSMS {
		node.TotalSMS++
	} else {
		node.TotalCalls++
		node.TotalDurationSeconds += record.DurationSeconds
	}
	if counterpart != "" {
		node.Contacts[counterpart] = struct{}{}
	}

	// Device and location stick with the first record that carries them.
	if node.DeviceID == "" && record.DeviceID != "" {
		node.DeviceID = record.DeviceID
	}
	if node.Location == "" && record.Location != "" {
		node.Location = record.Location
	}

	ts := record.Timestamp
	if !ts.IsZero() {
		if node.FirstSeen.IsZero() || ts.Before(node.FirstSeen) {
			node.FirstSeen = ts
		}
		if ts.After(node.LastSeen) {
			node.LastSeen = ts
		}
	}
}

func (g *Graph) connect(a, b cdr.Identifier, record cdr.Record) {
	key := NewEdgeKey(a, b)
	edge, ok := g.edgeIndex[key]
	if !ok {
		first, second := key.Endpoints()
		edge = &Edge{Key: key, A: first, B: second}
		g.edgeIndex[key] = edge
		g.Edges = append(g.Edges, edge)
	}

	edge.Records = append(edge.Records, record)
	if record.IsSMS {
		edge.SMSCount++
	} else {
		edge.CallCount++
		edge.TotalDurationSeconds += record.DurationSeconds
	}
}

// finalize derives role classes and fixes a deterministic output order
// so downstream consumers see the same graph regardless of how the
// record set was shuffled.
func (g *Graph) finalize() {
	for _, node := range g.Nodes {
		node.Role = node.roleClass()
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Edges, func(i, j int) bool { return g.Edges[i].Key < g.Edges[j].Key })
}

// Records flattens the graph back into its canonical records, one per
// edge record entry. Aggregating the result reproduces the same
// per-node and per-edge counters for all connected interactions.
func (g *Graph) Records() []cdr.Record {
	var out []cdr.Record
	for _, edge := range g.Edges {
		out = append(out, edge.Records...)
	}
	return out
}
