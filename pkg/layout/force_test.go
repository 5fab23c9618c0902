package layout

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telintel/cdrlink/pkg/cdr"
	"github.com/telintel/cdrlink/pkg/graph"
)

func chainGraph() *graph.Graph {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
	}
	var records []cdr.Record
	for i := 0; i < 20; i++ {
		records = append(records, cdr.Record{
			Caller: "a7654321", Callee: "b7654321",
			Timestamp: day(1 + i%5), DurationSeconds: 120,
		})
	}
	records = append(records, cdr.Record{
		Caller: "b7654321", Callee: "c7654321",
		Timestamp: day(2), DurationSeconds: 15,
	})
	g := graph.Build(records)
	graph.Classify(g, graph.DefaultThresholds())
	return g
}

func distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestSimulationLifecycle(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	assert.Equal(t, StateIdle, sim.State())

	sim.Start(chainGraph(), 800, 600)
	assert.Equal(t, StateSimulating, sim.State())

	sim.Run()
	assert.Equal(t, StateSettled, sim.State())
	assert.False(t, sim.Step())

	sim.Restart()
	assert.Equal(t, StateSimulating, sim.State())
	assert.Equal(t, 0, sim.Steps())

	sim.Stop()
	assert.Equal(t, StateIdle, sim.State())
}

func TestSimulationPositionsWithinBounds(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(chainGraph(), 800, 600)
	sim.Run()

	positions := sim.Positions()
	require.Len(t, positions, 3)
	for id, pos := range positions {
		assert.GreaterOrEqualf(t, pos.X, 0.0, "node %s X out of bounds", id)
		assert.LessOrEqualf(t, pos.X, 800.0, "node %s X out of bounds", id)
		assert.GreaterOrEqualf(t, pos.Y, 0.0, "node %s Y out of bounds", id)
		assert.LessOrEqualf(t, pos.Y, 600.0, "node %s Y out of bounds", id)
	}
}

func TestSimulationKeepsUnconnectedApart(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(chainGraph(), 800, 600)
	sim.Run()

	positions := sim.Positions()
	distAB := distance(positions["a7654321"], positions["b7654321"])
	distBC := distance(positions["b7654321"], positions["c7654321"])
	distAC := distance(positions["a7654321"], positions["c7654321"])

	// a and c are not directly connected: they should not end up
	// closer than both connected pairs.
	assert.False(t, distAC < distAB && distAC < distBC)
}

func TestSimulationDeterministicSeeding(t *testing.T) {
	first := NewSimulation(DefaultConfig(800, 600))
	first.Start(chainGraph(), 800, 600)
	first.Run()

	second := NewSimulation(DefaultConfig(800, 600))
	second.Start(chainGraph(), 800, 600)
	second.Run()

	a := first.Positions()
	b := second.Positions()
	require.Len(t, b, len(a))
	for id, pos := range a {
		assert.InDelta(t, pos.X, b[id].X, 1e-9)
		assert.InDelta(t, pos.Y, b[id].Y, 1e-9)
	}
}

func TestSimulationSingleNodeCentered(t *testing.T) {
	g := graph.Build([]cdr.Record{{
		Caller:    "a7654321",
		Timestamp: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
	}})
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(g, 800, 600)

	assert.Equal(t, StateSettled, sim.State())
	pos := sim.Positions()["a7654321"]
	assert.Equal(t, 400.0, pos.X)
	assert.Equal(t, 300.0, pos.Y)
}

func TestSimulationEmptyGraphSettlesImmediately(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(graph.Build(nil), 800, 600)
	assert.Equal(t, StateSettled, sim.State())
	assert.Empty(t, sim.Positions())
}

func TestSimulationStartReplacesInFlightRun(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(chainGraph(), 800, 600)
	sim.Step()
	sim.Step()

	sim.Start(chainGraph(), 800, 600)
	assert.Equal(t, 0, sim.Steps())
	assert.Equal(t, StateSimulating, sim.State())
}

func TestSimulationEnergyDecays(t *testing.T) {
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(chainGraph(), 800, 600)

	for i := 0; i < 20; i++ {
		sim.Step()
	}
	early := sim.KineticEnergy()
	sim.Run()
	settled := sim.KineticEnergy()

	assert.Less(t, settled, early+1e-9)
}

func TestNodeSizeClamps(t *testing.T) {
	assert.Equal(t, 12.0, NodeSize(0))
	assert.Equal(t, 60.0, NodeSize(100000))
	assert.Greater(t, NodeSize(50), NodeSize(5))
}

func TestEdgeWidthClamps(t *testing.T) {
	assert.Equal(t, 1.0, EdgeWidth(1))
	assert.Equal(t, 8.0, EdgeWidth(100))
}

func TestExportJSON(t *testing.T) {
	g := chainGraph()
	sim := NewSimulation(DefaultConfig(800, 600))
	sim.Start(g, 800, 600)
	sim.Run()

	pg := &PositionedGraph{Graph: g, Positions: sim.Positions()}
	raw, err := pg.ExportJSON()
	require.NoError(t, err)

	var decoded struct {
		Nodes []struct {
			ID   string  `json:"id"`
			Role string  `json:"role"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
		} `json:"nodes"`
		Edges []struct {
			From           string `json:"from"`
			To             string `json:"to"`
			Classification string `json:"classification"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Nodes, 3)
	assert.Len(t, decoded.Edges, 2)
	for _, n := range decoded.Nodes {
		assert.NotEmpty(t, n.Role)
	}
	for _, e := range decoded.Edges {
		assert.NotEmpty(t, e.Classification)
	}
}
