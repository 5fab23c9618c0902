package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telintel/cdrlink/pkg/cdr"
)

func filterFixture() *Graph {
	var records []cdr.Record
	// strong pair: 20 calls over 5 days
	for i := 0; i < 20; i++ {
		records = append(records, callRecord("a7654321", "b7654321", day(1+i%5), 120))
	}
	// weak pair: one short call
	records = append(records, callRecord("c7654321", "d7654321", day(2), 15))
	// sms-only pair
	records = append(records,
		smsRecord("e7654321", "f7654321", day(3)),
		smsRecord("f7654321", "e7654321", day(3)),
	)
	return Build(records)
}

func TestApplyDefaultKeepsEverything(t *testing.T) {
	g := filterFixture()
	sub := Apply(g, DefaultFilters(), DefaultThresholds())
	assert.Len(t, sub.Nodes, len(g.Nodes))
	assert.Len(t, sub.Edges, len(g.Edges))
}

func TestApplyMinInteractionsAboveAllYieldsEmptyGraph(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.MinInteractions = 1000

	sub := Apply(g, f, DefaultThresholds())
	assert.Empty(t, sub.Nodes)
	assert.Empty(t, sub.Edges)
}

func TestApplyHidesWeakLinks(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.ShowWeakLinks = false

	sub := Apply(g, f, DefaultThresholds())
	for _, e := range sub.Edges {
		assert.NotEqual(t, LinkWeak, e.Strength.Classification)
	}
	// endpoints of dropped weak edges fall out with them
	_, hasWeakNode := sub.Node("c7654321")
	assert.False(t, hasWeakNode)
	_, hasStrongNode := sub.Node("a7654321")
	assert.True(t, hasStrongNode)
}

func TestApplyLinkTypeAllowList(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.LinkTypes = []Classification{LinkPrimary}

	sub := Apply(g, f, DefaultThresholds())
	require.NotEmpty(t, sub.Edges)
	for _, e := range sub.Edges {
		assert.Equal(t, LinkPrimary, e.Strength.Classification)
	}
}

func TestApplyMinStrengthScore(t *testing.T) {
	g := filterFixture()
	Classify(g, DefaultThresholds())
	strong, ok := g.Edge(NewEdgeKey("a7654321", "b7654321"))
	require.True(t, ok)

	f := DefaultFilters()
	f.MinStrengthScore = strong.Strength.StrengthScore

	sub := Apply(g, f, DefaultThresholds())
	require.Len(t, sub.Edges, 1)
	assert.Equal(t, strong.Key, sub.Edges[0].Key)
}

func TestApplyInteractionTypeCalls(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.InteractionType = InteractionsCalls

	sub := Apply(g, f, DefaultThresholds())
	_, hasSMSOnly := sub.Node("e7654321")
	assert.False(t, hasSMSOnly)
	_, hasCaller := sub.Node("a7654321")
	assert.True(t, hasCaller)
}

func TestApplyIndividualsAllowList(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.Individuals = []cdr.Identifier{"a7654321", "b7654321"}

	sub := Apply(g, f, DefaultThresholds())
	require.Len(t, sub.Nodes, 2)
	require.Len(t, sub.Edges, 1)
}

func TestApplyKeepsNodesWhenNoEdgeSurvives(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.MinStrengthScore = 100 // nothing scores this high in the fixture

	sub := Apply(g, f, DefaultThresholds())
	assert.Empty(t, sub.Edges)
	// with no surviving edges, node pruning is skipped so the view
	// still shows who was active
	assert.Len(t, sub.Nodes, len(g.Nodes))
}

func TestApplyDateRange(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.DateRange = DateRange{Start: day(3), End: day(3)}

	sub := Apply(g, f, DefaultThresholds())
	_, hasSMSPair := sub.Node("e7654321")
	assert.True(t, hasSMSPair)
	_, hasWeakPair := sub.Node("c7654321")
	assert.False(t, hasWeakPair)
}

func TestApplyDurationRange(t *testing.T) {
	g := filterFixture()
	f := DefaultFilters()
	f.DurationRange = DurationRange{Min: 10, Max: 30}

	sub := Apply(g, f, DefaultThresholds())
	require.Len(t, sub.Edges, 1)
	assert.Equal(t, NewEdgeKey("c7654321", "d7654321"), sub.Edges[0].Key)
}

func TestApplyLeavesSourceStructureIntact(t *testing.T) {
	g := filterFixture()
	beforeNodes := len(g.Nodes)
	beforeEdges := len(g.Edges)

	f := DefaultFilters()
	f.MinInteractions = 1000
	_ = Apply(g, f, DefaultThresholds())

	assert.Len(t, g.Nodes, beforeNodes)
	assert.Len(t, g.Edges, beforeEdges)

	// Classification is the one write Apply makes into its input.
	for _, e := range g.Edges {
		assert.NotEmpty(t, e.Strength.Classification)
	}
}

func TestFiltersValidate(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Validate())

	f.MinStrengthScore = 250
	assert.Error(t, f.Validate())

	f = DefaultFilters()
	f.DurationRange = DurationRange{Min: 100, Max: 10}
	assert.Error(t, f.Validate())

	f = DefaultFilters()
	f.DateRange = DateRange{Start: day(5), End: day(1)}
	assert.Error(t, f.Validate())
}

func TestSummarize(t *testing.T) {
	g := filterFixture()
	Classify(g, DefaultThresholds())
	stats := Summarize(g)

	assert.Equal(t, 3, stats.TotalLinks)
	assert.Equal(t, 1, stats.PrimaryLinks)
	assert.Equal(t, stats.TotalLinks, stats.PrimaryLinks+stats.SecondaryLinks+stats.WeakLinks)
	assert.Greater(t, stats.AverageStrength, 0.0)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(Build(nil))
	assert.Equal(t, 0, stats.TotalLinks)
	assert.Equal(t, 0.0, stats.AverageStrength)
}
