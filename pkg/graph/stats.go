package graph

// LinkStats summarizes the classified edge population for reporting.
type LinkStats struct {
	TotalLinks      int
	PrimaryLinks    int
	SecondaryLinks  int
	WeakLinks       int
	AverageStrength float64
}

// Summarize tallies classifications across the graph's edges. Edges
// must already be classified; unclassified edges count as weak.
func Summarize(g *Graph) LinkStats {
	stats := LinkStats{TotalLinks: len(g.Edges)}
	if stats.TotalLinks == 0 {
		return stats
	}

	scoreSum := 0
	for _, e := range g.Edges {
		scoreSum += e.Strength.StrengthScore
		switch e.Strength.Classification {
		case LinkPrimary:
			stats.PrimaryLinks++
		case LinkSecondary:
			stats.SecondaryLinks++
		default:
			stats.WeakLinks++
		}
	}
	stats.AverageStrength = float64(scoreSum) / float64(stats.TotalLinks)
	return stats
}
