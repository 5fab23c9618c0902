package layout

import (
	"math"

	"github.com/telintel/cdrlink/pkg/graph"
)

// NodeSize maps interaction volume to a node diameter on a log scale,
// clamped so hubs stay readable and quiet numbers stay visible.
func NodeSize(interactions int) float64 {
	return math.Min(60, math.Max(12, math.Log(float64(interactions)+1)*8+8))
}

// EdgeWidth maps interaction volume to a stroke width.
func EdgeWidth(interactions int) float64 {
	return math.Min(8, math.Max(1, float64(interactions)*0.5))
}

// restDistance is the spring rest length of an edge: a base length
// grown by edge width, shortened for strong pairs and stretched for
// weak ones so classification reads directly off the layout.
func restDistance(e *graph.Edge) float64 {
	base := math.Min(120, 40+EdgeWidth(e.Interactions())*5)
	switch e.Strength.Classification {
	case graph.LinkPrimary:
		return base * 0.7
	case graph.LinkSecondary:
		return base * 0.85
	case graph.LinkWeak:
		return base * 1.2
	}
	return base
}

// stiffness is the spring constant of an edge by classification.
func stiffness(e *graph.Edge) float64 {
	switch e.Strength.Classification {
	case graph.LinkPrimary:
		return 0.5
	case graph.LinkSecondary:
		return 0.4
	case graph.LinkWeak:
		return 0.2
	}
	return 0.3
}
