package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterCenterIsZoomInvariant(t *testing.T) {
	for _, zoom := range []float64{0.5, 1, 2, 4} {
		r := Raster{Cols: 40, Rows: 16, Width: 800, Height: 600, Zoom: zoom}

		col, row, ok := r.Cell(Position{X: 400, Y: 300})
		require.True(t, ok)
		assert.Equal(t, 20, col)
		assert.Equal(t, 8, row)
	}
}

func TestRasterZoomSpreadsOffCenterPositions(t *testing.T) {
	near := Raster{Cols: 40, Rows: 16, Width: 800, Height: 600, Zoom: 1}
	far := near
	far.Zoom = 4

	p := Position{X: 430, Y: 300}
	nearCol, _, ok := near.Cell(p)
	require.True(t, ok)
	farCol, _, ok := far.Cell(p)
	require.True(t, ok)

	assert.Greater(t, farCol-20, nearCol-20)
}

func TestRasterZoomInCropsEdges(t *testing.T) {
	r := Raster{Cols: 40, Rows: 16, Width: 800, Height: 600, Zoom: 4}

	_, _, ok := r.Cell(Position{X: 790, Y: 300})
	assert.False(t, ok)
}

func TestRasterZoomOutPullsEdgesInward(t *testing.T) {
	r := Raster{Cols: 40, Rows: 16, Width: 800, Height: 600, Zoom: 0.5}

	col, row, ok := r.Cell(Position{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, 10, col)
	assert.Equal(t, 4, row)
}

func TestRasterZeroZoomDefaultsToUnity(t *testing.T) {
	r := Raster{Cols: 40, Rows: 16, Width: 800, Height: 600}

	col, _, ok := r.Cell(Position{X: 600, Y: 300})
	require.True(t, ok)
	assert.Equal(t, 30, col)
}

func TestRasterDegenerateGrid(t *testing.T) {
	r := Raster{Cols: 0, Rows: 16, Width: 800, Height: 600}

	_, _, ok := r.Cell(Position{X: 400, Y: 300})
	assert.False(t, ok)
}
