package layout

// Raster maps simulation-space positions onto a character-cell grid so
// a terminal can show the arrangement. Zoom scales distances about the
// viewport center; cells that land outside the grid are dropped, which
// makes zooming in act as a crop.
type Raster struct {
	Cols, Rows    int
	Width, Height float64 // simulation space being projected
	Zoom          float64 // <=0 means 1
}

// Cell projects a position to a grid cell. ok is false when the zoomed
// position falls off the grid or the raster is degenerate.
func (r Raster) Cell(p Position) (col, row int, ok bool) {
	if r.Cols <= 0 || r.Rows <= 0 || r.Width <= 0 || r.Height <= 0 {
		return 0, 0, false
	}
	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	fx := 0.5 + (p.X-r.Width/2)*zoom/r.Width
	fy := 0.5 + (p.Y-r.Height/2)*zoom/r.Height
	col = int(fx * float64(r.Cols))
	row = int(fy * float64(r.Rows))
	if col < 0 || col >= r.Cols || row < 0 || row >= r.Rows {
		return 0, 0, false
	}
	return col, row, true
}
