// Package cellgrid provides a dense 2D cell-occupancy grid used for placement
// validity checks and for deriving the walkable/collision grid consumed by
// physics and rendering.
package cellgrid

import (
	"math"

	"derelict/pkg/engine/geom"
)

// State is the occupancy state of one grid cell.
type State uint8

const (
	Empty State = iota
	Wall
	Room
	Corridor
	Door
	Reserved
)

// Coord identifies one cell by column and row.
type Coord struct {
	Col int
	Row int
}

// Grid is a dense cell-state grid sized from a world-unit footprint.
// All writes are bounds-checked no-ops outside the grid.
type Grid struct {
	cells    [][]State // indexed [row][col]
	cols     int
	rows     int
	cellSize float64
}

// New allocates a grid of ceil(footprint / cellSize) cells and marks the
// outermost ring as Wall.
func New(footprint geom.Point, cellSize float64) *Grid {
	cols := int(math.Ceil(footprint.X / cellSize))
	rows := int(math.Ceil(footprint.Y / cellSize))
	if cols < 3 {
		cols = 3
	}
	if rows < 3 {
		rows = 3
	}

	g := &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
	}
	g.cells = make([][]State, rows)
	for row := 0; row < rows; row++ {
		g.cells[row] = make([]State, cols)
	}
	for row := 0; row < rows; row++ {
		g.cells[row][0] = Wall
		g.cells[row][cols-1] = Wall
	}
	for col := 0; col < cols; col++ {
		g.cells[0][col] = Wall
		g.cells[rows-1][col] = Wall
	}
	return g
}

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return g.rows
}

// CellSize returns the world-unit size of one cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// InBounds reports whether the coordinate lies within the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Get returns the state of the cell, or Wall for out-of-bounds coordinates so
// callers treat everything beyond the grid as solid.
func (g *Grid) Get(col, row int) State {
	if !g.InBounds(col, row) {
		return Wall
	}
	return g.cells[row][col]
}

// Set writes the cell state. No-op outside the grid.
func (g *Grid) Set(col, row int, s State) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[row][col] = s
}

// MarkRoom sets all cells under the world-unit rect to Room.
func (g *Grid) MarkRoom(r geom.Rect) {
	c0, r0 := g.WorldToCell(geom.Pt(r.X, r.Y))
	c1, r1 := g.WorldToCell(geom.Pt(r.MaxX()-1, r.MaxY()-1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.Set(col, row, Room)
		}
	}
}

// MarkCorridor converts the cell to Corridor only when it is currently Empty.
// Room cells are never overwritten. Returns whether the write happened.
func (g *Grid) MarkCorridor(col, row int) bool {
	if g.Get(col, row) != Empty {
		return false
	}
	g.cells[row][col] = Corridor
	return true
}

// WorldToCell converts a world position to a cell coordinate.
func (g *Grid) WorldToCell(p geom.Point) (col, row int) {
	return int(p.X / g.cellSize), int(p.Y / g.cellSize)
}

// CellCenter returns the world position of the cell's midpoint.
func (g *Grid) CellCenter(col, row int) geom.Point {
	return geom.Pt(
		(float64(col)+0.5)*g.cellSize,
		(float64(row)+0.5)*g.cellSize,
	)
}

// Walkable returns a boolean grid, true iff the cell state is Room or
// Corridor. Pure query; the result is a fresh copy.
func (g *Grid) Walkable() [][]bool {
	out := make([][]bool, g.rows)
	for row := 0; row < g.rows; row++ {
		out[row] = make([]bool, g.cols)
		for col := 0; col < g.cols; col++ {
			s := g.cells[row][col]
			out[row][col] = s == Room || s == Corridor
		}
	}
	return out
}
