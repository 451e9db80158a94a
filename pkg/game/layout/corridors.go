package layout

import (
	"math"

	"derelict/pkg/engine/cellgrid"
	"derelict/pkg/engine/geom"
)

// connectCorridors builds a minimum spanning tree over room centers with
// Prim's algorithm, starting from the entry room, and rasterizes one
// L-shaped corridor per edge. Tier >= 3 decks with at least 4 rooms may get
// an extra loop edge on top of the MST.
func connectCorridors(ctx *generationContext) {
	n := len(ctx.rooms)
	if n < 2 {
		return
	}

	// Prim's: repeatedly attach the unconnected room with minimum center
	// distance to any connected room. O(n^2) is fine at these room counts.
	inTree := make([]bool, n)
	inTree[entryRoomIdx] = true
	for added := 1; added < n; added++ {
		bestFrom, bestTo := -1, -1
		bestDist := math.MaxFloat64
		for i := 0; i < n; i++ {
			if !inTree[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if inTree[j] {
					continue
				}
				d := geom.Dist(ctx.rooms[i].Center(), ctx.rooms[j].Center())
				if d < bestDist {
					bestDist = d
					bestFrom, bestTo = i, j
				}
			}
		}
		if bestTo < 0 {
			break
		}
		carveCorridor(ctx, bestFrom, bestTo)
		inTree[bestTo] = true
	}

	addLoopEdges(ctx)
}

// addLoopEdges adds 0-1 extra corridors between previously-unconnected room
// pairs for navigational variety. Never removes MST edges.
func addLoopEdges(ctx *generationContext) {
	n := len(ctx.rooms)
	if ctx.tier < 3 || n < 4 {
		return
	}
	extra := ctx.rng.Intn(2)
	for placed := 0; placed < extra; {
		found := false
		for try := 0; try < extraEdgeTries; try++ {
			a := ctx.rng.Intn(n)
			b := ctx.rng.Intn(n)
			if a == b || linked(ctx.rooms[a], b) {
				continue
			}
			carveCorridor(ctx, a, b)
			found = true
			break
		}
		if !found {
			break
		}
		placed++
	}
}

func linked(r *RoomInstance, idx int) bool {
	for _, c := range r.ConnectedTo {
		if c == idx {
			return true
		}
	}
	return false
}

// carveCorridor rasterizes an L-shaped corridor between two rooms' nearest
// edge points and records the link. The bend order is chosen uniformly at
// random per edge. When the edge points share a row or column the corridor
// degenerates to a single straight segment; that is accepted as-is.
func carveCorridor(ctx *generationContext, a, b int) {
	pa := edgePoint(ctx.rooms[a].Rect, ctx.rooms[b].Center())
	pb := edgePoint(ctx.rooms[b].Rect, ctx.rooms[a].Center())

	ca := coordOf(ctx, pa)
	cb := coordOf(ctx, pb)

	var bend cellgrid.Coord
	if ctx.rng.Intn(2) == 0 {
		bend = cellgrid.Coord{Col: cb.Col, Row: ca.Row} // horizontal first
	} else {
		bend = cellgrid.Coord{Col: ca.Col, Row: cb.Row} // vertical first
	}

	corridor := CorridorInstance{FromRoom: a, ToRoom: b, Width: CorridorWidth}
	rasterizeSegment(ctx, &corridor, ca, bend)
	rasterizeSegment(ctx, &corridor, bend, cb)

	ctx.corridors = append(ctx.corridors, corridor)
	ctx.connect(a, b)
}

// edgePoint returns the point on the rect's edge facing the target center,
// inset one cell into the room interior to guarantee contact.
func edgePoint(r geom.Rect, target geom.Point) geom.Point {
	c := r.Center()
	d := target.Sub(c)
	halfW := r.W / 2
	halfH := r.H / 2

	// Compare the direction against the half-extents to pick the facing edge.
	if math.Abs(d.X)*halfH >= math.Abs(d.Y)*halfW {
		x := c.X + halfW - CellSize
		if d.X < 0 {
			x = c.X - halfW + CellSize
		}
		return geom.Pt(x, c.Y)
	}
	y := c.Y + halfH - CellSize
	if d.Y < 0 {
		y = c.Y - halfH + CellSize
	}
	return geom.Pt(c.X, y)
}

// rasterizeSegment walks cells from one coordinate to the other, stamping a
// CorridorWidth-thick band of Empty cells as Corridor per step. Room cells
// are never overwritten (the grid enforces precedence).
func rasterizeSegment(ctx *generationContext, corridor *CorridorInstance, from, to cellgrid.Coord) {
	stepCol := sign(to.Col - from.Col)
	stepRow := sign(to.Row - from.Row)

	horizontal := from.Row == to.Row

	col, row := from.Col, from.Row
	for {
		stampBand(ctx, corridor, col, row, horizontal)
		if col == to.Col && row == to.Row {
			break
		}
		col += stepCol
		row += stepRow
	}

	corridor.Rects = append(corridor.Rects, segmentRect(ctx, from, to, horizontal))
}

// stampBand marks the width-thick neighborhood of one path cell.
func stampBand(ctx *generationContext, corridor *CorridorInstance, col, row int, horizontal bool) {
	for w := 0; w < CorridorWidth; w++ {
		c, r := col, row
		if horizontal {
			r += w
		} else {
			c += w
		}
		if ctx.grid.MarkCorridor(c, r) {
			corridor.Cells = append(corridor.Cells, cellgrid.Coord{Col: c, Row: r})
		}
	}
}

// segmentRect returns the world-unit rect covering one straight segment's
// stamped band, consumed by rendering.
func segmentRect(ctx *generationContext, from, to cellgrid.Coord, horizontal bool) geom.Rect {
	minCol := min(from.Col, to.Col)
	maxCol := max(from.Col, to.Col)
	minRow := min(from.Row, to.Row)
	maxRow := max(from.Row, to.Row)
	if horizontal {
		maxRow += CorridorWidth - 1
	} else {
		maxCol += CorridorWidth - 1
	}
	size := ctx.grid.CellSize()
	return geom.R(
		float64(minCol)*size,
		float64(minRow)*size,
		float64(maxCol-minCol+1)*size,
		float64(maxRow-minRow+1)*size,
	)
}

func coordOf(ctx *generationContext, p geom.Point) cellgrid.Coord {
	col, row := ctx.grid.WorldToCell(p)
	return cellgrid.Coord{Col: col, Row: row}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
