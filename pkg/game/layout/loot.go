package layout

import (
	"math"
	"math/rand"

	"derelict/pkg/engine/geom"
)

// placeLoot decides container positions for every room: a count sampled from
// the room type's range, distributed by the type's placement strategy.
func placeLoot(ctx *generationContext) {
	for _, room := range ctx.rooms {
		def, ok := Def(room.Type)
		if !ok || def.MaxContainers == 0 {
			continue
		}
		count := def.MinContainers
		if def.MaxContainers > def.MinContainers {
			count += ctx.rng.Intn(def.MaxContainers - def.MinContainers + 1)
		}
		if count == 0 {
			continue
		}
		positions := placeContainers(ctx.rng, def.Strategy, room.Rect, count, nil)
		for _, pos := range positions {
			room.Containers = append(room.Containers, ContainerPlacement{
				Position: pos,
				Type:     rollContainerType(ctx.rng, def, ctx.tier),
			})
		}
	}
}

// rollContainerType rolls from the room's declared pool, or from the generic
// tier-scaled table when the pool is empty.
func rollContainerType(rng *rand.Rand, def RoomDef, tier int) ContainerType {
	pool := def.Pool
	if len(pool) == 0 {
		pool = genericContainers(tier)
	}
	return pool[rng.Intn(len(pool))]
}

// strategyFunc distributes up to count container positions inside a room
// rect, keeping ContainerSpacing from each other and from existing, and
// RoomMargin from the walls. Strategies degrade gracefully: fewer positions
// than requested when spacing cannot be satisfied.
type strategyFunc func(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point

var strategies = map[Strategy]strategyFunc{
	StrategyWallAdjacent:  placeWallAdjacent,
	StrategyGrid:          placeGrid,
	StrategyCorner:        placeCorner,
	StrategyCenterCluster: placeCenterCluster,
	StrategyScattered:     placeScattered,
}

// placeContainers dispatches to the strategy, falling back to scattered for
// unknown values.
func placeContainers(rng *rand.Rand, s Strategy, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	fn, ok := strategies[s]
	if !ok {
		fn = placeScattered
	}
	return fn(rng, room, count, existing)
}

// placeWallAdjacent enumerates candidate points along all four interior
// walls, shuffles them, and greedily accepts points that respect spacing.
func placeWallAdjacent(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	inner := room.Inflate(-RoomMargin)
	if inner.W <= 0 || inner.H <= 0 {
		return nil
	}

	var candidates []geom.Point
	for x := inner.X; x <= inner.MaxX(); x += ContainerSpacing {
		candidates = append(candidates, geom.Pt(x, inner.Y), geom.Pt(x, inner.MaxY()))
	}
	for y := inner.Y + ContainerSpacing; y < inner.MaxY(); y += ContainerSpacing {
		candidates = append(candidates, geom.Pt(inner.X, y), geom.Pt(inner.MaxX(), y))
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return acceptSpaced(candidates, count, existing)
}

// placeGrid tiles the room interior into roughly-square cells sized from the
// spacing constant, jitters each cell center, shuffles, and takes the first
// count positions.
func placeGrid(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	inner := room.Inflate(-RoomMargin)
	if inner.W <= 0 || inner.H <= 0 {
		return nil
	}

	cols := int(inner.W/ContainerSpacing) + 1
	rows := int(inner.H/ContainerSpacing) + 1
	stepX := inner.W / float64(cols)
	stepY := inner.H / float64(rows)

	var candidates []geom.Point
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := geom.Pt(
				inner.X+(float64(col)+0.5)*stepX+(rng.Float64()*2-1)*ContainerJitter,
				inner.Y+(float64(row)+0.5)*stepY+(rng.Float64()*2-1)*ContainerJitter,
			)
			candidates = append(candidates, room.ClampPoint(p, RoomMargin))
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return acceptSpaced(candidates, count, existing)
}

// placeCorner fills the four inset corners first, then overflows via the
// wall-adjacent strategy.
func placeCorner(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	inner := room.Inflate(-RoomMargin)
	if inner.W <= 0 || inner.H <= 0 {
		return nil
	}

	corners := []geom.Point{
		geom.Pt(inner.X, inner.Y),
		geom.Pt(inner.MaxX(), inner.Y),
		geom.Pt(inner.X, inner.MaxY()),
		geom.Pt(inner.MaxX(), inner.MaxY()),
	}
	out := acceptSpaced(corners, count, existing)
	if len(out) < count {
		avoid := append(append([]geom.Point{}, existing...), out...)
		out = append(out, placeWallAdjacent(rng, room, count-len(out), avoid)...)
	}
	return out
}

// placeCenterCluster polar-samples points within a radius fraction of the
// room's shorter dimension, clamped to the room bounds and rejection-sampled
// against spacing.
func placeCenterCluster(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	center := room.Center()
	short := math.Min(room.W, room.H)
	radius := short * 0.35

	var out []geom.Point
	for len(out) < count {
		placed := false
		for try := 0; try < clusterAttempts; try++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := rng.Float64() * radius
			p := geom.Pt(center.X+math.Cos(angle)*dist, center.Y+math.Sin(angle)*dist)
			p = room.ClampPoint(p, RoomMargin)
			if spacedFrom(p, out) && spacedFrom(p, existing) {
				out = append(out, p)
				placed = true
				break
			}
		}
		if !placed {
			break
		}
	}
	return out
}

// placeScattered uniformly rejection-samples positions within the room
// margins. The default fallback strategy.
func placeScattered(rng *rand.Rand, room geom.Rect, count int, existing []geom.Point) []geom.Point {
	inner := room.Inflate(-RoomMargin)
	if inner.W <= 0 || inner.H <= 0 {
		return nil
	}

	var out []geom.Point
	for len(out) < count {
		placed := false
		for try := 0; try < scatterAttempts; try++ {
			p := geom.Pt(inner.X+rng.Float64()*inner.W, inner.Y+rng.Float64()*inner.H)
			if spacedFrom(p, out) && spacedFrom(p, existing) {
				out = append(out, p)
				placed = true
				break
			}
		}
		if !placed {
			break
		}
	}
	return out
}

// acceptSpaced greedily takes candidates that keep ContainerSpacing from all
// accepted and existing positions, until count or exhaustion.
func acceptSpaced(candidates []geom.Point, count int, existing []geom.Point) []geom.Point {
	var out []geom.Point
	for _, p := range candidates {
		if len(out) >= count {
			break
		}
		if spacedFrom(p, out) && spacedFrom(p, existing) {
			out = append(out, p)
		}
	}
	return out
}

// containerPositions flattens a room's container positions.
func containerPositions(room *RoomInstance) []geom.Point {
	out := make([]geom.Point, 0, len(room.Containers))
	for _, c := range room.Containers {
		out = append(out, c.Position)
	}
	return out
}

func spacedFrom(p geom.Point, others []geom.Point) bool {
	for _, o := range others {
		if geom.Dist(p, o) < ContainerSpacing {
			return false
		}
	}
	return true
}
