package layout

import (
	"fmt"
	"log"
	"math"

	"derelict/pkg/engine/geom"
)

// placeRooms populates ctx.rooms: entry and exit first, then the tier's
// required rooms, then weighted fill until the target count is met or the
// attempt budget runs out.
func placeRooms(ctx *generationContext) {
	placeEntryAndExit(ctx)

	for _, t := range requiredRooms(ctx.tier) {
		def, ok := Def(t)
		if !ok {
			continue
		}
		if !tryPlaceRoomType(ctx, def, def.Hint) {
			log.Printf("Warning: could not place required room %s (tier %d), skipping", t, ctx.tier)
		}
	}

	fillRooms(ctx)
}

// placeEntryAndExit creates the entry room (index 0) near the west edge and
// the exit room (index 1) near the east edge. Both are created
// unconditionally; a missing primary definition falls back to storage.
func placeEntryAndExit(ctx *generationContext) {
	entryDef, ok := Def(RoomAirlock)
	if !ok {
		entryDef, _ = Def(RoomStorage)
	}
	exitDef, ok := Def(RoomEscapeBay)
	if !ok {
		exitDef, _ = Def(RoomStorage)
	}

	entrySize := rollRoomSize(ctx, entryDef)
	entryX := 2 * CellSize
	entryY := snapToCell(ctx.footprint.Y/2 - entrySize.Y/2 + jitter(ctx, 2*CellSize))
	addRoom(ctx, entryDef, clampToDeck(ctx, geom.R(entryX, entryY, entrySize.X, entrySize.Y)))

	exitSize := rollRoomSize(ctx, exitDef)
	exitX := snapToCell(ctx.footprint.X - 2*CellSize - exitSize.X)
	exitY := ctx.footprint.Y/2 - exitSize.Y/2 + jitter(ctx, 2*CellSize)
	if ctx.tier >= 3 {
		// Higher tiers push the exit into a corner.
		if ctx.rng.Intn(2) == 0 {
			exitY = 2 * CellSize
		} else {
			exitY = ctx.footprint.Y - 2*CellSize - exitSize.Y
		}
	}
	addRoom(ctx, exitDef, clampToDeck(ctx, geom.R(exitX, snapToCell(exitY), exitSize.X, exitSize.Y)))
}

// tryPlaceRoomType rolls a size for the room type and tries up to
// hintCandidates hint-directed positions. Failure is non-fatal; the caller
// just skips the type.
func tryPlaceRoomType(ctx *generationContext, def RoomDef, hint PlacementHint) bool {
	size := rollRoomSize(ctx, def)
	for i := 0; i < hintCandidates; i++ {
		pos := hintedPosition(ctx, hint, size)
		rect := geom.R(pos.X, pos.Y, size.X, size.Y)
		if canPlaceRoom(ctx, rect) {
			addRoom(ctx, def, rect)
			return true
		}
	}
	return false
}

// fillRooms rolls room types from the faction/tier-weighted table and places
// them at uniformly sampled positions until the target count is reached or
// the attempt budget is exhausted.
func fillRooms(ctx *generationContext) {
	target := targetRoomCount(ctx.rng, ctx.tier)
	for attempt := 0; attempt < fillAttempts && len(ctx.rooms) < target; attempt++ {
		def, ok := rollFillType(ctx)
		if !ok {
			break
		}
		size := rollRoomSize(ctx, def)
		pos := hintedPosition(ctx, HintAny, size)
		rect := geom.R(pos.X, pos.Y, size.X, size.Y)
		if canPlaceRoom(ctx, rect) {
			addRoom(ctx, def, rect)
		}
	}
}

// rollFillType rolls a room type from the weighted fill table, excluding
// unique types that are already placed.
func rollFillType(ctx *generationContext) (RoomDef, bool) {
	placed := make(map[RoomType]bool, len(ctx.rooms))
	for _, r := range ctx.rooms {
		placed[r.Type] = true
	}

	total := 0
	weights := make([]int, 0, len(fillableTypes()))
	types := fillableTypes()
	for _, t := range types {
		w := fillWeight(ctx.fac, t)
		if d, _ := Def(t); d.Unique && placed[t] {
			w = 0
		}
		weights = append(weights, w)
		total += w
	}
	if total == 0 {
		return RoomDef{}, false
	}

	pick := ctx.rng.Intn(total)
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			d, _ := Def(types[i])
			return d, true
		}
	}
	return RoomDef{}, false
}

// rollRoomSize resolves a candidate size: a lerp between preferred and max
// biased toward preferred, grid-snapped and clamped to [min,max].
func rollRoomSize(ctx *generationContext, def RoomDef) geom.Point {
	t := ctx.rng.Float64()
	t *= t // bias toward the preferred size
	w := def.PreferredSize.X + (def.MaxSize.X-def.PreferredSize.X)*t
	h := def.PreferredSize.Y + (def.MaxSize.Y-def.PreferredSize.Y)*t
	w = clamp(snapToCell(w), def.MinSize.X, def.MaxSize.X)
	h = clamp(snapToCell(h), def.MinSize.Y, def.MaxSize.Y)
	return geom.Pt(w, h)
}

// hintedPosition samples a grid-snapped top-left position for a room of the
// given size, biased by the placement hint.
func hintedPosition(ctx *generationContext, hint PlacementHint, size geom.Point) geom.Point {
	usableW := ctx.footprint.X - 2*CellSize - size.X
	usableH := ctx.footprint.Y - 2*CellSize - size.Y
	if usableW < CellSize {
		usableW = CellSize
	}
	if usableH < CellSize {
		usableH = CellSize
	}

	var x, y float64
	switch hint {
	case HintFront:
		x = CellSize + ctx.rng.Float64()*usableW/3
		y = CellSize + ctx.rng.Float64()*usableH
	case HintBack:
		x = CellSize + usableW*2/3 + ctx.rng.Float64()*usableW/3
		y = CellSize + ctx.rng.Float64()*usableH
	case HintCenter:
		x = CellSize + usableW/4 + ctx.rng.Float64()*usableW/2
		y = CellSize + usableH/4 + ctx.rng.Float64()*usableH/2
	case HintSide:
		x = CellSize + ctx.rng.Float64()*usableW
		if ctx.rng.Intn(2) == 0 {
			y = CellSize + ctx.rng.Float64()*usableH/4
		} else {
			y = CellSize + usableH*3/4 + ctx.rng.Float64()*usableH/4
		}
	default:
		x = CellSize + ctx.rng.Float64()*usableW
		y = CellSize + ctx.rng.Float64()*usableH
	}
	return geom.Pt(snapToCell(x), snapToCell(y))
}

// canPlaceRoom checks placement validity: the rect must lie fully within the
// footprint inset by the hull wall, and must not intersect any existing room
// once both are grown by the minimum gap.
func canPlaceRoom(ctx *generationContext, rect geom.Rect) bool {
	deck := geom.R(CellSize, CellSize, ctx.footprint.X-2*CellSize, ctx.footprint.Y-2*CellSize)
	if !deck.ContainsRect(rect) {
		return false
	}
	grown := rect.Inflate(MinRoomGap)
	for _, r := range ctx.rooms {
		if grown.Intersects(r.Rect.Inflate(MinRoomGap)) {
			return false
		}
	}
	return true
}

// addRoom appends the room, names it, and marks its cells on the grid.
func addRoom(ctx *generationContext, def RoomDef, rect geom.Rect) {
	adjective := roomAdjectives[ctx.rng.Intn(len(roomAdjectives))]
	name := fmt.Sprintf("%s %s", adjective, def.Type.DisplayName())
	nth := 1
	for _, r := range ctx.rooms {
		if r.Type == def.Type {
			nth++
		}
	}
	if nth > 1 {
		name = fmt.Sprintf("%s %d", name, nth)
	}

	ctx.rooms = append(ctx.rooms, &RoomInstance{
		Type:        def.Type,
		Rect:        rect,
		DisplayName: name,
	})
	ctx.grid.MarkRoom(rect)
}

// clampToDeck pushes a rect back inside the hull if jitter nudged it out.
func clampToDeck(ctx *generationContext, rect geom.Rect) geom.Rect {
	if rect.X < CellSize {
		rect.X = CellSize
	}
	if rect.Y < CellSize {
		rect.Y = CellSize
	}
	if rect.MaxX() > ctx.footprint.X-CellSize {
		rect.X = snapToCell(ctx.footprint.X - CellSize - rect.W)
	}
	if rect.MaxY() > ctx.footprint.Y-CellSize {
		rect.Y = snapToCell(ctx.footprint.Y - CellSize - rect.H)
	}
	return rect
}

// jitter returns a uniform offset in [-max, max].
func jitter(ctx *generationContext, max float64) float64 {
	return (ctx.rng.Float64()*2 - 1) * max
}

func snapToCell(v float64) float64 {
	return math.Round(v/CellSize) * CellSize
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
