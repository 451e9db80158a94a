package layout

import (
	"fmt"
	"time"

	"derelict/pkg/game/faction"
)

// Generator produces derelict deck plans. Each Generate call owns a fresh
// seeded rng and grid, so independent calls never share state and the same
// (tier, faction, seed) triple always replays the same layout.
type Generator struct{}

// New creates a layout generator.
func New() *Generator {
	return &Generator{}
}

// Generate runs the full pipeline: grid, rooms, corridors, loot, access
// gates, validation. faction.None rolls a faction weighted by tier; a
// negative seed requests a fresh random seed. The only error is an invalid
// tier — layout-quality problems degrade with warnings instead of failing.
func (g *Generator) Generate(tier int, fac faction.ID, seed int64) (*GeneratedLayout, error) {
	if tier < 1 {
		return nil, fmt.Errorf("layout: tier must be >= 1, got %d", tier)
	}
	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	ctx := newContext(tier, fac, seed)
	if !ctx.fac.Valid() {
		ctx.fac = faction.Roll(ctx.rng, tier)
	}

	placeRooms(ctx)
	connectCorridors(ctx)
	placeLoot(ctx)
	applyAccessGates(ctx)
	validateLayout(ctx)

	return assemble(ctx), nil
}

// assemble freezes the context into the immutable output structure.
func assemble(ctx *generationContext) *GeneratedLayout {
	out := &GeneratedLayout{
		Tier:          ctx.tier,
		Faction:       ctx.fac,
		Footprint:     ctx.footprint,
		Seed:          ctx.seed,
		Rooms:         make([]RoomInstance, len(ctx.rooms)),
		Walkable:      ctx.grid.Walkable(),
		KeycardSpawns: ctx.keycards,
		LockedDoors:   ctx.lockedDoors,
		Theme:         ctx.fac.Theme(),
	}
	for i, r := range ctx.rooms {
		out.Rooms[i] = *r
		for _, c := range r.Containers {
			out.ContainerPositions = append(out.ContainerPositions, c.Position)
		}
	}
	for _, c := range ctx.corridors {
		out.CorridorRects = append(out.CorridorRects, c.Rects...)
	}
	if len(out.Rooms) > entryRoomIdx {
		out.EntryPosition = out.Rooms[entryRoomIdx].Rect.Center()
	}
	if len(out.Rooms) > exitRoomIdx {
		out.ExitPosition = out.Rooms[exitRoomIdx].Rect.Center()
	}
	return out
}
