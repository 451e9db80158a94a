package layout

import "log"

// validateLayout runs the final sanity check: BFS from the entry room over
// ConnectedTo must reach the exit room. A failure is logged, not fatal — the
// layout is still returned and callers are expected to retry with a new seed
// or fall back to a hand-authored template.
func validateLayout(ctx *generationContext) bool {
	ok := graphConnected(len(ctx.rooms), func(i int) []int { return ctx.rooms[i].ConnectedTo }, entryRoomIdx, exitRoomIdx)
	if !ok {
		log.Printf("Warning: generated layout fails entry->exit connectivity (tier %d seed %d)", ctx.tier, ctx.seed)
	}
	return ok
}
