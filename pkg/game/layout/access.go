package layout

import (
	"log"

	"github.com/zyedidia/generic/mapset"
)

// applyAccessGates locks a tier-driven number of rooms behind keycards.
// Rooms on the entry→exit critical path are never locked, locked rooms get a
// loot boost, and every lock places exactly one keycard in a room reachable
// from the entry with all locked rooms sealed, so no keycard ever hides
// behind another lock. A lock whose keycard cannot be placed is rolled back.
func applyAccessGates(ctx *generationContext) {
	num := numLockedDoors(ctx.tier)
	if num == 0 || len(ctx.rooms) < 4 {
		return
	}

	critical := criticalPath(ctx.rooms)

	var candidates []int
	for idx := 2; idx < len(ctx.rooms); idx++ {
		if critical.Has(idx) {
			continue
		}
		def, ok := Def(ctx.rooms[idx].Type)
		if !ok || def.MaxContainers == 0 {
			continue
		}
		candidates = append(candidates, idx)
	}
	ctx.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if num > len(candidates) {
		num = len(candidates)
	}
	// Flag every chosen room before placing any keycard: the spawn BFS must
	// already see all of them as sealed.
	chosen := candidates[:num]
	for _, idx := range chosen {
		lockRoom(ctx, idx)
	}
	for _, idx := range chosen {
		room := ctx.rooms[idx]
		if !placeKeycard(ctx, idx, room.LockTier) {
			log.Printf("Warning: no reachable keycard room for %s, rolling back lock", room.DisplayName)
			rollbackLock(ctx, idx)
		}
	}
}

// criticalPath returns the set of room indices on the BFS shortest path from
// entry to exit, reconstructed via parent pointers. These rooms are
// permanently un-lockable.
func criticalPath(rooms []*RoomInstance) mapset.Set[int] {
	path := mapset.New[int]()
	if len(rooms) <= exitRoomIdx {
		return path
	}

	parent := make([]int, len(rooms))
	for i := range parent {
		parent[i] = -1
	}
	visited := mapset.New[int]()
	visited.Put(entryRoomIdx)
	queue := []int{entryRoomIdx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == exitRoomIdx {
			break
		}
		for _, n := range rooms[cur].ConnectedTo {
			if n < 0 || n >= len(rooms) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			parent[n] = cur
			queue = append(queue, n)
		}
	}

	if !visited.Has(exitRoomIdx) {
		return path
	}
	for idx := exitRoomIdx; idx != -1; idx = parent[idx] {
		path.Put(idx)
	}
	return path
}

// lockRoom assigns a lock tier and boosts the room's loot. The keycard is
// placed in a later pass, once every chosen room carries its lock flag.
func lockRoom(ctx *generationContext, idx int) {
	room := ctx.rooms[idx]
	lockTier := rollLockTier(ctx.rng, ctx.tier)
	room.IsLocked = true
	room.LockTier = lockTier
	ctx.lockedDoors = append(ctx.lockedDoors, LockedDoor{RoomIdx: idx, Tier: lockTier})

	boostLoot(ctx, room)
}

// boostLoot generates ~50% more containers for a locked room via its
// existing placement strategy, filtered against the positions already there.
func boostLoot(ctx *generationContext, room *RoomInstance) {
	def, ok := Def(room.Type)
	if !ok {
		return
	}
	extra := (len(room.Containers) + 1) / 2
	if extra == 0 {
		extra = 1
	}
	positions := placeContainers(ctx.rng, def.Strategy, room.Rect, extra, containerPositions(room))
	for _, pos := range positions {
		room.Containers = append(room.Containers, ContainerPlacement{
			Position: pos,
			Type:     rollContainerType(ctx.rng, def, ctx.tier),
		})
	}
}

// placeKeycard spawns the keycard for a locked room in a room reachable from
// entry without traversing any locked room, preferring rooms that already
// hold containers. Returns false when no reachable room exists.
func placeKeycard(ctx *generationContext, lockedIdx, lockTier int) bool {
	reachable := reachableExcluding(ctx.rooms, entryRoomIdx, lockedIdx)

	var withContainers, empty []int
	for idx := range ctx.rooms {
		if idx == lockedIdx || !reachable.Has(idx) {
			continue
		}
		if len(ctx.rooms[idx].Containers) > 0 {
			withContainers = append(withContainers, idx)
		} else {
			empty = append(empty, idx)
		}
	}

	pool := withContainers
	if len(pool) == 0 {
		pool = empty
	}
	if len(pool) == 0 {
		return false
	}
	ctx.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	spawnIdx := pool[0]
	spawnRoom := ctx.rooms[spawnIdx]

	spawn := KeycardSpawn{
		Tier:    lockTier,
		ForRoom: lockedIdx,
		RoomIdx: spawnIdx,
	}
	if len(spawnRoom.Containers) > 0 {
		spawn.InContainer = true
		spawn.ContainerIdx = ctx.rng.Intn(len(spawnRoom.Containers))
		spawn.Position = spawnRoom.Containers[spawn.ContainerIdx].Position
	} else {
		spawn.Position = spawnRoom.Rect.ClampPoint(spawnRoom.Center(), RoomMargin)
	}
	ctx.keycards = append(ctx.keycards, spawn)
	return true
}

// rollbackLock clears the room's lock state and removes its locked_doors
// entry. The sole recovery path; idempotent, and never removes the room.
func rollbackLock(ctx *generationContext, idx int) {
	ctx.rooms[idx].IsLocked = false
	ctx.rooms[idx].LockTier = 0
	doors := ctx.lockedDoors[:0]
	for _, d := range ctx.lockedDoors {
		if d.RoomIdx != idx {
			doors = append(doors, d)
		}
	}
	ctx.lockedDoors = doors
}

// reachableExcluding returns the set of room indices reachable from start
// over ConnectedTo edges, treating excluded and every locked room as
// impassable.
func reachableExcluding(rooms []*RoomInstance, start, excluded int) mapset.Set[int] {
	reachable := mapset.New[int]()
	if start >= len(rooms) || start == excluded {
		return reachable
	}
	reachable.Put(start)
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range rooms[cur].ConnectedTo {
			if n < 0 || n >= len(rooms) || n == excluded || rooms[n].IsLocked || reachable.Has(n) {
				continue
			}
			reachable.Put(n)
			queue = append(queue, n)
		}
	}
	return reachable
}
