// Package layout tests end-to-end generation invariants: determinism,
// non-overlap, connectivity, lock safety, and keycard reachability.
package layout

import (
	"reflect"
	"testing"

	"derelict/pkg/game/faction"
)

var testSeeds = []int64{1, 7, 42, 100, 9999}

func mustGenerate(t *testing.T, tier int, fac faction.ID, seed int64) *GeneratedLayout {
	t.Helper()
	plan, err := New().Generate(tier, fac, seed)
	if err != nil {
		t.Fatalf("Generate(%d, %v, %d) error: %v", tier, fac, seed, err)
	}
	return plan
}

func TestGenerate_InvalidTier(t *testing.T) {
	if _, err := New().Generate(0, faction.None, 1); err == nil {
		t.Error("Generate(0, ...) should reject tier < 1")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for tier := 1; tier <= 5; tier++ {
		a := mustGenerate(t, tier, faction.None, 100)
		b := mustGenerate(t, tier, faction.None, 100)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("tier %d seed 100: two runs produced different layouts", tier)
		}
	}
}

func TestGenerate_DeterministicWithFaction(t *testing.T) {
	a := mustGenerate(t, 5, faction.Syndicate, 100)
	b := mustGenerate(t, 5, faction.Syndicate, 100)
	if !reflect.DeepEqual(a.Rooms, b.Rooms) {
		t.Error("rooms differ between same-seed runs")
	}
	if !reflect.DeepEqual(a.ContainerPositions, b.ContainerPositions) {
		t.Error("container positions differ between same-seed runs")
	}
	if !reflect.DeepEqual(a.KeycardSpawns, b.KeycardSpawns) {
		t.Error("keycard spawns differ between same-seed runs")
	}
}

func TestGenerate_SeedHandling(t *testing.T) {
	plan := mustGenerate(t, 2, faction.None, 1234)
	if plan.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", plan.Seed)
	}
	random := mustGenerate(t, 2, faction.None, -1)
	if random.Seed < 0 {
		t.Errorf("negative seed request recorded Seed = %d, want the effective seed", random.Seed)
	}
}

func TestGenerate_FactionHonoredOrRolled(t *testing.T) {
	plan := mustGenerate(t, 3, faction.Remnant, 5)
	if plan.Faction != faction.Remnant {
		t.Errorf("Faction = %v, want Remnant", plan.Faction)
	}
	rolled := mustGenerate(t, 3, faction.None, 5)
	if !rolled.Faction.Valid() {
		t.Errorf("faction.None should roll a concrete faction, got %v", rolled.Faction)
	}
}

func TestGenerate_RoomsDoNotOverlap(t *testing.T) {
	for _, tier := range []int{1, 3, 5} {
		for _, seed := range testSeeds {
			plan := mustGenerate(t, tier, faction.None, seed)
			for i := 0; i < len(plan.Rooms); i++ {
				for j := i + 1; j < len(plan.Rooms); j++ {
					a := plan.Rooms[i].Rect.Inflate(MinRoomGap)
					b := plan.Rooms[j].Rect.Inflate(MinRoomGap)
					if a.Intersects(b) {
						t.Errorf("tier %d seed %d: rooms %d and %d overlap after gap expansion", tier, seed, i, j)
					}
				}
			}
		}
	}
}

func TestGenerate_EntryAndExitContract(t *testing.T) {
	plan := mustGenerate(t, 1, faction.None, 42)
	if len(plan.Rooms) < 3 {
		t.Fatalf("tier 1 produced %d rooms, want at least entry+exit+1", len(plan.Rooms))
	}
	if plan.Rooms[0].Type != RoomAirlock {
		t.Errorf("room 0 = %v, want airlock entry", plan.Rooms[0].Type)
	}
	if plan.Rooms[1].Type != RoomEscapeBay {
		t.Errorf("room 1 = %v, want escape bay exit", plan.Rooms[1].Type)
	}
	if plan.EntryPosition.X >= plan.Footprint.X/2 {
		t.Errorf("entry at x=%.0f, want near the left margin", plan.EntryPosition.X)
	}
	if plan.ExitPosition.X <= plan.Footprint.X/2 {
		t.Errorf("exit at x=%.0f, want near the right margin", plan.ExitPosition.X)
	}
	if len(plan.LockedDoors) != 0 {
		t.Errorf("tier 1 locked %d rooms, want 0", len(plan.LockedDoors))
	}
	if !plan.ExitReachable() {
		t.Error("exit not reachable from entry")
	}
}

func TestGenerate_ExitAlwaysReachable(t *testing.T) {
	for tier := 1; tier <= 6; tier++ {
		for _, seed := range testSeeds {
			plan := mustGenerate(t, tier, faction.None, seed)
			if !plan.ExitReachable() {
				t.Errorf("tier %d seed %d: exit unreachable", tier, seed)
			}
		}
	}
}

func TestGenerate_Tier1NeverLocks(t *testing.T) {
	for _, seed := range testSeeds {
		plan := mustGenerate(t, 1, faction.None, seed)
		if len(plan.LockedDoors) != 0 {
			t.Errorf("seed %d: tier 1 locked %d rooms", seed, len(plan.LockedDoors))
		}
	}
}

// roomPtrs adapts the output slice for helpers that operate on the
// generation-time representation.
func roomPtrs(plan *GeneratedLayout) []*RoomInstance {
	out := make([]*RoomInstance, len(plan.Rooms))
	for i := range plan.Rooms {
		out[i] = &plan.Rooms[i]
	}
	return out
}

func TestGenerate_LockedRoomsOffCriticalPath(t *testing.T) {
	for _, seed := range testSeeds {
		plan := mustGenerate(t, 5, faction.None, seed)
		// Locking never alters ConnectedTo, so the critical path over the
		// returned graph equals the pre-lock one.
		path := criticalPath(roomPtrs(plan))
		for _, door := range plan.LockedDoors {
			if door.RoomIdx < 2 {
				t.Errorf("seed %d: locked entry/exit room %d", seed, door.RoomIdx)
			}
			if path.Has(door.RoomIdx) {
				t.Errorf("seed %d: locked room %d lies on the critical path", seed, door.RoomIdx)
			}
			if !plan.Rooms[door.RoomIdx].IsLocked || plan.Rooms[door.RoomIdx].LockTier != door.Tier {
				t.Errorf("seed %d: locked_doors entry %+v disagrees with room state", seed, door)
			}
		}
	}
}

func TestGenerate_KeycardReachability(t *testing.T) {
	for _, seed := range testSeeds {
		plan := mustGenerate(t, 5, faction.None, seed)
		for _, door := range plan.LockedDoors {
			var spawns []KeycardSpawn
			for _, k := range plan.KeycardSpawns {
				if k.ForRoom == door.RoomIdx {
					spawns = append(spawns, k)
				}
			}
			if len(spawns) != 1 {
				t.Fatalf("seed %d: locked room %d has %d keycards, want exactly 1", seed, door.RoomIdx, len(spawns))
			}
			k := spawns[0]
			if plan.Rooms[k.RoomIdx].IsLocked {
				t.Errorf("seed %d: keycard for room %d spawns inside locked room %d", seed, door.RoomIdx, k.RoomIdx)
			}
			reachable := reachableExcluding(roomPtrs(plan), 0, door.RoomIdx)
			if !reachable.Has(k.RoomIdx) {
				t.Errorf("seed %d: keycard for room %d spawns in unreachable room %d", seed, door.RoomIdx, k.RoomIdx)
			}
			if k.InContainer {
				containers := plan.Rooms[k.RoomIdx].Containers
				if k.ContainerIdx < 0 || k.ContainerIdx >= len(containers) {
					t.Errorf("seed %d: keycard container index %d out of range", seed, k.ContainerIdx)
				}
			}
		}
	}
}

// openRooms BFS-walks ConnectedTo from the entry, treating still-locked
// rooms as impassable.
func openRooms(plan *GeneratedLayout, locked map[int]bool) map[int]bool {
	open := map[int]bool{0: true}
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range plan.Rooms[cur].ConnectedTo {
			if n < 0 || n >= len(plan.Rooms) || locked[n] || open[n] {
				continue
			}
			open[n] = true
			queue = append(queue, n)
		}
	}
	return open
}

// Simulates a player collecting keycards: repeatedly unlock every room whose
// keycard is reachable with the remaining locks sealed. Every locked room
// must open eventually, so no keycard hides behind its own chain of locks.
func TestGenerate_LockChainsAlwaysOpenable(t *testing.T) {
	for tier := 2; tier <= 6; tier++ {
		for _, seed := range testSeeds {
			plan := mustGenerate(t, tier, faction.None, seed)
			locked := make(map[int]bool)
			for _, d := range plan.LockedDoors {
				locked[d.RoomIdx] = true
			}
			for {
				opened := false
				reach := openRooms(plan, locked)
				for _, k := range plan.KeycardSpawns {
					if locked[k.ForRoom] && reach[k.RoomIdx] {
						delete(locked, k.ForRoom)
						opened = true
					}
				}
				if !opened {
					break
				}
			}
			if len(locked) > 0 {
				t.Errorf("tier %d seed %d: %d locked rooms can never be opened", tier, seed, len(locked))
			}
		}
	}
}

func TestGenerate_ContainerCountsBounded(t *testing.T) {
	for _, tier := range []int{2, 5} {
		for _, seed := range testSeeds {
			plan := mustGenerate(t, tier, faction.None, seed)
			for i, room := range plan.Rooms {
				def, ok := Def(room.Type)
				if !ok {
					t.Fatalf("room %d has unknown type %v", i, room.Type)
				}
				// Strategies degrade below the minimum when spacing cannot
				// be satisfied; the hard bound is max plus the locked-room
				// boost of half the placed count.
				limit := def.MaxContainers + (def.MaxContainers+1)/2
				if len(room.Containers) > limit {
					t.Errorf("tier %d seed %d: room %d (%v) has %d containers, limit %d",
						tier, seed, i, room.Type, len(room.Containers), limit)
				}
			}
		}
	}
}

func TestGenerate_ContainerPositionsInsideRooms(t *testing.T) {
	plan := mustGenerate(t, 4, faction.None, 42)
	for i, room := range plan.Rooms {
		for _, c := range room.Containers {
			if !room.Rect.Contains(c.Position) {
				t.Errorf("room %d container at %+v outside rect %+v", i, c.Position, room.Rect)
			}
		}
	}
}

func TestGenerate_WalkableCoversRooms(t *testing.T) {
	plan := mustGenerate(t, 3, faction.None, 7)
	for i, room := range plan.Rooms {
		c := room.Rect.Center()
		col := int(c.X / CellSize)
		row := int(c.Y / CellSize)
		if row < 0 || row >= len(plan.Walkable) || col < 0 || col >= len(plan.Walkable[0]) {
			t.Fatalf("room %d center cell (%d,%d) outside grid", i, col, row)
		}
		if !plan.Walkable[row][col] {
			t.Errorf("room %d center cell (%d,%d) not walkable", i, col, row)
		}
	}
}
