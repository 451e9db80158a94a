package layout

import (
	"math/rand"

	"derelict/pkg/engine/cellgrid"
	"derelict/pkg/engine/geom"
	"derelict/pkg/game/faction"
)

// ContainerPlacement is one lootable container inside a room.
type ContainerPlacement struct {
	Position geom.Point
	Type     ContainerType
}

// RoomInstance is a placed room. The rect is immutable after creation;
// container and lock fields are mutated by later phases. Rooms are never
// removed once placed.
type RoomInstance struct {
	Type        RoomType
	Rect        geom.Rect
	DisplayName string
	Containers  []ContainerPlacement
	ConnectedTo []int // indices of directly corridor-linked rooms
	IsLocked    bool
	LockTier    int
}

// Center returns the midpoint of the room rect.
func (r *RoomInstance) Center() geom.Point {
	return r.Rect.Center()
}

// CorridorInstance records one rasterized corridor. Write-once output of the
// corridor phase, consulted only for rendering.
type CorridorInstance struct {
	FromRoom int
	ToRoom   int
	Cells    []cellgrid.Coord
	Rects    []geom.Rect // one world-unit rect per straight segment
	Width    int         // cells
}

// KeycardSpawn places the keycard that opens one locked room.
type KeycardSpawn struct {
	Position     geom.Point
	Tier         int
	ForRoom      int  // index of the locked room this keycard opens
	RoomIdx      int  // index of the room the keycard spawns in
	InContainer  bool
	ContainerIdx int // index into the spawn room's Containers when InContainer
}

// LockedDoor marks one room as keycard-locked.
type LockedDoor struct {
	RoomIdx int
	Tier    int
}

// GeneratedLayout is the assembled output of one generation run, immutable
// once returned.
type GeneratedLayout struct {
	Tier      int
	Faction   faction.ID
	Footprint geom.Point
	Seed      int64

	Rooms              []RoomInstance
	CorridorRects      []geom.Rect
	Walkable           [][]bool // [row][col], true iff Room or Corridor
	ContainerPositions []geom.Point
	KeycardSpawns      []KeycardSpawn
	LockedDoors        []LockedDoor

	EntryPosition geom.Point
	ExitPosition  geom.Point
	Theme         faction.Theme
}

// ExitReachable reports whether the exit (room 1) is reachable from the
// entry (room 0) over ConnectedTo edges. Pure query over the returned graph;
// the same check runs as the validator phase during generation.
func (l *GeneratedLayout) ExitReachable() bool {
	return graphConnected(len(l.Rooms), func(i int) []int { return l.Rooms[i].ConnectedTo }, entryRoomIdx, exitRoomIdx)
}

// Room indices fixed by contract: entry is always 0, exit always 1.
const (
	entryRoomIdx = 0
	exitRoomIdx  = 1
)

// generationContext owns all mutable state for one generation run: the
// seeded rng, the occupancy grid, and the rooms placed so far. Each phase
// mutates the context; nothing is shared between runs.
type generationContext struct {
	rng  *rand.Rand
	tier int
	fac  faction.ID
	seed int64

	footprint geom.Point
	grid      *cellgrid.Grid

	rooms       []*RoomInstance
	corridors   []CorridorInstance
	lockedDoors []LockedDoor
	keycards    []KeycardSpawn
}

func newContext(tier int, fac faction.ID, seed int64) *generationContext {
	fp := footprintForTier(tier)
	return &generationContext{
		rng:       rand.New(rand.NewSource(seed)),
		tier:      tier,
		fac:       fac,
		seed:      seed,
		footprint: fp,
		grid:      cellgrid.New(fp, CellSize),
	}
}

// connect records a bidirectional corridor link between two rooms.
func (ctx *generationContext) connect(a, b int) {
	ctx.rooms[a].ConnectedTo = appendUnique(ctx.rooms[a].ConnectedTo, b)
	ctx.rooms[b].ConnectedTo = appendUnique(ctx.rooms[b].ConnectedTo, a)
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// graphConnected runs a BFS over an adjacency accessor from one room index
// to another.
func graphConnected(n int, adj func(int) []int, from, to int) bool {
	if from >= n || to >= n {
		return false
	}
	visited := make([]bool, n)
	queue := []int{from}
	visited[from] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		for _, next := range adj(cur) {
			if next >= 0 && next < n && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
