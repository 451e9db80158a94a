package layout

import (
	"testing"

	"derelict/pkg/engine/cellgrid"
	"derelict/pkg/engine/geom"
	"derelict/pkg/game/faction"
)

// addTestRoom appends a room with a fixed rect, bypassing the placer.
func addTestRoom(ctx *generationContext, typ RoomType, rect geom.Rect) int {
	ctx.rooms = append(ctx.rooms, &RoomInstance{Type: typ, Rect: rect, DisplayName: typ.String()})
	ctx.grid.MarkRoom(rect)
	return len(ctx.rooms) - 1
}

func TestEdgePoint_FacesTargetAndInsets(t *testing.T) {
	room := geom.R(0, 0, 128, 128)
	right := edgePoint(room, geom.Pt(576, 64))
	if right != geom.Pt(96, 64) {
		t.Errorf("edge point toward the east = %+v, want (96, 64)", right)
	}
	below := edgePoint(room, geom.Pt(64, 500))
	if below != geom.Pt(64, 96) {
		t.Errorf("edge point toward the south = %+v, want (64, 96)", below)
	}
}

func TestCarveCorridor_ConnectsAndCarves(t *testing.T) {
	ctx := newContext(3, faction.Consortium, 1)
	a := addTestRoom(ctx, RoomCargoBay, geom.R(64, 64, 128, 128))
	b := addTestRoom(ctx, RoomStorage, geom.R(512, 320, 128, 128))

	carveCorridor(ctx, a, b)

	if len(ctx.corridors) != 1 {
		t.Fatalf("corridors = %d, want 1", len(ctx.corridors))
	}
	if len(ctx.corridors[0].Cells) == 0 {
		t.Error("corridor carved no cells")
	}
	if !linked(ctx.rooms[a], b) || !linked(ctx.rooms[b], a) {
		t.Error("carveCorridor did not record the bidirectional link")
	}
}

// Aligned rooms degenerate to a single straight corridor; carving must still
// work and must never overwrite room cells.
func TestCarveCorridor_DegenerateStraightSegment(t *testing.T) {
	ctx := newContext(3, faction.Consortium, 2)
	a := addTestRoom(ctx, RoomCargoBay, geom.R(64, 64, 128, 128))
	b := addTestRoom(ctx, RoomStorage, geom.R(512, 64, 128, 128))

	carveCorridor(ctx, a, b)

	if len(ctx.corridors[0].Cells) == 0 {
		t.Fatal("degenerate corridor carved no cells")
	}
	for _, c := range ctx.corridors[0].Cells {
		if ctx.grid.Get(c.Col, c.Row) != cellgrid.Corridor {
			t.Errorf("recorded corridor cell (%d,%d) is %v", c.Col, c.Row, ctx.grid.Get(c.Col, c.Row))
		}
	}
	assertRoomCellsIntact(t, ctx, geom.R(64, 64, 128, 128))
	assertRoomCellsIntact(t, ctx, geom.R(512, 64, 128, 128))
}

// A corridor whose path crosses a third room must leave that room's cells
// untouched: Room always has precedence over Corridor.
func TestCarveCorridor_RoomPrecedence(t *testing.T) {
	ctx := newContext(3, faction.Consortium, 3)
	a := addTestRoom(ctx, RoomCargoBay, geom.R(64, 256, 128, 128))
	addTestRoom(ctx, RoomVault, geom.R(384, 256, 128, 128)) // in the way
	b := addTestRoom(ctx, RoomStorage, geom.R(704, 256, 128, 128))

	carveCorridor(ctx, a, b)

	assertRoomCellsIntact(t, ctx, geom.R(384, 256, 128, 128))
}

func assertRoomCellsIntact(t *testing.T, ctx *generationContext, rect geom.Rect) {
	t.Helper()
	c0, r0 := ctx.grid.WorldToCell(geom.Pt(rect.X, rect.Y))
	c1, r1 := ctx.grid.WorldToCell(geom.Pt(rect.MaxX()-1, rect.MaxY()-1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if ctx.grid.Get(col, row) != cellgrid.Room {
				t.Fatalf("room cell (%d,%d) overwritten to %v", col, row, ctx.grid.Get(col, row))
			}
		}
	}
}

func TestConnectCorridors_SpansAllRooms(t *testing.T) {
	ctx := newContext(2, faction.Consortium, 4)
	addTestRoom(ctx, RoomAirlock, geom.R(64, 320, 128, 96))
	addTestRoom(ctx, RoomEscapeBay, geom.R(1088, 320, 128, 96))
	addTestRoom(ctx, RoomCargoBay, geom.R(384, 96, 192, 160))
	addTestRoom(ctx, RoomStorage, geom.R(384, 512, 160, 128))
	addTestRoom(ctx, RoomCrewQuarters, geom.R(736, 128, 192, 128))

	connectCorridors(ctx)

	adj := func(i int) []int { return ctx.rooms[i].ConnectedTo }
	for i := 1; i < len(ctx.rooms); i++ {
		if !graphConnected(len(ctx.rooms), adj, 0, i) {
			t.Errorf("room %d not connected to the entry after MST", i)
		}
	}
	// MST over n rooms carves at least n-1 corridors.
	if len(ctx.corridors) < len(ctx.rooms)-1 {
		t.Errorf("corridors = %d, want >= %d", len(ctx.corridors), len(ctx.rooms)-1)
	}
}

func TestConnectCorridors_SingleRoomNoOp(t *testing.T) {
	ctx := newContext(1, faction.Consortium, 5)
	addTestRoom(ctx, RoomAirlock, geom.R(64, 64, 128, 96))
	connectCorridors(ctx)
	if len(ctx.corridors) != 0 {
		t.Errorf("corridors = %d, want 0 for a single room", len(ctx.corridors))
	}
}
