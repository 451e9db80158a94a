package cellgrid

import (
	"testing"

	"derelict/pkg/engine/geom"
)

func TestNew_PerimeterIsWall(t *testing.T) {
	g := New(geom.Pt(320, 160), 32) // 10x5 cells
	if g.Cols() != 10 || g.Rows() != 5 {
		t.Fatalf("grid size = %dx%d, want 10x5", g.Cols(), g.Rows())
	}
	for col := 0; col < g.Cols(); col++ {
		if g.Get(col, 0) != Wall || g.Get(col, g.Rows()-1) != Wall {
			t.Fatalf("perimeter cell at col %d not Wall", col)
		}
	}
	for row := 0; row < g.Rows(); row++ {
		if g.Get(0, row) != Wall || g.Get(g.Cols()-1, row) != Wall {
			t.Fatalf("perimeter cell at row %d not Wall", row)
		}
	}
	if g.Get(4, 2) != Empty {
		t.Error("interior cell should start Empty")
	}
}

func TestGet_OutOfBoundsIsWall(t *testing.T) {
	g := New(geom.Pt(96, 96), 32)
	if g.Get(-1, 0) != Wall || g.Get(0, 99) != Wall {
		t.Error("out-of-bounds cells should read as Wall")
	}
}

func TestSet_OutOfBoundsIsNoOp(t *testing.T) {
	g := New(geom.Pt(96, 96), 32)
	g.Set(-1, -1, Room) // must not panic
	g.Set(99, 99, Room)
}

func TestMarkRoom_CoversRect(t *testing.T) {
	g := New(geom.Pt(320, 320), 32)
	g.MarkRoom(geom.R(64, 64, 96, 64)) // cells (2..4, 2..3)
	for row := 2; row <= 3; row++ {
		for col := 2; col <= 4; col++ {
			if g.Get(col, row) != Room {
				t.Errorf("cell (%d,%d) = %v, want Room", col, row, g.Get(col, row))
			}
		}
	}
	if g.Get(5, 2) == Room {
		t.Error("cell outside the rect marked as Room")
	}
}

func TestMarkCorridor_NeverOverwritesRoom(t *testing.T) {
	g := New(geom.Pt(320, 320), 32)
	g.MarkRoom(geom.R(64, 64, 32, 32))
	if g.MarkCorridor(2, 2) {
		t.Error("MarkCorridor overwrote a Room cell")
	}
	if g.Get(2, 2) != Room {
		t.Errorf("cell state = %v, want Room", g.Get(2, 2))
	}
	if !g.MarkCorridor(5, 5) {
		t.Error("MarkCorridor refused an Empty cell")
	}
}

func TestWalkable_RoomAndCorridorOnly(t *testing.T) {
	g := New(geom.Pt(160, 160), 32)
	g.MarkRoom(geom.R(32, 32, 32, 32))
	g.MarkCorridor(2, 1)
	walk := g.Walkable()
	if !walk[1][1] {
		t.Error("Room cell not walkable")
	}
	if !walk[1][2] {
		t.Error("Corridor cell not walkable")
	}
	if walk[0][0] {
		t.Error("Wall cell walkable")
	}
	if walk[3][3] {
		t.Error("Empty cell walkable")
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	g := New(geom.Pt(320, 320), 32)
	p := g.CellCenter(3, 4)
	col, row := g.WorldToCell(p)
	if col != 3 || row != 4 {
		t.Errorf("round trip gave (%d,%d), want (3,4)", col, row)
	}
}
