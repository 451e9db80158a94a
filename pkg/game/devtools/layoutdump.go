// Package devtools provides developer tools for inspecting generated
// layouts. Output is human- and diff-friendly: sections, key: value lines,
// one ASCII grid.
package devtools

import (
	"fmt"
	"io"

	"derelict/pkg/game/layout"
)

// Grid symbols.
const (
	symVoid      = '#'
	symRoom      = '.'
	symCorridor  = ','
	symContainer = 'c'
	symKeycard   = 'K'
	symLocked    = 'L'
	symEntry     = 'E'
	symExit      = 'X'
)

// WriteDump writes a sectioned text dump of the layout: metadata, legend,
// ASCII grid, and per-room/keycard detail lines.
func WriteDump(w io.Writer, l *layout.GeneratedLayout) {
	fmt.Fprintln(w, "== layout ==")
	fmt.Fprintf(w, "tier: %d\n", l.Tier)
	fmt.Fprintf(w, "faction: %s\n", l.Faction)
	fmt.Fprintf(w, "seed: %d\n", l.Seed)
	fmt.Fprintf(w, "footprint: %.0fx%.0f\n", l.Footprint.X, l.Footprint.Y)
	fmt.Fprintf(w, "rooms: %d\n", len(l.Rooms))
	fmt.Fprintf(w, "corridor_rects: %d\n", len(l.CorridorRects))
	fmt.Fprintf(w, "containers: %d\n", len(l.ContainerPositions))
	fmt.Fprintf(w, "locked_doors: %d\n", len(l.LockedDoors))
	fmt.Fprintf(w, "keycards: %d\n", len(l.KeycardSpawns))
	fmt.Fprintf(w, "exit_reachable: %v\n", l.ExitReachable())

	fmt.Fprintln(w, "\n== grid ==")
	fmt.Fprintf(w, "legend: %c void  %c room  %c corridor  %c container  %c keycard  %c locked  %c entry  %c exit\n",
		symVoid, symRoom, symCorridor, symContainer, symKeycard, symLocked, symEntry, symExit)
	writeGrid(w, l)

	fmt.Fprintln(w, "\n== rooms ==")
	for i, room := range l.Rooms {
		lock := ""
		if room.IsLocked {
			lock = fmt.Sprintf("  LOCKED tier %d", room.LockTier)
		}
		fmt.Fprintf(w, "%2d %-28s %-14s rect(%.0f,%.0f %.0fx%.0f) containers=%d links=%v%s\n",
			i, room.DisplayName, room.Type,
			room.Rect.X, room.Rect.Y, room.Rect.W, room.Rect.H,
			len(room.Containers), room.ConnectedTo, lock)
	}

	if len(l.KeycardSpawns) > 0 {
		fmt.Fprintln(w, "\n== keycards ==")
		for _, k := range l.KeycardSpawns {
			where := "floor"
			if k.InContainer {
				where = fmt.Sprintf("container %d", k.ContainerIdx)
			}
			fmt.Fprintf(w, "tier %d for room %d: in room %d (%s) at (%.0f,%.0f)\n",
				k.Tier, k.ForRoom, k.RoomIdx, where, k.Position.X, k.Position.Y)
		}
	}
}

// writeGrid renders the walkable grid with corridor shading and overlays for
// containers, keycards, lock markers, and entry/exit.
func writeGrid(w io.Writer, l *layout.GeneratedLayout) {
	rows := len(l.Walkable)
	if rows == 0 {
		return
	}
	cols := len(l.Walkable[0])

	cellOf := func(x, y float64) (int, int, bool) {
		col := int(x / layout.CellSize)
		row := int(y / layout.CellSize)
		return col, row, row >= 0 && row < rows && col >= 0 && col < cols
	}

	corridor := make(map[[2]int]bool)
	for _, r := range l.CorridorRects {
		c0, r0, ok0 := cellOf(r.X, r.Y)
		c1, r1, ok1 := cellOf(r.MaxX()-1, r.MaxY()-1)
		if !ok0 || !ok1 {
			continue
		}
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				corridor[[2]int{row, col}] = true
			}
		}
	}

	marks := make(map[[2]int]rune)
	put := func(x, y float64, sym rune) {
		if col, row, ok := cellOf(x, y); ok {
			marks[[2]int{row, col}] = sym
		}
	}
	for _, p := range l.ContainerPositions {
		put(p.X, p.Y, symContainer)
	}
	for _, room := range l.Rooms {
		if room.IsLocked {
			c := room.Rect.Center()
			put(c.X, c.Y, symLocked)
		}
	}
	for _, k := range l.KeycardSpawns {
		put(k.Position.X, k.Position.Y, symKeycard)
	}
	put(l.EntryPosition.X, l.EntryPosition.Y, symEntry)
	put(l.ExitPosition.X, l.ExitPosition.Y, symExit)

	for row := 0; row < rows; row++ {
		line := make([]rune, cols)
		for col := 0; col < cols; col++ {
			key := [2]int{row, col}
			switch {
			case marks[key] != 0:
				line[col] = marks[key]
			case !l.Walkable[row][col]:
				line[col] = symVoid
			case corridor[key]:
				line[col] = symCorridor
			default:
				line[col] = symRoom
			}
		}
		fmt.Fprintln(w, string(line))
	}
}
