// Package layout generates the interior deck plan of a derelict vessel:
// non-overlapping rooms on a uniform grid, minimum-spanning-tree corridors,
// lootable container placements, and keycard-locked rooms that never block
// the path to the exit.
package layout

import (
	"math/rand"

	"github.com/leonelquinteros/gotext"

	"derelict/pkg/engine/geom"
	"derelict/pkg/game/faction"
)

// Grid and spacing constants. These are hand-tuned against the 32-unit cell
// scale; changing them changes visual and gameplay parity.
const (
	// CellSize is the world-unit size of one grid cell.
	CellSize = 32.0

	// MinRoomGap is the margin every room rect is grown by when testing
	// overlap, keeping at least one wall's worth of hull between rooms.
	MinRoomGap = 2 * CellSize

	// ContainerSpacing is the minimum distance between two containers.
	ContainerSpacing = 48.0

	// RoomMargin insets container placement from the room walls.
	RoomMargin = 24.0

	// ContainerJitter is the max per-axis offset applied to grid-strategy
	// container cells.
	ContainerJitter = 10.0

	// CorridorWidth is the rasterized corridor thickness in cells.
	CorridorWidth = 2
)

// Placement attempt budgets. Small fixed constants are the only safeguard
// against unbounded work (no timeouts, no cancellation).
const (
	hintCandidates  = 5  // positions tried per hinted room placement
	fillAttempts    = 40 // random placement attempts in the fill phase
	scatterAttempts = 30 // rejection-sampling attempts per scattered container
	clusterAttempts = 30 // rejection-sampling attempts per clustered container
	extraEdgeTries  = 8  // room-pair draws when adding loop corridors
)

// RoomType is the enumerated category of a room.
type RoomType int

const (
	RoomAirlock RoomType = iota // entry
	RoomEscapeBay               // exit
	RoomBridge
	RoomCargoBay
	RoomStorage
	RoomVault
	RoomArmory
	RoomCrewQuarters
	RoomMedBay
	RoomEngineering
	RoomMessHall
	RoomLab
)

// String returns the stable identifier used in dumps and logs.
func (t RoomType) String() string {
	switch t {
	case RoomAirlock:
		return "airlock"
	case RoomEscapeBay:
		return "escape_bay"
	case RoomBridge:
		return "bridge"
	case RoomCargoBay:
		return "cargo_bay"
	case RoomStorage:
		return "storage"
	case RoomVault:
		return "vault"
	case RoomArmory:
		return "armory"
	case RoomCrewQuarters:
		return "crew_quarters"
	case RoomMedBay:
		return "med_bay"
	case RoomEngineering:
		return "engineering"
	case RoomMessHall:
		return "mess_hall"
	case RoomLab:
		return "lab"
	default:
		return "unknown"
	}
}

// DisplayName returns the localized room base name.
func (t RoomType) DisplayName() string {
	switch t {
	case RoomAirlock:
		return gotext.Get("ROOM_AIRLOCK")
	case RoomEscapeBay:
		return gotext.Get("ROOM_ESCAPE_BAY")
	case RoomBridge:
		return gotext.Get("ROOM_BRIDGE")
	case RoomCargoBay:
		return gotext.Get("ROOM_CARGO_BAY")
	case RoomStorage:
		return gotext.Get("ROOM_STORAGE")
	case RoomVault:
		return gotext.Get("ROOM_VAULT")
	case RoomArmory:
		return gotext.Get("ROOM_ARMORY")
	case RoomCrewQuarters:
		return gotext.Get("ROOM_CREW_QUARTERS")
	case RoomMedBay:
		return gotext.Get("ROOM_MED_BAY")
	case RoomEngineering:
		return gotext.Get("ROOM_ENGINEERING")
	case RoomMessHall:
		return gotext.Get("ROOM_MESS_HALL")
	case RoomLab:
		return gotext.Get("ROOM_LAB")
	default:
		return gotext.Get("ROOM_UNKNOWN")
	}
}

// ContainerType is the enumerated category of a lootable container.
type ContainerType int

const (
	ContainerCrate ContainerType = iota
	ContainerLocker
	ContainerCase
	ContainerSafe
	ContainerMedKit
	ContainerToolbox
)

// String returns the stable identifier used in dumps and logs.
func (t ContainerType) String() string {
	switch t {
	case ContainerCrate:
		return "crate"
	case ContainerLocker:
		return "locker"
	case ContainerCase:
		return "case"
	case ContainerSafe:
		return "safe"
	case ContainerMedKit:
		return "medkit"
	case ContainerToolbox:
		return "toolbox"
	default:
		return "unknown"
	}
}

// PlacementHint biases where on the deck a room is placed.
type PlacementHint int

const (
	HintAny    PlacementHint = iota
	HintFront                // toward the entry side
	HintBack                 // toward the exit side
	HintCenter               // middle band of the deck
	HintSide                 // along the top or bottom edge
)

// Strategy is the closed set of container placement algorithms.
type Strategy int

const (
	StrategyScattered Strategy = iota
	StrategyWallAdjacent
	StrategyGrid
	StrategyCorner
	StrategyCenterCluster
)

// RoomDef declares the shape, loot, and placement behavior of a room type.
// Sizes are world units and must be CellSize multiples.
type RoomDef struct {
	Type          RoomType
	MinSize       geom.Point
	PreferredSize geom.Point
	MaxSize       geom.Point
	MinContainers int
	MaxContainers int
	Strategy      Strategy
	Hint          PlacementHint
	Pool          []ContainerType // empty means roll from the generic table
	FillWeight    int             // weight in the fill-phase roll; 0 = never rolled
	Unique        bool            // at most one instance per layout
}

var roomDefs = map[RoomType]RoomDef{
	RoomAirlock: {
		Type:          RoomAirlock,
		MinSize:       geom.Pt(4*CellSize, 3*CellSize),
		PreferredSize: geom.Pt(5*CellSize, 4*CellSize),
		MaxSize:       geom.Pt(6*CellSize, 5*CellSize),
		MinContainers: 0, MaxContainers: 1,
		Strategy: StrategyWallAdjacent, Hint: HintFront,
		Pool:   []ContainerType{ContainerLocker},
		Unique: true,
	},
	RoomEscapeBay: {
		Type:          RoomEscapeBay,
		MinSize:       geom.Pt(4*CellSize, 3*CellSize),
		PreferredSize: geom.Pt(5*CellSize, 4*CellSize),
		MaxSize:       geom.Pt(7*CellSize, 5*CellSize),
		MinContainers: 0, MaxContainers: 1,
		Strategy: StrategyWallAdjacent, Hint: HintBack,
		Pool:   []ContainerType{ContainerCrate},
		Unique: true,
	},
	RoomBridge: {
		Type:          RoomBridge,
		MinSize:       geom.Pt(5*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(6*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(8*CellSize, 6*CellSize),
		MinContainers: 1, MaxContainers: 3,
		Strategy: StrategyWallAdjacent, Hint: HintBack,
		Pool:       []ContainerType{ContainerCase, ContainerLocker},
		FillWeight: 2, Unique: true,
	},
	RoomCargoBay: {
		Type:          RoomCargoBay,
		MinSize:       geom.Pt(6*CellSize, 5*CellSize),
		PreferredSize: geom.Pt(8*CellSize, 6*CellSize),
		MaxSize:       geom.Pt(11*CellSize, 8*CellSize),
		MinContainers: 4, MaxContainers: 8,
		Strategy: StrategyGrid, Hint: HintCenter,
		Pool:       []ContainerType{ContainerCrate, ContainerCrate, ContainerCase},
		FillWeight: 6,
	},
	RoomStorage: {
		Type:          RoomStorage,
		MinSize:       geom.Pt(4*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(5*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(7*CellSize, 6*CellSize),
		MinContainers: 2, MaxContainers: 5,
		Strategy: StrategyCorner, Hint: HintAny,
		Pool:       []ContainerType{ContainerCrate, ContainerToolbox},
		FillWeight: 5,
	},
	RoomVault: {
		Type:          RoomVault,
		MinSize:       geom.Pt(4*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(5*CellSize, 4*CellSize),
		MaxSize:       geom.Pt(6*CellSize, 5*CellSize),
		MinContainers: 2, MaxContainers: 4,
		Strategy: StrategyCenterCluster, Hint: HintCenter,
		Pool:       []ContainerType{ContainerSafe, ContainerCase},
		FillWeight: 2, Unique: true,
	},
	RoomArmory: {
		Type:          RoomArmory,
		MinSize:       geom.Pt(4*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(6*CellSize, 4*CellSize),
		MaxSize:       geom.Pt(7*CellSize, 6*CellSize),
		MinContainers: 2, MaxContainers: 4,
		Strategy: StrategyWallAdjacent, Hint: HintAny,
		Pool:       []ContainerType{ContainerLocker, ContainerCase},
		FillWeight: 3, Unique: true,
	},
	RoomCrewQuarters: {
		Type:          RoomCrewQuarters,
		MinSize:       geom.Pt(5*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(7*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(9*CellSize, 7*CellSize),
		MinContainers: 2, MaxContainers: 5,
		Strategy: StrategyWallAdjacent, Hint: HintSide,
		Pool:       []ContainerType{ContainerLocker, ContainerLocker, ContainerCrate},
		FillWeight: 5,
	},
	RoomMedBay: {
		Type:          RoomMedBay,
		MinSize:       geom.Pt(4*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(6*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(7*CellSize, 6*CellSize),
		MinContainers: 1, MaxContainers: 3,
		Strategy: StrategyWallAdjacent, Hint: HintAny,
		Pool:       []ContainerType{ContainerMedKit, ContainerCase},
		FillWeight: 4, Unique: true,
	},
	RoomEngineering: {
		Type:          RoomEngineering,
		MinSize:       geom.Pt(5*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(7*CellSize, 6*CellSize),
		MaxSize:       geom.Pt(9*CellSize, 7*CellSize),
		MinContainers: 1, MaxContainers: 4,
		Strategy: StrategyScattered, Hint: HintBack,
		Pool:       []ContainerType{ContainerToolbox, ContainerCrate},
		FillWeight: 4, Unique: true,
	},
	RoomMessHall: {
		Type:          RoomMessHall,
		MinSize:       geom.Pt(5*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(6*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(8*CellSize, 6*CellSize),
		MinContainers: 1, MaxContainers: 3,
		Strategy: StrategyScattered, Hint: HintCenter,
		Pool:       []ContainerType{ContainerCrate, ContainerLocker},
		FillWeight: 3, Unique: true,
	},
	RoomLab: {
		Type:          RoomLab,
		MinSize:       geom.Pt(4*CellSize, 4*CellSize),
		PreferredSize: geom.Pt(6*CellSize, 5*CellSize),
		MaxSize:       geom.Pt(7*CellSize, 6*CellSize),
		MinContainers: 1, MaxContainers: 3,
		Strategy: StrategyScattered, Hint: HintAny,
		Pool:       []ContainerType{ContainerCase, ContainerMedKit},
		FillWeight: 2, Unique: true,
	},
}

// Def returns the definition for a room type and whether it exists.
func Def(t RoomType) (RoomDef, bool) {
	d, ok := roomDefs[t]
	return d, ok
}

// genericContainers is the fallback table rolled when a room declares no
// pool. Higher tiers pull rarer containers into the table.
func genericContainers(tier int) []ContainerType {
	table := []ContainerType{ContainerCrate, ContainerCrate, ContainerLocker, ContainerToolbox}
	if tier >= 3 {
		table = append(table, ContainerCase)
	}
	if tier >= 5 {
		table = append(table, ContainerSafe)
	}
	return table
}

// requiredRooms lists the room types a tier must attempt to place, in order,
// after entry and exit. A type that cannot be placed is skipped with a
// warning; the deck just comes out sparser.
func requiredRooms(tier int) []RoomType {
	req := []RoomType{RoomCargoBay, RoomCrewQuarters}
	if tier >= 2 {
		req = append(req, RoomStorage)
	}
	if tier >= 3 {
		req = append(req, RoomEngineering, RoomMedBay)
	}
	if tier >= 4 {
		req = append(req, RoomBridge, RoomArmory)
	}
	if tier >= 5 {
		req = append(req, RoomVault)
	}
	return req
}

// targetRoomCount rolls the total room count goal for the fill phase.
func targetRoomCount(rng *rand.Rand, tier int) int {
	base := 4 + tier
	jitter := rng.Intn(3) - 1 // -1..+1
	n := base + jitter
	if n < 4 {
		n = 4
	}
	if n > 14 {
		n = 14
	}
	return n
}

// footprintForTier returns the deck footprint in world units. Footprints grow
// with tier and cap at 100x60 cells.
func footprintForTier(tier int) geom.Point {
	cols := 36 + 6*tier
	rows := 22 + 4*tier
	if cols > 100 {
		cols = 100
	}
	if rows > 60 {
		rows = 60
	}
	return geom.Pt(float64(cols)*CellSize, float64(rows)*CellSize)
}

// numLockedDoors returns how many rooms the tier locks behind keycards.
// Tier 1 never locks.
func numLockedDoors(tier int) int {
	switch {
	case tier <= 1:
		return 0
	case tier <= 3:
		return 1
	case tier == 4:
		return 2
	default:
		return 3
	}
}

// rollLockTier rolls a keycard tier from a distribution skewed by vessel
// tier: higher tiers favor rarer keycards.
func rollLockTier(rng *rand.Rand, tier int) int {
	r := rng.Float64()
	switch {
	case tier >= 5:
		if r < 0.2 {
			return 1
		}
		if r < 0.55 {
			return 2
		}
		return 3
	case tier >= 3:
		if r < 0.45 {
			return 1
		}
		if r < 0.85 {
			return 2
		}
		return 3
	default:
		if r < 0.75 {
			return 1
		}
		return 2
	}
}

// fillWeight returns the fill-phase roll weight for a room type under a
// faction's preferences.
func fillWeight(fac faction.ID, t RoomType) int {
	d, ok := roomDefs[t]
	if !ok {
		return 0
	}
	w := d.FillWeight
	switch fac {
	case faction.Consortium:
		if t == RoomCargoBay || t == RoomStorage {
			w += 2
		}
	case faction.Syndicate:
		if t == RoomVault || t == RoomArmory {
			w += 2
		}
	case faction.Remnant:
		if t == RoomArmory || t == RoomBridge {
			w += 2
		}
	case faction.Wanderers:
		if t == RoomCrewQuarters || t == RoomMessHall {
			w += 2
		}
	}
	return w
}

// fillableTypes lists the room types eligible for the fill phase, in stable
// enum order so weighted rolls replay deterministically.
func fillableTypes() []RoomType {
	return []RoomType{
		RoomBridge, RoomCargoBay, RoomStorage, RoomVault, RoomArmory,
		RoomCrewQuarters, RoomMedBay, RoomEngineering, RoomMessHall, RoomLab,
	}
}

// roomAdjectives decorate generated room display names, as salvage crews
// would log them.
var roomAdjectives = []string{
	"Abandoned", "Breached", "Dark", "Derelict", "Flooded",
	"Flickering", "Sealed", "Depressurized", "Scorched", "Silent",
}
