// Package faction defines the factions whose derelicts the player boards.
// A faction selects a visual theme for the generated interior and biases
// which room types appear. Display names resolve through the gotext catalog
// so they can be localized like every other player-facing string.
package faction

import (
	"math/rand"

	"github.com/leonelquinteros/gotext"
)

// ID identifies a faction. None means "roll one weighted by tier".
type ID int

const (
	None ID = iota
	Consortium
	Syndicate
	Remnant
	Wanderers
)

// count is the number of concrete factions (None excluded).
const count = 4

// String returns the stable identifier used in dumps and logs.
func (id ID) String() string {
	switch id {
	case Consortium:
		return "consortium"
	case Syndicate:
		return "syndicate"
	case Remnant:
		return "remnant"
	case Wanderers:
		return "wanderers"
	default:
		return "none"
	}
}

// DisplayName returns the localized faction name.
func (id ID) DisplayName() string {
	switch id {
	case Consortium:
		return gotext.Get("FACTION_CONSORTIUM")
	case Syndicate:
		return gotext.Get("FACTION_SYNDICATE")
	case Remnant:
		return gotext.Get("FACTION_REMNANT")
	case Wanderers:
		return gotext.Get("FACTION_WANDERERS")
	default:
		return gotext.Get("FACTION_UNKNOWN")
	}
}

// Valid reports whether id is a concrete faction.
func (id ID) Valid() bool {
	return id >= Consortium && id <= Wanderers
}

// rollWeights returns the weight of each concrete faction for the given tier.
// Corporate wrecks dominate low tiers; military remnant ships show up as the
// tier climbs.
func rollWeights(tier int) [count]int {
	w := [count]int{4, 3, 1, 2} // Consortium, Syndicate, Remnant, Wanderers
	if tier >= 3 {
		w[2] = 3
	}
	if tier >= 5 {
		w[2] = 5
		w[0] = 2
	}
	return w
}

// Roll picks a faction weighted by tier using the provided generator.
func Roll(rng *rand.Rand, tier int) ID {
	w := rollWeights(tier)
	total := 0
	for _, n := range w {
		total += n
	}
	pick := rng.Intn(total)
	for i, n := range w {
		pick -= n
		if pick < 0 {
			return ID(i + 1)
		}
	}
	return Consortium
}

// RGB is an 8-bit color channel triple. Kept renderer-agnostic so both the
// terminal dump and any graphical consumer can use it.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Theme holds the visual theme colors applied to a generated interior.
type Theme struct {
	Hull   RGB // exterior walls and void
	Floor  RGB // room floors
	Accent RGB // corridors, locked-door markers
}

var themes = map[ID]Theme{
	Consortium: {Hull: RGB{38, 42, 52}, Floor: RGB{88, 96, 112}, Accent: RGB{64, 148, 196}},
	Syndicate:  {Hull: RGB{46, 36, 40}, Floor: RGB{104, 84, 88}, Accent: RGB{186, 94, 60}},
	Remnant:    {Hull: RGB{34, 40, 36}, Floor: RGB{78, 94, 82}, Accent: RGB{108, 160, 96}},
	Wanderers:  {Hull: RGB{44, 40, 32}, Floor: RGB{110, 98, 74}, Accent: RGB{196, 168, 88}},
}

// Theme returns the faction's visual theme. Unknown factions get the
// Consortium theme so callers always have usable colors.
func (id ID) Theme() Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return themes[Consortium]
}

// Parse maps a stable identifier back to an ID. Unknown strings return None.
func Parse(s string) ID {
	switch s {
	case "consortium":
		return Consortium
	case "syndicate":
		return Syndicate
	case "remnant":
		return Remnant
	case "wanderers":
		return Wanderers
	default:
		return None
	}
}
