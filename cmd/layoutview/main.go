// Command layoutview is a developer previewer for generated deck plans. It
// draws rooms, corridors, containers, locks, and keycards as colored rects,
// enough to eyeball a layout without the full interior renderer.
//
// Keys: R reseeds, T cycles the tier.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"derelict/pkg/game/faction"
	"derelict/pkg/game/layout"
)

const (
	windowW = 1280
	windowH = 800
	maxTier = 6
)

type viewer struct {
	gen  *layout.Generator
	tier int
	fac  faction.ID
	seed int64
	plan *layout.GeneratedLayout
}

func (v *viewer) regenerate() {
	plan, err := v.gen.Generate(v.tier, v.fac, v.seed)
	if err != nil {
		log.Fatalf("Cannot generate layout: %v", err)
	}
	v.plan = plan
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.seed++
		v.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.tier = v.tier%maxTier + 1
		v.regenerate()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	plan := v.plan
	theme := plan.Theme
	screen.Fill(rgba(theme.Hull, 255))

	// Fit the footprint into the window with a small border.
	scaleX := float64(windowW-40) / plan.Footprint.X
	scaleY := float64(windowH-60) / plan.Footprint.Y
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	ox, oy := 20.0, 40.0

	drawRect := func(r layoutRect, c color.RGBA) {
		vector.DrawFilledRect(screen,
			float32(ox+r.x*scale), float32(oy+r.y*scale),
			float32(r.w*scale), float32(r.h*scale), c, false)
	}

	for _, r := range plan.CorridorRects {
		drawRect(layoutRect{r.X, r.Y, r.W, r.H}, rgba(theme.Accent, 110))
	}
	for _, room := range plan.Rooms {
		c := rgba(theme.Floor, 255)
		if room.IsLocked {
			c = rgba(theme.Accent, 255)
		}
		drawRect(layoutRect{room.Rect.X, room.Rect.Y, room.Rect.W, room.Rect.H}, c)
	}
	for _, p := range plan.ContainerPositions {
		drawRect(layoutRect{p.X - 6, p.Y - 6, 12, 12}, color.RGBA{230, 230, 230, 255})
	}
	for _, k := range plan.KeycardSpawns {
		drawRect(layoutRect{k.Position.X - 8, k.Position.Y - 8, 16, 16}, color.RGBA{250, 220, 60, 255})
	}
	drawRect(layoutRect{plan.EntryPosition.X - 10, plan.EntryPosition.Y - 10, 20, 20}, color.RGBA{80, 220, 80, 255})
	drawRect(layoutRect{plan.ExitPosition.X - 10, plan.ExitPosition.Y - 10, 20, 20}, color.RGBA{230, 70, 70, 255})

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"tier %d  %s  seed %d  |  rooms %d  locks %d  reachable %v  |  R: reseed  T: tier",
		plan.Tier, plan.Faction, plan.Seed, len(plan.Rooms), len(plan.LockedDoors), plan.ExitReachable()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowH
}

type layoutRect struct {
	x, y, w, h float64
}

func rgba(c faction.RGB, a uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func main() {
	tier := flag.Int("tier", 3, "difficulty tier")
	fac := flag.String("faction", "", "faction; empty rolls one")
	seed := flag.Int64("seed", 1, "generation seed")
	flag.Parse()

	v := &viewer{
		gen:  layout.New(),
		tier: *tier,
		fac:  faction.Parse(*fac),
		seed: *seed,
	}
	v.regenerate()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("Derelict Layout Preview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
