// Package world draws the scrolling rows, the traffic and the player
// characters from the engine's snapshots.
package world

import (
	"image/color"

	"crossyview/gfx"
	"crossyview/snapshot"
)

// Tile is the size of one world cell in screen pixels.
const Tile = 8

// Background is painted before anything else each frame.
var Background = gfx.Hex("#BAEAAA")

type palette struct{ even, odd color.NRGBA }

var rowPalettes = map[snapshot.RowKind]palette{
	snapshot.RowRiver: {gfx.Hex("#6c6ce2"), gfx.Hex("#5b5be7")},
	snapshot.RowRoad:  {gfx.Hex("#59595d"), gfx.Hex("#646469")},
	snapshot.RowOther: {gfx.Hex("#c4e6b5"), gfx.Hex("#d1bfdb")},
}

// Lobby ready bar geometry, in pixels.
const (
	readyBarX       = 7 * Tile
	readyBarY       = 14 * Tile
	readyBarW       = 6 * Tile
	readyBarH       = 4 * Tile
	readyFullFrames = 120
)

// View renders rows and cars.
type View struct {
	car, carFlipped *gfx.Sprite
}

func NewView(atlas *gfx.Atlas) *View {
	return &View{car: atlas.Lookup(gfx.SprCar), carFlipped: atlas.Lookup(gfx.SprCarFlip)}
}

// DrawRows paints each row as a strip of checkered tiles.
func (v *View) DrawRows(c gfx.Canvas, rows []snapshot.Row) {
	for _, r := range rows {
		pal, ok := rowPalettes[r.Kind]
		if !ok {
			pal = rowPalettes[snapshot.RowOther]
		}
		y := float64(r.Y * Tile)
		for i := 0; i < gfx.ScreenW/Tile; i++ {
			col := pal.odd
			if (i+r.RowID)%2 == 0 {
				col = pal.even
			}
			c.FillRect(float64(i*Tile), y, Tile, Tile, col)
		}
	}
}

// DrawCars draws every car centred on its world position.
func (v *View) DrawCars(c gfx.Canvas, cars []snapshot.Car) {
	for _, car := range cars {
		spr := v.car
		if car.Flipped {
			spr = v.carFlipped
		}
		if spr == nil {
			continue
		}
		c.DrawSprite(spr, 0, gfx.SpriteOp{X: car.X * Tile, Y: car.Y * Tile})
	}
}

// DrawLobby shows how long every player has stood in the ready zone as a
// filling bar.
func (v *View) DrawLobby(c gfx.Canvas, readyFrames int) {
	p := min(max(float64(readyFrames)/readyFullFrames, 0), 1)
	c.FillRect(readyBarX, readyBarY, readyBarW*p, readyBarH, color.White)
	// 1px outline
	c.FillRect(readyBarX, readyBarY, readyBarW, 1, color.Black)
	c.FillRect(readyBarX, readyBarY+readyBarH-1, readyBarW, 1, color.Black)
	c.FillRect(readyBarX, readyBarY, 1, readyBarH, color.Black)
	c.FillRect(readyBarX+readyBarW-1, readyBarY, 1, readyBarH, color.Black)
}
