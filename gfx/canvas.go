// Package gfx is the drawing capability handed to the presentation core.
// Components draw through the Canvas interface; ScreenCanvas renders onto an
// ebiten image and Recorder captures calls for tests.
package gfx

import "image/color"

// Logical screen size of the game view in pixels.
const (
	ScreenW = 160
	ScreenH = 160
)

// SpriteOp places one sprite frame. X, Y is the centre of the drawn
// rectangle. Zero W or H draws at the sprite's native frame size.
type SpriteOp struct {
	X, Y     float64
	W, H     float64
	Rotation float64
}

// Canvas is what every drawable component renders through.
type Canvas interface {
	Fill(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	DrawSprite(s *Sprite, frame int, op SpriteOp)
	DrawText(s string, x, y float64, c color.Color)
	TextWidth(s string) float64
}

// Hex parses "#rrggbb" into an opaque colour. Malformed input yields magenta.
func Hex(s string) color.NRGBA {
	if len(s) == 7 && s[0] == '#' {
		var v [3]uint8
		ok := true
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(s[1+2*i])
			lo, ok2 := hexNibble(s[2+2*i])
			ok = ok && ok1 && ok2
			v[i] = hi<<4 | lo
		}
		if ok {
			return color.NRGBA{v[0], v[1], v[2], 0xff}
		}
	}
	return color.NRGBA{0xff, 0x00, 0xff, 0xff}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
