package gfx

import "github.com/hajimehoshi/ebiten/v2"

// Sprite is a horizontal strip of equally sized frames.
type Sprite struct {
	Name   string
	FrameW int
	FrameH int
	Frames int

	img *ebiten.Image
}

// NewSprite describes a sprite without pixel data. Canvases that need pixels
// skip it; the Recorder only needs the name and size.
func NewSprite(name string, frameW, frameH, frames int) *Sprite {
	if frames < 1 {
		frames = 1
	}
	return &Sprite{Name: name, FrameW: frameW, FrameH: frameH, Frames: frames}
}

// Image returns the backing sheet, or nil when the sprite has no pixels.
func (s *Sprite) Image() *ebiten.Image {
	if s == nil {
		return nil
	}
	return s.img
}

// frameOffset clamps frame into range and returns its source x offset.
func (s *Sprite) frameOffset(frame int) int {
	if frame < 0 {
		frame = 0
	}
	if frame >= s.Frames {
		frame = s.Frames - 1
	}
	return frame * s.FrameW
}
