// Package effect holds short-lived cosmetic visuals and the pool that
// advances them once per frame.
package effect

import (
	"image/color"

	"crossyview/gfx"
)

// Effect is a self-terminating visual owned by a Pool.
type Effect interface {
	Tick()
	Draw(c gfx.Canvas)
	Alive() bool
}

// Sink accepts newly spawned effects.
type Sink interface {
	Add(e Effect)
}

// WhiteoutFrames is how many frames a whiteout stays on screen.
const WhiteoutFrames = 6

// Whiteout flashes the whole screen white and fades out.
type Whiteout struct {
	t int
}

// NewWhiteout returns a fresh flash.
func NewWhiteout() *Whiteout { return &Whiteout{} }

func (w *Whiteout) Tick() { w.t++ }

func (w *Whiteout) Alive() bool { return w.t <= WhiteoutFrames }

// Draw paints nothing before the first tick or after the flash ended.
func (w *Whiteout) Draw(c gfx.Canvas) {
	if w.t < 1 || !w.Alive() {
		return
	}
	a := uint8(255 * (WhiteoutFrames + 1 - w.t) / WhiteoutFrames)
	c.FillRect(0, 0, gfx.ScreenW, gfx.ScreenH, color.NRGBA{0xff, 0xff, 0xff, a})
}

// Filter forwards effects to Next unless Drop reports true.
type Filter struct {
	Next Sink
	Drop func(Effect) bool
}

func (f Filter) Add(e Effect) {
	if f.Next == nil || (f.Drop != nil && f.Drop(e)) {
		return
	}
	f.Next.Add(e)
}

// IsFlash reports whether e is a full-screen flash.
func IsFlash(e Effect) bool {
	_, ok := e.(*Whiteout)
	return ok
}
