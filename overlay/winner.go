package overlay

import (
	"image/color"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"crossyview/gfx"
)

const (
	winnerFadeIn = 16
	winnerFrames = 180
)

// The banner font only carries lower case glyphs.
var lowerName = cases.Lower(language.AmericanEnglish)

// Winner is the end-of-match banner. It fades in and holds until its end
// frame; there is no ease-out.
type Winner struct {
	Style Style

	tl       Timeline
	sprite   *gfx.Sprite
	noWinner *gfx.Sprite

	none bool
	name string
}

// NewWinner returns the round winner banner.
func NewWinner(atlas *gfx.Atlas, style Style) *Winner {
	return &Winner{
		Style:    style,
		tl:       NewTimeline(winnerFadeIn, 0, winnerFrames),
		sprite:   atlas.Lookup(gfx.SprWinner),
		noWinner: atlas.Lookup(gfx.SprNoWinner),
	}
}

// NewGameWinner returns the match winner banner naming the player.
func NewGameWinner(name string) *Winner {
	return &Winner{
		Style: StyleText,
		tl:    NewTimeline(winnerFadeIn, 0, winnerFrames),
		name:  lowerName.String(name),
	}
}

// TriggerNoWinner switches the banner content without touching its timing.
func (w *Winner) TriggerNoWinner() {
	w.none = true
	w.name = ""
}

func (w *Winner) Tick() { w.tl.Tick() }

func (w *Winner) Alive() bool { return w.tl.Alive() }

// NoWinner reports whether the banner announces that nobody won.
func (w *Winner) NoWinner() bool { return w.none }

// Timeline exposes the banner's timing for inspection.
func (w *Winner) Timeline() *Timeline { return &w.tl }

// Lines returns the text rendered in text style.
func (w *Winner) Lines() []string {
	switch {
	case w.name != "":
		return []string{"congrats", w.name}
	case w.none:
		return []string{"no winner"}
	default:
		return []string{"winner"}
	}
}

func (w *Winner) Draw(c gfx.Canvas) {
	if !w.tl.Alive() {
		return
	}
	spr := w.sprite
	if w.none {
		spr = w.noWinner
	}
	if w.Style == StyleText || w.name != "" || spr == nil {
		w.drawText(c)
		return
	}

	op := gfx.SpriteOp{X: gfx.ScreenW / 2, Y: gfx.ScreenH / 2}
	if !w.none {
		t := float64(w.tl.T())
		s := w.tl.Scale() * (1 + 0.12*math.Sin(t/50))
		op.W = float64(spr.FrameW) * s
		op.H = float64(spr.FrameH) * s
		op.Rotation = 0.3 * math.Sin(t/-105)
	}
	c.DrawSprite(spr, 0, op)
}

func (w *Winner) drawText(c gfx.Canvas) {
	lines := w.Lines()
	const lineH = 10
	y := gfx.ScreenH/2 - float64(len(lines)-1)*lineH/2
	for _, l := range lines {
		c.DrawText(l, gfx.ScreenW/2-c.TextWidth(l)/2, y, color.White)
		y += lineH
	}
}
