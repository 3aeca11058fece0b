package overlay

import (
	"image/color"
	"math"

	"crossyview/gfx"
)

const (
	dialogueFadeIn    = 16
	dialogueFadeOut   = 24
	letterboxHeight   = 30
	dialogueFaceScale = 1.5
	faceXOffMax       = 140

	// JoinDialogueFrames is how long a lobby join announcement stays up.
	JoinDialogueFrames = 90
)

// Dialogue is a letterboxed character portrait sliding in from the right.
type Dialogue struct {
	tl        Timeline
	character string
	sprite    *gfx.Sprite

	faceScale float64
	faceXOff  float64
	frame     int
}

// NewDialogue creates a dialogue for character. Characters without a
// portrait use the default one. A duration of zero keeps the dialogue up
// until TriggerClose.
func NewDialogue(atlas *gfx.Atlas, character string, duration int) *Dialogue {
	return &Dialogue{
		tl:        NewTimeline(dialogueFadeIn, dialogueFadeOut, duration),
		character: character,
		sprite:    atlas.Lookup(gfx.DialogueSprite(character)),
	}
}

func (d *Dialogue) Tick() {
	d.tl.Tick()
	if !d.tl.Alive() {
		return
	}
	if d.tl.T() < dialogueFadeIn {
		d.faceScale = d.tl.Scale() * dialogueFaceScale
	} else {
		d.faceScale = dialogueFaceScale
	}
	if d.tl.Closing() {
		d.faceXOff = (1 - d.tl.Scale()) * faceXOffMax
		d.frame = 1
	}
}

func (d *Dialogue) TriggerClose() { d.tl.TriggerClose() }

func (d *Dialogue) Alive() bool { return d.tl.Alive() }

// Character is the character name the dialogue was created for.
func (d *Dialogue) Character() string { return d.character }

// Letterbox is the current height of each black band.
func (d *Dialogue) Letterbox() float64 { return d.tl.Scale() * letterboxHeight }

// Timeline exposes the dialogue's timing for inspection.
func (d *Dialogue) Timeline() *Timeline { return &d.tl }

func (d *Dialogue) Draw(c gfx.Canvas) {
	lb := d.Letterbox()
	c.FillRect(0, 0, gfx.ScreenW, lb, color.Black)
	c.FillRect(0, gfx.ScreenH-lb, gfx.ScreenW, lb, color.Black)

	if d.sprite == nil {
		return
	}
	t := float64(d.tl.T())
	breathe := d.faceScale * (1 + 0.12*math.Sin(t/50))
	c.DrawSprite(d.sprite, d.frame, gfx.SpriteOp{
		X:        130 + d.faceXOff,
		Y:        35,
		W:        float64(d.sprite.FrameW) * breathe,
		H:        float64(d.sprite.FrameH) * breathe,
		Rotation: 0.3 * math.Sin(t/115),
	})
}
