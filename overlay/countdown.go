package overlay

import (
	"image/color"

	"crossyview/gfx"
	"crossyview/rules"
	"crossyview/sfx"
)

// Style selects how counters and banners are rendered.
type Style int

const (
	StyleSprite Style = iota
	StyleText
)

// ParseStyle maps a settings value onto a Style. Unknown values use sprites.
func ParseStyle(s string) Style {
	if s == "text" {
		return StyleText
	}
	return StyleSprite
}

func (s Style) String() string {
	if s == StyleText {
		return "text"
	}
	return "sprite"
}

// goWindowFrames is how long "go" stays on screen after play starts.
const goWindowFrames = 60

var countdownLabels = [...]string{"three", "two", "one", "go"}

// Countdown shows three, two, one, go around the start of a round.
type Countdown struct {
	Style Style

	sprite  *gfx.Sprite
	enabled bool
	time    int
	goTime  int
}

func NewCountdown(atlas *gfx.Atlas, style Style) *Countdown {
	return &Countdown{Style: style, sprite: atlas.Lookup(gfx.SprCountdown)}
}

// Tick updates the counter from the frame's rule state. A nil state leaves
// everything as it was.
func (c *Countdown) Tick(state rules.State, cues sfx.Player) {
	if state == nil {
		return
	}
	if cues == nil {
		cues = sfx.Nop{}
	}
	switch s := state.(type) {
	case rules.RoundWarmup:
		secs := int((max(s.RemainingUS, 0) + 999_999) / 1_000_000)
		secs = max(secs, 1)
		if secs != c.time {
			cues.Play(sfx.Countdown)
		}
		c.time = secs
		c.enabled = true
		c.goTime = goWindowFrames
	case rules.Round:
		if c.goTime <= 0 {
			c.enabled = false
			return
		}
		if c.time == 1 {
			cues.Play(sfx.CountdownGo)
			c.time = 0
		}
		c.goTime--
		c.enabled = true
	default:
		c.enabled = false
	}
}

func (c *Countdown) Enabled() bool { return c.enabled }

// Time is the stored seconds value; zero once "go" has fired.
func (c *Countdown) Time() int { return c.time }

func (c *Countdown) frame() int {
	return min(max(3-c.time, 0), len(countdownLabels)-1)
}

// Label is the word for the current counter value.
func (c *Countdown) Label() string { return countdownLabels[c.frame()] }

func (c *Countdown) Draw(cv gfx.Canvas) {
	if !c.enabled {
		return
	}
	if c.Style == StyleText || c.sprite == nil {
		label := c.Label()
		cv.DrawText(label, gfx.ScreenW/2-cv.TextWidth(label)/2, gfx.ScreenH/2, color.White)
		return
	}
	cv.DrawSprite(c.sprite, c.frame(), gfx.SpriteOp{X: gfx.ScreenW / 2, Y: gfx.ScreenH / 2})
}
