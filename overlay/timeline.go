// Package overlay implements the timed UI animations drawn over the game
// view and the controller deciding which dialogue is on screen.
//
// Every overlay is driven by a Timeline: a frame counter t and an optional
// end frame. Closing only ever moves the end frame earlier, so callers may
// request a close every frame while a condition holds.
package overlay

// EaseInQuad maps x in [0, 1] onto 1-(1-x)^2.
func EaseInQuad(x float64) float64 {
	return 1 - (1-x)*(1-x)
}

// Timeline tracks the ease-in, hold, ease-out and dead phases of one overlay.
type Timeline struct {
	fadeIn  int
	fadeOut int

	t      int
	tEnd   int
	hasEnd bool

	scale   float64
	closing bool
	dead    bool
}

// NewTimeline returns a timeline. A duration of zero or less leaves the end
// open until TriggerClose.
func NewTimeline(fadeIn, fadeOut, duration int) Timeline {
	tl := Timeline{fadeIn: fadeIn, fadeOut: fadeOut}
	if duration > 0 {
		tl.tEnd = duration
		tl.hasEnd = true
	}
	return tl
}

// Tick advances one frame. It does nothing once the timeline is dead.
func (tl *Timeline) Tick() {
	if tl.dead {
		return
	}
	tl.t++
	tl.closing = false
	switch {
	case tl.t < tl.fadeIn:
		tl.scale = EaseInQuad(float64(tl.t) / float64(tl.fadeIn))
	case !tl.hasEnd:
		tl.scale = 1
	case tl.t < tl.tEnd-tl.fadeOut:
		tl.scale = 1
	case tl.t < tl.tEnd:
		tl.scale = EaseInQuad(float64(tl.tEnd-tl.t) / float64(tl.fadeOut))
		tl.closing = true
	default:
		tl.dead = true
	}
}

// TriggerClose schedules the end fadeOut frames from now, or keeps the
// existing end if it is sooner.
func (tl *Timeline) TriggerClose() {
	end := tl.t + tl.fadeOut
	if tl.hasEnd {
		tl.tEnd = min(tl.tEnd, end)
		return
	}
	tl.tEnd = end
	tl.hasEnd = true
}

func (tl *Timeline) Alive() bool { return !tl.dead }

// Scale is the current eased factor in [0, 1].
func (tl *Timeline) Scale() float64 { return tl.scale }

// Closing reports whether the last tick fell in the ease-out range.
func (tl *Timeline) Closing() bool { return tl.closing }

// T is the number of ticks so far.
func (tl *Timeline) T() int { return tl.t }

// End returns the scheduled end frame, if any.
func (tl *Timeline) End() (int, bool) { return tl.tEnd, tl.hasEnd }
