// Package sfx is the audio capability used by the presentation core. Cues
// are fire-and-forget; a missing sound is silently skipped.
package sfx

// Cue names a short sound effect.
type Cue string

const (
	Join        Cue = "join"
	Countdown   Cue = "countdown"
	CountdownGo Cue = "countdown_go"
	Win         Cue = "win"
)

// Player plays cues.
type Player interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

// Func adapts a function to Player.
type Func func(Cue)

func (f Func) Play(c Cue) { f(c) }

// Tee plays each cue on every player in order.
type Tee []Player

func (t Tee) Play(c Cue) {
	for _, p := range t {
		if p != nil {
			p.Play(c)
		}
	}
}

// Recorder keeps the cues it was asked to play.
type Recorder struct {
	Cues []Cue
}

func (r *Recorder) Play(c Cue) { r.Cues = append(r.Cues, c) }

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	n := 0
	for _, x := range r.Cues {
		if x == c {
			n++
		}
	}
	return n
}
