// Package rules models the match phase reported by the server each frame.
//
// A State is exactly one of Lobby, RoundWarmup, Round, RoundCooldown or End.
// A nil State means the engine had no rule-state for the frame; callers must
// treat it as "no update" and never as Lobby.
package rules

import "sort"

// Phase identifies the active State variant.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseLobby
	PhaseWarmup
	PhaseRound
	PhaseCooldown
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseWarmup:
		return "warmup"
	case PhaseRound:
		return "round"
	case PhaseCooldown:
		return "cooldown"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// State is the tagged union of match phases.
type State interface {
	Phase() Phase
	isState()
}

// Lobby is the pre-match phase. ReadyFrames counts how long every connected
// player has been standing in the ready zone.
type Lobby struct {
	ReadyFrames int
}

// RoundWarmup counts down to the start of play.
type RoundWarmup struct {
	RemainingUS int64
	RoundID     int
}

// Round is active play.
type Round struct {
	RoundID int
	ScreenY int
}

// RoundCooldown is the post-round display phase. At most one player is
// expected to be flagged alive.
type RoundCooldown struct {
	RemainingUS int64
	RoundID     int
	Alive       AliveSet
}

// End is the terminal match state.
type End struct {
	Winner    int
	HasWinner bool
}

func (Lobby) Phase() Phase         { return PhaseLobby }
func (RoundWarmup) Phase() Phase   { return PhaseWarmup }
func (Round) Phase() Phase         { return PhaseRound }
func (RoundCooldown) Phase() Phase { return PhaseCooldown }
func (End) Phase() Phase           { return PhaseEnd }

func (Lobby) isState()         {}
func (RoundWarmup) isState()   {}
func (Round) isState()         {}
func (RoundCooldown) isState() {}
func (End) isState()           {}

// PhaseOf returns the phase of s, or PhaseNone when s is nil.
func PhaseOf(s State) Phase {
	if s == nil {
		return PhaseNone
	}
	return s.Phase()
}

// AliveSet maps player ids to their alive flag.
type AliveSet map[int]bool

// Winner returns the lowest player id flagged alive. Upstream does not
// guarantee a single survivor, so the scan order decides ties.
func (a AliveSet) Winner() (int, bool) {
	ids := make([]int, 0, len(a))
	for id, alive := range a {
		if alive {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, false
	}
	sort.Ints(ids)
	return ids[0], true
}

// Count reports how many players are flagged alive.
func (a AliveSet) Count() int {
	n := 0
	for _, alive := range a {
		if alive {
			n++
		}
	}
	return n
}
