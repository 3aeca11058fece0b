package rules

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Encode renders s in the same externally tagged form Decode reads. A nil
// State encodes to an empty payload.
func Encode(s State) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	var tag string
	var body any
	switch v := s.(type) {
	case Lobby:
		tag, body = "Lobby", lobbyWire{ReadyFrames: v.ReadyFrames}
	case RoundWarmup:
		tag, body = "RoundWarmup", warmupWire{RemainingUS: v.RemainingUS, RoundID: v.RoundID}
	case Round:
		tag, body = "Round", roundWire{RoundID: v.RoundID, ScreenY: v.ScreenY}
	case RoundCooldown:
		alive, err := json.Marshal(map[string][]*bool{"inner": v.Alive.inner()})
		if err != nil {
			return nil, err
		}
		tag, body = "RoundCooldown", cooldownWire{
			RemainingUS: v.RemainingUS,
			RoundState:  &roundStateWire{RoundID: v.RoundID, AlivePlayers: alive},
		}
	case End:
		if !v.HasWinner {
			return json.Marshal("EndAllLeft")
		}
		id := v.Winner
		tag, body = "EndWinner", endWire{WinnerID: &id}
	default:
		return nil, fmt.Errorf("encode rule state: unexpected %T", s)
	}
	return json.Marshal(map[string]any{tag: body})
}

// inner lays the set out as an id-indexed slice with nil gaps.
func (a AliveSet) inner() []*bool {
	ids := make([]int, 0, len(a))
	for id := range a {
		if id >= 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []*bool{}
	}
	sort.Ints(ids)
	out := make([]*bool, ids[len(ids)-1]+1)
	for _, id := range ids {
		alive := a[id]
		out[id] = &alive
	}
	return out
}
