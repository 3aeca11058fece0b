package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type lobbyWire struct {
	ReadyFrames int `json:"time_with_all_players_in_ready_zone"`
}

type warmupWire struct {
	RemainingUS int64 `json:"remaining_us"`
	RoundID     int   `json:"round_id"`
}

type roundWire struct {
	RoundID int `json:"round_id"`
	ScreenY int `json:"screen_y"`
}

type roundStateWire struct {
	RoundID      int             `json:"round_id"`
	AlivePlayers json.RawMessage `json:"alive_players"`
}

type cooldownWire struct {
	RemainingUS  int64           `json:"remaining_us"`
	RoundState   *roundStateWire `json:"round_state"`
	AlivePlayers json.RawMessage `json:"alive_players"`
}

type endWire struct {
	WinnerID *int `json:"winner_id"`
}

// Decode parses the engine's externally tagged rule-state JSON. The payload
// may be wrapped as {"fst": ...}. Empty input and JSON null decode to a nil
// State with no error.
func Decode(data []byte) (State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	// Unit variants serialize as a bare string.
	if data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, fmt.Errorf("rule state tag: %w", err)
		}
		return decodeVariant(tag, nil)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("rule state: %w", err)
	}
	if inner, ok := obj["fst"]; ok {
		return Decode(inner)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("rule state: expected one variant, got %d", len(obj))
	}
	for tag, body := range obj {
		return decodeVariant(tag, body)
	}
	return nil, nil
}

func decodeVariant(tag string, body json.RawMessage) (State, error) {
	switch tag {
	case "Lobby":
		var w lobbyWire
		if err := unmarshalBody(body, &w); err != nil {
			return nil, fmt.Errorf("Lobby: %w", err)
		}
		return Lobby{ReadyFrames: w.ReadyFrames}, nil
	case "RoundWarmup":
		var w warmupWire
		if err := unmarshalBody(body, &w); err != nil {
			return nil, fmt.Errorf("RoundWarmup: %w", err)
		}
		return RoundWarmup{RemainingUS: w.RemainingUS, RoundID: w.RoundID}, nil
	case "Round":
		var w roundWire
		if err := unmarshalBody(body, &w); err != nil {
			return nil, fmt.Errorf("Round: %w", err)
		}
		return Round{RoundID: w.RoundID, ScreenY: w.ScreenY}, nil
	case "RoundCooldown":
		var w cooldownWire
		if err := unmarshalBody(body, &w); err != nil {
			return nil, fmt.Errorf("RoundCooldown: %w", err)
		}
		st := RoundCooldown{RemainingUS: w.RemainingUS}
		raw := w.AlivePlayers
		if w.RoundState != nil {
			st.RoundID = w.RoundState.RoundID
			if len(w.RoundState.AlivePlayers) > 0 {
				raw = w.RoundState.AlivePlayers
			}
		}
		alive, err := decodeAlive(raw)
		if err != nil {
			return nil, fmt.Errorf("RoundCooldown: %w", err)
		}
		st.Alive = alive
		return st, nil
	case "End", "EndWinner":
		var w endWire
		if err := unmarshalBody(body, &w); err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		if w.WinnerID == nil {
			return End{}, nil
		}
		return End{Winner: *w.WinnerID, HasWinner: true}, nil
	case "EndAllLeft":
		return End{}, nil
	default:
		return nil, fmt.Errorf("unknown rule state variant %q", tag)
	}
}

func unmarshalBody(body json.RawMessage, v any) error {
	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil
	}
	return json.Unmarshal(body, v)
}

// decodeAlive accepts the player id map either as {"inner": [...]} indexed by
// id, a bare array, or an object keyed by decimal id.
func decodeAlive(raw json.RawMessage) (AliveSet, error) {
	raw = bytes.TrimSpace(raw)
	set := AliveSet{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return set, nil
	}

	if raw[0] == '[' {
		var inner []*bool
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("alive players: %w", err)
		}
		for id, v := range inner {
			if v != nil {
				set[id] = *v
			}
		}
		return set, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("alive players: %w", err)
	}
	if inner, ok := obj["inner"]; ok {
		return decodeAlive(inner)
	}
	for k, v := range obj {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("alive players: bad id %q", k)
		}
		var alive *bool
		if err := json.Unmarshal(v, &alive); err != nil {
			return nil, fmt.Errorf("alive players[%d]: %w", id, err)
		}
		if alive != nil {
			set[id] = *alive
		}
	}
	return set, nil
}
