// Package snapshot holds the per-frame world and entity views read from the
// engine: background rows, cars and players.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RowKind is the terrain class of a background row.
type RowKind int

const (
	RowOther RowKind = iota
	RowRiver
	RowRoad
)

func (k RowKind) String() string {
	switch k {
	case RowRiver:
		return "river"
	case RowRoad:
		return "road"
	default:
		return "other"
	}
}

// Row is one horizontal strip of the map at screen row Y.
type Row struct {
	Y     int
	RowID int
	Kind  RowKind
}

// Car is a vehicle centred on tile coordinates X, Y.
type Car struct {
	X       float64
	Y       float64
	Flipped bool
}

// Source identifies who controls a player.
type Source struct {
	PlayerID int `json:"player_id"`
}

// Player is one connected player as the server last reported it.
type Player struct {
	ID         int     `json:"id"`
	SpriteName string  `json:"sprite_name"`
	Source     Source  `json:"source"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Dead       bool    `json:"dead,omitempty"`
	Crowned    bool    `json:"crowned,omitempty"`
}

type rowWire struct {
	RowID   int                        `json:"row_id"`
	RowType map[string]json.RawMessage `json:"row_type"`
}

// DecodeRows parses [[y, {"row_id": n, "row_type": {"River": ...}}], ...].
// A row_type may also be a bare string for unit variants.
func DecodeRows(data []byte) ([]Row, error) {
	if isEmpty(data) {
		return nil, nil
	}
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	rows := make([]Row, 0, len(raw))
	for i, pair := range raw {
		var y int
		if err := json.Unmarshal(pair[0], &y); err != nil {
			return nil, fmt.Errorf("rows[%d].y: %w", i, err)
		}
		kind, id, err := decodeRowBody(pair[1])
		if err != nil {
			return nil, fmt.Errorf("rows[%d]: %w", i, err)
		}
		rows = append(rows, Row{Y: y, RowID: id, Kind: kind})
	}
	return rows, nil
}

func decodeRowBody(body json.RawMessage) (RowKind, int, error) {
	var probe struct {
		RowID   int             `json:"row_id"`
		RowType json.RawMessage `json:"row_type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return RowOther, 0, err
	}
	rt := bytes.TrimSpace(probe.RowType)
	if len(rt) > 0 && rt[0] == '"' {
		var tag string
		if err := json.Unmarshal(rt, &tag); err != nil {
			return RowOther, 0, err
		}
		return kindOf(tag), probe.RowID, nil
	}
	var obj map[string]json.RawMessage
	if len(rt) > 0 {
		if err := json.Unmarshal(rt, &obj); err != nil {
			return RowOther, 0, err
		}
	}
	for tag := range obj {
		return kindOf(tag), probe.RowID, nil
	}
	return RowOther, probe.RowID, nil
}

func kindOf(tag string) RowKind {
	switch tag {
	case "River":
		return RowRiver
	case "Road":
		return RowRoad
	default:
		return RowOther
	}
}

// EncodeRows is the inverse of DecodeRows.
func EncodeRows(rows []Row) ([]byte, error) {
	out := make([][2]any, 0, len(rows))
	for _, r := range rows {
		var tag string
		switch r.Kind {
		case RowRiver:
			tag = "River"
		case RowRoad:
			tag = "Road"
		default:
			tag = "Path"
		}
		out = append(out, [2]any{r.Y, rowWire{RowID: r.RowID, RowType: map[string]json.RawMessage{tag: json.RawMessage("{}")}}})
	}
	return json.Marshal(out)
}

// DecodeCars parses [[x, y, flipped], ...].
func DecodeCars(data []byte) ([]Car, error) {
	if isEmpty(data) {
		return nil, nil
	}
	var raw [][3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cars: %w", err)
	}
	cars := make([]Car, 0, len(raw))
	for i, c := range raw {
		var car Car
		if err := json.Unmarshal(c[0], &car.X); err != nil {
			return nil, fmt.Errorf("cars[%d].x: %w", i, err)
		}
		if err := json.Unmarshal(c[1], &car.Y); err != nil {
			return nil, fmt.Errorf("cars[%d].y: %w", i, err)
		}
		if err := json.Unmarshal(c[2], &car.Flipped); err != nil {
			return nil, fmt.Errorf("cars[%d].flipped: %w", i, err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// EncodeCars is the inverse of DecodeCars.
func EncodeCars(cars []Car) ([]byte, error) {
	out := make([][3]any, 0, len(cars))
	for _, c := range cars {
		out = append(out, [3]any{c.X, c.Y, c.Flipped})
	}
	return json.Marshal(out)
}

// DecodePlayers parses the engine's player list. Null entries are skipped.
func DecodePlayers(data []byte) ([]Player, error) {
	if isEmpty(data) {
		return nil, nil
	}
	var raw []*Player
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	players := make([]Player, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			players = append(players, *p)
		}
	}
	return players, nil
}

// EncodePlayers is the inverse of DecodePlayers.
func EncodePlayers(players []Player) ([]byte, error) {
	if players == nil {
		players = []Player{}
	}
	return json.Marshal(players)
}

// Find returns the player with the given id.
func Find(players []Player, id int) (Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func isEmpty(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
