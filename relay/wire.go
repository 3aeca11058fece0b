// Package relay is an Engine that mirrors a server-authoritative match. The
// server streams msgpack ServerTick frames; the client answers each frame
// with a ClientTick carrying its buffered input.
//
// This framing is crossyview's own protocol. It does not interoperate with
// the upstream game server, which speaks flexbuffers; a relay server must
// implement the msgpack messages below.
package relay

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"crossyview/snapshot"
)

// NoPlayer is the PlayerID of a ServerTick sent before the client joined.
const NoPlayer = -1

// Row is a map row on the wire.
type Row struct {
	Y     int    `msgpack:"y"`
	RowID int    `msgpack:"row_id"`
	Kind  string `msgpack:"kind"`
}

// Car is a vehicle on the wire.
type Car struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Flipped bool    `msgpack:"flipped"`
}

// Player is a player on the wire.
type Player struct {
	ID       int     `msgpack:"id"`
	Sprite   string  `msgpack:"sprite_name"`
	SourceID int     `msgpack:"source_player_id"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Dead     bool    `msgpack:"dead"`
	Crowned  bool    `msgpack:"crowned"`
}

// ServerTick is one authoritative frame. RuleState holds the rule state as
// externally tagged JSON and may be empty.
type ServerTick struct {
	FrameID   uint32   `msgpack:"frame_id"`
	PlayerID  int      `msgpack:"player_id"`
	Rows      []Row    `msgpack:"rows"`
	Cars      []Car    `msgpack:"cars"`
	Players   []Player `msgpack:"players"`
	RuleState []byte   `msgpack:"rule_state"`
}

// ClientTick is what the client sends back every frame.
type ClientTick struct {
	TimeUS     uint32 `msgpack:"time_us"`
	FrameID    uint32 `msgpack:"frame_id"`
	Input      string `msgpack:"input"`
	LobbyReady bool   `msgpack:"lobby_ready"`
}

func EncodeServerTick(t *ServerTick) ([]byte, error) {
	return msgpack.Marshal(t)
}

func DecodeServerTick(data []byte) (*ServerTick, error) {
	var t ServerTick
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("server tick: %w", err)
	}
	return &t, nil
}

func EncodeClientTick(t ClientTick) ([]byte, error) {
	return msgpack.Marshal(&t)
}

func DecodeClientTick(data []byte) (ClientTick, error) {
	var t ClientTick
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return ClientTick{}, fmt.Errorf("client tick: %w", err)
	}
	return t, nil
}

func rowKind(s string) snapshot.RowKind {
	switch s {
	case "River":
		return snapshot.RowRiver
	case "Road":
		return snapshot.RowRoad
	}
	return snapshot.RowOther
}

func kindName(k snapshot.RowKind) string {
	switch k {
	case snapshot.RowRiver:
		return "River"
	case snapshot.RowRoad:
		return "Road"
	}
	return "Path"
}

// Snapshots converts the wire lists to snapshot types.
func (t *ServerTick) Snapshots() ([]snapshot.Row, []snapshot.Car, []snapshot.Player) {
	rows := make([]snapshot.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, snapshot.Row{Y: r.Y, RowID: r.RowID, Kind: rowKind(r.Kind)})
	}
	cars := make([]snapshot.Car, 0, len(t.Cars))
	for _, c := range t.Cars {
		cars = append(cars, snapshot.Car{X: c.X, Y: c.Y, Flipped: c.Flipped})
	}
	players := make([]snapshot.Player, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, snapshot.Player{
			ID:         p.ID,
			SpriteName: p.Sprite,
			Source:     snapshot.Source{PlayerID: p.SourceID},
			X:          p.X,
			Y:          p.Y,
			Dead:       p.Dead,
			Crowned:    p.Crowned,
		})
	}
	return rows, cars, players
}

// NewServerTick builds a wire frame from snapshot values.
func NewServerTick(frame uint32, playerID int, rows []snapshot.Row, cars []snapshot.Car, players []snapshot.Player, ruleState []byte) *ServerTick {
	t := &ServerTick{FrameID: frame, PlayerID: playerID, RuleState: ruleState}
	for _, r := range rows {
		t.Rows = append(t.Rows, Row{Y: r.Y, RowID: r.RowID, Kind: kindName(r.Kind)})
	}
	for _, c := range cars {
		t.Cars = append(t.Cars, Car{X: c.X, Y: c.Y, Flipped: c.Flipped})
	}
	for _, p := range players {
		t.Players = append(t.Players, Player{
			ID: p.ID, Sprite: p.SpriteName, SourceID: p.Source.PlayerID,
			X: p.X, Y: p.Y, Dead: p.Dead, Crowned: p.Crowned,
		})
	}
	return t
}
