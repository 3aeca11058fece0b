// Package engine defines the contract of the simulation the client renders.
// The engine is opaque: the presentation layer only feeds it input and
// network bytes and reads JSON snapshots back.
package engine

import (
	"fmt"
	"strconv"

	"crossyview/rules"
	"crossyview/snapshot"
)

// Engine is the authoritative simulation as seen from the client.
type Engine interface {
	Tick()
	BufferInputJSON(input []byte)
	ClientMessage() []byte
	Recv(msg []byte)

	RowsJSON() ([]byte, error)
	CarsJSON() ([]byte, error)
	PlayersJSON() ([]byte, error)
	RuleStateJSON() ([]byte, error)
	// LocalPlayerID is negative until the server assigned one.
	LocalPlayerID() int
}

// Input symbols.
const (
	None  = "None"
	Up    = "Up"
	Down  = "Down"
	Left  = "Left"
	Right = "Right"
)

// InputJSON quotes symbol for BufferInputJSON. Empty or unknown symbols
// become None.
func InputJSON(symbol string) []byte {
	switch symbol {
	case Up, Down, Left, Right:
	default:
		symbol = None
	}
	return []byte(strconv.Quote(symbol))
}

// ParseInput is the inverse of InputJSON.
func ParseInput(data []byte) string {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return None
	}
	switch s {
	case Up, Down, Left, Right:
		return s
	}
	return None
}

// Rows reads and decodes the row snapshot.
func Rows(e Engine) ([]snapshot.Row, error) {
	data, err := e.RowsJSON()
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return snapshot.DecodeRows(data)
}

// Cars reads and decodes the car snapshot.
func Cars(e Engine) ([]snapshot.Car, error) {
	data, err := e.CarsJSON()
	if err != nil {
		return nil, fmt.Errorf("cars: %w", err)
	}
	return snapshot.DecodeCars(data)
}

// Players reads and decodes the player snapshot.
func Players(e Engine) ([]snapshot.Player, error) {
	data, err := e.PlayersJSON()
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	return snapshot.DecodePlayers(data)
}

// RuleState reads and decodes the rule state. A nil State with a nil error
// means no update this frame.
func RuleState(e Engine) (rules.State, error) {
	data, err := e.RuleStateJSON()
	if err != nil {
		return nil, fmt.Errorf("rule state: %w", err)
	}
	return rules.Decode(data)
}
