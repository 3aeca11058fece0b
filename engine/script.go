package engine

import (
	"encoding/json"

	"crossyview/rules"
	"crossyview/snapshot"
)

// Step is one frame of a scripted match.
type Step struct {
	State   rules.State
	Players []snapshot.Player
	Rows    []snapshot.Row
	Cars    []snapshot.Car
}

// Script replays fixed steps, one per Tick. After the last step it keeps
// reporting that step. It never touches the network.
type Script struct {
	Steps   []Step
	LocalID int

	frame   int
	pending string
	inputs  []string
	recv    int
}

// NewScript returns a script positioned before its first step.
func NewScript(localID int, steps ...Step) *Script {
	return &Script{Steps: steps, LocalID: localID, frame: -1}
}

func (s *Script) Tick() {
	in := s.pending
	if in == "" {
		in = None
	}
	s.inputs = append(s.inputs, in)
	s.pending = ""
	s.frame++
}

// BufferInputJSON keeps the first non-None input until the next Tick.
func (s *Script) BufferInputJSON(input []byte) {
	in := ParseInput(input)
	if s.pending == "" || s.pending == None {
		s.pending = in
	}
}

type scriptMessage struct {
	Frame int    `json:"frame_id"`
	Input string `json:"input"`
}

func (s *Script) ClientMessage() []byte {
	msg := scriptMessage{Frame: s.frame}
	if n := len(s.inputs); n > 0 {
		msg.Input = s.inputs[n-1]
	}
	data, _ := json.Marshal(msg)
	return data
}

func (s *Script) Recv([]byte) { s.recv++ }

func (s *Script) current() (Step, bool) {
	if s.frame < 0 || len(s.Steps) == 0 {
		return Step{}, false
	}
	return s.Steps[min(s.frame, len(s.Steps)-1)], true
}

func (s *Script) RowsJSON() ([]byte, error) {
	st, _ := s.current()
	return snapshot.EncodeRows(st.Rows)
}

func (s *Script) CarsJSON() ([]byte, error) {
	st, _ := s.current()
	return snapshot.EncodeCars(st.Cars)
}

func (s *Script) PlayersJSON() ([]byte, error) {
	st, _ := s.current()
	return snapshot.EncodePlayers(st.Players)
}

func (s *Script) RuleStateJSON() ([]byte, error) {
	st, ok := s.current()
	if !ok {
		return nil, nil
	}
	return rules.Encode(st.State)
}

func (s *Script) LocalPlayerID() int { return s.LocalID }

// Frame is the index of the current step, -1 before the first Tick.
func (s *Script) Frame() int { return s.frame }

// Inputs lists the input consumed by each Tick.
func (s *Script) Inputs() []string { return s.inputs }

// Received counts the messages handed to Recv.
func (s *Script) Received() int { return s.recv }

// Done reports whether the last step has been reached.
func (s *Script) Done() bool { return s.frame >= len(s.Steps)-1 }
