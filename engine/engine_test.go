package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"crossyview/rules"
	"crossyview/snapshot"
)

func TestInputJSON(t *testing.T) {
	for in, want := range map[string]string{"": `"None"`, "Up": `"Up"`, "Jump": `"None"`, "Left": `"Left"`} {
		if got := string(InputJSON(in)); got != want {
			t.Fatalf("InputJSON(%q) = %s, want %s", in, got, want)
		}
	}
	if ParseInput([]byte("Up")) != None || ParseInput(InputJSON(Down)) != Down {
		t.Fatalf("ParseInput mismatch")
	}
}

func TestScriptBeforeFirstTick(t *testing.T) {
	s := NewScript(0, Step{State: rules.Lobby{}})
	st, err := RuleState(s)
	if err != nil || st != nil {
		t.Fatalf("before tick: %v %v", st, err)
	}
	ps, err := Players(s)
	if err != nil || len(ps) != 0 {
		t.Fatalf("players before tick: %v %v", ps, err)
	}
}

func TestScriptReplaysAndHolds(t *testing.T) {
	s := NewScript(1,
		Step{State: rules.Lobby{}, Players: []snapshot.Player{{ID: 1, SpriteName: "frog"}}},
		Step{State: rules.RoundWarmup{RemainingUS: 2_000_000}, Rows: []snapshot.Row{{Y: 1, RowID: 1, Kind: snapshot.RowRoad}}},
	)
	s.Tick()
	if st, _ := RuleState(s); rules.PhaseOf(st) != rules.PhaseLobby {
		t.Fatalf("step 0 phase %v", rules.PhaseOf(st))
	}
	s.Tick()
	s.Tick()
	st, err := RuleState(s)
	if err != nil {
		t.Fatal(err)
	}
	if w, ok := st.(rules.RoundWarmup); !ok || w.RemainingUS != 2_000_000 {
		t.Fatalf("held step %#v", st)
	}
	rows, err := Rows(s)
	if err != nil || len(rows) != 1 || rows[0].Kind != snapshot.RowRoad {
		t.Fatalf("rows %v %v", rows, err)
	}
	if !s.Done() || s.LocalPlayerID() != 1 {
		t.Fatalf("done=%v local=%d", s.Done(), s.LocalPlayerID())
	}
}

func TestScriptInputBuffering(t *testing.T) {
	s := NewScript(0, Step{})
	s.BufferInputJSON(InputJSON(None))
	s.BufferInputJSON(InputJSON(Up))
	s.BufferInputJSON(InputJSON(Left))
	s.Tick()
	s.Tick()
	in := s.Inputs()
	if len(in) != 2 || in[0] != Up || in[1] != None {
		t.Fatalf("inputs = %v", in)
	}
	var msg scriptMessage
	if err := json.Unmarshal(s.ClientMessage(), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Frame != 1 || msg.Input != None {
		t.Fatalf("message %+v", msg)
	}
	s.Recv([]byte{1})
	if s.Received() != 1 {
		t.Fatalf("received = %d", s.Received())
	}
}

type brokenEngine struct{ Script }

var errBroken = errors.New("broken")

func (brokenEngine) CarsJSON() ([]byte, error) { return nil, errBroken }

func TestReaderWrapsErrors(t *testing.T) {
	var e brokenEngine
	if _, err := Cars(&e); !errors.Is(err, errBroken) {
		t.Fatalf("Cars err = %v", err)
	}
}

func TestDemoIsAFullMatch(t *testing.T) {
	s := Demo()
	seen := map[rules.Phase]bool{}
	for !s.Done() {
		s.Tick()
		st, err := RuleState(s)
		if err != nil {
			t.Fatalf("frame %d: %v", s.Frame(), err)
		}
		seen[rules.PhaseOf(st)] = true
		if _, err := Players(s); err != nil {
			t.Fatalf("frame %d players: %v", s.Frame(), err)
		}
	}
	for _, p := range []rules.Phase{rules.PhaseLobby, rules.PhaseWarmup, rules.PhaseRound, rules.PhaseCooldown, rules.PhaseEnd} {
		if !seen[p] {
			t.Fatalf("demo never reached %v", p)
		}
	}
}
