package rules

import "testing"

func TestDecodeEmptyIsNoUpdate(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		st, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if st != nil {
			t.Fatalf("Decode(%q) = %#v, want nil", in, st)
		}
	}
}

func TestDecodeVariants(t *testing.T) {
	tests := []struct {
		in   string
		want Phase
	}{
		{`"Lobby"`, PhaseLobby},
		{`{"Lobby":{"time_with_all_players_in_ready_zone":4}}`, PhaseLobby},
		{`{"RoundWarmup":{"remaining_us":2500000}}`, PhaseWarmup},
		{`{"Round":{"round_id":2,"screen_y":5}}`, PhaseRound},
		{`{"RoundCooldown":{"remaining_us":10,"round_state":{"alive_players":{"inner":[null,true]}}}}`, PhaseCooldown},
		{`{"EndWinner":{"winner_id":3}}`, PhaseEnd},
		{`"EndAllLeft"`, PhaseEnd},
		{`{"fst":{"Round":{}}}`, PhaseRound},
	}
	for _, tt := range tests {
		st, err := Decode([]byte(tt.in))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", tt.in, err)
		}
		if got := PhaseOf(st); got != tt.want {
			t.Errorf("Decode(%s) phase = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeWarmupPayload(t *testing.T) {
	st, err := Decode([]byte(`{"RoundWarmup":{"remaining_us":2500000,"round_id":1}}`))
	if err != nil {
		t.Fatal(err)
	}
	w, ok := st.(RoundWarmup)
	if !ok {
		t.Fatalf("got %T", st)
	}
	if w.RemainingUS != 2500000 || w.RoundID != 1 {
		t.Fatalf("unexpected warmup %+v", w)
	}
}

func TestDecodeCooldownAliveForms(t *testing.T) {
	inputs := []string{
		`{"RoundCooldown":{"remaining_us":90000,"round_state":{"alive_players":{"inner":[null,false,true]}}}}`,
		`{"RoundCooldown":{"remaining_us":90000,"alive_players":{"2":true,"1":false}}}`,
		`{"RoundCooldown":{"remaining_us":90000,"alive_players":[null,false,true]}}`,
	}
	for _, in := range inputs {
		st, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", in, err)
		}
		cd, ok := st.(RoundCooldown)
		if !ok {
			t.Fatalf("Decode(%s) = %T", in, st)
		}
		if cd.RemainingUS != 90000 {
			t.Errorf("remaining = %d", cd.RemainingUS)
		}
		id, ok := cd.Alive.Winner()
		if !ok || id != 2 {
			t.Errorf("Decode(%s) winner = %d,%v want 2,true", in, id, ok)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{`{`, `{"Bogus":{}}`, `{"Round":{},"Lobby":{}}`, `{"RoundCooldown":{"alive_players":{"x":true}}}`} {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%s) expected error", in)
		}
	}
}

func TestAliveSetWinnerPicksLowestID(t *testing.T) {
	a := AliveSet{5: true, 1: false, 3: true}
	id, ok := a.Winner()
	if !ok || id != 3 {
		t.Fatalf("winner = %d,%v want 3,true", id, ok)
	}
	if a.Count() != 2 {
		t.Fatalf("count = %d", a.Count())
	}
	if _, ok := (AliveSet{}).Winner(); ok {
		t.Fatalf("empty set has no winner")
	}
}
