package engine

import (
	"crossyview/rules"
	"crossyview/snapshot"
)

const (
	demoFPS        = 60
	frameUS        = 1_000_000 / demoFPS
	demoLobby      = 240
	demoWarmupUS   = 3_000_000
	demoRound      = 600
	demoCooldownUS = 3_000_000
	demoEnd        = 240
)

var demoCharacters = []string{"frog", "mouse", "bird", "snake"}

// Demo builds a complete offline match: players trickle into the lobby,
// a round is counted in and played, player 0 survives and wins the match.
func Demo() *Script {
	rows := demoRows()
	var steps []Step
	add := func(st rules.State, players []snapshot.Player, cars []snapshot.Car) {
		steps = append(steps, Step{State: st, Players: players, Rows: rows, Cars: cars})
	}

	// One player is present at connect time, the rest join later.
	for f := 0; f < demoLobby; f++ {
		joined := min(1+f/60, len(demoCharacters))
		ready := max(0, f-demoLobby+120)
		add(rules.Lobby{ReadyFrames: ready}, demoPlayers(joined, f, false), nil)
	}
	n := len(demoCharacters)
	for us := int64(demoWarmupUS); us > 0; us -= frameUS {
		add(rules.RoundWarmup{RemainingUS: us, RoundID: 1}, demoPlayers(n, 0, false), demoCars(0))
	}
	for f := 0; f < demoRound; f++ {
		add(rules.Round{RoundID: 1, ScreenY: f / 20}, demoPlayers(n, f, f > demoRound/2), demoCars(f))
	}
	alive := rules.AliveSet{0: true}
	for id := 1; id < n; id++ {
		alive[id] = false
	}
	for us := int64(demoCooldownUS); us > 0; us -= frameUS {
		add(rules.RoundCooldown{RemainingUS: us, RoundID: 1, Alive: alive}, demoPlayers(n, demoRound, true), nil)
	}
	for f := 0; f < demoEnd; f++ {
		ps := demoPlayers(n, demoRound, false)
		ps[0].Crowned = true
		add(rules.End{Winner: 0, HasWinner: true}, ps, nil)
	}
	return NewScript(0, steps...)
}

func demoRows() []snapshot.Row {
	rows := make([]snapshot.Row, 0, 20)
	for y := 0; y < 20; y++ {
		kind := snapshot.RowOther
		switch {
		case y >= 3 && y <= 6:
			kind = snapshot.RowRiver
		case y >= 9 && y <= 13:
			kind = snapshot.RowRoad
		}
		rows = append(rows, snapshot.Row{Y: y, RowID: y, Kind: kind})
	}
	return rows
}

// demoPlayers places count players along the bottom; they hop one row up
// every 40 frames. With othersDead only player 0 is alive.
func demoPlayers(count, frame int, othersDead bool) []snapshot.Player {
	ps := make([]snapshot.Player, 0, count)
	for id := 0; id < count; id++ {
		p := snapshot.Player{
			ID:         id,
			SpriteName: demoCharacters[id%len(demoCharacters)],
			Source:     snapshot.Source{PlayerID: id},
			X:          float64(6 + 2*id),
			Y:          float64(max(17-frame/40, 2)),
		}
		if othersDead && id > 0 {
			p.Dead = true
		}
		ps = append(ps, p)
	}
	return ps
}

func demoCars(frame int) []snapshot.Car {
	var cars []snapshot.Car
	for lane := 9; lane <= 13; lane++ {
		dir := 1.0
		if lane%2 == 0 {
			dir = -1
		}
		for k := 0; k < 2; k++ {
			x := float64((frame*(lane-7)/8+k*10)%24) - 2
			if dir < 0 {
				x = 20 - x
			}
			cars = append(cars, snapshot.Car{X: x, Y: float64(lane), Flipped: dir < 0})
		}
	}
	return cars
}
