// Package frame drives one client frame: it feeds input and network bytes
// into the engine, renders the snapshots it reports and runs the overlays
// on top. Step is synchronous and never blocks; the caller schedules it
// once per display refresh.
package frame

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"crossyview/effect"
	"crossyview/engine"
	"crossyview/gfx"
	"crossyview/overlay"
	"crossyview/rules"
	"crossyview/sfx"
	"crossyview/snapshot"
	"crossyview/world"
)

// Link is the network side of a session. *transport.Socket implements it.
type Link interface {
	Ready() bool
	Send(msg []byte) bool
	Drain(fn func([]byte)) int
}

// Options configures a Loop. The zero value is usable.
type Options struct {
	Atlas  *gfx.Atlas
	Cues   sfx.Player
	Logger *log.Logger
	Style  overlay.Style
	// NoFlashes drops full-screen flashes.
	NoFlashes bool
	// LocalName labels the match winner banner when the local player wins.
	LocalName string
	OnPhase   func(prev, next rules.Phase)
	OnJoin    func(character string)
}

// Status is the overlay state after a Step.
type Status struct {
	Phase        rules.Phase
	Dialogue     string
	DialogueOpen bool
	Countdown    string
	CountdownOn  bool
	Winner       bool
	Effects      int
}

// Loop owns every per-session component.
type Loop struct {
	eng  engine.Engine
	link Link
	opts Options

	pool   effect.Pool
	view   *world.View
	actors *world.Actors

	ctrl      *overlay.Controller
	countdown *overlay.Countdown
	winner    *overlay.Winner

	input  string
	phase  rules.Phase
	frames int
	warn   *rate.Limiter
}

// New builds a loop around eng. link may be nil for offline engines.
func New(eng engine.Engine, link Link, opts Options) *Loop {
	if opts.Atlas == nil {
		opts.Atlas = gfx.Describe(gfx.Catalog, gfx.DefaultDialogue)
	}
	if opts.Cues == nil {
		opts.Cues = sfx.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	l := &Loop{
		eng:    eng,
		link:   link,
		opts:   opts,
		view:   world.NewView(opts.Atlas),
		actors: world.NewActors(opts.Atlas),
		warn:   rate.NewLimiter(rate.Every(time.Second), 1),
	}

	var sink effect.Sink = &l.pool
	if opts.NoFlashes {
		sink = effect.Filter{Next: &l.pool, Drop: effect.IsFlash}
	}
	l.ctrl = overlay.NewController(opts.Atlas, sink, opts.Cues)
	l.ctrl.OnJoin = opts.OnJoin
	l.countdown = overlay.NewCountdown(opts.Atlas, opts.Style)
	return l
}

// SetInput records the input symbol for the next Step. The latest call
// wins; an empty symbol is ignored.
func (l *Loop) SetInput(symbol string) {
	if symbol != "" && symbol != engine.None {
		l.input = symbol
	}
}

// Step runs one frame and draws it onto c.
func (l *Loop) Step(c gfx.Canvas) {
	l.frames++
	c.Fill(world.Background)

	if l.link != nil {
		l.link.Drain(l.eng.Recv)
	}
	l.eng.BufferInputJSON(engine.InputJSON(l.input))
	l.input = ""

	l.eng.Tick()
	if l.link != nil && l.link.Ready() {
		if msg := l.eng.ClientMessage(); len(msg) > 0 {
			l.link.Send(msg)
		}
	}

	if rows, err := engine.Rows(l.eng); err != nil {
		l.warnf("skipping rows: %v", err)
	} else {
		l.view.DrawRows(c, rows)
	}
	if cars, err := engine.Cars(l.eng); err != nil {
		l.warnf("skipping cars: %v", err)
	} else {
		l.view.DrawCars(c, cars)
	}

	l.pool.Step(c)

	players, err := engine.Players(l.eng)
	playersOK := err == nil
	if !playersOK {
		l.warnf("skipping players: %v", err)
	} else {
		l.actors.Sync(c, players, l.eng.LocalPlayerID())
	}

	state, err := engine.RuleState(l.eng)
	if err != nil {
		l.warnf("skipping rule state: %v", err)
		state = nil
	}
	l.overlays(c, state, players, playersOK)
}

func (l *Loop) overlays(c gfx.Canvas, state rules.State, players []snapshot.Player, playersOK bool) {
	if lobby, ok := state.(rules.Lobby); ok {
		l.view.DrawLobby(c, lobby.ReadyFrames)
	}
	if p := rules.PhaseOf(state); p != rules.PhaseNone && p != l.phase {
		l.enter(l.phase, state, players)
	}

	if playersOK {
		l.ctrl.Tick(state, players)
	} else {
		// Without a roster the lobby and cooldown passes would spend their
		// first-tick flags on nothing. Only the open dialogue advances.
		l.ctrl.Tick(nil, nil)
	}
	l.countdown.Tick(state, l.opts.Cues)
	if l.winner != nil {
		l.winner.Tick()
		if !l.winner.Alive() {
			l.winner = nil
		}
	}

	l.ctrl.Draw(c)
	l.countdown.Draw(c)
	if l.winner != nil {
		l.winner.Draw(c)
	}
}

func (l *Loop) enter(prev rules.Phase, state rules.State, players []snapshot.Player) {
	next := state.Phase()
	l.phase = next
	switch s := state.(type) {
	case rules.End:
		l.winner = l.newWinner(s, players)
		l.opts.Cues.Play(sfx.Win)
	case rules.Lobby:
		l.winner = nil
	}
	if l.opts.OnPhase != nil {
		l.opts.OnPhase(prev, next)
	}
}

func (l *Loop) newWinner(end rules.End, players []snapshot.Player) *overlay.Winner {
	if !end.HasWinner {
		w := overlay.NewWinner(l.opts.Atlas, l.opts.Style)
		w.TriggerNoWinner()
		return w
	}
	name := ""
	if end.Winner == l.eng.LocalPlayerID() && l.opts.LocalName != "" {
		name = l.opts.LocalName
	} else if p, ok := snapshot.Find(players, end.Winner); ok {
		name = p.SpriteName
	}
	if name == "" {
		return overlay.NewWinner(l.opts.Atlas, l.opts.Style)
	}
	return overlay.NewGameWinner(name)
}

func (l *Loop) warnf(format string, args ...any) {
	if l.warn.Allow() {
		l.opts.Logger.Printf(format, args...)
	}
}

// Phase is the last phase the engine reported.
func (l *Loop) Phase() rules.Phase { return l.phase }

// Frames counts Steps so far.
func (l *Loop) Frames() int { return l.frames }

// Status summarises the overlays for the last Step.
func (l *Loop) Status() Status {
	st := Status{
		Phase:       l.phase,
		CountdownOn: l.countdown.Enabled(),
		Winner:      l.winner != nil,
		Effects:     l.pool.Len(),
	}
	if st.CountdownOn {
		st.Countdown = l.countdown.Label()
	}
	if d := l.ctrl.Dialogue(); d != nil {
		st.DialogueOpen = true
		st.Dialogue = d.Character()
	}
	return st
}
