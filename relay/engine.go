package relay

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"crossyview/engine"
	"crossyview/rules"
	"crossyview/snapshot"
)

// Lobby ready zone, in tiles.
const (
	readyX0, readyX1 = 7, 13
	readyY0, readyY1 = 14, 18
)

// Engine mirrors the latest ServerTick. Inbound frames older than the one
// already held are ignored.
type Engine struct {
	logger *log.Logger
	warn   *rate.Limiter
	now    func() time.Time
	start  time.Time

	latest  *ServerTick
	current *ServerTick
	rows    []snapshot.Row
	cars    []snapshot.Car
	players []snapshot.Player

	frame   uint32
	pending string
	input   string
	ready   bool

	dropped int
}

// New returns an engine with no server state yet.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		logger: logger,
		warn:   rate.NewLimiter(rate.Every(time.Second), 1),
		now:    time.Now,
		input:  engine.None,
	}
	e.start = e.now()
	return e
}

// Recv decodes one server frame. Malformed frames are logged and dropped.
func (e *Engine) Recv(msg []byte) {
	t, err := DecodeServerTick(msg)
	if err != nil {
		e.dropped++
		if e.warn.Allow() {
			e.logger.Printf("relay: dropping frame (%d so far): %v", e.dropped, err)
		}
		return
	}
	if e.latest != nil && t.FrameID < e.latest.FrameID {
		return
	}
	e.latest = t
}

// BufferInputJSON keeps the first non-None input until the next Tick.
func (e *Engine) BufferInputJSON(input []byte) {
	in := engine.ParseInput(input)
	if e.pending == "" || e.pending == engine.None {
		e.pending = in
	}
}

// Tick consumes the buffered input and adopts the newest server frame.
func (e *Engine) Tick() {
	e.frame++
	e.input = e.pending
	if e.input == "" {
		e.input = engine.None
	}
	e.pending = ""

	if e.latest != nil && e.latest != e.current {
		e.current = e.latest
		e.rows, e.cars, e.players = e.current.Snapshots()
	}
	e.ready = e.inReadyZone()
}

func (e *Engine) inReadyZone() bool {
	if e.current == nil {
		return false
	}
	st, err := rules.Decode(e.current.RuleState)
	if err != nil {
		return false
	}
	if _, ok := st.(rules.Lobby); !ok {
		return false
	}
	p, ok := snapshot.Find(e.players, e.current.PlayerID)
	if !ok {
		return false
	}
	return p.X >= readyX0 && p.X < readyX1 && p.Y >= readyY0 && p.Y < readyY1
}

// ClientMessage encodes this frame's ClientTick.
func (e *Engine) ClientMessage() []byte {
	data, err := EncodeClientTick(ClientTick{
		TimeUS:     uint32(e.now().Sub(e.start).Microseconds()),
		FrameID:    e.frame,
		Input:      e.input,
		LobbyReady: e.ready,
	})
	if err != nil {
		if e.warn.Allow() {
			e.logger.Printf("relay: encode client tick: %v", err)
		}
		return nil
	}
	return data
}

func (e *Engine) RowsJSON() ([]byte, error) { return snapshot.EncodeRows(e.rows) }

func (e *Engine) CarsJSON() ([]byte, error) { return snapshot.EncodeCars(e.cars) }

func (e *Engine) PlayersJSON() ([]byte, error) { return snapshot.EncodePlayers(e.players) }

func (e *Engine) RuleStateJSON() ([]byte, error) {
	if e.current == nil {
		return nil, nil
	}
	return e.current.RuleState, nil
}

func (e *Engine) LocalPlayerID() int {
	if e.current == nil {
		return NoPlayer
	}
	return e.current.PlayerID
}

// Dropped counts malformed frames received so far.
func (e *Engine) Dropped() int { return e.dropped }
