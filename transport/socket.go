package transport

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	sendQueue = 64
	recvQueue = 256
	readLimit = 1 << 20
)

// Socket is a best-effort binary duplex. Sends never block; inbound frames
// queue until Drain.
type Socket struct {
	conn   *websocket.Conn
	logger *log.Logger
	warn   *rate.Limiter

	out    chan []byte
	in     chan []byte
	ready  atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	closeOnce sync.Once

	sent, received atomic.Uint64
	dropped        atomic.Uint64
}

// Dial opens the session's websocket and starts its pumps. ctx bounds the
// dial only.
func Dial(ctx context.Context, baseURL string, sess Session, logger *log.Logger) (*Socket, error) {
	u, err := SocketURL(baseURL, sess)
	if err != nil {
		return nil, fmt.Errorf("socket url: %w", err)
	}
	conn, _, err := websocket.Dial(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	conn.SetReadLimit(readLimit)
	return newSocket(conn, logger), nil
}

func newSocket(conn *websocket.Conn, logger *log.Logger) *Socket {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Socket{
		conn:   conn,
		logger: logger,
		warn:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		out:    make(chan []byte, sendQueue),
		in:     make(chan []byte, recvQueue),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.ready.Store(true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readPump(gctx) })
	g.Go(func() error { return s.writePump(gctx) })
	go func() {
		err := g.Wait()
		s.ready.Store(false)
		if !expectedClose(err) {
			s.logger.Printf("socket closed: %v", err)
		}
		s.err = err
		close(s.done)
	}()
	return s
}

func expectedClose(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

func (s *Socket) readPump(ctx context.Context) error {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageBinary {
			continue
		}
		s.received.Add(uint64(len(data)))
		select {
		case s.in <- data:
		default:
			s.drop("inbound queue full")
		}
	}
}

func (s *Socket) writePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.out:
			if err := s.conn.Write(ctx, websocket.MessageBinary, msg); err != nil {
				return err
			}
			s.sent.Add(uint64(len(msg)))
		}
	}
}

func (s *Socket) drop(why string) {
	n := s.dropped.Add(1)
	if s.warn.Allow() {
		s.logger.Printf("socket: %s, %d frames dropped so far", why, n)
	}
}

// Ready reports whether both pumps are still running.
func (s *Socket) Ready() bool { return s != nil && s.ready.Load() }

// Send queues msg without blocking. It reports false when the message was
// dropped.
func (s *Socket) Send(msg []byte) bool {
	if !s.Ready() || len(msg) == 0 {
		return false
	}
	select {
	case s.out <- msg:
		return true
	default:
		s.drop("send queue full")
		return false
	}
}

// Drain hands every queued inbound payload to fn, in arrival order.
func (s *Socket) Drain(fn func([]byte)) int {
	if s == nil {
		return 0
	}
	n := 0
	for {
		select {
		case msg := <-s.in:
			fn(msg)
			n++
		default:
			return n
		}
	}
}

// Close shuts the connection and waits for the pumps.
func (s *Socket) Close() error {
	s.closeOnce.Do(func() {
		s.ready.Store(false)
		_ = s.conn.Close(websocket.StatusNormalClosure, "bye")
		s.cancel()
	})
	<-s.done
	if expectedClose(s.err) {
		return nil
	}
	return s.err
}

// Done is closed once the socket stopped.
func (s *Socket) Done() <-chan struct{} { return s.done }

// Stats summarises traffic for logs.
func (s *Socket) Stats() string {
	return fmt.Sprintf("sent %s, received %s, dropped %d frames",
		humanize.Bytes(s.sent.Load()), humanize.Bytes(s.received.Load()), s.dropped.Load())
}
