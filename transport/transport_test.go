package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

type fakeServer struct {
	mu     sync.Mutex
	joined []string
	conns  chan *websocket.Conn
}

func (f *fakeServer) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/new", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"game_id": "g42"})
	})
	r.Get("/join", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("game_id") == "missing" {
			http.Error(w, "no such game", http.StatusNotFound)
			return
		}
		f.mu.Lock()
		f.joined = append(f.joined, q.Get("game_id")+"/"+q.Get("name"))
		f.mu.Unlock()
		writeJSON(w, map[string]any{"socket_id": 7, "server_time_us": 1, "server_frame_id": 2})
	})
	r.Get("/play", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("socket_id") != "7" {
			http.Error(w, "bad socket", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"server_version": 1, "player_count": 1, "seed": 99, "player_id": 3})
	})
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		if f.conns != nil {
			f.conns <- conn
			for {
				if _, _, err := conn.Read(context.Background()); err != nil {
					return
				}
			}
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		for {
			typ, data, err := conn.Read(r.Context())
			if err != nil {
				return
			}
			if err := conn.Write(r.Context(), typ, append([]byte("echo:"), data...)); err != nil {
				return
			}
		}
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestHandshakeNewGame(t *testing.T) {
	f := &fakeServer{}
	srv := httptest.NewServer(f.router())
	defer srv.Close()

	sess, err := Handshake(context.Background(), Config{BaseURL: srv.URL + "/", Name: "ada"})
	if err != nil {
		t.Fatal(err)
	}
	if sess.GameID != "g42" || sess.SocketID != 7 || sess.PlayerID != 3 || sess.Seed != 99 {
		t.Fatalf("session %+v", sess)
	}
	if len(f.joined) != 1 || f.joined[0] != "g42/ada" {
		t.Fatalf("joined %v", f.joined)
	}
}

func TestHandshakeExistingGameAndErrors(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).router())
	defer srv.Close()

	sess, err := Handshake(context.Background(), Config{BaseURL: srv.URL, Name: "bo", GameID: "abc"})
	if err != nil || sess.GameID != "abc" {
		t.Fatalf("existing game: %+v %v", sess, err)
	}
	_, err = Handshake(context.Background(), Config{BaseURL: srv.URL, Name: "bo", GameID: "missing"})
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v", err)
	}
}

func TestGameIDForms(t *testing.T) {
	if id, err := gameID(json.RawMessage(`12`)); err != nil || id != "12" {
		t.Fatalf("number id %q %v", id, err)
	}
	if _, err := gameID(json.RawMessage(`null`)); err == nil {
		t.Fatalf("null id accepted")
	}
}

func TestSocketURL(t *testing.T) {
	u, err := SocketURL("https://example.com/", Session{GameID: "g 1", SocketID: 4})
	if err != nil {
		t.Fatal(err)
	}
	if u != "wss://example.com/ws?game_id=g+1&socket_id=4" {
		t.Fatalf("url %s", u)
	}
}

func waitDrain(t *testing.T, s *Socket, want int) [][]byte {
	t.Helper()
	var got [][]byte
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < want && time.Now().Before(deadline) {
		s.Drain(func(b []byte) { got = append(got, b) })
		time.Sleep(5 * time.Millisecond)
	}
	return got
}

func TestSocketRoundTrip(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).router())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Dial(ctx, srv.URL, Session{GameID: "g", SocketID: 7}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Ready() {
		t.Fatalf("socket not ready after dial")
	}
	if !s.Send([]byte("a")) || !s.Send([]byte("b")) {
		t.Fatalf("send refused")
	}
	got := waitDrain(t, s, 2)
	if len(got) != 2 || string(got[0]) != "echo:a" || string(got[1]) != "echo:b" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(s.Stats(), "dropped 0") {
		t.Fatalf("stats %q", s.Stats())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.Ready() || s.Send([]byte("c")) {
		t.Fatalf("closed socket still accepts sends")
	}
}

func TestSocketServerGoneIsNotReady(t *testing.T) {
	f := &fakeServer{conns: make(chan *websocket.Conn, 1)}
	srv := httptest.NewServer(f.router())
	defer srv.Close()

	s, err := Dial(context.Background(), srv.URL, Session{GameID: "g", SocketID: 7}, nil)
	if err != nil {
		t.Fatal(err)
	}
	conn := <-f.conns
	conn.Close(websocket.StatusGoingAway, "shutting down")

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("socket did not notice the close")
	}
	if s.Ready() {
		t.Fatalf("socket ready after server close")
	}
	if s.Send([]byte("x")) {
		t.Fatalf("send on dead socket")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close after going away: %v", err)
	}
}

func TestNilSocket(t *testing.T) {
	var s *Socket
	if s.Ready() || s.Send([]byte("x")) || s.Drain(func([]byte) {}) != 0 {
		t.Fatalf("nil socket misbehaved")
	}
}
