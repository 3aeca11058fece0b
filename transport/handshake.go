// Package transport connects the client to a game server: a one-shot HTTP
// handshake followed by a binary websocket carrying engine payloads.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config describes which game to join and as whom.
type Config struct {
	BaseURL string
	Name    string
	// GameID joins an existing game; empty creates a new one.
	GameID string
	// BypassLobby asks the server to start a new game without waiting for
	// other players.
	BypassLobby bool
	Client      *http.Client
}

// Session identifies the client to the server after the handshake.
type Session struct {
	GameID   string
	SocketID int
	PlayerID int
	Seed     uint32
}

type newResponse struct {
	GameID json.RawMessage `json:"game_id"`
}

type joinResponse struct {
	SocketID      int    `json:"socket_id"`
	ServerTimeUS  uint32 `json:"server_time_us"`
	ServerFrameID uint32 `json:"server_frame_id"`
}

type playResponse struct {
	ServerVersion int    `json:"server_version"`
	PlayerCount   int    `json:"player_count"`
	Seed          uint32 `json:"seed"`
	PlayerID      int    `json:"player_id"`
}

// ErrBadStatus is wrapped by handshake errors for non-200 replies.
var ErrBadStatus = errors.New("unexpected status")

// Handshake runs /new (unless cfg.GameID is set), /join and /play.
func Handshake(ctx context.Context, cfg Config) (Session, error) {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	sess := Session{GameID: cfg.GameID}
	if sess.GameID == "" {
		q := url.Values{}
		if cfg.BypassLobby {
			q.Set("debug_bypass_lobby", "true")
		}
		var nr newResponse
		if err := getJSON(ctx, client, base+"/new", q, &nr); err != nil {
			return Session{}, fmt.Errorf("new game: %w", err)
		}
		id, err := gameID(nr.GameID)
		if err != nil {
			return Session{}, fmt.Errorf("new game: %w", err)
		}
		sess.GameID = id
	}

	var jr joinResponse
	if err := getJSON(ctx, client, base+"/join", url.Values{"game_id": {sess.GameID}, "name": {cfg.Name}}, &jr); err != nil {
		return Session{}, fmt.Errorf("join %s: %w", sess.GameID, err)
	}
	sess.SocketID = jr.SocketID

	var pr playResponse
	q := url.Values{"game_id": {sess.GameID}, "socket_id": {strconv.Itoa(sess.SocketID)}}
	if err := getJSON(ctx, client, base+"/play", q, &pr); err != nil {
		return Session{}, fmt.Errorf("play %s: %w", sess.GameID, err)
	}
	sess.PlayerID = pr.PlayerID
	sess.Seed = pr.Seed
	return sess, nil
}

// gameID accepts the id as a JSON string or number.
func gameID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n != "" {
		return n.String(), nil
	}
	return "", fmt.Errorf("missing game_id in %q", raw)
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, q url.Values, v any) error {
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w %s", ErrBadStatus, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}

// SocketURL returns the websocket endpoint for sess.
func SocketURL(baseURL string, sess Session) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/ws")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.RawQuery = url.Values{"game_id": {sess.GameID}, "socket_id": {strconv.Itoa(sess.SocketID)}}.Encode()
	return u.String(), nil
}
