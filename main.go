package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hako/durafmt"
	"github.com/sqweek/dialog"

	"crossyview/gfx"
	"crossyview/overlay"
	"crossyview/relay"
	"crossyview/transport"
)

// cliFlags holds the raw command line. Empty strings mean "use settings".
type cliFlags struct {
	server        string
	name          string
	game          string
	assets        string
	bypassLobby   bool
	fake          bool
	debug         bool
	textCountdown bool
	noFlash       bool
	copyInvite    bool
	discordApp    string
}

// clientOptions is the effective configuration for one run: settings with
// command line overrides applied. Overrides are never saved.
type clientOptions struct {
	server      string
	name        string
	gameID      string
	assets      string
	bypassLobby bool
	fake        bool
	style       overlay.Style
	noFlashes   bool
	copyInvite  bool

	// discordAppID enables rich presence when non-empty.
	discordAppID string
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func parseFlags(args []string, out io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("crossyview", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&f.server, "server", "", "game server base URL (default from settings)")
	fs.StringVar(&f.name, "name", "", "player name")
	fs.StringVar(&f.game, "game", "", "join an existing game id instead of creating one")
	fs.StringVar(&f.assets, "assets", "", "asset directory (default <data>/assets)")
	fs.BoolVar(&f.bypassLobby, "bypass-lobby", false, "start a new game without waiting for other players")
	fs.BoolVar(&f.fake, "fake", false, "play a scripted match without connecting")
	fs.BoolVar(&f.debug, "debug", false, "verbose/debug logging")
	fs.BoolVar(&f.textCountdown, "text-countdown", false, "draw the countdown as text")
	fs.BoolVar(&f.noFlash, "no-flash", false, "disable full-screen flashes")
	fs.BoolVar(&f.copyInvite, "copy-invite", false, "copy the game id to the clipboard once connected")
	fs.StringVar(&f.discordApp, "discord-app", "", "Discord application id for rich presence (default from settings)")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

func resolveOptions(f cliFlags, s settings) clientOptions {
	opts := clientOptions{
		server:      s.Server,
		name:        s.PlayerName,
		gameID:      f.game,
		assets:      filepath.Join(dataDirPath, "assets"),
		bypassLobby: f.bypassLobby,
		fake:        f.fake,
		style:       overlay.ParseStyle(s.CountdownStyle),
		noFlashes:   !s.Flashing || f.noFlash,
		copyInvite:  f.copyInvite,

		discordAppID: strings.TrimSpace(s.DiscordAppID),
	}
	if f.server != "" {
		opts.server = f.server
	}
	if name := strings.TrimSpace(f.name); name != "" {
		opts.name = name
	}
	if f.assets != "" {
		opts.assets = f.assets
	}
	if f.textCountdown {
		opts.style = overlay.StyleText
	}
	if id := strings.TrimSpace(f.discordApp); id != "" {
		opts.discordAppID = id
	}
	return opts
}

// connect joins or creates a game and opens its socket.
func connect(ctx context.Context, opts clientOptions) (session, error) {
	if opts.fake {
		return fakeSession(opts), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	sess, err := transport.Handshake(dialCtx, transport.Config{
		BaseURL:     opts.server,
		Name:        opts.name,
		GameID:      opts.gameID,
		BypassLobby: opts.bypassLobby,
	})
	if err != nil {
		return session{}, fmt.Errorf("handshake: %w", err)
	}
	sock, err := transport.Dial(dialCtx, opts.server, sess, componentLogger("socket"))
	if err != nil {
		return session{}, fmt.Errorf("socket: %w", err)
	}
	logDebug("joined game %s as player %d (seed %d)", sess.GameID, sess.PlayerID, sess.Seed)
	return session{
		eng:       relay.New(componentLogger("relay")),
		socket:    sock,
		gameID:    sess.GameID,
		baseURL:   opts.server,
		localName: opts.name,
	}, nil
}

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	loadSettings()
	setupLogging(f.debug)
	opts := resolveOptions(f, gs)
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initClipboard()
	loadStats()
	statsDone := make(chan struct{})
	go saveStatsEvery(time.Minute, statsDone)
	initDiscordRPC(ctx, opts.discordAppID)

	assets := os.DirFS(opts.assets)
	atlas := gfx.LoadAtlas(assets, gfx.Catalog, gfx.DefaultDialogue, componentLogger("gfx"))
	loadSounds(assets)

	sess, err := connect(ctx, opts)
	if err != nil {
		logError("connect %s: %v", opts.server, err)
		dialog.Message("Could not join a game on %s:\n%v", opts.server, err).Title("crossyview").Error()
		os.Exit(1)
	}
	if !opts.fake {
		gs.LastGameID = sess.gameID
		settingsDirty = true
	}
	if opts.copyInvite {
		copyInvite(sess.gameID)
	}

	started := time.Now()
	runGame(ctx, newGame(sess, atlas, opts))

	if sess.socket != nil {
		if err := sess.socket.Close(); err != nil {
			logWarn("socket close: %v", err)
		}
		log.Printf("socket: %s", sess.socket.Stats())
	}
	if soundBank != nil {
		soundBank.Close()
	}
	close(statsDone)
	saveStats()
	log.Printf("session length %s", durafmt.Parse(time.Since(started)).LimitFirstN(2).Format(shortUnits))
}
