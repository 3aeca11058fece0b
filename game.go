package main

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	dark "github.com/thiagokokada/dark-mode-go"

	"crossyview/engine"
	"crossyview/frame"
	"crossyview/gfx"
	"crossyview/rules"
	"crossyview/transport"
)

const initialWindowW, initialWindowH = gfx.ScreenW * 4, gfx.ScreenH * 4
const minWindowW, minWindowH = gfx.ScreenW, gfx.ScreenH

// fontSize is the label font size in logical pixels.
const fontSize = 8

var errShutdown = errors.New("shutdown")

var gameCtx = context.Background()

// session is everything a Game needs from the connect step.
type session struct {
	eng       engine.Engine
	socket    *transport.Socket
	gameID    string
	baseURL   string
	localName string
}

type Game struct {
	loop    *frame.Loop
	eng     engine.Engine
	socket  *transport.Socket
	gameID  string
	baseURL string

	// view is the offscreen render target at native game size. It is
	// composited into the window each Draw.
	view   *ebiten.Image
	canvas *gfx.ScreenCanvas
	margin color.Color

	lastFocused bool
	lastUpdate  time.Time
	played      time.Duration
}

func newGame(s session, atlas *gfx.Atlas, opts clientOptions) *Game {
	g := &Game{
		eng:         s.eng,
		socket:      s.socket,
		gameID:      s.gameID,
		baseURL:     s.baseURL,
		view:        ebiten.NewImage(gfx.ScreenW, gfx.ScreenH),
		margin:      marginColor(),
		lastFocused: true,
	}
	g.canvas = gfx.NewScreenCanvas(g.view, fontSize)

	var link frame.Link
	if s.socket != nil {
		link = s.socket
	}
	g.loop = frame.New(s.eng, link, frame.Options{
		Atlas:     atlas,
		Cues:      cuePlayer(),
		Logger:    componentLogger("frame"),
		Style:     opts.style,
		NoFlashes: opts.noFlashes,
		LocalName: s.localName,
		OnPhase:   g.phaseChanged,
		OnJoin:    g.playerJoined,
	})
	return g
}

// marginColor fills the window outside the game view.
func marginColor() color.Color {
	isDark, err := dark.IsDarkMode()
	if err != nil || isDark {
		return color.RGBA{0x10, 0x10, 0x10, 0xff}
	}
	return color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
}

func (g *Game) phaseChanged(prev, next rules.Phase) {
	logDebug("phase %v -> %v", prev, next)
	updateDiscordPhase(next)
	won := false
	if next == rules.PhaseEnd {
		if end, ok := g.currentEnd(); ok && end.HasWinner {
			won = end.Winner == g.eng.LocalPlayerID()
		}
	}
	statPhase(next, won)
	g.flushPlayTime()
}

func (g *Game) currentEnd() (rules.End, bool) {
	state, err := engine.RuleState(g.eng)
	if err != nil {
		return rules.End{}, false
	}
	end, ok := state.(rules.End)
	return end, ok
}

func (g *Game) playerJoined(character string) {
	if ebiten.IsFocused() {
		return
	}
	notifyDesktop("crossyview", joinNotice(character))
}

func (g *Game) flushPlayTime() {
	statPlayTime(g.played)
	g.played = 0
}

func (g *Game) Update() error {
	// Background behavior: mute when unfocused
	focused := ebiten.IsFocused()
	if focused != g.lastFocused {
		focusMuted = !focused && gs.MuteWhenUnfocused
		updateSoundVolume()
		g.lastFocused = focused
	}
	select {
	case <-gameCtx.Done():
		return errShutdown
	default:
	}

	now := time.Now()
	if !g.lastUpdate.IsZero() {
		g.played += now.Sub(g.lastUpdate)
	}
	g.lastUpdate = now

	if focused {
		if sym := g.pollKeyboard(); sym != "" {
			g.loop.SetInput(sym)
		}
		if sym := pollGamepads(); sym != "" {
			g.loop.SetInput(sym)
		}
	}
	g.loop.Step(g.canvas)
	return nil
}

// viewRect places the native view inside a w x h window. Whole-number
// scales are used whenever the window is at least native size.
func viewRect(w, h int) (x, y, scale float64) {
	sx := float64(w) / gfx.ScreenW
	sy := float64(h) / gfx.ScreenH
	scale = min(sx, sy)
	if scale >= 1 {
		scale = float64(int(scale))
	}
	if scale <= 0 {
		scale = 1
	}
	x = (float64(w) - gfx.ScreenW*scale) / 2
	y = (float64(h) - gfx.ScreenH*scale) / 2
	return x, y, scale
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.margin)
	b := screen.Bounds()
	x, y, scale := viewRect(b.Dx(), b.Dy())
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(g.view, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !gs.Fullscreen && outsideWidth >= minWindowW && outsideHeight >= minWindowH {
		if gs.WindowWidth != outsideWidth || gs.WindowHeight != outsideHeight {
			gs.WindowWidth = outsideWidth
			gs.WindowHeight = outsideHeight
			settingsDirty = true
		}
	}
	return outsideWidth, outsideHeight
}

func runGame(ctx context.Context, g *Game) {
	gameCtx = ctx

	ebiten.SetWindowTitle("crossyview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	// Ensure Update() TPS is synced with Draw FPS from the start.
	ebiten.SetTPS(ebiten.SyncWithFPS)
	applySettings()

	op := &ebiten.RunGameOptions{ScreenTransparent: false}
	if err := ebiten.RunGameWithOptions(g, op); err != nil && !errors.Is(err, errShutdown) {
		logError("ebiten: %v", err)
	}
	g.flushPlayTime()
	saveSettings()
}
