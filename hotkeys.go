package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	open "github.com/skratchdot/open-golang/open"

	"crossyview/engine"
)

// moveKeys maps keyboard keys to engine input symbols.
var moveKeys = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    engine.Up,
	ebiten.KeyW:          engine.Up,
	ebiten.KeyArrowDown:  engine.Down,
	ebiten.KeyS:          engine.Down,
	ebiten.KeyArrowLeft:  engine.Left,
	ebiten.KeyA:          engine.Left,
	ebiten.KeyArrowRight: engine.Right,
	ebiten.KeyD:          engine.Right,
}

type Hotkey struct {
	Name   string
	Key    ebiten.Key
	Action func(g *Game)
}

var hotkeys = []Hotkey{
	{Name: "toggle fullscreen", Key: ebiten.KeyF11, Action: func(*Game) { toggleFullscreen() }},
	{Name: "toggle mute", Key: ebiten.KeyM, Action: func(*Game) { toggleMute() }},
	{Name: "copy game id", Key: ebiten.KeyC, Action: func(g *Game) { copyInvite(g.gameID) }},
	{Name: "open invite page", Key: ebiten.KeyB, Action: func(g *Game) { openInvitePage(g.baseURL, g.gameID) }},
	{Name: "open data folder", Key: ebiten.KeyF12, Action: func(*Game) { openDataFolder() }},
}

var pressedKeys []ebiten.Key

// moveSymbol returns the movement symbol for the last key in keys that maps
// to one, or "" when none does.
func moveSymbol(keys []ebiten.Key) string {
	sym := ""
	for _, k := range keys {
		if s, ok := moveKeys[k]; ok {
			sym = s
		}
	}
	return sym
}

// pollKeyboard returns this tick's movement symbol and runs hotkeys whose
// key was just pressed.
func (g *Game) pollKeyboard() string {
	pressedKeys = inpututil.AppendJustPressedKeys(pressedKeys[:0])
	for _, k := range pressedKeys {
		if hk := hotkeyFor(k); hk != nil {
			logDebug("hotkey %s", hk.Name)
			hk.Action(g)
		}
	}
	return moveSymbol(pressedKeys)
}

func hotkeyFor(k ebiten.Key) *Hotkey {
	for i := range hotkeys {
		if hotkeys[i].Key == k {
			return &hotkeys[i]
		}
	}
	return nil
}

func toggleFullscreen() {
	gs.Fullscreen = !gs.Fullscreen
	ebiten.SetFullscreen(gs.Fullscreen)
	settingsDirty = true
}

func toggleMute() {
	gs.Mute = !gs.Mute
	updateSoundVolume()
	settingsDirty = true
}

func openDataFolder() {
	if err := open.Run(dataDirPath); err != nil {
		logError("open data folder: %v", err)
	}
}
