package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

const SETTINGS_VERSION = 3

const settingsFile = "settings.json"

var gs settings = gsdef

// settingsDirty marks in-session changes that still need saving.
var settingsDirty bool

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	Server:            "http://localhost:8080",
	PlayerName:        "player",
	MasterVolume:      1.0,
	SFXVolume:         0.8,
	WindowWidth:       initialWindowW,
	WindowHeight:      initialWindowH,
	Flashing:          true,
	CountdownStyle:    "sprite",
	MuteWhenUnfocused: true,
	Presence:          true,
	Notifications:     true,
	vsync:             true,
}

type settings struct {
	Version int

	Server     string
	PlayerName string
	LastGameID string

	MasterVolume      float64
	SFXVolume         float64
	Mute              bool
	MuteWhenUnfocused bool

	WindowWidth  int
	WindowHeight int
	Fullscreen   bool

	// Flashing enables full-screen white flashes.
	Flashing       bool
	CountdownStyle string

	Presence      bool
	// DiscordAppID is the Discord application used for rich presence.
	// Presence stays off while it is empty.
	DiscordAppID  string
	Notifications bool

	vsync bool
}

// Vsync is persisted under its own key so the zero value stays "on".
type settingsFileData struct {
	settings
	Vsync *bool `json:"Vsync,omitempty"`
}

func settingsPath() string {
	return filepath.Join(dataDirPath, settingsFile)
}

func loadSettings() bool {
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		gs = gsdef
		return false
	}

	tmp := settingsFileData{settings: gsdef}
	if err := json.Unmarshal(data, &tmp); err != nil {
		logWarn("settings: %v", err)
		gs = gsdef
		return false
	}
	if tmp.settings.Version != SETTINGS_VERSION {
		gs = gsdef
		return false
	}

	gs = tmp.settings
	gs.vsync = tmp.Vsync == nil || *tmp.Vsync
	clampSettings()
	return true
}

func clampSettings() {
	if gs.MasterVolume < 0 || gs.MasterVolume > 1 {
		gs.MasterVolume = gsdef.MasterVolume
	}
	if gs.SFXVolume < 0 || gs.SFXVolume > 1 {
		gs.SFXVolume = gsdef.SFXVolume
	}
	if gs.WindowWidth < minWindowW || gs.WindowHeight < minWindowH {
		gs.WindowWidth, gs.WindowHeight = gsdef.WindowWidth, gsdef.WindowHeight
	}
	if gs.CountdownStyle != "text" && gs.CountdownStyle != "sprite" {
		gs.CountdownStyle = gsdef.CountdownStyle
	}
	if gs.Server == "" {
		gs.Server = gsdef.Server
	}
	if gs.PlayerName == "" {
		gs.PlayerName = gsdef.PlayerName
	}
}

func applySettings() {
	ebiten.SetVsyncEnabled(gs.vsync)
	ebiten.SetFullscreen(gs.Fullscreen)
	updateSoundVolume()
}

func saveSettings() {
	if err := os.MkdirAll(dataDirPath, 0o755); err != nil {
		logError("save settings: %v", err)
		return
	}
	vsync := gs.vsync
	data, err := json.MarshalIndent(settingsFileData{settings: gs, Vsync: &vsync}, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	path := settingsPath()
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.Rename(path+".tmp", path); err != nil {
		logError("save settings: %v", err)
		return
	}
	settingsDirty = false
}
