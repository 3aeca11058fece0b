package main

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"crossyview/sfx"
)

const sampleRate = sfx.SampleRate

var (
	audioContext *audio.Context
	soundBank    *sfx.Bank

	// focusMuted gates audio when window is unfocused and user enabled it.
	focusMuted bool
)

func initSoundContext() {
	if audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}
}

// loadSounds decodes the cue catalog from assets. A missing file only
// silences its cue.
func loadSounds(assets fs.FS) {
	initSoundContext()
	soundBank = sfx.LoadBank(audioContext, assets, sfx.Catalog, componentLogger("sfx"))
	updateSoundVolume()
}

// updateSoundVolume pushes the effective volume to the bank. Call it after
// any change to gs.Mute, focusMuted or the volume settings.
func updateSoundVolume() {
	if soundBank == nil {
		return
	}
	soundBank.SetVolume(effectiveVolume())
	soundBank.SetMuted(gs.Mute || focusMuted)
}

func effectiveVolume() float64 {
	if gs.Mute || focusMuted {
		return 0
	}
	return gs.MasterVolume * gs.SFXVolume
}

// cuePlayer is the sfx.Player handed to the frame loop.
func cuePlayer() sfx.Player {
	if soundBank == nil {
		return sfx.Nop{}
	}
	return soundBank
}
