package main

import (
	"testing"
	"testing/fstest"

	"crossyview/sfx"
)

func TestViewRect(t *testing.T) {
	tests := []struct {
		w, h        int
		x, y, scale float64
	}{
		{160, 160, 0, 0, 1},
		{640, 640, 0, 0, 4},
		{700, 500, 110, 10, 3},
		{80, 160, 0, 40, 0.5},
	}
	for _, tt := range tests {
		x, y, s := viewRect(tt.w, tt.h)
		if x != tt.x || y != tt.y || s != tt.scale {
			t.Errorf("viewRect(%d,%d) = %v,%v,%v want %v,%v,%v", tt.w, tt.h, x, y, s, tt.x, tt.y, tt.scale)
		}
	}
}

func TestSoundBankFollowsFocusMute(t *testing.T) {
	withSettings(t)
	soundBank = nil
	if _, ok := cuePlayer().(sfx.Nop); !ok {
		t.Fatalf("nil bank should yield a no-op player")
	}
	loadSounds(fstest.MapFS{})
	t.Cleanup(func() {
		soundBank.Close()
		soundBank = nil
		focusMuted = false
	})
	if _, ok := cuePlayer().(*sfx.Bank); !ok {
		t.Fatalf("cuePlayer = %T", cuePlayer())
	}
	gs.Mute = false
	gs.MasterVolume, gs.SFXVolume = 0.5, 0.5
	if v := effectiveVolume(); v != 0.25 {
		t.Fatalf("volume %v", v)
	}
	focusMuted = true
	updateSoundVolume()
	if effectiveVolume() != 0 {
		t.Fatalf("focus mute ignored")
	}
	cuePlayer().Play(sfx.Join)
}
