package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"crossyview/engine"
)

// padButtons maps the standard layout D-pad to engine input symbols.
var padButtons = []struct {
	button ebiten.StandardGamepadButton
	symbol string
}{
	{ebiten.StandardGamepadButtonLeftTop, engine.Up},
	{ebiten.StandardGamepadButtonLeftBottom, engine.Down},
	{ebiten.StandardGamepadButtonLeftLeft, engine.Left},
	{ebiten.StandardGamepadButtonLeftRight, engine.Right},
}

var gamepadIDs []ebiten.GamepadID

// pollGamepads returns the symbol of the last D-pad button just pressed on
// any connected pad with a standard layout.
func pollGamepads() string {
	sym := ""
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.button) {
				sym = b.symbol
			}
		}
	}
	return sym
}
