package main

import (
	"crossyview/engine"
)

// fakeSession plays a scripted offline match without connecting to a
// server. It exercises every overlay and the winner banner.
func fakeSession(opts clientOptions) session {
	script := engine.Demo()
	logDebug("fake mode: %d scripted frames", len(script.Steps))
	return session{
		eng:       script,
		gameID:    "offline",
		localName: opts.name,
	}
}
