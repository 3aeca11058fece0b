package main

import (
	"net/url"
	"strings"

	"github.com/pkg/browser"
	clipboard "golang.design/x/clipboard"
)

var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		logWarn("clipboard unavailable: %v", err)
		return
	}
	clipboardReady = true
}

// inviteURL is the web client page that joins gameID on baseURL.
func inviteURL(baseURL, gameID string) string {
	if baseURL == "" || gameID == "" {
		return ""
	}
	q := url.Values{"game_id": {gameID}}
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode()
}

func copyInvite(gameID string) {
	if gameID == "" {
		return
	}
	if !clipboardReady {
		logWarn("copy invite: clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(gameID))
	logDebug("copied game id %s", gameID)
}

func openInvitePage(baseURL, gameID string) {
	u := inviteURL(baseURL, gameID)
	if u == "" {
		return
	}
	if err := browser.OpenURL(u); err != nil {
		logError("open invite page: %v", err)
	}
}
