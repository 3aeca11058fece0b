package main

import (
	"context"
	"testing"

	"crossyview/rules"
)

func TestPhaseDetail(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range []rules.Phase{rules.PhaseNone, rules.PhaseLobby, rules.PhaseWarmup, rules.PhaseRound, rules.PhaseEnd} {
		d := phaseDetail(p)
		if d == "" || seen[d] {
			t.Fatalf("phase %v detail %q", p, d)
		}
		seen[d] = true
	}
	if phaseDetail(rules.PhaseCooldown) != phaseDetail(rules.PhaseRound) {
		t.Fatalf("cooldown should read as the round")
	}
}

func TestJoinNotice(t *testing.T) {
	if joinNotice("") != "" {
		t.Fatalf("empty character produced a notice")
	}
	if got := joinNotice("frog"); got != "a frog joined the lobby" {
		t.Fatalf("notice %q", got)
	}
}

func TestInviteURL(t *testing.T) {
	if inviteURL("", "g") != "" || inviteURL("http://x", "") != "" {
		t.Fatalf("incomplete invite produced a URL")
	}
	if got := inviteURL("http://example.com/", "g 1"); got != "http://example.com/?game_id=g+1" {
		t.Fatalf("invite %q", got)
	}
}

func TestDiscordSkippedWithoutAppID(t *testing.T) {
	saved := gs
	t.Cleanup(func() { gs = saved })
	gs = gsdef
	if discordEnabled("") {
		t.Fatalf("presence enabled without an application id")
	}
	if !discordEnabled("42") {
		t.Fatalf("presence disabled with an application id")
	}
	gs.Presence = false
	if discordEnabled("42") {
		t.Fatalf("presence enabled with Presence off")
	}
	// No login is attempted, so nothing becomes ready.
	initDiscordRPC(context.Background(), "")
	if discordReady {
		t.Fatalf("discord marked ready without an application id")
	}
}
