package main

import (
	"testing"
	"time"

	"crossyview/rules"
)

func TestStatsCountMatches(t *testing.T) {
	statsMu.Lock()
	stats = matchStats{}
	statsMu.Unlock()

	statPhase(rules.PhaseLobby, false)
	statPhase(rules.PhaseRound, false)
	statPhase(rules.PhaseRound, false)
	statPhase(rules.PhaseEnd, true)
	statPhase(rules.PhaseEnd, false)
	statPlayTime(90 * time.Second)
	statPlayTime(-time.Second)

	if stats.Rounds != 2 || stats.Matches != 2 || stats.Wins != 1 || stats.PlayTime != 90*time.Second {
		t.Fatalf("stats %+v", stats)
	}
	saveStats()
	if statsDirty {
		t.Fatalf("still dirty after save")
	}

	stats = matchStats{}
	loadStats()
	if stats.Wins != 1 || stats.PlayTime != 90*time.Second {
		t.Fatalf("reloaded %+v", stats)
	}
}
