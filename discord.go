package main

import (
	"context"
	"time"

	client "github.com/hugolgst/rich-go/client"

	"crossyview/rules"
)

var discordStart time.Time
var discordReady bool

// discordEnabled reports whether rich presence should log in with appID.
func discordEnabled(appID string) bool {
	return gs.Presence && appID != ""
}

func initDiscordRPC(ctx context.Context, appID string) {
	if !discordEnabled(appID) {
		if gs.Presence {
			logDebug("discord rpc: no application id configured")
		}
		return
	}
	if err := client.Login(appID); err != nil {
		logError("discord rpc login: %v", err)
		return
	}
	discordReady = true
	discordStart = time.Now()
	setDiscordStatus("connecting")
	go func() {
		<-ctx.Done()
		client.Logout()
	}()
}

func setDiscordStatus(detail string) {
	if !discordReady {
		return
	}
	if err := client.SetActivity(client.Activity{
		State:   "crossyview",
		Details: detail,
		Timestamps: &client.Timestamps{
			Start: &discordStart,
		},
	}); err != nil {
		logError("discord rpc activity: %v", err)
	}
}

// phaseDetail is the presence line for a match phase.
func phaseDetail(p rules.Phase) string {
	switch p {
	case rules.PhaseLobby:
		return "waiting in the lobby"
	case rules.PhaseWarmup:
		return "getting ready"
	case rules.PhaseRound, rules.PhaseCooldown:
		return "crossing the road"
	case rules.PhaseEnd:
		return "match over"
	default:
		return "connecting"
	}
}

func updateDiscordPhase(p rules.Phase) {
	setDiscordStatus(phaseDetail(p))
}
