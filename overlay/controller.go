package overlay

import (
	"crossyview/effect"
	"crossyview/gfx"
	"crossyview/rules"
	"crossyview/sfx"
	"crossyview/snapshot"
)

// closeBeforeUS closes the cooldown dialogue when less time than this is left.
const closeBeforeUS = 20000

// Controller owns at most one dialogue and the queue of join announcements
// waiting for it.
type Controller struct {
	// OnJoin is called for every player announced in the lobby.
	OnJoin func(character string)

	atlas   *gfx.Atlas
	effects effect.Sink
	cues    sfx.Player

	dialogue *Dialogue
	seen     map[int]bool
	queue    []string

	lobbyFirstTick    bool
	cooldownFirstTick bool
}

// NewController returns a controller spawning flashes into effects and
// playing join cues on cues.
func NewController(atlas *gfx.Atlas, effects effect.Sink, cues sfx.Player) *Controller {
	if cues == nil {
		cues = sfx.Nop{}
	}
	return &Controller{
		atlas:             atlas,
		effects:           effects,
		cues:              cues,
		seen:              make(map[int]bool),
		lobbyFirstTick:    true,
		cooldownFirstTick: true,
	}
}

// Tick runs the lobby or game logic for the frame's rule state, then
// advances the active dialogue. A nil state runs neither branch.
func (c *Controller) Tick(state rules.State, players []snapshot.Player) {
	switch s := state.(type) {
	case nil:
	case rules.Lobby:
		c.tickLobby(players)
	default:
		c.tickGame(s, players)
	}

	if c.dialogue != nil {
		c.dialogue.Tick()
		if !c.dialogue.Alive() {
			c.dialogue = nil
		}
	}
}

func (c *Controller) tickLobby(players []snapshot.Player) {
	for _, p := range players {
		if c.seen[p.ID] {
			continue
		}
		c.seen[p.ID] = true
		if c.lobbyFirstTick {
			continue
		}
		c.queue = append(c.queue, p.SpriteName)
		c.spawnFlash()
		c.cues.Play(sfx.Join)
		if c.OnJoin != nil {
			c.OnJoin(p.SpriteName)
		}
	}

	if len(c.queue) > 0 && c.dialogue == nil {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.dialogue = NewDialogue(c.atlas, next, JoinDialogueFrames)
	}
	c.lobbyFirstTick = false
}

func (c *Controller) tickGame(state rules.State, players []snapshot.Player) {
	cd, ok := state.(rules.RoundCooldown)
	if !ok {
		c.cooldownFirstTick = true
		return
	}

	winner, hasWinner := cd.Alive.Winner()
	if c.cooldownFirstTick {
		c.cooldownFirstTick = false
		if hasWinner {
			c.spawnFlash()
			var character string
			if p, ok := snapshot.Find(players, winner); ok {
				character = p.SpriteName
			}
			c.dialogue = NewDialogue(c.atlas, character, 0)
		}
		return
	}
	if c.dialogue != nil && (!hasWinner || cd.RemainingUS < closeBeforeUS) {
		c.dialogue.TriggerClose()
	}
}

func (c *Controller) spawnFlash() {
	if c.effects != nil {
		c.effects.Add(effect.NewWhiteout())
	}
}

func (c *Controller) Draw(cv gfx.Canvas) {
	if c.dialogue != nil {
		c.dialogue.Draw(cv)
	}
}

// Active reports whether a dialogue is on screen.
func (c *Controller) Active() bool { return c.dialogue != nil }

// Dialogue returns the active dialogue, or nil.
func (c *Controller) Dialogue() *Dialogue { return c.dialogue }

// Queued is the number of join announcements still waiting.
func (c *Controller) Queued() int { return len(c.queue) }
