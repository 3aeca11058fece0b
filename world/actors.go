package world

import (
	"math"

	"crossyview/gfx"
	"crossyview/snapshot"
)

// remoteLerp divides the remaining distance closed per frame by remote actors.
const remoteLerp = 3

// remoteSnapTiles is the jump past which a remote actor teleports.
const remoteSnapTiles = 3

var localMarker = gfx.Hex("#ffffff")

type actor interface {
	tick(p snapshot.Player)
	draw(c gfx.Canvas)
}

type body struct {
	sprite  *gfx.Sprite
	crown   *gfx.Sprite
	x, y    float64
	frame   int
	dead    bool
	crowned bool
}

func (b *body) draw(c gfx.Canvas) {
	if b.sprite == nil || b.dead {
		return
	}
	px, py := b.x*Tile+Tile/2, b.y*Tile+Tile/2
	c.DrawSprite(b.sprite, b.frame, gfx.SpriteOp{X: px, Y: py})
	if b.crowned && b.crown != nil {
		c.DrawSprite(b.crown, 0, gfx.SpriteOp{X: px, Y: py - Tile})
	}
}

// localActor follows the snapshot exactly and carries a marker.
type localActor struct{ body }

func (a *localActor) tick(p snapshot.Player) {
	a.frame = 0
	if a.x != p.X || a.y != p.Y {
		a.frame = 1
	}
	a.x, a.y = p.X, p.Y
	a.dead, a.crowned = p.Dead, p.Crowned
}

func (a *localActor) draw(c gfx.Canvas) {
	a.body.draw(c)
	if !a.dead {
		c.FillRect(a.x*Tile+Tile/2-1, a.y*Tile-3, 2, 2, localMarker)
	}
}

// remoteActor eases towards the reported position.
type remoteActor struct {
	body
	placed bool
}

func (a *remoteActor) tick(p snapshot.Player) {
	dx, dy := p.X-a.x, p.Y-a.y
	if !a.placed || math.Abs(dx) > remoteSnapTiles || math.Abs(dy) > remoteSnapTiles {
		a.x, a.y = p.X, p.Y
		a.placed = true
	} else {
		a.x += dx / remoteLerp
		a.y += dy / remoteLerp
	}
	a.frame = 0
	if math.Abs(dx) > 0.05 || math.Abs(dy) > 0.05 {
		a.frame = 1
	}
	a.dead, a.crowned = p.Dead, p.Crowned
}

// Actors caches one actor per player id for the lifetime of a session.
type Actors struct {
	atlas  *gfx.Atlas
	actors map[int]actor
}

func NewActors(atlas *gfx.Atlas) *Actors {
	return &Actors{atlas: atlas, actors: make(map[int]actor)}
}

// Sync creates actors for unseen ids, then ticks and draws every player in
// snapshot order. Nothing is drawn while the local id is unknown (negative).
func (a *Actors) Sync(c gfx.Canvas, players []snapshot.Player, localID int) {
	if localID < 0 {
		return
	}
	for _, p := range players {
		act, ok := a.actors[p.ID]
		if !ok {
			b := body{sprite: a.atlas.LookupOr(p.SpriteName, gfx.DefaultCharacter), crown: a.atlas.Lookup(gfx.SprCrown)}
			if p.ID == localID {
				act = &localActor{body: b}
			} else {
				act = &remoteActor{body: b}
			}
			a.actors[p.ID] = act
		}
		act.tick(p)
		act.draw(c)
	}
}

// Len is the number of cached actors.
func (a *Actors) Len() int { return len(a.actors) }

// IsLocal reports whether the actor cached for id is the local one.
func (a *Actors) IsLocal(id int) bool {
	_, ok := a.actors[id].(*localActor)
	return ok
}

// Reset forgets every actor.
func (a *Actors) Reset() { clear(a.actors) }
