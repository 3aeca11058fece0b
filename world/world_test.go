package world

import (
	"image/color"
	"testing"

	"crossyview/gfx"
	"crossyview/snapshot"
)

func atlas() *gfx.Atlas { return gfx.Describe(gfx.Catalog, gfx.DefaultDialogue) }

func TestDrawRowsCheckers(t *testing.T) {
	v := NewView(atlas())
	var rec gfx.Recorder
	v.DrawRows(&rec, []snapshot.Row{
		{Y: 2, RowID: 5, Kind: snapshot.RowRoad},
		{Y: 3, RowID: 6, Kind: snapshot.RowRiver},
	})
	if rec.Count("rect") != 2*gfx.ScreenW/Tile {
		t.Fatalf("tiles = %d", rec.Count("rect"))
	}
	first := rec.Ops[0]
	if first.Y != 16 || first.W != Tile || first.Color != color.Color(gfx.Hex("#646469")) {
		t.Fatalf("first road tile %+v", first)
	}
	river := rec.Ops[gfx.ScreenW/Tile]
	if river.Y != 24 || river.Color != color.Color(gfx.Hex("#6c6ce2")) {
		t.Fatalf("first river tile %+v", river)
	}
}

func TestDrawCarsPicksFlippedSprite(t *testing.T) {
	v := NewView(atlas())
	var rec gfx.Recorder
	v.DrawCars(&rec, []snapshot.Car{{X: 2, Y: 3}, {X: 4, Y: 5, Flipped: true}})
	plain, flipped := rec.Sprites(gfx.SprCar), rec.Sprites(gfx.SprCarFlip)
	if len(plain) != 1 || len(flipped) != 1 {
		t.Fatalf("ops %+v", rec.Ops)
	}
	if plain[0].X != 16 || plain[0].Y != 24 || flipped[0].X != 32 {
		t.Fatalf("car positions %+v %+v", plain[0], flipped[0])
	}
}

func TestDrawLobbyBar(t *testing.T) {
	v := NewView(atlas())
	var rec gfx.Recorder
	v.DrawLobby(&rec, 60)
	if rec.Ops[0].W != readyBarW/2 || rec.Ops[0].X != 56 || rec.Ops[0].Y != 112 {
		t.Fatalf("fill %+v", rec.Ops[0])
	}
	rec.Reset()
	v.DrawLobby(&rec, 500)
	if rec.Ops[0].W != readyBarW {
		t.Fatalf("fill not clamped: %+v", rec.Ops[0])
	}
}

func TestActorsLocalAndRemote(t *testing.T) {
	a := NewActors(atlas())
	var rec gfx.Recorder
	ps := []snapshot.Player{
		{ID: 0, SpriteName: "frog", X: 1, Y: 1},
		{ID: 1, SpriteName: "bird", X: 5, Y: 5},
	}
	a.Sync(&rec, ps, -1)
	if a.Len() != 0 || len(rec.Ops) != 0 {
		t.Fatalf("actors created before local id known")
	}

	a.Sync(&rec, ps, 1)
	if a.Len() != 2 || !a.IsLocal(1) || a.IsLocal(0) {
		t.Fatalf("len=%d local(1)=%v local(0)=%v", a.Len(), a.IsLocal(1), a.IsLocal(0))
	}
	if len(rec.Sprites("frog")) != 1 || len(rec.Sprites("bird")) != 1 {
		t.Fatalf("ops %+v", rec.Ops)
	}
	// local marker
	if rec.Count("rect") != 1 {
		t.Fatalf("marker count = %d", rec.Count("rect"))
	}

	ps[0].X, ps[1].X = 2, 6
	rec.Reset()
	a.Sync(&rec, ps, 1)
	remote, local := rec.Sprites("frog")[0], rec.Sprites("bird")[0]
	if local.X != 6*Tile+Tile/2 {
		t.Fatalf("local actor did not snap: %v", local.X)
	}
	if remote.X <= 1*Tile+Tile/2 || remote.X >= 2*Tile+Tile/2 {
		t.Fatalf("remote actor should ease, x=%v", remote.X)
	}

	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("reset left %d", a.Len())
	}
}

func TestDeadPlayerNotDrawn(t *testing.T) {
	a := NewActors(atlas())
	var rec gfx.Recorder
	a.Sync(&rec, []snapshot.Player{{ID: 0, SpriteName: "frog", Dead: true}}, 0)
	if len(rec.Ops) != 0 {
		t.Fatalf("dead player drawn: %+v", rec.Ops)
	}
}

func TestUnknownCharacterDrawsDefaultBody(t *testing.T) {
	a := NewActors(atlas())
	var rec gfx.Recorder
	a.Sync(&rec, []snapshot.Player{{ID: 0, SpriteName: "duck", X: 3, Y: 3}}, 0)
	if len(rec.Sprites(gfx.DefaultCharacter)) != 1 {
		t.Fatalf("unknown character not drawn as %s: %+v", gfx.DefaultCharacter, rec.Ops)
	}
	if len(rec.Sprites(gfx.DefaultDialogue)) != 0 {
		t.Fatalf("dialogue portrait drawn as a body")
	}
}
