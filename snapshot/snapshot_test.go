package snapshot

import "testing"

func TestDecodeRows(t *testing.T) {
	data := []byte(`[[0,{"row_id":7,"row_type":{"River":{"seed":1}}}],[1,{"row_id":8,"row_type":{"Road":{"seed":2,"inverted":true}}}],[2,{"row_id":9,"row_type":"Stands"}]]`)
	rows, err := DecodeRows(data)
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{Y: 0, RowID: 7, Kind: RowRiver}, {Y: 1, RowID: 8, Kind: RowRoad}, {Y: 2, RowID: 9, Kind: RowOther}}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v want %+v", i, rows[i], want[i])
		}
	}
}

func TestRowsEncodeDecode(t *testing.T) {
	in := []Row{{Y: 3, RowID: 1, Kind: RowRoad}, {Y: 4, RowID: 2, Kind: RowOther}}
	data, err := EncodeRows(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeRows(data)
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("got %+v", out)
	}
}

func TestDecodeCars(t *testing.T) {
	cars, err := DecodeCars([]byte(`[[1.5,3,true],[10,4,false]]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cars) != 2 || cars[0] != (Car{X: 1.5, Y: 3, Flipped: true}) || cars[1].Flipped {
		t.Fatalf("got %+v", cars)
	}
	if _, err := DecodeCars([]byte(`[[1,"a",true]]`)); err == nil {
		t.Fatalf("expected error for bad y")
	}
}

func TestDecodePlayersSkipsNull(t *testing.T) {
	players, err := DecodePlayers([]byte(`[{"id":1,"sprite_name":"frog","source":{"player_id":1},"x":2,"y":18},null,{"id":2,"sprite_name":"bird","source":{"player_id":2}}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players", len(players))
	}
	p, ok := Find(players, 2)
	if !ok || p.SpriteName != "bird" || p.Source.PlayerID != 2 {
		t.Fatalf("Find(2) = %+v, %v", p, ok)
	}
	if _, ok := Find(players, 9); ok {
		t.Fatalf("Find(9) should miss")
	}
}

func TestDecodeEmpty(t *testing.T) {
	if rows, err := DecodeRows(nil); rows != nil || err != nil {
		t.Fatalf("DecodeRows(nil) = %v, %v", rows, err)
	}
	if players, err := DecodePlayers([]byte("null")); players != nil || err != nil {
		t.Fatalf("DecodePlayers(null) = %v, %v", players, err)
	}
}
