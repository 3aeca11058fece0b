package rules

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeCooldownKeepsAliveSet(t *testing.T) {
	in := RoundCooldown{RemainingUS: 15000, RoundID: 2, Alive: AliveSet{0: false, 2: true}}
	data, err := Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("got %#v want %#v", out, in)
	}
}

func TestEncodeEndWithoutWinner(t *testing.T) {
	data, err := Encode(End{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"EndAllLeft"` {
		t.Fatalf("got %s", data)
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil || data != nil {
		t.Fatalf("Encode(nil) = %q, %v", data, err)
	}
}
