package base

import (
	"errors"
	"testing"
)

func TestBlockValueEqualityIgnoresPropertyOrder(t *testing.T) {
	a := NewBlockValue("minecraft:oak_stairs", Property{"facing", "north"}, Property{"half", "bottom"})
	b := NewBlockValue("minecraft:oak_stairs", Property{"half", "bottom"}, Property{"facing", "north"})

	if !a.Equal(b) || !b.Equal(a) {
		t.Fatalf("expected %s and %s to be equal", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("hash mismatch: %d != %d", a.Hash(), b.Hash())
	}
	if a.Key() != b.Key() {
		t.Fatalf("key mismatch: %q != %q", a.Key(), b.Key())
	}
	if a.String() != "minecraft:oak_stairs[facing=north,half=bottom]" {
		t.Fatalf("unexpected rendering %q", a.String())
	}
	if b.String() != "minecraft:oak_stairs[half=bottom,facing=north]" {
		t.Fatalf("rendering should keep stored order, got %q", b.String())
	}
}

func TestBlockValueInequality(t *testing.T) {
	tests := []struct {
		name string
		a, b BlockValue
	}{
		{"different id", NewBlockValue("minecraft:stone"), NewBlockValue("minecraft:dirt")},
		{"extra property", NewBlockValue("minecraft:stone"), NewBlockValue("minecraft:stone", Property{"a", "b"})},
		{"different value", NewBlockValue("minecraft:stone", Property{"a", "b"}), NewBlockValue("minecraft:stone", Property{"a", "c"})},
		{"different key", NewBlockValue("minecraft:stone", Property{"a", "b"}), NewBlockValue("minecraft:stone", Property{"c", "b"})},
		{"properties spelled into the id", NewBlockValue("a[k=v]"), NewBlockValue("a", Property{"k", "v"})},
		{"separator inside a value", NewBlockValue("a", Property{"k", "v,x=y"}), NewBlockValue("a", Property{"k", "v"}, Property{"x", "y"})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a.Equal(tc.b) || tc.b.Equal(tc.a) {
				t.Fatalf("%s should not equal %s", tc.a, tc.b)
			}
			if tc.a.Key() == tc.b.Key() {
				t.Fatalf("%s and %s share key %q", tc.a, tc.b, tc.a.Key())
			}
		})
	}
}

func TestBlockValueValidate(t *testing.T) {
	valid := []BlockValue{
		NewBlockValue(Air),
		NewBlockValue("minecraft:sign", Property{"rotation", "4"}, Property{"waterlogged", ""}),
	}
	for _, b := range valid {
		if err := b.Validate(); err != nil {
			t.Fatalf("Validate(%s): %v", b, err)
		}
	}
	invalid := []BlockValue{
		NewBlockValue(""),
		NewBlockValue("a[k=v]"),
		NewBlockValue("a", Property{"", "v"}),
		NewBlockValue("a", Property{"k=", "v"}),
		NewBlockValue("a", Property{"k", "v,x=y"}),
		NewBlockValue("a", Property{"k", "]"}),
	}
	for _, b := range invalid {
		if err := b.Validate(); !errors.Is(err, ErrMalformedPalette) {
			t.Fatalf("Validate(%s): expected ErrMalformedPalette, got %v", b, err)
		}
	}
}

func TestNewBlockValueRepeatedKey(t *testing.T) {
	b := NewBlockValue("minecraft:lever", Property{"face", "wall"}, Property{"powered", "false"}, Property{"face", "floor"})
	if got := b.String(); got != "minecraft:lever[face=floor,powered=false]" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestParseBlockValueRoundTrip(t *testing.T) {
	values := []BlockValue{
		NewBlockValue(Air),
		NewBlockValue("minecraft:oak_log", Property{"axis", "y"}),
		NewBlockValue("minecraft:chest", Property{"waterlogged", "false"}, Property{"facing", "west"}, Property{"type", "single"}),
		NewBlockValue("mod:thing", Property{"empty", ""}),
	}
	for _, v := range values {
		got, err := ParseBlockValue(v.String())
		if err != nil {
			t.Fatalf("parse %q: %v", v, err)
		}
		if !got.Equal(v) {
			t.Fatalf("round trip of %q produced %q", v, got)
		}
		if got.String() != v.String() {
			t.Fatalf("round trip changed property order: %q -> %q", v, got)
		}
	}
}

func TestParseBlockValueMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"[a=b]",
		"minecraft:stone[",
		"minecraft:stone[]",
		"minecraft:stone[a=b",
		"minecraft:stone]",
		"minecraft:stone[a]",
		"minecraft:stone[=b]",
		"minecraft:stone[a=b][c=d]",
		"minecraft:stone[a=b,a=c]",
		"minecraft:stone[a=b=c]",
	} {
		if _, err := ParseBlockValue(s); !errors.Is(err, ErrMalformedPalette) {
			t.Fatalf("ParseBlockValue(%q): expected ErrMalformedPalette, got %v", s, err)
		}
	}
}

func TestTypedProperties(t *testing.T) {
	b := NewBlockValue("minecraft:repeater", Property{"delay", "3"}, Property{"locked", "true"}, Property{"facing", "east"})
	props := b.TypedProperties()
	if props["delay"] != int32(3) {
		t.Fatalf("delay: got %#v", props["delay"])
	}
	if props["locked"] != true {
		t.Fatalf("locked: got %#v", props["locked"])
	}
	if props["facing"] != "east" {
		t.Fatalf("facing: got %#v", props["facing"])
	}
}

func TestEntityPosition(t *testing.T) {
	e := map[string]any{"Id": "minecraft:pig", "Pos": []any{1.5, 2.0, -3.25}}
	pos, ok := EntityPosition(e)
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.X() != 1.5 || pos.Y() != 2 || pos.Z() != -3.25 {
		t.Fatalf("unexpected position %v", pos)
	}
	if EntityID(e) != "minecraft:pig" {
		t.Fatalf("unexpected id %q", EntityID(e))
	}
	if _, ok := EntityPosition(map[string]any{"Pos": []any{int32(1)}}); ok {
		t.Fatal("expected no position for a malformed Pos")
	}
}
