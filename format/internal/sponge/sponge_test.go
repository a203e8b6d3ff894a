package sponge

import (
	"bytes"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/oriumgames/nbt"
	"github.com/oriumgames/pile/sponge/format/internal/base"
)

// encodeDecode passes a built tree through the NBT codec, returning it in the
// shape the decoder produces.
func encodeDecode(t *testing.T, tree any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if err := nbt.NewEncoderWithEncoding(&buf, nbt.BigEndian).Encode(tree); err != nil {
		t.Fatalf("encode nbt: %v", err)
	}
	var root map[string]any
	if err := nbt.NewDecoderWithEncoding(&buf, nbt.BigEndian).Decode(&root); err != nil {
		t.Fatalf("decode nbt: %v", err)
	}
	return root
}

func sampleSchematic(t *testing.T) *base.Schematic {
	t.Helper()
	s, err := base.New(3, 2, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetOffset(-5, 64, 12)
	s.DataVersion = 3465
	s.Name = "House"
	s.Author = "builder"
	s.Date = time.UnixMilli(1700000000123)
	s.RequiredMods = []string{"worldedit"}
	s.Metadata["Description"] = "a small house"

	stone := base.NewBlockValue("minecraft:stone")
	stairs := base.NewBlockValue("minecraft:oak_stairs", base.Property{Key: "facing", Value: "east"}, base.Property{Key: "half", Value: "top"})
	chest := base.NewBlockValue("minecraft:chest", base.Property{Key: "facing", Value: "north"})
	for x := range 3 {
		for z := range 4 {
			if err := s.SetBlock(x, 0, z, stone); err != nil {
				t.Fatalf("SetBlock: %v", err)
			}
		}
	}
	mustSet(t, s.SetBlock(2, 1, 3, stairs))
	mustSet(t, s.SetBlock(0, 1, 0, chest))
	mustSet(t, s.AddBlockEntity(base.BlockEntity{ID: "minecraft:chest", X: 0, Y: 1, Z: 0, Properties: map[string]string{"CustomName": "loot"}}))
	return s
}

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func assertSameBlocks(t *testing.T, want, got *base.Schematic) {
	t.Helper()
	ww, wh, wl := want.Dimensions()
	gw, gh, gl := got.Dimensions()
	if ww != gw || wh != gh || wl != gl {
		t.Fatalf("dimensions: got %dx%dx%d, want %dx%dx%d", gw, gh, gl, ww, wh, wl)
	}
	if !want.BlockGrid().Equal(got.BlockGrid()) {
		t.Fatalf("block grid: got %v, want %v", got.BlockGrid().Flat(), want.BlockGrid().Flat())
	}
	if !maps.Equal(want.BlockPalette().Export(), got.BlockPalette().Export()) {
		t.Fatalf("block palette: got %v, want %v", got.BlockPalette().Export(), want.BlockPalette().Export())
	}
	for y := range wh {
		for z := range wl {
			for x := range ww {
				a, _ := want.Block(x, y, z)
				b, err := got.Block(x, y, z)
				if err != nil || !a.Equal(b) {
					t.Fatalf("block (%d,%d,%d): got %v (%v), want %v", x, y, z, b, err, a)
				}
			}
		}
	}
	wx, wy, wz := want.Offset()
	gx, gy, gz := got.Offset()
	if wx != gx || wy != gy || wz != gz {
		t.Fatalf("offset: got %d %d %d, want %d %d %d", gx, gy, gz, wx, wy, wz)
	}
	wbe, gbe := want.BlockEntities(), got.BlockEntities()
	if len(wbe) != len(gbe) {
		t.Fatalf("block entities: got %v, want %v", gbe, wbe)
	}
	for i := range wbe {
		if !wbe[i].Equal(gbe[i]) {
			t.Fatalf("block entity %d: got %v, want %v", i, gbe[i], wbe[i])
		}
	}
}

func TestV1AlwaysFails(t *testing.T) {
	s, _ := base.New(1, 1, 1)
	if _, err := BuildV1(s); !errors.Is(err, base.ErrUnsupportedVersion) {
		t.Fatalf("BuildV1: expected ErrUnsupportedVersion, got %v", err)
	}
	if _, err := ParseV1(map[string]any{"Version": int32(1)}); !errors.Is(err, base.ErrUnsupportedVersion) {
		t.Fatalf("ParseV1: expected ErrUnsupportedVersion, got %v", err)
	}
}
