package sponge

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/oriumgames/pile/sponge/format/internal/base"
)

func TestBuildV2Layout(t *testing.T) {
	s := sampleSchematic(t)
	tree, err := BuildV2(s)
	if err != nil {
		t.Fatalf("BuildV2: %v", err)
	}
	data := tree.(v2NBT)

	if data.Version != 2 || data.DataVersion != 3465 {
		t.Fatalf("header: %+v", data)
	}
	if data.Width != 3 || data.Height != 2 || data.Length != 4 {
		t.Fatalf("dimensions: %d %d %d", data.Width, data.Height, data.Length)
	}
	if data.Offset != [3]int32{-5, 64, 12} {
		t.Fatalf("offset: %v", data.Offset)
	}
	palette := s.BlockPalette().Export()
	if data.PaletteMax != int32(len(palette)) || !maps.Equal(data.Palette, palette) {
		t.Fatalf("palette: max %d, %v", data.PaletteMax, data.Palette)
	}
	// The block palette doubles as the biome palette.
	if data.BiomePaletteMax != data.PaletteMax || !maps.Equal(data.BiomePalette, palette) {
		t.Fatalf("biome palette: max %d, %v", data.BiomePaletteMax, data.BiomePalette)
	}
	// Block data is one raw byte per cell.
	cells := s.BlockGrid().Flat()
	if len(data.BlockData) != len(cells) {
		t.Fatalf("block data holds %d bytes for %d cells", len(data.BlockData), len(cells))
	}
	for i, v := range cells {
		if int(data.BlockData[i]) != v {
			t.Fatalf("block data byte %d = %d, want %d", i, data.BlockData[i], v)
		}
	}
	if data.Metadata["Description"] != "a small house" {
		t.Fatalf("metadata: %v", data.Metadata)
	}
	if len(data.BlockEntities) != 1 || data.BlockEntities[0]["Id"] != "minecraft:chest" || data.BlockEntities[0]["CustomName"] != "loot" {
		t.Fatalf("block entities: %v", data.BlockEntities)
	}
}

func TestV2RoundTripSmallPalette(t *testing.T) {
	s := sampleSchematic(t)
	s.AddEntity(map[string]any{"Id": "minecraft:cow", "Pos": []float64{0.5, 1, 0.5}})

	tree, err := BuildV2(s)
	if err != nil {
		t.Fatalf("BuildV2: %v", err)
	}
	got, err := ParseV2(encodeDecode(t, tree))
	if err != nil {
		t.Fatalf("ParseV2: %v", err)
	}

	assertSameBlocks(t, s, got)
	if got.DataVersion != 3465 || got.Metadata["Description"] != "a small house" {
		t.Fatalf("metadata: %d %v", got.DataVersion, got.Metadata)
	}
	if len(got.Entities()) != 1 || base.EntityID(got.Entities()[0]) != "minecraft:cow" {
		t.Fatalf("entities: %v", got.Entities())
	}
	// Biomes come back from the block palette.
	if b, err := got.Biome(0, 0, 0); err != nil || b.ID() != base.Air {
		t.Fatalf("Biome(0,0,0) = %v, %v", b, err)
	}
}

func TestV2RawBlockDataDoesNotReadBackPastIndex127(t *testing.T) {
	s, err := base.New(1, 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := range 200 {
		mustSet(t, s.SetBlock(0, 0, 0, base.NewBlockValue(fmt.Sprintf("minecraft:block_%d", i))))
	}
	tree, err := BuildV2(s)
	if err != nil {
		t.Fatalf("BuildV2: %v", err)
	}
	if _, err := ParseV2(encodeDecode(t, tree)); !errors.Is(err, base.ErrTruncatedVarint) {
		t.Fatalf("expected ErrTruncatedVarint, got %v", err)
	}
}

func TestParseV2VarIntBlockData(t *testing.T) {
	cells := make([]int, 0, 130)
	palette := map[string]any{}
	for i := range 130 {
		palette[fmt.Sprintf("minecraft:block_%d", i)] = int32(i)
		cells = append(cells, 129-i)
	}
	data := map[string]any{
		"Version":     int32(2),
		"DataVersion": int32(2586),
		"Width":       int16(130),
		"Height":      int16(1),
		"Length":      int16(1),
		"Offset":      [3]int32{1, 2, 3},
		"PaletteMax":  int32(130),
		"Palette":     palette,
		"BlockData":   base.EncodeVarIntArray(cells),
		"Metadata":    map[string]any{"Name": "legacy", "WEOffsetX": int32(4), "Note": "kept"},
	}
	s, err := ParseV2(data)
	if err != nil {
		t.Fatalf("ParseV2: %v", err)
	}
	if !slices.Equal(s.BlockGrid().Flat(), cells) {
		t.Fatal("block grid does not match the decoded varints")
	}
	if b, _ := s.Block(0, 0, 0); b.ID() != "minecraft:block_129" {
		t.Fatalf("Block(0,0,0) = %s", b)
	}
	if s.Name != "legacy" || s.Metadata["Note"] != "kept" {
		t.Fatalf("metadata: %q %v", s.Name, s.Metadata)
	}
	if _, ok := s.Metadata["WEOffsetX"]; ok {
		t.Fatal("non-string metadata must not land in the free-form map")
	}
}

func TestParseV2ColumnBiomes(t *testing.T) {
	data := map[string]any{
		"Version":      int32(2),
		"DataVersion":  int32(2586),
		"Width":        int16(2),
		"Height":       int16(3),
		"Length":       int16(2),
		"BiomePalette": map[string]any{"minecraft:plains": int32(0), "minecraft:desert": int32(1)},
		// Indexed x + z*width.
		"BiomeData": [4]byte{1, 0, 0, 1},
	}
	s, err := ParseV2(data)
	if err != nil {
		t.Fatalf("ParseV2: %v", err)
	}
	want := map[[2]int]string{
		{0, 0}: "minecraft:desert",
		{1, 0}: "minecraft:plains",
		{0, 1}: "minecraft:plains",
		{1, 1}: "minecraft:desert",
	}
	for col, id := range want {
		for y := range 3 {
			if b, err := s.Biome(col[0], y, col[1]); err != nil || b.ID() != id {
				t.Fatalf("Biome(%d,%d,%d) = %v, %v, want %s", col[0], y, col[1], b, err, id)
			}
		}
	}
}

func TestParseV2Malformed(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"missing height", map[string]any{"Width": int16(1), "Length": int16(1), "DataVersion": int32(1)}},
		{"palette of strings", map[string]any{
			"Width": int16(1), "Height": int16(1), "Length": int16(1), "DataVersion": int32(1),
			"Palette": map[string]any{"minecraft:air": "zero"},
		}},
		{"biome data without palette", map[string]any{
			"Width": int16(1), "Height": int16(1), "Length": int16(1), "DataVersion": int32(1),
			"BiomeData": [1]byte{0},
		}},
		{"dimensions too large to allocate", map[string]any{
			"Width": int16(-1), "Height": int16(-1), "Length": int16(-1), "DataVersion": int32(1),
		}},
		{"block data shorter than the grid", map[string]any{
			"Width": int16(1024), "Height": int16(1024), "Length": int16(1024), "DataVersion": int32(1),
			"Palette":   map[string]any{"minecraft:air": int32(0)},
			"BlockData": [2]byte{0, 0},
		}},
		{"block data too long", map[string]any{
			"Width": int16(1), "Height": int16(1), "Length": int16(1), "DataVersion": int32(1),
			"Palette":   map[string]any{"minecraft:air": int32(0)},
			"BlockData": [2]byte{0, 0},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseV2(tc.data); !errors.Is(err, base.ErrMalformedFile) {
				t.Fatalf("expected ErrMalformedFile, got %v", err)
			}
		})
	}
}
