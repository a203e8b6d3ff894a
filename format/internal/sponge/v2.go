package sponge

import (
	"fmt"

	"github.com/oriumgames/pile/sponge/format/internal/base"
)

// v2NBT is the NBT structure for Sponge Schematic Version 2
type v2NBT struct {
	Version         int32            `nbt:"Version"`
	DataVersion     int32            `nbt:"DataVersion"`
	Metadata        map[string]any   `nbt:"Metadata"`
	Width           int16            `nbt:"Width"`
	Height          int16            `nbt:"Height"`
	Length          int16            `nbt:"Length"`
	Offset          [3]int32         `nbt:"Offset"`
	PaletteMax      int32            `nbt:"PaletteMax"`
	Palette         map[string]int32 `nbt:"Palette"`
	BlockData       []byte           `nbt:"BlockData,array"`
	BlockEntities   []map[string]any `nbt:"BlockEntities"`
	Entities        []map[string]any `nbt:"Entities"`
	BiomePaletteMax int32            `nbt:"BiomePaletteMax"`
	BiomePalette    map[string]int32 `nbt:"BiomePalette"`
	BiomeData       []byte           `nbt:"BiomeData,array"`
}

// BuildV2 builds the NBT tree of a Sponge Schematic v2.
//
// The legacy writer is reproduced as-is: block and biome data are written one
// raw byte per cell rather than as VarInts, the block palette is also written
// as the biome palette, and PaletteMax holds the palette size. Files written
// this way read back correctly only while every palette index is below 128,
// and their biomes read back as block states.
func BuildV2(s *base.Schematic) (any, error) {
	width, height, length := s.Dimensions()
	offsetX, offsetY, offsetZ := s.Offset()
	palette := s.BlockPalette().Export()

	metadata := make(map[string]any, len(s.Metadata))
	for k, v := range s.Metadata {
		metadata[k] = v
	}

	data := v2NBT{
		Version:         2,
		DataVersion:     int32(s.DataVersion),
		Metadata:        metadata,
		Width:           int16(uint16(width)),
		Height:          int16(uint16(height)),
		Length:          int16(uint16(length)),
		Offset:          pos(offsetX, offsetY, offsetZ),
		PaletteMax:      int32(len(palette)),
		Palette:         palette,
		BlockData:       rawBytes(s.BlockGrid().Flat()),
		BlockEntities:   make([]map[string]any, 0, len(s.BlockEntities())),
		Entities:        entities(s),
		BiomePaletteMax: int32(len(palette)),
		BiomePalette:    palette,
		BiomeData:       rawBytes(s.BiomeGrid().Flat()),
	}

	for _, be := range s.BlockEntities() {
		beData := make(map[string]any, len(be.Properties)+2)
		for k, v := range be.Properties {
			beData[k] = v
		}
		beData["Pos"] = pos(be.X, be.Y, be.Z)
		beData["Id"] = be.ID
		data.BlockEntities = append(data.BlockEntities, beData)
	}
	return data, nil
}

func rawBytes(cells []int) []byte {
	b := make([]byte, len(cells))
	for i, v := range cells {
		b[i] = byte(v)
	}
	return b
}

// ParseV2 reads a schematic from the NBT tree of a Sponge Schematic v2.
// BlockData and BiomeData are decoded as VarInt streams.
func ParseV2(data map[string]any) (*base.Schematic, error) {
	blockData, hasBlockData := base.Bytes(data, "BlockData")
	s, err := readHeader(data, blockData)
	if err != nil {
		return nil, err
	}

	if meta, ok := base.Compound(data, "Metadata"); ok {
		readMetadata(s, meta)
	}

	palette, hasPalette := base.IndexMap(data, "Palette")
	if _, present := data["Palette"]; present && !hasPalette {
		return nil, fmt.Errorf("%w: Palette must map block states to integers", base.ErrMalformedFile)
	}
	if !hasPalette {
		palette = s.BlockPalette().Export()
	}
	if hasBlockData {
		if err := readBlocks(s, palette, blockData); err != nil {
			return nil, err
		}
	} else if hasPalette {
		if err := s.LoadBlocks(palette, s.BlockGrid().Flat()); err != nil {
			return nil, fmt.Errorf("load block palette: %w", err)
		}
	}

	if biomeData, ok := base.Bytes(data, "BiomeData"); ok {
		biomePalette, ok := base.IndexMap(data, "BiomePalette")
		if !ok {
			return nil, fmt.Errorf("%w: BiomeData without BiomePalette", base.ErrMalformedFile)
		}
		if err := readBiomes(s, biomePalette, biomeData); err != nil {
			return nil, err
		}
	}

	blockEntities, _ := base.Compounds(data, "BlockEntities")
	for i, beData := range blockEntities {
		x, y, z, err := blockEntityPos(beData)
		if err != nil {
			return nil, fmt.Errorf("block entity %d: %w", i, err)
		}
		id, _ := base.String(beData, "Id")
		be := base.BlockEntity{ID: id, X: x, Y: y, Z: z, Properties: stringEntries(beData, "Pos", "Id")}
		if err := s.AddBlockEntity(be); err != nil {
			return nil, fmt.Errorf("%w: block entity %d: %w", base.ErrMalformedFile, i, err)
		}
	}

	entities, _ := base.Compounds(data, "Entities")
	for _, e := range entities {
		s.AddEntity(e)
	}
	return s, nil
}
