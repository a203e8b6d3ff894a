package sponge

import (
	"fmt"

	"github.com/oriumgames/pile/sponge/format/internal/base"
)

// RootV3 is the compound every v3 schematic is nested under.
const RootV3 = "Schematic"

// v3Blocks is the Blocks container of a Sponge Schematic v3
type v3Blocks struct {
	Palette       map[string]int32 `nbt:"Palette"`
	Data          []byte           `nbt:"Data,array"`
	BlockEntities []v3BlockEntity  `nbt:"BlockEntities"`
}

type v3BlockEntity struct {
	Pos  [3]int32       `nbt:"Pos"`
	ID   string         `nbt:"Id"`
	Data map[string]any `nbt:"Data"`
}

// v3Biomes is the optional Biomes container of a Sponge Schematic v3
type v3Biomes struct {
	Palette map[string]int32 `nbt:"Palette"`
	Data    []byte           `nbt:"Data,array"`
}

// BuildV3 builds the NBT tree of a Sponge Schematic v3. Biomes are written
// only when the biome palette is non-empty, entities only when there are any.
func BuildV3(s *base.Schematic) (any, error) {
	width, height, length := s.Dimensions()
	offsetX, offsetY, offsetZ := s.Offset()

	blocks := v3Blocks{
		Palette:       s.BlockPalette().Export(),
		Data:          base.EncodeVarIntArray(s.BlockGrid().Flat()),
		BlockEntities: make([]v3BlockEntity, 0, len(s.BlockEntities())),
	}
	for _, be := range s.BlockEntities() {
		beData := make(map[string]any, len(be.Properties))
		for k, v := range be.Properties {
			beData[k] = v
		}
		blocks.BlockEntities = append(blocks.BlockEntities, v3BlockEntity{
			Pos:  pos(be.X, be.Y, be.Z),
			ID:   be.ID,
			Data: beData,
		})
	}

	data := map[string]any{
		"Version":     int32(3),
		"DataVersion": int32(s.DataVersion),
		"Metadata":    writeMetadata(s),
		"Width":       int16(uint16(width)),
		"Height":      int16(uint16(height)),
		"Length":      int16(uint16(length)),
		"Offset":      pos(offsetX, offsetY, offsetZ),
		"Blocks":      blocks,
	}
	if s.BiomePalette().Len() > 0 {
		data["Biomes"] = v3Biomes{
			Palette: s.BiomePalette().Export(),
			Data:    base.EncodeVarIntArray(s.BiomeGrid().Flat()),
		}
	}
	if ents := entities(s); len(ents) > 0 {
		data["Entities"] = ents
	}

	return map[string]any{RootV3: data}, nil
}

// ParseV3 reads a schematic from the NBT tree of a Sponge Schematic v3. The
// fields are expected under the Schematic root compound; a tree that carries
// them at the top level is accepted too.
func ParseV3(root map[string]any) (*base.Schematic, error) {
	data, ok := base.Compound(root, RootV3)
	if !ok {
		if _, top := root["Version"]; !top {
			return nil, fmt.Errorf("%w: missing %s root", base.ErrMalformedFile, RootV3)
		}
		data = root
	}

	var cellData []byte
	if blocks, ok := base.Compound(data, "Blocks"); ok {
		cellData, _ = base.Bytes(blocks, "Data")
	}
	s, err := readHeader(data, cellData)
	if err != nil {
		return nil, err
	}

	if meta, ok := base.Compound(data, "Metadata"); ok {
		readMetadata(s, meta)
	}

	if blocks, ok := base.Compound(data, "Blocks"); ok {
		if err := parseBlocksV3(s, blocks); err != nil {
			return nil, err
		}
	}

	if biomes, ok := base.Compound(data, "Biomes"); ok {
		palette, ok := base.IndexMap(biomes, "Palette")
		if !ok {
			return nil, fmt.Errorf("%w: Biomes.Palette missing", base.ErrMalformedFile)
		}
		biomeData, ok := base.Bytes(biomes, "Data")
		if !ok {
			return nil, fmt.Errorf("%w: Biomes.Data missing", base.ErrMalformedFile)
		}
		if err := readBiomes(s, palette, biomeData); err != nil {
			return nil, err
		}
	}

	entities, _ := base.Compounds(data, "Entities")
	for _, e := range entities {
		s.AddEntity(e)
	}
	return s, nil
}

func parseBlocksV3(s *base.Schematic, blocks map[string]any) error {
	palette, ok := base.IndexMap(blocks, "Palette")
	if !ok {
		return fmt.Errorf("%w: Blocks.Palette missing", base.ErrMalformedFile)
	}
	blockData, ok := base.Bytes(blocks, "Data")
	if !ok {
		return fmt.Errorf("%w: Blocks.Data missing", base.ErrMalformedFile)
	}
	if err := readBlocks(s, palette, blockData); err != nil {
		return err
	}

	blockEntities, _ := base.Compounds(blocks, "BlockEntities")
	for i, beData := range blockEntities {
		x, y, z, err := blockEntityPos(beData)
		if err != nil {
			return fmt.Errorf("block entity %d: %w", i, err)
		}
		id, _ := base.String(beData, "Id")
		be := base.BlockEntity{ID: id, X: x, Y: y, Z: z}
		if props, ok := base.StringMap(beData, "Data"); ok {
			be.Properties = props
		}
		if err := s.AddBlockEntity(be); err != nil {
			return fmt.Errorf("%w: block entity %d: %w", base.ErrMalformedFile, i, err)
		}
	}
	return nil
}
