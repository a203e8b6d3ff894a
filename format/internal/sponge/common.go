package sponge

import (
	"fmt"
	"maps"
	"time"

	"github.com/oriumgames/pile/sponge/format/internal/base"
)

// Metadata keys with a typed meaning. Everything else is a free-form string.
const (
	metaName         = "Name"
	metaAuthor       = "Author"
	metaDate         = "Date"
	metaRequiredMods = "RequiredMods"
)

// readHeader creates a schematic from the dimension, offset and data version
// fields shared by every version. cellData is the encoded block data, if
// present: it needs at least one byte per cell, which is checked before the
// grids are allocated.
func readHeader(data map[string]any, cellData []byte) (*base.Schematic, error) {
	var dims [3]int
	for i, key := range [...]string{"Width", "Height", "Length"} {
		v, ok := base.Int(data, key)
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", base.ErrMalformedFile, key)
		}
		// Dimensions are stored as signed shorts but mean 0..65535.
		dims[i] = int(uint16(v))
	}
	dataVersion, ok := base.Int(data, "DataVersion")
	if !ok {
		return nil, fmt.Errorf("%w: missing DataVersion", base.ErrMalformedFile)
	}

	volume := int64(dims[0]) * int64(dims[1]) * int64(dims[2])
	if cellData != nil && int64(len(cellData)) < volume {
		return nil, fmt.Errorf("%w: %d bytes of block data cannot hold %dx%dx%d cells", base.ErrMalformedFile, len(cellData), dims[0], dims[1], dims[2])
	}
	s, err := base.New(dims[0], dims[1], dims[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", base.ErrMalformedFile, err)
	}
	s.DataVersion = dataVersion

	if _, present := data["Offset"]; present {
		offset, ok := base.Ints(data, "Offset")
		if !ok || len(offset) != 3 {
			return nil, fmt.Errorf("%w: Offset must hold 3 integers", base.ErrMalformedFile)
		}
		s.SetOffset(offset[0], offset[1], offset[2])
	}
	return s, nil
}

// readMetadata copies a Metadata compound into s.
func readMetadata(s *base.Schematic, meta map[string]any) {
	if name, ok := base.String(meta, metaName); ok {
		s.Name = name
	}
	if author, ok := base.String(meta, metaAuthor); ok {
		s.Author = author
	}
	if date, ok := base.Int(meta, metaDate); ok {
		s.Date = time.UnixMilli(int64(date))
	}
	if mods, ok := base.Strings(meta, metaRequiredMods); ok {
		s.RequiredMods = mods
	}
	for k, v := range meta {
		switch k {
		case metaName, metaAuthor, metaDate, metaRequiredMods:
			continue
		}
		if str, ok := v.(string); ok {
			s.Metadata[k] = str
		}
	}
}

// writeMetadata builds the v3 Metadata compound: free-form entries first, then
// the typed fields, which win on a clash.
func writeMetadata(s *base.Schematic) map[string]any {
	meta := make(map[string]any, len(s.Metadata)+4)
	for k, v := range s.Metadata {
		meta[k] = v
	}
	mods := make([]string, len(s.RequiredMods))
	copy(mods, s.RequiredMods)

	meta[metaName] = s.Name
	meta[metaAuthor] = s.Author
	meta[metaDate] = s.Date.UnixMilli()
	meta[metaRequiredMods] = mods
	return meta
}

// readBlocks decodes a varint block data array against a palette compound.
func readBlocks(s *base.Schematic, palette map[string]int32, data []byte) error {
	cells, err := base.DecodeVarIntArray(data, s.BlockGrid().Len())
	if err != nil {
		return fmt.Errorf("decode block data: %w", err)
	}
	if err := s.LoadBlocks(palette, cells); err != nil {
		return fmt.Errorf("load block palette: %w", err)
	}
	return nil
}

// readBiomes decodes a varint biome data array against a palette compound.
// A 2D array (one entry per column) is repeated over the full height.
func readBiomes(s *base.Schematic, palette map[string]int32, data []byte) error {
	cells, err := base.DecodeVarIntStream(data)
	if err != nil {
		return fmt.Errorf("decode biome data: %w", err)
	}
	width, height, length := s.Dimensions()
	if height > 1 && len(cells) == width*length {
		cells = columns(cells, width, height, length)
	}
	if err := s.LoadBiomes(palette, cells); err != nil {
		return fmt.Errorf("load biome palette: %w", err)
	}
	return nil
}

// columns expands a 2D biome array, indexed x + z*width, over every layer of
// the grid.
func columns(flat []int, width, height, length int) []int {
	g := base.NewGrid(width, height, length)
	for x := range width {
		for z := range length {
			v := flat[x+z*width]
			for y := range height {
				g.Set(x, y, z, v)
			}
		}
	}
	return g.Flat()
}

// blockEntityPos reads the Pos field of a block entity compound.
func blockEntityPos(data map[string]any) (int, int, int, error) {
	pos, ok := base.Ints(data, "Pos")
	if !ok || len(pos) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: block entity Pos must hold 3 integers", base.ErrMalformedFile)
	}
	return pos[0], pos[1], pos[2], nil
}

// stringEntries keeps the string entries of a compound, skipping the given keys.
func stringEntries(data map[string]any, skip ...string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	for _, k := range skip {
		delete(out, k)
	}
	return out
}

func pos(x, y, z int) [3]int32 {
	return [3]int32{int32(x), int32(y), int32(z)}
}

func entities(s *base.Schematic) []map[string]any {
	out := make([]map[string]any, 0, len(s.Entities()))
	for _, e := range s.Entities() {
		out = append(out, maps.Clone(e))
	}
	return out
}
