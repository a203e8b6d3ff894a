package base

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

const (
	// MaxDimension is the largest width, height or length a schematic can have.
	MaxDimension = 65535
	// MaxVolume is the largest number of cells a schematic can hold.
	MaxVolume = 1 << 27
	// DefaultDataVersion is the data version given to new schematics (1.20.4).
	DefaultDataVersion = 3700
	// DefaultName is the name given to new schematics.
	DefaultName = "My Schematic"
	// DefaultAuthor is the author given to new schematics.
	DefaultAuthor = "pile"
)

// Schematic is a block grid with an optional biome grid, block entities,
// opaque entities and descriptive metadata. Dimensions are fixed at creation;
// palettes only grow.
//
// A Schematic is not safe for concurrent mutation.
type Schematic struct {
	width, height, length int
	offset                [3]int

	DataVersion  int
	Name         string
	Author       string
	Date         time.Time
	RequiredMods []string
	Metadata     map[string]string

	blockPalette  *Palette
	blocks        *Grid
	biomePalette  *Palette
	biomes        *Grid
	blockEntities []BlockEntity
	entities      []map[string]any
}

// New creates a schematic filled with air.
func New(width, height, length int) (*Schematic, error) {
	for _, d := range [...]int{width, height, length} {
		if d < 0 || d > MaxDimension {
			return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, length)
		}
	}
	if volume := int64(width) * int64(height) * int64(length); volume > MaxVolume {
		return nil, fmt.Errorf("%w: %dx%dx%d holds %d cells, more than %d", ErrInvalidDimensions, width, height, length, volume, MaxVolume)
	}
	return &Schematic{
		width:        width,
		height:       height,
		length:       length,
		DataVersion:  DefaultDataVersion,
		Name:         DefaultName,
		Author:       DefaultAuthor,
		Date:         time.Now(),
		Metadata:     make(map[string]string),
		blockPalette: NewPaletteWithAir(),
		blocks:       NewGrid(width, height, length),
		biomePalette: NewPalette(),
		biomes:       NewGrid(width, height, length),
	}, nil
}

func (s *Schematic) check(x, y, z int) error {
	if !s.blocks.Contains(x, y, z) {
		return fmt.Errorf("%w: (%d, %d, %d) outside %dx%dx%d", ErrOutOfBounds, x, y, z, s.width, s.height, s.length)
	}
	return nil
}

// Dimensions returns the width, height and length.
func (s *Schematic) Dimensions() (width, height, length int) {
	return s.width, s.height, s.length
}

// Offset returns the paste offset relative to the origin.
func (s *Schematic) Offset() (x, y, z int) {
	return s.offset[0], s.offset[1], s.offset[2]
}

// SetOffset sets the paste offset.
func (s *Schematic) SetOffset(x, y, z int) {
	s.offset = [3]int{x, y, z}
}

// Block returns the block state at the given position.
func (s *Schematic) Block(x, y, z int) (BlockValue, error) {
	if err := s.check(x, y, z); err != nil {
		return BlockValue{}, err
	}
	return s.blockPalette.Get(s.blocks.At(x, y, z))
}

// SetBlock sets a block at the given position, adding it to the palette if
// needed. b must pass Validate.
func (s *Schematic) SetBlock(x, y, z int, b BlockValue) error {
	if err := s.check(x, y, z); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	s.blocks.Set(x, y, z, s.blockPalette.GetOrInsert(b))
	return nil
}

// Biome returns the biome at the given position. Until a biome has been set,
// the grid refers to index 0 of an empty palette and Biome fails with
// ErrIndexOutOfRange.
func (s *Schematic) Biome(x, y, z int) (BlockValue, error) {
	if err := s.check(x, y, z); err != nil {
		return BlockValue{}, err
	}
	return s.biomePalette.Get(s.biomes.At(x, y, z))
}

// SetBiome sets the biome at the given position. b must pass Validate.
func (s *Schematic) SetBiome(x, y, z int, b BlockValue) error {
	if err := s.check(x, y, z); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	s.biomes.Set(x, y, z, s.biomePalette.GetOrInsert(b))
	return nil
}

// AddBlockEntity appends a block entity. Its position must be inside the schematic.
func (s *Schematic) AddBlockEntity(be BlockEntity) error {
	if err := s.check(be.X, be.Y, be.Z); err != nil {
		return err
	}
	s.blockEntities = append(s.blockEntities, be.Clone())
	return nil
}

// BlockEntities returns the block entities in insertion order.
func (s *Schematic) BlockEntities() []BlockEntity {
	out := make([]BlockEntity, len(s.blockEntities))
	for i, be := range s.blockEntities {
		out[i] = be.Clone()
	}
	return out
}

// BlockEntityAt returns the last block entity added at the given position.
func (s *Schematic) BlockEntityAt(x, y, z int) (BlockEntity, bool) {
	for _, be := range slices.Backward(s.blockEntities) {
		if be.X == x && be.Y == y && be.Z == z {
			return be.Clone(), true
		}
	}
	return BlockEntity{}, false
}

// Entities returns the entity compounds. They are passed through unparsed.
func (s *Schematic) Entities() []map[string]any {
	return slices.Clone(s.entities)
}

// AddEntity appends an entity compound.
func (s *Schematic) AddEntity(entity map[string]any) {
	s.entities = append(s.entities, entity)
}

// BlockPalette returns the palette backing the block grid. Replace it through
// LoadBlocks so the grid stays consistent.
func (s *Schematic) BlockPalette() *Palette {
	return s.blockPalette
}

// BiomePalette returns the palette backing the biome grid.
func (s *Schematic) BiomePalette() *Palette {
	return s.biomePalette
}

// BlockGrid returns the block palette indices.
func (s *Schematic) BlockGrid() *Grid {
	return s.blocks
}

// BiomeGrid returns the biome palette indices.
func (s *Schematic) BiomeGrid() *Grid {
	return s.biomes
}

// LoadBlocks replaces the block palette and grid. Every cell must refer to an
// index present in entries.
func (s *Schematic) LoadBlocks(entries map[string]int32, cells []int) error {
	return load(s.blockPalette, s.blocks, entries, cells)
}

// LoadBiomes replaces the biome palette and grid. Every cell must refer to an
// index present in entries.
func (s *Schematic) LoadBiomes(entries map[string]int32, cells []int) error {
	return load(s.biomePalette, s.biomes, entries, cells)
}

func load(p *Palette, g *Grid, entries map[string]int32, cells []int) error {
	next := NewPalette()
	if err := next.Load(entries); err != nil {
		return err
	}
	for i, idx := range cells {
		if !next.Has(idx) {
			return fmt.Errorf("%w: cell %d refers to palette index %d", ErrMalformedFile, i, idx)
		}
	}
	if err := g.Fill(cells); err != nil {
		return err
	}
	*p = *next
	return nil
}

// MetadataCopy returns a copy of the free-form metadata.
func (s *Schematic) MetadataCopy() map[string]string {
	return maps.Clone(s.Metadata)
}
