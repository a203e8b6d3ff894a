package format

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oriumgames/pile/sponge/format/internal/base"
)

type (
	// Schematic is a block grid with biomes, block entities, entities and metadata.
	Schematic = base.Schematic
	// BlockValue is an immutable block or biome state.
	BlockValue = base.BlockValue
	// Property is a single block state property.
	Property = base.Property
	// BlockEntity is a positioned block entity.
	BlockEntity = base.BlockEntity
	// Palette maps block values to dense indices.
	Palette = base.Palette
	// Grid is a dense buffer of palette indices.
	Grid = base.Grid
)

// Air is the block state at index 0 of every new block palette.
const Air = base.Air

var (
	ErrInvalidExtension   = base.ErrInvalidExtension
	ErrPathNotFound       = base.ErrPathNotFound
	ErrVersionNotFound    = base.ErrVersionNotFound
	ErrUnsupportedVersion = base.ErrUnsupportedVersion
	ErrOutOfBounds        = base.ErrOutOfBounds
	ErrInvalidDimensions  = base.ErrInvalidDimensions
	ErrMalformedFile      = base.ErrMalformedFile
	ErrMalformedPalette   = base.ErrMalformedPalette
	ErrTruncatedVarint    = base.ErrTruncatedVarint
	ErrVarIntTooLong      = base.ErrVarIntTooLong
	ErrIndexOutOfRange    = base.ErrIndexOutOfRange
)

// New creates a schematic of the given dimensions filled with air.
func New(width, height, length int) (*Schematic, error) {
	return base.New(width, height, length)
}

// NewBlockValue creates a block value from an id and its properties.
func NewBlockValue(id string, props ...Property) BlockValue {
	return base.NewBlockValue(id, props...)
}

// ParseBlockValue parses a canonical block state string such as
// "minecraft:oak_stairs[facing=north,half=bottom]".
func ParseBlockValue(s string) (BlockValue, error) {
	return base.ParseBlockValue(s)
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return base.NewPalette()
}

// EncodeVarIntArray encodes values as concatenated VarInts.
func EncodeVarIntArray(values []int) []byte {
	return base.EncodeVarIntArray(values)
}

// DecodeVarIntArray decodes a VarInt stream holding exactly count values.
func DecodeVarIntArray(data []byte, count int) ([]int, error) {
	return base.DecodeVarIntArray(data, count)
}

// EntityPosition reads the position of an opaque entity compound.
func EntityPosition(entity map[string]any) (mgl64.Vec3, bool) {
	return base.EntityPosition(entity)
}

// EntityID reads the id of an opaque entity compound.
func EntityID(entity map[string]any) string {
	return base.EntityID(entity)
}

// MinecraftVersion maps a data version to a Minecraft version name.
func MinecraftVersion(dataVersion int) string {
	return base.MinecraftVersion(dataVersion)
}
