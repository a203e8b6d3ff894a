package sponge

import (
	_ "unsafe"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oriumgames/crocon"
	"github.com/oriumgames/pile/sponge/format"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Structure wraps a format.Schematic and implements world.Structure.
// It can be placed in a Dragonfly world using world.BuildStructure.
type Structure struct {
	schematic *format.Schematic
	converter *crocon.Converter
}

// NewStructure creates a new Structure from a format.Schematic.
func NewStructure(s *format.Schematic) *Structure {
	c, _ := crocon.NewConverter()
	return &Structure{
		schematic: s,
		converter: c,
	}
}

// Dimensions implements world.Structure.
func (s *Structure) Dimensions() [3]int {
	w, h, l := s.schematic.Dimensions()
	return [3]int{w, h, l}
}

// At implements world.Structure.
// Java block states are converted to Bedrock blocks with crocon; anything
// that cannot be converted is placed as air.
func (s *Structure) At(x, y, z int, _ func(x, y, z int) world.Block) (world.Block, world.Liquid) {
	state, err := s.schematic.Block(x, y, z)
	if err != nil || state.ID() == format.Air || state.ID() == "air" {
		return block.Air{}, nil
	}

	fromVersion := s.schematic.Version()
	if fromVersion == "" || s.converter == nil {
		return block.Air{}, nil
	}
	req := crocon.ConversionRequest{
		FromVersion: fromVersion,
		ToVersion:   protocol.CurrentVersion,
		FromEdition: crocon.JavaEdition,
		ToEdition:   crocon.BedrockEdition,
	}

	b, err := s.converter.ConvertBlock(crocon.BlockRequest{
		ConversionRequest: req,
		Block: crocon.Block{
			ID:     state.ID(),
			States: state.TypedProperties(),
		},
	})
	if err != nil {
		return block.Air{}, nil
	}

	// Drop states Dragonfly does not know for this block.
	validProps := blockProperties[b.ID]
	for k := range b.States {
		if _, ok := validProps[k]; !ok {
			delete(b.States, k)
		}
	}

	ret, ok := world.BlockByName(b.ID, b.States)
	if !ok {
		return block.Air{}, nil
	}

	if nbter, ok := ret.(world.NBTer); ok {
		ret = s.decodeBlockEntity(nbter, req, x, y, z)
		if ret == nil {
			return block.Air{}, nil
		}
	}

	var liquid world.Liquid
	if waterlogged, _ := state.Property("waterlogged"); waterlogged == "true" {
		liquid = block.Water{}
	}
	return ret, liquid
}

// decodeBlockEntity applies the block entity at (x, y, z), if any, to a block
// that carries NBT. It returns nil when conversion fails.
func (s *Structure) decodeBlockEntity(nbter world.NBTer, req crocon.ConversionRequest, x, y, z int) world.Block {
	ent, ok := s.schematic.BlockEntityAt(x, y, z)
	if !ok {
		return nbter.DecodeNBT(map[string]any{}).(world.Block)
	}

	from := make(crocon.BlockEntity, len(ent.Properties)+1)
	for k, v := range ent.Properties {
		from[k] = v
	}
	from["id"] = ent.ID

	be, err := s.converter.ConvertBlockEntity(crocon.BlockEntityRequest{
		ConversionRequest: req,
		BlockEntity:       from,
	})
	if err != nil {
		return nil
	}
	m, ok := any(be).(*map[string]any)
	if !ok || m == nil {
		return nil
	}
	tag, ok := (*m)["tag"].(map[string]any)
	if !ok {
		return nil
	}
	return nbter.DecodeNBT(tag).(world.Block)
}

// Schematic returns the underlying format.Schematic.
func (s *Structure) Schematic() *format.Schematic {
	return s.schematic
}

// Offset returns the structure's offset.
func (s *Structure) Offset() (x, y, z int) {
	return s.schematic.Offset()
}

// blockProperties is linked from dragonfly to validate block properties.
//
//go:linkname blockProperties github.com/df-mc/dragonfly/server/world.blockProperties
var blockProperties map[string]map[string]any
