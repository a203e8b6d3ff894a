package format

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"slices"

	"github.com/oriumgames/nbt"
	"github.com/oriumgames/pile/sponge/format/internal/base"
	"github.com/oriumgames/pile/sponge/format/internal/sponge"
)

// Version is a Sponge schematic schema version.
type Version int32

const (
	V1 Version = 1
	V2 Version = 2
	V3 Version = 3
)

// Latest is the version written when none is requested.
const Latest = V3

// Builder converts a schematic into the NBT tree of one version.
type Builder func(*Schematic) (any, error)

// Parser converts a decoded NBT tree of one version into a schematic.
type Parser func(map[string]any) (*Schematic, error)

var builders = map[Version]Builder{
	V1: sponge.BuildV1,
	V2: sponge.BuildV2,
	V3: sponge.BuildV3,
}

var parsers = map[Version]Parser{
	V1: sponge.ParseV1,
	V2: sponge.ParseV2,
	V3: sponge.ParseV3,
}

// Read decompresses and decodes a schematic, detecting its version.
func Read(r io.Reader) (*Schematic, error) {
	gz, err := gzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer gz.Close()

	var root map[string]any
	if err := nbt.NewDecoderWithEncoding(gz, nbt.BigEndian).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: decode nbt: %w", base.ErrMalformedFile, err)
	}
	return Parse(root)
}

// Parse converts a decoded NBT tree into a schematic, dispatching on its version.
func Parse(root map[string]any) (*Schematic, error) {
	v, err := DetectVersion(root)
	if err != nil {
		return nil, err
	}
	parse, ok := parsers[v]
	if !ok {
		return nil, fmt.Errorf("%w: %d", base.ErrUnsupportedVersion, v)
	}
	s, err := parse(root)
	if err != nil {
		return nil, fmt.Errorf("read sponge v%d: %w", v, err)
	}
	return s, nil
}

// Build converts a schematic into the NBT tree of version v.
func Build(s *Schematic, v Version) (any, error) {
	build, ok := builders[v]
	if !ok {
		return nil, fmt.Errorf("%w: %d", base.ErrUnsupportedVersion, v)
	}
	tree, err := build(s)
	if err != nil {
		return nil, fmt.Errorf("write sponge v%d: %w", v, err)
	}
	return tree, nil
}

// Write encodes s as version v and writes it gzip-compressed to w.
func Write(w io.Writer, s *Schematic, v Version) error {
	tree, err := Build(s, v)
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(w)
	if err := nbt.NewEncoderWithEncoding(gz, nbt.BigEndian).Encode(tree); err != nil {
		return fmt.Errorf("encode nbt: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// Versions returns the schema versions that can be written, ascending.
func Versions() []Version {
	var out []Version
	for v := range builders {
		if v != V1 {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
