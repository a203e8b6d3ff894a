package format

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"math"

	"github.com/oriumgames/nbt"
	"github.com/oriumgames/pile/sponge/format/internal/base"
	"github.com/oriumgames/pile/sponge/format/internal/sponge"
)

// Detect reports the schema version of gzip-compressed schematic data.
func Detect(data []byte) (Version, error) {
	if len(data) < 2 || data[0] != 0x1F || data[1] != 0x8B {
		return 0, fmt.Errorf("%w: not gzip data", base.ErrMalformedFile)
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("gzip decompress: %w", err)
	}
	defer gz.Close()

	var root map[string]any
	if err := nbt.NewDecoderWithEncoding(gz, nbt.BigEndian).Decode(&root); err != nil {
		return 0, fmt.Errorf("%w: decode nbt: %w", base.ErrMalformedFile, err)
	}
	return DetectVersion(root)
}

// DetectVersion reads the Version field of a decoded tree: first at the top
// level, then under the Schematic root used by version 3.
func DetectVersion(root map[string]any) (Version, error) {
	if v, ok := base.Int(root, "Version"); ok {
		return toVersion(v)
	}
	if nested, ok := base.Compound(root, sponge.RootV3); ok {
		if v, ok := base.Int(nested, "Version"); ok {
			return toVersion(v)
		}
	}
	return 0, base.ErrVersionNotFound
}

func toVersion(v int) (Version, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", base.ErrUnsupportedVersion, v)
	}
	return Version(v), nil
}
