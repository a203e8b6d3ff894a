package sponge

import (
	"fmt"

	"github.com/oriumgames/pile/sponge/format/internal/base"
)

// BuildV1 always fails: version 1 files are recognized but not supported.
func BuildV1(*base.Schematic) (any, error) {
	return nil, fmt.Errorf("%w: version 1", base.ErrUnsupportedVersion)
}

// ParseV1 always fails: version 1 files are recognized but not supported.
func ParseV1(map[string]any) (*base.Schematic, error) {
	return nil, fmt.Errorf("%w: version 1", base.ErrUnsupportedVersion)
}
