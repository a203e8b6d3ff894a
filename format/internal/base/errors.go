package base

import "errors"

var (
	// ErrInvalidExtension is returned when a path does not end in the schematic extension.
	ErrInvalidExtension = errors.New("invalid file extension")
	// ErrPathNotFound is returned for a missing file or a missing parent directory.
	ErrPathNotFound = errors.New("path not found")
	// ErrVersionNotFound is returned when a tree carries no Version field.
	ErrVersionNotFound = errors.New("schematic version not found")
	// ErrUnsupportedVersion is returned for version 1 and any unknown version.
	ErrUnsupportedVersion = errors.New("unsupported schematic version")
	// ErrOutOfBounds is returned for coordinates outside the schematic.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrInvalidDimensions is returned when a dimension is outside [0, 65535].
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrMalformedFile is returned when a required field is absent or has the wrong type.
	ErrMalformedFile = errors.New("malformed schematic")
	// ErrMalformedPalette is returned when a palette key cannot be parsed.
	ErrMalformedPalette = errors.New("malformed palette")
	// ErrTruncatedVarint is returned when a varint stream ends mid-integer.
	ErrTruncatedVarint = errors.New("truncated varint")
	// ErrVarIntTooLong is returned when a varint exceeds five bytes.
	ErrVarIntTooLong = errors.New("varint too long")
	// ErrIndexOutOfRange is returned for palette lookups of unassigned indices.
	ErrIndexOutOfRange = errors.New("palette index out of range")
)
