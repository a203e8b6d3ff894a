package sponge

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oriumgames/pile/sponge/format"
)

// Extension is the file extension schematic files must use.
const Extension = ".schem"

// Read reads a gzip-compressed schematic, detecting its version.
func Read(r io.Reader) (*format.Schematic, error) {
	return format.Read(r)
}

// Write writes s gzip-compressed as version v.
func Write(w io.Writer, s *format.Schematic, v format.Version) error {
	return format.Write(w, s, v)
}

// Load reads the schematic file at path.
func Load(path string) (*format.Schematic, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", format.ErrPathNotFound, path)
		}
		return nil, err
	}
	if filepath.Ext(path) != Extension {
		return nil, fmt.Errorf("%w: %s does not end in %s", format.ErrInvalidExtension, path, Extension)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as version v. The file is written to a temporary
// name in the same directory and renamed into place once complete.
func Save(path string, s *format.Schematic, v format.Version) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory %s", format.ErrPathNotFound, dir)
	}
	if filepath.Ext(path) != Extension {
		return fmt.Errorf("%w: %s does not end in %s", format.ErrInvalidExtension, path, Extension)
	}

	tmp, err := os.CreateTemp(dir, ".*"+Extension+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, s, v); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
