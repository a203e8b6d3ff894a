package base

import (
	"fmt"
	"maps"
	"slices"
)

// Palette maps block values to dense indices and back. Indices are handed out
// in first-seen order and never reused. Loaded palettes may leave holes, so
// values are kept by index rather than in a slice sized by the highest one.
type Palette struct {
	values map[int]BlockValue
	index  map[string]int
	size   int
}

// NewPalette creates a new empty palette.
func NewPalette() *Palette {
	return &Palette{values: make(map[int]BlockValue), index: make(map[string]int)}
}

// NewPaletteWithAir creates a new palette with air at index 0.
func NewPaletteWithAir() *Palette {
	p := NewPalette()
	p.GetOrInsert(NewBlockValue(Air))
	return p
}

// GetOrInsert returns the index of v, appending it at the next free index if
// it is not in the palette yet.
func (p *Palette) GetOrInsert(v BlockValue) int {
	key := v.Key()
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := p.size
	p.values[idx] = v
	p.index[key] = idx
	p.size++
	return idx
}

// Get returns the value at idx.
func (p *Palette) Get(idx int) (BlockValue, error) {
	v, ok := p.values[idx]
	if !ok {
		return BlockValue{}, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, idx, p.size)
	}
	return v, nil
}

// Index returns the index of v, or -1 if v is not in the palette.
func (p *Palette) Index(v BlockValue) int {
	if idx, ok := p.index[v.Key()]; ok {
		return idx
	}
	return -1
}

// Has reports whether idx is assigned.
func (p *Palette) Has(idx int) bool {
	_, ok := p.values[idx]
	return ok
}

// Len returns the size of the palette: one past the highest assigned index.
func (p *Palette) Len() int {
	return p.size
}

// Values returns the assigned values in index order.
func (p *Palette) Values() []BlockValue {
	out := make([]BlockValue, 0, len(p.values))
	for _, idx := range slices.Sorted(maps.Keys(p.values)) {
		out = append(out, p.values[idx])
	}
	return out
}

// Load replaces the palette with entries, a mapping of canonical block state
// strings to indices. Each value is installed at exactly the index given, so
// sparse or unordered input is kept as supplied.
func (p *Palette) Load(entries map[string]int32) error {
	size := 0
	values := make(map[int]BlockValue, len(entries))
	index := make(map[string]int, len(entries))
	for s, i := range entries {
		if i < 0 {
			return fmt.Errorf("%w: index %d for %q", ErrMalformedPalette, i, s)
		}
		idx := int(i)
		v, err := ParseBlockValue(s)
		if err != nil {
			return err
		}
		if prev, taken := values[idx]; taken {
			return fmt.Errorf("%w: index %d assigned to both %q and %q", ErrMalformedPalette, idx, prev, s)
		}
		key := v.Key()
		if prev, dup := index[key]; dup {
			return fmt.Errorf("%w: %q listed at %d and %d", ErrMalformedPalette, s, prev, idx)
		}
		values[idx] = v
		index[key] = idx
		size = max(size, idx+1)
	}

	p.values, p.index, p.size = values, index, size
	return nil
}

// Export returns the palette as a mapping of canonical strings to indices.
func (p *Palette) Export() map[string]int32 {
	out := make(map[string]int32, len(p.values))
	for idx, v := range p.values {
		out[v.String()] = int32(idx)
	}
	return out
}
