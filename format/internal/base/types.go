package base

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Air is the block state every new block palette starts with at index 0.
const Air = "minecraft:air"

// Property is a single block state property.
type Property struct {
	Key, Value string
}

// BlockValue is an immutable block state: an id plus an ordered set of properties.
// Two values are equal when their ids match and they hold the same property
// pairs, regardless of the order the properties were supplied in.
type BlockValue struct {
	id    string
	props []Property
}

// NewBlockValue creates a block value. A repeated key keeps its first position
// and takes the last value supplied for it.
func NewBlockValue(id string, props ...Property) BlockValue {
	b := BlockValue{id: id}
	if len(props) == 0 {
		return b
	}
	b.props = make([]Property, 0, len(props))
	for _, p := range props {
		if i := slices.IndexFunc(b.props, func(q Property) bool { return q.Key == p.Key }); i >= 0 {
			b.props[i].Value = p.Value
			continue
		}
		b.props = append(b.props, p)
	}
	return b
}

// ID returns the block id, e.g. "minecraft:oak_stairs".
func (b BlockValue) ID() string {
	return b.id
}

// Property returns the value of the property k.
func (b BlockValue) Property(k string) (string, bool) {
	for _, p := range b.props {
		if p.Key == k {
			return p.Value, true
		}
	}
	return "", false
}

// Properties returns a copy of the properties in their stored order.
func (b BlockValue) Properties() []Property {
	return slices.Clone(b.props)
}

// TypedProperties returns the properties with "true"/"false" converted to
// bool and integers converted to int32, the way block state tags are typed.
func (b BlockValue) TypedProperties() map[string]any {
	m := make(map[string]any, len(b.props))
	for _, p := range b.props {
		switch p.Value {
		case "true":
			m[p.Key] = true
		case "false":
			m[p.Key] = false
		default:
			if i, err := strconv.ParseInt(p.Value, 10, 32); err == nil {
				m[p.Key] = int32(i)
			} else {
				m[p.Key] = p.Value
			}
		}
	}
	return m
}

// String renders the canonical form: the id alone, or id[k1=v1,k2=v2] with
// properties in stored order. This is the key written to palettes.
func (b BlockValue) String() string {
	return render(b.id, b.props)
}

// Key returns a structural key with properties sorted by key. Equal values
// always share a key and distinct values never do, whatever characters their
// ids and properties hold.
func (b BlockValue) Key() string {
	sorted := slices.Clone(b.props)
	slices.SortFunc(sorted, func(p, q Property) int { return strings.Compare(p.Key, q.Key) })
	buf := strconv.AppendQuote(nil, b.id)
	for _, p := range sorted {
		buf = strconv.AppendQuote(buf, p.Key)
		buf = strconv.AppendQuote(buf, p.Value)
	}
	return string(buf)
}

// Validate reports whether b survives the canonical form: the id must be
// non-empty and free of brackets, and property keys and values must not
// contain any of "[],=". Keys must also be non-empty.
func (b BlockValue) Validate() error {
	if b.id == "" || strings.ContainsAny(b.id, "[]") {
		return fmt.Errorf("%w: bad block id %q", ErrMalformedPalette, b.id)
	}
	for _, p := range b.props {
		if p.Key == "" || strings.ContainsAny(p.Key, reserved) || strings.ContainsAny(p.Value, reserved) {
			return fmt.Errorf("%w: bad property %q=%q on %s", ErrMalformedPalette, p.Key, p.Value, b.id)
		}
	}
	return nil
}

const reserved = "[],="

// Hash returns a structural hash consistent with Equal.
func (b BlockValue) Hash() uint64 {
	return xxhash.Sum64String(b.Key())
}

// Equal reports whether b and o hold the same id and property set.
func (b BlockValue) Equal(o BlockValue) bool {
	if b.id != o.id || len(b.props) != len(o.props) {
		return false
	}
	for _, p := range b.props {
		if v, ok := o.Property(p.Key); !ok || v != p.Value {
			return false
		}
	}
	return true
}

func render(id string, props []Property) string {
	if len(props) == 0 {
		return id
	}
	var buf strings.Builder
	buf.WriteString(id)
	buf.WriteByte('[')
	for i, p := range props {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(p.Key)
		buf.WriteByte('=')
		buf.WriteString(p.Value)
	}
	buf.WriteByte(']')
	return buf.String()
}

// ParseBlockValue parses the canonical form produced by BlockValue.String.
func ParseBlockValue(s string) (BlockValue, error) {
	id, props, bracket := strings.Cut(s, "[")
	if id == "" || strings.ContainsRune(id, ']') {
		return BlockValue{}, fmt.Errorf("%w: %q", ErrMalformedPalette, s)
	}
	if !bracket {
		return BlockValue{id: id}, nil
	}

	inner, closed := strings.CutSuffix(props, "]")
	if !closed || inner == "" || strings.ContainsAny(inner, "[]") {
		return BlockValue{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedPalette, s)
	}

	b := BlockValue{id: id}
	for part := range strings.SplitSeq(inner, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return BlockValue{}, fmt.Errorf("%w: bad property %q in %q", ErrMalformedPalette, part, s)
		}
		if _, dup := b.Property(key); dup {
			return BlockValue{}, fmt.Errorf("%w: duplicate property %q in %q", ErrMalformedPalette, key, s)
		}
		b.props = append(b.props, Property{Key: key, Value: value})
	}
	if err := b.Validate(); err != nil {
		return BlockValue{}, fmt.Errorf("%w in %q", err, s)
	}
	return b, nil
}

// BlockEntity is a block entity (tile entity) positioned inside a schematic.
type BlockEntity struct {
	ID         string            // e.g., "minecraft:chest"
	X, Y, Z    int               // Position relative to schematic origin
	Properties map[string]string // Data entries, stored as strings
}

// Clone creates a copy of the BlockEntity that shares no maps with be.
func (be BlockEntity) Clone() BlockEntity {
	c := be
	if be.Properties != nil {
		c.Properties = maps.Clone(be.Properties)
	}
	return c
}

// Equal reports whether two block entities hold the same id, position and data.
func (be BlockEntity) Equal(o BlockEntity) bool {
	return be.ID == o.ID && be.X == o.X && be.Y == o.Y && be.Z == o.Z &&
		len(be.Properties) == len(o.Properties) && maps.Equal(be.Properties, o.Properties)
}

// EntityPosition reads the "Pos" list of an opaque entity compound.
func EntityPosition(entity map[string]any) (mgl64.Vec3, bool) {
	pos, ok := Floats(entity, "Pos")
	if !ok || len(pos) < 3 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{pos[0], pos[1], pos[2]}, true
}

// EntityID reads the id of an opaque entity compound. Sponge files use "Id",
// vanilla entity data uses "id".
func EntityID(entity map[string]any) string {
	if id, ok := entity["Id"].(string); ok {
		return id
	}
	id, _ := entity["id"].(string)
	return id
}
