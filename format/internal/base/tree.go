package base

import "reflect"

// Accessors over a decoded NBT compound. The decoder produces fixed-size
// arrays ([N]byte, [N]int32) for array tags and []any for lists, so the
// helpers accept both shapes.

// Int returns an integral tag of any width as an int.
func Int(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case uint8:
		return int(v), true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// String returns a string tag.
func String(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Compound returns a nested compound tag.
func Compound(m map[string]any, key string) (map[string]any, bool) {
	c, ok := m[key].(map[string]any)
	return c, ok
}

// Compounds returns a list of compound tags.
func Compounds(m map[string]any, key string) ([]map[string]any, bool) {
	switch v := m[key].(type) {
	case []map[string]any:
		return v, true
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			c, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, c)
		}
		return out, true
	}
	return nil, false
}

// Strings returns a list of string tags.
func Strings(m map[string]any, key string) ([]string, bool) {
	switch v := m[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Bytes returns a byte array tag.
func Bytes(m map[string]any, key string) ([]byte, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	if b, ok := v.([]byte); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice) || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	out := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(out), rv)
	return out, true
}

// Ints returns an int array tag, or a list of integral tags, as ints.
func Ints(m map[string]any, key string) ([]int, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]int, rv.Len())
	for i := range out {
		e := rv.Index(i)
		if e.Kind() == reflect.Interface {
			e = e.Elem()
		}
		switch e.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			out[i] = int(e.Int())
		case reflect.Uint8:
			out[i] = int(e.Uint())
		default:
			return nil, false
		}
	}
	return out, true
}

// Floats returns a list of float or double tags as float64s.
func Floats(m map[string]any, key string) ([]float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]float64, rv.Len())
	for i := range out {
		e := rv.Index(i)
		if e.Kind() == reflect.Interface {
			e = e.Elem()
		}
		switch e.Kind() {
		case reflect.Float32, reflect.Float64:
			out[i] = e.Float()
		default:
			return nil, false
		}
	}
	return out, true
}

// StringMap returns the string entries of a compound tag. Entries of any
// other type are skipped.
func StringMap(m map[string]any, key string) (map[string]string, bool) {
	c, ok := Compound(m, key)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(c))
	for k, v := range c {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, true
}

// IndexMap returns a compound of integral tags, as used by palettes.
func IndexMap(m map[string]any, key string) (map[string]int32, bool) {
	c, ok := Compound(m, key)
	if !ok {
		return nil, false
	}
	out := make(map[string]int32, len(c))
	for k := range c {
		i, ok := Int(c, k)
		if !ok {
			return nil, false
		}
		out[k] = int32(i)
	}
	return out, true
}
