package base

import "fmt"

// maxVarIntLen is the encoded length of a 32-bit value.
const maxVarIntLen = 5

// DecodeVarInt reads a single VarInt from the byte slice.
// Returns the value and the number of bytes read.
func DecodeVarInt(data []byte) (int, int, error) {
	var value, length int
	for {
		if length >= len(data) {
			return 0, 0, ErrTruncatedVarint
		}
		if length == maxVarIntLen {
			return 0, 0, ErrVarIntTooLong
		}
		b := int(data[length])
		value |= (b & 0x7F) << (length * 7)
		length++
		if (b & 0x80) == 0 {
			return value, length, nil
		}
	}
}

// DecodeVarIntStream decodes VarInts until data is exhausted.
func DecodeVarIntStream(data []byte) ([]int, error) {
	values := make([]int, 0, len(data))
	for offset := 0; offset < len(data); {
		val, length, err := DecodeVarInt(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("decode varint %d at byte %d: %w", len(values), offset, err)
		}
		values = append(values, val)
		offset += length
	}
	return values, nil
}

// DecodeVarIntArray decodes a VarInt stream that must hold exactly count values.
func DecodeVarIntArray(data []byte, count int) ([]int, error) {
	values, err := DecodeVarIntStream(data)
	if err != nil {
		return nil, err
	}
	if len(values) != count {
		return nil, fmt.Errorf("%w: decoded %d values, want %d", ErrMalformedFile, len(values), count)
	}
	return values, nil
}

// EncodeVarInt encodes a single integer as a VarInt. Only the low 32 bits are
// encoded, so negative values come out as their two's complement bit pattern.
func EncodeVarInt(value int) []byte {
	return appendVarInt(nil, value)
}

// EncodeVarIntArray encodes multiple integers as VarInts.
func EncodeVarIntArray(values []int) []byte {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		buf = appendVarInt(buf, v)
	}
	return buf
}

func appendVarInt(buf []byte, value int) []byte {
	u := uint32(value)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if u == 0 {
			return buf
		}
	}
}
