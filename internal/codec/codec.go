package codec

import "encoding/binary"

// Setpoints live in host (little-endian) order in memory and big-endian on
// storage, so every 16-bit word is byte-swapped on the way in and out.

// Swap byte-swaps every value in place. Applying it twice restores the input.
func Swap(values []uint16) {
	for i, word := range values {
		values[i] = word>>8 | word<<8
	}
}

// Encode returns the storage representation of values, two bytes per value.
// values is not modified.
func Encode(values []uint16) []byte {
	swapped := append([]uint16(nil), values...)
	Swap(swapped)

	buf := make([]byte, 2*len(swapped))
	for i, word := range swapped {
		binary.LittleEndian.PutUint16(buf[2*i:], word)
	}
	return buf
}

// Decode is the inverse of Encode. A trailing odd byte is ignored.
func Decode(b []byte) []uint16 {
	values := make([]uint16, len(b)/2)
	for i := range values {
		values[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	Swap(values)
	return values
}
