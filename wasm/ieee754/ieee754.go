// Package ieee754 reads and writes the fixed-width little-endian floating
// point values embedded in the WebAssembly binary format.
package ieee754

import (
	"encoding/binary"
	"io"
	"math"
)

// DecodeFloat32 reads a 4-byte little-endian IEEE 754 value.
func DecodeFloat32(r io.Reader) (float32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
}

// DecodeFloat64 reads an 8-byte little-endian IEEE 754 value.
func DecodeFloat64(r io.Reader) (float64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// EncodeFloat32 returns the 4-byte little-endian form of the value. The bit
// pattern is preserved exactly, NaN payloads included.
func EncodeFloat32(f float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	return buf
}

// EncodeFloat64 returns the 8-byte little-endian form of the value. The bit
// pattern is preserved exactly, NaN payloads included.
func EncodeFloat64(f float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	return buf
}
