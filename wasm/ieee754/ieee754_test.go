package ieee754

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat32(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected float32
	}{
		{name: "zero", input: []byte{0x00, 0x00, 0x00, 0x00}, expected: 0},
		{name: "one", input: []byte{0x00, 0x00, 0x80, 0x3f}, expected: 1.0},
		{name: "negative", input: []byte{0x00, 0x00, 0xc0, 0xbf}, expected: -1.5},
		{name: "inf", input: []byte{0x00, 0x00, 0x80, 0x7f}, expected: float32(math.Inf(1))},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f, err := DecodeFloat32(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, f)
			require.Equal(t, tc.input, EncodeFloat32(f))
		})
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected float64
	}{
		{name: "zero", input: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, expected: 0},
		{name: "one", input: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f}, expected: 1.0},
		{name: "pi", input: []byte{0x18, 0x2d, 0x44, 0x54, 0xfb, 0x21, 0x09, 0x40}, expected: math.Pi},
		{name: "neg inf", input: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0xff}, expected: math.Inf(-1)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f, err := DecodeFloat64(bytes.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, f)
			require.Equal(t, tc.input, EncodeFloat64(f))
		})
	}
}

func TestNaNBitsPreserved(t *testing.T) {
	// A NaN with a non-canonical payload must survive a decode/encode
	// round trip bit for bit.
	input := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x7f}
	f, err := DecodeFloat64(bytes.NewReader(input))
	require.NoError(t, err)
	require.True(t, math.IsNaN(f))
	require.Equal(t, input, EncodeFloat64(f))
}

func TestDecodeTruncated(t *testing.T) {
	_, err := DecodeFloat32(bytes.NewReader([]byte{0x00, 0x00}))
	require.Error(t, err)
	_, err = DecodeFloat64(bytes.NewReader([]byte{0x00}))
	require.Error(t, err)
}
