package binary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wabin/wabin/wasm"
)

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected wasm.Instruction
		expErr   error
	}{
		{
			name:     "nop",
			input:    []byte{0x01},
			expected: wasm.Instruction{Opcode: wasm.OpcodeNop},
		},
		{
			name:     "block with value result",
			input:    []byte{0x02, 0x7f},
			expected: wasm.Instruction{Opcode: wasm.OpcodeBlock, Block: wasm.BlockTypeI32},
		},
		{
			name:     "if with type index",
			input:    []byte{0x04, 0x03},
			expected: wasm.Instruction{Opcode: wasm.OpcodeIf, Block: wasm.BlockTypeFuncType(3)},
		},
		{
			name:     "br",
			input:    []byte{0x0c, 0x02},
			expected: wasm.Instruction{Opcode: wasm.OpcodeBr, Index: 2},
		},
		{
			name:  "br_table",
			input: []byte{0x0e, 0x03, 0x01, 0x02, 0x03, 0x00},
			expected: wasm.Instruction{
				Opcode:  wasm.OpcodeBrTable,
				Targets: []wasm.Index{1, 2, 3},
				Default: 0,
			},
		},
		{
			name:     "call_indirect",
			input:    []byte{0x11, 0x05, 0x00},
			expected: wasm.Instruction{Opcode: wasm.OpcodeCallIndirect, Index: 5},
		},
		{
			name:     "i32.load with memarg",
			input:    []byte{0x28, 0x02, 0x10},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI32Load, Align: 2, Offset: 16},
		},
		{
			name:     "memory.size",
			input:    []byte{0x3f, 0x00},
			expected: wasm.Instruction{Opcode: wasm.OpcodeMemorySize},
		},
		{
			name:     "i32.const",
			input:    []byte{0x41, 0x7f},
			expected: wasm.I32Const(-1),
		},
		{
			name:     "i64.const",
			input:    []byte{0x42, 0xc0, 0xbb, 0x78},
			expected: wasm.I64Const(-123456),
		},
		{
			name:     "f32.const",
			input:    []byte{0x43, 0x00, 0x00, 0x80, 0x3f},
			expected: wasm.F32Const(1.0),
		},
		{
			name:     "f64.const",
			input:    []byte{0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f},
			expected: wasm.F64Const(1.0),
		},
		{
			name:     "sign extension",
			input:    []byte{0xc0},
			expected: wasm.Instruction{Opcode: wasm.OpcodeI32Extend8S},
		},
		{
			name:  "trunc_sat",
			input: []byte{0xfc, 0x02},
			expected: wasm.Instruction{
				Opcode: wasm.OpcodeMiscPrefix,
				Misc:   wasm.OpcodeMiscI32TruncSatF64S,
			},
		},
		{
			name:   "unknown opcode",
			input:  []byte{0xc5},
			expErr: ErrUnknownOpcode,
		},
		{
			name:   "unknown misc opcode",
			input:  []byte{0xfc, 0x08},
			expErr: ErrUnknownOpcode,
		},
		{
			name:   "unknown block type",
			input:  []byte{0x02, 0x7b},
			expErr: ErrUnknownValueType,
		},
		{
			name:   "call_indirect reserved byte not zero",
			input:  []byte{0x11, 0x05, 0x01},
			expErr: ErrInvalidByte,
		},
		{
			name:   "memory.grow reserved byte not zero",
			input:  []byte{0x40, 0x01},
			expErr: ErrInvalidByte,
		},
		{
			name:   "truncated memarg",
			input:  []byte{0x28, 0x02},
			expErr: ErrTruncated,
		},
		{
			name:   "br_table with huge target count",
			input:  []byte{0x0e, 0xff, 0xff, 0xff, 0xff, 0x0f},
			expErr: ErrTruncated,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			instr, err := decodeInstruction(newReader(tc.input))
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, instr)

			encoded, err := encodeInstruction(instr)
			require.NoError(t, err)
			require.Equal(t, tc.input, encoded)
		})
	}
}

// TestDecodeInstruction_NaNBitsPreserved round-trips float constants whose
// payloads are signaling NaNs: the one case where carrying the value as a
// Go float could silently rewrite bits.
func TestDecodeInstruction_NaNBitsPreserved(t *testing.T) {
	t.Run("f32.const", func(t *testing.T) {
		input := []byte{0x43, 0x01, 0x00, 0x80, 0x7f} // 0x7f800001
		instr, err := decodeInstruction(newReader(input))
		require.NoError(t, err)
		require.Equal(t, uint32(0x7f800001), math.Float32bits(instr.F32))

		encoded, err := encodeInstruction(instr)
		require.NoError(t, err)
		require.Equal(t, input, encoded)
	})

	t.Run("f64.const", func(t *testing.T) {
		input := []byte{0x44, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x7f} // 0x7ff0000000000001
		instr, err := decodeInstruction(newReader(input))
		require.NoError(t, err)
		require.Equal(t, uint64(0x7ff0000000000001), math.Float64bits(instr.F64))

		encoded, err := encodeInstruction(instr)
		require.NoError(t, err)
		require.Equal(t, input, encoded)
	})
}

func TestDecodeExpression(t *testing.T) {
	t.Run("implicit outer block", func(t *testing.T) {
		body, err := decodeExpression(newReader([]byte{0x41, 0x2a, 0x0b}), DefaultMaxNestingDepth)
		require.NoError(t, err)
		require.Equal(t, []wasm.Instruction{wasm.I32Const(42), wasm.End()}, body)
	})

	t.Run("if else end", func(t *testing.T) {
		input := []byte{
			0x20, 0x00, // local.get 0
			0x04, 0x7f, // if (result i32)
			0x41, 0x01, // i32.const 1
			0x05,       // else
			0x41, 0x00, // i32.const 0
			0x0b, // end (if)
			0x0b, // end (body)
		}
		body, err := decodeExpression(newReader(input), DefaultMaxNestingDepth)
		require.NoError(t, err)
		require.Len(t, body, 8)

		encoded, err := encodeExpression(body)
		require.NoError(t, err)
		require.Equal(t, input, encoded)
	})

	t.Run("else outside if", func(t *testing.T) {
		_, err := decodeExpression(newReader([]byte{0x02, 0x40, 0x05, 0x0b, 0x0b}), DefaultMaxNestingDepth)
		require.ErrorIs(t, err, ErrInvalidByte)
	})

	t.Run("second else", func(t *testing.T) {
		_, err := decodeExpression(newReader([]byte{0x04, 0x40, 0x05, 0x05, 0x0b, 0x0b}), DefaultMaxNestingDepth)
		require.ErrorIs(t, err, ErrInvalidByte)
	})

	t.Run("missing end", func(t *testing.T) {
		_, err := decodeExpression(newReader([]byte{0x01}), DefaultMaxNestingDepth)
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("nesting limit", func(t *testing.T) {
		deep := make([]byte, 0, 64)
		for i := 0; i < 10; i++ {
			deep = append(deep, 0x02, 0x40) // block (empty)
		}
		for i := 0; i < 11; i++ {
			deep = append(deep, 0x0b)
		}

		body, err := decodeExpression(newReader(deep), 10)
		require.NoError(t, err)
		require.Len(t, body, 21)

		_, err = decodeExpression(newReader(deep), 9)
		require.ErrorIs(t, err, ErrNestingTooDeep)
	})
}

func TestEncodeExpression_Invariants(t *testing.T) {
	tests := []struct {
		name string
		body []wasm.Instruction
	}{
		{name: "empty", body: nil},
		{name: "missing terminal end", body: []wasm.Instruction{wasm.I32Const(1)}},
		{name: "unbalanced block", body: []wasm.Instruction{{Opcode: wasm.OpcodeBlock, Block: wasm.BlockTypeEmpty}, wasm.End()}},
		{name: "instructions after terminal end", body: []wasm.Instruction{wasm.End(), wasm.I32Const(1)}},
		{name: "unknown opcode", body: []wasm.Instruction{{Opcode: 0xc5}, wasm.End()}},
		{name: "unknown misc opcode", body: []wasm.Instruction{{Opcode: wasm.OpcodeMiscPrefix, Misc: 0x08}, wasm.End()}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := encodeExpression(tc.body)
			require.ErrorIs(t, err, ErrEncodeInvariant)
		})
	}
}
