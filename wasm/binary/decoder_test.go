package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wabin/wabin/wasm"
)

// minimalModule is a hand-assembled canonical module: one function type
// with no params and no results, one function of that type, and one empty
// body.
var minimalModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // header
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type section: (func)
	0x03, 0x02, 0x01, 0x00, // function section: one function of type 0
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b, // code section: zero locals, end
}

func TestDecodeModule_Minimal(t *testing.T) {
	m, err := DecodeModule(minimalModule)
	require.NoError(t, err)

	require.Len(t, m.Sections, 3)
	ts := m.TypeSection()
	require.NotNil(t, ts)
	require.Equal(t, []*wasm.FunctionType{{}}, ts.Types)
	fs := m.FunctionSection()
	require.NotNil(t, fs)
	require.Equal(t, []wasm.Index{0}, fs.TypeIndices)
	cs := m.CodeSection()
	require.NotNil(t, cs)
	require.Equal(t, []*wasm.Code{{Body: []wasm.Instruction{wasm.End()}}}, cs.Bodies)

	encoded, err := EncodeModule(m)
	require.NoError(t, err)
	require.Equal(t, minimalModule, encoded)
}

func TestDecodeModule_OnlyHeader(t *testing.T) {
	m, err := DecodeModule([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	require.Empty(t, m.Sections)
}

func TestDecodeModule_Header(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		expErr error
	}{
		{name: "empty", input: []byte{}, expErr: ErrInvalidMagicNumber},
		{name: "truncated magic", input: []byte{0x00, 0x61}, expErr: ErrInvalidMagicNumber},
		{name: "wrong magic", input: []byte{0x01, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, expErr: ErrInvalidMagicNumber},
		{name: "truncated version", input: []byte{0x00, 0x61, 0x73, 0x6d, 0x01}, expErr: ErrInvalidVersion},
		{name: "wrong version", input: []byte{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00}, expErr: ErrInvalidVersion},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeModule(tc.input)
			require.ErrorIs(t, err, tc.expErr)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeModule_WrongVersionBeforeSections(t *testing.T) {
	// The version check happens before any section is looked at, even when
	// the first section is malformed too.
	input := append([]byte{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00}, 0xff, 0xff)
	_, err := DecodeModule(input)
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestDecodeModule_SectionOrder(t *testing.T) {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	emptyType := []byte{0x01, 0x01, 0x00}
	emptyFunc := []byte{0x03, 0x01, 0x00}

	t.Run("descending", func(t *testing.T) {
		input := append(append(append([]byte{}, header...), emptyFunc...), emptyType...)
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionOutOfOrder)
	})

	t.Run("duplicate", func(t *testing.T) {
		input := append(append(append([]byte{}, header...), emptyType...), emptyType...)
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionOutOfOrder)
	})
}

func TestDecodeModule_UnknownSectionID(t *testing.T) {
	input := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x0c, 0x00}
	_, err := DecodeModule(input)
	require.ErrorIs(t, err, ErrUnknownSectionID)
}

func TestDecodeModule_SectionSizeMismatch(t *testing.T) {
	t.Run("declared too large", func(t *testing.T) {
		// Contents are 4 bytes but the size claims 5.
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x01, 0x05, 0x01, 0x60, 0x00, 0x00, 0x00,
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionSizeMismatch)
	})

	t.Run("declared too small", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x01, 0x03, 0x01, 0x60, 0x00, 0x00,
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionSizeMismatch)
	})

	t.Run("code entry size", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
			0x03, 0x02, 0x01, 0x00,
			0x0a, 0x05, 0x01, 0x03, 0x00, 0x01, 0x0b, // entry claims 3 bytes, holds nop+end after locals
		}
		_, err := DecodeModule(input)
		require.NoError(t, err) // 3 bytes is exactly locals+nop+end
		input[21] = 0x02        // now the declared entry size undershoots
		_, err = DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionSizeMismatch)
	})
}

func TestDecodeModule_FunctionCodeMismatch(t *testing.T) {
	t.Run("function without code", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
			0x03, 0x02, 0x01, 0x00,
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrFunctionCodeMismatch)
	})

	t.Run("code without function", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrFunctionCodeMismatch)
	})
}

// TestDecodeModule_HugeDeclaredCount feeds tiny inputs whose vectors claim
// the maximum entry count. Every entry consumes at least one byte, so such
// counts must fail as truncation up front; allocating for the declared
// count first would let a few bytes demand gigabytes.
func TestDecodeModule_HugeDeclaredCount(t *testing.T) {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	maxCount := []byte{0xff, 0xff, 0xff, 0xff, 0x0f}

	tests := []struct {
		name    string
		section []byte
	}{
		{name: "type section", section: []byte{0x01, 0x05}},
		{name: "function section", section: []byte{0x03, 0x05}},
		{name: "export section", section: []byte{0x07, 0x05}},
		{name: "element section", section: []byte{0x09, 0x05}},
		{name: "code section", section: []byte{0x0a, 0x05}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			input := append(append(append([]byte{}, header...), tc.section...), maxCount...)
			_, err := DecodeModule(input)
			require.ErrorIs(t, err, ErrTruncated)
		})
	}

	t.Run("element segment function indices", func(t *testing.T) {
		// Segment count 1, table index 0, offset expression, then a huge
		// function index vector.
		contents := append([]byte{0x01, 0x00, 0x41, 0x00, 0x0b}, maxCount...)
		input := append(append(append([]byte{}, header...), 0x09, byte(len(contents))), contents...)
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrTruncated)
	})
}

// TestDecodeModule_Truncation feeds every prefix of a known-good buffer to
// the decoder: each must either fail with a positioned DecodeError or
// decode to a module that re-encodes to exactly that prefix.
func TestDecodeModule_Truncation(t *testing.T) {
	for i := 0; i < len(minimalModule); i++ {
		m, err := DecodeModule(minimalModule[:i])
		if err != nil {
			var de *DecodeError
			require.ErrorAs(t, err, &de, "prefix of %d bytes", i)
			require.LessOrEqual(t, de.Offset, uint64(i), "prefix of %d bytes", i)
			continue
		}
		encoded, err := EncodeModule(m)
		require.NoError(t, err, "prefix of %d bytes", i)
		require.Equal(t, minimalModule[:i], encoded, "prefix of %d bytes", i)
	}
}

func TestDecodeModule_CustomSections(t *testing.T) {
	// Custom sections may appear anywhere, repeat, and share a name, and
	// re-encoding must keep them in place.
	input := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x06, 0x05, 'f', 'i', 'r', 's', 't', // custom before any known section
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x00, 0x04, 0x01, 'x', 0xde, 0xad, // custom between known sections
		0x03, 0x02, 0x01, 0x00,
		0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
		0x00, 0x03, 0x01, 'x', 0x01, // custom at the end, same name as before
	}

	m, err := DecodeModule(input)
	require.NoError(t, err)
	customs := m.CustomSections()
	require.Len(t, customs, 3)
	require.Equal(t, "first", customs[0].Name)
	require.Empty(t, customs[0].Data)
	require.Equal(t, "x", customs[1].Name)
	require.Equal(t, []byte{0xde, 0xad}, customs[1].Data)
	require.Equal(t, "x", customs[2].Name)
	require.Equal(t, []byte{0x01}, customs[2].Data)

	// Interleaved position is preserved.
	require.Equal(t, wasm.SectionIDCustom, m.Sections[0].SectionID())
	require.Equal(t, wasm.SectionIDType, m.Sections[1].SectionID())
	require.Equal(t, wasm.SectionIDCustom, m.Sections[2].SectionID())

	encoded, err := EncodeModule(m)
	require.NoError(t, err)
	require.Equal(t, input, encoded)
}

func TestDecodeModule_CustomSectionErrors(t *testing.T) {
	t.Run("name overruns section", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x00, 0x02, 0x05, 'f', 'i', 'r', 's', 't',
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrSectionSizeMismatch)
	})

	t.Run("name not utf-8", func(t *testing.T) {
		input := []byte{
			0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
			0x00, 0x03, 0x02, 0xff, 0xfe,
		}
		_, err := DecodeModule(input)
		require.ErrorIs(t, err, ErrInvalidString)
	})
}

func TestDecodeModule_OverlongVarint(t *testing.T) {
	// Type count 1 encoded in two bytes instead of one.
	input := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x05, 0x81, 0x00, 0x60, 0x00, 0x00,
	}
	_, err := DecodeModule(input)
	require.ErrorIs(t, err, ErrOverlong)
}

func TestDecodeModule_WithMaxNestingDepth(t *testing.T) {
	// A body of two nested empty blocks decodes under the default cap but
	// not under a cap of one.
	input := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x00,
		0x0a, 0x0b, 0x01, 0x09, 0x00, 0x02, 0x40, 0x02, 0x40, 0x01, 0x0b, 0x0b, 0x0b,
	}

	m, err := DecodeModule(input)
	require.NoError(t, err)
	encoded, err := EncodeModule(m)
	require.NoError(t, err)
	require.Equal(t, input, encoded)

	_, err = DecodeModule(input, WithMaxNestingDepth(1))
	require.ErrorIs(t, err, ErrNestingTooDeep)

	// Non-positive depths keep the default.
	_, err = DecodeModule(input, WithMaxNestingDepth(0))
	require.NoError(t, err)
}

func TestDecodeError_Format(t *testing.T) {
	_, err := DecodeModule([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x0c, 0x00})
	require.ErrorIs(t, err, ErrUnknownSectionID)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, uint64(9), de.Offset)
	require.Contains(t, err.Error(), "offset 0x9")
}
