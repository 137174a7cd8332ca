package binary

import (
	"bytes"
	"fmt"

	"github.com/wabin/wabin/wasm"
)

// DefaultMaxNestingDepth bounds how many blocks a single function body or
// initializer expression may open before decoding fails with
// ErrNestingTooDeep. The bound exists so that adversarial input cannot make
// the decoder allocate an arbitrarily deep frame stack.
const DefaultMaxNestingDepth = 10000

type decoderConfig struct {
	maxNesting int
}

// DecodeOption configures DecodeModule.
type DecodeOption func(*decoderConfig)

// WithMaxNestingDepth overrides DefaultMaxNestingDepth. depth must be
// positive; non-positive values leave the default in place.
func WithMaxNestingDepth(depth int) DecodeOption {
	return func(c *decoderConfig) {
		if depth > 0 {
			c.maxNesting = depth
		}
	}
}

// DecodeModule parses a complete module out of binary. Decoding is strict:
// the header must be exact, known sections must appear in ascending ID
// order, every declared length must match the bytes consumed, and all
// varints must be minimally encoded. The first failure aborts with a
// *DecodeError recording the byte offset at which it was detected.
//
// A module returned by DecodeModule re-encodes to the identical bytes.
func DecodeModule(binary []byte, opts ...DecodeOption) (*wasm.Module, error) {
	cfg := decoderConfig{maxNesting: DefaultMaxNestingDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := newReader(binary)
	if err := decodeHeader(r); err != nil {
		return nil, &DecodeError{Offset: r.pos, Err: err}
	}

	m := &wasm.Module{}
	lastOrdered := wasm.SectionID(0)
	for r.len() > 0 {
		sectionID, err := r.ReadByte()
		if err != nil {
			return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("read section id: %w", err)}
		}
		if sectionID > wasm.SectionIDData {
			return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("%w: %d", ErrUnknownSectionID, sectionID)}
		}
		if sectionID != wasm.SectionIDCustom {
			if sectionID <= lastOrdered {
				return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("%w: %s after %s",
					ErrSectionOutOfOrder, wasm.SectionIDName(sectionID), wasm.SectionIDName(lastOrdered))}
			}
			lastOrdered = sectionID
		}

		sectionSize, err := r.readUint32()
		if err != nil {
			return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("read size of %s section: %w", wasm.SectionIDName(sectionID), err)}
		}

		sectionStart := r.pos
		sec, err := decodeSectionContents(r, sectionID, sectionSize, cfg.maxNesting)
		if err != nil {
			return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("%s section: %w", wasm.SectionIDName(sectionID), err)}
		}
		if consumed := r.pos - sectionStart; consumed != uint64(sectionSize) {
			return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("%w: %s section declared %d bytes but held %d",
				ErrSectionSizeMismatch, wasm.SectionIDName(sectionID), sectionSize, consumed)}
		}
		m.Sections = append(m.Sections, sec)
	}

	funcCount, codeCount := 0, 0
	if fs := m.FunctionSection(); fs != nil {
		funcCount = len(fs.TypeIndices)
	}
	if cs := m.CodeSection(); cs != nil {
		codeCount = len(cs.Bodies)
	}
	if funcCount != codeCount {
		return nil, &DecodeError{Offset: r.pos, Err: fmt.Errorf("%w: %d function(s), %d code entr(ies)",
			ErrFunctionCodeMismatch, funcCount, codeCount)}
	}
	return m, nil
}

func decodeHeader(r *reader) error {
	magic, err := r.readBytes(4)
	if err != nil || !bytes.Equal(magic, Magic) {
		return ErrInvalidMagicNumber
	}
	v, err := r.readBytes(4)
	if err != nil || !bytes.Equal(v, version) {
		return ErrInvalidVersion
	}
	return nil
}
