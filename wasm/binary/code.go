package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeCode(r *reader, maxNesting int) (*wasm.Code, error) {
	size, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read code entry size: %w", err)
	}
	start := r.pos

	localCount, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read local group count: %w", err)
	}
	var locals []wasm.LocalEntry
	for i := uint32(0); i < localCount; i++ {
		n, err := r.readUint32()
		if err != nil {
			return nil, fmt.Errorf("read local group run length: %w", err)
		}
		vt, err := decodeValueType(r)
		if err != nil {
			return nil, fmt.Errorf("read local group type: %w", err)
		}
		locals = append(locals, wasm.LocalEntry{Count: n, Type: vt})
	}

	body, err := decodeExpression(r, maxNesting)
	if err != nil {
		return nil, fmt.Errorf("read function body: %w", err)
	}

	if consumed := r.pos - start; consumed != uint64(size) {
		return nil, fmt.Errorf("%w: code entry declared %d bytes but held %d", ErrSectionSizeMismatch, size, consumed)
	}
	return &wasm.Code{Locals: locals, Body: body}, nil
}

func encodeCode(c *wasm.Code) ([]byte, error) {
	contents := leb128.EncodeUint32(uint32(len(c.Locals)))
	for _, l := range c.Locals {
		contents = append(contents, leb128.EncodeUint32(l.Count)...)
		contents = append(contents, l.Type)
	}

	body, err := encodeExpression(c.Body)
	if err != nil {
		return nil, err
	}
	contents = append(contents, body...)

	return append(leb128.EncodeUint32(uint32(len(contents))), contents...), nil
}
