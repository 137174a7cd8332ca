package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
)

// 0x60 tags a function type; no other type constructor exists in this
// version of the format.
const funcTypeTag = 0x60

func decodeFunctionType(r *reader) (*wasm.FunctionType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read leading byte: %w", err)
	}
	if b != funcTypeTag {
		return nil, fmt.Errorf("%w: %#x != 0x60 for function type", ErrInvalidByte, b)
	}

	paramCount, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read parameter count: %w", err)
	}
	params, err := decodeValueTypes(r, paramCount)
	if err != nil {
		return nil, fmt.Errorf("read parameter types: %w", err)
	}

	resultCount, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read result count: %w", err)
	}
	results, err := decodeValueTypes(r, resultCount)
	if err != nil {
		return nil, fmt.Errorf("read result types: %w", err)
	}

	return &wasm.FunctionType{Params: params, Results: results}, nil
}

func encodeFunctionType(ft *wasm.FunctionType) []byte {
	ret := append([]byte{funcTypeTag}, encodeValueTypes(ft.Params)...)
	return append(ret, encodeValueTypes(ft.Results)...)
}
