package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
)

func decodeGlobalType(r *reader) (wasm.GlobalType, error) {
	var ret wasm.GlobalType
	vt, err := decodeValueType(r)
	if err != nil {
		return ret, fmt.Errorf("read global value type: %w", err)
	}
	ret.ValType = vt

	b, err := r.ReadByte()
	if err != nil {
		return ret, fmt.Errorf("read global mutability: %w", err)
	}
	switch b {
	case 0x00:
	case 0x01:
		ret.Mutable = true
	default:
		return ret, fmt.Errorf("%w: %#x != 0x00 or 0x01 for mutability", ErrInvalidByte, b)
	}
	return ret, nil
}

func encodeGlobalType(gt wasm.GlobalType) []byte {
	var mut byte
	if gt.Mutable {
		mut = 0x01
	}
	return []byte{gt.ValType, mut}
}

func decodeGlobal(r *reader, maxNesting int) (*wasm.Global, error) {
	gt, err := decodeGlobalType(r)
	if err != nil {
		return nil, err
	}
	init, err := decodeConstantExpression(r, maxNesting)
	if err != nil {
		return nil, fmt.Errorf("read init expression: %w", err)
	}
	return &wasm.Global{Type: gt, Init: init}, nil
}

func encodeGlobal(g *wasm.Global) ([]byte, error) {
	init, err := encodeExpression(g.Init)
	if err != nil {
		return nil, err
	}
	return append(encodeGlobalType(g.Type), init...), nil
}
