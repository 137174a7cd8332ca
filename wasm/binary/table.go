package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
)

func decodeTableType(r *reader) (*wasm.TableType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read element type: %w", err)
	}
	if b != wasm.ValueTypeFuncref {
		return nil, fmt.Errorf("%w: %#x for table element type", ErrUnknownValueType, b)
	}

	limits, err := decodeLimits(r)
	if err != nil {
		return nil, err
	}
	return &wasm.TableType{ElemType: wasm.ValueTypeFuncref, Limits: limits}, nil
}

func encodeTableType(t *wasm.TableType) []byte {
	return append([]byte{t.ElemType}, encodeLimits(t.Limits)...)
}
