package binary

import (
	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeValueType(r *reader) (wasm.ValueType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch vt := wasm.ValueType(b); vt {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return vt, nil
	default:
		return 0, ErrUnknownValueType
	}
}

func decodeValueTypes(r *reader, num uint32) ([]wasm.ValueType, error) {
	if num == 0 {
		return nil, nil
	}
	ret := make([]wasm.ValueType, num)
	for i := range ret {
		vt, err := decodeValueType(r)
		if err != nil {
			return nil, err
		}
		ret[i] = vt
	}
	return ret, nil
}

func encodeValueTypes(vts []wasm.ValueType) []byte {
	ret := leb128.EncodeUint32(uint32(len(vts)))
	return append(ret, vts...)
}

// encodeName writes the size-prefixed UTF-8 bytes of the string.
func encodeName(s string) []byte {
	return append(leb128.EncodeUint32(uint32(len(s))), s...)
}
