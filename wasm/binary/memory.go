package binary

import (
	"github.com/wabin/wabin/wasm"
)

func decodeMemoryType(r *reader) (*wasm.MemoryType, error) {
	limits, err := decodeLimits(r)
	if err != nil {
		return nil, err
	}
	return &wasm.MemoryType{Limits: limits}, nil
}

func encodeMemoryType(m *wasm.MemoryType) []byte {
	return encodeLimits(m.Limits)
}
