package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeExport(r *reader) (*wasm.Export, error) {
	e := &wasm.Export{}
	var err error
	if e.Name, err = r.readName(); err != nil {
		return nil, fmt.Errorf("read export name: %w", err)
	}

	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read export kind: %w", err)
	}

	e.Kind = b
	switch e.Kind {
	case wasm.ExternKindFunc, wasm.ExternKindTable, wasm.ExternKindMemory, wasm.ExternKindGlobal:
		if e.Index, err = r.readUint32(); err != nil {
			return nil, fmt.Errorf("read export index: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %#x for export kind", ErrInvalidByte, b)
	}
	return e, nil
}

func encodeExport(e *wasm.Export) []byte {
	ret := append(encodeName(e.Name), e.Kind)
	return append(ret, leb128.EncodeUint32(e.Index)...)
}
