package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeElementSegment(r *reader, maxNesting int) (*wasm.ElementSegment, error) {
	ti, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read table index: %w", err)
	}

	offset, err := decodeConstantExpression(r, maxNesting)
	if err != nil {
		return nil, fmt.Errorf("read offset expression: %w", err)
	}

	numInit, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read function index count: %w", err)
	}
	init := make([]wasm.Index, numInit)
	for i := range init {
		if init[i], err = r.readUint32(); err != nil {
			return nil, fmt.Errorf("read function index: %w", err)
		}
	}

	return &wasm.ElementSegment{TableIndex: ti, Offset: offset, Init: init}, nil
}

func encodeElementSegment(s *wasm.ElementSegment) ([]byte, error) {
	offset, err := encodeExpression(s.Offset)
	if err != nil {
		return nil, err
	}
	ret := append(leb128.EncodeUint32(s.TableIndex), offset...)
	ret = append(ret, leb128.EncodeUint32(uint32(len(s.Init)))...)
	for _, fi := range s.Init {
		ret = append(ret, leb128.EncodeUint32(fi)...)
	}
	return ret, nil
}
