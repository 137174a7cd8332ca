package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeDataSegment(r *reader, maxNesting int) (*wasm.DataSegment, error) {
	mi, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read memory index: %w", err)
	}

	offset, err := decodeConstantExpression(r, maxNesting)
	if err != nil {
		return nil, fmt.Errorf("read offset expression: %w", err)
	}

	size, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read data size: %w", err)
	}
	buf, err := r.readBytes(uint64(size))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	data := make([]byte, size)
	copy(data, buf)

	return &wasm.DataSegment{MemoryIndex: mi, Offset: offset, Data: data}, nil
}

func encodeDataSegment(s *wasm.DataSegment) ([]byte, error) {
	offset, err := encodeExpression(s.Offset)
	if err != nil {
		return nil, err
	}
	ret := append(leb128.EncodeUint32(s.MemoryIndex), offset...)
	ret = append(ret, leb128.EncodeUint32(uint32(len(s.Data)))...)
	return append(ret, s.Data...), nil
}
