package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeLimits(r *reader) (wasm.Limits, error) {
	var ret wasm.Limits
	flag, err := r.ReadByte()
	if err != nil {
		return ret, fmt.Errorf("read limits flag: %w", err)
	}
	switch flag {
	case 0x00, 0x01:
	default:
		return ret, fmt.Errorf("%w: %#x != 0x00 or 0x01 for limits flag", ErrInvalidByte, flag)
	}

	if ret.Min, err = r.readUint32(); err != nil {
		return ret, fmt.Errorf("read limits min: %w", err)
	}
	if flag == 0x01 {
		max, err := r.readUint32()
		if err != nil {
			return ret, fmt.Errorf("read limits max: %w", err)
		}
		ret.Max = &max
	}
	return ret, nil
}

func encodeLimits(l wasm.Limits) []byte {
	if l.Max == nil {
		return append([]byte{0x00}, leb128.EncodeUint32(l.Min)...)
	}
	ret := append([]byte{0x01}, leb128.EncodeUint32(l.Min)...)
	return append(ret, leb128.EncodeUint32(*l.Max)...)
}
