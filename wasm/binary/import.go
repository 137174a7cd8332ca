package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

func decodeImport(r *reader) (*wasm.Import, error) {
	i := &wasm.Import{}
	var err error
	if i.Module, err = r.readName(); err != nil {
		return nil, fmt.Errorf("read import module: %w", err)
	}
	if i.Name, err = r.readName(); err != nil {
		return nil, fmt.Errorf("read import name: %w", err)
	}

	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read import kind: %w", err)
	}

	i.Kind = b
	switch i.Kind {
	case wasm.ExternKindFunc:
		if i.DescFunc, err = r.readUint32(); err != nil {
			return nil, fmt.Errorf("read imported function type index: %w", err)
		}
	case wasm.ExternKindTable:
		if i.DescTable, err = decodeTableType(r); err != nil {
			return nil, fmt.Errorf("read imported table type: %w", err)
		}
	case wasm.ExternKindMemory:
		if i.DescMem, err = decodeMemoryType(r); err != nil {
			return nil, fmt.Errorf("read imported memory type: %w", err)
		}
	case wasm.ExternKindGlobal:
		gt, err := decodeGlobalType(r)
		if err != nil {
			return nil, fmt.Errorf("read imported global type: %w", err)
		}
		i.DescGlobal = &gt
	default:
		return nil, fmt.Errorf("%w: %#x for import kind", ErrInvalidByte, b)
	}
	return i, nil
}

func encodeImport(i *wasm.Import) ([]byte, error) {
	ret := append(encodeName(i.Module), encodeName(i.Name)...)
	ret = append(ret, i.Kind)
	switch i.Kind {
	case wasm.ExternKindFunc:
		ret = append(ret, leb128.EncodeUint32(i.DescFunc)...)
	case wasm.ExternKindTable:
		if i.DescTable == nil {
			return nil, fmt.Errorf("%w: import %q.%q has no table descriptor", ErrEncodeInvariant, i.Module, i.Name)
		}
		ret = append(ret, encodeTableType(i.DescTable)...)
	case wasm.ExternKindMemory:
		if i.DescMem == nil {
			return nil, fmt.Errorf("%w: import %q.%q has no memory descriptor", ErrEncodeInvariant, i.Module, i.Name)
		}
		ret = append(ret, encodeMemoryType(i.DescMem)...)
	case wasm.ExternKindGlobal:
		if i.DescGlobal == nil {
			return nil, fmt.Errorf("%w: import %q.%q has no global descriptor", ErrEncodeInvariant, i.Module, i.Name)
		}
		ret = append(ret, encodeGlobalType(*i.DescGlobal)...)
	default:
		return nil, fmt.Errorf("%w: import %q.%q has kind %#x", ErrEncodeInvariant, i.Module, i.Name, i.Kind)
	}
	return ret, nil
}
