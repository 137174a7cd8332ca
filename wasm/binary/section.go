package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/leb128"
)

// decodeSectionContents reads the payload of one section. The caller has
// already read the discriminant and declared size, and verifies afterwards
// that exactly size bytes were consumed.
func decodeSectionContents(r *reader, id wasm.SectionID, size uint32, maxNesting int) (wasm.Section, error) {
	switch id {
	case wasm.SectionIDCustom:
		return decodeCustomSection(r, size)
	case wasm.SectionIDType:
		return decodeTypeSection(r)
	case wasm.SectionIDImport:
		return decodeImportSection(r)
	case wasm.SectionIDFunction:
		return decodeFunctionSection(r)
	case wasm.SectionIDTable:
		return decodeTableSection(r)
	case wasm.SectionIDMemory:
		return decodeMemorySection(r)
	case wasm.SectionIDGlobal:
		return decodeGlobalSection(r, maxNesting)
	case wasm.SectionIDExport:
		return decodeExportSection(r)
	case wasm.SectionIDStart:
		return decodeStartSection(r)
	case wasm.SectionIDElement:
		return decodeElementSection(r, maxNesting)
	case wasm.SectionIDCode:
		return decodeCodeSection(r, maxNesting)
	case wasm.SectionIDData:
		return decodeDataSection(r, maxNesting)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSectionID, id)
	}
}

func decodeCustomSection(r *reader, size uint32) (*wasm.CustomSection, error) {
	nameStart := r.pos
	name, err := r.readName()
	if err != nil {
		return nil, fmt.Errorf("read custom section name: %w", err)
	}
	nameLen := r.pos - nameStart
	if nameLen > uint64(size) {
		return nil, fmt.Errorf("%w: custom section name overruns section", ErrSectionSizeMismatch)
	}

	buf, err := r.readBytes(uint64(size) - nameLen)
	if err != nil {
		return nil, fmt.Errorf("read custom section data: %w", err)
	}
	data := make([]byte, len(buf))
	copy(data, buf)
	return &wasm.CustomSection{Name: name, Data: data}, nil
}

func decodeTypeSection(r *reader) (*wasm.TypeSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read type count: %w", err)
	}
	ret := &wasm.TypeSection{Types: make([]*wasm.FunctionType, count)}
	for i := range ret.Types {
		if ret.Types[i], err = decodeFunctionType(r); err != nil {
			return nil, fmt.Errorf("read type[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeImportSection(r *reader) (*wasm.ImportSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read import count: %w", err)
	}
	ret := &wasm.ImportSection{Imports: make([]*wasm.Import, count)}
	for i := range ret.Imports {
		if ret.Imports[i], err = decodeImport(r); err != nil {
			return nil, fmt.Errorf("read import[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeFunctionSection(r *reader) (*wasm.FunctionSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read function count: %w", err)
	}
	ret := &wasm.FunctionSection{TypeIndices: make([]wasm.Index, count)}
	for i := range ret.TypeIndices {
		if ret.TypeIndices[i], err = r.readUint32(); err != nil {
			return nil, fmt.Errorf("read function[%d] type index: %w", i, err)
		}
	}
	return ret, nil
}

func decodeTableSection(r *reader) (*wasm.TableSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read table count: %w", err)
	}
	ret := &wasm.TableSection{Tables: make([]*wasm.TableType, count)}
	for i := range ret.Tables {
		if ret.Tables[i], err = decodeTableType(r); err != nil {
			return nil, fmt.Errorf("read table[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeMemorySection(r *reader) (*wasm.MemorySection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read memory count: %w", err)
	}
	ret := &wasm.MemorySection{Memories: make([]*wasm.MemoryType, count)}
	for i := range ret.Memories {
		if ret.Memories[i], err = decodeMemoryType(r); err != nil {
			return nil, fmt.Errorf("read memory[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeGlobalSection(r *reader, maxNesting int) (*wasm.GlobalSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read global count: %w", err)
	}
	ret := &wasm.GlobalSection{Globals: make([]*wasm.Global, count)}
	for i := range ret.Globals {
		if ret.Globals[i], err = decodeGlobal(r, maxNesting); err != nil {
			return nil, fmt.Errorf("read global[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeExportSection(r *reader) (*wasm.ExportSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read export count: %w", err)
	}
	ret := &wasm.ExportSection{Exports: make([]*wasm.Export, count)}
	for i := range ret.Exports {
		if ret.Exports[i], err = decodeExport(r); err != nil {
			return nil, fmt.Errorf("read export[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeStartSection(r *reader) (*wasm.StartSection, error) {
	idx, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read start function index: %w", err)
	}
	return &wasm.StartSection{FuncIndex: idx}, nil
}

func decodeElementSection(r *reader, maxNesting int) (*wasm.ElementSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read element segment count: %w", err)
	}
	ret := &wasm.ElementSection{Segments: make([]*wasm.ElementSegment, count)}
	for i := range ret.Segments {
		if ret.Segments[i], err = decodeElementSegment(r, maxNesting); err != nil {
			return nil, fmt.Errorf("read element segment[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeCodeSection(r *reader, maxNesting int) (*wasm.CodeSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read code entry count: %w", err)
	}
	ret := &wasm.CodeSection{Bodies: make([]*wasm.Code, count)}
	for i := range ret.Bodies {
		if ret.Bodies[i], err = decodeCode(r, maxNesting); err != nil {
			return nil, fmt.Errorf("read code entry[%d]: %w", i, err)
		}
	}
	return ret, nil
}

func decodeDataSection(r *reader, maxNesting int) (*wasm.DataSection, error) {
	count, err := r.readCount()
	if err != nil {
		return nil, fmt.Errorf("read data segment count: %w", err)
	}
	ret := &wasm.DataSection{Segments: make([]*wasm.DataSegment, count)}
	for i := range ret.Segments {
		if ret.Segments[i], err = decodeDataSegment(r, maxNesting); err != nil {
			return nil, fmt.Errorf("read data segment[%d]: %w", i, err)
		}
	}
	return ret, nil
}

// encodeSection writes the discriminant, the recomputed content length and
// the contents. Cached lengths are never reused: the length always reflects
// the section as held in memory.
func encodeSection(s wasm.Section) ([]byte, error) {
	contents, err := encodeSectionContents(s)
	if err != nil {
		return nil, err
	}
	ret := append([]byte{s.SectionID()}, leb128.EncodeUint32(uint32(len(contents)))...)
	return append(ret, contents...), nil
}

func encodeSectionContents(s wasm.Section) ([]byte, error) {
	switch sec := s.(type) {
	case *wasm.CustomSection:
		return append(encodeName(sec.Name), sec.Data...), nil
	case *wasm.TypeSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Types)))
		for _, t := range sec.Types {
			ret = append(ret, encodeFunctionType(t)...)
		}
		return ret, nil
	case *wasm.ImportSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Imports)))
		for _, i := range sec.Imports {
			buf, err := encodeImport(i)
			if err != nil {
				return nil, err
			}
			ret = append(ret, buf...)
		}
		return ret, nil
	case *wasm.FunctionSection:
		ret := leb128.EncodeUint32(uint32(len(sec.TypeIndices)))
		for _, ti := range sec.TypeIndices {
			ret = append(ret, leb128.EncodeUint32(ti)...)
		}
		return ret, nil
	case *wasm.TableSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Tables)))
		for _, t := range sec.Tables {
			ret = append(ret, encodeTableType(t)...)
		}
		return ret, nil
	case *wasm.MemorySection:
		ret := leb128.EncodeUint32(uint32(len(sec.Memories)))
		for _, m := range sec.Memories {
			ret = append(ret, encodeMemoryType(m)...)
		}
		return ret, nil
	case *wasm.GlobalSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Globals)))
		for _, g := range sec.Globals {
			buf, err := encodeGlobal(g)
			if err != nil {
				return nil, err
			}
			ret = append(ret, buf...)
		}
		return ret, nil
	case *wasm.ExportSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Exports)))
		for _, e := range sec.Exports {
			ret = append(ret, encodeExport(e)...)
		}
		return ret, nil
	case *wasm.StartSection:
		return leb128.EncodeUint32(sec.FuncIndex), nil
	case *wasm.ElementSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Segments)))
		for _, seg := range sec.Segments {
			buf, err := encodeElementSegment(seg)
			if err != nil {
				return nil, err
			}
			ret = append(ret, buf...)
		}
		return ret, nil
	case *wasm.CodeSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Bodies)))
		for _, c := range sec.Bodies {
			buf, err := encodeCode(c)
			if err != nil {
				return nil, err
			}
			ret = append(ret, buf...)
		}
		return ret, nil
	case *wasm.DataSection:
		ret := leb128.EncodeUint32(uint32(len(sec.Segments)))
		for _, seg := range sec.Segments {
			buf, err := encodeDataSegment(seg)
			if err != nil {
				return nil, err
			}
			ret = append(ret, buf...)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("%w: unsupported section type %T", ErrEncodeInvariant, s)
	}
}
