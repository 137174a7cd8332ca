// Package wasm models a WebAssembly 1.0 module: its sections, types,
// instructions and the index spaces that tie them together. The binary
// codec for this model lives in the wasm/binary package.
package wasm

// Module is the root aggregate: the ordered sequence of sections decoded
// from, or to be encoded into, the binary format. Known sections appear at
// most once; custom sections may repeat anywhere, and their position is
// kept so that encoding reproduces the original layout.
//
// A Module decoded by binary.DecodeModule should be treated as read-only;
// build new ones with NewModuleBuilder or by composing sections directly.
type Module struct {
	Sections []Section
}

func (m *Module) section(id SectionID) Section {
	for _, s := range m.Sections {
		if s.SectionID() == id {
			return s
		}
	}
	return nil
}

// TypeSection returns the type section, or nil when absent.
func (m *Module) TypeSection() *TypeSection {
	if s := m.section(SectionIDType); s != nil {
		return s.(*TypeSection)
	}
	return nil
}

// ImportSection returns the import section, or nil when absent.
func (m *Module) ImportSection() *ImportSection {
	if s := m.section(SectionIDImport); s != nil {
		return s.(*ImportSection)
	}
	return nil
}

// FunctionSection returns the function section, or nil when absent.
func (m *Module) FunctionSection() *FunctionSection {
	if s := m.section(SectionIDFunction); s != nil {
		return s.(*FunctionSection)
	}
	return nil
}

// TableSection returns the table section, or nil when absent.
func (m *Module) TableSection() *TableSection {
	if s := m.section(SectionIDTable); s != nil {
		return s.(*TableSection)
	}
	return nil
}

// MemorySection returns the memory section, or nil when absent.
func (m *Module) MemorySection() *MemorySection {
	if s := m.section(SectionIDMemory); s != nil {
		return s.(*MemorySection)
	}
	return nil
}

// GlobalSection returns the global section, or nil when absent.
func (m *Module) GlobalSection() *GlobalSection {
	if s := m.section(SectionIDGlobal); s != nil {
		return s.(*GlobalSection)
	}
	return nil
}

// ExportSection returns the export section, or nil when absent.
func (m *Module) ExportSection() *ExportSection {
	if s := m.section(SectionIDExport); s != nil {
		return s.(*ExportSection)
	}
	return nil
}

// StartSection returns the start section, or nil when absent.
func (m *Module) StartSection() *StartSection {
	if s := m.section(SectionIDStart); s != nil {
		return s.(*StartSection)
	}
	return nil
}

// ElementSection returns the element section, or nil when absent.
func (m *Module) ElementSection() *ElementSection {
	if s := m.section(SectionIDElement); s != nil {
		return s.(*ElementSection)
	}
	return nil
}

// CodeSection returns the code section, or nil when absent.
func (m *Module) CodeSection() *CodeSection {
	if s := m.section(SectionIDCode); s != nil {
		return s.(*CodeSection)
	}
	return nil
}

// DataSection returns the data section, or nil when absent.
func (m *Module) DataSection() *DataSection {
	if s := m.section(SectionIDData); s != nil {
		return s.(*DataSection)
	}
	return nil
}

// CustomSections returns all custom sections in module order. The slice is
// freshly allocated; the sections are shared.
func (m *Module) CustomSections() []*CustomSection {
	var ret []*CustomSection
	for _, s := range m.Sections {
		if c, ok := s.(*CustomSection); ok {
			ret = append(ret, c)
		}
	}
	return ret
}

// ImportCount returns how many imports of the given kind the module has.
// Imported entities occupy the front of each index space, so this is also
// the index of the first module-defined entity of that kind.
func (m *Module) ImportCount(kind ExternKind) (count uint32) {
	if s := m.ImportSection(); s != nil {
		for _, i := range s.Imports {
			if i.Kind == kind {
				count++
			}
		}
	}
	return
}

// ExportedFunction returns the export entry of the given name when it
// exists and refers to a function.
func (m *Module) ExportedFunction(name string) *Export {
	if s := m.ExportSection(); s != nil {
		for _, e := range s.Exports {
			if e.Name == name && e.Kind == ExternKindFunc {
				return e
			}
		}
	}
	return nil
}

// FunctionTypeAt resolves the function type of the module-defined function
// at the given position of the function section, or nil when either the
// declaration or the type it references is missing.
func (m *Module) FunctionTypeAt(pos uint32) *FunctionType {
	fns, types := m.FunctionSection(), m.TypeSection()
	if fns == nil || types == nil || pos >= uint32(len(fns.TypeIndices)) {
		return nil
	}
	if ti := fns.TypeIndices[pos]; ti < uint32(len(types.Types)) {
		return types.Types[ti]
	}
	return nil
}
