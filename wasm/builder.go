package wasm

// ModuleBuilder assembles a Module incrementally. Entities are collected
// per kind and laid out in canonical section order by Build, with custom
// sections appended last in the order they were added. The builder does not
// validate: indices and types are emitted as given, and semantic checks are
// left to a validator or the consuming runtime.
type ModuleBuilder struct {
	types    []*FunctionType
	imports  []*Import
	typeIdxs []Index
	tables   []*TableType
	memories []*MemoryType
	globals  []*Global
	exports  []*Export
	start    *Index
	elements []*ElementSegment
	code     []*Code
	data     []*DataSegment
	customs  []*CustomSection
}

// NewModuleBuilder returns an empty builder.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

// AddType appends a function type and returns its type index.
func (b *ModuleBuilder) AddType(ft *FunctionType) Index {
	b.types = append(b.types, ft)
	return Index(len(b.types) - 1)
}

// AddImport appends an import entry.
func (b *ModuleBuilder) AddImport(i *Import) *ModuleBuilder {
	b.imports = append(b.imports, i)
	return b
}

// AddFunction declares a function of the type at typeIndex with the given
// body, and returns its position among module-defined functions. The
// function index space offsets this position by the number of imported
// functions.
func (b *ModuleBuilder) AddFunction(typeIndex Index, code *Code) Index {
	b.typeIdxs = append(b.typeIdxs, typeIndex)
	b.code = append(b.code, code)
	return Index(len(b.typeIdxs) - 1)
}

// AddTable appends a table definition.
func (b *ModuleBuilder) AddTable(t *TableType) *ModuleBuilder {
	b.tables = append(b.tables, t)
	return b
}

// AddMemory appends a linear memory definition.
func (b *ModuleBuilder) AddMemory(m *MemoryType) *ModuleBuilder {
	b.memories = append(b.memories, m)
	return b
}

// AddGlobal appends a global definition and returns its position among
// module-defined globals.
func (b *ModuleBuilder) AddGlobal(g *Global) Index {
	b.globals = append(b.globals, g)
	return Index(len(b.globals) - 1)
}

// AddExport appends an export entry.
func (b *ModuleBuilder) AddExport(e *Export) *ModuleBuilder {
	b.exports = append(b.exports, e)
	return b
}

// WithStart sets the start function index.
func (b *ModuleBuilder) WithStart(funcIndex Index) *ModuleBuilder {
	b.start = &funcIndex
	return b
}

// AddElementSegment appends a table initializer.
func (b *ModuleBuilder) AddElementSegment(s *ElementSegment) *ModuleBuilder {
	b.elements = append(b.elements, s)
	return b
}

// AddDataSegment appends a memory initializer.
func (b *ModuleBuilder) AddDataSegment(s *DataSegment) *ModuleBuilder {
	b.data = append(b.data, s)
	return b
}

// AddCustomSection appends a named custom section.
func (b *ModuleBuilder) AddCustomSection(name string, data []byte) *ModuleBuilder {
	b.customs = append(b.customs, &CustomSection{Name: name, Data: data})
	return b
}

// Build materializes the Module. Only non-empty sections are emitted, in
// canonical ID order, so the result encodes without reordering.
func (b *ModuleBuilder) Build() *Module {
	m := &Module{}
	if len(b.types) > 0 {
		m.Sections = append(m.Sections, &TypeSection{Types: b.types})
	}
	if len(b.imports) > 0 {
		m.Sections = append(m.Sections, &ImportSection{Imports: b.imports})
	}
	if len(b.typeIdxs) > 0 {
		m.Sections = append(m.Sections, &FunctionSection{TypeIndices: b.typeIdxs})
	}
	if len(b.tables) > 0 {
		m.Sections = append(m.Sections, &TableSection{Tables: b.tables})
	}
	if len(b.memories) > 0 {
		m.Sections = append(m.Sections, &MemorySection{Memories: b.memories})
	}
	if len(b.globals) > 0 {
		m.Sections = append(m.Sections, &GlobalSection{Globals: b.globals})
	}
	if len(b.exports) > 0 {
		m.Sections = append(m.Sections, &ExportSection{Exports: b.exports})
	}
	if b.start != nil {
		m.Sections = append(m.Sections, &StartSection{FuncIndex: *b.start})
	}
	if len(b.elements) > 0 {
		m.Sections = append(m.Sections, &ElementSection{Segments: b.elements})
	}
	if len(b.code) > 0 {
		m.Sections = append(m.Sections, &CodeSection{Bodies: b.code})
	}
	if len(b.data) > 0 {
		m.Sections = append(m.Sections, &DataSection{Segments: b.data})
	}
	for _, c := range b.customs {
		m.Sections = append(m.Sections, c)
	}
	return m
}
