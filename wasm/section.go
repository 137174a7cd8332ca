package wasm

// SectionID identifies a section kind. IDs 1..11 are the known kinds and,
// when present, must appear in ascending ID order; ID 0 marks a custom
// section, which may repeat and appear anywhere.
type SectionID = byte

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDImport   SectionID = 2
	SectionIDFunction SectionID = 3
	SectionIDTable    SectionID = 4
	SectionIDMemory   SectionID = 5
	SectionIDGlobal   SectionID = 6
	SectionIDExport   SectionID = 7
	SectionIDStart    SectionID = 8
	SectionIDElement  SectionID = 9
	SectionIDCode     SectionID = 10
	SectionIDData     SectionID = 11
)

// SectionIDName returns the name of the section kind, e.g. "type".
func SectionIDName(id SectionID) string {
	switch id {
	case SectionIDCustom:
		return "custom"
	case SectionIDType:
		return "type"
	case SectionIDImport:
		return "import"
	case SectionIDFunction:
		return "function"
	case SectionIDTable:
		return "table"
	case SectionIDMemory:
		return "memory"
	case SectionIDGlobal:
		return "global"
	case SectionIDExport:
		return "export"
	case SectionIDStart:
		return "start"
	case SectionIDElement:
		return "element"
	case SectionIDCode:
		return "code"
	case SectionIDData:
		return "data"
	}
	return "unknown"
}

// Section is one record of a module. Module keeps sections in the order
// they were decoded or added, so re-encoding preserves the position of
// custom sections relative to their neighbors.
type Section interface {
	SectionID() SectionID
}

// CustomSection is a named, uninterpreted byte payload.
type CustomSection struct {
	Name string
	Data []byte
}

// TypeSection holds the module's function types.
type TypeSection struct {
	Types []*FunctionType
}

// ImportSection holds the module's imports.
type ImportSection struct {
	Imports []*Import
}

// FunctionSection declares one type section index per module-defined
// function; the body of the i-th entry is the i-th entry of the code
// section.
type FunctionSection struct {
	TypeIndices []Index
}

// TableSection holds the module's table definitions.
type TableSection struct {
	Tables []*TableType
}

// MemorySection holds the module's linear memory definitions.
type MemorySection struct {
	Memories []*MemoryType
}

// GlobalSection holds the module's global definitions.
type GlobalSection struct {
	Globals []*Global
}

// ExportSection holds the module's exports.
type ExportSection struct {
	Exports []*Export
}

// StartSection names the function invoked when the module is instantiated.
type StartSection struct {
	FuncIndex Index
}

// ElementSection holds the module's table initializers.
type ElementSection struct {
	Segments []*ElementSegment
}

// CodeSection holds the bodies of the functions declared by the function
// section, in the same order.
type CodeSection struct {
	Bodies []*Code
}

// DataSection holds the module's memory initializers.
type DataSection struct {
	Segments []*DataSegment
}

func (s *CustomSection) SectionID() SectionID   { return SectionIDCustom }
func (s *TypeSection) SectionID() SectionID     { return SectionIDType }
func (s *ImportSection) SectionID() SectionID   { return SectionIDImport }
func (s *FunctionSection) SectionID() SectionID { return SectionIDFunction }
func (s *TableSection) SectionID() SectionID    { return SectionIDTable }
func (s *MemorySection) SectionID() SectionID   { return SectionIDMemory }
func (s *GlobalSection) SectionID() SectionID   { return SectionIDGlobal }
func (s *ExportSection) SectionID() SectionID   { return SectionIDExport }
func (s *StartSection) SectionID() SectionID    { return SectionIDStart }
func (s *ElementSection) SectionID() SectionID  { return SectionIDElement }
func (s *CodeSection) SectionID() SectionID     { return SectionIDCode }
func (s *DataSection) SectionID() SectionID     { return SectionIDData }
