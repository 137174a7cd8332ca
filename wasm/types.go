package wasm

// Index is a 32-bit offset into one of a module's index spaces: types,
// functions, tables, memories, globals, locals or labels. Which space is
// meant follows from context.
type Index = uint32

// ValueType is a single-byte discriminant for the types a value can take.
// The set is closed: any other byte where a value type is expected fails
// decoding.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
	// ValueTypeFuncref is only valid as a table element type.
	ValueTypeFuncref ValueType = 0x70
)

// ValueTypeName returns the type name in text-format convention, e.g. "i32".
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	}
	return "unknown"
}

// FunctionType is an entry of the type section: the parameter and result
// types of a function. Referenced by index from the function section and
// from function imports.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

// Limits bounds the size of a table or memory: a required minimum and an
// optional maximum, both in units of the owning entity (elements or pages).
type Limits struct {
	Min uint32
	Max *uint32
}

// TableType describes a table: its element type and size bounds.
type TableType struct {
	ElemType ValueType
	Limits   Limits
}

// MemoryType describes a linear memory: its size bounds in pages.
type MemoryType struct {
	Limits Limits
}

// GlobalType describes a global variable: its value type and mutability.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// Global is an entry of the global section: a type plus the initializer
// expression producing the initial value. Init must end with OpcodeEnd.
type Global struct {
	Type GlobalType
	Init []Instruction
}

// ExternKind discriminates what an import or export refers to.
type ExternKind = byte

const (
	ExternKindFunc   ExternKind = 0x00
	ExternKindTable  ExternKind = 0x01
	ExternKindMemory ExternKind = 0x02
	ExternKindGlobal ExternKind = 0x03
)

// ExternKindName returns the text-format name of the kind, e.g. "func".
func ExternKindName(k ExternKind) string {
	switch k {
	case ExternKindFunc:
		return "func"
	case ExternKindTable:
		return "table"
	case ExternKindMemory:
		return "memory"
	case ExternKindGlobal:
		return "global"
	}
	return "unknown"
}

// Import is an entry of the import section. Exactly one of the Desc fields
// is meaningful, selected by Kind.
type Import struct {
	Module string
	Name   string
	Kind   ExternKind
	// DescFunc is the type section index of the imported function.
	DescFunc Index
	// DescTable is the type of the imported table.
	DescTable *TableType
	// DescMem is the type of the imported memory.
	DescMem *MemoryType
	// DescGlobal is the type of the imported global.
	DescGlobal *GlobalType
}

// Export is an entry of the export section: a unique name and the index of
// the exported entity in the index space chosen by Kind.
type Export struct {
	Name  string
	Kind  ExternKind
	Index Index
}

// ElementSegment initializes a run of a table: function indices written at
// Offset. Offset must end with OpcodeEnd.
type ElementSegment struct {
	TableIndex Index
	Offset     []Instruction
	Init       []Index
}

// DataSegment initializes a run of a linear memory: raw bytes written at
// Offset. Offset must end with OpcodeEnd.
type DataSegment struct {
	MemoryIndex Index
	Offset      []Instruction
	Data        []byte
}

// LocalEntry is one run-length group of a function body's local
// declarations: Count locals of the same Type. Groups are kept as decoded
// rather than flattened so that re-encoding reproduces the original bytes.
type LocalEntry struct {
	Count uint32
	Type  ValueType
}

// Code is an entry of the code section: the locals and body of the
// function declared at the same position of the function section. Body
// holds the full instruction sequence including the terminating OpcodeEnd.
type Code struct {
	Locals []LocalEntry
	Body   []Instruction
}
