package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModule_SectionAccessors(t *testing.T) {
	ts := &TypeSection{Types: []*FunctionType{{}}}
	cs := &CodeSection{Bodies: []*Code{{Body: []Instruction{End()}}}}
	m := &Module{Sections: []Section{ts, &FunctionSection{TypeIndices: []Index{0}}, cs}}

	require.Same(t, ts, m.TypeSection())
	require.Same(t, cs, m.CodeSection())
	require.Nil(t, m.ImportSection())
	require.Nil(t, m.TableSection())
	require.Nil(t, m.MemorySection())
	require.Nil(t, m.GlobalSection())
	require.Nil(t, m.ExportSection())
	require.Nil(t, m.StartSection())
	require.Nil(t, m.ElementSection())
	require.Nil(t, m.DataSection())
}

func TestModule_CustomSections(t *testing.T) {
	before := &CustomSection{Name: "before"}
	after := &CustomSection{Name: "after"}
	m := &Module{Sections: []Section{before, &TypeSection{}, after}}

	customs := m.CustomSections()
	require.Len(t, customs, 2)
	require.Same(t, before, customs[0])
	require.Same(t, after, customs[1])

	require.Nil(t, (&Module{}).CustomSections())
}

func TestModule_ImportCount(t *testing.T) {
	m := &Module{Sections: []Section{&ImportSection{Imports: []*Import{
		{Module: "env", Name: "f", Kind: ExternKindFunc},
		{Module: "env", Name: "g", Kind: ExternKindFunc},
		{Module: "env", Name: "mem", Kind: ExternKindMemory, DescMem: &MemoryType{}},
	}}}}

	require.Equal(t, uint32(2), m.ImportCount(ExternKindFunc))
	require.Equal(t, uint32(1), m.ImportCount(ExternKindMemory))
	require.Zero(t, m.ImportCount(ExternKindTable))
	require.Zero(t, (&Module{}).ImportCount(ExternKindFunc))
}

func TestModule_ExportedFunction(t *testing.T) {
	fn := &Export{Name: "run", Kind: ExternKindFunc, Index: 3}
	mem := &Export{Name: "memory", Kind: ExternKindMemory}
	m := &Module{Sections: []Section{&ExportSection{Exports: []*Export{mem, fn}}}}

	require.Same(t, fn, m.ExportedFunction("run"))
	require.Nil(t, m.ExportedFunction("memory")) // exported, but not a function
	require.Nil(t, m.ExportedFunction("missing"))
}

func TestModule_FunctionTypeAt(t *testing.T) {
	ft := &FunctionType{Params: []ValueType{ValueTypeI32}}
	m := &Module{Sections: []Section{
		&TypeSection{Types: []*FunctionType{ft}},
		&FunctionSection{TypeIndices: []Index{0, 9}},
	}}

	require.Same(t, ft, m.FunctionTypeAt(0))
	require.Nil(t, m.FunctionTypeAt(1)) // type index out of range
	require.Nil(t, m.FunctionTypeAt(2)) // position out of range
	require.Nil(t, (&Module{}).FunctionTypeAt(0))
}

func TestValueTypeName(t *testing.T) {
	require.Equal(t, "i32", ValueTypeName(ValueTypeI32))
	require.Equal(t, "f64", ValueTypeName(ValueTypeF64))
	require.Equal(t, "funcref", ValueTypeName(ValueTypeFuncref))
	require.Equal(t, "unknown", ValueTypeName(0x6f))
}

func TestSectionIDName(t *testing.T) {
	require.Equal(t, "custom", SectionIDName(SectionIDCustom))
	require.Equal(t, "code", SectionIDName(SectionIDCode))
	require.Equal(t, "unknown", SectionIDName(12))
}

func TestInstructionName(t *testing.T) {
	require.Equal(t, "unreachable", InstructionName(OpcodeUnreachable))
	require.Equal(t, "i32.add", InstructionName(OpcodeI32Add))
	require.Equal(t, "i64.extend32_s", InstructionName(OpcodeI64Extend32S))
	require.Equal(t, "i32.trunc_sat_f32_s", MiscInstructionName(OpcodeMiscI32TruncSatF32S))
}
