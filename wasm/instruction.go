package wasm

// BlockType is the signature of a structured control instruction (block,
// loop or if), decoded from the signed 33-bit form: a negative value is
// either the empty signature or a single result value type, a non-negative
// value is a type section index.
type BlockType int64

const (
	BlockTypeEmpty BlockType = -64 // 0x40
	BlockTypeI32   BlockType = -1  // 0x7f
	BlockTypeI64   BlockType = -2  // 0x7e
	BlockTypeF32   BlockType = -3  // 0x7d
	BlockTypeF64   BlockType = -4  // 0x7c
)

// BlockTypeFuncType returns the block type selecting the function type at
// the given type section index.
func BlockTypeFuncType(i Index) BlockType {
	return BlockType(int64(i))
}

// Instruction is one decoded instruction. Opcode selects which operand
// fields are meaningful; all others are zero. The mapping from opcode to
// operand shape is fixed by the binary format and enforced by the codec.
type Instruction struct {
	Opcode Opcode

	// Misc is the secondary opcode when Opcode == OpcodeMiscPrefix.
	Misc OpcodeMisc

	// Block is the signature of block, loop and if.
	Block BlockType

	// Index is the label depth of br and br_if, the function index of
	// call, the type index of call_indirect, and the local or global index
	// of the variable instructions.
	Index Index

	// Targets and Default are the branch table and fallback label depths
	// of br_table.
	Targets []Index
	Default Index

	// Align is the alignment exponent and Offset the static byte offset of
	// the memory load and store instructions.
	Align  uint32
	Offset uint32

	// Constant payloads of the four const instructions.
	I32 int32
	I64 int64
	F32 float32
	F64 float64
}

// End is the block terminator instruction. Function bodies and initializer
// expressions carry it explicitly as their last element.
func End() Instruction {
	return Instruction{Opcode: OpcodeEnd}
}

// I32Const returns an i32.const instruction with the given payload.
func I32Const(v int32) Instruction {
	return Instruction{Opcode: OpcodeI32Const, I32: v}
}

// I64Const returns an i64.const instruction with the given payload.
func I64Const(v int64) Instruction {
	return Instruction{Opcode: OpcodeI64Const, I64: v}
}

// F32Const returns an f32.const instruction with the given payload.
func F32Const(v float32) Instruction {
	return Instruction{Opcode: OpcodeF32Const, F32: v}
}

// F64Const returns an f64.const instruction with the given payload.
func F64Const(v float64) Instruction {
	return Instruction{Opcode: OpcodeF64Const, F64: v}
}

// GlobalGet returns a global.get instruction for the given global index.
func GlobalGet(i Index) Instruction {
	return Instruction{Opcode: OpcodeGlobalGet, Index: i}
}

// ConstExpr builds the canonical one-instruction initializer expression:
// the given instruction followed by end.
func ConstExpr(instr Instruction) []Instruction {
	return []Instruction{instr, End()}
}
