package binary

import (
	"fmt"

	"github.com/wabin/wabin/wasm"
	"github.com/wabin/wabin/wasm/ieee754"
	"github.com/wabin/wabin/wasm/leb128"
)

// operandShape classifies what follows an opcode byte. Decode and encode
// dispatch on this table, so the two stay symmetric by construction.
type operandShape byte

const (
	// shapeUnknown marks bytes outside the opcode space.
	shapeUnknown operandShape = iota
	shapeNone
	shapeBlockType
	shapeIndex
	shapeBrTable
	// shapeCallIndirect is a type index followed by the reserved zero byte.
	shapeCallIndirect
	shapeMemArg
	// shapeReservedZero is the reserved zero byte of memory.size and
	// memory.grow.
	shapeReservedZero
	shapeI32Const
	shapeI64Const
	shapeF32Const
	shapeF64Const
	// shapeMisc is the varint secondary opcode after OpcodeMiscPrefix.
	shapeMisc
)

var operandShapes = buildOperandShapes()

func buildOperandShapes() (table [256]operandShape) {
	set := func(s operandShape, ops ...wasm.Opcode) {
		for _, op := range ops {
			table[op] = s
		}
	}
	setRange := func(s operandShape, from, to wasm.Opcode) {
		for op := int(from); op <= int(to); op++ {
			table[op] = s
		}
	}

	set(shapeNone,
		wasm.OpcodeUnreachable, wasm.OpcodeNop, wasm.OpcodeElse, wasm.OpcodeEnd,
		wasm.OpcodeReturn, wasm.OpcodeDrop, wasm.OpcodeSelect)
	set(shapeBlockType, wasm.OpcodeBlock, wasm.OpcodeLoop, wasm.OpcodeIf)
	set(shapeIndex,
		wasm.OpcodeBr, wasm.OpcodeBrIf, wasm.OpcodeCall,
		wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeLocalTee,
		wasm.OpcodeGlobalGet, wasm.OpcodeGlobalSet)
	set(shapeBrTable, wasm.OpcodeBrTable)
	set(shapeCallIndirect, wasm.OpcodeCallIndirect)
	setRange(shapeMemArg, wasm.OpcodeI32Load, wasm.OpcodeI64Store32)
	set(shapeReservedZero, wasm.OpcodeMemorySize, wasm.OpcodeMemoryGrow)
	set(shapeI32Const, wasm.OpcodeI32Const)
	set(shapeI64Const, wasm.OpcodeI64Const)
	set(shapeF32Const, wasm.OpcodeF32Const)
	set(shapeF64Const, wasm.OpcodeF64Const)
	// i32.eqz 0x45 through f64.reinterpret_i64 0xbf take no operands.
	setRange(shapeNone, wasm.OpcodeI32Eqz, wasm.OpcodeF64ReinterpretI64)
	setRange(shapeNone, wasm.OpcodeI32Extend8S, wasm.OpcodeI64Extend32S)
	set(shapeMisc, wasm.OpcodeMiscPrefix)
	return
}

// decodeInstruction reads exactly one instruction: the opcode byte and
// whatever operands its shape prescribes.
func decodeInstruction(r *reader) (wasm.Instruction, error) {
	instr := wasm.Instruction{}
	op, err := r.ReadByte()
	if err != nil {
		return instr, err
	}
	instr.Opcode = op

	switch operandShapes[op] {
	case shapeUnknown:
		return instr, fmt.Errorf("%w: %#x", ErrUnknownOpcode, op)
	case shapeNone:
	case shapeBlockType:
		bt, _, err := leb128.DecodeInt33AsInt64(r)
		if err != nil {
			return instr, fmt.Errorf("read block type of %s: %w", wasm.InstructionName(op), err)
		}
		switch blockType := wasm.BlockType(bt); blockType {
		case wasm.BlockTypeEmpty, wasm.BlockTypeI32, wasm.BlockTypeI64, wasm.BlockTypeF32, wasm.BlockTypeF64:
			instr.Block = blockType
		default:
			if bt < 0 {
				return instr, fmt.Errorf("%w: block type %d", ErrUnknownValueType, bt)
			}
			instr.Block = blockType
		}
	case shapeIndex:
		if instr.Index, err = r.readUint32(); err != nil {
			return instr, fmt.Errorf("read index of %s: %w", wasm.InstructionName(op), err)
		}
	case shapeBrTable:
		count, err := r.readCount()
		if err != nil {
			return instr, fmt.Errorf("read br_table target count: %w", err)
		}
		instr.Targets = make([]wasm.Index, count)
		for i := range instr.Targets {
			if instr.Targets[i], err = r.readUint32(); err != nil {
				return instr, fmt.Errorf("read br_table target: %w", err)
			}
		}
		if instr.Default, err = r.readUint32(); err != nil {
			return instr, fmt.Errorf("read br_table default target: %w", err)
		}
	case shapeCallIndirect:
		if instr.Index, err = r.readUint32(); err != nil {
			return instr, fmt.Errorf("read call_indirect type index: %w", err)
		}
		if err = r.readZeroByte(); err != nil {
			return instr, fmt.Errorf("read call_indirect reserved byte: %w", err)
		}
	case shapeMemArg:
		if instr.Align, err = r.readUint32(); err != nil {
			return instr, fmt.Errorf("read alignment of %s: %w", wasm.InstructionName(op), err)
		}
		if instr.Offset, err = r.readUint32(); err != nil {
			return instr, fmt.Errorf("read offset of %s: %w", wasm.InstructionName(op), err)
		}
	case shapeReservedZero:
		if err = r.readZeroByte(); err != nil {
			return instr, fmt.Errorf("read reserved byte of %s: %w", wasm.InstructionName(op), err)
		}
	case shapeI32Const:
		if instr.I32, err = r.readInt32(); err != nil {
			return instr, fmt.Errorf("read i32.const value: %w", err)
		}
	case shapeI64Const:
		if instr.I64, err = r.readInt64(); err != nil {
			return instr, fmt.Errorf("read i64.const value: %w", err)
		}
	case shapeF32Const:
		if instr.F32, err = ieee754.DecodeFloat32(r); err != nil {
			return instr, fmt.Errorf("read f32.const value: %w", err)
		}
	case shapeF64Const:
		if instr.F64, err = ieee754.DecodeFloat64(r); err != nil {
			return instr, fmt.Errorf("read f64.const value: %w", err)
		}
	case shapeMisc:
		misc, err := r.readUint32()
		if err != nil {
			return instr, fmt.Errorf("read misc opcode: %w", err)
		}
		if misc > uint32(wasm.OpcodeMiscI64TruncSatF64U) {
			return instr, fmt.Errorf("%w: %#x %#x", ErrUnknownOpcode, op, misc)
		}
		instr.Misc = wasm.OpcodeMisc(misc)
	}
	return instr, nil
}

// blockFrame records one open structured control instruction awaiting its
// end. Frames live on an explicit slice rather than the call stack, so a
// hostile nesting depth fails with ErrNestingTooDeep instead of exhausting
// the goroutine stack.
type blockFrame struct {
	opcode wasm.Opcode
	elsed  bool
}

// decodeExpression reads instructions until the end that closes the
// implicit outermost block, returning the sequence including that end.
func decodeExpression(r *reader, maxNesting int) ([]wasm.Instruction, error) {
	var frames []blockFrame
	var body []wasm.Instruction
	for {
		instr, err := decodeInstruction(r)
		if err != nil {
			return nil, err
		}
		body = append(body, instr)

		switch instr.Opcode {
		case wasm.OpcodeBlock, wasm.OpcodeLoop, wasm.OpcodeIf:
			if len(frames) >= maxNesting {
				return nil, fmt.Errorf("%w: %d blocks open", ErrNestingTooDeep, len(frames))
			}
			frames = append(frames, blockFrame{opcode: instr.Opcode})
		case wasm.OpcodeElse:
			if len(frames) == 0 || frames[len(frames)-1].opcode != wasm.OpcodeIf {
				return nil, fmt.Errorf("%w: else outside if", ErrInvalidByte)
			}
			if frames[len(frames)-1].elsed {
				return nil, fmt.Errorf("%w: second else in if", ErrInvalidByte)
			}
			frames[len(frames)-1].elsed = true
		case wasm.OpcodeEnd:
			if len(frames) == 0 {
				return body, nil
			}
			frames = frames[:len(frames)-1]
		}
	}
}

// decodeConstantExpression reads an initializer expression: the same
// grammar as a function body. Whether the instructions are actually
// constant is a validation concern, not a decoding one.
func decodeConstantExpression(r *reader, maxNesting int) ([]wasm.Instruction, error) {
	return decodeExpression(r, maxNesting)
}

func encodeInstruction(instr wasm.Instruction) ([]byte, error) {
	ret := []byte{instr.Opcode}
	switch operandShapes[instr.Opcode] {
	case shapeUnknown:
		return nil, fmt.Errorf("%w: opcode %#x", ErrEncodeInvariant, instr.Opcode)
	case shapeNone:
	case shapeBlockType:
		ret = append(ret, leb128.EncodeInt33AsInt64(int64(instr.Block))...)
	case shapeIndex:
		ret = append(ret, leb128.EncodeUint32(instr.Index)...)
	case shapeBrTable:
		ret = append(ret, leb128.EncodeUint32(uint32(len(instr.Targets)))...)
		for _, t := range instr.Targets {
			ret = append(ret, leb128.EncodeUint32(t)...)
		}
		ret = append(ret, leb128.EncodeUint32(instr.Default)...)
	case shapeCallIndirect:
		ret = append(ret, leb128.EncodeUint32(instr.Index)...)
		ret = append(ret, 0x00)
	case shapeMemArg:
		ret = append(ret, leb128.EncodeUint32(instr.Align)...)
		ret = append(ret, leb128.EncodeUint32(instr.Offset)...)
	case shapeReservedZero:
		ret = append(ret, 0x00)
	case shapeI32Const:
		ret = append(ret, leb128.EncodeInt32(instr.I32)...)
	case shapeI64Const:
		ret = append(ret, leb128.EncodeInt64(instr.I64)...)
	case shapeF32Const:
		ret = append(ret, ieee754.EncodeFloat32(instr.F32)...)
	case shapeF64Const:
		ret = append(ret, ieee754.EncodeFloat64(instr.F64)...)
	case shapeMisc:
		if instr.Misc > wasm.OpcodeMiscI64TruncSatF64U {
			return nil, fmt.Errorf("%w: misc opcode %#x", ErrEncodeInvariant, instr.Misc)
		}
		ret = append(ret, leb128.EncodeUint32(uint32(instr.Misc))...)
	}
	return ret, nil
}

// encodeExpression writes the instruction sequence of a function body or
// initializer expression, checking that block nesting balances and the
// sequence closes with exactly one outermost end.
func encodeExpression(body []wasm.Instruction) ([]byte, error) {
	var ret []byte
	depth := 0
	for i, instr := range body {
		buf, err := encodeInstruction(instr)
		if err != nil {
			return nil, err
		}
		ret = append(ret, buf...)

		switch instr.Opcode {
		case wasm.OpcodeBlock, wasm.OpcodeLoop, wasm.OpcodeIf:
			depth++
		case wasm.OpcodeEnd:
			if depth == 0 {
				if i != len(body)-1 {
					return nil, fmt.Errorf("%w: instructions after terminal end", ErrEncodeInvariant)
				}
				return ret, nil
			}
			depth--
		}
	}
	return nil, fmt.Errorf("%w: expression missing terminal end", ErrEncodeInvariant)
}
