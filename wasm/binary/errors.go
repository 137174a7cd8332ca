package binary

import (
	"errors"
	"fmt"

	"github.com/wabin/wabin/wasm/leb128"
)

// Sentinel errors classifying every way a decode can fail. DecodeModule
// wraps whichever of these occurred in a *DecodeError carrying the byte
// offset, so callers can both classify with errors.Is and report a precise
// position.
var (
	// ErrTruncated means the input ended before a primitive, section or
	// instruction was complete.
	ErrTruncated = errors.New("unexpected end of input")
	// ErrOverlong means a varint was not the canonical minimal encoding or
	// overflowed its target width.
	ErrOverlong = leb128.ErrOverlong
	// ErrInvalidString means a length-prefixed name was not valid UTF-8.
	ErrInvalidString = errors.New("invalid utf-8 string")
	// ErrUnknownValueType means a byte outside the closed value-type set
	// appeared where a value type was expected.
	ErrUnknownValueType = errors.New("unknown value type")
	// ErrUnknownOpcode means an instruction byte (or misc sub-opcode) is
	// not part of the supported opcode space.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUnknownSectionID means a section discriminant above the known
	// range was read.
	ErrUnknownSectionID = errors.New("unknown section id")
	// ErrSectionSizeMismatch means a section's declared byte length did
	// not equal the bytes its contents actually consumed.
	ErrSectionSizeMismatch = errors.New("section size mismatch")
	// ErrSectionOutOfOrder means a known section repeated or appeared
	// after a section of a higher ID.
	ErrSectionOutOfOrder = errors.New("section out of order")
	// ErrInvalidMagicNumber means the input does not start with "\0asm".
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrInvalidVersion means the 4-byte version field is not version 1.
	ErrInvalidVersion = errors.New("invalid version header")
	// ErrNestingTooDeep means a function body or initializer expression
	// opened more nested blocks than the configured limit.
	ErrNestingTooDeep = errors.New("block nesting too deep")
	// ErrInvalidByte means a fixed discriminant byte (limits flag,
	// mutability flag, function type tag, reserved zero byte) had an
	// unexpected value.
	ErrInvalidByte = errors.New("invalid byte")
	// ErrFunctionCodeMismatch means the function and code sections declare
	// a different number of entries.
	ErrFunctionCodeMismatch = errors.New("function and code section have inconsistent lengths")

	// ErrEncodeInvariant is returned by EncodeModule when the in-memory
	// Module cannot be represented in the binary format, e.g. a vector
	// whose length exceeds 32 bits or a body missing its terminal end.
	// Modules produced by DecodeModule never trip this.
	ErrEncodeInvariant = errors.New("module violates encoding invariant")
)

// DecodeError is the error type returned by DecodeModule: the underlying
// classified failure plus the byte offset at which it was detected.
type DecodeError struct {
	// Offset is the position in the input where decoding failed, in bytes
	// from the start of the module header.
	Offset uint64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset 0x%x: %v", e.Offset, e.Err)
}

// Unwrap supports errors.Is and errors.As against the sentinel classes.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
