// Package leb128 decodes and encodes the variable-length integers used
// throughout the WebAssembly binary format.
//
// Unlike general-purpose LEB128, the decoders here are strict: an encoding
// that is longer than necessary, or whose final byte carries bits that
// overflow the target width (or are not a correct sign extension), fails
// with ErrOverlong. Encoders always produce the minimal form, so
// encode(decode(b)) == b holds for every buffer the decoders accept.
package leb128

import (
	"errors"
	"io"
)

// ErrOverlong is returned when an encoding is not the canonical minimal
// form of its value, or the value does not fit the target width.
var ErrOverlong = errors.New("overlong varint")

const (
	maxBytes32 = 5  // ceil(32/7)
	maxBytes64 = 10 // ceil(64/7)
)

// DecodeUint32 reads a canonically encoded unsigned 32-bit integer,
// returning it with the number of bytes read.
func DecodeUint32(r io.ByteReader) (ret uint32, num uint64, err error) {
	var shift int
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, num, err
		}
		num++
		if num == maxBytes32 && b&0xf0 != 0 {
			// Either a 6th byte follows, or the 5th carries bits 32..34.
			return 0, num, ErrOverlong
		}
		ret |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			if num > 1 && b == 0 {
				return 0, num, ErrOverlong
			}
			return ret, num, nil
		}
		shift += 7
	}
}

// DecodeUint64 reads a canonically encoded unsigned 64-bit integer,
// returning it with the number of bytes read.
func DecodeUint64(r io.ByteReader) (ret uint64, num uint64, err error) {
	var shift int
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, num, err
		}
		num++
		if num == maxBytes64 && b&0xfe != 0 {
			// The 10th byte may only carry bit 63.
			return 0, num, ErrOverlong
		}
		ret |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if num > 1 && b == 0 {
				return 0, num, ErrOverlong
			}
			return ret, num, nil
		}
		shift += 7
	}
}

// DecodeInt32 reads a canonically encoded signed 32-bit integer, returning
// it with the number of bytes read.
func DecodeInt32(r io.ByteReader) (ret int32, num uint64, err error) {
	var shift int
	var b, prev byte
	for {
		prev = b
		if b, err = r.ReadByte(); err != nil {
			return 0, num, err
		}
		num++
		if num == maxBytes32 {
			// Bits 4..6 of the final byte must replicate bit 3, and no
			// continuation may follow.
			if b&0x80 != 0 {
				return 0, num, ErrOverlong
			}
			if pad := b & 0x70; (b&0x08 == 0 && pad != 0) || (b&0x08 != 0 && pad != 0x70) {
				return 0, num, ErrOverlong
			}
		}
		ret |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 32 && b&0x40 != 0 {
		ret |= -1 << shift
	}
	if num > 1 && redundantFinalByte(b, prev) {
		return 0, num, ErrOverlong
	}
	return ret, num, nil
}

// DecodeInt64 reads a canonically encoded signed 64-bit integer, returning
// it with the number of bytes read.
func DecodeInt64(r io.ByteReader) (ret int64, num uint64, err error) {
	var shift int
	var b, prev byte
	for {
		prev = b
		if b, err = r.ReadByte(); err != nil {
			return 0, num, err
		}
		num++
		if num == maxBytes64 {
			// Bits 1..6 of the final byte must replicate bit 0 (bit 63 of
			// the value), and no continuation may follow.
			if b&0x80 != 0 {
				return 0, num, ErrOverlong
			}
			if pad := b & 0x7e; (b&0x01 == 0 && pad != 0) || (b&0x01 != 0 && pad != 0x7e) {
				return 0, num, ErrOverlong
			}
		}
		ret |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		ret |= -1 << shift
	}
	if num > 1 && redundantFinalByte(b, prev) {
		return 0, num, ErrOverlong
	}
	return ret, num, nil
}

// DecodeInt33AsInt64 reads a canonically encoded signed 33-bit integer,
// used by the block type of structured control instructions.
func DecodeInt33AsInt64(r io.ByteReader) (ret int64, num uint64, err error) {
	var shift int
	var b, prev byte
	for {
		prev = b
		if b, err = r.ReadByte(); err != nil {
			return 0, num, err
		}
		num++
		if num == maxBytes32 {
			// Bits 5 and 6 of the final byte must replicate bit 4, which is
			// bit 32 of the value and its sign.
			if b&0x80 != 0 {
				return 0, num, ErrOverlong
			}
			if pad := b & 0x60; (b&0x10 == 0 && pad != 0) || (b&0x10 != 0 && pad != 0x60) {
				return 0, num, ErrOverlong
			}
			ret |= int64(b&0x1f) << shift
			if b&0x10 != 0 {
				ret |= -1 << 33
			}
			if redundantFinalByte(b, prev) {
				return 0, num, ErrOverlong
			}
			return ret, num, nil
		}
		ret |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 33 && b&0x40 != 0 {
		ret |= -1 << shift
	}
	if num > 1 && redundantFinalByte(b, prev) {
		return 0, num, ErrOverlong
	}
	return ret, num, nil
}

// redundantFinalByte reports whether the final byte of a signed encoding
// contributed nothing: all-zero payload after a positive group, or all-one
// payload after a negative group. Such encodings have a shorter canonical
// form.
func redundantFinalByte(last, prev byte) bool {
	return (last == 0x00 && prev&0x40 == 0) || (last == 0x7f && prev&0x40 != 0)
}

// EncodeUint32 encodes the value in the minimal unsigned form.
func EncodeUint32(v uint32) []byte {
	return EncodeUint64(uint64(v))
}

// EncodeUint64 encodes the value in the minimal unsigned form.
func EncodeUint64(v uint64) (buf []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return
		}
	}
}

// EncodeInt32 encodes the value in the minimal two's-complement form.
func EncodeInt32(v int32) []byte {
	return EncodeInt64(int64(v))
}

// EncodeInt33AsInt64 encodes the signed 33-bit value in the minimal
// two's-complement form.
func EncodeInt33AsInt64(v int64) []byte {
	return EncodeInt64(v)
}

// EncodeInt64 encodes the value in the minimal two's-complement form.
func EncodeInt64(v int64) (buf []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7 // arithmetic shift
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}
