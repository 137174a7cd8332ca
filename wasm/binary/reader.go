package binary

import (
	"unicode/utf8"

	"github.com/wabin/wabin/wasm/leb128"
)

// reader is the decode cursor: a byte buffer and the current position.
// All primitive reads report exhaustion as ErrTruncated, so higher layers
// never see a bare io.EOF.
type reader struct {
	buf []byte
	pos uint64
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) len() uint64 {
	return uint64(len(r.buf)) - r.pos
}

// ReadByte implements io.ByteReader for the leb128 decoders.
func (r *reader) ReadByte() (byte, error) {
	if r.pos >= uint64(len(r.buf)) {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Read implements io.Reader for the ieee754 decoders.
func (r *reader) Read(p []byte) (int, error) {
	if r.pos >= uint64(len(r.buf)) {
		return 0, ErrTruncated
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += uint64(n)
	return n, nil
}

// readBytes returns the next n bytes. The result aliases the input buffer;
// callers that retain it copy first.
func (r *reader) readBytes(n uint64) ([]byte, error) {
	if r.len() < n {
		r.pos = uint64(len(r.buf))
		return nil, ErrTruncated
	}
	ret := r.buf[r.pos : r.pos+n]
	r.pos += n
	return ret, nil
}

func (r *reader) readUint32() (uint32, error) {
	v, _, err := leb128.DecodeUint32(r)
	return v, err
}

// readCount reads a vector length and verifies it is satisfiable: every
// vector entry consumes at least one byte, so a declared count beyond the
// remaining input can never complete. Failing here keeps allocation
// proportional to the input instead of a hostile count.
func (r *reader) readCount() (uint32, error) {
	count, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	if uint64(count) > r.len() {
		return 0, ErrTruncated
	}
	return count, nil
}

func (r *reader) readUint64() (uint64, error) {
	v, _, err := leb128.DecodeUint64(r)
	return v, err
}

func (r *reader) readInt32() (int32, error) {
	v, _, err := leb128.DecodeInt32(r)
	return v, err
}

func (r *reader) readInt64() (int64, error) {
	v, _, err := leb128.DecodeInt64(r)
	return v, err
}

// readName reads a length-prefixed UTF-8 string.
func (r *reader) readName() (string, error) {
	size, err := r.readUint32()
	if err != nil {
		return "", err
	}
	buf, err := r.readBytes(uint64(size))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidString
	}
	return string(buf), nil
}

// readZeroByte reads the reserved varint-encoded zero of call_indirect,
// memory.size and memory.grow.
func (r *reader) readZeroByte() error {
	v, err := r.readUint32()
	if err != nil {
		return err
	}
	if v != 0 {
		return ErrInvalidByte
	}
	return nil
}
