package wbxml

import (
	"bytes"
	"fmt"
)

// maxVarUintBytes is the longest multi-byte integer that fits in 32 bits.
const maxVarUintBytes = 5

// Cursor reads sequentially from an immutable byte buffer. The read position
// only moves forward.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor returns a cursor positioned at the start of data. The cursor
// does not copy data; callers must not modify it while reading.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// ReadByte returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.off >= len(c.data) {
		return 0, ErrTruncatedInput
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

// ReadVarUint reads a multi-byte unsigned integer: big-endian groups of
// seven bits, with the top bit of each byte set on all but the last.
func (c *Cursor) ReadVarUint() (uint32, error) {
	var v uint32
	for i := 0; i < maxVarUintBytes; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: multi-byte integer", ErrTruncatedInput)
		}
		if i == maxVarUintBytes-1 && v > 0x1FFFFFF {
			return 0, ErrVarUintOverflow
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarUintOverflow
}

// ReadTermString reads a NUL-terminated UTF-8 string. The terminator is
// consumed but not returned.
func (c *Cursor) ReadTermString() (string, error) {
	n := bytes.IndexByte(c.data[c.off:], 0x00)
	if n < 0 {
		return "", fmt.Errorf("%w: no terminator in %d remaining bytes", ErrMalformedString, c.Remaining())
	}
	s := string(c.data[c.off : c.off+n])
	c.off += n + 1
	return s, nil
}

// ReadFixed returns a copy of the next n bytes.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, n, c.Remaining())
	}
	out := make([]byte, n)
	copy(out, c.data[c.off:c.off+n])
	c.off += n
	return out, nil
}

// ReadFixedString reads exactly n bytes as a UTF-8 string.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	if n < 0 || n > c.Remaining() {
		return "", fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, n, c.Remaining())
	}
	s := string(c.data[c.off : c.off+n])
	c.off += n
	return s, nil
}
