// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bin implements the little-endian binary primitives every
// container codec in this module is built on: typed fixed-width reads and
// writes over an in-memory buffer, with position tracking suitable for
// offset-tagged parse errors.
package bin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor reads and writes little-endian values against a byte buffer,
// advancing monotonically on every typed read or write. SeekAbs is the
// only way to move it elsewhere; Pos/Prev let callers produce
// offset-tagged error values.
type Cursor struct {
	buf  []byte
	pos  int
	prev int
}

// NewCursor wraps buf for reading. The cursor does not copy buf.
func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// NewWriter returns a cursor with a fresh, growable buffer for encoding.
func NewWriter() *Cursor { return &Cursor{buf: make([]byte, 0, 256)} }

// Pos returns the current byte offset.
func (c *Cursor) Pos() int64 { return int64(c.pos) }

// Prev returns the offset at which the most recent typed read began.
func (c *Cursor) Prev() int64 { return int64(c.prev) }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes returns the underlying buffer (the full write buffer for a writer
// cursor, or the wrapped slice for a reader cursor).
func (c *Cursor) Bytes() []byte { return c.buf }

// ensure panics when fewer than n bytes remain. Nothing in this module
// recovers that panic, and decoders do not check Remaining() before
// reading, so truncated input surfaces as a panic rather than as a
// passert.Error.
func (c *Cursor) ensure(n int) {
	if c.pos+n > len(c.buf) {
		panic(fmt.Sprintf("bin: read past end of buffer at %d, need %d, have %d", c.pos, n, len(c.buf)-c.pos))
	}
}

func (c *Cursor) mark() { c.prev = c.pos }

// I8 reads a signed 8-bit integer.
func (c *Cursor) I8() int8 {
	c.mark()
	c.ensure(1)
	v := int8(c.buf[c.pos])
	c.pos++
	return v
}

// U8 reads an unsigned 8-bit integer.
func (c *Cursor) U8() uint8 {
	c.mark()
	c.ensure(1)
	v := c.buf[c.pos]
	c.pos++
	return v
}

// I16 reads a signed little-endian 16-bit integer.
func (c *Cursor) I16() int16 { return int16(c.U16()) }

// U16 reads an unsigned little-endian 16-bit integer.
func (c *Cursor) U16() uint16 {
	c.mark()
	c.ensure(2)
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v
}

// I32 reads a signed little-endian 32-bit integer.
func (c *Cursor) I32() int32 { return int32(c.U32()) }

// U32 reads an unsigned little-endian 32-bit integer.
func (c *Cursor) U32() uint32 {
	c.mark()
	c.ensure(4)
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v
}

// I64 reads a signed little-endian 64-bit integer.
func (c *Cursor) I64() int64 { return int64(c.U64()) }

// U64 reads an unsigned little-endian 64-bit integer.
func (c *Cursor) U64() uint64 {
	c.mark()
	c.ensure(8)
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v
}

// F32 reads an IEEE-754 single-precision float.
func (c *Cursor) F32() float32 {
	return math.Float32frombits(c.U32())
}

// Take reads n raw bytes. The returned slice is a copy.
func (c *Cursor) Take(n int) []byte {
	c.mark()
	c.ensure(n)
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) []byte {
	c.ensure(n)
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	return out
}

// Skip advances the cursor n bytes without interpreting them.
func (c *Cursor) Skip(n int) {
	c.mark()
	c.ensure(n)
	c.pos += n
}

// SeekAbs moves the cursor to an absolute offset. Used by the archive
// footer-then-TOC read, the interp and texture offset-table reads,
// gamez's node-table walk, and peres's PE resource-directory walk, whose
// externally-defined tree structure is non-linear by nature rather than
// by any choice this module makes.
func (c *Cursor) SeekAbs(offset int64) {
	if offset < 0 || int(offset) > len(c.buf) {
		panic(fmt.Sprintf("bin: seek out of range: %d (len %d)", offset, len(c.buf)))
	}
	c.pos = int(offset)
}

// ZString reads a fixed-width field of size n, returning the ASCII prefix
// up to the first NUL byte and the raw field bytes (for padding
// validation by the caller's assertion layer).
func (c *Cursor) ZString(n int) (s string, raw []byte) {
	raw = c.Take(n)
	i := bytes.IndexByte(raw, 0)
	if i < 0 {
		return string(raw), raw
	}
	return string(raw[:i]), raw
}

// PString reads a 32-bit length prefix followed by that many ASCII bytes.
func (c *Cursor) PString() string {
	n := c.U32()
	return string(c.Take(int(n)))
}

// --- writer side: encoders are the exact inverse of the readers above ---

func (c *Cursor) grow(n int) {
	c.mark()
	c.pos += n
}

// PutI8 writes a signed 8-bit integer.
func (c *Cursor) PutI8(v int8) { c.PutU8(uint8(v)) }

// PutU8 writes an unsigned 8-bit integer.
func (c *Cursor) PutU8(v uint8) {
	c.grow(1)
	c.buf = append(c.buf, v)
}

// PutI16 writes a signed little-endian 16-bit integer.
func (c *Cursor) PutI16(v int16) { c.PutU16(uint16(v)) }

// PutU16 writes an unsigned little-endian 16-bit integer.
func (c *Cursor) PutU16(v uint16) {
	c.grow(2)
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// PutI32 writes a signed little-endian 32-bit integer.
func (c *Cursor) PutI32(v int32) { c.PutU32(uint32(v)) }

// PutU32 writes an unsigned little-endian 32-bit integer.
func (c *Cursor) PutU32(v uint32) {
	c.grow(4)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// PutI64 writes a signed little-endian 64-bit integer.
func (c *Cursor) PutI64(v int64) { c.PutU64(uint64(v)) }

// PutU64 writes an unsigned little-endian 64-bit integer.
func (c *Cursor) PutU64(v uint64) {
	c.grow(8)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	c.buf = append(c.buf, b[:]...)
}

// PutF32 writes an IEEE-754 single-precision float, preserving the exact
// bit pattern (including the sign of a negative zero).
func (c *Cursor) PutF32(v float32) { c.PutU32(math.Float32bits(v)) }

// PutBytes appends raw bytes verbatim.
func (c *Cursor) PutBytes(b []byte) {
	c.grow(len(b))
	c.buf = append(c.buf, b...)
}

// PutZString writes s as a NUL-terminated field padded to width n with
// pad (typically zero bytes). len(s) must be < n.
func (c *Cursor) PutZString(s string, n int, pad byte) {
	field := make([]byte, n)
	for i := range field {
		field[i] = pad
	}
	copy(field, s)
	if len(s) < n {
		field[len(s)] = 0
	}
	c.PutBytes(field)
}

// PutPString writes a 32-bit length prefix followed by s's bytes.
func (c *Cursor) PutPString(s string) {
	c.PutU32(uint32(len(s)))
	c.PutBytes([]byte(s))
}
