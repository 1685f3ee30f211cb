// Package storage holds the primitive types shared by the slotted-page,
// heap-file and heap-table layers: the on-disk block size, little-endian
// encode/decode helpers, and the tagged Value union a row's columns hold.
//
// Value follows file.Value rather than a Go interface or `any` with type
// assertions: the column types this store supports are
// closed (INT and TEXT), so a two-variant tagged struct says that directly
// and needs no type switch at the call site.
package storage

import (
	"encoding/binary"
	"fmt"
)

// BlockSize is the fixed size, in bytes, of every block a HeapFile manages.
// Every SlottedPage is exactly this many bytes, zero-padded.
const BlockSize = 4096

// ColumnType is the closed set of column types a Schema can declare.
type ColumnType int

const (
	// Int is a 32-bit signed integer, encoded little-endian in 4 bytes.
	Int ColumnType = iota
	// Text is a length-prefixed ASCII byte string: a 2-byte little-endian
	// length followed by that many raw bytes.
	Text
)

func (t ColumnType) String() string {
	switch t {
	case Int:
		return "INT"
	case Text:
		return "TEXT"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Value is a single column value, tagged by which variant it holds.
// The zero Value is the integer 0, matching file.Value's zero-value
// behavior.
type Value struct {
	isText  bool
	intVal  int32
	textVal []byte
}

// IntValue builds an integer Value.
func IntValue(v int32) Value {
	return Value{intVal: v}
}

// TextValue builds a text Value. The byte slice is copied so later
// mutation of the caller's slice cannot corrupt the stored row.
func TextValue(s []byte) Value {
	cp := make([]byte, len(s))
	copy(cp, s)
	return Value{isText: true, textVal: cp}
}

// Type reports which ColumnType this Value holds.
func (v Value) Type() ColumnType {
	if v.isText {
		return Text
	}
	return Int
}

// Int returns the integer held by v. Calling it on a text Value returns 0.
func (v Value) Int() int32 {
	return v.intVal
}

// Text returns the bytes held by v. Calling it on an integer Value returns
// nil. The returned slice is shared with v and must not be mutated.
func (v Value) Text() []byte {
	return v.textVal
}

// Equal reports whether v and other hold the same type and value.
func (v Value) Equal(other Value) bool {
	if v.isText != other.isText {
		return false
	}
	if v.isText {
		return string(v.textVal) == string(other.textVal)
	}
	return v.intVal == other.intVal
}

func (v Value) String() string {
	if v.isText {
		return fmt.Sprintf("%q", v.textVal)
	}
	return fmt.Sprintf("%d", v.intVal)
}

// EncodedSize returns the number of bytes v occupies once marshaled.
func (v Value) EncodedSize() int {
	if v.isText {
		return TextHeaderSize + len(v.textVal)
	}
	return IntSize
}

// IntSize is the on-disk width of an encoded INT column.
const IntSize = 4

// TextHeaderSize is the on-disk width of a TEXT column's length prefix.
const TextHeaderSize = 2

// PutUint16 writes v little-endian into b[0:2].
func PutUint16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// Uint16 reads a little-endian uint16 from b[0:2].
func Uint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// PutInt32 writes v little-endian into b[0:4].
func PutInt32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

// Int32 reads a little-endian int32 from b[0:4].
func Int32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}
