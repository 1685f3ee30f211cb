// Package block defines the identity of a single fixed-size block inside a
// HeapFile, and the two-part handle a HeapTable hands back for a row.
//
// Grounded on file.BlockID (a small value type carrying a filename and a
// block number, with a precomputed string form), trimmed to the
// single-file case a HeapFile manages: each HeapFile owns exactly one
// underlying file, so ID only needs the block number.
package block

import "fmt"

// ID identifies a block within a single HeapFile. Block numbers are
// 1-based: the first block ever allocated is ID(1).
type ID uint32

// RecordID identifies a record's slot within a SlottedPage.
type RecordID uint16

// Handle is the address of a single row: which block it lives in, and
// which slot of that block's SlottedPage holds it.
type Handle struct {
	Block  ID
	Record RecordID
}

func (h Handle) String() string {
	return fmt.Sprintf("(%d, %d)", h.Block, h.Record)
}
