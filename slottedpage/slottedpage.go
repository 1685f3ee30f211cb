// Package slottedpage implements the record manager for a single fixed-size
// block: a slotted page that packs variable-length records from the high
// end of the block downward, indexed by a growing slot table at the low end.
//
// The layout and the slide/has_room arithmetic are carried over byte for
// byte from the C++ heap_storage.cpp this module was distilled from; the
// Go text itself follows the documentation style of pages/slotted_page.go
// (doc comment per exported method, terse invariant notes), without that
// file's transaction/MVCC machinery, which this rewrite has no use for.
package slottedpage

import (
	"errors"
	"fmt"

	"github.com/xxx0624/5300-Ladybug/block"
	"github.com/xxx0624/5300-Ladybug/storage"
)

// headerSize is the byte width of the fixed num_records/end_free header.
const headerSize = 4

// slotSize is the byte width of one slot table entry (size, offset).
const slotSize = 4

// ErrNoRoom is returned by Add and Put when a record does not fit in the
// page's current free space. The page is left unmodified.
var ErrNoRoom = errors.New("slottedpage: no room for record")

// ErrNoSuchRecord is returned by Put and Del when the given record id has
// never been assigned, or names a tombstoned (previously deleted) record.
var ErrNoSuchRecord = errors.New("slottedpage: no such record")

// SlottedPage is a single storage.BlockSize-byte block, read from or about
// to be written to a HeapFile, managed as a slotted page: a 4-byte header
// (num_records, end_free), a slot table growing upward from byte 4, and
// record payloads packed downward from the end of the block.
//
// A SlottedPage is not safe for concurrent use; callers serialize access to
// a given block the way HeapFile's mutex does.
type SlottedPage struct {
	buf []byte
	id  block.ID
}

// New wraps buf (which must be exactly storage.BlockSize bytes) as the page
// for block id. When isNew is true the header is initialized as an empty
// page; when false, buf is assumed to already hold a valid page image (as
// read back from a HeapFile).
func New(buf []byte, id block.ID, isNew bool) (*SlottedPage, error) {
	if len(buf) != storage.BlockSize {
		return nil, fmt.Errorf("slottedpage: buffer is %d bytes, want %d", len(buf), storage.BlockSize)
	}
	p := &SlottedPage{buf: buf, id: id}
	if isNew {
		p.setNumRecords(0)
		p.setEndFree(storage.BlockSize - 1)
	}
	return p, nil
}

// BlockID reports which block this page was read from or will be written to.
func (p *SlottedPage) BlockID() block.ID {
	return p.id
}

// Bytes returns the page's underlying storage.BlockSize-byte buffer, ready
// to hand to HeapFile.Put. The slice is owned by p; callers must not retain
// and mutate it after further calls to p.
func (p *SlottedPage) Bytes() []byte {
	return p.buf
}

// NumRecords reports how many record ids have ever been assigned on this
// page, including ones later deleted (tombstoned). Live record ids are a
// subset of [1, NumRecords()].
func (p *SlottedPage) NumRecords() int {
	return int(p.numRecords())
}

// HasRoom reports whether a record of size bytes could be Add-ed to the
// page without growing the slot table beyond its current bound.
func (p *SlottedPage) HasRoom(size int) bool {
	return p.hasRoom(size)
}

// Add appends data as a new record and returns its record id, starting
// from 1 and increasing by one on each call (ids are never reused, even
// after Del). It returns ErrNoRoom, leaving the page unmodified, if data
// does not fit in the remaining free space.
func (p *SlottedPage) Add(data []byte) (block.RecordID, error) {
	if !p.hasRoom(len(data)) {
		return 0, ErrNoRoom
	}
	id := p.numRecords() + 1
	size := uint16(len(data))
	newEndFree := p.endFree() - size
	offset := newEndFree + 1

	p.setNumRecords(id)
	p.setEndFree(newEndFree)
	p.setSlot(id, size, offset)
	copy(p.region(offset, size), data)

	return block.RecordID(id), nil
}

// Get returns a copy of the record stored under id. ok is false if id has
// never been assigned, or if the record at id was deleted with Del: callers
// distinguish "no such record" from a genuine zero-length record this way,
// rather than Get returning an error for an expected, common case.
func (p *SlottedPage) Get(id block.RecordID) (data []byte, ok bool) {
	size, offset := p.slot(uint16(id))
	if offset == 0 {
		return nil, false
	}
	out := make([]byte, size)
	copy(out, p.region(offset, size))
	return out, true
}

// IDs returns the ids of every live (non-deleted) record on the page, in
// ascending order.
func (p *SlottedPage) IDs() []block.RecordID {
	var ids []block.RecordID
	n := p.numRecords()
	for id := uint16(1); id <= n; id++ {
		_, offset := p.slot(id)
		if offset != 0 {
			ids = append(ids, block.RecordID(id))
		}
	}
	return ids
}

// Put overwrites the record stored under id with data, growing or shrinking
// it in place and sliding neighboring records as needed to keep the page
// dense. It returns ErrNoRoom, leaving the page unmodified, if growing the
// record would not fit in the remaining free space, and ErrNoSuchRecord if
// id names a tombstoned or never-assigned record.
func (p *SlottedPage) Put(id block.RecordID, data []byte) error {
	size, offset := p.slot(uint16(id))
	if offset == 0 {
		return ErrNoSuchRecord
	}
	newSize := uint16(len(data))

	if newSize > size {
		extra := newSize - size
		if !p.hasRoom(int(extra)) {
			return ErrNoRoom
		}
		p.slide(offset, offset-extra)
		_, newOffset := p.slot(uint16(id))
		copy(p.region(newOffset, newSize), data)
	} else {
		copy(p.region(offset, newSize), data)
		p.slide(offset+newSize, offset+size)
	}

	_, newOffset := p.slot(uint16(id))
	p.setSlot(uint16(id), newSize, newOffset)
	return nil
}

// Del removes the record stored under id, reclaiming its space by sliding
// neighboring records, and marks the slot as a tombstone (size=0,
// offset=0) so a later Get or IDs call will not see it. It returns
// ErrNoSuchRecord if id was already deleted or never assigned.
func (p *SlottedPage) Del(id block.RecordID) error {
	size, offset := p.slot(uint16(id))
	if offset == 0 {
		return ErrNoSuchRecord
	}
	p.slide(offset, offset+size)
	p.setSlot(uint16(id), 0, 0)
	return nil
}

// hasRoom reports whether size additional bytes of record payload fit
// without the slot table (about to gain one more entry, at id num_records+1)
// colliding with the free space boundary. The header itself is slot 0, so
// the slot table through the next unused id occupies slotSize*(n+1) bytes.
func (p *SlottedPage) hasRoom(size int) bool {
	available := int(p.endFree()) - slotSize*(int(p.numRecords())+1)
	return size <= available
}

// slide shifts the packed record region by (end - start) bytes: bytes
// between the current free-space boundary and start move to make room at
// start, and every live slot whose offset is <= start moves by the same
// amount, including the slot for the record currently being resized. It is
// the single primitive both growth and shrinkage in Put, and deletion in
// Del, reduce to.
func (p *SlottedPage) slide(start, end uint16) {
	shift := int(end) - int(start)
	if shift == 0 {
		return
	}

	srcStart := p.endFree() + 1
	length := start - srcStart
	dstStart := uint16(int(srcStart) + shift)
	copy(p.region(dstStart, length), p.region(srcStart, length))

	n := p.numRecords()
	for id := uint16(1); id <= n; id++ {
		size, offset := p.slot(id)
		if offset == 0 {
			continue
		}
		if offset <= start {
			p.setSlot(id, size, uint16(int(offset)+shift))
		}
	}

	p.setEndFree(uint16(int(p.endFree()) + shift))
}

// region returns the offset-length byte window of the page's payload area,
// as a slice sharing storage with p's buffer.
func (p *SlottedPage) region(offset, size uint16) []byte {
	return p.buf[offset : offset+size]
}

func (p *SlottedPage) numRecords() uint16 {
	return storage.Uint16(p.buf[0:2])
}

func (p *SlottedPage) setNumRecords(n uint16) {
	storage.PutUint16(p.buf[0:2], n)
}

func (p *SlottedPage) endFree() uint16 {
	return storage.Uint16(p.buf[2:4])
}

func (p *SlottedPage) setEndFree(v uint16) {
	storage.PutUint16(p.buf[2:4], v)
}

func (p *SlottedPage) slot(id uint16) (size, offset uint16) {
	if id == 0 || id > p.numRecords() {
		return 0, 0
	}
	base := headerSize + slotSize*int(id-1)
	size = storage.Uint16(p.buf[base : base+2])
	offset = storage.Uint16(p.buf[base+2 : base+4])
	return size, offset
}

func (p *SlottedPage) setSlot(id uint16, size, offset uint16) {
	base := headerSize + slotSize*int(id-1)
	storage.PutUint16(p.buf[base:base+2], size)
	storage.PutUint16(p.buf[base+2:base+4], offset)
}
