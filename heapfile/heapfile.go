// Package heapfile implements the record-number-keyed block access method a
// HeapTable is built on: a sequence of fixed-size, storage.BlockSize blocks
// backed by one plain file, addressed by a 1-based block.ID.
//
// There is no Berkeley DB DB_RECNO handle available in this ecosystem, so a
// HeapFile binds directly to an *os.File and computes block offsets itself,
// the way file.Manager reads and writes fixed-size pages at block-number
// boundaries of an *os.File it owns; unlike file.Manager, one
// HeapFile owns exactly one file rather than multiplexing a directory of
// them, since one heap file backs exactly one table.
package heapfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/xxx0624/5300-Ladybug/block"
	"github.com/xxx0624/5300-Ladybug/slottedpage"
	"github.com/xxx0624/5300-Ladybug/storage"
)

// ErrAlreadyExists is returned by Create when the backing file is already
// present on disk.
var ErrAlreadyExists = errors.New("heapfile: already exists")

// ErrNotOpen is returned by Get, Put, GetNew, BlockIDs and LastBlockID when
// called before Open or Create, or after Close.
var ErrNotOpen = errors.New("heapfile: not open")

// HeapFile is a sequence of storage.BlockSize blocks, 1-based, backed by a
// single file on disk. It is not safe for concurrent use by multiple
// goroutines beyond the raw I/O serialization its mutex provides; the
// store as a whole assumes a single writer, per the heap table's
// cooperative, single-threaded concurrency model.
type HeapFile struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	last   block.ID
	isOpen bool
}

// New returns a HeapFile bound to the file at path. The file is neither
// created nor opened until Create or Open is called.
func New(path string) *HeapFile {
	return &HeapFile{path: path}
}

// Create makes a new, empty backing file and opens it. It returns
// ErrAlreadyExists, leaving any existing file untouched, if the file is
// already present; any other failure to create the file is fatal and
// panics, matching file.Manager's convention of panicking on unexpected
// os package errors.
func (h *HeapFile) Create() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrAlreadyExists
		}
		panic(fmt.Errorf("heapfile: create %s: %w", h.path, err))
	}
	h.f = f
	h.last = 0
	h.isOpen = true
	if _, err := h.getNewLocked(); err != nil {
		return err
	}
	return nil
}

// Open opens an existing backing file. It returns a wrapped os.ErrNotExist
// if the file is not present (a condition callers such as
// heaptable.CreateIfNotExists use for control flow); any other failure is
// fatal and panics.
func (h *HeapFile) Open() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_RDWR, 0644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("heapfile: open %s: %w", h.path, err)
		}
		panic(fmt.Errorf("heapfile: open %s: %w", h.path, err))
	}
	fi, err := f.Stat()
	if err != nil {
		panic(fmt.Errorf("heapfile: stat %s: %w", h.path, err))
	}
	h.f = f
	h.last = block.ID(fi.Size() / storage.BlockSize)
	h.isOpen = true
	return nil
}

// Close releases the backing file handle. It is idempotent: closing an
// already-closed HeapFile is a no-op, matching DESIGN NOTES' requirement
// that Close and Drop be distinct, explicit operations rather than
// destructor-triggered.
func (h *HeapFile) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.isOpen {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	h.isOpen = false
	if err != nil {
		panic(fmt.Errorf("heapfile: close %s: %w", h.path, err))
	}
	return nil
}

// Drop closes the HeapFile (if open) and removes its backing file. Removal
// failures other than the file already being gone are fatal and panic.
func (h *HeapFile) Drop() error {
	_ = h.Close()
	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(fmt.Errorf("heapfile: drop %s: %w", h.path, err))
	}
	return nil
}

// LastBlockID reports the highest block.ID allocated so far, or 0 if the
// file holds no blocks yet.
func (h *HeapFile) LastBlockID() (block.ID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isOpen {
		return 0, ErrNotOpen
	}
	return h.last, nil
}

// BlockIDs returns every allocated block.ID, in ascending order.
func (h *HeapFile) BlockIDs() ([]block.ID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isOpen {
		return nil, ErrNotOpen
	}
	ids := make([]block.ID, 0, h.last)
	for id := block.ID(1); id <= h.last; id++ {
		ids = append(ids, id)
	}
	return ids, nil
}

// GetNew allocates a new block at the end of the file and returns it as a
// freshly initialized SlottedPage. The empty block is written to disk
// immediately; later changes to the page reach disk only when Put is
// called with it.
func (h *HeapFile) GetNew() (*slottedpage.SlottedPage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isOpen {
		return nil, ErrNotOpen
	}
	return h.getNewLocked()
}

// getNewLocked is GetNew's body, callable by Create while h.mu is already
// held (Create must allocate an initial block atomically with opening the
// file, before releasing the lock).
func (h *HeapFile) getNewLocked() (*slottedpage.SlottedPage, error) {
	id := h.last + 1
	buf := make([]byte, storage.BlockSize)
	page, err := slottedpage.New(buf, id, true)
	if err != nil {
		return nil, err
	}
	h.writeLocked(id, buf)
	h.last = id
	return page, nil
}

// Get reads the block at id and returns it as a SlottedPage.
func (h *HeapFile) Get(id block.ID) (*slottedpage.SlottedPage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isOpen {
		return nil, ErrNotOpen
	}

	buf := make([]byte, storage.BlockSize)
	off := int64(id-1) * storage.BlockSize
	n, err := h.f.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		panic(fmt.Errorf("heapfile: read block %d of %s: %w", id, h.path, err))
	}
	_ = n
	return slottedpage.New(buf, id, false)
}

// Put writes page back to its block, at the offset its BlockID implies.
func (h *HeapFile) Put(page *slottedpage.SlottedPage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.isOpen {
		return ErrNotOpen
	}
	h.writeLocked(page.BlockID(), page.Bytes())
	if page.BlockID() > h.last {
		h.last = page.BlockID()
	}
	return nil
}

// writeLocked writes buf to the block addressed by id. h.mu must already
// be held.
func (h *HeapFile) writeLocked(id block.ID, buf []byte) {
	off := int64(id-1) * storage.BlockSize
	if _, err := h.f.WriteAt(buf, off); err != nil {
		panic(fmt.Errorf("heapfile: write block %d of %s: %w", id, h.path, err))
	}
}
