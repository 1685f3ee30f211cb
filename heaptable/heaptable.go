// Package heaptable implements the schema-aware layer on top of a heap
// file: a HeapTable marshals Row values to and from the byte layout a
// SlottedPage stores, in schema column order, and exposes the row-level
// operations a small relational store needs (create, drop, insert, a full
// scan, and column projection).
//
// Grounded on HeapTable in original_source/heap_storage.cpp for the
// insert/append/marshal/unmarshal/project algorithms, and on
// record.Schema/record.Layout for the Go shape of a declared, ordered
// column schema.
package heaptable

import (
	"errors"
	"fmt"

	"github.com/xxx0624/5300-Ladybug/block"
	"github.com/xxx0624/5300-Ladybug/heapfile"
	"github.com/xxx0624/5300-Ladybug/slottedpage"
	"github.com/xxx0624/5300-Ladybug/storage"
)

// Row is a single record, keyed by column name. Insert and Project both
// operate on Row values; a HeapTable never mutates a Row passed into or
// returned from it after the call returns.
type Row map[string]storage.Value

// ErrSchema is wrapped by every error Validate, marshal and unmarshal
// return for a row that does not match the table's declared schema:
// missing columns, unexpected columns, or a value of the wrong type for
// its column.
var ErrSchema = errors.New("heaptable: schema mismatch")

// ErrRecordTooLarge is returned by Insert when a single marshaled row does
// not fit in one storage.BlockSize block, even a freshly allocated empty
// one. This store does not support records spanning multiple blocks.
var ErrRecordTooLarge = errors.New("heaptable: record too large for one block")

// ErrNotImplemented is returned by Update and Delete: both are deferred to
// future work, the way the original update/del methods this table is
// built from are present but empty.
var ErrNotImplemented = errors.New("heaptable: not implemented")

// HeapTable is a named, schema-typed heap-organized table.
type HeapTable struct {
	schema Schema
	file   *heapfile.HeapFile
}

// New returns a HeapTable backed by the file at path, with the given
// schema. The table is neither created nor opened until Create,
// CreateIfNotExists or Open is called.
func New(path string, schema Schema) *HeapTable {
	return &HeapTable{schema: schema, file: heapfile.New(path)}
}

// Create makes a new, empty backing heap file.
func (t *HeapTable) Create() error {
	return t.file.Create()
}

// CreateIfNotExists opens the table if its backing file already exists,
// and creates it otherwise. Any error Open returns is treated as "needs
// creating", matching HeapTable::create_if_not_exists's blanket catch in
// the implementation this table is grounded on; HeapFile.Open returns an
// error only for a missing file and panics on any other failure, so such
// failures never reach Create.
func (t *HeapTable) CreateIfNotExists() error {
	if err := t.file.Open(); err != nil {
		return t.file.Create()
	}
	return nil
}

// Drop deletes the table's backing heap file.
func (t *HeapTable) Drop() error {
	return t.file.Drop()
}

// Open opens the table's backing heap file for Insert, Select and Project.
func (t *HeapTable) Open() error {
	return t.file.Open()
}

// Close closes the table's backing heap file.
func (t *HeapTable) Close() error {
	return t.file.Close()
}

// Schema returns the table's column schema.
func (t *HeapTable) Schema() Schema {
	return t.schema
}

// Insert validates row against the table's schema, marshals it and appends
// it to the heap file, returning the Handle of the new row.
func (t *HeapTable) Insert(row Row) (block.Handle, error) {
	full, err := t.Validate(row)
	if err != nil {
		return block.Handle{}, err
	}
	return t.append(full)
}

// Validate checks that row has exactly the columns the schema declares,
// each holding a value of the column's declared type, and returns a row
// built strictly in schema order. It rejects unknown columns and requires
// every schema column to be present, the stricter of two readings, chosen
// over the original's looser any-column-of-matching-type check, which
// would silently accept a row with the wrong column under the right type.
func (t *HeapTable) Validate(row Row) (Row, error) {
	full := make(Row, len(t.schema.columns))
	for _, col := range t.schema.columns {
		v, ok := row[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, col.Name)
		}
		if v.Type() != col.Type {
			return nil, fmt.Errorf("%w: column %q expects %s, got %s", ErrSchema, col.Name, col.Type, v.Type())
		}
		full[col.Name] = v
	}
	if len(row) != len(full) {
		for name := range row {
			if !t.schema.HasField(name) {
				return nil, fmt.Errorf("%w: unexpected column %q", ErrSchema, name)
			}
		}
	}
	return full, nil
}

// append assumes row is already validated and in schema order. It marshals
// row and appends it to the last block of the heap file, allocating a new
// block if the last one has no room.
func (t *HeapTable) append(row Row) (block.Handle, error) {
	data, err := t.marshal(row)
	if err != nil {
		return block.Handle{}, err
	}

	lastID, err := t.file.LastBlockID()
	if err != nil {
		return block.Handle{}, err
	}

	page, err := t.file.Get(lastID)
	if err != nil {
		return block.Handle{}, err
	}

	recID, err := page.Add(data)
	if errors.Is(err, slottedpage.ErrNoRoom) {
		page, err = t.file.GetNew()
		if err != nil {
			return block.Handle{}, err
		}
		recID, err = page.Add(data)
		if errors.Is(err, slottedpage.ErrNoRoom) {
			return block.Handle{}, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, len(data))
		}
		if err != nil {
			return block.Handle{}, err
		}
	} else if err != nil {
		return block.Handle{}, err
	}

	if err := t.file.Put(page); err != nil {
		return block.Handle{}, err
	}
	return block.Handle{Block: page.BlockID(), Record: recID}, nil
}

// Select returns the Handle of every row currently stored in the table, in
// block then record order. It corresponds to a bare "SELECT * FROM table"
// with no WHERE clause: predicate evaluation is query-planning territory
// this store does not implement.
func (t *HeapTable) Select() ([]block.Handle, error) {
	blockIDs, err := t.file.BlockIDs()
	if err != nil {
		return nil, err
	}

	var handles []block.Handle
	for _, bID := range blockIDs {
		page, err := t.file.Get(bID)
		if err != nil {
			return nil, err
		}
		for _, recID := range page.IDs() {
			handles = append(handles, block.Handle{Block: bID, Record: recID})
		}
	}
	return handles, nil
}

// Project returns the full row stored at handle.
func (t *HeapTable) Project(handle block.Handle) (Row, error) {
	page, err := t.file.Get(handle.Block)
	if err != nil {
		return nil, err
	}
	data, ok := page.Get(handle.Record)
	if !ok {
		return nil, fmt.Errorf("heaptable: %v: no such record", handle)
	}
	return t.unmarshal(data)
}

// ProjectColumns returns only the named columns of the row stored at
// handle. Every name must be declared in the schema.
func (t *HeapTable) ProjectColumns(handle block.Handle, columns []string) (Row, error) {
	full, err := t.Project(handle)
	if err != nil {
		return nil, err
	}
	out := make(Row, len(columns))
	for _, name := range columns {
		if !t.schema.HasField(name) {
			return nil, fmt.Errorf("%w: unexpected column %q", ErrSchema, name)
		}
		out[name] = full[name]
	}
	return out, nil
}

// Update is deferred to future work; it always returns ErrNotImplemented.
func (t *HeapTable) Update(handle block.Handle, newValues Row) error {
	return ErrNotImplemented
}

// Delete is deferred to future work; it always returns ErrNotImplemented.
func (t *HeapTable) Delete(handle block.Handle) error {
	return ErrNotImplemented
}

// marshal encodes row, in schema column order, as INT: 4-byte little-endian
// int32, TEXT: 2-byte little-endian length prefix followed by the raw
// ASCII bytes. row must already be validated and complete.
func (t *HeapTable) marshal(row Row) ([]byte, error) {
	buf := make([]byte, 0, storage.BlockSize)
	for _, col := range t.schema.columns {
		v, ok := row[col.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, col.Name)
		}
		switch col.Type {
		case storage.Int:
			var enc [storage.IntSize]byte
			storage.PutInt32(enc[:], v.Int())
			buf = append(buf, enc[:]...)
		case storage.Text:
			text := v.Text()
			var lenEnc [storage.TextHeaderSize]byte
			storage.PutUint16(lenEnc[:], uint16(len(text)))
			buf = append(buf, lenEnc[:]...)
			buf = append(buf, text...)
		default:
			return nil, fmt.Errorf("%w: unsupported column type for %q", ErrSchema, col.Name)
		}
	}
	return buf, nil
}

// unmarshal decodes data, in schema column order, into a Row.
func (t *HeapTable) unmarshal(data []byte) (Row, error) {
	row := make(Row, len(t.schema.columns))
	offset := 0
	for _, col := range t.schema.columns {
		switch col.Type {
		case storage.Int:
			if offset+storage.IntSize > len(data) {
				return nil, fmt.Errorf("%w: truncated record while reading %q", ErrSchema, col.Name)
			}
			row[col.Name] = storage.IntValue(storage.Int32(data[offset : offset+storage.IntSize]))
			offset += storage.IntSize
		case storage.Text:
			if offset+storage.TextHeaderSize > len(data) {
				return nil, fmt.Errorf("%w: truncated record while reading %q", ErrSchema, col.Name)
			}
			size := int(storage.Uint16(data[offset : offset+storage.TextHeaderSize]))
			offset += storage.TextHeaderSize
			if offset+size > len(data) {
				return nil, fmt.Errorf("%w: truncated record while reading %q", ErrSchema, col.Name)
			}
			row[col.Name] = storage.TextValue(data[offset : offset+size])
			offset += size
		default:
			return nil, fmt.Errorf("%w: unsupported column type for %q", ErrSchema, col.Name)
		}
	}
	return row, nil
}
