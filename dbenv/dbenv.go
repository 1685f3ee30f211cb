// Package dbenv provides the explicit, non-global database environment a
// process opens once before creating or opening any HeapTable: the
// directory all of a database's table files live under.
//
// Grounded on the DB struct in db/db.go, which owns the FileManager, log
// writer and buffer manager a process needs rather than reaching for
// package-level state, generalized here to the single concern this store's
// scope actually has (where table files live), since there is no
// transaction manager, WAL or buffer pool in this rewrite.
package dbenv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xxx0624/5300-Ladybug/heaptable"
)

// Environment is a directory holding one heap file per table. It is passed
// explicitly to every HeapTable a process creates or opens, rather than
// looked up through a package-level global, so that a process can hold
// more than one Environment (for example, one per test) without them
// interfering with each other.
type Environment struct {
	root string
}

// Open returns an Environment rooted at dir, creating dir if it does not
// already exist. Failure to create or stat dir is fatal and panics,
// matching file.Manager's convention for its own root directory setup in
// NewFileManager.
func Open(dir string) (*Environment, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(fmt.Errorf("dbenv: create %s: %w", dir, err))
	}
	return &Environment{root: dir}, nil
}

// Root returns the environment's directory.
func (e *Environment) Root() string {
	return e.root
}

// TablePath returns the path of the backing heap file for the table named
// name, inside the environment's directory.
func (e *Environment) TablePath(name string) string {
	return filepath.Join(e.root, name+".tbl")
}

// NewHeapTable returns a HeapTable for the table named name, with the
// given schema, backed by a file inside the environment's directory. The
// table is neither created nor opened by this call.
func (e *Environment) NewHeapTable(name string, schema heaptable.Schema) *heaptable.HeapTable {
	return heaptable.New(e.TablePath(name), schema)
}

// DropTable removes the backing file for the table named name, if present.
func (e *Environment) DropTable(name string) error {
	return heaptable.New(e.TablePath(name), heaptable.NewSchema()).Drop()
}

// Close releases any resources the environment holds. It currently does
// nothing: an Environment owns no open file handles of its own (each
// HeapTable owns its own), but the method exists so callers have a single
// symmetric place to call at shutdown if that changes.
func (e *Environment) Close() error {
	return nil
}
