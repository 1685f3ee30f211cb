package heaptable

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/xxx0624/5300-Ladybug/block"
	"github.com/xxx0624/5300-Ladybug/storage"
)

func testSchema() Schema {
	s := NewSchema()
	s.AddIntField("id")
	s.AddTextField("name")
	return s
}

func newTestTable(t *testing.T) *HeapTable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.tbl")
	table := New(path, testSchema())
	require.NoError(t, table.Create())
	t.Cleanup(func() { _ = table.Close() })
	return table
}

func rowEqual(a, b Row) bool {
	return cmp.Equal(a, b, cmp.Comparer(func(x, y storage.Value) bool { return x.Equal(y) }))
}

func TestInsertSelectProjectRoundTrip(t *testing.T) {
	table := newTestTable(t)

	row := Row{
		"id":   storage.IntValue(1),
		"name": storage.TextValue([]byte("ada")),
	}
	handle, err := table.Insert(row)
	require.NoError(t, err)
	require.Equal(t, block.ID(1), handle.Block)

	handles, err := table.Select()
	require.NoError(t, err)
	require.Len(t, handles, 1)
	require.Equal(t, handle, handles[0])

	got, err := table.Project(handle)
	require.NoError(t, err)
	require.True(t, rowEqual(row, got), "project(insert(row)) should round-trip: got %v, want %v", got, row)
}

func TestInsertManyRowsSpanningMultipleBlocks(t *testing.T) {
	table := newTestTable(t)

	// A long TEXT value forces records to cross into a second block well
	// before storage.BlockSize rows have been inserted.
	padding := make([]byte, 512)
	for i := range padding {
		padding[i] = 'x'
	}

	const n = 20
	var handles []block.Handle
	for i := 0; i < n; i++ {
		row := Row{
			"id":   storage.IntValue(int32(i)),
			"name": storage.TextValue(padding),
		}
		h, err := table.Insert(row)
		require.NoError(t, err)
		handles = append(handles, h)
	}

	selected, err := table.Select()
	require.NoError(t, err)
	require.ElementsMatch(t, handles, selected)

	lastBlock := handles[len(handles)-1].Block
	require.Greater(t, int(lastBlock), 1, "expected the inserts to span more than one block")

	for i, h := range handles {
		row, err := table.Project(h)
		require.NoError(t, err)
		require.Equal(t, int32(i), row["id"].Int())
	}
}

func TestCreateIfNotExistsOpensExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tbl")
	first := New(path, testSchema())
	require.NoError(t, first.Create())

	handle, err := first.Insert(Row{"id": storage.IntValue(9), "name": storage.TextValue([]byte("x"))})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := New(path, testSchema())
	require.NoError(t, second.CreateIfNotExists())
	defer second.Close()

	row, err := second.Project(handle)
	require.NoError(t, err)
	require.Equal(t, int32(9), row["id"].Int())
}

func TestCreateIfNotExistsCreatesMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tbl")
	table := New(path, testSchema())
	require.NoError(t, table.CreateIfNotExists())
	defer table.Close()

	handles, err := table.Select()
	require.NoError(t, err)
	require.Empty(t, handles)
}

func TestValidateRejectsMissingColumn(t *testing.T) {
	table := newTestTable(t)
	_, err := table.Insert(Row{"id": storage.IntValue(1)})
	require.ErrorIs(t, err, ErrSchema)
}

func TestValidateRejectsUnknownColumn(t *testing.T) {
	table := newTestTable(t)
	row := Row{
		"id":      storage.IntValue(1),
		"name":    storage.TextValue([]byte("ada")),
		"unknown": storage.IntValue(0),
	}
	_, err := table.Insert(row)
	require.ErrorIs(t, err, ErrSchema)
}

func TestValidateRejectsWrongType(t *testing.T) {
	table := newTestTable(t)
	row := Row{
		"id":   storage.TextValue([]byte("not an int")),
		"name": storage.TextValue([]byte("ada")),
	}
	_, err := table.Insert(row)
	require.ErrorIs(t, err, ErrSchema)
}

func TestProjectColumnsReturnsOnlyRequestedNames(t *testing.T) {
	table := newTestTable(t)
	handle, err := table.Insert(Row{"id": storage.IntValue(3), "name": storage.TextValue([]byte("grace"))})
	require.NoError(t, err)

	got, err := table.ProjectColumns(handle, []string{"name"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "grace", string(got["name"].Text()))
}

func TestUpdateAndDeleteAreNotImplemented(t *testing.T) {
	table := newTestTable(t)
	handle, err := table.Insert(Row{"id": storage.IntValue(1), "name": storage.TextValue([]byte("a"))})
	require.NoError(t, err)

	require.ErrorIs(t, table.Update(handle, Row{"id": storage.IntValue(2)}), ErrNotImplemented)
	require.ErrorIs(t, table.Delete(handle), ErrNotImplemented)
}

func TestDropThenOpenFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tbl")
	table := New(path, testSchema())
	require.NoError(t, table.Create())
	require.NoError(t, table.Drop())

	require.Error(t, New(path, testSchema()).Open())
}
