package dbenv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxx0624/5300-Ladybug/heaptable"
	"github.com/xxx0624/5300-Ladybug/storage"
)

func TestOpenCreatesRootDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/env"
	env, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, dir, env.Root())
	require.DirExists(t, dir)
}

func TestNewHeapTableIsScopedToEnvironment(t *testing.T) {
	env, err := Open(t.TempDir())
	require.NoError(t, err)

	schema := heaptable.NewSchema()
	schema.AddIntField("id")

	table := env.NewHeapTable("widgets", schema)
	require.NoError(t, table.Create())
	defer table.Close()

	handle, err := table.Insert(heaptable.Row{"id": storage.IntValue(1)})
	require.NoError(t, err)

	row, err := table.Project(handle)
	require.NoError(t, err)
	require.Equal(t, int32(1), row["id"].Int())
}

func TestDropTableRemovesBackingFile(t *testing.T) {
	env, err := Open(t.TempDir())
	require.NoError(t, err)

	schema := heaptable.NewSchema()
	schema.AddIntField("id")

	table := env.NewHeapTable("widgets", schema)
	require.NoError(t, table.Create())
	require.NoError(t, table.Close())

	require.NoError(t, env.DropTable("widgets"))

	reopened := env.NewHeapTable("widgets", schema)
	require.Error(t, reopened.Open())
}
