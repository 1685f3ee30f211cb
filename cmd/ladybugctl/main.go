// Command ladybugctl is a thin operator harness over dbenv/heaptable: it
// has no SQL parser, no query planner, and understands exactly three
// subcommands (create, insert, select), each one mapping directly onto a
// HeapTable method. It plays the same role relative to the storage core
// that cmd/main.go plays relative to db.DB, trading the TCP listener for a
// one-shot CLI invocation since there is no session/engine layer here to
// serve.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/xxx0624/5300-Ladybug/dbenv"
	"github.com/xxx0624/5300-Ladybug/heaptable"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = cmdCreate(os.Args[2:])
	case "insert":
		err = cmdInsert(os.Args[2:])
	case "select":
		err = cmdSelect(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: ladybugctl <create|insert|select> [flags]")
}

type commonFlags struct {
	env    string
	table  string
	schema string
}

func parseCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.env, "env", "./data", "environment directory")
	fs.StringVar(&f.table, "table", "", "table name")
	fs.StringVar(&f.schema, "schema", "", "column schema, name:TYPE,name:TYPE,...")
	return f
}

func (f *commonFlags) open() (*dbenv.Environment, *heaptable.HeapTable, error) {
	if f.table == "" {
		return nil, nil, fmt.Errorf("--table is required")
	}
	schema, err := parseSchema(f.schema)
	if err != nil {
		return nil, nil, err
	}
	env, err := dbenv.Open(f.env)
	if err != nil {
		return nil, nil, err
	}
	return env, env.NewHeapTable(f.table, schema), nil
}

func cmdCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	common := parseCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, table, err := common.open()
	if err != nil {
		return err
	}
	if err := table.CreateIfNotExists(); err != nil {
		return fmt.Errorf("create %s: %w", common.table, err)
	}
	fmt.Printf("created table %q\n", common.table)
	return nil
}

func cmdInsert(args []string) error {
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)
	common := parseCommonFlags(fs)
	var sets []string
	fs.StringArrayVar(&sets, "set", nil, "name=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, table, err := common.open()
	if err != nil {
		return err
	}
	if err := table.Open(); err != nil {
		return fmt.Errorf("open %s: %w", common.table, err)
	}
	defer table.Close()

	schema, err := parseSchema(common.schema)
	if err != nil {
		return err
	}
	row, err := parseRow(sets, schema)
	if err != nil {
		return err
	}

	handle, err := table.Insert(row)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", common.table, err)
	}
	fmt.Printf("inserted %v\n", handle)
	return nil
}

func cmdSelect(args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	common := parseCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, table, err := common.open()
	if err != nil {
		return err
	}
	if err := table.Open(); err != nil {
		return fmt.Errorf("open %s: %w", common.table, err)
	}
	defer table.Close()

	handles, err := table.Select()
	if err != nil {
		return fmt.Errorf("select from %s: %w", common.table, err)
	}
	for _, h := range handles {
		row, err := table.Project(h)
		if err != nil {
			return fmt.Errorf("project %v: %w", h, err)
		}
		fmt.Printf("%v -> %v\n", h, row)
	}
	return nil
}
