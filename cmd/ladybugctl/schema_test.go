package main

import (
	"testing"

	"github.com/xxx0624/5300-Ladybug/storage"
)

func TestParseSchema(t *testing.T) {
	schema, err := parseSchema("id:INT,name:TEXT")
	if err != nil {
		t.Fatalf("parseSchema: %v", err)
	}
	cols := schema.Columns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	if cols[0].Name != "id" || cols[0].Type != storage.Int {
		t.Fatalf("unexpected first column: %+v", cols[0])
	}
	if cols[1].Name != "name" || cols[1].Type != storage.Text {
		t.Fatalf("unexpected second column: %+v", cols[1])
	}
}

func TestParseSchemaRejectsUnknownType(t *testing.T) {
	if _, err := parseSchema("id:FLOAT"); err == nil {
		t.Fatalf("expected an error for an unsupported column type")
	}
}

func TestParseRow(t *testing.T) {
	schema, err := parseSchema("id:INT,name:TEXT")
	if err != nil {
		t.Fatalf("parseSchema: %v", err)
	}

	row, err := parseRow([]string{"id=7", "name=ada"}, schema)
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if got := row["id"].Int(); got != 7 {
		t.Fatalf("expected id=7, got %d", got)
	}
	if got := string(row["name"].Text()); got != "ada" {
		t.Fatalf("expected name=ada, got %q", got)
	}
}

func TestParseRowRejectsUnknownColumn(t *testing.T) {
	schema, err := parseSchema("id:INT")
	if err != nil {
		t.Fatalf("parseSchema: %v", err)
	}
	if _, err := parseRow([]string{"ghost=1"}, schema); err == nil {
		t.Fatalf("expected an error for a column not in the schema")
	}
}
