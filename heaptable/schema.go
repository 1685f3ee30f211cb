package heaptable

import "github.com/xxx0624/5300-Ladybug/storage"

// Column describes one column of a Schema: its name and declared type.
type Column struct {
	Name string
	Type storage.ColumnType
}

// Schema is the ordered list of columns a HeapTable's rows hold. Column
// order determines marshal/unmarshal order on disk, following
// record.Schema, trimmed to the two column types this store supports (no
// catalog-backed field lengths or joined schemas).
type Schema struct {
	columns []Column
}

// NewSchema returns an empty Schema; columns are added with AddIntField and
// AddTextField in the order they should be stored.
func NewSchema() Schema {
	return Schema{}
}

// AddIntField appends an INT column named name.
func (s *Schema) AddIntField(name string) {
	s.columns = append(s.columns, Column{Name: name, Type: storage.Int})
}

// AddTextField appends a TEXT column named name.
func (s *Schema) AddTextField(name string) {
	s.columns = append(s.columns, Column{Name: name, Type: storage.Text})
}

// Columns returns the schema's columns in declaration order. The returned
// slice is owned by the caller.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// HasField reports whether name was declared in the schema.
func (s Schema) HasField(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// Column returns the column named name and true, or the zero Column and
// false if name was not declared in the schema.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
