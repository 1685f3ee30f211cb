package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xxx0624/5300-Ladybug/heaptable"
	"github.com/xxx0624/5300-Ladybug/storage"
)

// parseSchema parses a "name:TYPE,name:TYPE,..." schema flag value into a
// heaptable.Schema. TYPE is either INT or TEXT, case-insensitive.
func parseSchema(spec string) (heaptable.Schema, error) {
	schema := heaptable.NewSchema()
	if strings.TrimSpace(spec) == "" {
		return schema, fmt.Errorf("--schema must declare at least one column")
	}

	for _, field := range strings.Split(spec, ",") {
		parts := strings.SplitN(field, ":", 2)
		if len(parts) != 2 {
			return heaptable.Schema{}, fmt.Errorf("invalid column %q, want name:TYPE", field)
		}
		name := strings.TrimSpace(parts[0])
		typ := strings.ToUpper(strings.TrimSpace(parts[1]))
		switch typ {
		case "INT":
			schema.AddIntField(name)
		case "TEXT":
			schema.AddTextField(name)
		default:
			return heaptable.Schema{}, fmt.Errorf("unknown column type %q for %q", typ, name)
		}
	}
	return schema, nil
}

// parseRow turns a list of "name=value" --set flags into a heaptable.Row,
// using schema to decide whether each value should be parsed as an INT or
// taken verbatim as TEXT.
func parseRow(sets []string, schema heaptable.Schema) (heaptable.Row, error) {
	row := make(heaptable.Row, len(sets))
	for _, set := range sets {
		parts := strings.SplitN(set, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --set %q, want name=value", set)
		}
		name, raw := parts[0], parts[1]

		col, ok := schema.Column(name)
		if !ok {
			return nil, fmt.Errorf("--set: column %q is not in the schema", name)
		}

		switch col.Type {
		case storage.Int:
			n, err := strconv.ParseInt(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("--set %s: %w", name, err)
			}
			row[name] = storage.IntValue(int32(n))
		case storage.Text:
			row[name] = storage.TextValue([]byte(raw))
		}
	}
	return row, nil
}

