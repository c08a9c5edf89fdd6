package typeinfo

import (
	"github.com/canonical/aqueryon/internal/expr"
)

// Column represents a struct field mapped to a table column.
type Column struct {
	// Name is the column name taken from the field's "db" tag.
	Name string

	// Type is the SQL type of values stored in the column.
	Type expr.SQLType

	// Nullable is true for pointer and sql.Null* fields, and for fields
	// with the "nullable" option in their "db" tag.
	Nullable bool
}

// Info represents reflected information about a struct type.
type Info struct {
	// Columns lists the tagged fields in declaration order.
	Columns []Column

	// Relate column names to columns.
	NameToColumn map[string]Column
}
