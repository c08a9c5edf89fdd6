// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"github.com/pkg/errors"

	"github.com/canonical/aqueryon/internal/expr"
	"github.com/canonical/aqueryon/internal/typeinfo"
)

// Database tags the database a source belongs to. Sources can only be joined
// when their tags are equal or one of them is AnyDatabase.
type Database string

// AnyDatabase can be joined with sources from any database.
const AnyDatabase Database = ""

// compatibleDatabases returns the database of a join between sources from a
// and b, and whether they can be joined at all.
func compatibleDatabases(a, b Database) (Database, bool) {
	switch {
	case a == b:
		return a, true
	case a == AnyDatabase:
		return b, true
	case b == AnyDatabase:
		return a, true
	}
	return "", false
}

// Source is anything that can appear in a FROM clause: a Table or a *Builder
// embedded as a subquery.
type Source interface {
	// Database returns the database the source belongs to.
	Database() Database

	writeSource(w *expr.Writer)
	// column returns the type of the named column and whether it holds NULLs.
	column(name string) (expr.SQLType, bool, error)
	// sourceErr returns an error if the source cannot be attached.
	sourceErr() error
}

// Table is a named relation.
type Table struct {
	name string
	db   Database
	// info is nil for tables created with NewTable, whose columns are all
	// of type Any.
	info *typeinfo.Info
}

// NewTable returns an untyped table. Every column taken from it has type
// Any.
func NewTable(name string) Table {
	return Table{name: name}
}

// TableOf returns a table whose columns are the "db" tagged fields of the
// struct type of row. Column types follow the field types: strings are
// String, signed integers Int, unsigned integers Uint, booleans Bool and
// everything else Any. Pointer and sql.Null* fields are nullable.
func TableOf(name string, row any) (Table, error) {
	info, err := typeinfo.GetTypeInfo(row)
	if err != nil {
		return Table{}, errors.Wrapf(err, "cannot create table %s", name)
	}
	return Table{name: name, info: info}, nil
}

// MustTableOf is the same as [TableOf] except that it panics on error.
func MustTableOf(name string, row any) Table {
	t, err := TableOf(name, row)
	if err != nil {
		panic(err)
	}
	return t
}

// In returns a copy of t belonging to database db.
func (t Table) In(db Database) Table {
	t.db = db
	return t
}

// Name returns the name of the table.
func (t Table) Name() string {
	return t.name
}

// Columns returns the names of the columns of a table created with TableOf,
// in field order. It returns nil for untyped tables.
func (t Table) Columns() []string {
	if t.info == nil {
		return nil
	}
	names := make([]string, len(t.info.Columns))
	for i, col := range t.info.Columns {
		names[i] = col.Name
	}
	return names
}

// Database returns the database the table belongs to.
func (t Table) Database() Database {
	return t.db
}

func (t Table) writeSource(w *expr.Writer) {
	w.WriteString(t.name)
}

func (t Table) column(name string) (expr.SQLType, bool, error) {
	if t.info == nil {
		return expr.TypeAny, false, nil
	}
	col, ok := t.info.NameToColumn[name]
	if !ok {
		return expr.TypeAny, false, errors.Wrapf(ErrUnknownColumn, "cannot find column %q in table %s", name, t.name)
	}
	return col.Type, col.Nullable, nil
}

func (t Table) sourceErr() error {
	if t.name == "" {
		return errors.New("cannot use table with empty name")
	}
	return nil
}

// fromNode is a node of the tree written in the FROM clause.
type fromNode interface {
	database() Database
	write(w *expr.Writer)
	// nullable returns a copy of the tree whose sources may all produce
	// NULLs.
	nullable() fromNode
}

// boundSource is a source attached to a builder under an alias.
type boundSource struct {
	src   Source
	alias SourceAlias
	null  bool
}

func (b boundSource) database() Database {
	return b.src.Database()
}

func (b boundSource) write(w *expr.Writer) {
	b.src.writeSource(w)
	w.WriteString(" as ")
	w.WriteString(b.alias.String())
}

func (b boundSource) nullable() fromNode {
	b.null = true
	return b
}

func (b boundSource) ref() Ref {
	return Ref{src: b.src, alias: b.alias, nullable: b.null, bound: true}
}

type joinKind int

const (
	innerJoin joinKind = iota
	leftOuterJoin
	rightOuterJoin
	crossJoin
)

func (k joinKind) String() string {
	switch k {
	case leftOuterJoin:
		return "LEFT OUTER JOIN"
	case rightOuterJoin:
		return "RIGHT OUTER JOIN"
	case crossJoin:
		return "CROSS JOIN"
	}
	return "JOIN"
}

type joinNode struct {
	kind  joinKind
	db    Database
	left  fromNode
	right boundSource
	// on is unused for cross joins.
	on expr.Expr
}

func (j joinNode) database() Database {
	return j.db
}

func (j joinNode) write(w *expr.Writer) {
	j.left.write(w)
	w.WriteString(" " + j.kind.String() + " ")
	j.right.write(w)
	if j.kind != crossJoin {
		w.WriteString(" ON ")
		w.WriteExpr(j.on)
	}
}

func (j joinNode) nullable() fromNode {
	j.left = j.left.nullable()
	j.right.null = true
	return j
}

// Ref refers to a source attached to a builder. It is used to build
// expressions on the columns of that source.
type Ref struct {
	src      Source
	alias    SourceAlias
	nullable bool
	bound    bool
}

// Alias returns the alias the source is written with, such as "t1".
func (r Ref) Alias() string {
	return r.alias.String()
}

// Nullable reports whether the source may produce NULLs for every column
// because it is on the outer side of an outer join.
func (r Ref) Nullable() bool {
	return r.nullable
}

// Column returns the named column of the source. Columns of a table created
// with TableOf take their type from the struct field; others have type Any.
func (r Ref) Column(name string) Expr {
	if !r.bound {
		return expr.Invalid(errors.Wrapf(ErrUnboundSource, "cannot take column %q", name))
	}
	typ, nullable, err := r.src.column(name)
	if err != nil {
		return expr.Invalid(err)
	}
	return expr.Column(r.alias, name, typ, r.nullable || nullable)
}

// TypedColumn returns the named column of the source with the given type.
func (r Ref) TypedColumn(name string, typ SQLType) Expr {
	if !r.bound {
		return expr.Invalid(errors.Wrapf(ErrUnboundSource, "cannot take column %q", name))
	}
	return expr.Column(r.alias, name, typ, r.nullable)
}
