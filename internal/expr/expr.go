// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"fmt"
)

// Operand is anything that can be used as an operand of an SQL operator.
type Operand interface {
	Expr() Expr
}

// node is implemented by every kind of expression in the tree.
type node interface {
	types() []SQLType
	shape() Shape
	boolKind() BoolKind
	aggregation() Aggregation
	nullable() bool
	write(w *Writer)
}

// Expr is a typed SQL expression. Exprs are immutable; operators return new
// expressions and never modify their operands.
//
// An operator applied to operands that break its typing rules returns an Expr
// holding the error. Any expression built on top of it holds the same error,
// and builders refuse it.
type Expr struct {
	n   node
	err error
}

func errorExpr(err error) Expr {
	return Expr{err: err}
}

// Invalid returns an expression holding err.
func Invalid(err error) Expr {
	return errorExpr(err)
}

// Expr returns e.
func (e Expr) Expr() Expr {
	return e
}

// Err returns the error recorded when e was constructed, if any.
func (e Expr) Err() error {
	if e.err != nil {
		return e.err
	}
	if e.n == nil {
		return ErrEmptyExpression
	}
	return nil
}

// Type returns the type of a scalar expression. Rows of more than one member
// have no single type and report TypeAny; use Types for those.
func (e Expr) Type() SQLType {
	ts := e.Types()
	if len(ts) == 1 {
		return ts[0]
	}
	return TypeAny
}

// Types returns the type of each member of the expression. Scalar
// expressions have exactly one.
func (e Expr) Types() []SQLType {
	if e.n == nil {
		return nil
	}
	return e.n.types()
}

// Shape returns whether e needs parentheses when it is negated.
func (e Expr) Shape() Shape {
	if e.n == nil {
		return Atomic
	}
	return e.n.shape()
}

// BoolKind returns the kind of boolean expression e is.
func (e Expr) BoolKind() BoolKind {
	if e.n == nil {
		return NotBoolean
	}
	return e.n.boolKind()
}

// Aggregation returns whether e summarises a group of rows.
func (e Expr) Aggregation() Aggregation {
	if e.n == nil {
		return NonAggregate
	}
	return e.n.aggregation()
}

// Nullable reports whether e may evaluate to NULL because of a nullable
// column or literal.
func (e Expr) Nullable() bool {
	if e.n == nil {
		return false
	}
	return e.n.nullable()
}

// Resolve turns operands into expressions. It returns the first error held
// by any of them.
func Resolve(ops ...Operand) ([]Expr, error) {
	es := make([]Expr, len(ops))
	for i, op := range ops {
		if op == nil {
			return nil, ErrEmptyExpression
		}
		es[i] = op.Expr()
		if err := es[i].Err(); err != nil {
			return nil, err
		}
	}
	return es, nil
}

// IsBoolean reports whether e can be an operand of AND, OR or NOT.
func IsBoolean(e Expr) bool {
	ts := e.Types()
	return len(ts) == 1 && ts[0].ComparableWith(TypeBool)
}

// IsBool reports whether e is a single Bool, as required of the condition
// of a WHERE, HAVING or ON clause. Untyped columns and values are not.
func IsBool(e Expr) bool {
	ts := e.Types()
	return len(ts) == 1 && ts[0] == TypeBool
}

// Column returns a reference to the column name of the source rendered as
// alias. The alias is read each time the column is written.
func Column(alias fmt.Stringer, name string, typ SQLType, nullable bool) Expr {
	return Expr{n: columnNode{alias: alias, name: name, typ: typ, null: nullable}}
}

type columnNode struct {
	alias fmt.Stringer
	name  string
	typ   SQLType
	null  bool
}

func (n columnNode) types() []SQLType         { return []SQLType{n.typ} }
func (n columnNode) shape() Shape             { return Atomic }
func (n columnNode) boolKind() BoolKind       { return NotBoolean }
func (n columnNode) aggregation() Aggregation { return NonAggregate }
func (n columnNode) nullable() bool           { return n.null }

func (n columnNode) write(w *Writer) {
	w.WriteString(n.alias.String())
	w.WriteString(".")
	w.WriteString(n.name)
}
