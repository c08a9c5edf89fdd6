// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"github.com/pkg/errors"
)

// Subquery is a SELECT statement that can be embedded in another one.
type Subquery interface {
	// ProjectionTypes returns the types of the selected columns.
	ProjectionTypes() []SQLType
	// WriteSubquery writes the statement in parentheses and without the
	// terminating semicolon.
	WriteSubquery(w *Writer)
}

// SubqueryExpr returns q as an expression. Its types are the types of the
// columns q selects. If err is not nil the returned expression holds it.
func SubqueryExpr(q Subquery, err error) Expr {
	if err != nil {
		return errorExpr(err)
	}
	return Expr{n: subqueryNode{q: q}}
}

type subqueryNode struct {
	q Subquery
}

func (n subqueryNode) types() []SQLType         { return n.q.ProjectionTypes() }
func (n subqueryNode) shape() Shape             { return Atomic }
func (n subqueryNode) boolKind() BoolKind       { return NotBoolean }
func (n subqueryNode) aggregation() Aggregation { return NonAggregate }

// A subquery returning no rows evaluates to NULL.
func (n subqueryNode) nullable() bool  { return true }
func (n subqueryNode) write(w *Writer) { n.q.WriteSubquery(w) }

// quantifiedNode compares an expression with every row of a subquery.
type quantifiedNode struct {
	op string
	l  Expr
	q  Subquery
}

func (n quantifiedNode) types() []SQLType         { return boolType }
func (n quantifiedNode) shape() Shape             { return Composite }
func (n quantifiedNode) boolKind() BoolKind       { return SingleBoolean }
func (n quantifiedNode) aggregation() Aggregation { return NonAggregate }
func (n quantifiedNode) nullable() bool           { return true }

func (n quantifiedNode) write(w *Writer) {
	w.WriteExpr(n.l)
	w.WriteString(" " + n.op + " ")
	n.q.WriteSubquery(w)
}

func (e Expr) quantified(op string, sub Operand) Expr {
	es, err := Resolve(e, sub)
	if err != nil {
		return errorExpr(err)
	}
	sn, ok := es[1].n.(subqueryNode)
	if !ok {
		return errorExpr(errors.Wrapf(ErrSubqueryRequired, "cannot apply %s to %s", op, typeListString(es[1].Types())))
	}
	if !comparableTypes(es[0].Types(), sn.q.ProjectionTypes()) {
		return errorExpr(incomparableError(op, es[0].Types(), sn.q.ProjectionTypes()))
	}
	return Expr{n: quantifiedNode{op: op, l: es[0], q: sn.q}}
}

// EqAny returns "e = ANY (sub)".
func (e Expr) EqAny(sub Operand) Expr { return e.quantified("= ANY", sub) }

// NeAny returns "e != ANY (sub)".
func (e Expr) NeAny(sub Operand) Expr { return e.quantified("!= ANY", sub) }

// GtAny returns "e > ANY (sub)".
func (e Expr) GtAny(sub Operand) Expr { return e.quantified("> ANY", sub) }

// GeAny returns "e >= ANY (sub)".
func (e Expr) GeAny(sub Operand) Expr { return e.quantified(">= ANY", sub) }

// LtAny returns "e < ANY (sub)".
func (e Expr) LtAny(sub Operand) Expr { return e.quantified("< ANY", sub) }

// LeAny returns "e <= ANY (sub)".
func (e Expr) LeAny(sub Operand) Expr { return e.quantified("<= ANY", sub) }

// EqAll returns "e = ALL (sub)".
func (e Expr) EqAll(sub Operand) Expr { return e.quantified("= ALL", sub) }

// NeAll returns "e != ALL (sub)".
func (e Expr) NeAll(sub Operand) Expr { return e.quantified("!= ALL", sub) }

// GtAll returns "e > ALL (sub)".
func (e Expr) GtAll(sub Operand) Expr { return e.quantified("> ALL", sub) }

// GeAll returns "e >= ALL (sub)".
func (e Expr) GeAll(sub Operand) Expr { return e.quantified(">= ALL", sub) }

// LtAll returns "e < ALL (sub)".
func (e Expr) LtAll(sub Operand) Expr { return e.quantified("< ALL", sub) }

// LeAll returns "e <= ALL (sub)".
func (e Expr) LeAll(sub Operand) Expr { return e.quantified("<= ALL", sub) }
