// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"github.com/pkg/errors"
)

var boolType = []SQLType{TypeBool}

// comparisonNode is a binary comparison such as "a = b" or "a LIKE b".
type comparisonNode struct {
	op   string
	l, r Expr
}

func (n comparisonNode) types() []SQLType   { return boolType }
func (n comparisonNode) shape() Shape       { return Composite }
func (n comparisonNode) boolKind() BoolKind { return SingleBoolean }
func (n comparisonNode) nullable() bool     { return n.l.Nullable() || n.r.Nullable() }

func (n comparisonNode) aggregation() Aggregation {
	return n.l.Aggregation().Combine(n.r.Aggregation())
}

func (n comparisonNode) write(w *Writer) {
	w.WriteExpr(n.l)
	w.WriteString(" " + n.op + " ")
	w.WriteExpr(n.r)
}

func (e Expr) compare(op string, rhs Operand) Expr {
	es, err := Resolve(e, rhs)
	if err != nil {
		return errorExpr(err)
	}
	l, r := es[0], es[1]
	if !comparableTypes(l.Types(), r.Types()) {
		return errorExpr(incomparableError(op, l.Types(), r.Types()))
	}
	return Expr{n: comparisonNode{op: op, l: l, r: r}}
}

// Eq returns "e = rhs".
func (e Expr) Eq(rhs Operand) Expr { return e.compare("=", rhs) }

// Ne returns "e != rhs".
func (e Expr) Ne(rhs Operand) Expr { return e.compare("!=", rhs) }

// Gt returns "e > rhs".
func (e Expr) Gt(rhs Operand) Expr { return e.compare(">", rhs) }

// Ge returns "e >= rhs".
func (e Expr) Ge(rhs Operand) Expr { return e.compare(">=", rhs) }

// Lt returns "e < rhs".
func (e Expr) Lt(rhs Operand) Expr { return e.compare("<", rhs) }

// Le returns "e <= rhs".
func (e Expr) Le(rhs Operand) Expr { return e.compare("<=", rhs) }

// Like returns "e LIKE pattern".
func (e Expr) Like(pattern Operand) Expr { return e.compare("LIKE", pattern) }

// NotLike returns "e NOT LIKE pattern".
func (e Expr) NotLike(pattern Operand) Expr { return e.compare("NOT LIKE", pattern) }

type betweenNode struct {
	target, lower, upper Expr
}

func (n betweenNode) types() []SQLType   { return boolType }
func (n betweenNode) shape() Shape       { return Composite }
func (n betweenNode) boolKind() BoolKind { return SingleBoolean }
func (n betweenNode) nullable() bool     { return n.target.Nullable() }

func (n betweenNode) aggregation() Aggregation {
	return n.target.Aggregation().Combine(n.lower.Aggregation()).Combine(n.upper.Aggregation())
}

func (n betweenNode) write(w *Writer) {
	w.WriteExpr(n.target)
	w.WriteString(" BETWEEN ")
	w.WriteExpr(n.lower)
	w.WriteString(" AND ")
	w.WriteExpr(n.upper)
}

// Between returns "e BETWEEN lower AND upper".
func (e Expr) Between(lower, upper Operand) Expr {
	es, err := Resolve(e, lower, upper)
	if err != nil {
		return errorExpr(err)
	}
	t, l, u := es[0], es[1], es[2]
	if !comparableTypes(t.Types(), l.Types()) {
		return errorExpr(incomparableError("BETWEEN", t.Types(), l.Types()))
	}
	if !comparableTypes(t.Types(), u.Types()) {
		return errorExpr(incomparableError("BETWEEN", t.Types(), u.Types()))
	}
	return Expr{n: betweenNode{target: t, lower: l, upper: u}}
}

// inNode compares an expression with a list of literals.
type inNode struct {
	not  bool
	l    Expr
	vals []Value
}

func (n inNode) types() []SQLType         { return boolType }
func (n inNode) shape() Shape             { return Composite }
func (n inNode) boolKind() BoolKind       { return SingleBoolean }
func (n inNode) aggregation() Aggregation { return n.l.Aggregation() }
func (n inNode) nullable() bool           { return n.l.Nullable() }

func (n inNode) write(w *Writer) {
	w.WriteExpr(n.l)
	if n.not {
		w.WriteString(" NOT IN (")
	} else {
		w.WriteString(" IN (")
	}
	w.writeCommaSeparatedList(len(n.vals), func(i int) {
		w.WriteParam(n.vals[i])
	})
	w.WriteString(")")
}

func (e Expr) in(not bool, list []Operand) Expr {
	op := "IN"
	if not {
		op = "NOT IN"
	}
	l, err := Resolve(e)
	if err != nil {
		return errorExpr(err)
	}
	if len(list) == 0 {
		return errorExpr(errors.Wrapf(ErrArity, "cannot apply %s to an empty list", op))
	}
	vals, err := Resolve(list...)
	if err != nil {
		return errorExpr(err)
	}
	// The list takes the type of its first typed member. Untyped values fit
	// any list.
	listType := TypeAny
	params := make([]Value, len(vals))
	for i, v := range vals {
		lit, ok := literalValue(v)
		if !ok {
			return errorExpr(errors.Wrapf(ErrNotLiteral, "cannot apply %s to a list holding a non-literal at position %d", op, i))
		}
		params[i] = lit
		t := v.Type()
		switch {
		case t == TypeAny:
		case listType == TypeAny:
			listType = t
		case t != listType:
			return errorExpr(errors.Wrapf(ErrIncomparable, "cannot apply %s to a list mixing %s and %s", op, listType, t))
		}
	}
	if !comparableTypes(l[0].Types(), []SQLType{listType}) {
		return errorExpr(incomparableError(op, l[0].Types(), []SQLType{listType}))
	}
	return Expr{n: inNode{not: not, l: l[0], vals: params}}
}

// In returns "e IN (v1, v2, ...)". Each list member must be a literal and
// is bound as a parameter.
func (e Expr) In(list ...Operand) Expr { return e.in(false, list) }

// NotIn returns "e NOT IN (v1, v2, ...)".
func (e Expr) NotIn(list ...Operand) Expr { return e.in(true, list) }

type nullCheckNode struct {
	not    bool
	target Expr
}

func (n nullCheckNode) types() []SQLType         { return boolType }
func (n nullCheckNode) shape() Shape             { return Atomic }
func (n nullCheckNode) boolKind() BoolKind       { return SingleBoolean }
func (n nullCheckNode) aggregation() Aggregation { return n.target.Aggregation() }
func (n nullCheckNode) nullable() bool           { return false }

func (n nullCheckNode) write(w *Writer) {
	w.WriteExpr(n.target)
	if n.not {
		w.WriteString(" IS NOT NULL")
	} else {
		w.WriteString(" IS NULL")
	}
}

// IsNull returns "e IS NULL".
func (e Expr) IsNull() Expr {
	if err := e.Err(); err != nil {
		return errorExpr(err)
	}
	return Expr{n: nullCheckNode{target: e}}
}

// IsNotNull returns "e IS NOT NULL".
func (e Expr) IsNotNull() Expr {
	if err := e.Err(); err != nil {
		return errorExpr(err)
	}
	return Expr{n: nullCheckNode{not: true, target: e}}
}

// logicalNode joins two conditions with AND or OR.
type logicalNode struct {
	kind BoolKind
	l, r Expr
}

func (n logicalNode) types() []SQLType   { return boolType }
func (n logicalNode) shape() Shape       { return Composite }
func (n logicalNode) boolKind() BoolKind { return n.kind }
func (n logicalNode) nullable() bool     { return n.l.Nullable() || n.r.Nullable() }

func (n logicalNode) aggregation() Aggregation {
	return n.l.Aggregation().Combine(n.r.Aggregation())
}

func (n logicalNode) write(w *Writer) {
	// An operand only needs parentheses when it binds looser than the
	// operator joining it: OR inside AND, or AND inside OR.
	op, loose := " AND ", Disjunction
	if n.kind == Disjunction {
		op, loose = " OR ", Conjunction
	}
	w.writeParenthesized(n.l, n.l.BoolKind() == loose)
	w.WriteString(op)
	w.writeParenthesized(n.r, n.r.BoolKind() == loose)
}

func (e Expr) logical(kind BoolKind, rhs Operand) Expr {
	op := "AND"
	if kind == Disjunction {
		op = "OR"
	}
	es, err := Resolve(e, rhs)
	if err != nil {
		return errorExpr(err)
	}
	for _, x := range es {
		if !IsBoolean(x) {
			return errorExpr(notBooleanError(op, x.Types()))
		}
	}
	return Expr{n: logicalNode{kind: kind, l: es[0], r: es[1]}}
}

// And returns "e AND rhs", parenthesizing either side as needed.
func (e Expr) And(rhs Operand) Expr { return e.logical(Conjunction, rhs) }

// Or returns "e OR rhs", parenthesizing either side as needed.
func (e Expr) Or(rhs Operand) Expr { return e.logical(Disjunction, rhs) }

type notNode struct {
	target Expr
}

func (n notNode) types() []SQLType         { return boolType }
func (n notNode) shape() Shape             { return Atomic }
func (n notNode) boolKind() BoolKind       { return SingleBoolean }
func (n notNode) aggregation() Aggregation { return n.target.Aggregation() }
func (n notNode) nullable() bool           { return n.target.Nullable() }

func (n notNode) write(w *Writer) {
	w.WriteString("NOT ")
	w.writeParenthesized(n.target, n.target.Shape() == Composite)
}

// Not returns "NOT e", or "NOT (e)" when e is not atomic.
func (e Expr) Not() Expr {
	if err := e.Err(); err != nil {
		return errorExpr(err)
	}
	if !IsBoolean(e) {
		return errorExpr(notBooleanError("NOT", e.Types()))
	}
	return Expr{n: notNode{target: e}}
}
