// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"github.com/pkg/errors"
)

// Row returns the row value "(m1, m2, ...)". A row of one member has the
// types of that member; a longer row has the types of all its members in
// order and can be compared with rows or subqueries of the same arity.
func Row(members ...Operand) Expr {
	if len(members) == 0 {
		return errorExpr(errors.Wrap(ErrArity, "cannot build an empty row"))
	}
	es, err := Resolve(members...)
	if err != nil {
		return errorExpr(err)
	}
	return Expr{n: rowNode{members: es}}
}

type rowNode struct {
	members []Expr
}

func (n rowNode) types() []SQLType {
	var ts []SQLType
	for _, m := range n.members {
		ts = append(ts, m.Types()...)
	}
	return ts
}

func (n rowNode) shape() Shape {
	if len(n.members) == 1 {
		return n.members[0].Shape()
	}
	return Composite
}

func (n rowNode) boolKind() BoolKind {
	if len(n.members) == 1 {
		return n.members[0].BoolKind()
	}
	return SingleBoolean
}

func (n rowNode) aggregation() Aggregation {
	return AggregationOf(n.members)
}

func (n rowNode) nullable() bool {
	for _, m := range n.members {
		if m.Nullable() {
			return true
		}
	}
	return false
}

func (n rowNode) write(w *Writer) {
	w.WriteString("(")
	w.WriteList(n.members)
	w.WriteString(")")
}

// AggregationOf combines the aggregation of every expression in the list.
func AggregationOf(es []Expr) Aggregation {
	a := NonAggregate
	for _, e := range es {
		a = a.Combine(e.Aggregation())
	}
	return a
}

// TypesOf returns the types of every expression in the list, in order.
func TypesOf(es []Expr) []SQLType {
	var ts []SQLType
	for _, e := range es {
		ts = append(ts, e.Types()...)
	}
	return ts
}

// Order is an ORDER BY term.
type Order struct {
	e    Expr
	desc bool
}

// Asc returns the ORDER BY term "x ASC".
func Asc(x Operand) Order {
	return newOrder(x, false)
}

// Desc returns the ORDER BY term "x DESC".
func Desc(x Operand) Order {
	return newOrder(x, true)
}

func newOrder(x Operand, desc bool) Order {
	es, err := Resolve(x)
	if err != nil {
		return Order{e: errorExpr(err), desc: desc}
	}
	return Order{e: es[0], desc: desc}
}

// Err returns the error held by the ordered expression, if any.
func (o Order) Err() error {
	return o.e.Err()
}

// WriteOrders writes out the ORDER BY terms separated by commas.
func (w *Writer) WriteOrders(orders []Order) {
	w.writeCommaSeparatedList(len(orders), func(i int) {
		w.WriteExpr(orders[i].e)
		if orders[i].desc {
			w.WriteString(" DESC")
		} else {
			w.WriteString(" ASC")
		}
	})
}
