// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"github.com/pkg/errors"
)

// Function describes an SQL function. Aggregation is fixed by the function
// and does not depend on its arguments.
type Function struct {
	Name        string
	Params      []SQLType
	Result      SQLType
	Aggregation Aggregation
}

var (
	// Sum is the aggregate function sum(Int) Int.
	Sum = Function{Name: "sum", Params: []SQLType{TypeInt}, Result: TypeInt, Aggregation: Aggregate}
	// Count is the aggregate function count(Any) Int.
	Count = Function{Name: "count", Params: []SQLType{TypeAny}, Result: TypeInt, Aggregation: Aggregate}
	// Date is the function date(String) String.
	Date = Function{Name: "date", Params: []SQLType{TypeString}, Result: TypeString, Aggregation: NonAggregate}
	// Left is the function left(String, Int) String.
	Left = Function{Name: "left", Params: []SQLType{TypeString, TypeInt}, Result: TypeString, Aggregation: NonAggregate}
)

// Call returns the expression "name(args...)". The number of arguments must
// match Params and each argument must be comparable with its parameter type.
func (f Function) Call(args ...Operand) Expr {
	if len(args) != len(f.Params) {
		return errorExpr(errors.Wrapf(ErrArity, "cannot call %s with %d arguments, need %d", f.Name, len(args), len(f.Params)))
	}
	es, err := Resolve(args...)
	if err != nil {
		return errorExpr(err)
	}
	for i, a := range es {
		if !comparableTypes(a.Types(), f.Params[i:i+1]) {
			return errorExpr(errors.Wrapf(ErrIncomparable, "cannot call %s with %s as argument %d, need %s",
				f.Name, typeListString(a.Types()), i+1, f.Params[i]))
		}
	}
	return Expr{n: functionNode{f: f, args: es}}
}

type functionNode struct {
	f    Function
	args []Expr
}

func (n functionNode) types() []SQLType         { return []SQLType{n.f.Result} }
func (n functionNode) shape() Shape             { return Atomic }
func (n functionNode) boolKind() BoolKind       { return NotBoolean }
func (n functionNode) aggregation() Aggregation { return n.f.Aggregation }

func (n functionNode) nullable() bool {
	for _, a := range n.args {
		if a.Nullable() {
			return true
		}
	}
	return false
}

func (n functionNode) write(w *Writer) {
	w.WriteString(n.f.Name)
	w.WriteString("(")
	w.WriteList(n.args)
	w.WriteString(")")
}
