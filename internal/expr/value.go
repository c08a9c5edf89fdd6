// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"strconv"
)

// Kind is the kind of literal held in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindUint
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a literal bound to a query placeholder. It is one of Null, a
// string, a signed 64-bit integer or an unsigned 64-bit integer. Values are
// comparable with ==.
type Value struct {
	kind Kind
	s    string
	i    int64
	u    uint64
}

// Null returns the NULL value.
func Null() Value {
	return Value{kind: KindNull}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// IntValue returns a signed integer value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// UintValue returns an unsigned integer value.
func UintValue(u uint64) Value {
	return Value{kind: KindUint, u: u}
}

// Kind returns the kind of literal held in v.
func (v Value) Kind() Kind {
	return v.kind
}

// Interface returns the literal held in v as nil, a string, an int64 or a
// uint64.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return "String(" + strconv.Quote(v.s) + ")"
	case KindInt:
		return "Int(" + strconv.FormatInt(v.i, 10) + ")"
	case KindUint:
		return "Uint(" + strconv.FormatUint(v.u, 10) + ")"
	}
	return "Null"
}

// Expr returns v as an untyped expression. It can be compared with anything
// and combined with AND and OR.
func (v Value) Expr() Expr {
	return Expr{n: valueNode{v: v}}
}

type valueNode struct {
	v Value
}

func (n valueNode) types() []SQLType         { return []SQLType{TypeAny} }
func (n valueNode) shape() Shape             { return Atomic }
func (n valueNode) boolKind() BoolKind       { return SingleBoolean }
func (n valueNode) aggregation() Aggregation { return NonAggregate }
func (n valueNode) nullable() bool           { return n.v.kind == KindNull }
func (n valueNode) write(w *Writer)          { w.WriteParam(n.v) }

// literalNode is a value with a declared SQL type.
type literalNode struct {
	typ  SQLType
	v    Value
	null bool
}

func (n literalNode) types() []SQLType         { return []SQLType{n.typ} }
func (n literalNode) shape() Shape             { return Atomic }
func (n literalNode) boolKind() BoolKind       { return NotBoolean }
func (n literalNode) aggregation() Aggregation { return NonAggregate }
func (n literalNode) nullable() bool           { return n.null }
func (n literalNode) write(w *Writer)          { w.WriteParam(n.v) }

// Str returns a String typed literal.
func Str(s string) Expr {
	return Expr{n: literalNode{typ: TypeString, v: StringValue(s)}}
}

// Int returns an Int typed literal.
func Int(i int64) Expr {
	return Expr{n: literalNode{typ: TypeInt, v: IntValue(i)}}
}

// Uint returns a Uint typed literal.
func Uint(u uint64) Expr {
	return Expr{n: literalNode{typ: TypeUint, v: UintValue(u)}}
}

// OptStr returns a nullable String typed literal. A nil s is bound as NULL.
func OptStr(s *string) Expr {
	if s == nil {
		return Expr{n: literalNode{typ: TypeString, v: Null(), null: true}}
	}
	return Expr{n: literalNode{typ: TypeString, v: StringValue(*s), null: true}}
}

// OptInt returns a nullable Int typed literal. A nil i is bound as NULL.
func OptInt(i *int64) Expr {
	if i == nil {
		return Expr{n: literalNode{typ: TypeInt, v: Null(), null: true}}
	}
	return Expr{n: literalNode{typ: TypeInt, v: IntValue(*i), null: true}}
}

// OptUint returns a nullable Uint typed literal. A nil u is bound as NULL.
func OptUint(u *uint64) Expr {
	if u == nil {
		return Expr{n: literalNode{typ: TypeUint, v: Null(), null: true}}
	}
	return Expr{n: literalNode{typ: TypeUint, v: UintValue(*u), null: true}}
}

// literalValue returns the value bound by a literal expression. It reports
// false for expressions that are not literals.
func literalValue(e Expr) (Value, bool) {
	switch n := e.n.(type) {
	case valueNode:
		return n.v, true
	case literalNode:
		return n.v, true
	}
	return Value{}, false
}
