// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"github.com/canonical/aqueryon/internal/expr"
)

type (
	// Expr is a typed SQL expression. See [expr.Expr] for the operators it
	// supports.
	Expr = expr.Expr
	// Operand is anything that can be used as an operand of an operator: an
	// Expr, a Value or a *Builder used as a subquery.
	Operand = expr.Operand
	// Value is a literal bound to a placeholder of a Query.
	Value = expr.Value
	// Kind is the kind of literal held in a Value.
	Kind = expr.Kind
	// SQLType is the domain of values an expression can produce.
	SQLType = expr.SQLType
	// Shape tells atomic expressions apart from composite ones.
	Shape = expr.Shape
	// BoolKind classifies boolean expressions.
	BoolKind = expr.BoolKind
	// Aggregation tells aggregate expressions apart from per-row values.
	Aggregation = expr.Aggregation
	// Function describes an SQL function.
	Function = expr.Function
	// Order is an ORDER BY term.
	Order = expr.Order
)

const (
	KindNull   = expr.KindNull
	KindString = expr.KindString
	KindInt    = expr.KindInt
	KindUint   = expr.KindUint
)

const (
	TypeAny    = expr.TypeAny
	TypeString = expr.TypeString
	TypeInt    = expr.TypeInt
	TypeUint   = expr.TypeUint
	TypeBool   = expr.TypeBool
)

const (
	Atomic    = expr.Atomic
	Composite = expr.Composite
)

const (
	NotBoolean    = expr.NotBoolean
	SingleBoolean = expr.SingleBoolean
	Conjunction   = expr.Conjunction
	Disjunction   = expr.Disjunction
)

const (
	NonAggregate = expr.NonAggregate
	Aggregate    = expr.Aggregate
)

// Built-in functions. Call them with [Function.Call], for example
// Count.Call(ref.Column("id")).
var (
	Sum   = expr.Sum
	Count = expr.Count
	Date  = expr.Date
	Left  = expr.Left
)

// Null returns the NULL value.
func Null() Value { return expr.Null() }

// StringValue returns an untyped string value.
func StringValue(s string) Value { return expr.StringValue(s) }

// IntValue returns an untyped signed integer value.
func IntValue(i int64) Value { return expr.IntValue(i) }

// UintValue returns an untyped unsigned integer value.
func UintValue(u uint64) Value { return expr.UintValue(u) }

// Str returns a String typed literal.
func Str(s string) Expr { return expr.Str(s) }

// Int returns an Int typed literal.
func Int(i int64) Expr { return expr.Int(i) }

// Uint returns a Uint typed literal.
func Uint(u uint64) Expr { return expr.Uint(u) }

// OptStr returns a nullable String typed literal bound as NULL when s is nil.
func OptStr(s *string) Expr { return expr.OptStr(s) }

// OptInt returns a nullable Int typed literal bound as NULL when i is nil.
func OptInt(i *int64) Expr { return expr.OptInt(i) }

// OptUint returns a nullable Uint typed literal bound as NULL when u is nil.
func OptUint(u *uint64) Expr { return expr.OptUint(u) }

// Row returns the row value "(m1, m2, ...)".
func Row(members ...Operand) Expr { return expr.Row(members...) }

// Asc returns the ORDER BY term "x ASC".
func Asc(x Operand) Order { return expr.Asc(x) }

// Desc returns the ORDER BY term "x DESC".
func Desc(x Operand) Order { return expr.Desc(x) }
