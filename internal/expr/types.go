// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"strconv"
	"strings"
)

// SQLType is the domain of values an expression can produce.
type SQLType int

const (
	// TypeAny is the type of untyped columns and raw values. It is
	// comparable with every other type.
	TypeAny SQLType = iota
	TypeString
	TypeInt
	TypeUint
	TypeBool
)

func (t SQLType) String() string {
	switch t {
	case TypeAny:
		return "Any"
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeUint:
		return "Uint"
	case TypeBool:
		return "Bool"
	}
	return "SQLType(" + strconv.Itoa(int(t)) + ")"
}

// ComparableWith reports whether values of type t can be compared with, or
// combined with, values of type u.
func (t SQLType) ComparableWith(u SQLType) bool {
	switch {
	case t == u:
		return true
	case t == TypeAny || u == TypeAny:
		return true
	case t == TypeInt && u == TypeUint, t == TypeUint && u == TypeInt:
		return true
	}
	return false
}

// comparableTypes reports whether two type lists have the same arity and are
// comparable member by member.
func comparableTypes(ts, us []SQLType) bool {
	if len(ts) != len(us) {
		return false
	}
	for i := range ts {
		if !ts[i].ComparableWith(us[i]) {
			return false
		}
	}
	return true
}

// typeListString formats a type list as it appears in error messages.
func typeListString(ts []SQLType) string {
	if len(ts) == 1 {
		return ts[0].String()
	}
	var sb strings.Builder
	sb.WriteString("(")
	for i, t := range ts {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Shape tells whether an expression needs parentheses when negated.
type Shape int

const (
	Atomic Shape = iota
	Composite
)

func (s Shape) String() string {
	if s == Composite {
		return "Composite"
	}
	return "Atomic"
}

// BoolKind classifies boolean expressions for AND/OR parenthesization.
type BoolKind int

const (
	NotBoolean BoolKind = iota
	SingleBoolean
	Conjunction
	Disjunction
)

func (k BoolKind) String() string {
	switch k {
	case NotBoolean:
		return "NotBoolean"
	case SingleBoolean:
		return "SingleBoolean"
	case Conjunction:
		return "Conjunction"
	case Disjunction:
		return "Disjunction"
	}
	return "BoolKind(" + strconv.Itoa(int(k)) + ")"
}

// Aggregation tells whether an expression is a per-row value or a summary of
// a whole group.
type Aggregation int

const (
	NonAggregate Aggregation = iota
	Aggregate
)

func (a Aggregation) String() string {
	if a == Aggregate {
		return "Aggregate"
	}
	return "NonAggregate"
}

// Combine returns Aggregate if either a or b is Aggregate.
func (a Aggregation) Combine(b Aggregation) Aggregation {
	if a == Aggregate || b == Aggregate {
		return Aggregate
	}
	return NonAggregate
}
