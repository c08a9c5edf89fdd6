// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"github.com/pkg/errors"
)

var (
	// ErrIncomparable is returned when the operands of an operator have
	// types that cannot be compared.
	ErrIncomparable = errors.New("incomparable types")
	// ErrNotBoolean is returned when a boolean expression is required.
	ErrNotBoolean = errors.New("expression is not boolean")
	// ErrAggregate is returned when an aggregate expression is used where
	// only per-row values are allowed.
	ErrAggregate = errors.New("aggregate expression not allowed")
	// ErrArity is returned when an operator, function or list gets the wrong
	// number of operands.
	ErrArity = errors.New("wrong number of operands")
	// ErrEmptyExpression is returned when a zero Expr is used.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrSubqueryRequired is returned when a quantified comparison is given
	// an operand that is not a subquery.
	ErrSubqueryRequired = errors.New("subquery required")
	// ErrNotLiteral is returned when a list that must hold literal values
	// holds something else.
	ErrNotLiteral = errors.New("literal value required")

	// ErrWrite is returned when the generated SQL cannot be written out.
	ErrWrite = errors.New("cannot write sql")
)

func incomparableError(op string, l, r []SQLType) error {
	return errors.Wrapf(ErrIncomparable, "cannot apply %s to %s and %s", op, typeListString(l), typeListString(r))
}

func notBooleanError(op string, ts []SQLType) error {
	return errors.Wrapf(ErrNotBoolean, "cannot apply %s to %s", op, typeListString(ts))
}
