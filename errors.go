// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"github.com/pkg/errors"

	"github.com/canonical/aqueryon/internal/expr"
)

// Errors reported while building expressions and queries. Every error
// returned by this package wraps one of them; use errors.Is to tell them
// apart.
var (
	ErrIncomparable     = expr.ErrIncomparable
	ErrNotBoolean       = expr.ErrNotBoolean
	ErrAggregate        = expr.ErrAggregate
	ErrArity            = expr.ErrArity
	ErrEmptyExpression  = expr.ErrEmptyExpression
	ErrSubqueryRequired = expr.ErrSubqueryRequired
	ErrNotLiteral       = expr.ErrNotLiteral

	// ErrClauseOrder is returned when a clause is added to a builder in a
	// state that does not allow it.
	ErrClauseOrder = errors.New("illegal clause order")
	// ErrDatabaseMismatch is returned when joining sources that belong to
	// different databases.
	ErrDatabaseMismatch = errors.New("incompatible databases")
	// ErrUnknownColumn is returned when a typed table has no column with
	// the requested name.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnboundSource is returned when a column is taken from a Ref that
	// was not returned by a successful From or join.
	ErrUnboundSource = errors.New("source not bound to a builder")
	// ErrNegativeLimit is returned when a limit or offset is negative.
	ErrNegativeLimit = errors.New("negative limit")

	// ErrWrite is returned by Build when the SQL cannot be written out.
	ErrWrite = expr.ErrWrite
	// ErrEncoding is returned by Build when the generated SQL is not valid
	// UTF-8.
	ErrEncoding = errors.New("sql is not valid utf-8")
)
