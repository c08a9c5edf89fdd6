// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"log/slog"
)

// Query is a built SELECT statement. The i-th "?" placeholder in the SQL is
// bound to the i-th value of Params.
type Query struct {
	sql    string
	params []Value
}

// SQL returns the text of the statement.
func (q Query) SQL() string {
	return q.sql
}

// Params returns the values bound to the placeholders, in order.
func (q Query) Params() []Value {
	params := make([]Value, len(q.params))
	copy(params, q.params)
	return params
}

func (q Query) String() string {
	return q.sql
}

// LogValue implements slog.LogValuer. The query is logged as a group holding
// the SQL and its parameters.
func (q Query) LogValue() slog.Value {
	params := make([]string, len(q.params))
	for i, p := range q.params {
		params[i] = p.String()
	}
	return slog.GroupValue(
		slog.String("sql", q.sql),
		slog.Any("params", params),
	)
}
