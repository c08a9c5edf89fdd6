// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package param hands built queries to database drivers. It converts the
// values bound to a query into driver arguments and rewrites placeholders for
// drivers that do not understand "?".
package param

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/canonical/aqueryon"
)

// Style is a placeholder syntax.
type Style int

const (
	// Question is the "?" placeholder used by MySQL and SQLite.
	Question Style = iota
	// Dollar is the "$1", "$2", ... placeholder used by PostgreSQL.
	Dollar
)

// Args returns the values bound to q as arguments for database/sql, in
// placeholder order. NULL becomes nil and the other values become a string,
// an int64 or a uint64.
func Args(q aqueryon.Query) []any {
	params := q.Params()
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Interface()
	}
	return args
}

// Rebind rewrites the "?" placeholders of sql to the given style. Question
// marks inside quoted strings and identifiers are left alone.
func Rebind(sql string, style Style) string {
	if style == Question {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql) + 8)
	n := 0
	// quote is the closing character of the quoted section being copied,
	// or 0 outside quotes.
	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Pgx returns q as a pgx.QueryRewriter. Passed as the first argument of a
// pgx query, it replaces the SQL and arguments of the call:
//
//	rows, err := conn.Query(ctx, "", param.Pgx(q))
func Pgx(q aqueryon.Query) pgx.QueryRewriter {
	return pgxRewriter{q: q}
}

type pgxRewriter struct {
	q aqueryon.Query
}

// RewriteQuery implements pgx.QueryRewriter. The sql and args given by pgx
// are ignored.
func (r pgxRewriter) RewriteQuery(ctx context.Context, conn *pgx.Conn, sql string, args []any) (string, []any, error) {
	return Rebind(r.q.SQL(), Dollar), Args(r.q), nil
}
