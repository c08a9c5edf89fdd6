// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package expr

import (
	"fmt"
	"io"
)

// Writer accumulates generated SQL and the values bound to its placeholders.
// The first write error is kept and all later writes are dropped, so callers
// only need to check Err once they are done.
type Writer struct {
	out io.Writer
	// params are the values for the "?" placeholders written so far, in
	// order of appearance in the SQL.
	params []Value
	err    error
}

// NewWriter returns a Writer that writes SQL to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteString writes a chunk of SQL.
func (w *Writer) WriteString(sql string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, sql); err != nil {
		w.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
}

// WriteParam writes a placeholder and binds v to it.
func (w *Writer) WriteParam(v Value) {
	w.WriteString("?")
	if w.err == nil {
		w.params = append(w.params, v)
	}
}

// WriteExpr writes the SQL for e.
func (w *Writer) WriteExpr(e Expr) {
	if e.n == nil {
		return
	}
	e.n.write(w)
}

// WriteList writes out the expressions separated by commas.
func (w *Writer) WriteList(list []Expr) {
	w.writeCommaSeparatedList(len(list), func(i int) {
		w.WriteExpr(list[i])
	})
}

// writeCommaSeparatedList calls writer for each of the n list elements,
// separating them with commas.
func (w *Writer) writeCommaSeparatedList(n int, writer func(i int)) {
	for i := 0; i < n; i++ {
		if i != 0 {
			w.WriteString(", ")
		}
		writer(i)
	}
}

// writeParenthesized writes e, wrapped in parentheses if wrap is set.
func (w *Writer) writeParenthesized(e Expr, wrap bool) {
	if wrap {
		w.WriteString("(")
	}
	w.WriteExpr(e)
	if wrap {
		w.WriteString(")")
	}
}

// Params returns the values bound so far.
func (w *Writer) Params() []Value {
	return w.params
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error {
	return w.err
}
