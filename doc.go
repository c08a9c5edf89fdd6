/*
Package aqueryon builds SQL SELECT statements from typed expressions.

A statement is assembled one clause at a time, in SQL order, and rendered into
SQL text with "?" placeholders and the list of values bound to them. Mistakes
are caught as the statement is assembled: comparing values of incomparable
types, aggregating in a WHERE clause, adding clauses out of order or joining
tables from different databases.

# Basics

A builder starts empty. Attaching a source returns a Ref that is used to name
the columns of that source:

	b, person := aqueryon.New().From(aqueryon.NewTable("person"))
	q, err := b.
		Where(person.Column("name").Eq(aqueryon.Str("Fred"))).
		Select(person.Column("id"), person.Column("team")).
		Build()

q.SQL() is

	SELECT t1.id, t1.team FROM person as t1 WHERE t1.name = ?;

and q.Params() is [String("Fred")].

# Aliases

Each source is written with an alias made of a prefix shared by the whole
builder lineage, "t" by default, and the position in which the source was
attached. Builder.SetAliasPrefix changes the prefix of every source of the
lineage, including those attached before the call.

# Types

Columns of tables created with NewTable have type Any, which can be compared
with anything. Tables created with TableOf take their column types from the
"db" tagged fields of a struct:

	type Person struct {
		ID   int64   `db:"id"`
		Name string  `db:"name"`
		Team *string `db:"team"`
	}

	people := aqueryon.MustTableOf("person", Person{})

Comparing person.Column("id") with aqueryon.Str("x") is then an error.

# Errors

Operators and builder methods do not return errors directly. An invalid
expression or builder holds its error, which can be read with Err, and it is
passed on to everything built from it. Build returns the first error made.
All errors wrap one of the Err* variables of this package.

# Subqueries

A builder can be used as a source, as a scalar operand of a comparison, or as
the operand of ANY and ALL comparisons such as Expr.EqAny.

Every builder made with New starts its own alias lineage, so the sources of a
subquery are also named t1, t2 and so on. A correlated subquery that refers to
a Ref of the outer statement would then name two sources t1. Rename the inner
prefix for correlated subqueries:

	inner, m := aqueryon.New().From(aqueryon.NewTable("member"))
	inner.SetAliasPrefix("m")
	inner = inner.Where(m.Column("team").Eq(person.Column("team"))).
		Select(aqueryon.Count.Call(m.Column("id")))
*/
package aqueryon
