/*
Package expr contains the typed expression algebra used to build SELECT
statements, and the Writer that turns expressions into SQL text and the list
of values bound to its placeholders.

# Tags

Every expression carries four tags that are computed when it is built:

  - its SQL types, used to reject comparisons between incomparable values;
  - its shape, Atomic or Composite, which decides whether NOT wraps it in
    parentheses;
  - its boolean kind, which decides whether AND and OR wrap it in
    parentheses;
  - its aggregation, which tells aggregate expressions apart from per-row
    values.

Operators check their operands at the call. An operator given operands that
break its rules returns an expression holding the error, and every expression
built on top of it holds the same error.

# Writing

Expressions are written pre-order, left to right. Literals write a single "?"
and bind their Value; every other node only writes keywords and punctuation.
*/
package expr
