// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/canonical/aqueryon/internal/expr"
)

// state is the position of a builder in the sequence of SELECT clauses.
type state int

const (
	stateEmpty state = iota
	stateSourced
	stateFiltered
	stateProjected
	stateGrouped
	stateHaving
	stateOrdered
	stateLimited
	stateLocked
)

func (s state) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateSourced:
		return "sourced"
	case stateFiltered:
		return "filtered"
	case stateProjected:
		return "projected"
	case stateGrouped:
		return "grouped"
	case stateHaving:
		return "having"
	case stateOrdered:
		return "ordered"
	case stateLimited:
		return "limited"
	case stateLocked:
		return "locked"
	}
	return "unknown"
}

// clause names an operation on a builder.
type clause string

const (
	clauseFrom     clause = "FROM"
	clauseJoin     clause = "JOIN"
	clauseWhere    clause = "WHERE"
	clauseSelect   clause = "SELECT"
	clauseGroupBy  clause = "GROUP BY"
	clauseHaving   clause = "HAVING"
	clauseOrderBy  clause = "ORDER BY"
	clauseLimit    clause = "LIMIT"
	clauseLock     clause = "lock mode"
	clauseBuild    clause = "build"
	clauseSubquery clause = "subquery"
)

// transitions lists the states each clause can be added in.
var transitions = map[clause][]state{
	clauseFrom:     {stateEmpty},
	clauseJoin:     {stateSourced},
	clauseWhere:    {stateSourced},
	clauseSelect:   {stateEmpty, stateSourced, stateFiltered},
	clauseGroupBy:  {stateProjected},
	clauseHaving:   {stateGrouped},
	clauseOrderBy:  {stateProjected, stateGrouped, stateHaving},
	clauseLimit:    {stateProjected, stateGrouped, stateHaving, stateOrdered},
	clauseLock:     {stateProjected, stateGrouped, stateHaving, stateOrdered, stateLimited},
	clauseBuild:    {stateProjected, stateGrouped, stateHaving, stateOrdered, stateLimited, stateLocked},
	clauseSubquery: {stateProjected, stateGrouped, stateHaving, stateOrdered, stateLimited, stateLocked},
}

// needsSources lists the clauses that need a FROM clause.
var needsSources = map[clause]bool{
	clauseGroupBy: true,
	clauseOrderBy: true,
	clauseLimit:   true,
	clauseLock:    true,
}

// LockMode is the locking clause closing a SELECT statement.
type LockMode int

const (
	LockNone LockMode = iota
	LockForUpdate
	LockInShareMode
)

func (m LockMode) String() string {
	switch m {
	case LockForUpdate:
		return "FOR UPDATE"
	case LockInShareMode:
		return "LOCK IN SHARE MODE"
	}
	return ""
}

type limit struct {
	offset    int
	hasOffset bool
	rowCount  int
}

// Builder assembles a SELECT statement one clause at a time. Clauses must be
// added in SQL order:
//
//	From, joins, Where, Select, GroupBy, Having, OrderBy, Limit, lock mode
//
// Only From/joins and Select are mandatory; Select can also be used without
// a source. Each method returns a new Builder and leaves the receiver
// untouched, except for SetAliasPrefix.
//
// The first error made while assembling the statement is kept by the
// returned builder and by every builder derived from it. It can be checked
// with Err after any call and is returned by Build.
type Builder struct {
	aliases *aliasNamespace
	// sources counts the sources attached so far. It gives each new
	// source its alias suffix.
	sources int
	state   state
	err     error

	from     fromNode
	where    *expr.Expr
	distinct bool
	columns  []expr.Expr
	groupBy  []expr.Expr
	having   *expr.Expr
	orderBy  []expr.Order
	limit    *limit
	lock     LockMode
}

// New returns an empty builder. Sources attached through it and every
// builder derived from it share the alias prefix "t".
func New() *Builder {
	return &Builder{aliases: &aliasNamespace{prefix: defaultAliasPrefix}}
}

// SetAliasPrefix renames the alias prefix of every source attached through
// this builder lineage, including those already attached. It must not be
// called while a query from the same lineage is being built.
func (b *Builder) SetAliasPrefix(prefix string) {
	b.aliases.prefix = prefix
}

// AliasPrefix returns the current alias prefix of the builder lineage.
func (b *Builder) AliasPrefix() string {
	return b.aliases.prefix
}

// Err returns the first error made while assembling the statement.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) clone() *Builder {
	nb := *b
	return &nb
}

func (b *Builder) fail(err error) *Builder {
	nb := b.clone()
	nb.err = err
	return nb
}

// check returns an error if the clause c cannot be added to b.
func (b *Builder) check(c clause) error {
	if b.err != nil {
		return b.err
	}
	legal := false
	for _, s := range transitions[c] {
		if s == b.state {
			legal = true
			break
		}
	}
	if !legal {
		return errors.Wrapf(ErrClauseOrder, "cannot add %s clause to %s builder", c, b.state)
	}
	if needsSources[c] && b.from == nil {
		return errors.Wrapf(ErrClauseOrder, "cannot add %s clause to builder without FROM clause", c)
	}
	return nil
}

// bind attaches src to b under the next alias.
func (b *Builder) bind(src Source) boundSource {
	b.sources++
	return boundSource{src: src, alias: SourceAlias{ns: b.aliases, suffix: b.sources}}
}

// From attaches the first source of the statement. It returns the new
// builder and a Ref to build expressions on the columns of the source.
func (b *Builder) From(src Source) (*Builder, Ref) {
	if err := b.check(clauseFrom); err != nil {
		return b.fail(err), Ref{}
	}
	if src == nil {
		return b.fail(errors.New("cannot add FROM clause without a source")), Ref{}
	}
	if err := src.sourceErr(); err != nil {
		return b.fail(err), Ref{}
	}
	nb := b.clone()
	bound := nb.bind(src)
	nb.from = bound
	nb.state = stateSourced
	return nb, bound.ref()
}

// InnerJoin joins src to the sources attached so far. The on function is
// given the Ref of src and returns the ON condition, which must be of type
// Bool and cannot contain aggregate functions.
func (b *Builder) InnerJoin(src Source, on func(Ref) Operand) (*Builder, Ref) {
	return b.join(innerJoin, src, on)
}

// LeftOuterJoin joins src to the sources attached so far. The columns of src
// become nullable. The ON condition is checked as for InnerJoin.
func (b *Builder) LeftOuterJoin(src Source, on func(Ref) Operand) (*Builder, Ref) {
	return b.join(leftOuterJoin, src, on)
}

// RightOuterJoin joins src to the sources attached so far. The sources
// attached so far become nullable. The ON condition is checked as for
// InnerJoin.
func (b *Builder) RightOuterJoin(src Source, on func(Ref) Operand) (*Builder, Ref) {
	return b.join(rightOuterJoin, src, on)
}

// CrossJoin joins src to the sources attached so far, without a condition.
func (b *Builder) CrossJoin(src Source) (*Builder, Ref) {
	return b.join(crossJoin, src, nil)
}

func (b *Builder) join(kind joinKind, src Source, on func(Ref) Operand) (*Builder, Ref) {
	if err := b.check(clauseJoin); err != nil {
		return b.fail(err), Ref{}
	}
	if src == nil {
		return b.fail(errors.Errorf("cannot add %s clause without a source", kind)), Ref{}
	}
	if err := src.sourceErr(); err != nil {
		return b.fail(err), Ref{}
	}
	db, ok := compatibleDatabases(b.from.database(), src.Database())
	if !ok {
		return b.fail(errors.Wrapf(ErrDatabaseMismatch, "cannot join source from database %q to sources from database %q",
			src.Database(), b.from.database())), Ref{}
	}

	nb := b.clone()
	right := nb.bind(src)
	left := nb.from
	switch kind {
	case leftOuterJoin:
		right.null = true
	case rightOuterJoin:
		left = left.nullable()
	}

	j := joinNode{kind: kind, db: db, left: left, right: right}
	if kind != crossJoin {
		if on == nil {
			return b.fail(errors.Errorf("cannot add %s clause without ON condition", kind)), Ref{}
		}
		cond, err := condition(on(right.ref()), "ON")
		if err != nil {
			return b.fail(err), Ref{}
		}
		j.on = cond
	}
	nb.from = j
	return nb, right.ref()
}

// condition checks that cond can be used as the condition of a clause that
// works on single rows.
func condition(cond Operand, c clause) (expr.Expr, error) {
	es, err := expr.Resolve(cond)
	if err != nil {
		return expr.Expr{}, err
	}
	e := es[0]
	if !expr.IsBool(e) {
		return expr.Expr{}, errors.Wrapf(ErrNotBoolean, "cannot use %v as %s condition", e.Types(), c)
	}
	if e.Aggregation() == expr.Aggregate {
		return expr.Expr{}, errors.Wrapf(ErrAggregate, "cannot use aggregate expression as %s condition", c)
	}
	return e, nil
}

// Where sets the WHERE clause. The condition must be of type Bool and cannot
// contain aggregate functions.
func (b *Builder) Where(cond Operand) *Builder {
	if err := b.check(clauseWhere); err != nil {
		return b.fail(err)
	}
	e, err := condition(cond, clauseWhere)
	if err != nil {
		return b.fail(err)
	}
	nb := b.clone()
	nb.where = &e
	nb.state = stateFiltered
	return nb
}

// Select sets the columns of the statement.
func (b *Builder) Select(cols ...Operand) *Builder {
	return b.project(false, cols)
}

// SelectDistinct sets the columns of a SELECT DISTINCT statement. The
// columns cannot contain aggregate functions.
func (b *Builder) SelectDistinct(cols ...Operand) *Builder {
	return b.project(true, cols)
}

func (b *Builder) project(distinct bool, cols []Operand) *Builder {
	if err := b.check(clauseSelect); err != nil {
		return b.fail(err)
	}
	if len(cols) == 0 {
		return b.fail(errors.Wrap(ErrArity, "cannot select no columns"))
	}
	es, err := expr.Resolve(cols...)
	if err != nil {
		return b.fail(err)
	}
	if distinct && expr.AggregationOf(es) == expr.Aggregate {
		return b.fail(errors.Wrap(ErrAggregate, "cannot select distinct aggregate expressions"))
	}
	nb := b.clone()
	nb.distinct = distinct
	nb.columns = es
	nb.state = stateProjected
	return nb
}

// GroupBy sets the GROUP BY clause. The columns cannot contain aggregate
// functions.
func (b *Builder) GroupBy(cols ...Operand) *Builder {
	if err := b.check(clauseGroupBy); err != nil {
		return b.fail(err)
	}
	if len(cols) == 0 {
		return b.fail(errors.Wrap(ErrArity, "cannot group by no columns"))
	}
	es, err := expr.Resolve(cols...)
	if err != nil {
		return b.fail(err)
	}
	if expr.AggregationOf(es) == expr.Aggregate {
		return b.fail(errors.Wrap(ErrAggregate, "cannot group by aggregate expressions"))
	}
	nb := b.clone()
	nb.groupBy = es
	nb.state = stateGrouped
	return nb
}

// Having sets the HAVING clause. The condition must be of type Bool and may
// contain aggregate functions.
func (b *Builder) Having(cond Operand) *Builder {
	if err := b.check(clauseHaving); err != nil {
		return b.fail(err)
	}
	es, err := expr.Resolve(cond)
	if err != nil {
		return b.fail(err)
	}
	if !expr.IsBool(es[0]) {
		return b.fail(errors.Wrapf(ErrNotBoolean, "cannot use %v as HAVING condition", es[0].Types()))
	}
	nb := b.clone()
	nb.having = &es[0]
	nb.state = stateHaving
	return nb
}

// OrderBy sets the ORDER BY clause.
func (b *Builder) OrderBy(orders ...Order) *Builder {
	if err := b.check(clauseOrderBy); err != nil {
		return b.fail(err)
	}
	if len(orders) == 0 {
		return b.fail(errors.Wrap(ErrArity, "cannot order by no columns"))
	}
	for _, o := range orders {
		if err := o.Err(); err != nil {
			return b.fail(err)
		}
	}
	nb := b.clone()
	nb.orderBy = orders
	nb.state = stateOrdered
	return nb
}

// Limit sets the LIMIT clause to return at most rowCount rows.
func (b *Builder) Limit(rowCount int) *Builder {
	return b.setLimit(limit{rowCount: rowCount})
}

// LimitOffset sets the LIMIT clause to skip offset rows and return at most
// rowCount rows.
func (b *Builder) LimitOffset(offset, rowCount int) *Builder {
	return b.setLimit(limit{offset: offset, hasOffset: true, rowCount: rowCount})
}

func (b *Builder) setLimit(l limit) *Builder {
	if err := b.check(clauseLimit); err != nil {
		return b.fail(err)
	}
	if l.rowCount < 0 || l.offset < 0 {
		return b.fail(errors.Wrapf(ErrNegativeLimit, "cannot limit to %d rows from offset %d", l.rowCount, l.offset))
	}
	nb := b.clone()
	nb.limit = &l
	nb.state = stateLimited
	return nb
}

// ForUpdate closes the statement with FOR UPDATE.
func (b *Builder) ForUpdate() *Builder {
	return b.setLock(LockForUpdate)
}

// LockInShareMode closes the statement with LOCK IN SHARE MODE.
func (b *Builder) LockInShareMode() *Builder {
	return b.setLock(LockInShareMode)
}

func (b *Builder) setLock(m LockMode) *Builder {
	if err := b.check(clauseLock); err != nil {
		return b.fail(err)
	}
	nb := b.clone()
	nb.lock = m
	nb.state = stateLocked
	return nb
}

// Build generates the SQL of the statement and the values bound to its
// placeholders.
func (b *Builder) Build() (Query, error) {
	if err := b.check(clauseBuild); err != nil {
		return Query{}, err
	}
	var buf bytes.Buffer
	params, err := b.writeQuery(&buf)
	if err != nil {
		return Query{}, errors.WithMessage(err, "cannot build query")
	}
	if !utf8.Valid(buf.Bytes()) {
		return Query{}, errors.Wrap(ErrEncoding, "cannot build query")
	}
	return Query{sql: buf.String(), params: params}, nil
}

// MustBuild is the same as [Builder.Build] except that it panics on error.
func (b *Builder) MustBuild() Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// writeQuery writes the terminated statement to out and returns the values
// bound to its placeholders.
func (b *Builder) writeQuery(out io.Writer) ([]Value, error) {
	w := expr.NewWriter(out)
	b.writeSelect(w)
	w.WriteString(";")
	return w.Params(), w.Err()
}

// writeSelect writes the statement without its terminating semicolon.
func (b *Builder) writeSelect(w *expr.Writer) {
	w.WriteString("SELECT ")
	if b.distinct {
		w.WriteString("DISTINCT ")
	}
	w.WriteList(b.columns)
	if b.from != nil {
		w.WriteString(" FROM ")
		b.from.write(w)
	}
	if b.where != nil {
		w.WriteString(" WHERE ")
		w.WriteExpr(*b.where)
	}
	if len(b.groupBy) > 0 {
		w.WriteString(" GROUP BY ")
		w.WriteList(b.groupBy)
	}
	if b.having != nil {
		w.WriteString(" HAVING ")
		w.WriteExpr(*b.having)
	}
	if len(b.orderBy) > 0 {
		w.WriteString(" ORDER BY ")
		w.WriteOrders(b.orderBy)
	}
	if b.limit != nil {
		w.WriteString(" LIMIT ")
		if b.limit.hasOffset {
			w.WriteParam(expr.IntValue(int64(b.limit.offset)))
			w.WriteString(", ")
		}
		w.WriteParam(expr.IntValue(int64(b.limit.rowCount)))
	}
	if b.lock != LockNone {
		w.WriteString(" " + b.lock.String())
	}
}

// embedErr returns an error if b cannot be embedded in another statement.
func (b *Builder) embedErr() error {
	return b.check(clauseSubquery)
}

// Expr returns the statement as a scalar subquery, for use as the operand
// of a comparison. The aliases of b are independent of those of the outer
// statement; when b refers to outer sources, give it its own alias prefix
// with SetAliasPrefix.
func (b *Builder) Expr() Expr {
	return expr.SubqueryExpr(subquery{b: b}, b.embedErr())
}

// subquery adapts a Builder to the expression tree.
type subquery struct {
	b *Builder
}

func (s subquery) ProjectionTypes() []SQLType {
	return expr.TypesOf(s.b.columns)
}

func (s subquery) WriteSubquery(w *expr.Writer) {
	w.WriteString("(")
	s.b.writeSelect(w)
	w.WriteString(")")
}

// Database returns the database of the sources of the statement.
func (b *Builder) Database() Database {
	if b.from == nil {
		return AnyDatabase
	}
	return b.from.database()
}

func (b *Builder) writeSource(w *expr.Writer) {
	subquery{b: b}.WriteSubquery(w)
}

func (b *Builder) column(name string) (expr.SQLType, bool, error) {
	return expr.TypeAny, false, nil
}

func (b *Builder) sourceErr() error {
	return b.embedErr()
}
