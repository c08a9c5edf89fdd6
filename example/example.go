package example

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/canonical/aqueryon"
	"github.com/canonical/aqueryon/param"
)

type Location struct {
	ID   int    `db:"room_id"`
	Name string `db:"name"`
	Team string `db:"team"`
}

type Person struct {
	Name string `db:"name"`
	ID   int    `db:"id"`
	Team string `db:"team"`
}

var (
	personTable   = aqueryon.MustTableOf("person", Person{})
	locationTable = aqueryon.MustTableOf("location", Location{})
)

// Populate creates and fills the person and location tables.
func Populate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE person (
		name text,
		id integer,
		team text
	);
	CREATE TABLE location (
		room_id integer,
		name text,
		team text
	)`)
	if err != nil {
		return errors.Wrap(err, "cannot create tables")
	}

	var people = []Person{
		{"Alastair", 1, "engineering"},
		{"Ed", 2, "engineering"},
		{"Marco", 3, "engineering"},
		{"Pedro", 4, "management"},
		{"Serdar", 5, "presentation engineering"},
		{"Joe", 6, "marketing"},
		{"Ben", 7, "legal"},
		{"Sam", 8, "hr"},
		{"Paul", 9, "sales"},
		{"Mark", 10, "leadership"},
		{"Gustavo", 11, "leadership"},
	}
	for _, p := range people {
		_, err := db.ExecContext(ctx, "INSERT INTO person (name, id, team) VALUES (?, ?, ?)", p.Name, p.ID, p.Team)
		if err != nil {
			return errors.Wrapf(err, "cannot insert %s", p.Name)
		}
	}

	var locations = []Location{
		{1, "The Basement", "engineering"},
		{8, "Floor 2", "presentation engineering"},
		{10, "Floor 3", "management"},
		{19, "Floors 4 to 89", "hr"},
		{23, "Court", "legal"},
		{26, "The Market", "marketing"},
		{46, "The Bar", "sales"},
		{73, "The Penthouse", "leadership"},
	}
	for _, l := range locations {
		_, err := db.ExecContext(ctx, "INSERT INTO location (room_id, name, team) VALUES (?, ?, ?)", l.ID, l.Name, l.Team)
		if err != nil {
			return errors.Wrapf(err, "cannot insert %s", l.Name)
		}
	}
	return nil
}

// Run builds and runs a few queries against a database filled by Populate,
// printing the results to out. Every query is logged before it is run.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger, out io.Writer) error {
	// Find someone on the engineering team.
	b, p := aqueryon.New().From(personTable)
	q, err := b.
		Where(p.Column("team").Eq(aqueryon.Str("engineering"))).
		Select(allColumns(p, personTable)...).
		OrderBy(aqueryon.Asc(p.Column("id"))).
		Limit(1).
		Build()
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "running query", "query", q)

	var pal Person
	err = db.QueryRowContext(ctx, q.SQL(), param.Args(q)...).Scan(&pal.Name, &pal.ID, &pal.Team)
	if err != nil {
		return errors.Wrap(err, "cannot find engineer")
	}
	fmt.Fprintf(out, "%s is on the engineering team.\n", pal.Name)

	// Find out who is in room 1.
	rooms, l := aqueryon.New().From(locationTable)
	rooms = rooms.Where(l.Column("room_id").Eq(aqueryon.Int(1))).Select(l.Column("team"))
	b, p = aqueryon.New().From(personTable)
	b.SetAliasPrefix("p")
	q, err = b.
		Where(p.Column("team").Eq(rooms)).
		Select(p.Column("name")).
		OrderBy(aqueryon.Asc(p.Column("id"))).
		Build()
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "running query", "query", q)

	names, err := queryStrings(ctx, db, q)
	if err != nil {
		return errors.Wrap(err, "cannot find people in room 1")
	}
	for _, name := range names {
		fmt.Fprintf(out, "%s, ", name)
	}
	fmt.Fprintln(out, "are in room 1.")

	// Count the people in each room with more than one person.
	b, l = aqueryon.New().From(locationTable)
	b, p = b.InnerJoin(personTable, func(p aqueryon.Ref) aqueryon.Operand {
		return p.Column("team").Eq(l.Column("team"))
	})
	q, err = b.
		Select(l.Column("name"), aqueryon.Count.Call(p.Column("id"))).
		GroupBy(l.Column("name")).
		Having(aqueryon.Count.Call(p.Column("id")).Gt(aqueryon.Int(1))).
		OrderBy(aqueryon.Asc(l.Column("name"))).
		Build()
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "running query", "query", q)

	rows, err := db.QueryContext(ctx, q.SQL(), param.Args(q)...)
	if err != nil {
		return errors.Wrap(err, "cannot count people per room")
	}
	defer rows.Close()
	for rows.Next() {
		var room string
		var count int
		if err := rows.Scan(&room, &count); err != nil {
			return errors.Wrap(err, "cannot count people per room")
		}
		fmt.Fprintf(out, "%d people are in %s\n", count, room)
	}
	return rows.Err()
}

// allColumns returns every column of the typed table t attached as r.
func allColumns(r aqueryon.Ref, t aqueryon.Table) []aqueryon.Operand {
	var cols []aqueryon.Operand
	for _, name := range t.Columns() {
		cols = append(cols, r.Column(name))
	}
	return cols
}

// queryStrings runs q and returns the first column of every row.
func queryStrings(ctx context.Context, db *sql.DB, q aqueryon.Query) ([]string, error) {
	rows, err := db.QueryContext(ctx, q.SQL(), param.Args(q)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
