// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package migrate

import (
	"database/sql"
	"strconv"
)

// sqliteDB is a sqlite database with schema
type sqliteDB struct {
	*sql.DB
	schema string
}

// NewSqliteDB returns a sqlite db wrapped with the migration methods
func NewSqliteDB(db *sql.DB, schema string) DBX {
	return &sqliteDB{DB: db, schema: schema}
}

func (db *sqliteDB) Rebind(s string) string { return s }
func (db *sqliteDB) Schema() string         { return db.schema }

// postgresDB is a postgres database with schema
type postgresDB struct {
	*sql.DB
	schema string
}

// NewPostgresDB returns a postgres db wrapped with the migration methods
func NewPostgresDB(db *sql.DB, schema string) DBX {
	return &postgresDB{DB: db, schema: schema}
}

// Rebind converts ? placeholders into positional $n arguments
func (db *postgresDB) Rebind(s string) string {
	out := make([]byte, 0, len(s)+10)

	j := 1
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '?' {
			out = append(out, ch)
			continue
		}

		out = append(out, '$')
		out = append(out, strconv.Itoa(j)...)
		j++
	}

	return string(out)
}

func (db *postgresDB) Schema() string { return db.schema }
