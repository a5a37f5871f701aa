// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package metadatadb implements metadata.DB over postgres and sqlite.
// Both dialects run the same migration ledger and the same queries;
// dialect differences are confined to the dialect type.
package metadatadb

import (
	"context"
	"database/sql"
	"net/url"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	// registers the production and the development sql drivers.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"trac.io/trac/internal/dbutil"
	"trac.io/trac/internal/migrate"
	"trac.io/trac/metadata"
)

var (
	mon = monkit.Package()

	// Error is the default metadatadb error class.
	Error = errs.Class("metadatadb")
)

// metaFormatProto marks definitions serialized as protobuf bytes.
const (
	metaFormatProto = 1
	metaVersion     = 1
)

// DB implements metadata.DB on a sql database.
type DB struct {
	log  *zap.Logger
	db   *sql.DB
	impl dialect

	tenants *tenants
	objects *objects
}

// New opens the metadata database at databaseURL. Supported schemes are
// postgres:// and sqlite3://.
func New(log *zap.Logger, databaseURL string) (*DB, error) {
	driver, source, impl, err := parseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	handle, err := sql.Open(driver, source)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	dbutil.Configure(handle, mon)

	db := &DB{
		log:  log,
		db:   handle,
		impl: impl,
	}
	db.tenants = &tenants{db: db}
	db.objects = &objects{db: db}
	return db, nil
}

// parseURL splits a database url into driver and source.
func parseURL(databaseURL string) (driver, source string, impl dialect, err error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", "", nil, Error.Wrap(err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgres", databaseURL, postgresDialect{}, nil
	case "sqlite3", "sqlite":
		// BEGIN IMMEDIATE makes write transactions take the database
		// lock up front, standing in for the row locks postgres takes.
		query := u.Query()
		query.Set("_txlock", "immediate")
		source := u.Opaque
		if source == "" {
			source = u.Path
		}
		return "sqlite3", source + "?" + query.Encode(), sqliteDialect{}, nil
	default:
		return "", "", nil, Error.New("unsupported database scheme %q", u.Scheme)
	}
}

// Tenants implements metadata.DB.
func (db *DB) Tenants() metadata.Tenants { return db.tenants }

// Objects implements metadata.DB.
func (db *DB) Objects() metadata.Objects { return db.objects }

// Close implements metadata.DB.
func (db *DB) Close() error { return Error.Wrap(db.db.Close()) }

// MigrateToLatest brings the schema up to date.
func (db *DB) MigrateToLatest(ctx context.Context) error {
	return db.Migration().Run(db.log.Named("migrate"), db.db)
}

// Migration returns the schema migration ledger.
func (db *DB) Migration() *migrate.Migration {
	serial := db.impl.serialPK()
	blob := db.impl.blobType()
	return &migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{
				Description: "Initial setup",
				Version:     0,
				Action: migrate.SQL{
					`CREATE TABLE tenants (
						tenant_id ` + serial + `,
						tenant_code text NOT NULL UNIQUE,
						description text NOT NULL DEFAULT ''
					)`,
					`CREATE TABLE object_ids (
						object_pk ` + serial + `,
						tenant_id bigint NOT NULL,
						object_type integer NOT NULL,
						object_id_hi bigint NOT NULL,
						object_id_lo bigint NOT NULL,
						UNIQUE (tenant_id, object_id_hi, object_id_lo)
					)`,
					`CREATE TABLE object_definitions (
						definition_pk ` + serial + `,
						tenant_id bigint NOT NULL,
						object_fk bigint NOT NULL,
						object_version bigint NOT NULL,
						object_timestamp bigint NOT NULL,
						superseded bigint,
						is_latest boolean NOT NULL,
						meta_format integer NOT NULL,
						meta_version integer NOT NULL,
						definition ` + blob + ` NOT NULL,
						UNIQUE (tenant_id, object_fk, object_version)
					)`,
					`CREATE TABLE tags (
						tag_pk ` + serial + `,
						tenant_id bigint NOT NULL,
						definition_fk bigint NOT NULL,
						tag_version bigint NOT NULL,
						tag_timestamp bigint NOT NULL,
						superseded bigint,
						is_latest boolean NOT NULL,
						object_type integer NOT NULL,
						UNIQUE (tenant_id, definition_fk, tag_version)
					)`,
					`CREATE TABLE tag_attrs (
						tenant_id bigint NOT NULL,
						tag_fk bigint NOT NULL,
						attr_name text NOT NULL,
						attr_type integer NOT NULL,
						attr_index integer NOT NULL,
						attr_value_boolean boolean,
						attr_value_integer bigint,
						attr_value_float double precision,
						attr_value_string text,
						attr_value_decimal text,
						attr_value_date text,
						attr_value_datetime bigint
					)`,
					`CREATE INDEX tag_attrs_name_index ON tag_attrs (tenant_id, attr_name)`,
					`CREATE INDEX tag_attrs_tag_index ON tag_attrs (tenant_id, tag_fk)`,
					`CREATE INDEX object_definitions_latest_index ON object_definitions (tenant_id, object_fk, is_latest)`,
				},
			},
		},
	}
}

// dialect confines the differences between postgres and sqlite.
type dialect interface {
	// rebind converts ? placeholders into the driver's form.
	rebind(query string) string
	// forUpdate is the row lock suffix, empty when the dialect
	// serializes writers another way.
	forUpdate() string
	// serialPK is the auto increment primary key column definition.
	serialPK() string
	// blobType is the byte array column type.
	blobType() string
	// castDecimal wraps a text decimal column for numeric comparison.
	castDecimal(expr string) string
	// insertReturning runs an insert and returns the generated key.
	insertReturning(ctx context.Context, tx *sql.Tx, query, pkColumn string, args ...interface{}) (int64, error)
}

type postgresDialect struct{}

func (postgresDialect) rebind(query string) string {
	var out strings.Builder
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			out.WriteByte(query[i])
			continue
		}
		out.WriteByte('$')
		out.WriteString(strconv.Itoa(n))
		n++
	}
	return out.String()
}

func (postgresDialect) forUpdate() string { return " FOR UPDATE" }
func (postgresDialect) serialPK() string  { return "bigserial PRIMARY KEY" }
func (postgresDialect) blobType() string  { return "bytea" }

func (postgresDialect) castDecimal(expr string) string {
	return "CAST(" + expr + " AS numeric)"
}

func (d postgresDialect) insertReturning(ctx context.Context, tx *sql.Tx, query, pkColumn string, args ...interface{}) (pk int64, err error) {
	err = tx.QueryRowContext(ctx, d.rebind(query+" RETURNING "+pkColumn), args...).Scan(&pk)
	return pk, err
}

type sqliteDialect struct{}

func (sqliteDialect) rebind(query string) string { return query }
func (sqliteDialect) forUpdate() string          { return "" }

func (sqliteDialect) serialPK() string {
	return "integer PRIMARY KEY AUTOINCREMENT"
}

func (sqliteDialect) blobType() string { return "blob" }

func (sqliteDialect) castDecimal(expr string) string {
	return "CAST(" + expr + " AS real)"
}

func (sqliteDialect) insertReturning(ctx context.Context, tx *sql.Tx, query, pkColumn string, args ...interface{}) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// withTx runs fn inside one transaction, translating driver level
// failures into platform errors.
func (db *DB) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return dbutil.WithTx(ctx, db.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, tx)
	})
}

// exec runs a rebound statement inside tx.
func (db *DB) exec(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (sql.Result, error) {
	return tx.ExecContext(ctx, db.impl.rebind(query), args...)
}

// queryRow runs a rebound single row query inside tx.
func (db *DB) queryRow(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	return tx.QueryRowContext(ctx, db.impl.rebind(query), args...)
}

// query runs a rebound query inside tx.
func (db *DB) query(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (*sql.Rows, error) {
	return tx.QueryContext(ctx, db.impl.rebind(query), args...)
}

// isUniqueViolation recognizes duplicate key failures across drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // lib/pq
		strings.Contains(msg, "UNIQUE constraint failed") // mattn/go-sqlite3
}
