// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package migrate

import (
	"database/sql"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

/*

Scenarios it doesn't handle properly.

1. Rollback to initial state on multi-step migration.

	Let's say there's a scenario where we run migration steps:
	1. update a table schema
	2. move files
	3. update a table schema, which fails

	In this case there's no easy way to rollback the moving of files.

2. Undoing migrations.

	Intentionally left out, because we do not gain that much from it currently.

3. Snapshotting the whole state.

	This probably should be done by the user of this library, when there's
	disk-space available.

*/

// Migration describes migration steps
type Migration struct {
	Table string
	Steps []*Step
}

// Step describes a single step in migration.
type Step struct {
	Description string
	Version     int // Versions start at 0
	Action      Action
}

// Action is something that needs to be done
type Action interface {
	Run(log *zap.Logger, db DB, tx *sql.Tx) error
}

// TargetVersion returns migration with steps upto specified version
func (migration *Migration) TargetVersion(version int) *Migration {
	m := *migration
	m.Steps = nil
	for _, step := range migration.Steps {
		if step.Version <= version {
			m.Steps = append(m.Steps, step)
		}
	}
	return &m
}

// ValidTableName checks whether the specified table name is valid
func (migration *Migration) ValidTableName() error {
	matched, err := regexp.MatchString(`^[a-z_]+$`, migration.Table)
	if !matched || err != nil {
		return Error.New("invalid table name: %v", migration.Table)
	}
	return nil
}

// ValidateSteps checks that the version for each migration step increments in order
func (migration *Migration) ValidateSteps() error {
	sorted := sort.SliceIsSorted(migration.Steps, func(i, j int) bool {
		return migration.Steps[i].Version <= migration.Steps[j].Version
	})
	if !sorted {
		return Error.New("steps have incorrect order")
	}
	return nil
}

// Run runs the migration steps
func (migration *Migration) Run(log *zap.Logger, db DB) error {
	err := migration.ValidTableName()
	if err != nil {
		return err
	}

	err = migration.ValidateSteps()
	if err != nil {
		return err
	}

	err = migration.ensureVersionTable(db)
	if err != nil {
		return Error.New("creating version table failed: %v", err)
	}

	version, err := migration.getLatestVersion(db)
	if err != nil {
		return Error.Wrap(err)
	}

	for _, step := range migration.Steps {
		if step.Version <= version {
			continue
		}

		stepLog := log.Named(strconv.Itoa(step.Version))
		stepLog.Info(step.Description)

		tx, err := db.Begin()
		if err != nil {
			return Error.Wrap(err)
		}

		err = step.Action.Run(stepLog, db, tx)
		if err != nil {
			return Error.Wrap(errs.Combine(err, tx.Rollback()))
		}

		err = migration.addVersion(tx, db, step.Version)
		if err != nil {
			return Error.Wrap(errs.Combine(err, tx.Rollback()))
		}

		err = tx.Commit()
		if err != nil {
			return Error.Wrap(err)
		}
	}

	return nil
}

// CurrentVersion finds the latest version table
func (migration *Migration) CurrentVersion(log *zap.Logger, db DB) (int, error) {
	err := migration.ensureVersionTable(db)
	if err != nil {
		return -1, Error.Wrap(err)
	}
	return migration.getLatestVersion(db)
}

// ensureVersionTable creates migration.Table table if not exists.
func (migration *Migration) ensureVersionTable(db DB) error {
	tx, err := db.Begin()
	if err != nil {
		return Error.Wrap(err)
	}

	_, err = tx.Exec(rebind(db, `CREATE TABLE IF NOT EXISTS `+migration.Table+` (version int, commited_at text)`))
	if err != nil {
		return Error.Wrap(errs.Combine(err, tx.Rollback()))
	}

	return Error.Wrap(tx.Commit())
}

// getLatestVersion finds the latest version in migration.Table.
// It returns -1 if there aren't rows or version is null.
func (migration *Migration) getLatestVersion(db DB) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return -1, Error.Wrap(err)
	}

	var version sql.NullInt64
	err = tx.QueryRow(rebind(db, `SELECT MAX(version) FROM `+migration.Table)).Scan(&version)
	if err == sql.ErrNoRows || !version.Valid {
		return -1, Error.Wrap(tx.Commit())
	}
	if err != nil {
		return -1, Error.Wrap(errs.Combine(err, tx.Rollback()))
	}

	return int(version.Int64), Error.Wrap(tx.Commit())
}

// addVersion adds information about a new migration
func (migration *Migration) addVersion(tx *sql.Tx, db DB, version int) error {
	_, err := tx.Exec(rebind(db, `
		INSERT INTO `+migration.Table+` (version, commited_at) VALUES (?, ?)`),
		version, time.Now().String(),
	)
	return err
}

// rebind uses the db specific placeholders, when the db needs them
func rebind(db DB, s string) string {
	if dbx, ok := db.(interface{ Rebind(string) string }); ok {
		return dbx.Rebind(s)
	}
	return s
}

// SQL statements that are executed on the database
type SQL []string

// Run runs the SQL statements
func (sql SQL) Run(log *zap.Logger, db DB, tx *sql.Tx) error {
	for _, query := range sql {
		_, err := tx.Exec(rebind(db, query))
		if err != nil {
			return err
		}
	}
	return nil
}

// Func is an arbitrary operation
type Func func(log *zap.Logger, db DB, tx *sql.Tx) error

// Run runs the migration
func (fn Func) Run(log *zap.Logger, db DB, tx *sql.Tx) error {
	return fn(log, db, tx)
}
