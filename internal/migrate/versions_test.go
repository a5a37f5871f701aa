// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package migrate_test

import (
	"database/sql"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trac.io/trac/internal/migrate"
	"trac.io/trac/internal/testcontext"
)

func TestBasicMigrationSqlite(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer func() { assert.NoError(t, db.Close()) }()

	err = ioutil.WriteFile(ctx.File("alpha.txt"), []byte("test"), 0644)
	require.NoError(t, err)

	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{
				Description: "Initialize Table",
				Version:     1,
				Action: migrate.SQL{
					`CREATE TABLE users (id int)`,
					`INSERT INTO users (id) VALUES (1)`,
				},
			},
			{
				Description: "Move files",
				Version:     2,
				Action: migrate.Func(func(log *zap.Logger, _ migrate.DB, tx *sql.Tx) error {
					return os.Rename(ctx.File("alpha.txt"), ctx.File("beta.txt"))
				}),
			},
		},
	}

	dbVersion, err := m.CurrentVersion(zap.NewNop(), db)
	assert.NoError(t, err)
	assert.Equal(t, -1, dbVersion)

	err = m.Run(zap.NewNop(), db)
	assert.NoError(t, err)

	// rerunning the migration should be a no-op
	err = m.Run(zap.NewNop(), db)
	assert.NoError(t, err)

	var version int
	err = db.QueryRow(`SELECT MAX(version) FROM versions`).Scan(&version)
	assert.NoError(t, err)
	assert.Equal(t, 2, version)

	var id int
	err = db.QueryRow(`SELECT MAX(id) FROM users`).Scan(&id)
	assert.NoError(t, err)
	assert.Equal(t, 1, id)

	// moved file
	_, err = os.Stat(ctx.File("alpha.txt"))
	assert.Error(t, err)
	_, err = os.Stat(ctx.File("beta.txt"))
	assert.NoError(t, err)
}

func TestMigrationSteps_Order(t *testing.T) {
	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{Version: 2, Action: migrate.SQL{}},
			{Version: 1, Action: migrate.SQL{}},
		},
	}
	require.Error(t, m.ValidateSteps())

	m.Steps = []*migrate.Step{
		{Version: 1, Action: migrate.SQL{}},
		{Version: 2, Action: migrate.SQL{}},
	}
	require.NoError(t, m.ValidateSteps())
}

func TestMigration_TargetVersion(t *testing.T) {
	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{Version: 1, Action: migrate.SQL{}},
			{Version: 2, Action: migrate.SQL{}},
			{Version: 3, Action: migrate.SQL{}},
		},
	}

	target := m.TargetVersion(2)
	require.Len(t, target.Steps, 2)
	require.Len(t, m.Steps, 3)
}
