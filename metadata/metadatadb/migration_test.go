// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/dbutil/sqliteutil"
	"trac.io/trac/internal/testcontext"
)

func TestMigrateSchema(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	db, err := New(zaptest.NewLogger(t), "sqlite3://"+ctx.File("metadata.db"))
	require.NoError(t, err)
	defer ctx.Check(db.Close)
	require.NoError(t, db.MigrateToLatest(context.Background()))

	schema, err := sqliteutil.QuerySchema(db.db)
	require.NoError(t, err)

	var tables []string
	for _, table := range schema.Tables {
		tables = append(tables, table.Name)
	}
	require.Equal(t, []string{
		"object_definitions", "object_ids", "tag_attrs", "tags", "tenants", "versions",
	}, tables)

	// one typed value column per supported attribute type
	attrs := schema.EnsureTable("tag_attrs")
	for _, column := range []string{
		"attr_value_boolean", "attr_value_integer", "attr_value_float",
		"attr_value_string", "attr_value_decimal", "attr_value_date",
		"attr_value_datetime",
	} {
		_, found := attrs.FindColumn(column)
		require.True(t, found, column)
	}

	// version appends collide on these keys
	defs := schema.EnsureTable("object_definitions")
	require.Contains(t, defs.Unique, []string{"object_fk", "object_version", "tenant_id"})
	tagTable := schema.EnsureTable("tags")
	require.Contains(t, tagTable.Unique, []string{"definition_fk", "tag_version", "tenant_id"})

	var indexes []string
	for _, index := range schema.Indexes {
		indexes = append(indexes, index.Name)
	}
	require.Contains(t, indexes, "tag_attrs_name_index")
	require.Contains(t, indexes, "tag_attrs_tag_index")
	require.Contains(t, indexes, "object_definitions_latest_index")

	// running the ledger again is a no-op
	require.NoError(t, db.MigrateToLatest(context.Background()))
}
