// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"context"
	"database/sql"

	"github.com/zeebo/errs"

	"trac.io/trac/metadata"
	"trac.io/trac/pkg/trac"
)

// tenants implements metadata.Tenants.
type tenants struct {
	db *DB
}

// List returns every tenant ordered by code.
func (tenants *tenants) List(ctx context.Context) (_ []metadata.TenantInfo, err error) {
	defer mon.Task()(&ctx)(&err)

	rows, err := tenants.db.db.QueryContext(ctx,
		`SELECT tenant_code, description FROM tenants ORDER BY tenant_code`)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, rows.Close(), rows.Err()) }()

	var list []metadata.TenantInfo
	for rows.Next() {
		var info metadata.TenantInfo
		if err := rows.Scan(&info.Code, &info.Description); err != nil {
			return nil, Error.Wrap(err)
		}
		list = append(list, info)
	}
	return list, nil
}

// Create adds a tenant.
func (tenants *tenants) Create(ctx context.Context, code, description string) (err error) {
	defer mon.Task()(&ctx)(&err)

	if !trac.IsValidIdentifier(code) {
		return trac.ErrInvalidInput.New("tenant code %q", code)
	}
	return tenants.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tenants.db.exec(ctx, tx,
			`INSERT INTO tenants (tenant_code, description) VALUES (?, ?)`,
			code, description)
		if isUniqueViolation(err) {
			return trac.ErrAlreadyExists.New("tenant %q", code)
		}
		return Error.Wrap(err)
	})
}

// Update changes a tenant description.
func (tenants *tenants) Update(ctx context.Context, code, description string) (err error) {
	defer mon.Task()(&ctx)(&err)

	return tenants.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tenants.db.exec(ctx, tx,
			`UPDATE tenants SET description = ? WHERE tenant_code = ?`,
			description, code)
		if err != nil {
			return Error.Wrap(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return Error.Wrap(err)
		}
		if affected == 0 {
			return trac.ErrNotFound.New("tenant %q", code)
		}
		return nil
	})
}

// tenantID resolves a tenant code inside a transaction.
func (db *DB) tenantID(ctx context.Context, tx *sql.Tx, code string) (int64, error) {
	var id int64
	err := db.queryRow(ctx, tx,
		`SELECT tenant_id FROM tenants WHERE tenant_code = ?`, code).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, trac.ErrNotFound.New("tenant %q", code)
	}
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return id, nil
}
