// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// metadb-deploy manages the metadata database out of band: schema
// deployment and the tenant registry. Tenants are only ever created
// here, the services never create them at runtime.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"trac.io/trac/metadata/metadatadb"
)

// ArgError reports bad command line arguments.
var ArgError = errs.Class("argError")

// task exit codes, one per failure mode so deploy scripts can branch.
const (
	exitBadArgs   = 2
	exitOpenError = 3
	exitTaskError = 4
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	app := cli.NewApp()
	app.Name = "metadb-deploy"
	app.Usage = "deploy and administer the TRAC metadata database"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "database",
			Usage:  "metadata database url",
			EnvVar: "TRAC_METADATA_DATABASE",
			Value:  "sqlite3://metadata.db",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "deploy-schema",
			Usage: "create or upgrade the metadata schema",
			Action: func(c *cli.Context) error {
				return withDB(c, log, func(ctx context.Context, db *metadatadb.DB) error {
					if err := db.MigrateToLatest(ctx); err != nil {
						return cli.NewExitError(err.Error(), exitTaskError)
					}
					log.Info("schema is up to date")
					return nil
				})
			},
		},
		{
			Name:      "add-tenant",
			Usage:     "register a new tenant",
			ArgsUsage: "CODE [description]",
			Action: func(c *cli.Context) error {
				code := c.Args().Get(0)
				if code == "" {
					return cli.NewExitError(ArgError.New("tenant code is required").Error(), exitBadArgs)
				}
				description := c.Args().Get(1)
				return withDB(c, log, func(ctx context.Context, db *metadatadb.DB) error {
					if err := db.Tenants().Create(ctx, code, description); err != nil {
						return cli.NewExitError(err.Error(), exitTaskError)
					}
					log.Info("tenant created", zap.String("code", code))
					return nil
				})
			},
		},
		{
			Name:      "alter-tenant",
			Usage:     "change a tenant description",
			ArgsUsage: "CODE description",
			Action: func(c *cli.Context) error {
				code := c.Args().Get(0)
				if code == "" || c.NArg() < 2 {
					return cli.NewExitError(ArgError.New("usage: alter-tenant CODE description").Error(), exitBadArgs)
				}
				description := c.Args().Get(1)
				return withDB(c, log, func(ctx context.Context, db *metadatadb.DB) error {
					if err := db.Tenants().Update(ctx, code, description); err != nil {
						return cli.NewExitError(err.Error(), exitTaskError)
					}
					log.Info("tenant updated", zap.String("code", code))
					return nil
				})
			},
		},
		{
			Name:  "list-tenants",
			Usage: "print the tenant registry",
			Action: func(c *cli.Context) error {
				return withDB(c, log, func(ctx context.Context, db *metadatadb.DB) error {
					infos, err := db.Tenants().List(ctx)
					if err != nil {
						return cli.NewExitError(err.Error(), exitTaskError)
					}
					for _, info := range infos {
						fmt.Printf("%s\t%s\n", info.Code, info.Description)
					}
					return nil
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB opens the database for one task and closes it after.
func withDB(c *cli.Context, log *zap.Logger, task func(context.Context, *metadatadb.DB) error) error {
	db, err := metadatadb.New(log.Named("db"), c.GlobalString("database"))
	if err != nil {
		return cli.NewExitError(err.Error(), exitOpenError)
	}
	defer func() { _ = db.Close() }()

	return task(context.Background(), db)
}
