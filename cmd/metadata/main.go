// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"trac.io/trac/internal/fpath"
	"trac.io/trac/metadata/metadatadb"
	"trac.io/trac/metadata/metadataserver"
	"trac.io/trac/pkg/cfgstruct"
	"trac.io/trac/pkg/process"
)

var (
	rootCmd = &cobra.Command{
		Use:   "metadata",
		Short: "TRAC metadata service",
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the metadata service",
		RunE:  cmdRun,
	}
	setupCmd = &cobra.Command{
		Use:         "setup",
		Short:       "Create config files",
		RunE:        cmdSetup,
		Annotations: map[string]string{"type": "setup"},
	}

	runCfg   metadataserver.Config
	setupCfg metadataserver.Config

	confDir string
)

func init() {
	defaultConfDir := fpath.ApplicationDir("trac", "metadata")
	rootCmd.PersistentFlags().StringVar(&confDir, "config-dir", defaultConfDir, "main directory for metadata service configuration")
	defaults := cfgstruct.DefaultsFlag()
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
	process.Bind(runCmd, &runCfg, defaults, cfgstruct.ConfDir(defaultConfDir))
	process.Bind(setupCmd, &setupCfg, defaults, cfgstruct.ConfDir(defaultConfDir))
}

func cmdRun(cmd *cobra.Command, args []string) (err error) {
	ctx := process.Ctx(cmd)
	log := zap.L()

	db, err := metadatadb.New(log.Named("db"), runCfg.Database)
	if err != nil {
		return errs.New("error opening metadata database: %+v", err)
	}
	defer func() { err = errs.Combine(err, db.Close()) }()

	peer, err := metadataserver.New(log, db, runCfg)
	if err != nil {
		return err
	}

	runError := peer.Run(ctx)
	closeError := peer.Close()
	return errs.Combine(runError, closeError)
}

func cmdSetup(cmd *cobra.Command, args []string) (err error) {
	setupDir, err := filepath.Abs(confDir)
	if err != nil {
		return err
	}

	valid, _ := fpath.IsValidSetupDir(setupDir)
	if !valid {
		return fmt.Errorf("metadata service configuration already exists (%v)", setupDir)
	}

	if err := os.MkdirAll(setupDir, 0700); err != nil {
		return err
	}

	return process.SaveConfigWithAllDefaults(cmd.Flags(), filepath.Join(setupDir, "config.yaml"), nil)
}

func main() {
	process.Exec(rootCmd)
}
