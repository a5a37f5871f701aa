// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package process

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/pkg/cfgstruct"
)

// DefaultCfgFilename is the default filename used for storing a configuration.
const DefaultCfgFilename = "config.yaml"

var (
	commandMtx sync.Mutex
	contexts   = map[*cobra.Command]context.Context{}
	cancels    = map[*cobra.Command]context.CancelFunc{}
	configs    = map[*cobra.Command][]interface{}{}
	vipers     = map[*cobra.Command]*viper.Viper{}
)

// Bind sets flags on a command that match the configuration struct
// 'config'. It ensures that the config has all of the values loaded into it
// when the command runs.
func Bind(cmd *cobra.Command, config interface{}, opts ...cfgstruct.BindOpt) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	cfgstruct.Bind(cmd.Flags(), config, opts...)
	configs[cmd] = append(configs[cmd], config)
}

// Exec runs a Cobra command. If a "config-dir" flag is defined it will be
// parsed and loaded using viper.
func Exec(cmd *cobra.Command) {
	exe, err := os.Executable()
	if err == nil {
		cmd.Use = exe
	}

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	cleanup(cmd)
	err = cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// Ctx returns the appropriate context.Context for commands run through Exec.
func Ctx(cmd *cobra.Command) context.Context {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	ctx := contexts[cmd]
	if ctx == nil {
		ctx = context.Background()
		contexts[cmd] = ctx
	}

	cancel := cancels[cmd]
	if cancel == nil {
		ctx, cancel = context.WithCancel(ctx)
		contexts[cmd] = ctx
		cancels[cmd] = cancel

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-c
			log.Printf("Got a signal from the OS: %q", sig)
			signal.Stop(c)
			cancel()
		}()
	}

	return ctx
}

// Viper returns the appropriate *viper.Viper for the command, creating if necessary.
func Viper(cmd *cobra.Command) (*viper.Viper, error) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	if vip := vipers[cmd]; vip != nil {
		return vip, nil
	}

	vip := viper.New()
	err := vip.BindPFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	vip.SetEnvPrefix("trac")
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	cfgFlag := cmd.Flags().Lookup("config-dir")
	if cfgFlag != nil && cfgFlag.Value.String() != "" {
		path := filepath.Join(os.ExpandEnv(cfgFlag.Value.String()), DefaultCfgFilename)
		if cmd.Annotations["type"] != "setup" || fileExists(path) {
			vip.SetConfigFile(path)
			err = vip.ReadInConfig()
			if err != nil {
				return nil, err
			}
		}
	}

	vipers[cmd] = vip
	return vip, nil
}

func cleanup(cmd *cobra.Command) {
	for _, ccmd := range cmd.Commands() {
		cleanup(ccmd)
	}
	if cmd.Run != nil {
		panic("Please only use cobra's RunE instead of Run")
	}
	internalRun := cmd.RunE
	if internalRun == nil {
		return
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		vip, err := Viper(cmd)
		if err != nil {
			return err
		}

		// go back and propagate viper config values to unchanged flags
		var brokenKeys []string
		var missingKeys []string
		for _, key := range vip.AllKeys() {
			flagToSet := cmd.Flags().Lookup(key)
			if flagToSet == nil {
				// by the time this runs the stdlib flags have been merged
				// into the command flag set, so the key has no flag at all
				missingKeys = append(missingKeys, key)
				continue
			}
			if flagToSet.Changed {
				continue
			}
			err := cmd.Flags().Set(key, vip.GetString(key))
			if err != nil {
				brokenKeys = append(brokenKeys, key)
			}
		}

		logger, err := NewLogger()
		if err != nil {
			return err
		}

		if vip.ConfigFileUsed() != "" {
			logger.Sugar().Debugf("Configuration loaded from: %s", vip.ConfigFileUsed())
		}

		defer func() { _ = logger.Sync() }()
		defer zap.ReplaceGlobals(logger)()
		defer zap.RedirectStdLog(logger)()

		if len(missingKeys) > 0 {
			logger.Sugar().Debugf("Unknown configuration keys: %s", strings.Join(missingKeys, ", "))
		}
		if len(brokenKeys) > 0 {
			logger.Sugar().Errorf("Failed to propagate configuration: %s", strings.Join(brokenKeys, ", "))
		}

		err = initMetrics(ctx, monkit.Default, "")
		if err != nil {
			logger.Error("failed to configure telemetry", zap.Error(err))
		}

		err = initDebug(logger, monkit.Default)
		if err != nil {
			logger.Error("failed to start debug endpoints", zap.Error(err))
		}

		return internalRun(cmd, args)
	}
}

// fileExists checks whether a file exists at path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
