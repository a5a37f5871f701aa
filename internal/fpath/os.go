// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package fpath provides helpers for resolving well known directories.
package fpath

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/zeebo/errs"
)

// IsRoot returns whether path is the root directory.
func IsRoot(path string) bool {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}

	return filepath.Dir(path) == path
}

// ApplicationDir returns best base directory for the specific OS.
func ApplicationDir(subdir ...string) string {
	for i := range subdir {
		if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
			subdir[i] = strings.Title(subdir[i])
		} else {
			subdir[i] = strings.ToLower(subdir[i])
		}
	}

	var appdir string
	home := os.Getenv("HOME")

	switch runtime.GOOS {
	case "windows":
		// Windows standards: https://msdn.microsoft.com/en-us/library/windows/apps/hh465094.aspx
		for _, env := range []string{"AppData", "AppDataLocal", "UserProfile", "Home"} {
			val := os.Getenv(strings.ToUpper(env))
			if val != "" {
				appdir = val
				break
			}
		}
	case "darwin":
		appdir = filepath.Join(home, "Library", "Application Support")
	default:
		// Linux standards: https://specifications.freedesktop.org/basedir-spec/basedir-spec-latest.html
		appdir = os.Getenv("XDG_DATA_HOME")
		if appdir == "" && home != "" {
			appdir = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(append([]string{appdir}, subdir...)...)
}

// IsValidSetupDir checks if directory is valid for setup configuration.
func IsValidSetupDir(name string) (ok bool, err error) {
	_, err = os.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer func() { err = errs.Combine(err, f.Close()) }()

	for {
		var filenames []string
		filenames, err = f.Readdirnames(100)
		if err == io.EOF {
			// nothing more
			return true, nil
		} else if err != nil {
			return false, err
		}

		for _, filename := range filenames {
			// allow a previously created configuration to be overwritten by setup
			if filename == "config.yaml" {
				continue
			}
			return false, nil
		}
	}
}
