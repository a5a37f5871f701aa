// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package process

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
)

// SaveConfig will save only the user-specific flags with default values to
// outfile with specific values specified in 'overrides' overridden.
func SaveConfig(flagset *pflag.FlagSet, outfile string, overrides map[string]interface{}) error {
	return saveConfig(flagset, outfile, overrides, false)
}

// SaveConfigWithAllDefaults will save all flags with default values to outfile
// with specific values specified in 'overrides' overridden.
func SaveConfigWithAllDefaults(flagset *pflag.FlagSet, outfile string, overrides map[string]interface{}) error {
	return saveConfig(flagset, outfile, overrides, true)
}

func saveConfig(flagset *pflag.FlagSet, outfile string, overrides map[string]interface{}, saveAllDefaults bool) error {
	// viper cannot emit comments, so the file is serialized by hand to keep
	// the flag usage text next to each key
	flagset.AddFlagSet(pflag.CommandLine)

	var keys []string
	flagset.VisitAll(func(f *pflag.Flag) { keys = append(keys, f.Name) })
	sort.Strings(keys)

	var sb strings.Builder
	w := &sb
	for _, k := range keys {
		f := flagset.Lookup(k)
		if readBoolAnnotation(f, "setup") || readBoolAnnotation(f, "hidden") {
			continue
		}

		overriddenValue, overrideExists := overrides[k]
		changed := f.Changed || overrideExists
		if !saveAllDefaults && !readBoolAnnotation(f, "user") && !changed {
			continue
		}

		value := f.Value.String()
		if overrideExists {
			value = fmt.Sprintf("%v", overriddenValue)
		}

		if f.Usage != "" {
			fmt.Fprintf(w, "# %s\n", f.Usage)
		}
		if changed {
			fmt.Fprintf(w, "%s: ", k)
		} else {
			fmt.Fprintf(w, "# %s: ", k)
		}
		switch f.Value.Type() {
		case "string":
			// save ourselves 250 lines of yaml escaping and just quote strings
			fmt.Fprintf(w, "%q\n\n", value)
		default:
			fmt.Fprintf(w, "%s\n\n", value)
		}
	}

	return errs.Wrap(atomicWrite(outfile, 0600, []byte(sb.String())))
}

// readBoolAnnotation is a helper to see if a boolean annotation is set to true on the flag.
func readBoolAnnotation(flag *pflag.Flag, key string) bool {
	annotation := flag.Annotations[key]
	return len(annotation) > 0 && annotation[0] == "true"
}

// atomicWrite is a helper to atomically write the data to the outfile.
func atomicWrite(outfile string, mode os.FileMode, data []byte) (err error) {
	fh, err := ioutil.TempFile(filepath.Dir(outfile), filepath.Base(outfile))
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, fh.Close())
			err = errs.Combine(err, os.Remove(fh.Name()))
		}
	}()
	if _, err := fh.Write(data); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Sync(); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Close(); err != nil {
		return errs.Wrap(err)
	}
	if err := os.Chmod(fh.Name(), mode); err != nil {
		return errs.Wrap(err)
	}
	if err := os.Rename(fh.Name(), outfile); err != nil {
		return errs.Wrap(err)
	}
	return nil
}
