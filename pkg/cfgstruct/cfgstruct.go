// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package cfgstruct binds a configuration struct to command line flags.
package cfgstruct

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/pflag"

	"trac.io/trac/internal/version"
)

// FlagSet is an interface that matches both *flag.FlagSet and *pflag.FlagSet.
type FlagSet interface {
	BoolVar(p *bool, name string, value bool, usage string)
	IntVar(p *int, name string, value int, usage string)
	Int64Var(p *int64, name string, value int64, usage string)
	UintVar(p *uint, name string, value uint, usage string)
	Uint64Var(p *uint64, name string, value uint64, usage string)
	DurationVar(p *time.Duration, name string, value time.Duration, usage string)
	Float64Var(p *float64, name string, value float64, usage string)
	StringVar(p *string, name string, value string, usage string)
}

// BindOpt is an option for the Bind method.
type BindOpt struct {
	isDev *bool
	varfn func(vars map[string]confVar)
}

type confVar struct {
	val    string
	nested bool
}

// ConfDir sets a variable for the default option called $CONFDIR.
func ConfDir(path string) BindOpt {
	val := filepath.Clean(os.ExpandEnv(path))
	return BindOpt{varfn: func(vars map[string]confVar) {
		vars["CONFDIR"] = confVar{val: val, nested: false}
	}}
}

// ConfDirNested sets a variable for the default option called $CONFDIR.
// The value is nested under the binding prefix of the config struct.
func ConfDirNested(path string) BindOpt {
	val := filepath.Clean(os.ExpandEnv(path))
	return BindOpt{varfn: func(vars map[string]confVar) {
		vars["CONFDIR"] = confVar{val: val, nested: true}
	}}
}

// UseDevDefaults forces the bind call to use development defaults unless
// UseReleaseDefaults is provided as a subsequent option.
// Without either, Bind will determine which defaults to use based on the
// build information.
func UseDevDefaults() BindOpt {
	dev := true
	return BindOpt{isDev: &dev}
}

// UseReleaseDefaults forces the bind call to use release defaults unless
// UseDevDefaults is provided as a subsequent option.
func UseReleaseDefaults() BindOpt {
	dev := false
	return BindOpt{isDev: &dev}
}

// DefaultsType returns the type of defaults (dev/release) this binary should use.
func DefaultsType() string {
	// the flag machinery may not have run yet, so dig through the arguments
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "--defaults=") {
			return strings.ToLower(strings.TrimPrefix(arg, "--defaults="))
		}
	}
	if version.Build.Release {
		return "release"
	}
	return "dev"
}

// DefaultsFlag pins the --defaults=dev/release choice for a bind call.
func DefaultsFlag() BindOpt {
	switch dt := DefaultsType(); dt {
	case "dev":
		return UseDevDefaults()
	case "release":
		return UseReleaseDefaults()
	default:
		panic(fmt.Sprintf("unknown defaults: %q", dt))
	}
}

// Bind sets flags on a FlagSet that match the configuration struct
// 'config'. This works by traversing the config struct using the 'reflect'
// package.
func Bind(flags FlagSet, config interface{}, opts ...BindOpt) {
	ptrtype := reflect.TypeOf(config)
	if ptrtype.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("invalid config type: %#v. Expecting pointer to struct.", config))
	}

	isDev := DefaultsType() != "release"
	vars := map[string]confVar{}
	for _, opt := range opts {
		if opt.varfn != nil {
			opt.varfn(vars)
		}
		if opt.isDev != nil {
			isDev = *opt.isDev
		}
	}

	bindConfig(flags, "", reflect.ValueOf(config).Elem(), vars, false, isDev)
}

func bindConfig(flags FlagSet, prefix string, val reflect.Value, vars map[string]confVar, setupCommand, isDev bool) {
	if val.Kind() != reflect.Struct {
		panic(fmt.Sprintf("invalid config type: %#v. Expecting struct.", val.Interface()))
	}
	typ := val.Type()

	resolvedVars := make(map[string]string, len(vars))
	{
		structpath := strings.Replace(prefix, ".", "/", -1)
		for k, v := range vars {
			if !v.nested {
				resolvedVars[k] = v.val
				continue
			}
			resolvedVars[k] = filepath.Join(v.val, structpath)
		}
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldval := val.Field(i)
		flagname := prefix + hyphenate(snakeCase(field.Name))

		if field.Tag.Get("internal") == "true" {
			continue
		}

		onlyForSetup := setupCommand || field.Tag.Get("setup") == "true"

		switch field.Type.Kind() {
		case reflect.Struct:
			if field.Anonymous {
				bindConfig(flags, prefix, fieldval, vars, onlyForSetup, isDev)
			} else {
				bindConfig(flags, flagname+".", fieldval, vars, onlyForSetup, isDev)
			}

		default:
			help := field.Tag.Get("help")
			def := field.Tag.Get("default")
			if isDev {
				if devDefault, ok := field.Tag.Lookup("devDefault"); ok {
					def = devDefault
				}
			} else {
				if releaseDefault, ok := field.Tag.Lookup("releaseDefault"); ok {
					def = releaseDefault
				}
			}

			fieldaddr := fieldval.Addr().Interface()
			check := func(err error) {
				if err != nil {
					panic(fmt.Sprintf("invalid default value for %s: %#v", flagname, def))
				}
			}

			switch field.Type {
			case reflect.TypeOf(int(0)):
				val, err := strconv.ParseInt(def, 0, strconv.IntSize)
				check(err)
				flags.IntVar(fieldaddr.(*int), flagname, int(val), help)
			case reflect.TypeOf(int64(0)):
				val, err := strconv.ParseInt(def, 0, 64)
				check(err)
				flags.Int64Var(fieldaddr.(*int64), flagname, val, help)
			case reflect.TypeOf(uint(0)):
				val, err := strconv.ParseUint(def, 0, strconv.IntSize)
				check(err)
				flags.UintVar(fieldaddr.(*uint), flagname, uint(val), help)
			case reflect.TypeOf(uint64(0)):
				val, err := strconv.ParseUint(def, 0, 64)
				check(err)
				flags.Uint64Var(fieldaddr.(*uint64), flagname, val, help)
			case reflect.TypeOf(time.Duration(0)):
				val, err := time.ParseDuration(def)
				check(err)
				flags.DurationVar(fieldaddr.(*time.Duration), flagname, val, help)
			case reflect.TypeOf(float64(0)):
				val, err := strconv.ParseFloat(def, 64)
				check(err)
				flags.Float64Var(fieldaddr.(*float64), flagname, val, help)
			case reflect.TypeOf(string("")):
				flags.StringVar(fieldaddr.(*string), flagname, expand(resolvedVars, def), help)
			case reflect.TypeOf(bool(false)):
				val, err := strconv.ParseBool(def)
				check(err)
				flags.BoolVar(fieldaddr.(*bool), flagname, val, help)
			default:
				panic(fmt.Sprintf("invalid field type: %s", field.Type.String()))
			}

			if onlyForSetup {
				setBoolAnnotation(flags, flagname, "setup")
			}
			if field.Tag.Get("user") == "true" {
				setBoolAnnotation(flags, flagname, "user")
			}
			if field.Tag.Get("hidden") == "true" {
				setBoolAnnotation(flags, flagname, "hidden")
			}
		}
	}
}

func setBoolAnnotation(flagset interface{}, name, key string) {
	flags, ok := flagset.(*pflag.FlagSet)
	if !ok {
		return
	}

	err := flags.SetAnnotation(name, key, []string{"true"})
	if err != nil {
		panic(fmt.Sprintf("unable to set %s annotation for %s: %v", key, name, err))
	}
}

func expand(vars map[string]string, val string) string {
	return os.Expand(val, func(key string) string { return vars[key] })
}

// snakeCase converts the name from CamelCase to snake_case.
func snakeCase(val string) string {
	// special case, because we would get s_q_l
	if val == "SQL" {
		return "sql"
	}

	runes := []rune(val)
	var out []rune
	for i := 0; i < len(runes); i++ {
		if i > 0 &&
			unicode.IsUpper(runes[i]) &&
			(unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			out = append(out, '_')
		}
		out = append(out, unicode.ToLower(runes[i]))
	}
	return string(out)
}

func hyphenate(val string) string {
	return strings.Replace(val, "_", "-", -1)
}
