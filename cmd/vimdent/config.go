package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vimdent/internal/config"
)

func (e *env) config(args []string) error {
	usage := func() {
		fmt.Fprintf(e.stderr, "Usage:\n")
		fmt.Fprintf(e.stderr, "  vimdent config show              Print the settings in effect\n")
		fmt.Fprintf(e.stderr, "  vimdent config schema            Print the settings JSON Schema\n")
		fmt.Fprintf(e.stderr, "  vimdent config set [-file F] KEY VALUE\n")
	}
	if len(args) == 0 {
		usage()
		return errUsage
	}

	switch args[0] {
	case "show":
		return e.configShow()
	case "schema":
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.stdout, "%s", data)
		return err
	case "set":
		return e.configSet(args[1:])
	default:
		fmt.Fprintf(e.stderr, "Error: unknown config command %q\n", args[0])
		usage()
		return errUsage
	}
}

// configShow prints the settings as TOML, each key preceded by the
// layer that supplied it.
func (e *env) configShow() error {
	store, err := e.loadStore(".")
	if err != nil {
		return err
	}

	settings := store.Settings().Map()
	for _, key := range config.Keys() {
		v, ok := settings[key]
		if !ok {
			fmt.Fprintf(e.stdout, "# %s is not set\n\n", key)
			continue
		}

		origin := "builtin"
		if l, ok := store.Origin(key); ok {
			origin = l.Name
			if l.Path != "" {
				origin += " " + l.Path
			}
		}

		data, err := toml.Marshal(map[string]any{key: v})
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "# from %s\n%s\n", origin, data)
	}
	return nil
}

func (e *env) configSet(args []string) error {
	flags := flag.NewFlagSet("config set", flag.ContinueOnError)
	flags.SetOutput(e.stderr)
	file := flags.String("file", "", "Settings file to edit (default: the -config file)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	if flags.NArg() != 2 {
		fmt.Fprintf(e.stderr, "Usage: vimdent config set [-file F] KEY VALUE\n")
		return errUsage
	}

	path := *file
	if path == "" {
		path = e.userFile()
	}
	key, value := flags.Arg(0), flags.Arg(1)
	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s = %s in %s\n", key, value, path)
	return nil
}
