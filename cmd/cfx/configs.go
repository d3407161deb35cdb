package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/confix-format/go-confix/store"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type MainConfig struct {
	File     string `cli:"name=f aliases=file desc='config file path'"`
	Color    bool   `cli:"name=color desc='colorize output'"`
	Deferred bool   `cli:"name=deferred desc='hold writes in memory until flush'"`
	Create   bool   `cli:"name=create desc='create the file if it does not exist'"`
	Password string `cli:"name=password desc='envelope password'"`
	Prompt   bool   `cli:"name=p aliases=prompt desc='prompt for the envelope password'"`

	Main *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Type   string `cli:"name=type desc='explicit type tag'"`
	Scheme string `cli:"name=scheme desc='envelope scheme: DPAPI or AES256'"`
	Set    *cli.Command
}

type RemoveConfig struct {
	*MainConfig
	Remove *cli.Command
}

type NamesConfig struct {
	*MainConfig
	Names *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	To      string `cli:"name=to desc='output format: yaml or json'"`
	Import  string `cli:"name=import desc='import a yaml or json file into the config'"`
	Convert *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch *cli.Command
}

func (cfg *MainConfig) open() (*store.Store, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("%w: no config file, use -f", cli.ErrUsage)
	}
	pw, err := cfg.pw()
	if err != nil {
		return nil, err
	}
	opts := []store.Option{}
	if cfg.Deferred {
		opts = append(opts, store.WithDeferred())
	}
	if cfg.Create {
		opts = append(opts, store.WithCreate())
	}
	if pw != "" {
		opts = append(opts, store.WithPassword(pw))
	}
	return store.Open(cfg.File, opts...)
}

func (cfg *MainConfig) pw() (string, error) {
	if !cfg.Prompt {
		return cfg.Password, nil
	}
	if cfg.Password != "" {
		return "", errors.New("-p and -password are mutually exclusive")
	}
	fmt.Fprint(os.Stderr, "password: ")
	d, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	cfg.Password = string(d)
	return cfg.Password, nil
}

func (cfg *MainConfig) colorize(w *os.File) bool {
	if cfg.Color {
		return true
	}
	return isatty.IsTerminal(w.Fd())
}
