package main

import (
	"fmt"
	"io"
	"os"

	"github.com/confix-format/go-confix/gomap"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: set requires a name and a value", cli.ErrUsage)
	}
	name, text := args[0], args[1]
	if text == "-" {
		d, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(d)
	}
	// the value arrives as text; an explicit tag types it
	v, err := gomap.FromText(cfg.Type, text)
	if err != nil {
		return err
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	callOpts := callOptions(cfg.MainConfig, cfg.Scheme)
	changed, err := s.Set(name, v, callOpts...)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(cc.Out, "%s unchanged\n", name)
		return nil
	}
	if s.Deferred() {
		return s.Flush()
	}
	return nil
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		cfg.Remove.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: remove requires at least one name", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	removed, err := s.Remove(args...)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(cc.Out, "nothing removed")
		return nil
	}
	if s.Deferred() {
		return s.Flush()
	}
	return nil
}
