package main

import (
	"fmt"
	"os"

	"github.com/confix-format/go-confix/encode"

	"github.com/scott-cotton/cli"
)

func names(cfg *NamesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Names.Parse(cc, args)
	if err != nil {
		cfg.Names.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: names takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	for _, name := range s.Names() {
		fmt.Fprintln(cc.Out, name)
	}
	return nil
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: view takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	encOpts := []encode.EncodeOption{}
	if cfg.colorize(os.Stdout) {
		encOpts = append(encOpts, encode.EncodeColors(encode.NewColors()))
	}
	return encode.Encode(s.Records(), cc.Out, encOpts...)
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: diff takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	d, err := s.PendingDiff()
	if err != nil {
		return err
	}
	if d == "" {
		return nil
	}
	fmt.Fprint(cc.Out, d)
	return nil
}
