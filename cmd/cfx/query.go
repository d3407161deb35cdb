package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/expr-lang/expr"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: query requires exactly one expression", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	env := project(s)
	prg, err := expr.Compile(args[0], expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("compiling %q: %w", args[0], err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return fmt.Errorf("evaluating %q: %w", args[0], err)
	}
	fmt.Fprintf(cc.Out, "%v\n", res)
	return nil
}
