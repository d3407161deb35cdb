package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/goccy/go-yaml"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires at least one name", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	for _, name := range args {
		v, err := s.Get(name)
		if err != nil {
			return err
		}
		switch v.(type) {
		case []any, []string, []int, []int64, []bool, []float64, map[string]any:
			d, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", name, err)
			}
			fmt.Fprint(cc.Out, string(d))
		default:
			fmt.Fprintf(cc.Out, "%v\n", v)
		}
	}
	return nil
}
