package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/goccy/go-yaml"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: convert takes no positional arguments", cli.ErrUsage)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	if cfg.Import != "" {
		d, err := os.ReadFile(cfg.Import)
		if err != nil {
			return fmt.Errorf("reading %s: %w", cfg.Import, err)
		}
		m := map[string]any{}
		if strings.HasSuffix(cfg.Import, ".json") {
			err = json.Unmarshal(d, &m)
		} else {
			err = yaml.Unmarshal(d, &m)
		}
		if err != nil {
			return fmt.Errorf("decoding %s: %w", cfg.Import, err)
		}
		if err := importMap(s, m); err != nil {
			return err
		}
		if s.Deferred() {
			return s.Flush()
		}
		return nil
	}
	m := project(s)
	switch strings.ToLower(cfg.To) {
	case "", "yaml":
		d, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		fmt.Fprint(cc.Out, string(d))
	case "json":
		d, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, string(d))
	default:
		return fmt.Errorf("%w: unknown format %q", cli.ErrUsage, cfg.To)
	}
	return nil
}
