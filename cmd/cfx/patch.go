package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
)

// patch applies an RFC 6902 patch document to the JSON projection of
// the config and re-imports the result. Envelope records project as
// opaque transport text and come back unchanged unless the patch
// touches them.
func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: patch requires one patch file", cli.ErrUsage)
	}
	d, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return fmt.Errorf("decoding patch: %w", err)
	}
	s, err := cfg.open()
	if err != nil {
		return err
	}
	doc, err := json.Marshal(project(s))
	if err != nil {
		return err
	}
	doc, err = ops.Apply(doc)
	if err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(doc, &m); err != nil {
		return err
	}
	// remove names the patch deleted, then set the rest
	var gone []string
	for _, name := range s.Names() {
		if _, ok := m[name]; !ok {
			gone = append(gone, name)
		}
	}
	if len(gone) > 0 {
		if _, err := s.Remove(gone...); err != nil {
			return err
		}
	}
	if err := importMap(s, m); err != nil {
		return err
	}
	if s.Deferred() {
		return s.Flush()
	}
	return nil
}
