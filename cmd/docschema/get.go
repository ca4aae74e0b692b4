package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/kpath"
	"github.com/signadot/docschema/schema"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires an id and an optional path", cli.ErrUsage)
	}
	var p kpath.Path
	if len(args) == 2 {
		p, err = kpath.Parse(args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	reg, _, err := cfg.load(context.Background())
	if err != nil {
		return err
	}
	s, err := lookup(reg, args[0])
	if err != nil {
		return err
	}
	prop := reg.FindProperty(s, p)
	if prop == nil {
		return fmt.Errorf("%s has no property %q", args[0], p.String())
	}
	return cfg.write(cc.Out, schema.Encode(prop))
}
