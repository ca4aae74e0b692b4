package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/schema"
)

func expand(cfg *ExpandConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Expand.Parse(cc, args)
	if err != nil {
		cfg.Expand.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expand requires one id", cli.ErrUsage)
	}
	ctx := context.Background()
	reg, _, err := cfg.load(ctx)
	if err != nil {
		return err
	}
	s, err := lookup(reg, args[0])
	if err != nil {
		return err
	}
	x, err := reg.Expand(ctx, s)
	if err != nil {
		return fmt.Errorf("error expanding %s: %w", args[0], err)
	}
	return cfg.write(cc.Out, schema.Encode(x))
}
