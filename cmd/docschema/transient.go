package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
)

func transient(cfg *TransientConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Transient.Parse(cc, args)
	if err != nil {
		cfg.Transient.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: transient requires one id", cli.ErrUsage)
	}
	opts, err := walkOpts(cfg.Limit, cfg.Depth)
	if err != nil {
		return err
	}
	reg, _, err := cfg.load(context.Background())
	if err != nil {
		return err
	}
	s, err := lookup(reg, args[0])
	if err != nil {
		return err
	}
	return cfg.write(cc.Out, pathStrings(reg.FindTransient(s, opts...)))
}
