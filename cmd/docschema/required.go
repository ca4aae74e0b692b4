package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/kpath"
)

func required(cfg *RequiredConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Required.Parse(cc, args)
	if err != nil {
		cfg.Required.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: required needs an id and at least one path", cli.ErrUsage)
	}
	paths := make([]kpath.Path, 0, len(args)-1)
	for _, a := range args[1:] {
		p, err := kpath.Parse(a)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		paths = append(paths, p)
	}
	reg, _, err := cfg.load(context.Background())
	if err != nil {
		return err
	}
	s, err := lookup(reg, args[0])
	if err != nil {
		return err
	}
	res := map[string]any{}
	for i, p := range paths {
		res[args[i+1]] = reg.IsRequired(s, p)
	}
	return cfg.write(cc.Out, res)
}
