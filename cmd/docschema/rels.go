package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/schema"
)

func rels(cfg *RelsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rels.Parse(cc, args)
	if err != nil {
		cfg.Rels.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: rels requires one id", cli.ErrUsage)
	}
	opts, err := walkOpts(cfg.Limit, cfg.Depth)
	if err != nil {
		return err
	}
	if len(cfg.Storages) != 0 {
		opts = append(opts, schema.Storages(cfg.Storages...))
	}
	fn, err := pathTransformer(cfg.Prefix, cfg.Rebase)
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
	found, err := reg.FindRelationships(s, opts...)
	if err != nil {
		return err
	}
	report, err := relReport(found, fn)
	if err != nil {
		return err
	}
	return cfg.write(cc.Out, report)
}
