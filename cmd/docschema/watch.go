package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/loader"
	"github.com/signadot/docschema/schema"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: watch takes no arguments", cli.ErrUsage)
	}

	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg, ids, err := cfg.load(ctx)
	if err != nil {
		return err
	}
	lOpts, err := cfg.loadOpts()
	if err != nil {
		return err
	}
	w, err := loader.NewWatcher(reg, cfg.Dir, ids, lOpts...)
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "watching %s (%d schemas)\n", cfg.Dir, reg.Len())
	if err := cfg.showRels(cc, reg); err != nil {
		fmt.Fprintf(cc.Out, "%v\n", err)
	}
	for ev := range w.Events() {
		fmt.Fprintf(cc.Out, "%s\n", ev)
		if ev.Op == loader.OpError {
			continue
		}
		if err := cfg.showRels(cc, reg); err != nil {
			fmt.Fprintf(cc.Out, "%v\n", err)
		}
	}
	return nil
}

func (cfg *WatchConfig) showRels(cc *cli.Context, reg *schema.Registry) error {
	if cfg.Rels == "" {
		return nil
	}
	s, err := lookup(reg, cfg.Rels)
	if err != nil {
		return err
	}
	found, err := reg.FindRelationships(s)
	if err != nil {
		return err
	}
	report, err := relReport(found, nil)
	if err != nil {
		return err
	}
	return cfg.write(cc.Out, report)
}
