package main

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: list takes no arguments", cli.ErrUsage)
	}
	_, ids, err := cfg.load(context.Background())
	if err != nil {
		return err
	}
	files := make([]string, 0, len(ids))
	for f := range ids {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b string) int {
		if c := cmp.Compare(ids[a], ids[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	res := make([]any, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(cfg.Dir, f)
		if err != nil {
			rel = f
		}
		res = append(res, map[string]any{"id": ids[f], "file": rel})
	}
	return cfg.write(cc.Out, res)
}
