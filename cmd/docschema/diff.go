package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two ids", cli.ErrUsage)
	}
	opts, err := walkOpts("", cfg.Depth)
	if err != nil {
		return err
	}
	reg, _, err := cfg.load(context.Background())
	if err != nil {
		return err
	}
	var texts [2]string
	for i, id := range args {
		s, err := lookup(reg, id)
		if err != nil {
			return err
		}
		found, err := reg.FindRelationships(s, opts...)
		if err != nil {
			return fmt.Errorf("error finding relationships of %s: %w", id, err)
		}
		report, err := relReport(found, nil)
		if err != nil {
			return err
		}
		d, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		texts[i] = string(d)
	}
	return writeLineDiff(cc.Out, texts[0], texts[1], cfg.colors(cc.Out))
}

// writeLineDiff writes a line oriented diff of a and b.
func writeLineDiff(w io.Writer, a, b string, colors bool) error {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if colors {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			var err error
			switch d.Type {
			case diffpatch.DiffDelete:
				_, err = del.Fprint(w, "- "+line)
			case diffpatch.DiffInsert:
				_, err = ins.Fprint(w, "+ "+line)
			case diffpatch.DiffEqual:
				_, err = io.WriteString(w, "  "+line)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
