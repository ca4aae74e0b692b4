package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/kpath"
	"github.com/signadot/docschema/loader"
	"github.com/signadot/docschema/schema"
)

type MainConfig struct {
	Dir       string `cli:"name=d aliases=dir desc='schema directory' default=."`
	Recursive bool   `cli:"name=r desc='load schemas from subdirectories too'"`
	IDExpr    string `cli:"name=idExpr desc='expression giving the id of a document from path, name, stem and doc'"`
	Trim      bool   `cli:"name=trim desc='resolve #Name and #/definitions/Name references as Name'"`
	Color     bool   `cli:"name=color desc='output with color'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml (default)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) loadOpts() ([]loader.Option, error) {
	res := []loader.Option{loader.Recursive(cfg.Recursive)}
	if cfg.IDExpr != "" {
		idf, err := loader.IDExpr(cfg.IDExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		res = append(res, loader.IDFunc(idf))
	}
	return res, nil
}

// load builds a registry from the schema directory. It returns the id of
// each loaded file.
func (cfg *MainConfig) load(ctx context.Context) (*schema.Registry, map[string]string, error) {
	var rOpts []schema.RegistryOption
	if cfg.Trim {
		rOpts = append(rOpts, schema.WithTranslator(schema.TrimFragment))
	}
	reg := schema.NewRegistry(rOpts...)
	lOpts, err := cfg.loadOpts()
	if err != nil {
		return nil, nil, err
	}
	ids, err := loader.LoadDir(ctx, reg, cfg.Dir, lOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading %s: %w", cfg.Dir, err)
	}
	return reg, ids, nil
}

func lookup(reg *schema.Registry, id string) (*schema.Schema, error) {
	s := reg.Get(id)
	if s == nil {
		return nil, fmt.Errorf("no schema registered as %q", id)
	}
	return s, nil
}

// colors follows -color when given, and otherwise colors output to
// terminals.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type RelsConfig struct {
	*MainConfig
	Limit  string `cli:"name=limit desc='only follow this path'"`
	Depth  int    `cli:"name=depth desc='maximum depth when no limit is given (-1: unbounded)'"`
	Prefix string `cli:"name=prefix desc='prefix reported paths with this path'"`
	Rebase string `cli:"name=rebase desc='replace a leading path of reported paths, as from=to'"`

	Storages []schema.Storage

	Rels *cli.Command
}

func (cfg *RelsConfig) storageOpt(_ *cli.Context, v string) (any, error) {
	cfg.Storages = cfg.Storages[:0]
	for _, s := range strings.Split(v, ",") {
		st, err := schema.ParseStorage(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Storages = append(cfg.Storages, st)
	}
	return cfg.Storages, nil
}

type TransientConfig struct {
	*MainConfig
	Limit string `cli:"name=limit desc='only follow this path'"`
	Depth int    `cli:"name=depth desc='maximum depth when no limit is given (-1: unbounded)'"`

	Transient *cli.Command
}

type RequiredConfig struct {
	*MainConfig

	Required *cli.Command
}

type ExpandConfig struct {
	*MainConfig

	Expand *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Depth int `cli:"name=depth desc='maximum depth (-1: unbounded)'"`

	Diff *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Rels string `cli:"name=rels desc='print the relationships of this schema after each change'"`

	Watch *cli.Command
}

func walkOpts(limit string, depth int) ([]schema.WalkOption, error) {
	var res []schema.WalkOption
	if limit != "" {
		p, err := kpath.Parse(limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		res = append(res, schema.LimitTo(p))
	}
	if depth >= 0 {
		res = append(res, schema.MaxDepth(depth))
	}
	return res, nil
}
