package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Dir: "."}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "docschema").
		WithSynopsis("docschema [-d dir] [opts] command [opts]").
		WithDescription("docschema answers structural questions about a directory of schema documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docschemaMain(cfg, cc, args)
		}).
		WithSubs(
			ListCommand(cfg),
			GetCommand(cfg),
			RelsCommand(cfg),
			TransientCommand(cfg),
			RequiredCommand(cfg),
			ExpandCommand(cfg),
			DiffCommand(cfg),
			WatchCommand(cfg))
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list").
		WithDescription("list the registered schema ids and their files").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <id> [path]").
		WithDescription("show the schema of a property, following references and compositions").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func RelsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RelsConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "storage",
		Description: "report only these storage classes (copy,ref,inverse-ref)",
		Type:        cli.NamedFuncOpt(cfg.storageOpt, "(list)"),
	})
	return cli.NewCommandAt(&cfg.Rels, "rels").
		WithAliases("r", "relationships").
		WithSynopsis("rels [-storage s,...] [-limit path] [-depth n] [-prefix path | -rebase from=to] <id>").
		WithDescription("list the relationships declared by a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rels(cfg, cc, args)
		})
}

func TransientCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TransientConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Transient, "transient").
		WithAliases("t").
		WithSynopsis("transient [-limit path] [-depth n] <id>").
		WithDescription("list the transient properties of a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return transient(cfg, cc, args)
		})
}

func RequiredCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RequiredConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Required, "required").
		WithAliases("req").
		WithSynopsis("required <id> <path>...").
		WithDescription("tell whether properties are required all the way from the root").
		WithRun(func(cc *cli.Context, args []string) error {
			return required(cfg, cc, args)
		})
}

func ExpandCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExpandConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Expand, "expand").
		WithAliases("x").
		WithSynopsis("expand <id>").
		WithDescription(expandDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return expand(cfg, cc, args)
		})
}

const expandDescription = `expand replaces every $ref of a schema by the schema it names.

References that form a cycle are written as {$cycle: <path>}, where path is
the keyword path of the node the reference leads back to.  References which
name no registered schema are left as they are.`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-depth n] <id-a> <id-b>").
		WithDescription("compare the relationships of two schemas").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-rels id]").
		WithDescription("reload schemas as their files change").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}
