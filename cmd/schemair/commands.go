package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "schemair").
		WithSynopsis("schemair [opts] command [opts]").
		WithDescription("schemair checks, inspects and cleans schema documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return schemairMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			GatherCommand(cfg),
			CleanCommand(cfg),
			ViewCommand(cfg))
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-q] [files]").
		WithDescription("check that schema documents are well formed and their references bound").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func GatherCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GatherConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Gather, "gather").
		WithAliases("g").
		WithSynopsis("gather [-keys k1,k2] [-where expr] [-nodefs] [-refs] [files]").
		WithDescription(gatherDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gather(cfg, cc, args)
		})
}

const gatherDescription = `gather lists the schema nodes a cleaning pass visits.

All documents of all files form one bundle: their definitions are bound in
one registry and each document's root is walked against it.  Every node is
listed once, in walk order, followed by the definitions no root reaches
unless -nodefs is given.

-keys selects nodes carrying one of the metadata keys.  -where selects nodes
for which an expression holds; the expression sees kind, name, metadata,
keys and children, for example

  gather -where 'kind == "model" && Has("deprecated")' schema.yaml`

func CleanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CleanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Clean, "clean").
		WithSynopsis("clean [-keys k1,k2] [-patch] [files]").
		WithDescription("remove metadata from schema documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return clean(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view schema documents in normal form, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}
