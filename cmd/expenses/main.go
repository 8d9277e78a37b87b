package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"expenses/internal/cli"
	"expenses/internal/log"
)

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	user := flag.String("user", cfg.LedgerUser, "ledger owner (default LEDGER_USER)")
	level := flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := cli.NewApp(cfg, log.Discard())
	cli.Register(commander, app)

	flag.Parse()

	logger, err := cli.SetupLogger(*level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	app.Logger = logger
	app.User = *user

	ctx, stop := cli.SignalContext(context.Background())
	ctx = log.NewContext(ctx, logger)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
