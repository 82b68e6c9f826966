// ethtx signs, inspects and stores legacy Ethereum transactions.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/veritas-L2/ethtx/config"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format to use (json|logfmt|terminal)",
	}
)

// cfg holds the settings loaded before any command runs.
var cfg = config.Default()

var app = &cli.App{
	Name:  "ethtx",
	Usage: "sign, inspect and store legacy Ethereum transactions",
	Flags: []cli.Flag{
		configFileFlag,
		verbosityFlag,
		logFormatFlag,
	},
	Before: setup,
	Commands: []*cli.Command{
		signCommand,
		inspectCommand,
		rootCommand,
		storeCommand,
		dumpConfigCommand,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(ctx *cli.Context) error {
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := config.Load(file, &cfg); err != nil {
			return err
		}
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Log.Format = ctx.String(logFormatFlag.Name)
	}
	return setupLogging(cfg.Log)
}

func setupLogging(c config.LogConfig) error {
	output := io.Writer(os.Stderr)

	var handler slog.Handler
	switch c.Format {
	case "json":
		handler = log.JSONHandler(output)
	case "logfmt":
		handler = log.LogfmtHandler(output)
	case "", "terminal":
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			output = colorable.NewColorableStderr()
		}
		handler = log.NewTerminalHandler(output, useColor)
	default:
		return fmt.Errorf("unknown log format: %v", c.Format)
	}

	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(log.FromLegacyLevel(c.Verbosity))
	log.SetDefault(log.NewLogger(glogger))
	return nil
}
