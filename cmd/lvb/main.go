package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/roccodev/xeno-lvb/internal/logger"
	"github.com/roccodev/xeno-lvb/internal/version"
)

// cfg holds the optional config-file defaults, applied only where the
// matching flag was not set on the command line.
var cfg Config

func main() {
	cfg = loadConfig()

	app := &cli.Command{
		Name:  "lvb",
		Usage: "Inspect LVB gimmick containers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug|info|warn|error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text|json",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return logger.WithContext(ctx, newLogger(cmd)), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			fullCmd(),
			gimmickCmd(),
			bdatCmd(),
			serveCmd(),
			{
				Name:  "version",
				Usage: "Print the build version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Println(version.String())
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) logger.Logger {
	level := cmd.String("log-level")
	if level == "" {
		level = cfg.LogLevel
	}
	format := cmd.String("log-format")
	if format == "" {
		format = cfg.LogFormat
	}
	if format == "json" {
		return logger.JSON(os.Stderr, logger.ParseLevel(level))
	}
	return logger.Text(os.Stderr, logger.ParseLevel(level))
}
