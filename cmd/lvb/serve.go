package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/roccodev/xeno-lvb/internal/api"
	"github.com/roccodev/xeno-lvb/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve gimmick lookups from a container over HTTP",
		ArgsUsage: "<file>",
		Flags: append(dumpFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			f, err := openArg(cmd, 0)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if !cmd.IsSet("addr") && cfg.ServerAddress != "" {
				addr = cfg.ServerAddress
			}

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			e.Use(api.RequestID())
			api.NewServer(f.Container, dumpOptions(cmd)).Register(e)

			log.Info("serving container",
				"address", addr,
				"version", f.Container.Version,
				"sections", len(f.Container.Sections))
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
