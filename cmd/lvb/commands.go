package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/roccodev/xeno-lvb/internal/dump"
	"github.com/roccodev/xeno-lvb/internal/logger"
	"github.com/roccodev/xeno-lvb/pkg/lvb"
)

func dumpFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "include-bytes",
			Usage: "include raw payload bytes in the JSON output",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "indent",
			Usage: "JSON indent string",
			Value: " ",
		},
	}
}

func dumpOptions(cmd *cli.Command) dump.Options {
	o := dump.Options{
		IncludeBytes: cmd.Bool("include-bytes"),
		Indent:       cmd.String("indent"),
	}
	if !cmd.IsSet("include-bytes") && cfg.IncludeBytes != nil {
		o.IncludeBytes = *cfg.IncludeBytes
	}
	if !cmd.IsSet("indent") && cfg.Indent != nil {
		o.Indent = *cfg.Indent
	}
	return o
}

// openArg opens the LVB file named by the positional argument at i.
func openArg(cmd *cli.Command, i int) (*lvb.File, error) {
	path := cmd.Args().Get(i)
	if path == "" {
		return nil, fmt.Errorf("usage: lvb %s %s", cmd.Name, cmd.ArgsUsage)
	}
	f, err := lvb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func writeJSON(out []byte) error {
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	_, err := fmt.Println()
	return err
}

func fullCmd() *cli.Command {
	return &cli.Command{
		Name:      "full",
		Usage:     "Dump the whole container structure as JSON",
		ArgsUsage: "<file>",
		Flags:     dumpFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := openArg(cmd, 0)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			logger.FromContext(ctx).Debug("decoded container",
				"version", f.Container.Version,
				"modern", f.Container.Modern,
				"sections", len(f.Container.Sections))

			out, err := dump.Container(f.Container, dumpOptions(cmd))
			if err != nil {
				return err
			}
			return writeJSON(out)
		},
	}
}

func gimmickCmd() *cli.Command {
	return &cli.Command{
		Name:      "gimmick",
		Usage:     "Dump one gimmick by name or <XXXXXXXX> hash",
		ArgsUsage: "<file> <name-or-hash>",
		Flags:     dumpFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := openArg(cmd, 0)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			key := cmd.Args().Get(1)
			entry, ok := f.Container.Gimmick(key)
			if !ok {
				return fmt.Errorf("gimmick %q not found", key)
			}
			out, err := dump.Gimmick(f.Container, entry, dumpOptions(cmd))
			if err != nil {
				return err
			}
			return writeJSON(out)
		},
	}
}

func bdatCmd() *cli.Command {
	return &cli.Command{
		Name:      "bdat",
		Usage:     "Dump one gimmick by its bdat id (modern format only)",
		ArgsUsage: "<file> <id-or-hash>",
		Flags:     dumpFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := openArg(cmd, 0)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			key := cmd.Args().Get(1)
			entry, ok := f.Container.BdatGimmick(key)
			if !ok {
				return fmt.Errorf("gimmick with bdat id %q not found", key)
			}
			out, err := dump.Gimmick(f.Container, entry, dumpOptions(cmd))
			if err != nil {
				return err
			}
			return writeJSON(out)
		},
	}
}
