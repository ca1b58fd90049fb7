package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/stellar-expert/libbundle/cmd/libbundle/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Config  commands.ConfigCmd `cmd:"" help:"Generate a bundler configuration"`
		Build   commands.BuildCmd  `cmd:"" help:"Generate a configuration and run the bundler"`
		Debug   bool               `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
