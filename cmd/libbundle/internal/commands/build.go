package commands

import (
	"fmt"

	"github.com/stellar-expert/libbundle/internal/engine"
	"github.com/stellar-expert/libbundle/internal/logger"
	"github.com/stellar-expert/libbundle/pkg/bundler"
)

type BuildCmd struct {
	ParamFlags `embed:""`
}

func (c *BuildCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)

	params, err := c.params()
	if err != nil {
		return err
	}

	builder, err := bundler.New(params)
	if err != nil {
		return fmt.Errorf("failed to create builder: %w", err)
	}

	cfg, err := builder.Build(c.invocation())
	if err != nil {
		return fmt.Errorf("failed to build configuration: %w", err)
	}

	log.Debug().Str("mode", string(cfg.Mode)).Msg("Configuration assembled")

	if err := engine.Run(cfg); err != nil {
		return fmt.Errorf("bundling failed: %w", err)
	}
	return nil
}
