package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stellar-expert/libbundle/internal/logger"
	"github.com/stellar-expert/libbundle/pkg/bundler"
)

type ConfigCmd struct {
	ParamFlags `embed:""`
	Out        string `help:"Write the configuration to a file instead of stdout"`
}

func (c *ConfigCmd) Run(globals *Globals) error {
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

	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(c.Out, append(encoded, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	log.Info().Str("file", c.Out).Str("mode", c.Mode).Msg("Wrote configuration")
	return nil
}
