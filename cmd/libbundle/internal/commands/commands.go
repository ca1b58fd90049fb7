package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stellar-expert/libbundle/pkg/bundler"
)

type Globals struct {
	Debug   bool
	Version string
}

// ParamFlags is the shared declarative-parameter surface of the config and
// build commands. A parameters file takes precedence over flags.
type ParamFlags struct {
	Name        string            `help:"Output library name" short:"n"`
	Input       string            `help:"Entry module path" short:"i"`
	Output      string            `help:"Output directory" short:"o"`
	ProjectRoot string            `help:"Project root used to resolve relative paths"`
	Mode        string            `help:"Build mode" default:"development" enum:"development,production"`
	SourceMap   bool              `help:"Generate source maps"`
	Stats       bool              `help:"Collect bundle statistics"`
	Define      map[string]string `help:"Compile-time constants (name=value)"`
	External    map[string]string `help:"Additional external modules (name=target)"`
	Ignore      []string          `help:"Glob patterns for resources to exclude"`
	File        string            `help:"Parameters file (YAML, or JSON by extension)" short:"f" type:"existingfile"`
}

// params merges the file (when given) and flags into a parameter record.
func (p *ParamFlags) params() (bundler.Params, error) {
	params := bundler.Params{
		LibraryName:             p.Name,
		InputPath:               p.Input,
		OutputPath:              p.Output,
		ProjectRoot:             p.ProjectRoot,
		GenerateSourceMap:       p.SourceMap,
		CollectBundleStatistics: p.Stats,
	}
	if len(p.Define) > 0 {
		params.DefinedConstants = map[string]any{}
		for name, value := range p.Define {
			params.DefinedConstants[name] = value
		}
	}
	if len(p.External) > 0 {
		params.ExternalModules = p.External
	}
	if len(p.Ignore) > 0 {
		params.IgnorePredicate = bundler.IgnoreGlobs(p.Ignore...)
	}

	if p.File == "" {
		return params, nil
	}

	data, err := os.ReadFile(p.File)
	if err != nil {
		return bundler.Params{}, fmt.Errorf("failed to read parameters file: %w", err)
	}

	var fileParams bundler.Params
	if strings.HasSuffix(strings.ToLower(p.File), ".json") {
		if err := json.Unmarshal(data, &fileParams); err != nil {
			return bundler.Params{}, fmt.Errorf("failed to parse JSON parameters: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &fileParams); err != nil {
			return bundler.Params{}, fmt.Errorf("failed to parse YAML parameters: %w", err)
		}
	}

	// File values take precedence over flags.
	if fileParams.LibraryName != "" {
		params.LibraryName = fileParams.LibraryName
	}
	if fileParams.InputPath != "" {
		params.InputPath = fileParams.InputPath
	}
	if fileParams.OutputPath != "" {
		params.OutputPath = fileParams.OutputPath
	}
	if fileParams.ProjectRoot != "" {
		params.ProjectRoot = fileParams.ProjectRoot
	}
	if fileParams.Library != (bundler.LibraryDescriptor{}) {
		params.Library = fileParams.Library
	}
	if len(fileParams.DefinedConstants) > 0 {
		params.DefinedConstants = fileParams.DefinedConstants
	}
	if len(fileParams.ExternalModules) > 0 {
		params.ExternalModules = fileParams.ExternalModules
	}
	if fileParams.GenerateSourceMap {
		params.GenerateSourceMap = true
	}
	if fileParams.GlobalObject != "" {
		params.GlobalObject = fileParams.GlobalObject
	}
	if fileParams.CollectBundleStatistics {
		params.CollectBundleStatistics = true
	}

	return params, nil
}

func (p *ParamFlags) invocation() bundler.InvocationContext {
	return bundler.InvocationContext{Mode: bundler.Mode(p.Mode)}
}
