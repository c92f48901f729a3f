// Package config holds velac's build-time constants and the
// velac.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current velac version.
// Set at build time via -ldflags or by writing to this file.
var Version = "0.1.0"

const SourceFileExt = ".vela"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".vela"}

// TrimSourceExt removes a recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// ProjectConfig is the shape of velac.yaml, a project's build
// configuration. The velac CLI reads only Color; Root, Out and
// DumpTypesTo are loaded but no command uses them.
type ProjectConfig struct {
	// Root is the project's source directory, relative to the config
	// file. Defaults to "." when omitted.
	Root string `yaml:"root,omitempty"`

	// Out is the project's output directory.
	Out string `yaml:"out,omitempty"`

	// Color controls the CLI's diagnostic color output: "auto" (the
	// default, gated by isatty), "always", or "never".
	Color string `yaml:"color,omitempty"`

	// DumpTypesTo is a sqlite path for a Type Table export. Analysis
	// does not write an export on its own; `velac dump-types` takes its
	// output path from -o.
	DumpTypesTo string `yaml:"dump_types_to,omitempty"`
}

// Default returns the configuration used when no velac.yaml is found.
func Default() *ProjectConfig {
	return &ProjectConfig{Root: ".", Out: "out", Color: "auto"}
}

// Load reads and parses a velac.yaml project file at path.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
