// Package config provides the configuration loader for nodeup.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no path is given.
const DefaultFileName = "nodeup.yaml"

// DefaultTargetDir is where the toolchain is provisioned when the file
// does not say otherwise.
const DefaultTargetDir = ".toolchain"

// File represents the structure of the nodeup.yaml configuration file.
type File struct {
	Version   string       `yaml:"version"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	TargetDir string       `yaml:"targetDir"`
	// DownloadRoot overrides the canonical distribution root. Useful for
	// internal mirrors and for tests.
	DownloadRoot string `yaml:"downloadRoot"`
}

// ToolchainDTO holds the required component versions.
type ToolchainDTO struct {
	Node string `yaml:"node"`
	NPM  string `yaml:"npm"`
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration from path. A missing file yields an empty
// config with defaults applied; the CLI layer decides whether the missing
// versions are fatal.
func (l *Loader) Load(path string) (ports.ToolchainConfig, error) {
	if path == "" {
		path = DefaultFileName
	}

	cfg := ports.ToolchainConfig{
		TargetDir:    DefaultTargetDir,
		DownloadRoot: domain.DefaultMirror,
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return ports.ToolchainConfig{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ports.ToolchainConfig{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	cfg.NodeVersion = file.Toolchain.Node
	cfg.NPMVersion = file.Toolchain.NPM
	if file.TargetDir != "" {
		cfg.TargetDir = file.TargetDir
	}
	if file.DownloadRoot != "" {
		cfg.DownloadRoot = domain.Mirror(file.DownloadRoot)
	}

	return cfg, nil
}

// Ensure Loader satisfies the interface.
var _ ports.ConfigLoader = (*Loader)(nil)
