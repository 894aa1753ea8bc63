// Package app implements the application layer for nodeup.
package app

import (
	"context"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/nodeup/internal/engine/installer"
	"go.trai.ch/zerr"
)

// RunOptions are the per-invocation overrides supplied by the CLI. Every
// non-empty field takes precedence over the configuration file.
type RunOptions struct {
	ConfigPath   string
	NodeVersion  string
	NPMVersion   string
	TargetDir    string
	DownloadRoot string
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	installer    *installer.Installer
	detect       func() (domain.OS, domain.Arch)
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, inst *installer.Installer) *App {
	return &App{
		configLoader: loader,
		installer:    inst,
		detect:       domain.DetectPlatform,
	}
}

// WithPlatform overrides host platform detection. Used for testing.
func (a *App) WithPlatform(os domain.OS, arch domain.Arch) *App {
	a.detect = func() (domain.OS, domain.Arch) { return os, arch }
	return a
}

// Run loads the configuration, applies the CLI overrides and provisions
// the requested toolchain for the host platform.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.NodeVersion != "" {
		cfg.NodeVersion = opts.NodeVersion
	}
	if opts.NPMVersion != "" {
		cfg.NPMVersion = opts.NPMVersion
	}
	if opts.TargetDir != "" {
		cfg.TargetDir = opts.TargetDir
	}
	if opts.DownloadRoot != "" {
		cfg.DownloadRoot = domain.Mirror(opts.DownloadRoot)
	}

	hostOS, hostArch := a.detect()
	req, err := domain.NewInstallRequest(
		cfg.NodeVersion, cfg.NPMVersion, cfg.TargetDir,
		hostOS, hostArch, cfg.DownloadRoot,
	)
	if err != nil {
		return err
	}

	if err := a.installer.Install(ctx, req); err != nil {
		return zerr.Wrap(err, "toolchain installation failed")
	}
	return nil
}
