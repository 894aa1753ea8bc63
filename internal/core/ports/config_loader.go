package ports

import "go.trai.ch/nodeup/internal/core/domain"

// ToolchainConfig is the file-backed configuration for one provisioning run.
type ToolchainConfig struct {
	NodeVersion  string
	NPMVersion   string
	TargetDir    string
	DownloadRoot domain.Mirror
}

// ConfigLoader defines the interface for loading the toolchain configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given path.
	Load(path string) (ToolchainConfig, error)
}
