// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nodeup/internal/adapters/archive"
	_ "go.trai.ch/nodeup/internal/adapters/config"
	_ "go.trai.ch/nodeup/internal/adapters/fs"
	_ "go.trai.ch/nodeup/internal/adapters/httpfetch"
	_ "go.trai.ch/nodeup/internal/adapters/logger"
	_ "go.trai.ch/nodeup/internal/adapters/receipt"
	_ "go.trai.ch/nodeup/internal/adapters/shell"
	_ "go.trai.ch/nodeup/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/nodeup/internal/app"
	_ "go.trai.ch/nodeup/internal/engine/installer"
)
