// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fab/internal/adapters/archive"
	_ "go.trai.ch/fab/internal/adapters/config"
	_ "go.trai.ch/fab/internal/adapters/dispatch"
	_ "go.trai.ch/fab/internal/adapters/fetch"
	_ "go.trai.ch/fab/internal/adapters/fs"
	_ "go.trai.ch/fab/internal/adapters/lipo"
	_ "go.trai.ch/fab/internal/adapters/logger"
	_ "go.trai.ch/fab/internal/adapters/shell"
	_ "go.trai.ch/fab/internal/adapters/stamp"
	_ "go.trai.ch/fab/internal/adapters/telemetry"
	_ "go.trai.ch/fab/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/fab/internal/app"
	_ "go.trai.ch/fab/internal/engine/scheduler"
)
