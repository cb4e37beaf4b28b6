package app

import (
	"go.trai.ch/fab/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/fab/internal/core/ports"
)

// Components contains the initialized application components the CLI
// layer needs.
type Components struct {
	App    *App
	Logger ports.Logger

	// ConfigLoader is the concrete loader so the CLI can point it at a
	// different manifest file.
	ConfigLoader *config.FileConfigLoader
}
