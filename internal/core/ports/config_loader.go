// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/fab/internal/core/domain"

// ConfigLoader defines the interface for loading the build manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory, applies
	// environment overrides, and validates it.
	Load(cwd string) (*domain.Manifest, error)
}
