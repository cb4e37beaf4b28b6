package ports

import "go.trai.ch/fab/internal/core/domain"

// EnvironmentFactory constructs the per-architecture toolchain
// environment build tasks run under.
//
// Implementations bake the target architecture into compiler and linker
// flags (CC, CFLAGS, LDFLAGS, deployment target) and point header and
// library search paths at that architecture's install prefix.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentFactory interface {
	// Configure installs the manifest's toolchain settings. Called once
	// after the manifest is loaded, before any task executes.
	Configure(tc domain.Toolchain)

	// Environment returns variables as "KEY=VALUE" strings for the given
	// architecture. An empty architecture yields only the shared
	// settings (used by fetch and merge tasks).
	Environment(arch domain.Arch) []string
}
