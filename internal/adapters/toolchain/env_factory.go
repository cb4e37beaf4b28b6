// Package toolchain builds the per-architecture compiler environment
// that dependency and program builds run under.
package toolchain

import (
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

// EnvFactory implements ports.EnvironmentFactory. It is configured once
// from the manifest and then queried per task architecture.
type EnvFactory struct {
	layout domain.Layout

	mu sync.RWMutex
	tc domain.Toolchain
}

var _ ports.EnvironmentFactory = (*EnvFactory)(nil)

// NewEnvFactory creates an EnvFactory rooted at layout's install
// prefixes. Until Configure is called it hands out compiler defaults.
func NewEnvFactory(layout domain.Layout) *EnvFactory {
	return &EnvFactory{
		layout: layout,
		tc: domain.Toolchain{
			CC:  "clang",
			CXX: "clang++",
		},
	}
}

// Configure installs the manifest's toolchain settings.
func (f *EnvFactory) Configure(tc domain.Toolchain) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tc.CC == "" {
		tc.CC = "clang"
	}
	if tc.CXX == "" {
		tc.CXX = "clang++"
	}
	f.tc = tc
}

// Environment returns the toolchain environment for one architecture.
// Architecture and deployment target are baked into the compiler and
// linker flags so configure scripts cannot drop them, and header and
// library search paths point at the architecture's install prefix.
func (f *EnvFactory) Environment(arch domain.Arch) []string {
	f.mu.RLock()
	tc := f.tc
	f.mu.RUnlock()

	env := []string{
		"CC=" + tc.CC,
		"CXX=" + tc.CXX,
	}
	if tc.MinVersion != "" {
		env = append(env, "MACOSX_DEPLOYMENT_TARGET="+tc.MinVersion)
	}
	if arch == "" {
		return env
	}

	prefix := f.layout.PrefixDir(arch)

	var flags []string
	flags = append(flags, "-arch", arch.String())
	if tc.MinVersion != "" {
		flags = append(flags, "-mmacosx-version-min="+tc.MinVersion)
	}
	if tc.OptFlags != "" {
		flags = append(flags, tc.OptFlags)
	}
	cflags := strings.Join(flags, " ")

	env = append(env,
		"CFLAGS="+cflags,
		"CXXFLAGS="+cflags,
		"CPPFLAGS=-I"+filepath.Join(prefix, "include"),
		"LDFLAGS=-arch "+arch.String()+" -L"+filepath.Join(prefix, "lib"),
		"PKG_CONFIG_PATH="+filepath.Join(prefix, "lib", "pkgconfig"),
	)
	return env
}
