package toolchain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/fab/internal/adapters/toolchain"
	"go.trai.ch/fab/internal/core/domain"
)

func TestEnvFactory_Defaults(t *testing.T) {
	f := toolchain.NewEnvFactory(domain.NewLayout("/work"))

	env := f.Environment("")
	assert.Equal(t, []string{"CC=clang", "CXX=clang++"}, env)
}

func TestEnvFactory_ConfigureFillsDefaults(t *testing.T) {
	f := toolchain.NewEnvFactory(domain.NewLayout("/work"))
	f.Configure(domain.Toolchain{MinVersion: "11.0"})

	env := f.Environment("")
	assert.Contains(t, env, "CC=clang")
	assert.Contains(t, env, "CXX=clang++")
	assert.Contains(t, env, "MACOSX_DEPLOYMENT_TARGET=11.0")
}

func TestEnvFactory_ArchEnvironment(t *testing.T) {
	layout := domain.NewLayout("/work")
	f := toolchain.NewEnvFactory(layout)
	f.Configure(domain.Toolchain{
		CC:         "cc",
		CXX:        "c++",
		MinVersion: "11.0",
		OptFlags:   "-O2",
	})

	env := f.Environment("arm64")
	prefix := layout.PrefixDir("arm64")

	assert.Contains(t, env, "CC=cc")
	assert.Contains(t, env, "CXX=c++")
	assert.Contains(t, env, "CFLAGS=-arch arm64 -mmacosx-version-min=11.0 -O2")
	assert.Contains(t, env, "CXXFLAGS=-arch arm64 -mmacosx-version-min=11.0 -O2")
	assert.Contains(t, env, "CPPFLAGS=-I"+filepath.Join(prefix, "include"))
	assert.Contains(t, env, "LDFLAGS=-arch arm64 -L"+filepath.Join(prefix, "lib"))
	assert.Contains(t, env, "PKG_CONFIG_PATH="+filepath.Join(prefix, "lib", "pkgconfig"))
}

func TestEnvFactory_ArchsGetDisjointPrefixes(t *testing.T) {
	f := toolchain.NewEnvFactory(domain.NewLayout("/work"))
	f.Configure(domain.Toolchain{})

	arm := f.Environment("arm64")
	amd := f.Environment("x86_64")

	assert.NotEqual(t, arm, amd)
	assert.Contains(t, arm, "CFLAGS=-arch arm64")
	assert.Contains(t, amd, "CFLAGS=-arch x86_64")
}

func TestEnvFactory_NoMinVersion(t *testing.T) {
	f := toolchain.NewEnvFactory(domain.NewLayout("/work"))
	f.Configure(domain.Toolchain{CC: "clang", CXX: "clang++"})

	env := f.Environment("arm64")
	for _, entry := range env {
		assert.NotContains(t, entry, "MACOSX_DEPLOYMENT_TARGET")
		assert.NotContains(t, entry, "version-min")
	}
}
