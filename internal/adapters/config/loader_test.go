package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/fab/internal/adapters/config"
	"go.trai.ch/fab/internal/core/domain"
)

const manifestYAML = `version: "1"
archs: [arm64, x86_64]
jobs: 4
toolchain:
  minVersion: "11.0"
  optFlags: "-O2"
dependencies:
  - name: zlib
    version: "1.3.1"
    source:
      url: https://example.test/zlib-1.3.1.tar.gz
      checksum: ab12
    configureFlags: ["--static"]
    artifacts: [lib/libz.a]
  - name: gettext
    version: "0.22"
    source:
      url: https://example.test/gettext-0.22.tar.gz
      checksum: cd34
    perArch: false
    skipSelfTest: true
    artifacts: [lib/libintl.a]
program:
  name: getit
  version: "2.0"
  source:
    url: https://example.test/getit-2.0.tar.gz
    checksum: ef56
  binary: bin/getit
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return dir
}

func clearOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CC", "CXX", "MACOSX_DEPLOYMENT_TARGET", "FAB_OPT_FLAGS", "FAB_ARCHS", "FAB_JOBS", "FAB_PREFIX"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_ParsesManifest(t *testing.T) {
	clearOverrides(t)
	dir := writeManifest(t, manifestYAML)

	loader := &config.FileConfigLoader{}
	m, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, m.Root)
	assert.Equal(t, 4, m.Jobs)
	assert.Equal(t, []domain.Arch{"arm64", "x86_64"}, m.Archs)

	assert.Equal(t, "clang", m.Toolchain.CC)
	assert.Equal(t, "clang++", m.Toolchain.CXX)
	assert.Equal(t, "11.0", m.Toolchain.MinVersion)
	assert.Equal(t, "-O2", m.Toolchain.OptFlags)

	require.Len(t, m.Dependencies, 2)
	zlib := m.Dependencies[0]
	assert.Equal(t, "zlib", zlib.Name.String())
	assert.Equal(t, "https://example.test/zlib-1.3.1.tar.gz", zlib.Source.URL.String())
	assert.Equal(t, []string{"--static"}, zlib.ConfigureFlags)
	assert.True(t, zlib.PerArch, "perArch defaults to true")

	gettext := m.Dependencies[1]
	assert.False(t, gettext.PerArch)
	assert.True(t, gettext.SkipSelfTest)

	assert.Equal(t, "getit", m.Program.Name.String())
	assert.Equal(t, "bin/getit", m.Program.Binary)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearOverrides(t)
	t.Setenv("CC", "gcc-14")
	t.Setenv("CXX", "g++-14")
	t.Setenv("MACOSX_DEPLOYMENT_TARGET", "12.0")
	t.Setenv("FAB_OPT_FLAGS", "-O3")
	t.Setenv("FAB_ARCHS", "arm64")
	t.Setenv("FAB_JOBS", "2")

	dir := writeManifest(t, manifestYAML)
	loader := &config.FileConfigLoader{}
	m, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "gcc-14", m.Toolchain.CC)
	assert.Equal(t, "g++-14", m.Toolchain.CXX)
	assert.Equal(t, "12.0", m.Toolchain.MinVersion)
	assert.Equal(t, "-O3", m.Toolchain.OptFlags)
	assert.Equal(t, []domain.Arch{"arm64"}, m.Archs)
	assert.Equal(t, 2, m.Jobs)
}

func TestLoad_JobsDefaultToHostCPUs(t *testing.T) {
	clearOverrides(t)
	contents := `archs: [arm64]
dependencies:
  - name: zlib
    version: "1.3.1"
    source:
      url: https://example.test/zlib.tar.gz
      checksum: ab12
    artifacts: [lib/libz.a]
program:
  name: getit
  version: "2.0"
  source:
    url: https://example.test/getit.tar.gz
    checksum: ef56
  binary: bin/getit
`
	dir := writeManifest(t, contents)
	loader := &config.FileConfigLoader{}
	m, err := loader.Load(dir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Jobs, 1)
}

func TestLoad_WorkspaceRootOverride(t *testing.T) {
	clearOverrides(t)
	workspace := t.TempDir()
	t.Setenv("FAB_PREFIX", workspace)

	dir := writeManifest(t, manifestYAML)
	loader := &config.FileConfigLoader{}
	m, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, workspace, m.Root)
}

func TestWorkspaceLayout_MatchesManifestRoot(t *testing.T) {
	clearOverrides(t)
	workspace := t.TempDir()
	t.Setenv("FAB_PREFIX", workspace)

	dir := writeManifest(t, manifestYAML)
	loader := &config.FileConfigLoader{}
	m, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.NewLayout(m.Root), config.WorkspaceLayout(),
		"adapters and the generator must derive the same workspace")
}

func TestLoad_AlternateFilename(t *testing.T) {
	clearOverrides(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release.yaml"), []byte(manifestYAML), 0o644))

	loader := &config.FileConfigLoader{Filename: "release.yaml"}
	_, err := loader.Load(dir)
	require.NoError(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := &config.FileConfigLoader{}
	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeManifest(t, "archs: [arm64\n")
	loader := &config.FileConfigLoader{}
	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

func TestLoad_ValidationErrors(t *testing.T) {
	clearOverrides(t)

	cases := map[string]struct {
		contents string
		want     error
	}{
		"no archs": {
			contents: `archs: []
program:
  name: getit
  version: "2.0"
  source: {url: u, checksum: c}
  binary: bin/getit
`,
			want: domain.ErrNoArchitectures,
		},
		"duplicate arch": {
			contents: `archs: [arm64, arm64]
program:
  name: getit
  version: "2.0"
  source: {url: u, checksum: c}
  binary: bin/getit
`,
			want: domain.ErrDuplicateArchitecture,
		},
		"dependency without checksum": {
			contents: `archs: [arm64]
dependencies:
  - name: zlib
    version: "1.3.1"
    source: {url: u}
    artifacts: [lib/libz.a]
program:
  name: getit
  version: "2.0"
  source: {url: u, checksum: c}
  binary: bin/getit
`,
			want: domain.ErrMissingChecksum,
		},
		"program without binary": {
			contents: `archs: [arm64]
program:
  name: getit
  version: "2.0"
  source: {url: u, checksum: c}
`,
			want: domain.ErrMissingArtifacts,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := writeManifest(t, tc.contents)
			loader := &config.FileConfigLoader{}
			_, err := loader.Load(dir)
			require.Error(t, err)
			// zerr.With does not keep the sentinel in the cause chain,
			// so match on the message.
			assert.ErrorContains(t, err, tc.want.Error())
		})
	}
}
