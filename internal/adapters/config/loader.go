// Package config provides the manifest loader for fab.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// Load reads the manifest from the given working directory, applies
// environment overrides, and validates it.
func (l *FileConfigLoader) Load(cwd string) (*domain.Manifest, error) {
	filename := l.Filename
	if filename == "" {
		filename = domain.ManifestFileName
	}
	return Load(filepath.Join(cwd, filename))
}

// Load reads a manifest file from the given path, applies environment
// overrides, and returns the validated domain.Manifest.
//
// Overrides and defaults:
//
//	CC, CXX                    compiler drivers ("clang"/"clang++")
//	MACOSX_DEPLOYMENT_TARGET   minimum platform version
//	FAB_OPT_FLAGS              optimization flags
//	FAB_ARCHS                  comma-separated architecture list
//	FAB_JOBS                   compile parallelism (host CPU count, min 1)
//	FAB_PREFIX                 workspace root (manifest's directory)
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var fabfile Fabfile
	if err := yaml.Unmarshal(data, &fabfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	m := &domain.Manifest{
		Root:      resolveRoot(filepath.Dir(path)),
		Jobs:      resolveJobs(fabfile.Jobs),
		Archs:     resolveArchs(fabfile.Archs),
		Toolchain: resolveToolchain(fabfile.Toolchain),
	}

	for _, dto := range fabfile.Dependencies {
		m.Dependencies = append(m.Dependencies, domain.Dependency{
			Name:           domain.NewInternedString(dto.Name),
			Version:        domain.NewInternedString(dto.Version),
			Source:         toSource(dto.Source),
			ConfigureFlags: dto.ConfigureFlags,
			Env:            dto.Environment,
			SkipSelfTest:   dto.SkipSelfTest,
			PerArch:        dto.PerArch == nil || *dto.PerArch,
			Artifacts:      dto.Artifacts,
		})
	}

	m.Program = domain.Program{
		Name:           domain.NewInternedString(fabfile.Program.Name),
		Version:        domain.NewInternedString(fabfile.Program.Version),
		Source:         toSource(fabfile.Program.Source),
		ConfigureFlags: fabfile.Program.ConfigureFlags,
		Env:            fabfile.Program.Environment,
		SkipSelfTest:   fabfile.Program.SkipSelfTest,
		Binary:         fabfile.Program.Binary,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func toSource(dto SourceDTO) domain.Source {
	return domain.Source{
		URL:      domain.NewInternedString(dto.URL),
		Checksum: domain.NewInternedString(dto.Checksum),
	}
}

func resolveRoot(manifestDir string) string {
	if p := os.Getenv("FAB_PREFIX"); p != "" {
		return p
	}
	return manifestDir
}

// WorkspaceLayout returns the layout every adapter shares, rooted at the
// working directory or the FAB_PREFIX override. It agrees with the Root
// the loader records on the manifest, so stamps, prefixes, and the
// download cache all live under one workspace.
func WorkspaceLayout() domain.Layout {
	return domain.NewLayout(resolveRoot("."))
}

func resolveJobs(declared int) int {
	if env := os.Getenv("FAB_JOBS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	if declared > 0 {
		return declared
	}
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

func resolveArchs(declared []string) []domain.Arch {
	if env := os.Getenv("FAB_ARCHS"); env != "" {
		declared = strings.Split(env, ",")
	}
	archs := make([]domain.Arch, 0, len(declared))
	for _, a := range declared {
		archs = append(archs, domain.Arch(strings.TrimSpace(a)))
	}
	return archs
}

func resolveToolchain(dto ToolchainDTO) domain.Toolchain {
	tc := domain.Toolchain{
		CC:         dto.CC,
		CXX:        dto.CXX,
		MinVersion: dto.MinVersion,
		OptFlags:   dto.OptFlags,
	}
	if cc := os.Getenv("CC"); cc != "" {
		tc.CC = cc
	}
	if cxx := os.Getenv("CXX"); cxx != "" {
		tc.CXX = cxx
	}
	if v := os.Getenv("MACOSX_DEPLOYMENT_TARGET"); v != "" {
		tc.MinVersion = v
	}
	if f := os.Getenv("FAB_OPT_FLAGS"); f != "" {
		tc.OptFlags = f
	}
	if tc.CC == "" {
		tc.CC = "clang"
	}
	if tc.CXX == "" {
		tc.CXX = "clang++"
	}
	return tc
}
