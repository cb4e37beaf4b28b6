package domain

import "path/filepath"

const (
	// FabDirName is the name of the internal workspace directory.
	FabDirName = ".fab"

	// CacheDirName holds downloaded source archives.
	CacheDirName = "cache"

	// SourcesDirName holds extracted source trees.
	SourcesDirName = "sources"

	// WorkDirName holds per-(component, architecture) build directories.
	WorkDirName = "work"

	// PrefixDirName holds the per-architecture install prefixes.
	PrefixDirName = "prefix"

	// StampsDirName holds the completion marker files.
	StampsDirName = "stamps"

	// UniversalName is the pseudo-architecture of merged artifacts.
	UniversalName = "universal"

	// StateFileName records stamp metadata (task fingerprints).
	StateFileName = "state.json"

	// ManifestFileName is the default build manifest.
	ManifestFileName = "fab.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout derives every workspace path from a single root directory, so
// tasks agree on the shared install prefix and stamp locations without
// re-deriving paths.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at dir (the manifest's directory).
func NewLayout(dir string) Layout {
	return Layout{Root: filepath.Join(dir, FabDirName)}
}

// CacheDir returns the archive download cache directory.
func (l Layout) CacheDir() string {
	return filepath.Join(l.Root, CacheDirName)
}

// SourceDir returns the extracted source tree for a component version.
func (l Layout) SourceDir(name, version string) string {
	return filepath.Join(l.Root, SourcesDirName, name+"-"+version)
}

// WorkDir returns the isolated build directory for one (component,
// architecture) pair.
func (l Layout) WorkDir(name string, arch Arch) string {
	return filepath.Join(l.Root, WorkDirName, name, arch.String())
}

// PrefixDir returns the install prefix for a single architecture. Every
// dependency installs its headers and libraries here; per-dependency
// subpaths must not overlap.
func (l Layout) PrefixDir(arch Arch) string {
	return filepath.Join(l.Root, PrefixDirName, arch.String())
}

// UniversalPrefix returns the install prefix of merged multi-architecture
// artifacts. Downstream packaging consumes this fixed location.
func (l Layout) UniversalPrefix() string {
	return filepath.Join(l.Root, PrefixDirName, UniversalName)
}

// StampsDir returns the directory holding completion markers.
func (l Layout) StampsDir() string {
	return filepath.Join(l.Root, StampsDirName)
}

// StampPath returns the completion marker file for a task name.
func (l Layout) StampPath(taskName string) string {
	return filepath.Join(l.StampsDir(), sanitize(taskName)+".stamp")
}

// StatePath returns the stamp metadata state file.
func (l Layout) StatePath() string {
	return filepath.Join(l.Root, StateFileName)
}

// CleanDirs returns the directories removed by the clean operation:
// work dirs, stamps, and install prefixes. The download cache survives;
// archives are re-verified, not re-fetched, on the next run.
func (l Layout) CleanDirs() []string {
	return []string{
		filepath.Join(l.Root, WorkDirName),
		filepath.Join(l.Root, StampsDirName),
		filepath.Join(l.Root, PrefixDirName),
		filepath.Join(l.Root, SourcesDirName),
	}
}

// sanitize maps a task name to a filesystem-safe stamp file base name.
func sanitize(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch c {
		case '/', ':', ' ':
			b[i] = '_'
		}
	}
	return string(b)
}
