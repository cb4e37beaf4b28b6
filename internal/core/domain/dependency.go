package domain

import "go.trai.ch/zerr"

// Source describes where a component's source archive comes from and how
// it is verified after download.
type Source struct {
	// URL is the upstream location of the source archive.
	URL InternedString

	// Checksum is the expected BLAKE3 digest of the archive, hex encoded.
	Checksum InternedString

	// ExtractTo is the directory the archive is unpacked into.
	ExtractTo InternedString
}

// Dependency describes one third-party library the release binary links
// against. Dependencies are declared statically in the manifest; the set
// never changes during a run.
type Dependency struct {
	Name    InternedString
	Version InternedString
	Source  Source

	// ConfigureFlags are passed verbatim to the dependency's own
	// configure step, after the shared --prefix.
	ConfigureFlags []string

	// Env holds dependency-specific compiler/linker overrides applied on
	// top of the per-architecture toolchain environment.
	Env map[string]string

	// SkipSelfTest suppresses the dependency's own test step.
	SkipSelfTest bool

	// PerArch marks the dependency as requiring one build per target
	// architecture, with the per-architecture results merged afterwards.
	// When false the dependency is built once, for the primary
	// architecture only.
	PerArch bool

	// Artifacts lists the install-prefix-relative files the build
	// produces (e.g. "lib/libz.a"). For PerArch dependencies these are
	// the inputs of the merge step.
	Artifacts []string
}

// Validate reports configuration errors in the descriptor. These are
// surfaced before any task executes.
func (d *Dependency) Validate() error {
	if d.Name.String() == "" {
		return ErrMissingDependencyName
	}
	if d.Source.URL.String() == "" {
		return zerr.With(ErrMissingSourceURL, "dependency", d.Name.String())
	}
	if d.Source.Checksum.String() == "" {
		return zerr.With(ErrMissingChecksum, "dependency", d.Name.String())
	}
	if len(d.Artifacts) == 0 {
		return zerr.With(ErrMissingArtifacts, "dependency", d.Name.String())
	}
	return nil
}

// Program describes the final binary the whole graph exists to produce.
type Program struct {
	Name    InternedString
	Version InternedString
	Source  Source

	ConfigureFlags []string
	Env            map[string]string
	SkipSelfTest   bool

	// Binary is the install-prefix-relative path of the produced
	// executable (e.g. "bin/getit").
	Binary string
}

// Validate reports configuration errors in the program descriptor.
func (p *Program) Validate() error {
	if p.Name.String() == "" {
		return ErrMissingProgramName
	}
	if p.Source.URL.String() == "" {
		return zerr.With(ErrMissingSourceURL, "program", p.Name.String())
	}
	if p.Source.Checksum.String() == "" {
		return zerr.With(ErrMissingChecksum, "program", p.Name.String())
	}
	if p.Binary == "" {
		return zerr.With(ErrMissingArtifacts, "program", p.Name.String())
	}
	return nil
}

// Toolchain holds the externally overridable compiler settings shared by
// every build task.
type Toolchain struct {
	// CC is the C compiler driver. Defaults to "clang".
	CC string

	// CXX is the C++ compiler driver. Defaults to "clang++".
	CXX string

	// MinVersion is the minimum deployment platform version baked into
	// compiler and linker flags.
	MinVersion string

	// OptFlags are the optimization flags shared by all builds.
	OptFlags string
}

// Manifest is the fully resolved build declaration: the fixed dependency
// set, the architecture list, the program, and shared settings.
type Manifest struct {
	Root         string
	Jobs         int
	Archs        []Arch
	Toolchain    Toolchain
	Dependencies []Dependency
	Program      Program
}

// Validate checks the manifest as a whole before graph generation.
func (m *Manifest) Validate() error {
	if err := ValidateArchs(m.Archs); err != nil {
		return err
	}

	seen := make(map[InternedString]bool, len(m.Dependencies))
	for i := range m.Dependencies {
		d := &m.Dependencies[i]
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return zerr.With(ErrDuplicateDependency, "dependency", d.Name.String())
		}
		seen[d.Name] = true
	}

	return m.Program.Validate()
}
