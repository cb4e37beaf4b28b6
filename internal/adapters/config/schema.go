package config

// Fabfile represents the structure of the fab.yaml manifest file.
type Fabfile struct {
	Version      string            `yaml:"version"`
	Archs        []string          `yaml:"archs"`
	Jobs         int               `yaml:"jobs"`
	Toolchain    ToolchainDTO      `yaml:"toolchain"`
	Dependencies []DependencyDTO   `yaml:"dependencies"`
	Program      ProgramDTO        `yaml:"program"`
}

// ToolchainDTO represents the shared compiler settings.
type ToolchainDTO struct {
	CC         string `yaml:"cc"`
	CXX        string `yaml:"cxx"`
	MinVersion string `yaml:"minVersion"`
	OptFlags   string `yaml:"optFlags"`
}

// SourceDTO represents a source archive declaration.
type SourceDTO struct {
	URL      string `yaml:"url"`
	Checksum string `yaml:"checksum"`
}

// DependencyDTO represents one dependency declaration.
type DependencyDTO struct {
	Name           string            `yaml:"name"`
	Version        string            `yaml:"version"`
	Source         SourceDTO         `yaml:"source"`
	ConfigureFlags []string          `yaml:"configureFlags"`
	Environment    map[string]string `yaml:"environment"`
	SkipSelfTest   bool              `yaml:"skipSelfTest"`
	PerArch        *bool             `yaml:"perArch"`
	Artifacts      []string          `yaml:"artifacts"`
}

// ProgramDTO represents the program declaration.
type ProgramDTO struct {
	Name           string            `yaml:"name"`
	Version        string            `yaml:"version"`
	Source         SourceDTO         `yaml:"source"`
	ConfigureFlags []string          `yaml:"configureFlags"`
	Environment    map[string]string `yaml:"environment"`
	SkipSelfTest   bool              `yaml:"skipSelfTest"`
	Binary         string            `yaml:"binary"`
}
