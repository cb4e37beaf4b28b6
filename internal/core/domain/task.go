package domain

// TaskKind selects which adapter executes a task's body.
type TaskKind string

const (
	// KindFetch downloads, verifies, and extracts a source archive.
	KindFetch TaskKind = "fetch"
	// KindBuild runs a component's configure/compile/test/install steps.
	KindBuild TaskKind = "build"
	// KindMerge combines per-architecture outputs into universal files.
	KindMerge TaskKind = "merge"
	// KindGroup is a bodiless aggregation node that exists only to
	// depend on other tasks.
	KindGroup TaskKind = "group"
)

// MergeSpec describes combining one logical artifact's per-architecture
// files into a single universal output.
type MergeSpec struct {
	// Artifact is the prefix-relative path of the logical artifact.
	Artifact string

	// Inputs maps every declared architecture to its single-arch file.
	Inputs map[Arch]string

	// Output is the universal file to produce.
	Output string

	// RequirePIE demands the merged output be a position-independent
	// executable; a non-PIE result fails the build.
	RequirePIE bool
}

// Task is one node of the build graph. It is pure data; execution is the
// scheduler's and the executors' concern.
// InternedString is used for fields that repeat across many tasks.
type Task struct {
	Name InternedString
	Kind TaskKind

	// Component is the dependency or program this task belongs to.
	Component InternedString

	// Arch is set for per-architecture build tasks, empty otherwise.
	Arch Arch

	// Commands are the ordered argv vectors of a build task's steps.
	Commands [][]string

	// WorkingDir is the isolated directory the commands run in.
	WorkingDir InternedString

	// Env holds component-specific environment overrides, applied on top
	// of the per-architecture toolchain environment.
	Env map[string]string

	// Inputs are declared source paths whose modification times gate
	// re-execution.
	Inputs []InternedString

	// Outputs are the paths this task writes. No two tasks may declare
	// the same output; the generator validates disjointness.
	Outputs []InternedString

	Dependencies []InternedString

	// StampPath is the completion marker file. Empty for group tasks,
	// which have no body and are never stamped.
	StampPath InternedString

	// Source is the fetch payload, set when Kind is KindFetch.
	Source *Source

	// Merges is the merge payload, set when Kind is KindMerge.
	Merges []MergeSpec
}
