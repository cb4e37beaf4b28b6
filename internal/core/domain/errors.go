package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a predecessor that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested target is not in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoArchitectures is returned when graph generation is attempted with an empty architecture list.
	ErrNoArchitectures = zerr.New("architecture list is empty")

	// ErrInvalidArchitecture is returned for an empty architecture identifier.
	ErrInvalidArchitecture = zerr.New("invalid architecture identifier")

	// ErrDuplicateArchitecture is returned when the same architecture is declared twice.
	ErrDuplicateArchitecture = zerr.New("duplicate architecture")

	// ErrMissingDependencyName is returned for a dependency descriptor without a name.
	ErrMissingDependencyName = zerr.New("dependency descriptor has no name")

	// ErrMissingProgramName is returned for a program descriptor without a name.
	ErrMissingProgramName = zerr.New("program descriptor has no name")

	// ErrMissingSourceURL is returned for a descriptor without a source URL.
	ErrMissingSourceURL = zerr.New("descriptor has no source url")

	// ErrMissingChecksum is returned for a descriptor without a source checksum.
	ErrMissingChecksum = zerr.New("descriptor has no source checksum")

	// ErrMissingArtifacts is returned for a descriptor that declares no build outputs.
	ErrMissingArtifacts = zerr.New("descriptor declares no artifacts")

	// ErrDuplicateDependency is returned when two dependency descriptors share a name.
	ErrDuplicateDependency = zerr.New("duplicate dependency")

	// ErrOverlappingOutputs is returned when two independently runnable tasks declare the same output path.
	ErrOverlappingOutputs = zerr.New("overlapping task outputs")

	// ErrMissingArchSlice is returned by the merge step when a declared
	// architecture has no corresponding input file.
	ErrMissingArchSlice = zerr.New("missing per-architecture input")

	// ErrNotPIE is returned when the merged program binary is not a
	// position-independent executable.
	ErrNotPIE = zerr.New("binary is not position independent")

	// ErrChecksumMismatch is returned when a downloaded archive does not
	// match its declared checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrBuildExecutionFailed is returned by the app when the scheduler
	// reports at least one failed task. The details have already been
	// logged by then.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
