package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Arch identifies a target CPU architecture by its instruction-set name
// as understood by the compiler driver (e.g. "x86_64", "arm64").
type Arch string

// String returns the architecture identifier.
func (a Arch) String() string {
	return string(a)
}

// ValidateArchs checks an architecture list for use in graph generation.
// The list must be non-empty and free of duplicates and empty identifiers.
func ValidateArchs(archs []Arch) error {
	if len(archs) == 0 {
		return ErrNoArchitectures
	}

	seen := make([]Arch, 0, len(archs))
	for _, a := range archs {
		if a == "" {
			return zerr.With(ErrInvalidArchitecture, "arch", "")
		}
		if slices.Contains(seen, a) {
			return zerr.With(ErrDuplicateArchitecture, "arch", a.String())
		}
		seen = append(seen, a)
	}
	return nil
}

// PrimaryArch returns the architecture used for dependencies that are
// built once regardless of the target set: the first declared one.
// ValidateArchs must have passed for the same list.
func PrimaryArch(archs []Arch) Arch {
	return archs[0]
}
