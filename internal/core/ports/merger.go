package ports

import (
	"context"

	"go.trai.ch/fab/internal/core/domain"
)

// Merger combines per-architecture files of one logical artifact into a
// universal output.
//
//go:generate go run go.uber.org/mock/mockgen -source=merger.go -destination=mocks/mock_merger.go -package=mocks
type Merger interface {
	// Merge produces spec.Output containing one code slice per input
	// architecture. Every declared architecture must have an input file;
	// a missing one fails the merge before any output is written.
	Merge(ctx context.Context, spec domain.MergeSpec) error
}

// BinaryInspector verifies properties of produced binaries.
type BinaryInspector interface {
	// Archs reports the architecture slices present in the file.
	Archs(ctx context.Context, path string) ([]domain.Arch, error)

	// VerifyPIE returns an error if the binary at path is not a
	// position-independent executable.
	VerifyPIE(ctx context.Context, path string) error
}
