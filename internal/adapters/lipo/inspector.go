package lipo

import (
	"context"
	"strings"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector implements ports.BinaryInspector with lipo and otool.
type Inspector struct {
	run runner
}

var _ ports.BinaryInspector = (*Inspector)(nil)

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{run: runCommand}
}

// Archs reports the slices present in the file via `lipo -archs`.
func (i *Inspector) Archs(ctx context.Context, path string) ([]domain.Arch, error) {
	out, err := i.run(ctx, "lipo", "-archs", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "lipo -archs failed"), "path", path)
	}

	fields := strings.Fields(string(out))
	archs := make([]domain.Arch, 0, len(fields))
	for _, f := range fields {
		archs = append(archs, domain.Arch(f))
	}
	return archs, nil
}

// VerifyPIE checks the Mach-O header flags via `otool -hv`. The header
// line of a position-independent executable carries the PIE flag.
func (i *Inspector) VerifyPIE(ctx context.Context, path string) error {
	out, err := i.run(ctx, "otool", "-hv", path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "otool -hv failed"), "path", path)
	}

	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		for _, f := range fields {
			if f == "PIE" {
				return nil
			}
		}
	}
	return zerr.With(domain.ErrNotPIE, "path", path)
}
