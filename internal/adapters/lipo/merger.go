// Package lipo merges per-architecture binaries into universal files
// with the lipo tool and inspects the results.
package lipo

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// runner executes an external tool and returns its combined output.
// Swappable in tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // fixed tool names
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Merger implements ports.Merger with `lipo -create`.
type Merger struct {
	inspector ports.BinaryInspector
	run       runner
}

var _ ports.Merger = (*Merger)(nil)

// NewMerger creates a Merger that verifies its outputs with inspector.
func NewMerger(inspector ports.BinaryInspector) *Merger {
	return &Merger{
		inspector: inspector,
		run:       runCommand,
	}
}

// Merge combines spec's per-architecture inputs into spec.Output. Every
// declared architecture must have an existing input file; a missing one
// aborts the merge naming that architecture, with no partial output.
// The output must report exactly the declared slices, and a PIE check is
// applied when the spec demands it.
func (m *Merger) Merge(ctx context.Context, spec domain.MergeSpec) error {
	archs := make([]domain.Arch, 0, len(spec.Inputs))
	for arch := range spec.Inputs {
		archs = append(archs, arch)
	}
	slices.Sort(archs)

	inputs := make([]string, 0, len(archs))
	for _, arch := range archs {
		input := spec.Inputs[arch]
		if _, err := os.Stat(input); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return zerr.With(zerr.With(zerr.With(domain.ErrMissingArchSlice,
					"artifact", spec.Artifact),
					"arch", arch.String()),
					"path", input)
			}
			return zerr.Wrap(err, "failed to stat merge input")
		}
		inputs = append(inputs, input)
	}

	if err := os.MkdirAll(filepath.Dir(spec.Output), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	args := append([]string{"-create", "-output", spec.Output}, inputs...)
	if out, err := m.run(ctx, "lipo", args...); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "lipo -create failed"),
			"artifact", spec.Artifact),
			"output", strings.TrimSpace(string(out)))
	}

	got, err := m.inspector.Archs(ctx, spec.Output)
	if err != nil {
		return err
	}
	slices.Sort(got)
	if !slices.Equal(got, archs) {
		return zerr.With(zerr.With(zerr.With(zerr.New("merged output has wrong slices"),
			"artifact", spec.Artifact),
			"want", archList(archs)),
			"got", archList(got))
	}

	if spec.RequirePIE {
		if err := m.inspector.VerifyPIE(ctx, spec.Output); err != nil {
			return zerr.With(err, "artifact", spec.Artifact)
		}
	}
	return nil
}

func archList(archs []domain.Arch) string {
	parts := make([]string, len(archs))
	for i, a := range archs {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
