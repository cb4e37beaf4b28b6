package fs

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

// Hasher fingerprints task definitions with xxhash.
type Hasher struct{}

var _ ports.Hasher = (*Hasher)(nil)

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// FingerprintTask hashes everything that defines what a task will do:
// its commands, environment, source pin, and merge layout. A task whose
// fingerprint is unchanged would produce the same outputs from the same
// inputs.
func (h *Hasher) FingerprintTask(task *domain.Task) string {
	d := xxhash.New()

	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.Write([]byte{0})
		}
	}

	write(task.Name.String(), string(task.Kind), task.Component.String(), task.Arch.String())
	write(task.WorkingDir.String())

	for _, cmd := range task.Commands {
		write(cmd...)
		write("|")
	}

	keys := make([]string, 0, len(task.Env))
	for k := range task.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		write(k, task.Env[k])
	}

	for _, in := range task.Inputs {
		write(in.String())
	}
	for _, out := range task.Outputs {
		write(out.String())
	}

	if src := task.Source; src != nil {
		write(src.URL.String(), src.Checksum.String(), src.ExtractTo.String())
	}

	for _, m := range task.Merges {
		write(m.Artifact, m.Output, fmt.Sprintf("%t", m.RequirePIE))
		archs := make([]string, 0, len(m.Inputs))
		for a := range m.Inputs {
			archs = append(archs, a.String())
		}
		sort.Strings(archs)
		for _, a := range archs {
			write(a, m.Inputs[domain.Arch(a)])
		}
	}

	return fmt.Sprintf("%016x", d.Sum64())
}
