// Package progrock provides the Progrock implementation of the tracer
// adapter.
package progrock

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/fab/internal/core/ports"
)

// Tracer implements ports.Tracer on a progrock recording session. Each
// task becomes a vertex keyed by the digest of its name.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

var _ ports.Tracer = (*Tracer)(nil)

// New creates a Tracer with a default tape.
func New() *Tracer {
	return NewTracer(progrock.NewTape())
}

// NewTracer creates a Tracer recording to the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex for a unit of work.
func (t *Tracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	v := t.rec.Vertex(digest.FromString(name), name)
	return ctx, &Span{vertex: v}
}

// EmitPlan records the planned task names as a single vertex so the
// display shows the run's shape up front.
func (t *Tracer) EmitPlan(_ context.Context, taskNames []string) {
	v := t.rec.Vertex(digest.FromString("plan"), "plan")
	for _, name := range taskNames {
		_, _ = fmt.Fprintln(v.Stdout(), name)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
