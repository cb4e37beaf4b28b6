package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"

	tracer "go.trai.ch/fab/internal/adapters/telemetry/progrock"
)

// captureWriter collects status updates in memory.
type captureWriter struct {
	mu      sync.Mutex
	updates []*progrock.StatusUpdate
	closed  bool
}

func (w *captureWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, update)
	return nil
}

func (w *captureWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *captureWriter) vertexes() []*progrock.Vertex {
	w.mu.Lock()
	defer w.mu.Unlock()
	var all []*progrock.Vertex
	for _, u := range w.updates {
		all = append(all, u.Vertexes...)
	}
	return all
}

func TestTracer_SpanLifecycle(t *testing.T) {
	w := &captureWriter{}
	tr := tracer.NewTracer(w)

	_, span := tr.Start(context.Background(), "build:zlib:arm64")
	n, err := span.Write([]byte("checking for gcc...\n"))
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	span.End()

	var saw bool
	for _, v := range w.vertexes() {
		if v.Name == "build:zlib:arm64" && v.Completed != nil {
			saw = true
			assert.Nil(t, v.Error)
		}
	}
	assert.True(t, saw, "expected a completed vertex for the task")
}

func TestTracer_SpanError(t *testing.T) {
	w := &captureWriter{}
	tr := tracer.NewTracer(w)

	_, span := tr.Start(context.Background(), "build:zlib:arm64")
	span.RecordError(errors.New("make: *** [all] Error 2"))
	span.End()

	var saw bool
	for _, v := range w.vertexes() {
		if v.Name == "build:zlib:arm64" && v.Error != nil {
			saw = true
		}
	}
	assert.True(t, saw, "expected the vertex to complete with an error")
}

func TestTracer_SpanCached(t *testing.T) {
	w := &captureWriter{}
	tr := tracer.NewTracer(w)

	_, span := tr.Start(context.Background(), "build:zlib:arm64")
	span.Cached()
	span.End()

	var saw bool
	for _, v := range w.vertexes() {
		if v.Name == "build:zlib:arm64" && v.Cached {
			saw = true
		}
	}
	assert.True(t, saw, "expected the vertex to be marked cached")
}

func TestTracer_EmitPlanAndClose(t *testing.T) {
	w := &captureWriter{}
	tr := tracer.NewTracer(w)

	tr.EmitPlan(context.Background(), []string{"fetch:zlib", "build:zlib:arm64"})

	var saw bool
	for _, v := range w.vertexes() {
		if v.Name == "plan" {
			saw = true
		}
	}
	assert.True(t, saw, "expected a plan vertex")

	require.NoError(t, tr.Close())
	assert.True(t, w.closed)
}
