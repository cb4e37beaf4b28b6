package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"go.trai.ch/fab/internal/adapters/telemetry/progrock"
	"go.trai.ch/fab/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			// FAB_PROGRESS selects the progrock recording session;
			// plain logging stays the default for CI output.
			if os.Getenv("FAB_PROGRESS") != "" {
				return progrock.New(), nil
			}
			return NewNoOpTracer(), nil
		},
	})
}
