package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/adapters/dispatch"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fab/internal/adapters/stamp"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fab/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fab/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			dispatch.NodeID,
			stamp.NodeID,
			toolchain.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			stamper, err := graft.Dep[ports.StampTracker](ctx)
			if err != nil {
				return nil, err
			}

			envFactory, err := graft.Dep[ports.EnvironmentFactory](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, stamper, envFactory, tracer), nil
		},
	})
}
