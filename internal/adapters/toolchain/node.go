package toolchain

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/fab/internal/adapters/config"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.EnvironmentFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.LayoutNodeID},
		Run: func(ctx context.Context) (ports.EnvironmentFactory, error) {
			layout, err := graft.Dep[domain.Layout](ctx)
			if err != nil {
				return nil, err
			}
			return NewEnvFactory(layout), nil
		},
	})
}
