package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

// LayoutNodeID identifies the shared workspace layout node.
const LayoutNodeID graft.ID = "adapter.layout"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			return &FileConfigLoader{Filename: domain.ManifestFileName}, nil
		},
	})

	graft.Register(graft.Node[domain.Layout]{
		ID:        LayoutNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (domain.Layout, error) {
			return WorkspaceLayout(), nil
		},
	})
}
