package lipo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/core/ports"
)

const (
	InspectorNodeID graft.ID = "adapter.inspector"
	MergerNodeID    graft.ID = "adapter.merger"
)

func init() {
	graft.Register(graft.Node[ports.BinaryInspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BinaryInspector, error) {
			return NewInspector(), nil
		},
	})

	graft.Register(graft.Node[ports.Merger]{
		ID:        MergerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{InspectorNodeID},
		Run: func(ctx context.Context) (ports.Merger, error) {
			inspector, err := graft.Dep[ports.BinaryInspector](ctx)
			if err != nil {
				return nil, err
			}
			return NewMerger(inspector), nil
		},
	})
}
