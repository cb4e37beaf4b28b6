package dispatch

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/fab/internal/adapters/archive"
	"go.trai.ch/fab/internal/adapters/fetch"
	"go.trai.ch/fab/internal/adapters/lipo"
	"go.trai.ch/fab/internal/adapters/shell"
	"go.trai.ch/fab/internal/core/ports"
)

const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fetch.NodeID, archive.NodeID, lipo.MergerNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			sh, err := graft.Dep[*shell.Executor](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}
			merger, err := graft.Dep[ports.Merger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(sh, fetcher, extractor, merger), nil
		},
	})
}
