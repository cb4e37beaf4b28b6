package fetch

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"

	"go.trai.ch/fab/internal/adapters/config"
	"go.trai.ch/fab/internal/adapters/logger"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.SourceFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.LayoutNodeID},
		Run: func(ctx context.Context) (ports.SourceFetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			layout, err := graft.Dep[domain.Layout](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(http.DefaultClient, layout.CacheDir(), log), nil
		},
	})
}
