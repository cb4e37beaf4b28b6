package stamp

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"

	"go.trai.ch/fab/internal/adapters/config"
	"go.trai.ch/fab/internal/adapters/fs"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

const NodeID graft.ID = "adapter.stamp"

func init() {
	graft.Register(graft.Node[ports.StampTracker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, config.LayoutNodeID},
		Run: func(ctx context.Context) (ports.StampTracker, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			layout, err := graft.Dep[domain.Layout](ctx)
			if err != nil {
				return nil, err
			}
			state, err := NewStateStore(layout.StatePath())
			if err != nil {
				return nil, err
			}
			return NewTracker(layout, state, walker, hasher, clockwork.NewRealClock()), nil
		},
	})
}
