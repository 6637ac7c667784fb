package probe

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/adapters/logger"
	"go.goodgym.dev/launcher/internal/core/ports"
)

// NodeID is the unique identifier for the module prober Graft node.
const NodeID graft.ID = "adapter.probe"

func init() {
	graft.Register(graft.Node[ports.ModuleProber]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ModuleProber, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProber(log), nil
		},
	})
}
