package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/core/ports"
)

// NodeID is the unique identifier for the run journal Graft node.
const NodeID graft.ID = "adapter.run_store"

func init() {
	graft.Register(graft.Node[ports.RunStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunStore, error) {
			return NewStore(), nil
		},
	})
}
