package interpreter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/adapters/logger"
	"go.goodgym.dev/launcher/internal/core/ports"
)

// NodeID is the unique identifier for the interpreter resolver Graft node.
const NodeID graft.ID = "adapter.interpreter"

func init() {
	graft.Register(graft.Node[ports.InterpreterResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.InterpreterResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}
