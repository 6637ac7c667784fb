package supervisor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/adapters/journal"   //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/watcher"   //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/core/ports"
)

// NodeID is the unique identifier for the supervisor Graft node.
const NodeID graft.ID = "engine.supervisor"

func init() {
	graft.Register(graft.Node[*Supervisor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			watcher.NodeID,
			journal.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Supervisor, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.RunStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewSupervisor(executor, w, store, tracer, log), nil
		},
	})
}
