package depcheck

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/probe"     //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.goodgym.dev/launcher/internal/core/ports"
)

// NodeID is the unique identifier for the dependency checker Graft node.
const NodeID graft.ID = "engine.depcheck"

func init() {
	graft.Register(graft.Node[*Checker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			probe.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Checker, error) {
			prober, err := graft.Dep[ports.ModuleProber](ctx)
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

			return NewChecker(prober, tracer, log), nil
		},
	})
}
