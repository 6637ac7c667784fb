package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.goodgym.dev/launcher/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.goodgym.dev/launcher/internal/adapters/interpreter" //nolint:depguard // Wired in app layer
	"go.goodgym.dev/launcher/internal/adapters/journal"     //nolint:depguard // Wired in app layer
	"go.goodgym.dev/launcher/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.goodgym.dev/launcher/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.goodgym.dev/launcher/internal/engine/depcheck"
	"go.goodgym.dev/launcher/internal/engine/supervisor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			interpreter.NodeID,
			depcheck.NodeID,
			supervisor.NodeID,
			journal.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.InterpreterResolver](ctx)
	if err != nil {
		return nil, err
	}

	checker, err := graft.Dep[*depcheck.Checker](ctx)
	if err != nil {
		return nil, err
	}

	sup, err := graft.Dep[*supervisor.Supervisor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RunStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, checker, sup, store, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tracer), nil
}
