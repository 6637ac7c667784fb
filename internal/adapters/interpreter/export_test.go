package interpreter

import "go.goodgym.dev/launcher/internal/core/ports"

// NewResolverWithLookPath creates a Resolver with a custom lookup for testing.
func NewResolverWithLookPath(logger ports.Logger, lookPath func(string) (string, error)) *Resolver {
	return &Resolver{logger: logger, lookPath: lookPath}
}
