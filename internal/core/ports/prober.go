package ports

import "context"

// ModuleProber asks an interpreter which modules it cannot import.
//
//go:generate mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type ModuleProber interface {
	// Unresolved returns the subset of modules the interpreter cannot resolve
	// when run from dir. Order of the result is not significant.
	Unresolved(ctx context.Context, dir, interpreter string, modules []string) ([]string, error)
}
