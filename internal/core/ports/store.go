package ports

import "go.goodgym.dev/launcher/internal/core/domain"

// RunStore defines the interface for journaling server runs.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the last run of the given script.
	// Returns nil, nil if the script never ran.
	Get(root, script string) (*domain.RunRecord, error)

	// Put stores the run, replacing any previous record for the same script.
	Put(root string, record domain.RunRecord) error
}
