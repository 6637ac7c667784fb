package ports

import "go.goodgym.dev/launcher/internal/core/domain"

// ConfigLoader defines the interface for loading the launcher manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest of the launcher installed at root.
	// A root without a manifest file yields the defaults.
	Load(root string) (*domain.Manifest, error)
}
