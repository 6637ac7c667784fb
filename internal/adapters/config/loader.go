// Package config provides the manifest loader for the launcher.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader, reading goodgym.yaml from the launcher root.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load returns the manifest for root. A missing goodgym.yaml yields the defaults.
func (l *Loader) Load(root string) (*domain.Manifest, error) {
	m := domain.DefaultManifest(root)
	path := filepath.Join(root, domain.ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the launcher root
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using built-in defaults")
		return m, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Manifest
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := apply(m, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Debug("loaded " + path)
	return m, nil
}

// apply overlays the values present in file onto m and validates the result.
func apply(m *domain.Manifest, file *Manifest) error {
	if s := strings.TrimSpace(file.Server.Script); s != "" {
		m.Script = s
	}
	if file.Server.HTTPURL != "" {
		if err := validateURL(file.Server.HTTPURL, "http", "https"); err != nil {
			return zerr.With(err, "field", "server.http_url")
		}
		m.HTTPURL = file.Server.HTTPURL
	}
	if file.Server.WebSocketURL != "" {
		if err := validateURL(file.Server.WebSocketURL, "ws", "wss"); err != nil {
			return zerr.With(err, "field", "server.websocket_url")
		}
		m.WebSocketURL = file.Server.WebSocketURL
	}

	if len(file.Interpreters) > 0 {
		for _, name := range file.Interpreters {
			if strings.TrimSpace(name) == "" {
				return zerr.With(invalid("interpreter name must not be empty"), "field", "interpreters")
			}
		}
		m.Interpreters = slices.Clone(file.Interpreters)
	}

	if file.Requirements != nil {
		reqs, err := requirements(*file.Requirements)
		if err != nil {
			return err
		}
		m.Requirements = reqs
	}

	var err error
	if m.StartDelay, err = duration(file.StartDelay, m.StartDelay, "start_delay"); err != nil {
		return err
	}
	if m.StopGrace, err = duration(file.StopGrace, m.StopGrace, "stop_grace"); err != nil {
		return err
	}
	return nil
}

func requirements(dtos []RequirementDTO) ([]domain.Requirement, error) {
	reqs := make([]domain.Requirement, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for _, dto := range dtos {
		pkg := strings.TrimSpace(dto.Package)
		if pkg == "" {
			return nil, zerr.With(invalid("requirement package must not be empty"), "field", "requirements")
		}
		if seen[pkg] {
			return nil, zerr.With(invalid("duplicate requirement"), "package", pkg)
		}
		seen[pkg] = true
		reqs = append(reqs, domain.Requirement{Package: pkg, Module: strings.TrimSpace(dto.Module)})
	}
	return reqs, nil
}

func duration(raw string, fallback time.Duration, field string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", field)
	}
	if d < 0 {
		return 0, zerr.With(invalid("duration must not be negative"), "field", field)
	}
	return d, nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}
	if !slices.Contains(schemes, u.Scheme) || u.Host == "" {
		return zerr.With(invalid("unsupported endpoint URL"), "url", raw)
	}
	return nil
}

func invalid(msg string) error {
	return zerr.Wrap(domain.ErrInvalidConfig, msg)
}
