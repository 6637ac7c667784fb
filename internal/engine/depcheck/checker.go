// Package depcheck verifies that the server's Python requirements resolve.
package depcheck

import (
	"context"
	"slices"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
)

// Checker resolves a requirement registry against one interpreter.
type Checker struct {
	prober ports.ModuleProber
	tracer ports.Tracer
	logger ports.Logger
}

// NewChecker creates a new Checker.
func NewChecker(prober ports.ModuleProber, tracer ports.Tracer, logger ports.Logger) *Checker {
	return &Checker{
		prober: prober,
		tracer: tracer,
		logger: logger,
	}
}

// Check probes every requirement in one pass and reports the unresolved ones
// in registry order. It never stops at the first missing requirement.
//
// A probe that cannot run is returned as an error tagged with
// domain.ErrLaunchFailed; it is never reported as a missing dependency.
func (c *Checker) Check(ctx context.Context, dir, interpreter string, reqs []domain.Requirement) (domain.CheckReport, error) {
	ctx, span := c.tracer.Start(ctx, "dependency-check")
	defer span.End()

	report := domain.CheckReport{Checked: slices.Clone(reqs)}
	span.SetAttribute("interpreter", interpreter)
	span.SetAttribute("requirements", len(reqs))

	if len(reqs) == 0 {
		return report, nil
	}

	modules := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if !slices.Contains(modules, req.ImportName()) {
			modules = append(modules, req.ImportName())
		}
	}

	unresolved, err := c.prober.Unresolved(ctx, dir, interpreter, modules)
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	var missing []string
	for _, req := range reqs {
		if slices.Contains(unresolved, req.ImportName()) {
			report.Missing = append(report.Missing, req)
			missing = append(missing, req.Package)
			c.logger.Debug("unresolved module " + req.ImportName() + " for " + req.Package)
		}
	}

	if len(missing) > 0 {
		span.SetAttribute("missing", missing)
	}
	return report, nil
}
