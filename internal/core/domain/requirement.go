package domain

import (
	"slices"
	"strings"
)

// Requirement is a Python distribution the server needs at runtime.
type Requirement struct {
	// Package is the distribution name, as passed to pip.
	Package string
	// Module is the import name. Empty means it is derived from Package.
	Module string
}

// ImportName returns the module name probed for the requirement.
// Without an explicit Module, hyphens in Package become underscores and nothing else changes.
func (r Requirement) ImportName() string {
	if r.Module != "" {
		return r.Module
	}
	return strings.ReplaceAll(r.Package, "-", "_")
}

func (r Requirement) String() string {
	if r.ImportName() == r.Package {
		return r.Package
	}
	return r.Package + " (" + r.ImportName() + ")"
}

// defaultRequirements is the server's runtime dependency registry, in report order.
var defaultRequirements = []Requirement{
	{Package: "opencv-python", Module: "cv2"},
	{Package: "numpy"},
	{Package: "websockets"},
	{Package: "flask"},
	{Package: "flask-cors", Module: "flask_cors"},
	{Package: "rtmlib"},
	{Package: "Pillow", Module: "PIL"},
}

// DefaultRequirements returns a copy of the built-in registry.
func DefaultRequirements() []Requirement {
	return slices.Clone(defaultRequirements)
}

// CheckReport is the result of one dependency check.
type CheckReport struct {
	Checked []Requirement
	Missing []Requirement
}

// OK reports whether every requirement resolved.
func (r CheckReport) OK() bool {
	return len(r.Missing) == 0
}

// Err returns a *MissingDependenciesError when anything is missing, nil otherwise.
func (r CheckReport) Err() error {
	if r.OK() {
		return nil
	}
	return &MissingDependenciesError{Missing: slices.Clone(r.Missing)}
}
