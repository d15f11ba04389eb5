// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"fmt"
	"os"
)

type (
	// Provider discovers the declared parameter contract of one target kind.
	// The core depends only on this interface, never on the concrete
	// discovery mechanism.
	Provider interface {
		// Name returns the provider name for logs and diagnostics.
		Name() string
		// Supports reports whether this provider can inspect the target.
		Supports(targetPath string) bool
		// Inspect returns the target's ordered signature and declared
		// defaults. Fails with TargetShapeError when the declaration cannot
		// be parsed.
		Inspect(targetPath string) (*Inspection, error)
	}

	// Registry holds the available signature providers in probe order.
	Registry struct {
		providers []Provider
	}
)

// NewRegistry creates a registry over the given providers. Probe order is
// significant: the first provider that supports a target wins.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// DefaultRegistry returns the built-in provider set: sidecar declarations
// take precedence over header annotations.
func DefaultRegistry() *Registry {
	return NewRegistry(NewSidecarProvider(), NewAnnotationProvider())
}

// For returns the first provider that supports the given target.
func (r *Registry) For(targetPath string) (Provider, error) {
	for _, p := range r.providers {
		if p.Supports(targetPath) {
			return p, nil
		}
	}
	return nil, &TargetShapeError{
		Path:  targetPath,
		Cause: fmt.Errorf("no signature provider supports this target kind"),
	}
}

// Inspect resolves the target path, picks a provider, and discovers the
// signature. This is the single entry point the launcher uses.
func (r *Registry) Inspect(targetPath string) (*Inspection, error) {
	info, err := os.Stat(targetPath)
	if err != nil {
		return nil, &TargetNotFoundError{Path: targetPath, Cause: err}
	}
	if info.IsDir() {
		return nil, &TargetNotFoundError{Path: targetPath, Cause: fmt.Errorf("path is a directory")}
	}

	provider, err := r.For(targetPath)
	if err != nil {
		return nil, err
	}
	return provider.Inspect(targetPath)
}
