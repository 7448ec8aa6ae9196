// Package module wires the normalize endpoints into the API
package module

import (
	modkit "recipescraper/internal/modkit"

	nhttp "recipescraper/internal/services/api/normalize/http"
)

// Module serves the stateless normalizers
type Module struct {
	modkit.Base
}

// New constructs the normalize module, it needs no deps
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("normalize"),
		modkit.WithPrefix("/normalize"),
	}, opts...)...)
	return &Module{Base: b.Base(nhttp.Register)}
}

// Ports is empty, normalize exposes nothing to other modules
func (m *Module) Ports() any { return nil }
