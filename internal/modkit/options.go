package modkit

import (
	"net/http"

	"recipescraper/internal/modkit/httpkit"
	str "recipescraper/internal/platform/strings"
)

// Option mutates build configuration for a module
type Option func(*Built)

// Built is the resolved option set
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports is whatever the caller injected, the module decides what it accepts
	Ports any
}

// WithName sets the module name
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports owned by another module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Base returns the embeddable base for a module that registers routes
// Panics on a blank name or prefix
func (b Built) Base(routes func(httpkit.Router)) Base {
	return Base{
		name:   str.MustString(b.Name, "module name"),
		prefix: str.MustPrefix(b.Prefix),
		mws:    b.Mw,
		routes: routes,
	}
}
