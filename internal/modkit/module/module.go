// Package module is the contract API modules satisfy and the lookup of ports across them
package module

import (
	"reflect"
	"sync"

	phttp "recipescraper/internal/platform/net/http"
)

// Module mounts its routes and exposes a port bundle other modules may consume
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds T in m's port bundle
// The bundle itself or any exported field of a bundle struct may provide T
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// Set is the ordered list of modules mounted together
type Set struct {
	mu   sync.RWMutex
	mods []Module
}

// Add appends modules in mount order
func (s *Set) Add(ms ...Module) {
	s.mu.Lock()
	s.mods = append(s.mods, ms...)
	s.mu.Unlock()
}

// Modules returns a copy of the set in mount order
func (s *Set) Modules() []Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Module(nil), s.mods...)
}

// Lookup returns T from the first module in s that provides it
func Lookup[T any](s *Set) (T, bool) {
	for _, m := range s.Modules() {
		if v, ok := PortsOf[T](m); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
