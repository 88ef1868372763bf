// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package transform provides the registry of pure raw-to-normalized value
// conversions used by the read-signal pipeline.
//
// Transforms are referentially identified by name so that signal tables can
// reference them declaratively. Every transform is a pure function of its
// raw input; multi-input (derived) quantities are computed by the state
// store, not here.
package transform

import (
	"errors"
	"fmt"
)

// ErrUnknownTransform is returned when a name is not registered.
var ErrUnknownTransform = errors.New("unknown transform")

// Error describes a raw value outside a transform's accepted domain.
// It is non-fatal: the dispatcher logs it and skips the field for that cycle.
type Error struct {
	Transform string
	Raw       interface{}
	Reason    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transform %q: %s (raw=%v)", e.Transform, e.Reason, e.Raw)
}

// Func converts a single raw value to its normalized form.
type Func func(raw interface{}) (interface{}, error)

// Registry maps transform names to functions. It is built once at startup
// and read-only afterwards.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates a registry pre-populated with the default FSUIPC
// conversion set.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	registerDefaults(r)
	return r
}

// Register adds a named transform. Registering an existing name replaces it.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Resolve returns the function registered under name.
func (r *Registry) Resolve(name string) (Func, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	return fn, nil
}

// Apply resolves name and invokes it on raw. The empty name is the identity
// transform.
func (r *Registry) Apply(name string, raw interface{}) (interface{}, error) {
	if name == "" {
		return raw, nil
	}
	fn, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return fn(raw)
}

// Names returns the set of registered transform names (unordered).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}
