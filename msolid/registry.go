// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"sort"
	"sync"
)

// Registry holds the names of per-point fields declared by producers and
// required by consumers. It is populated at setup and frozen afterwards
type Registry struct {
	mu       sync.RWMutex
	declared map[string]string   // field name => producer
	required map[string][]string // field name => consumers
	frozen   bool
}

// NewRegistry returns a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		declared: make(map[string]string),
		required: make(map[string][]string),
	}
}

// Declare records that owner produces field name
func (o *Registry) Declare(name, owner string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozen {
		return configErr(owner, "cannot declare %q: registry is frozen", name)
	}
	if name == "" {
		return configErr(owner, "cannot declare field with empty name")
	}
	if prev, ok := o.declared[name]; ok {
		return configErr(owner, "field %q is already declared by %q", name, prev)
	}
	o.declared[name] = owner
	return nil
}

// Require records that consumer needs field name
func (o *Registry) Require(name, consumer string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozen {
		return configErr(consumer, "cannot require %q: registry is frozen", name)
	}
	o.required[name] = append(o.required[name], consumer)
	return nil
}

// Names returns the sorted list of declared fields
func (o *Registry) Names() (names []string) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for name := range o.declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Check returns one ConfigError per required field that nobody declares
func (o *Registry) Check() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var missing []string
	for name := range o.required {
		if _, ok := o.declared[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	var errs []error
	for _, name := range missing {
		for _, consumer := range o.required[name] {
			errs = append(errs, configErr(consumer, "required field %q is not declared by any object", name))
		}
	}
	return errors.Join(errs...)
}

// Freeze checks the registry and makes it read-only
func (o *Registry) Freeze() error {
	if err := o.Check(); err != nil {
		return err
	}
	o.mu.Lock()
	o.frozen = true
	o.mu.Unlock()
	return nil
}
