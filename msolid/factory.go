// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"log/slog"
	"sort"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mortezaaesmaeilpour/moose/mporous"
)

// Factory holds all available viscoplastic models; modelname => allocator of gauge.
// It is filled by NewFactory and is read-only afterwards
type Factory struct {
	allocators map[string]func() Gauge
}

// NewFactory returns a factory with all models of this package
func NewFactory() *Factory {
	o := &Factory{allocators: make(map[string]func() Gauge)}
	o.add("vp-norton", func() Gauge { return new(DenseNorton) })
	o.add("vp-porous-norton", func() Gauge { return new(PorousNorton) })
	return o
}

// add registers an allocator
func (o *Factory) add(name string, allocator func() Gauge) {
	o.allocators[name] = allocator
}

// Names returns the names of available models
func (o *Factory) Names() (names []string) {
	for name := range o.allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New allocates and initialises a model
func (o *Factory) New(name string, prms dbf.Params, opts Options, por *mporous.Model, log *slog.Logger) (mdl *Viscoplastic, err error) {
	allocator, ok := o.allocators[name]
	if !ok {
		return nil, configErr(name, "model is not available in 'msolid' database. available: %v", o.Names())
	}
	mdl = &Viscoplastic{Name: name, Gau: allocator()}
	if err = mdl.Init(prms, opts, por, log); err != nil {
		return nil, err
	}
	return
}
