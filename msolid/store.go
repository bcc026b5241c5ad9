// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mortezaaesmaeilpour/moose/tensor"
)

// Store holds old (previous converged step) and new (current step) states of
// all integration points. Old is read-only during a step; New[i] is written
// only by the worker updating point i
type Store struct {
	Old []State // [npts] frozen states of previous step
	New []State // [npts] states being computed
}

// NewStore allocates a store for npts points
func NewStore(npts int) *Store {
	return &Store{
		Old: make([]State, npts),
		New: make([]State, npts),
	}
}

// Npts returns the number of points
func (o *Store) Npts() int { return len(o.Old) }

// Init initialises point i for its first participation; both buffers receive
// the fresh state
func (o *Store) Init(i int, σ tensor.T2, φ0 float64) {
	o.New[i].Fresh(σ, φ0)
	o.Old[i].Set(&o.New[i])
}

// Propagate copies the old state of point i forward unchanged
func (o *Store) Propagate(i int) {
	o.New[i].Set(&o.Old[i])
}

// Commit makes the new states the old ones (end of converged step). New is
// re-propagated so that it never holds stale values
func (o *Store) Commit() {
	o.Old, o.New = o.New, o.Old
	for i := range o.New {
		o.New[i].Set(&o.Old[i])
	}
}

// Restore discards all new states (step cut)
func (o *Store) Restore() {
	for i := range o.New {
		o.New[i].Set(&o.Old[i])
	}
}

// Pair returns the old (read-only) and new states of point i
func (o *Store) Pair(i int) (old, new *State) {
	if i < 0 || i >= len(o.Old) {
		chk.Panic("point index %d is out of range [0, %d)", i, len(o.Old))
	}
	return &o.Old[i], &o.New[i]
}
