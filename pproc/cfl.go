// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pproc implements postprocessors evaluated once per pass over the elements
package pproc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/mortezaaesmaeilpour/moose/par"
)

// Unbounded is the value of a condition that does not constrain the time step
const Unbounded = math.MaxFloat64

// Phase of a postprocessor evaluation
type Phase int

const (
	Idle         Phase = iota // waiting for Initialize; Value is available
	Accumulating              // visiting elements
	Reducing                  // merging partial results
)

func (o Phase) String() string {
	switch o {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	case Reducing:
		return "reducing"
	}
	return "unknown"
}

// CflCondition computes the maximum stable time step of an advection problem
//
//	Δt = min over elements of hmin / max |v|
//
// Elements with zero velocity do not constrain the time step
type CflCondition struct {
	phase Phase
	dt    float64 // running minimum
	nelem int     // number of visited elements
}

// NewCflCondition returns a new postprocessor in the Idle phase
func NewCflCondition() *CflCondition {
	return &CflCondition{phase: Idle, dt: Unbounded}
}

// Phase returns the current phase
func (o *CflCondition) Phase() Phase { return o.phase }

// Nelem returns the number of elements visited in the current or last pass
func (o *CflCondition) Nelem() int { return o.nelem }

// Initialize starts a new pass
func (o *CflCondition) Initialize() error {
	if o.phase != Idle {
		return chk.Err("cfl: cannot initialize in %v phase", o.phase)
	}
	o.phase = Accumulating
	o.dt = Unbounded
	o.nelem = 0
	return nil
}

// Execute visits one element with characteristic length hmin and velocities
// sampled at its integration points
func (o *CflCondition) Execute(hmin float64, vels []la.Vector) error {
	if o.phase != Accumulating {
		return chk.Err("cfl: cannot execute in %v phase", o.phase)
	}
	if hmin <= 0 || math.IsNaN(hmin) || math.IsInf(hmin, 0) {
		return chk.Err("cfl: element length must be positive and finite. hmin = %g is invalid", hmin)
	}
	vmax := 0.0
	for _, v := range vels {
		s := v.Norm()
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return chk.Err("cfl: velocity %v is not finite", v)
		}
		vmax = utl.Max(vmax, s)
	}
	o.nelem++
	if vmax == 0 {
		return nil
	}
	o.dt = utl.Min(o.dt, hmin/vmax)
	return nil
}

// Clone returns a copy used by another thread during accumulation
func (o *CflCondition) Clone() *CflCondition {
	other := *o
	other.dt = Unbounded
	other.nelem = 0
	return &other
}

// ThreadJoin merges the result of another thread
func (o *CflCondition) ThreadJoin(other *CflCondition) error {
	if o.phase != Accumulating || other.phase != Accumulating {
		return chk.Err("cfl: cannot join threads in %v and %v phases", o.phase, other.phase)
	}
	o.dt = utl.Min(o.dt, other.dt)
	o.nelem += other.nelem
	return nil
}

// Finalize reduces over all partitions and ends the pass. All partitions
// must call Finalize
func (o *CflCondition) Finalize(comm par.Comm) error {
	if o.phase != Accumulating {
		return chk.Err("cfl: cannot finalize in %v phase", o.phase)
	}
	o.phase = Reducing
	o.dt = comm.AllReduceMin(o.dt)
	o.phase = Idle
	return nil
}

// Value returns the time step of the last pass
func (o *CflCondition) Value() float64 { return o.dt }
