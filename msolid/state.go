// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/mortezaaesmaeilpour/moose/tensor"

// State holds the data of one integration point at one time step
type State struct {

	// essential
	Sig tensor.T2 // σ: current Cauchy stress tensor

	// for viscoplasticity
	Epe  float64   // effective inelastic strain (accumulated)
	EpsI tensor.T2 // inelastic strain tensor (accumulated)
	Por  float64   // porosity

	// data of last converged update
	Dgam    float64 // Δε_eff: increment of effective inelastic strain
	Loading bool    // inelastic flow happened
	Nit     int     // number of iterations used by the local solver
}

// Set copies states
func (o *State) Set(other *State) {
	*o = *other
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := new(State)
	other.Set(o)
	return other
}

// Fresh initialises a state for a point participating for the first time
func (o *State) Fresh(σ tensor.T2, φ0 float64) {
	o.Sig = σ
	o.Epe = 0
	o.EpsI = tensor.T2{}
	o.Por = φ0
	o.Dgam = 0
	o.Loading = false
	o.Nit = 0
}
