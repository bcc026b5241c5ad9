// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mortezaaesmaeilpour/moose/ad"
)

// Gauge implements the material-specific part of a viscoplastic flow law:
// the gauge (equivalent) stress of the porous aggregate and the rate law
type Gauge interface {
	Init(prms dbf.Params) error    // initialises model
	GetPrms() dbf.Params           // gets (an example) of parameters
	Sigma(q, p, φ ad.Real) ad.Real // Σ: gauge stress for given invariants and porosity
	Rate(Σ ad.Real) ad.Real        // dε_eff/dt for given gauge stress
}

// Norton implements the power law rate dε_eff/dt = A Σⁿ
type Norton struct {
	A float64 // rate coefficient
	N float64 // exponent (≥ 1)
}

// init parses the power law parameters
func (o *Norton) init(name string, prms dbf.Params) (err error) {
	o.N = 1
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "n":
			o.N = p.V
		default:
			return chk.Err("%s: parameter named %q is incorrect\n", name, p.N)
		}
	}
	if o.A <= 0 {
		return chk.Err("%s: coefficient A must be positive. A = %g is invalid\n", name, o.A)
	}
	if o.N < 1 {
		return chk.Err("%s: exponent n must be greater than or equal to 1. n = %g is invalid\n", name, o.N)
	}
	return
}

// Rate returns A Σⁿ
func (o Norton) Rate(Σ ad.Real) ad.Real {
	return ad.Pow(Σ, o.N).Scale(o.A)
}

// DenseNorton uses the von Mises stress as gauge stress (porosity has no effect)
type DenseNorton struct {
	Norton
}

// Init initialises model
func (o *DenseNorton) Init(prms dbf.Params) error { return o.init("vp-norton", prms) }

// GetPrms gets (an example) of parameters
func (o DenseNorton) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A", V: 1e-10},
		&dbf.P{N: "n", V: 3},
	}
}

// Sigma returns Σ = q
func (o DenseNorton) Sigma(q, p, φ ad.Real) ad.Real { return q }

// PorousNorton uses a quadratic gauge for a porous power-law matrix
//
//	Σ² = [ (1 + 2φ/3) q² + (9/4) φ p² ] / (1 - φ)²
type PorousNorton struct {
	Norton
}

// Init initialises model
func (o *PorousNorton) Init(prms dbf.Params) error { return o.init("vp-porous-norton", prms) }

// GetPrms gets (an example) of parameters
func (o PorousNorton) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A", V: 1e-10},
		&dbf.P{N: "n", V: 3},
	}
}

// Sigma returns the gauge stress
func (o PorousNorton) Sigma(q, p, φ ad.Real) ad.Real {
	cq := φ.Scale(2.0 / 3.0).AddC(1)
	cp := φ.Scale(9.0 / 4.0)
	Σ2 := cq.Mul(q).Mul(q).Add(cp.Mul(p).Mul(p))
	if Σ2.V <= 0 {
		return ad.Real{}
	}
	return ad.Sqrt(Σ2).Div(φ.Neg().AddC(1))
}
