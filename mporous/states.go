// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mporous implements the porosity evolution of porous solids
package mporous

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mortezaaesmaeilpour/moose/ad"
)

// default bounds for porosity
const (
	PhiMin = 0.0
	PhiMax = 1.0 - 1e-8
)

// Model computes porosity from accumulated inelastic volumetric strains
//
//	References:
//	 [1] Gurson AL (1977) Continuum theory of ductile rupture by void nucleation and
//	     growth: Part I. Journal of Engineering Materials and Technology, 99(1) 2-15
type Model struct {
	Name string  // name of porosity field; e.g. "porosity"
	Phi0 float64 // initial porosity
	Min  float64 // lower bound used to clamp porosity
	Max  float64 // upper bound used to clamp porosity
}

// Init initialises model
func (o *Model) Init(name string, prms dbf.Params) (err error) {
	o.Name = name
	o.Min, o.Max = PhiMin, PhiMax
	for _, p := range prms {
		switch p.N {
		case "phi0":
			o.Phi0 = p.V
		case "phimin":
			o.Min = p.V
		case "phimax":
			o.Max = p.V
		default:
			return chk.Err("porosity: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Name == "" {
		return chk.Err("porosity: name of porosity field must be given\n")
	}
	if o.Min < 0 || o.Max >= 1 || o.Min >= o.Max {
		return chk.Err("porosity: bounds must satisfy 0 ≤ phimin < phimax < 1. %g, %g is invalid\n", o.Min, o.Max)
	}
	if o.Phi0 < o.Min || o.Phi0 > o.Max {
		return chk.Err("porosity: phi0 = %g is outside [%g, %g]\n", o.Phi0, o.Min, o.Max)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Model) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "phi0", V: 0.1},
		&dbf.P{N: "phimin", V: PhiMin},
		&dbf.P{N: "phimax", V: PhiMax},
	}
}

// CheckOld checks porosity coming from the previous step
func (o Model) CheckOld(φold float64) (err error) {
	if math.IsNaN(φold) || φold < 0 || φold >= 1 {
		return chk.Err("porosity %g is outside [0, 1)", φold)
	}
	return
}

// EvolveAD computes the porosity after an increment of inelastic volumetric
// strain trΔεi, which may depend on the independent variable of the local solver
//
//	φ = (1 - φold) tr(Δεi) + φold
//
// The result is clamped to [Min, Max] where its derivative vanishes
func (o Model) EvolveAD(φold float64, trΔεi ad.Real) ad.Real {
	φ := trΔεi.Scale(1.0 - φold).AddC(φold)
	return ad.Clamp(φ, o.Min, o.Max)
}
