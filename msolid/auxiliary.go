// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Location identifies an integration point for diagnostics
type Location struct {
	Eid   int        // element id
	Ipid  int        // integration point index within element
	Block int        // subdomain id
	X     [3]float64 // coordinates of integration point
}

// String returns a short description
func (o Location) String() string {
	return io.Sf("elem=%d ip=%d coords=(%g, %g, %g) block=%d", o.Eid, o.Ipid, o.X[0], o.X[1], o.X[2], o.Block)
}

// Calc_K_from_Enu returns the bulk modulus for given Young's modulus and Poisson's coefficient
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu returns the shear modulus for given Young's modulus and Poisson's coefficient
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// isFinite tells whether x is neither NaN nor ±Inf
func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
