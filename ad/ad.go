// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ad implements forward-mode automatic differentiation with dual numbers
package ad

import "math"

// Real is a dual number carrying a value and its derivative with respect to
// one independent variable
type Real struct {
	V float64 // value
	D float64 // derivative
}

// Var returns the independent variable x (dx/dx = 1)
func Var(x float64) Real { return Real{x, 1} }

// Cte returns a constant (zero derivative)
func Cte(c float64) Real { return Real{c, 0} }

// Value returns the value
func (a Real) Value() float64 { return a.V }

// Deriv returns the derivative w.r.t the independent variable
func (a Real) Deriv() float64 { return a.D }

// Add returns a + b
func (a Real) Add(b Real) Real { return Real{a.V + b.V, a.D + b.D} }

// Sub returns a - b
func (a Real) Sub(b Real) Real { return Real{a.V - b.V, a.D - b.D} }

// Mul returns a * b
func (a Real) Mul(b Real) Real { return Real{a.V * b.V, a.D*b.V + a.V*b.D} }

// Div returns a / b
func (a Real) Div(b Real) Real {
	return Real{a.V / b.V, (a.D*b.V - a.V*b.D) / (b.V * b.V)}
}

// Scale returns c * a
func (a Real) Scale(c float64) Real { return Real{c * a.V, c * a.D} }

// AddC returns a + c
func (a Real) AddC(c float64) Real { return Real{a.V + c, a.D} }

// Neg returns -a
func (a Real) Neg() Real { return Real{-a.V, -a.D} }

// Sqrt returns √a. The derivative at a = 0 is taken as zero when a.D is zero
func Sqrt(a Real) Real {
	s := math.Sqrt(a.V)
	if s == 0 && a.D == 0 {
		return Real{}
	}
	return Real{s, a.D / (2.0 * s)}
}

// Pow returns aⁿ for a constant exponent n
func Pow(a Real, n float64) Real {
	switch {
	case n == 0:
		return Real{1, 0}
	case n == 1:
		return a
	case a.V == 0 && n > 1:
		return Real{}
	}
	p := math.Pow(a.V, n-1)
	return Real{p * a.V, n * p * a.D}
}

// Max0 returns max(a, 0); the kink at zero takes the zero branch
func Max0(a Real) Real {
	if a.V > 0 {
		return a
	}
	return Real{}
}

// Min returns the smaller of a and b
func Min(a, b Real) Real {
	if a.V <= b.V {
		return a
	}
	return b
}

// Clamp bounds a to [lo, hi]; clamped values carry zero derivative
func Clamp(a Real, lo, hi float64) Real {
	if a.V < lo {
		return Real{lo, 0}
	}
	if a.V > hi {
		return Real{hi, 0}
	}
	return a
}

// IsFinite tells whether both value and derivative are finite
func (a Real) IsFinite() bool {
	return !math.IsNaN(a.V) && !math.IsInf(a.V, 0) && !math.IsNaN(a.D) && !math.IsInf(a.D, 0)
}
