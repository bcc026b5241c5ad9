// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tensor implements second order tensors in 3D with the few operations
// needed by the constitutive updates
package tensor

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// constants
const (
	SQ3by2 = 1.224744871391589 // √(3/2)
	DetMin = 1e-14             // minimum |det| accepted by Inv
)

// T2 is a second order tensor stored as a 3x3 matrix
type T2 [3][3]float64

// I returns the identity tensor
func I() (a T2) {
	a[0][0], a[1][1], a[2][2] = 1, 1, 1
	return
}

// Diag returns a diagonal tensor
func Diag(a00, a11, a22 float64) (a T2) {
	a[0][0], a[1][1], a[2][2] = a00, a11, a22
	return
}

// Tr returns the trace
func (a T2) Tr() float64 { return a[0][0] + a[1][1] + a[2][2] }

// Add returns a + b
func (a T2) Add(b T2) (c T2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

// Sub returns a - b
func (a T2) Sub(b T2) (c T2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] - b[i][j]
		}
	}
	return
}

// Scale returns s * a
func (a T2) Scale(s float64) (c T2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = s * a[i][j]
		}
	}
	return
}

// AddIa returns a + s * I
func (a T2) AddIa(s float64) T2 {
	a[0][0] += s
	a[1][1] += s
	a[2][2] += s
	return a
}

// Mul returns the matrix product a · b
func (a T2) Mul(b T2) (c T2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

// Transpose returns aᵀ
func (a T2) Transpose() (c T2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[j][i]
		}
	}
	return
}

// Det returns the determinant
func (a T2) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inv returns the inverse of a
func (a T2) Inv() (ai T2, err error) {
	det := a.Det()
	if math.Abs(det) < DetMin || math.IsNaN(det) {
		return ai, chk.Err("cannot invert tensor: det = %g is too small", det)
	}
	ai[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
	ai[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	ai[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	ai[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
	ai[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	ai[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	ai[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
	ai[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	ai[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	return
}

// Dev returns the deviatoric part: a - tr(a)/3 I
func (a T2) Dev() T2 { return a.AddIa(-a.Tr() / 3.0) }

// Ddot returns the double contraction a : b
func (a T2) Ddot(b T2) (res float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res += a[i][j] * b[i][j]
		}
	}
	return
}

// Norm returns the Frobenius norm
func (a T2) Norm() float64 { return math.Sqrt(a.Ddot(a)) }

// P returns the mean stress invariant tr(a)/3 (tension positive)
func (a T2) P() float64 { return a.Tr() / 3.0 }

// Q returns the von Mises invariant √(3/2 s:s)
func (a T2) Q() float64 { return SQ3by2 * a.Dev().Norm() }

// IsFinite tells whether all components are finite
func (a T2) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(a[i][j]) || math.IsInf(a[i][j], 0) {
				return false
			}
		}
	}
	return true
}
