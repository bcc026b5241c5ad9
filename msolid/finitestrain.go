// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/mortezaaesmaeilpour/moose/tensor"
)

// Kinematics holds the displacement gradients of one integration point
// supplied by the finite element layer
type Kinematics struct {
	GradU    tensor.T2 // ∇u at the end of the step
	GradUold tensor.T2 // ∇u at the beginning of the step

	// one-dimensional problems: yy and zz components of ∇u are not given by
	// the mesh and must be supplied; e.g. u_r/r in spherical symmetry
	OneD     bool
	YY, ZZ   float64 // ∂u_y/∂y and ∂u_z/∂z at the end of the step
	YYo, ZZo float64 // ∂u_y/∂y and ∂u_z/∂z at the beginning of the step
}

// Fhat computes the incremental deformation gradient
//
//	Fhat = I + (∇u - ∇uold) · (I + ∇uold)⁻¹
func (o *Kinematics) Fhat(loc Location) (Fhat tensor.T2, err error) {
	A, Fbar := o.GradU, o.GradUold
	if o.OneD {
		A[1][1], A[2][2] = o.YY, o.ZZ
		Fbar[1][1], Fbar[2][2] = o.YYo, o.ZZo
	}
	A = A.Sub(Fbar)
	Fbar = Fbar.AddIa(1)
	Fbi, err := Fbar.Inv()
	if err != nil {
		return Fhat, &DomainError{Loc: loc, Msg: "old deformation gradient is singular: " + err.Error()}
	}
	Fhat = A.Mul(Fbi).AddIa(1)
	return
}

// StrainIncrement computes the strain increment from the incremental
// deformation gradient using a Taylor expansion
//
//	Cinv_I = (Fhatᵀ Fhat)⁻¹ - I
//	Δε = -½ Cinv_I + ¼ Cinv_I · Cinv_I
func (o *Kinematics) StrainIncrement(loc Location) (Δε tensor.T2, err error) {
	Fhat, err := o.Fhat(loc)
	if err != nil {
		return
	}
	C := Fhat.Transpose().Mul(Fhat)
	Ci, err := C.Inv()
	if err != nil {
		return Δε, &DomainError{Loc: loc, Msg: "incremental deformation is singular: " + err.Error()}
	}
	CiI := Ci.AddIa(-1)
	Δε = CiI.Scale(-0.5).Add(CiI.Mul(CiI).Scale(0.25))
	if !Δε.IsFinite() {
		return Δε, &DomainError{Loc: loc, Msg: "strain increment is not finite"}
	}
	return
}
