// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/mortezaaesmaeilpour/moose/tensor"
)

// Trial holds the elastic trial state of one local update
type Trial struct {
	Dt   float64   // time step
	Deps tensor.T2 // Δε: total strain increment
	Doth tensor.T2 // increments of other inelastic mechanisms already computed
	Dee  tensor.T2 // Δεe_tr: trial elastic strain increment
	Sig  tensor.T2 // σ_tr: trial stress
	S    tensor.T2 // dev(σ_tr)
	Q    float64   // q_tr: von Mises trial stress
	P    float64   // p_tr: mean trial stress (tension positive)
}

// NewTrial computes the elastic trial state
//
//	σ_tr = σold + K tr(Δεe) I + 2 G dev(Δεe)   with   Δεe = Δε - Δε_other
func NewTrial(K, G, dt float64, σold, Δε, Δεother tensor.T2) (o *Trial) {
	o = &Trial{Dt: dt, Deps: Δε, Doth: Δεother}
	o.Dee = Δε.Sub(Δεother)
	o.Sig = σold.Add(o.Dee.Dev().Scale(2.0 * G)).AddIa(K * o.Dee.Tr())
	o.S = o.Sig.Dev()
	o.Q = o.Sig.Q()
	o.P = o.Sig.P()
	return
}
