// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func flat(a T2) []float64 {
	return []float64{a[0][0], a[0][1], a[0][2], a[1][0], a[1][1], a[1][2], a[2][0], a[2][1], a[2][2]}
}

func Test_tensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tensor01")

	a := T2{{2, 1, 0}, {1, 3, 0.5}, {0, 0.5, 4}}
	ai, err := a.Inv()
	if err != nil {
		tst.Errorf("Inv failed: %v\n", err)
		return
	}
	io.Pforan("ai = %v\n", ai)
	chk.Array(tst, "a·ai", 1e-14, flat(a.Mul(ai)), flat(I()))
	chk.Float64(tst, "tr", 1e-17, a.Tr(), 9)
	chk.Float64(tst, "tr(dev)", 1e-15, a.Dev().Tr(), 0)

	// singular
	_, err = T2{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}.Inv()
	if err == nil {
		tst.Errorf("singular tensor should not be invertible\n")
	}
}

func Test_tensor02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tensor02")

	// uniaxial stress: q = |σ|, p = σ/3
	σ := Diag(-6, 0, 0)
	chk.Float64(tst, "q", 1e-14, σ.Q(), 6)
	chk.Float64(tst, "p", 1e-15, σ.P(), -2)

	// hydrostatic: q = 0
	h := I().Scale(5)
	chk.Float64(tst, "q(hyd)", 1e-15, h.Q(), 0)
	chk.Float64(tst, "p(hyd)", 1e-15, h.P(), 5)
	chk.Float64(tst, "norm", 1e-14, h.Norm(), 5*1.7320508075688772)
}
