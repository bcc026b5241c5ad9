// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_ad01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ad01")

	// f(x) = x² / (1 + x) at x = 2
	x := Var(2)
	f := x.Mul(x).Div(x.AddC(1))
	io.Pforan("f = %v\n", f)
	chk.Float64(tst, "f", 1e-15, f.V, 4.0/3.0)
	chk.Float64(tst, "df/dx", 1e-15, f.D, (2*2*3.0-4.0)/9.0)

	// g(x) = 3 √(x) - 2x at x = 4
	y := Var(4)
	g := Sqrt(y).Scale(3).Sub(y.Scale(2))
	chk.Float64(tst, "g", 1e-15, g.V, -2)
	chk.Float64(tst, "dg/dx", 1e-15, g.D, 3.0/4.0-2.0)
}

func Test_ad02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ad02")

	// power law
	x := Var(1.5)
	p := Pow(x, 3)
	chk.Float64(tst, "x³", 1e-15, p.V, 3.375)
	chk.Float64(tst, "3x²", 1e-15, p.D, 6.75)

	// kinks
	z := Max0(Var(-1))
	chk.Float64(tst, "max0.V", 1e-17, z.V, 0)
	chk.Float64(tst, "max0.D", 1e-17, z.D, 0)
	c := Clamp(Var(2), 0, 1)
	chk.Float64(tst, "clamp.V", 1e-17, c.V, 1)
	chk.Float64(tst, "clamp.D", 1e-17, c.D, 0)

	// zero arguments do not produce NaN
	s := Sqrt(Cte(0))
	if !s.IsFinite() {
		tst.Errorf("√0 should be finite: %v\n", s)
	}
	q := Pow(Cte(0), 4)
	if !q.IsFinite() {
		tst.Errorf("0⁴ should be finite: %v\n", q)
	}

	// non-finite detection
	if (Real{math.Inf(1), 0}).IsFinite() {
		tst.Errorf("+Inf should not be finite\n")
	}
	if (Real{0, math.NaN()}).IsFinite() {
		tst.Errorf("NaN derivative should not be finite\n")
	}
}
