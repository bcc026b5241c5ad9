// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"log/slog"
	"math"

	"github.com/mortezaaesmaeilpour/moose/ad"
)

// FlowLaw defines the scalar residual solved by the return mapping
type FlowLaw interface {
	Residual(x ad.Real) ad.Real // R(x) and dR/dx for a guess x = Δε_eff
	Reference() float64         // reference residual used by the relative tolerance
	Bracket() (lo, hi float64)  // interval containing the root; R(lo) and R(hi) have opposite signs
}

// ReturnMap solves R(Δε_eff) = 0 with a Newton method safeguarded by bisection
type ReturnMap struct {
	MaxIts  int          // maximum number of iterations
	Rtol    float64      // relative tolerance: |R| ≤ Rtol |ref|
	Atol    float64      // absolute tolerance: |R| ≤ Atol
	Verbose bool         // log each iteration
	Log     *slog.Logger // logger for diagnostics; may be nil
}

// RmResult holds the outcome of one return mapping
type RmResult struct {
	Dp   float64 // Δε_eff
	Res  float64 // final residual
	Ref  float64 // reference residual
	Nit  int     // number of residual evaluations
	Nbis int     // number of bisection steps
}

// Init sets tolerances from options
func (o *ReturnMap) Init(opts Options, log *slog.Logger) {
	o.MaxIts = opts.MaxIts
	o.Rtol = opts.Rtol
	o.Atol = opts.Atol
	o.Verbose = opts.Verbose
	o.Log = log
}

// Converged checks the scaled residual
func (o *ReturnMap) Converged(r, ref float64) bool {
	r = math.Abs(r)
	return r <= o.Rtol*math.Abs(ref) || r <= o.Atol
}

// Solve runs the iterations starting from the lower end of the bracket
func (o *ReturnMap) Solve(law FlowLaw, loc Location) (res RmResult, err error) {

	// reference and bracket
	ref := law.Reference()
	if !isFinite(ref) {
		return res, &DomainError{Loc: loc, Msg: "reference residual is not finite"}
	}
	lo, hi := law.Bracket()
	if !isFinite(lo) || !isFinite(hi) || hi < lo {
		return res, &DomainError{Loc: loc, Msg: "invalid bracket"}
	}
	res.Ref = ref

	// iterations
	x := lo
	var sgnLo float64
	for it := 0; it < o.MaxIts; it++ {

		// residual
		R := law.Residual(ad.Var(x))
		res.Dp, res.Res, res.Nit = x, R.V, it+1
		if o.Verbose && o.Log != nil {
			o.Log.Info("return mapping",
				"elem", loc.Eid, "ip", loc.Ipid, "coords", loc.X, "block", loc.Block,
				"it", it, "dp", x, "residual", R.V, "dRdp", R.D, "reference", ref)
		}
		if !R.IsFinite() {
			return res, &DomainError{Loc: loc, Nit: it, Msg: "residual or derivative is not finite"}
		}

		// check convergence
		if o.Converged(R.V, ref) {
			return
		}

		// update bracket
		if it == 0 {
			sgnLo = sign(R.V)
		}
		if sign(R.V) == sgnLo {
			lo = x
		} else {
			hi = x
		}

		// Newton step or bisection
		xnew := x - R.V/R.D
		if R.D == 0 || !isFinite(xnew) || xnew <= lo || xnew >= hi {
			xnew = 0.5 * (lo + hi)
			res.Nbis++
		}
		x = xnew
	}

	// failed
	if o.Verbose && o.Log != nil {
		o.Log.Warn("return mapping did not converge",
			"elem", loc.Eid, "ip", loc.Ipid, "coords", loc.X, "block", loc.Block,
			"nit", res.Nit, "dp", res.Dp, "residual", res.Res, "reference", ref)
	}
	return res, &ConvergenceError{Loc: loc, Nit: res.Nit, Dp: res.Dp, Res: res.Res, Ref: ref}
}

// sign returns -1, 0 or 1
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
