// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"log/slog"
	"math"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mortezaaesmaeilpour/moose/ad"
	"github.com/mortezaaesmaeilpour/moose/mporous"
	"github.com/mortezaaesmaeilpour/moose/tensor"
)

// Unbounded is returned by TimeStepLimit when a point does not constrain the time step
const Unbounded = math.MaxFloat64

// Viscoplastic implements the stress update of rate-dependent inelastic
// materials with porosity coupling. The inelastic strain increment is the
// root of a scalar flow law solved by a return mapping
type Viscoplastic struct {

	// basic data
	Name string  // name of model in factory
	Opts Options // settings

	// elasticity
	K float64 // bulk modulus
	G float64 // shear modulus

	// collaborators
	Gau Gauge          // gauge stress and rate law
	Por *mporous.Model // porosity evolution
	Rm  ReturnMap      // local solver
}

// Init initialises model. Elastic parameters are "E" and "nu" or "K" and "G";
// all other parameters are passed to the gauge
func (o *Viscoplastic) Init(prms dbf.Params, opts Options, por *mporous.Model, log *slog.Logger) (err error) {

	// options
	opts.SetDefault()
	if err = opts.Check(o.Name); err != nil {
		return
	}
	o.Opts = opts
	o.Rm.Init(opts, log)

	// elastic parameters
	var E, ν float64
	var gauprms dbf.Params
	for _, p := range prms {
		switch p.N {
		case "E":
			E = p.V
		case "nu":
			ν = p.V
		case "K":
			o.K = p.V
		case "G":
			o.G = p.V
		default:
			gauprms = append(gauprms, p)
		}
	}
	if E > 0 {
		o.K = Calc_K_from_Enu(E, ν)
		o.G = Calc_G_from_Enu(E, ν)
	}
	if o.K <= 0 || o.G <= 0 {
		return configErr(o.Name, "elastic moduli must be positive. K=%g G=%g", o.K, o.G)
	}

	// gauge
	if o.Gau == nil {
		return configErr(o.Name, "gauge is not set")
	}
	if err = o.Gau.Init(gauprms); err != nil {
		return configErr(o.Name, "%v", err)
	}

	// porosity
	if por == nil {
		return configErr(o.Name, "porosity model is required")
	}
	o.Por = por
	return
}

// GetPrms gets (an example) of parameters
func (o Viscoplastic) GetPrms() (prms dbf.Params) {
	prms = []*dbf.P{
		&dbf.P{N: "E", V: 200000},
		&dbf.P{N: "nu", V: 0.3},
	}
	if o.Gau != nil {
		prms = append(prms, o.Gau.GetPrms()...)
	}
	return
}

// Register declares the fields produced by this model and requires the ones it consumes
func (o *Viscoplastic) Register(reg *Registry) (err error) {
	if err = reg.Declare(o.Opts.EffectiveName(), o.Name); err != nil {
		return
	}
	if err = reg.Declare(o.Opts.InelasticFieldName(), o.Name); err != nil {
		return
	}
	if err = reg.Require(o.Opts.PorosityName, o.Name); err != nil {
		return
	}
	return reg.Require(o.Opts.StrainIncName(), o.Name)
}

// InitState initialises the viscoplastic variables of a point participating for the first time
func (o *Viscoplastic) InitState(s *State) {
	s.Epe = 0
	s.EpsI = tensor.T2{}
	s.Dgam = 0
	s.Loading = false
	s.Nit = 0
}

// Propagate copies the old state forward when the point is not updated in this pass
func (o *Viscoplastic) Propagate(old, new *State) {
	new.Set(old)
}

// Trial computes the elastic trial state of a point
func (o *Viscoplastic) Trial(old *State, dt float64, Δε, Δεother tensor.T2) *Trial {
	return NewTrial(o.K, o.G, dt, old.Sig, Δε, Δεother)
}

// Update computes the new state for given trial state
func (o *Viscoplastic) Update(old, new *State, tr *Trial, loc Location) (err error) {

	// start from old values
	new.Set(old)
	new.Dgam, new.Loading, new.Nit = 0, false, 0

	// check input
	if e := o.Por.CheckOld(old.Por); e != nil {
		return &DomainError{Loc: loc, Msg: e.Error()}
	}
	if !tr.Sig.IsFinite() || !isFinite(tr.Dt) {
		return &DomainError{Loc: loc, Msg: "trial state is not finite"}
	}

	// solve
	law := o.newLaw(tr, old.Por)
	res, err := o.Rm.Solve(law, loc)
	new.Nit = res.Nit
	if err != nil {
		return
	}

	// final values
	x := res.Dp
	q, p, trΔεi, φ := law.invariants(ad.Cte(x))
	s := tr.S
	if tr.Q > 0 {
		s = tr.S.Scale(q.V / tr.Q)
	}
	Δεi := tr.S.Sub(s).Scale(1.0 / (2.0 * o.G)).AddIa(trΔεi.V / 3.0)
	if !Δεi.IsFinite() {
		return &DomainError{Loc: loc, Nit: res.Nit, Msg: "inelastic strain increment is not finite"}
	}

	// set new state
	new.Sig = s.AddIa(p.V)
	new.Epe = old.Epe + x
	new.EpsI = old.EpsI.Add(Δεi)
	new.Por = φ.V
	new.Dgam = x
	new.Loading = x > 0
	return
}

// TimeStepLimit returns the time step that would limit the increment of
// effective inelastic strain to MaxInc
func (o *Viscoplastic) TimeStepLimit(old, new *State, dt float64) float64 {
	Δ := new.Epe - old.Epe
	if Δ == 0 {
		return Unbounded
	}
	return dt * o.Opts.MaxInc / Δ
}

// UpdateIntermediatePorosity computes the porosity from all inelastic strain
// increments except the one being computed
//
//	φ = (1 - φold) tr(Δε - Δεe) + φold
func (o *Viscoplastic) UpdateIntermediatePorosity(φold, trΔε float64, trΔεe ad.Real) ad.Real {
	return o.Por.EvolveAD(φold, trΔεe.Neg().AddC(trΔε))
}

// vpLaw is the flow law of one point during one step
type vpLaw struct {
	mdl  *Viscoplastic
	tr   *Trial
	φold float64 // porosity of previous step
	aq   float64 // ∂Σ/∂q at trial state
	ap   float64 // ∂Σ/∂p at trial state
	ref  float64 // trial gauge stress
	hi   float64 // upper end of bracket
}

// newLaw allocates the flow law for given trial state
func (o *Viscoplastic) newLaw(tr *Trial, φold float64) (law *vpLaw) {
	law = &vpLaw{mdl: o, tr: tr, φold: φold}
	trΔεe := ad.Cte(tr.Dee.Tr())
	φ0 := o.UpdateIntermediatePorosity(φold, tr.Deps.Tr(), trΔεe)
	q, p := ad.Cte(tr.Q), ad.Cte(tr.P)
	law.ref = o.Gau.Sigma(q, p, φ0).V
	law.aq = o.Gau.Sigma(ad.Var(tr.Q), p, φ0).D
	law.ap = o.Gau.Sigma(q, ad.Var(tr.P), φ0).D
	var hq, hp float64
	if law.aq > 0 {
		hq = tr.Q / (3.0 * o.G * law.aq)
	}
	if law.ap != 0 {
		hp = math.Abs(tr.P) / (o.K * math.Abs(law.ap))
	}
	law.hi = math.Max(hq, hp)
	return
}

// invariants computes q, p, tr(Δεi) and the intermediate porosity for a guess x
func (o *vpLaw) invariants(x ad.Real) (q, p, trΔεi, φ ad.Real) {
	K, G, tr := o.mdl.K, o.mdl.G, o.tr
	q = ad.Max0(x.Scale(-3.0 * G * o.aq).AddC(tr.Q))
	p = ad.Cte(tr.P)
	if o.ap != 0 {
		sp := sign(tr.P)
		Δp := ad.Min(x.Scale(K*math.Abs(o.ap)), ad.Cte(math.Abs(tr.P)))
		p = Δp.Scale(-sp).AddC(tr.P)
		trΔεi = Δp.Scale(sp / K)
	}
	trΔεe := trΔεi.Neg().AddC(tr.Dee.Tr())
	φ = o.mdl.UpdateIntermediatePorosity(o.φold, tr.Deps.Tr(), trΔεe)
	return
}

// Residual returns R(x) = 3G (Δt rate(Σ(x)) - x)
func (o *vpLaw) Residual(x ad.Real) ad.Real {
	q, p, _, φ := o.invariants(x)
	Σ := o.mdl.Gau.Sigma(q, p, φ)
	return o.mdl.Gau.Rate(Σ).Scale(o.tr.Dt).Sub(x).Scale(3.0 * o.mdl.G)
}

// Reference returns the trial gauge stress
func (o *vpLaw) Reference() float64 { return o.ref }

// Bracket returns [0, hi] where hi relaxes all trial stresses
func (o *vpLaw) Bracket() (lo, hi float64) { return 0, o.hi }
