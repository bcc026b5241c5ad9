// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"log/slog"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/mortezaaesmaeilpour/moose/msolid"
	"github.com/mortezaaesmaeilpour/moose/pproc"
)

// StepData holds data of one converged step
type StepData struct {
	Tidx   int     // step index
	Time   float64 // time at end of step
	Dt     float64 // time step
	DtLim  float64 // time step advised by material
	Cfl    float64 // CFL time step; Unbounded if not computed
	Ncuts  int     // number of cuts before this step converged
	NitMax int     // max number of iterations of local solver
}

// OutIpData holds the converged data of one integration point
type OutIpData struct {
	Pid     int     // global id of point
	Eid     int     // element id
	Ipid    int     // integration point index
	Block   int     // subdomain id
	Epe     float64 // effective inelastic strain
	Por     float64 // porosity
	Q       float64 // von Mises stress
	P       float64 // mean stress
	Nit     int     // iterations of local solver
	Loading bool    // inelastic flow happened
}

// Recorder receives the results of converged steps; e.g. a database
type Recorder interface {
	Record(step *StepData, ips []OutIpData) error
	Close() error
}

// Solver runs the time loop of one partition with divergence control
type Solver struct {
	Dom     *Domain             // points of this partition
	Sum     *Summary            // summary; may be nil
	Rec     Recorder            // step history; may be nil
	Cfl     *pproc.CflCondition // CFL postprocessor; nil if not computed
	Log     *slog.Logger        // logger
	Verbose bool                // show messages
}

// NewSolver returns a new solver
func NewSolver(dom *Domain, sum *Summary, rec Recorder, verbose bool) (o *Solver) {
	o = &Solver{Dom: dom, Sum: sum, Rec: rec, Log: dom.Log, Verbose: verbose}
	if dom.Sim.Data.Cfl {
		o.Cfl = pproc.NewCflCondition()
	}
	return
}

// Run runs the time loop. Decisions depend only on globally reduced values;
// thus all partitions take the same steps
func (o *Solver) Run(ctx context.Context) (err error) {

	// auxiliary
	sim := o.Dom.Sim
	md := 1.0    // time step multiplier if divergence control is on
	ndiverg := 0 // number of steps diverging
	ncuts := 0   // number of cuts of current step

	// time control
	t := 0.0
	tf := sim.Control.Tf
	tout := 0.0
	tidx := 0
	Δtadv := msolid.Unbounded

	// output initial state
	if err = o.output(tidx, t); err != nil {
		return
	}
	tout += sim.Control.DtOut

	// time loop
	var Δt float64
	var lasttimestep bool
	for t < tf {

		// check for continued divergence
		if ndiverg >= sim.Solver.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached", ndiverg)
		}

		// time increment
		Δt = utl.Min(sim.Control.Dt*md, sim.Control.DtMax)
		if sim.Solver.UseAdv {
			Δt = utl.Min(Δt, Δtadv)
		}
		lasttimestep = false
		if t+Δt >= tf-sim.Solver.DtMin {
			Δt = tf - t
			lasttimestep = true
		}
		if Δt < sim.Solver.DtMin {
			if lasttimestep {
				return // remainder of tf is negligible
			}
			return chk.Err("Δt increment is too small: %g < %g", Δt, sim.Solver.DtMin)
		}

		// message
		if o.Verbose {
			io.PfWhite("%30.15f\r", t+Δt)
		}

		// update all points; an interrupted pass stops all partitions
		res, e := o.Dom.Pass(ctx, t+Δt, Δt)
		if e != nil {
			return e
		}

		// restore states and reduce time step if divergence control is on
		if res.Worst != OK {
			o.Log.Warn("pass failed", "rank", o.Dom.Comm.Rank(), "t", t+Δt, "dt", Δt, "outcome", res.Worst.String(), "nfail", res.Nfail)
			if res.Err != nil {
				o.Log.Debug("failed points", "rank", o.Dom.Comm.Rank(), "err", res.Err)
			}
			if !sim.Solver.DvgCtrl {
				if res.Err != nil {
					return res.Err
				}
				return chk.Err("pass failed in another partition: %v", res.Worst)
			}
			if o.Verbose {
				io.Pfred(". . . local updates failing (%2d) . . .\n", ndiverg+1)
			}
			o.Dom.Restore()
			md *= sim.Solver.DtCut
			ndiverg++
			ncuts++
			if o.Sum != nil {
				o.Sum.Ncuts++
			}
			continue
		}

		// accept step
		o.Dom.Commit()
		t += Δt
		tidx++
		ndiverg = 0
		md = utl.Min(md*sim.Solver.DtGrow, 1)
		Δtadv = res.DtLim

		// CFL condition
		cfl := pproc.Unbounded
		if o.Cfl != nil {
			cfl, err = o.Dom.CflStep(ctx, o.Cfl)
			if err != nil {
				return
			}
			Δtadv = utl.Min(Δtadv, cfl)
		}
		o.Log.Debug("step converged", "rank", o.Dom.Comm.Rank(), "tidx", tidx, "t", t, "dt", Δt, "dtlim", res.DtLim, "cfl", cfl, "nitmax", res.NitMax)

		// summary and history
		if o.Sum != nil {
			o.Sum.Times = append(o.Sum.Times, t)
			o.Sum.Dts = append(o.Sum.Dts, Δt)
			o.Sum.DtLims = append(o.Sum.DtLims, res.DtLim)
			o.Sum.Cfls = append(o.Sum.Cfls, cfl)
		}
		o.record(&StepData{Tidx: tidx, Time: t, Dt: Δt, DtLim: res.DtLim, Cfl: cfl, Ncuts: ncuts, NitMax: res.NitMax})
		ncuts = 0

		// perform output
		if t >= tout || lasttimestep {
			if err = o.output(tidx, t); err != nil {
				return
			}
			tout += sim.Control.DtOut
		}
	}
	return
}

// output saves states at output times. All partitions fail if one of them
// cannot save its states
func (o *Solver) output(tidx int, t float64) (err error) {
	if o.Sum != nil {
		o.Sum.OutTimes = append(o.Sum.OutTimes, t)
		err = o.Dom.SaveIvs(len(o.Sum.OutTimes)-1, false)
	}
	return o.Dom.agree(err, "cannot save states in another partition")
}

// record sends converged data to the recorder. A failing recorder is disabled
// so that partitions keep taking the same steps
func (o *Solver) record(step *StepData) {
	if o.Rec == nil {
		return
	}
	ips := make([]OutIpData, o.Dom.Npts())
	for i, pid := range o.Dom.Pids {
		s := o.Dom.State(i)
		p := o.Dom.Pts[i]
		ips[i] = OutIpData{Pid: pid, Eid: p.Eid, Ipid: p.Ipid, Block: p.Block,
			Epe: s.Epe, Por: s.Por, Q: s.Sig.Q(), P: s.Sig.P(), Nit: s.Nit, Loading: s.Loading}
	}
	if err := o.Rec.Record(step, ips); err != nil {
		o.Log.Error("cannot record step; history is disabled", "rank", o.Dom.Comm.Rank(), "err", err)
		if e := o.Rec.Close(); e != nil {
			o.Log.Error("cannot close history", "rank", o.Dom.Comm.Rank(), "err", e)
		}
		o.Rec = nil
	}
}
