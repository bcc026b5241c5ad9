// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"log/slog"
	"runtime"

	"github.com/cpmech/gosl/chk"

	"github.com/mortezaaesmaeilpour/moose/inp"
	"github.com/mortezaaesmaeilpour/moose/mporous"
	"github.com/mortezaaesmaeilpour/moose/msolid"
	"github.com/mortezaaesmaeilpour/moose/par"
	"github.com/mortezaaesmaeilpour/moose/tensor"
)

// Domain holds the integration points of one partition and their states.
// Only points in this partition are recorded here
type Domain struct {

	// init: auxiliary variables
	Sim  *inp.Simulation // [from FEM] input data
	Comm par.Comm        // communicator of partitions
	Log  *slog.Logger    // logger

	// materials
	Mdl *msolid.Viscoplastic // stress update
	Por *mporous.Model       // porosity evolution
	Reg *msolid.Registry     // per-point fields

	// points in this partition
	Pids []int             // [npts] global ids of points
	Pts  []*inp.PointData  // [npts] input data of points
	Locs []msolid.Location // [npts] location of points for diagnostics
	Sto  *msolid.Store     // [npts] old and new states

	// results of last pass
	Errs  []error   // [npts] error of each point; nil if converged
	Dtlim []float64 // [npts] time step advised by each point

	// workers
	Nworkers int // number of workers of the parallel pass
}

// NewDomain allocates the points of partition comm.Rank()
func NewDomain(sim *inp.Simulation, comm par.Comm, log *slog.Logger) (o *Domain, err error) {

	// new domain
	o = &Domain{Sim: sim, Comm: comm, Log: log}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	o.Nworkers = sim.Data.Nworkers
	if o.Nworkers < 1 {
		o.Nworkers = runtime.NumCPU()
	}

	// porosity
	o.Por = new(mporous.Model)
	opts := sim.Mat.Opts
	opts.SetDefault()
	if err = o.Por.Init(opts.PorosityName, sim.Mat.Porosity); err != nil {
		return nil, err
	}

	// model
	o.Mdl, err = msolid.NewFactory().New(sim.Mat.Model, sim.Mat.Prms, opts, o.Por, o.Log)
	if err != nil {
		return nil, err
	}

	// fields
	o.Reg = msolid.NewRegistry()
	if err = o.Reg.Declare(o.Por.Name, "porosity"); err != nil {
		return nil, err
	}
	if err = o.Reg.Declare(msolid.StrainIncName(sim.Path.Base), "path"); err != nil {
		return nil, err
	}
	if err = o.Mdl.Register(o.Reg); err != nil {
		return nil, err
	}
	if err = o.Reg.Freeze(); err != nil {
		return nil, err
	}

	// points in this partition
	for pid, p := range sim.Points {
		if pid%comm.Size() != comm.Rank() {
			continue
		}
		o.Pids = append(o.Pids, pid)
		o.Pts = append(o.Pts, p)
		o.Locs = append(o.Locs, msolid.Location{Eid: p.Eid, Ipid: p.Ipid, Block: p.Block, X: p.Coords()})
	}

	// states
	npts := len(o.Pids)
	o.Sto = msolid.NewStore(npts)
	o.Errs = make([]error, npts)
	o.Dtlim = make([]float64, npts)
	for i, p := range o.Pts {
		var σ0 tensor.T2
		if p.Sig0 != nil {
			σ0 = tensor.Diag(p.Sig0[0], p.Sig0[1], p.Sig0[2])
		}
		o.Sto.Init(i, σ0, o.Por.Phi0)
		old, new := o.Sto.Pair(i)
		o.Mdl.InitState(old)
		o.Mdl.InitState(new)
	}
	return
}

// Npts returns the number of points in this partition
func (o *Domain) Npts() int { return len(o.Pids) }

// Kinematics returns the displacement gradients of point i for the step ending at t
func (o *Domain) Kinematics(i int, t, Δt float64) (kin msolid.Kinematics) {
	p := o.Pts[i]
	told := t - Δt
	if told < p.Tact {
		told = p.Tact
	}
	g := tensor.T2(o.Sim.Path.GradUat(t)).Scale(p.Scale)
	gold := tensor.T2(o.Sim.Path.GradUat(told)).Scale(p.Scale)
	kin.GradU, kin.GradUold = g, gold
	if o.Sim.Path.OneD {
		kin.OneD = true
		kin.YY, kin.ZZ = g[1][1], g[2][2]
		kin.YYo, kin.ZZo = gold[1][1], gold[2][2]
	}
	return
}

// update computes the new state of point i
func (o *Domain) update(i int, t, Δt float64) (err error) {
	o.Dtlim[i] = msolid.Unbounded
	old, new := o.Sto.Pair(i)

	// inactive point
	if t <= o.Pts[i].Tact {
		o.Mdl.Propagate(old, new)
		return
	}

	// strain increment
	kin := o.Kinematics(i, t, Δt)
	Δε, err := kin.StrainIncrement(o.Locs[i])
	if err != nil {
		return
	}

	// stress update
	tr := o.Mdl.Trial(old, Δt, Δε, tensor.T2{})
	if err = o.Mdl.Update(old, new, tr, o.Locs[i]); err != nil {
		return
	}
	o.Dtlim[i] = o.Mdl.TimeStepLimit(old, new, Δt)
	return
}

// Restore discards the new states of all points
func (o *Domain) Restore() { o.Sto.Restore() }

// Commit accepts the new states of all points
func (o *Domain) Commit() { o.Sto.Commit() }

// State returns the converged state of point i
func (o *Domain) State(i int) *msolid.State {
	if i < 0 || i >= o.Npts() {
		chk.Panic("point index %d is out of range", i)
	}
	old, _ := o.Sto.Pair(i)
	return old
}
