// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem runs the stress update of all integration points of a domain
// along a prescribed deformation path with adaptive time stepping
package fem

import (
	"context"
	"log/slog"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/errgroup"

	"github.com/mortezaaesmaeilpour/moose/inp"
	"github.com/mortezaaesmaeilpour/moose/par"
)

// RecorderMaker allocates the recorder of one partition
type RecorderMaker func(sim *inp.Simulation, rank int) (Recorder, error)

// FEM holds all data for a simulation
type FEM struct {
	Sim       *inp.Simulation // simulation data
	Summaries []*Summary      // [npart] summaries; nil if not saved
	Domains   []*Domain       // [npart] domains run by this process
	Solvers   []*Solver       // [npart] solvers
	Nproc     int             // number of partitions
	Proc      int             // rank of first partition run by this process
	Verbose   bool            // show messages
	Log       *slog.Logger    // logger
}

// NewFEM returns a new FEM structure
//
//	Input:
//	 simfilepath   -- simulation filename including full path; .sim, .json, .yaml or .toml
//	 alias         -- word to be appended to simulation key; e.g. when running multiple solutions
//	 erasePrev     -- erase previous results files
//	 saveSummary   -- save summary
//	 allowParallel -- allow parallel execution; otherwise, run in serial mode regardless whether MPI is on or not
//	 verbose       -- show messages
//	 log           -- logger; nil means slog.Default()
//	 newrec        -- allocates recorders; may be nil
func NewFEM(simfilepath, alias string, erasePrev, saveSummary, allowParallel, verbose bool, log *slog.Logger, newrec RecorderMaker) (o *FEM, err error) {

	// new FEM object
	o = &FEM{Log: log}
	if o.Log == nil {
		o.Log = slog.Default()
	}

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath, alias, erasePrev)
	if err != nil {
		return nil, err
	}

	// partitions
	var comms []par.Comm
	c := par.Comm(par.Serial{})
	if allowParallel {
		c = par.Get()
	}
	switch {
	case c.Size() > 1:
		comms = []par.Comm{c}
	case allowParallel && o.Sim.Data.Npart > 1:
		comms = par.NewGroup(o.Sim.Data.Npart)
	default:
		comms = []par.Comm{par.Serial{}}
	}
	o.Proc = comms[0].Rank()
	o.Nproc = comms[0].Size()
	o.Verbose = verbose && (o.Proc == 0)

	// allocate domains and solvers
	for _, comm := range comms {
		dom, e := NewDomain(o.Sim, comm, o.Log)
		if e != nil {
			o.Close()
			return nil, e
		}
		var sum *Summary
		if saveSummary {
			sum = new(Summary)
		}
		var rec Recorder
		if newrec != nil {
			rec, e = newrec(o.Sim, comm.Rank())
			if e != nil {
				o.Close()
				return nil, chk.Err("cannot allocate recorder of partition %d:\n%v", comm.Rank(), e)
			}
		}
		o.Domains = append(o.Domains, dom)
		o.Summaries = append(o.Summaries, sum)
		o.Solvers = append(o.Solvers, NewSolver(dom, sum, rec, o.Verbose && comm.Rank() == 0))
	}
	o.Log.Info("simulation allocated", "key", o.Sim.Key, "npart", o.Nproc, "local", len(o.Domains), "npts", len(o.Sim.Points))
	return
}

// Run runs the simulation. All partitions run concurrently
func (o *FEM) Run(ctx context.Context) (err error) {

	// time loops
	cputime := time.Now()
	var eg errgroup.Group
	for _, s := range o.Solvers {
		s := s
		eg.Go(func() error {
			return s.Run(ctx)
		})
	}
	err = eg.Wait()
	if err != nil {
		return
	}

	// message
	if o.Verbose {
		io.Pf("\n\n")
		if len(o.Summaries) > 0 && o.Summaries[0] != nil && len(o.Summaries[0].Times) > 0 {
			s := o.Summaries[0]
			io.Pf("\nfinal time = %v\n", s.Times[len(s.Times)-1])
			io.Pf("number of steps = %d\n", len(s.Times))
			io.Pf("number of cuts  = %d\n", s.Ncuts)
		}
		io.Pflmag("cpu time   = %v\n", time.Now().Sub(cputime))
	}

	// save summaries
	for i, sum := range o.Summaries {
		if sum == nil {
			continue
		}
		rank := o.Domains[i].Comm.Rank()
		err = sum.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Nproc, rank, o.Verbose && rank == 0)
		if err != nil {
			return
		}
	}
	return
}

// Close closes the recorders
func (o *FEM) Close() (err error) {
	for _, s := range o.Solvers {
		if s.Rec == nil {
			continue
		}
		if e := s.Rec.Close(); e != nil && err == nil {
			err = e
		}
		s.Rec = nil
	}
	return
}
