// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"golang.org/x/sync/errgroup"

	"github.com/mortezaaesmaeilpour/moose/msolid"
	"github.com/mortezaaesmaeilpour/moose/pproc"
)

// Outcome of a pass; larger is worse
type Outcome int

const (
	OK                   Outcome = iota // all points converged
	ConvergenceFailure                  // some point hit the iteration cap; retry with smaller step
	NumericalDomainError                // some point found a non-finite or singular value; retry with smaller step
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case ConvergenceFailure:
		return "convergence failure"
	case NumericalDomainError:
		return "numerical domain error"
	}
	return "unknown"
}

// Classify returns the outcome corresponding to the error of one point
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, msolid.ErrConvergence):
		return ConvergenceFailure
	}
	return NumericalDomainError
}

// PassResult holds the results of one pass over all points
type PassResult struct {
	Worst  Outcome // [global] worst outcome over all partitions
	DtLim  float64 // [global] minimum advised time step; Unbounded if no point constrains it
	Nfail  int     // [local] number of points that failed in this partition
	NitMax int     // [local] max number of iterations of local solver
	Err    error   // [local] errors of failed points in this partition; nil if none failed
}

// Pass updates all points for the step ending at t. Points are distributed among
// workers and never stop each other: each error is recorded in the slot of its
// point. All partitions must call Pass because the results are reduced globally
func (o *Domain) Pass(ctx context.Context, t, Δt float64) (res PassResult, err error) {

	// run workers
	for i := range o.Errs {
		o.Errs[i] = nil
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.Nworkers)
	for i := range o.Pids {
		i := i
		eg.Go(func() error {
			if e := ctx.Err(); e != nil {
				return e
			}
			o.Errs[i] = o.update(i, t, Δt)
			return nil
		})
	}
	err = eg.Wait()

	// collect local results
	res.DtLim = msolid.Unbounded
	var errs []error
	for i, e := range o.Errs {
		_, new := o.Sto.Pair(i)
		if new.Nit > res.NitMax {
			res.NitMax = new.Nit
		}
		if e != nil {
			res.Nfail++
			errs = append(errs, e)
			if c := Classify(e); c > res.Worst {
				res.Worst = c
			}
			continue
		}
		res.DtLim = utl.Min(res.DtLim, o.Dtlim[i])
	}
	res.Err = errors.Join(errs...)

	// global reductions
	res.Worst = Outcome(o.Comm.AllReduceMax(float64(res.Worst)))
	res.DtLim = o.Comm.AllReduceMin(res.DtLim)
	err = o.agree(err, "pass interrupted in another partition")
	return
}

// agree returns err or, if another partition failed, a new error; thus all
// partitions leave the time loop together. All partitions must call agree at
// the same point
func (o *Domain) agree(err error, msg string) error {
	failed := 0.0
	if err != nil {
		failed = 1
	}
	if o.Comm.AllReduceMax(failed) > 0 && err == nil {
		return chk.Err("%s", msg)
	}
	return err
}

// CflStep computes the CFL condition of all partitions. Each worker visits a
// chunk of points with its own copy of the postprocessor
func (o *Domain) CflStep(ctx context.Context, cfl *pproc.CflCondition) (dt float64, err error) {
	if err = cfl.Initialize(); err != nil {
		return
	}
	nw := o.Nworkers
	if nw > o.Npts() {
		nw = o.Npts()
	}
	threads := make([]*pproc.CflCondition, nw)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < nw; w++ {
		w := w
		threads[w] = cfl.Clone()
		eg.Go(func() error {
			for i := w; i < o.Npts(); i += nw {
				if e := ctx.Err(); e != nil {
					return e
				}
				p := o.Pts[i]
				vels := make([]la.Vector, len(p.Vel))
				for j, v := range p.Vel {
					vels[j] = la.Vector(v)
				}
				if e := threads[w].Execute(p.Hmin, vels); e != nil {
					return e
				}
			}
			return nil
		})
	}
	err = eg.Wait()
	for _, th := range threads {
		if e := cfl.ThreadJoin(th); e != nil && err == nil {
			err = e
		}
	}
	if e := cfl.Finalize(o.Comm); e != nil && err == nil {
		err = e
	}

	return cfl.Value(), o.agree(err, "CFL condition failed in another partition")
}
