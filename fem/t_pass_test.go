// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mortezaaesmaeilpour/moose/msolid"
	"github.com/mortezaaesmaeilpour/moose/par"
)

func Test_domain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain01")

	sim := get_sim(tst, 3)
	dom, err := NewDomain(sim, par.Serial{}, nil)
	require.NoError(tst, err)
	require.Equal(tst, 3, dom.Npts())
	require.Equal(tst, []int{0, 1, 2}, dom.Pids)
	require.Equal(tst, []string{"effective_viscoplasticity", "porosity", "strain_increment", "viscoplasticity"}, dom.Reg.Names())
	for i := 0; i < 3; i++ {
		s := dom.State(i)
		require.Equal(tst, 0.0, s.Epe)
		require.Equal(tst, 0.0, s.Por)
	}

	// partitions
	comms := par.NewGroup(2)
	d0, err := NewDomain(sim, comms[0], nil)
	require.NoError(tst, err)
	d1, err := NewDomain(sim, comms[1], nil)
	require.NoError(tst, err)
	require.Equal(tst, []int{0, 2}, d0.Pids)
	require.Equal(tst, []int{1}, d1.Pids)
	require.Equal(tst, 1, d1.Locs[0].Eid)

	// inconsistent field names
	sim.Path.Base = "total"
	_, err = NewDomain(sim, par.Serial{}, nil)
	require.Error(tst, err)
	require.True(tst, errors.Is(err, msolid.ErrConfiguration))
	io.Pforan("err = %v\n", err)

	// unknown model
	sim.Path.Base = ""
	sim.Mat.Model = "vp-unknown"
	_, err = NewDomain(sim, par.Serial{}, nil)
	require.True(tst, errors.Is(err, msolid.ErrConfiguration))
}

func Test_domain02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain02")

	sim := get_sim(tst, 1)
	sim.Points[0].Scale = 2
	sim.Points[0].Tact = 0.25
	dom, err := NewDomain(sim, par.Serial{}, nil)
	require.NoError(tst, err)

	kin := dom.Kinematics(0, 0.5, 0.5)
	chk.Float64(tst, "xx", 1e-15, kin.GradU[0][0], 0.01)
	chk.Float64(tst, "yy", 1e-15, kin.GradU[1][1], -0.005)
	chk.Float64(tst, "xx old", 1e-15, kin.GradUold[0][0], 0.005)
	require.False(tst, kin.OneD)

	sim.Path.OneD = true
	kin = dom.Kinematics(0, 1, 0.5)
	require.True(tst, kin.OneD)
	chk.Float64(tst, "YY", 1e-15, kin.YY, -0.01)
	chk.Float64(tst, "ZZo", 1e-15, kin.ZZo, -0.005)

	// inactive point keeps its state
	res, err := dom.Pass(context.Background(), 0.25, 0.25)
	require.NoError(tst, err)
	require.Equal(tst, OK, res.Worst)
	require.Equal(tst, msolid.Unbounded, res.DtLim)
	_, new := dom.Sto.Pair(0)
	require.Equal(tst, 0.0, new.Epe)
}

func Test_pass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pass01")

	sim := get_sim(tst, 3)
	dom, err := NewDomain(sim, par.Serial{}, nil)
	require.NoError(tst, err)

	// first half of the path
	res, err := dom.Pass(context.Background(), 0.5, 0.5)
	require.NoError(tst, err)
	require.Equal(tst, OK, res.Worst)
	require.Equal(tst, 0, res.Nfail)
	require.Nil(tst, res.Err)
	require.True(tst, res.DtLim > 0 && res.DtLim < msolid.Unbounded)
	require.True(tst, res.NitMax >= 1)
	for i := 0; i < 3; i++ {
		_, new := dom.Sto.Pair(i)
		require.True(tst, new.Epe > 0)
		require.Equal(tst, 0.0, dom.State(i).Epe)
	}
	_, n0 := dom.Sto.Pair(0)
	_, n2 := dom.Sto.Pair(2)
	require.Equal(tst, *n0, *n2)

	// restore and commit
	dom.Restore()
	_, new := dom.Sto.Pair(1)
	require.Equal(tst, 0.0, new.Epe)
	_, err = dom.Pass(context.Background(), 0.5, 0.5)
	require.NoError(tst, err)
	dom.Commit()
	require.Equal(tst, n0.Epe, dom.State(0).Epe)
	require.Panics(tst, func() { dom.State(3) })
}

func Test_pass02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pass02")

	sim := get_sim(tst, 3)
	sim.Points[1].Sig0 = []float64{math.NaN(), 0, 0}
	dom, err := NewDomain(sim, par.Serial{}, nil)
	require.NoError(tst, err)

	res, err := dom.Pass(context.Background(), 0.5, 0.5)
	require.NoError(tst, err)
	require.Equal(tst, NumericalDomainError, res.Worst)
	require.Equal(tst, 1, res.Nfail)
	require.True(tst, errors.Is(res.Err, msolid.ErrNumericalDomain))
	var derr *msolid.DomainError
	require.True(tst, errors.As(res.Err, &derr))
	require.Equal(tst, 1, derr.Loc.Eid)
	io.Pforan("err = %v\n", res.Err)

	// other points are not affected
	require.Nil(tst, dom.Errs[0])
	require.Nil(tst, dom.Errs[2])
	_, new := dom.Sto.Pair(2)
	require.True(tst, new.Epe > 0)
	require.True(tst, res.DtLim < msolid.Unbounded)

	// cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dom.Pass(ctx, 0.5, 0.5)
	require.ErrorIs(tst, err, context.Canceled)
}

func Test_pass03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pass03")

	require.Equal(tst, OK, Classify(nil))
	require.Equal(tst, ConvergenceFailure, Classify(&msolid.ConvergenceError{Nit: 3}))
	require.Equal(tst, ConvergenceFailure, Classify(fmt.Errorf("point 1: %w", &msolid.ConvergenceError{})))
	require.Equal(tst, NumericalDomainError, Classify(&msolid.DomainError{}))
	require.Equal(tst, NumericalDomainError, Classify(errors.New("unknown")))
	require.Equal(tst, "ok", OK.String())
	require.Equal(tst, "convergence failure", ConvergenceFailure.String())
	require.Equal(tst, "numerical domain error", NumericalDomainError.String())
	require.Equal(tst, "unknown", Outcome(7).String())
}

func Test_pass04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pass04")

	// point 3 fails in partition 1
	sim := get_sim(tst, 4)
	sim.Points[3].Sig0 = []float64{0, math.Inf(1), 0}
	comms := par.NewGroup(2)
	doms := make([]*Domain, 2)
	for i, c := range comms {
		var err error
		doms[i], err = NewDomain(sim, c, nil)
		require.NoError(tst, err)
	}

	// all partitions get the same decision
	results := make([]PassResult, 2)
	var eg errgroup.Group
	for i := range doms {
		i := i
		eg.Go(func() (err error) {
			results[i], err = doms[i].Pass(context.Background(), 0.5, 0.5)
			return
		})
	}
	require.NoError(tst, eg.Wait())
	for i := range results {
		require.Equal(tst, NumericalDomainError, results[i].Worst)
	}
	require.Equal(tst, 0, results[0].Nfail)
	require.Equal(tst, 1, results[1].Nfail)
	require.Nil(tst, results[0].Err)
	require.Equal(tst, results[0].DtLim, results[1].DtLim)
}

func Test_pass05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pass05")

	// velocities in partitions 0 and 1
	sim := get_sim(tst, 5)
	sim.Points[0].Vel = [][]float64{{1, 0, 0}}
	sim.Points[1].Vel = [][]float64{{0, 4, 0}, {0, 0, 1}}
	sim.Points[2].Vel = [][]float64{{3, 4, 0}}
	sim.Points[3].Vel = [][]float64{{0, 0, 0}}

	// serial
	dom, err := NewDomain(sim, par.Serial{}, nil)
	require.NoError(tst, err)
	cfl := NewSolver(dom, nil, nil, false).Cfl
	require.Nil(tst, cfl)
	sim.Data.Cfl = true
	cfl = NewSolver(dom, nil, nil, false).Cfl
	require.NotNil(tst, cfl)
	dt, err := dom.CflStep(context.Background(), cfl)
	require.NoError(tst, err)
	chk.Float64(tst, "dt", 1e-15, dt, 0.1)
	require.Equal(tst, 5, cfl.Nelem())

	// partitions
	comms := par.NewGroup(2)
	dts := make([]float64, 2)
	var eg errgroup.Group
	for i, c := range comms {
		i := i
		d, err := NewDomain(sim, c, nil)
		require.NoError(tst, err)
		eg.Go(func() (err error) {
			dts[i], err = d.CflStep(context.Background(), NewSolver(d, nil, nil, false).Cfl)
			return
		})
	}
	require.NoError(tst, eg.Wait())
	chk.Float64(tst, "dt0", 1e-15, dts[0], 0.1)
	chk.Float64(tst, "dt1", 1e-15, dts[1], 0.1)

	// no velocity
	for _, p := range sim.Points {
		p.Vel = nil
	}
	dt, err = dom.CflStep(context.Background(), cfl)
	require.NoError(tst, err)
	require.Equal(tst, msolid.Unbounded, dt)
}
