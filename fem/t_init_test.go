// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"

	"github.com/mortezaaesmaeilpour/moose/inp"
	"github.com/mortezaaesmaeilpour/moose/msolid"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// get_sim returns a simulation with npts points under uniaxial extension
// using a linear Norton law with K = 200, G = 100 and A = 0.1
func get_sim(tst *testing.T, npts int) *inp.Simulation {
	sim := new(inp.Simulation)
	sim.Solver.SetDefault()
	sim.Data.Encoder = "json"
	sim.Data.Nworkers = 2
	sim.Mat = inp.MatData{
		Model: "vp-norton",
		Prms: dbf.Params{
			&dbf.P{N: "K", V: 200},
			&dbf.P{N: "G", V: 100},
			&dbf.P{N: "A", V: 0.1},
			&dbf.P{N: "n", V: 1},
		},
		Porosity: dbf.Params{&dbf.P{N: "phi0", V: 0}},
		Opts:     msolid.Options{MaxInc: 1e-3},
	}
	sim.Control.Tf = 2
	sim.Control.Dt = 0.5
	sim.Path.Times = []float64{0, 1}
	sim.Path.GradU = [][]float64{
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0.01, 0, 0, 0, -0.005, 0, 0, 0, -0.005},
	}
	for i := 0; i < npts; i++ {
		sim.Points = append(sim.Points, &inp.PointData{Eid: i, X: []float64{float64(i)}, Hmin: 0.5})
	}
	sim.DirOut = tst.TempDir()
	sim.Key = "test"
	require.NoError(tst, sim.PostProcess())
	return sim
}

// memRecorder keeps recorded steps in memory
type memRecorder struct {
	mu     sync.Mutex
	steps  []StepData
	ips    [][]OutIpData
	fail   bool
	closed bool
}

func (o *memRecorder) Record(step *StepData, ips []OutIpData) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return chk.Err("disk is full")
	}
	o.steps = append(o.steps, *step)
	o.ips = append(o.ips, ips)
	return nil
}

func (o *memRecorder) Close() error {
	o.closed = true
	return nil
}
