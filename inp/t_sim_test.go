// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/vp01.sim", "", false)
	require.NoError(tst, err)
	if chk.Verbose {
		var buf bytes.Buffer
		sim.GetInfo(&buf)
		io.Pf("%s\n", buf.String())
	}

	require.Equal(tst, "vp01", sim.Key)
	require.Equal(tst, "json", sim.EncType)
	require.Equal(tst, "vp-norton", sim.Mat.Model)
	require.Len(tst, sim.Mat.Prms, 4)
	require.Equal(tst, "A", sim.Mat.Prms[2].N)
	chk.Float64(tst, "A", 1e-17, sim.Mat.Prms[2].V, 0.1)
	chk.Float64(tst, "maxinc", 1e-17, sim.Mat.Opts.MaxInc, 1e-3)
	require.Equal(tst, "porosity", sim.Mat.Opts.PorosityName)
	chk.Int(tst, "maxits", sim.Mat.Opts.MaxIts, 100)

	// solver and time control
	require.True(tst, sim.Solver.DvgCtrl)
	chk.Int(tst, "ndvgmax", sim.Solver.NdvgMax, 5)
	chk.Float64(tst, "dtmin", 1e-17, sim.Solver.DtMin, 1e-8)
	chk.Float64(tst, "tf", 1e-17, sim.Control.Tf, 2)
	chk.Float64(tst, "dt", 1e-17, sim.Control.Dt, 0.5)
	chk.Float64(tst, "dtmax", 1e-17, sim.Control.DtMax, 0.5)

	// points
	require.Len(tst, sim.Points, 2)
	chk.Float64(tst, "scale0", 1e-17, sim.Points[0].Scale, 1)
	chk.Float64(tst, "scale1", 1e-17, sim.Points[1].Scale, 2)
	x := sim.Points[1].Coords()
	chk.Array(tst, "x1", 1e-17, x[:], []float64{1.5, 0.5, 0})

	// path
	g := sim.Path.GradUat(0.5)
	chk.Float64(tst, "g00(0.5)", 1e-17, g[0][0], 0.005)
	chk.Float64(tst, "g11(0.5)", 1e-17, g[1][1], -0.0025)
	g = sim.Path.GradUat(2)
	chk.Float64(tst, "g00(2)", 1e-17, g[0][0], 0.01)
	chk.Float64(tst, "g22(2)", 1e-17, g[2][2], -0.005)
	chk.Float64(tst, "tmax", 1e-17, sim.Path.Tmax(), 1)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	// same data in all formats
	ref, err := ReadSim("data/vp01.sim", "", false)
	require.NoError(tst, err)
	for _, fn := range []string{"data/vp01.yaml", "data/vp01.toml"} {
		sim, err := ReadSim(fn, "", false)
		require.NoError(tst, err, fn)
		io.Pforan("%s: %+v\n", fn, sim.Data)
		require.Equal(tst, ref, sim, fn)
	}

	// alias
	sim, err := ReadSim("data/vp01.yaml", "run2", false)
	require.NoError(tst, err)
	require.Equal(tst, "vp01-run2", sim.Key)
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03")

	for _, fn := range []string{"data/bad01.sim", "data/bad02.sim", "data/nonexistent.sim"} {
		_, err := ReadSim(fn, "", false)
		io.Pforan("%s: %v\n", fn, err)
		require.Error(tst, err, fn)
	}

	var sim Simulation
	require.Error(tst, sim.decode([]byte("{}"), ".xml"))
	require.Error(tst, sim.PostProcess())
}
