// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON, YAML or TOML file
package inp

import (
	"bytes"
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gopkg.in/yaml.v3"

	"github.com/mortezaaesmaeilpour/moose/msolid"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc" yaml:"desc" toml:"desc"`             // description of simulation
	DirOut   string `json:"dirout" yaml:"dirout" toml:"dirout"`       // directory for output; e.g. /tmp/vpsim
	Encoder  string `json:"encoder" yaml:"encoder" toml:"encoder"`    // encoder name of summary; e.g. "gob" "json"
	History  bool   `json:"history" yaml:"history" toml:"history"`    // save step history to sqlite database
	Nworkers int    `json:"nworkers" yaml:"nworkers" toml:"nworkers"` // number of workers of the parallel pass; 0 => number of CPUs
	Npart    int    `json:"npart" yaml:"npart" toml:"npart"`          // number of partitions simulated in this process; 0 or 1 => one partition
	Cfl      bool   `json:"cfl" yaml:"cfl" toml:"cfl"`                // compute CFL condition each step
}

// MatData holds the material of all points
type MatData struct {
	Model    string         `json:"model" yaml:"model" toml:"model"`          // model name; e.g. "vp-norton", "vp-porous-norton"
	Prms     dbf.Params     `json:"prms" yaml:"prms" toml:"prms"`             // model parameters
	Porosity dbf.Params     `json:"porosity" yaml:"porosity" toml:"porosity"` // parameters of porosity evolution
	Opts     msolid.Options `json:"options" yaml:"options" toml:"options"`    // options of stress update
}

// SolverData holds data of the stepping controller
type SolverData struct {
	DvgCtrl bool    `json:"dvgctrl" yaml:"dvgctrl" toml:"dvgctrl"` // use divergence control: cut time step when points fail
	NdvgMax int     `json:"ndvgmax" yaml:"ndvgmax" toml:"ndvgmax"` // max number of continued divergence
	DtMin   float64 `json:"dtmin" yaml:"dtmin" toml:"dtmin"`       // minimum value of Dt
	DtCut   float64 `json:"dtcut" yaml:"dtcut" toml:"dtcut"`       // multiplier of Dt after divergence
	DtGrow  float64 `json:"dtgrow" yaml:"dtgrow" toml:"dtgrow"`    // max multiplier of Dt after convergence
	UseAdv  bool    `json:"useadv" yaml:"useadv" toml:"useadv"`    // use the time step advised by the material and CFL condition
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf    float64 `json:"tf" yaml:"tf" toml:"tf"`          // final time
	Dt    float64 `json:"dt" yaml:"dt" toml:"dt"`          // initial time step size
	DtMax float64 `json:"dtmax" yaml:"dtmax" toml:"dtmax"` // maximum time step size; 0 => Dt
	DtOut float64 `json:"dtout" yaml:"dtout" toml:"dtout"` // time step size for output; 0 => every step
}

// PathData holds the history of displacement gradients applied to all points.
// Values between given times are interpolated linearly; after the last time
// the last value is kept
type PathData struct {
	Times []float64   `json:"times" yaml:"times" toml:"times"` // [ntimes] times; first one must be zero
	GradU [][]float64 `json:"gradu" yaml:"gradu" toml:"gradu"` // [ntimes][9] row-major ∇u at each time
	OneD  bool        `json:"oned" yaml:"oned" toml:"oned"`    // one-dimensional problem: yy and zz components are hoop terms; e.g. u_r/r
	Base  string      `json:"base" yaml:"base" toml:"base"`    // base name of the strain increment field produced by the path
}

// PointData holds data of one integration point
type PointData struct {
	Eid   int         `json:"eid" yaml:"eid" toml:"eid"`       // element id
	Ipid  int         `json:"ipid" yaml:"ipid" toml:"ipid"`    // integration point index
	Block int         `json:"block" yaml:"block" toml:"block"` // subdomain id
	X     []float64   `json:"x" yaml:"x" toml:"x"`             // coordinates
	Scale float64     `json:"scale" yaml:"scale" toml:"scale"` // multiplier of path gradients; 0 => 1
	Sig0  []float64   `json:"sig0" yaml:"sig0" toml:"sig0"`    // [3] initial principal stresses (diagonal)
	Hmin  float64     `json:"hmin" yaml:"hmin" toml:"hmin"`    // characteristic length of element
	Vel   [][]float64 `json:"vel" yaml:"vel" toml:"vel"`       // velocities sampled at element points
	Tact  float64     `json:"tact" yaml:"tact" toml:"tact"`    // activation time; the point keeps its initial state before
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data         `json:"data" yaml:"data" toml:"data"`             // stores global simulation data
	Mat     MatData      `json:"material" yaml:"material" toml:"material"` // material of all points
	Solver  SolverData   `json:"solver" yaml:"solver" toml:"solver"`       // stepping controller data
	Control TimeControl  `json:"control" yaml:"control" toml:"control"`    // time control
	Path    PathData     `json:"path" yaml:"path" toml:"path"`             // loading path
	Points  []*PointData `json:"points" yaml:"points" toml:"points"`       // integration points

	// derived
	DirOut  string `json:"-" yaml:"-" toml:"-"` // directory to save results
	Key     string `json:"-" yaml:"-" toml:"-"` // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType string `json:"-" yaml:"-" toml:"-"` // encoder type
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// ReadSim reads all simulation data from a .sim (JSON), .yaml/.yml or .toml file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q: %v", simfilepath, err)
	}

	// set default values
	o = new(Simulation)
	o.Solver.SetDefault()

	// decode
	if err = o.decode(b, filepath.Ext(simfilepath)); err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// filename key
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = os.ExpandEnv(o.Data.DirOut)
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "vpsim", fnkey)
	}

	// create directory and erase previous simulation results
	if erasefiles {
		if err = os.MkdirAll(o.DirOut, 0777); err != nil {
			return nil, chk.Err("ReadSim: cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		for _, pat := range []string{o.Key + ".*", o.Key + "_p*"} {
			old, _ := filepath.Glob(filepath.Join(o.DirOut, pat))
			for _, fn := range old {
				os.Remove(fn)
			}
		}
	}

	// check and fix data
	if err = o.PostProcess(); err != nil {
		return nil, chk.Err("ReadSim: %v", err)
	}
	return
}

// decode unmarshals b according to file extension
func (o *Simulation) decode(b []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".sim", ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(o)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		return dec.Decode(o)
	case ".toml":
		md, err := toml.Decode(string(b), o)
		if err != nil {
			return err
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return chk.Err("unknown keys %v", undec)
		}
		return nil
	}
	return chk.Err("file extension %q is not supported; use .sim, .json, .yaml, .yml or .toml", ext)
}

// PostProcess sets default values and checks the just read data
func (o *Simulation) PostProcess() (err error) {

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// material
	if o.Mat.Model == "" {
		return chk.Err("material model must be given")
	}
	o.Mat.Opts.SetDefault()

	// solver
	o.Solver.PostProcess()

	// fix Tf and Dt
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}
	if o.Control.Dt < 1e-14 {
		o.Control.Dt = 1
	}
	if o.Control.DtMax < o.Control.Dt {
		o.Control.DtMax = o.Control.Dt
	}
	if o.Control.DtOut > 0 && o.Control.DtOut < o.Control.Dt {
		o.Control.DtOut = o.Control.Dt
	}
	if o.Solver.DtMin > o.Control.Dt {
		return chk.Err("dtmin = %g must not be greater than dt = %g", o.Solver.DtMin, o.Control.Dt)
	}

	// path
	np := len(o.Path.Times)
	if np == 0 {
		return chk.Err("path must have at least one time")
	}
	if len(o.Path.GradU) != np {
		return chk.Err("path: number of gradients (%d) must be equal to number of times (%d)", len(o.Path.GradU), np)
	}
	if o.Path.Times[0] != 0 {
		return chk.Err("path: first time must be zero. %g is invalid", o.Path.Times[0])
	}
	for i, g := range o.Path.GradU {
		if len(g) != 9 {
			return chk.Err("path: gradient %d must have 9 components. %d is invalid", i, len(g))
		}
		if i > 0 && o.Path.Times[i] <= o.Path.Times[i-1] {
			return chk.Err("path: times must be increasing. t[%d] = %g is invalid", i, o.Path.Times[i])
		}
	}

	// points
	if len(o.Points) == 0 {
		return chk.Err("at least one point must be given")
	}
	for i, p := range o.Points {
		if p.Scale == 0 {
			p.Scale = 1
		}
		if len(p.X) > 3 {
			return chk.Err("point %d: at most 3 coordinates may be given", i)
		}
		if p.Sig0 != nil && len(p.Sig0) != 3 {
			return chk.Err("point %d: sig0 must have 3 components", i)
		}
		if o.Data.Cfl && p.Hmin <= 0 {
			return chk.Err("point %d: hmin must be positive when computing the CFL condition", i)
		}
		for j, v := range p.Vel {
			if len(v) > 3 {
				return chk.Err("point %d: velocity %d must have at most 3 components", i, j)
			}
		}
	}
	return
}

// GradUat returns ∇u at time t
func (o *PathData) GradUat(t float64) (g [3][3]float64) {
	n := len(o.Times)
	k := 0
	for k < n-1 && o.Times[k+1] <= t {
		k++
	}
	a := o.GradU[k]
	if k == n-1 {
		for i := 0; i < 9; i++ {
			g[i/3][i%3] = a[i]
		}
		return
	}
	b := o.GradU[k+1]
	ξ := (t - o.Times[k]) / (o.Times[k+1] - o.Times[k])
	ξ = utl.Max(0, utl.Min(1, ξ))
	for i := 0; i < 9; i++ {
		g[i/3][i%3] = (1-ξ)*a[i] + ξ*b[i]
	}
	return
}

// Tmax returns the last time of the path
func (o *PathData) Tmax() float64 {
	if len(o.Times) == 0 {
		return 0
	}
	return o.Times[len(o.Times)-1]
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// Coords returns the coordinates of a point padded to 3 components
func (o *PointData) Coords() (x [3]float64) {
	copy(x[:], o.X)
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.DvgCtrl = true
	o.NdvgMax = 20
	o.DtMin = 1e-8
	o.DtCut = 0.5
	o.DtGrow = 2.0
	o.UseAdv = true
}

// PostProcess fixes invalid multipliers
func (o *SolverData) PostProcess() {
	if o.DtCut <= 0 || o.DtCut >= 1 {
		o.DtCut = 0.5
	}
	if o.DtGrow < 1 {
		o.DtGrow = 1
	}
	if o.NdvgMax < 1 {
		o.NdvgMax = 1
	}
	o.DtMin = math.Abs(o.DtMin)
}
