// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the handling of simulation outputs; e.g. reading
// states saved at output times and the step history databases
package out

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mortezaaesmaeilpour/moose/fem"
	"github.com/mortezaaesmaeilpour/moose/msolid"
)

// TolT is the tolerance to compare times
var TolT = 1e-3

// Results holds the states of all points at all output times
type Results struct {
	Sum    fem.Summary            // summary of simulation
	States map[int][]msolid.State // [npts][nout] maps point id to its states at each output time
}

// Load reads the summary and the states saved by all partitions
func Load(dirout, fnkey, enctype string) (o *Results, err error) {

	// summary
	o = &Results{States: make(map[int][]msolid.State)}
	if err = o.Sum.Read(dirout, fnkey, enctype); err != nil {
		return nil, chk.Err("cannot read summary:\n%v", err)
	}
	nproc := o.Sum.Nproc
	if nproc < 1 {
		nproc = 1
	}

	// states
	nout := len(o.Sum.OutTimes)
	for tidx := 0; tidx < nout; tidx++ {
		for proc := 0; proc < nproc; proc++ {
			pids, states, e := fem.ReadIvs(dirout, fnkey, enctype, tidx, proc)
			if e != nil {
				return nil, chk.Err("cannot read states of partition %d at output %d:\n%v", proc, tidx, e)
			}
			for i, pid := range pids {
				if _, ok := o.States[pid]; !ok {
					o.States[pid] = make([]msolid.State, nout)
				}
				o.States[pid][tidx] = states[i]
			}
		}
	}
	return
}

// Times returns the output times
func (o *Results) Times() []float64 { return o.Sum.OutTimes }

// TimeIndex returns the index of the output time closest to t within TolT; -1 if none
func (o *Results) TimeIndex(t float64) int {
	for i, tout := range o.Sum.OutTimes {
		if t > tout-TolT && t < tout+TolT {
			return i
		}
	}
	return -1
}

// Get returns the values of key of point pid at all output times
func (o *Results) Get(key string, pid int) (res []float64, err error) {
	states, ok := o.States[pid]
	if !ok {
		return nil, chk.Err("cannot find point %d", pid)
	}
	calc, ok := Keys[key]
	if !ok {
		return nil, chk.Err("cannot find key %q", key)
	}
	res = make([]float64, len(states))
	for i := range states {
		res[i] = calc(&states[i])
	}
	return
}
