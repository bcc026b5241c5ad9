// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/mortezaaesmaeilpour/moose/msolid"
)

// Keys maps result keys to functions computing them from a state
var Keys = map[string]func(s *msolid.State) float64{
	"sx":   func(s *msolid.State) float64 { return s.Sig[0][0] },
	"sy":   func(s *msolid.State) float64 { return s.Sig[1][1] },
	"sz":   func(s *msolid.State) float64 { return s.Sig[2][2] },
	"sxy":  func(s *msolid.State) float64 { return s.Sig[0][1] },
	"p":    func(s *msolid.State) float64 { return s.Sig.P() },
	"q":    func(s *msolid.State) float64 { return s.Sig.Q() },
	"epe":  func(s *msolid.State) float64 { return s.Epe },
	"eix":  func(s *msolid.State) float64 { return s.EpsI[0][0] },
	"eiv":  func(s *msolid.State) float64 { return s.EpsI.Tr() },
	"por":  func(s *msolid.State) float64 { return s.Por },
	"dgam": func(s *msolid.State) float64 { return s.Dgam },
	"nit":  func(s *msolid.State) float64 { return float64(s.Nit) },
}

// KeyNames returns the sorted names of all keys
func KeyNames() (names []string) {
	for k := range Keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

// Pids returns the sorted ids of all points in results
func (o *Results) Pids() (pids []int) {
	for pid := range o.States {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return
}

// GetAll returns the values of key of all points at output index tidx; use
// -1 for the last output. Values are ordered by point id
func (o *Results) GetAll(key string, tidx int) (res []float64, err error) {
	if tidx < 0 {
		tidx = len(o.Sum.OutTimes) - 1
	}
	if tidx < 0 || tidx >= len(o.Sum.OutTimes) {
		return nil, chk.Err("output index %d is out of range", tidx)
	}
	calc, ok := Keys[key]
	if !ok {
		return nil, chk.Err("cannot find key %q", key)
	}
	for _, pid := range o.Pids() {
		res = append(res, calc(&o.States[pid][tidx]))
	}
	return
}

// Integrate integrates key of point pid over all output times
func (o *Results) Integrate(key string, pid int) (res float64, err error) {
	y, err := o.Get(key, pid)
	if err != nil {
		return
	}
	if len(y) < 2 {
		return 0, nil
	}
	return num.Trapz(o.Sum.OutTimes, y), nil
}
