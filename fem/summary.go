// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records summary of outputs
type Summary struct {

	// main data
	Nproc    int       // number of partitions used in last run; equal to 1 if not distributed
	OutTimes []float64 // [nOutTimes] output times
	Dirout   string    // directory where results are stored
	Fnkey    string    // filename key of simulation

	// steps
	Times  []float64 // [nsteps] converged times
	Dts    []float64 // [nsteps] time steps
	DtLims []float64 // [nsteps] time step advised by material after each step
	Cfls   []float64 // [nsteps] CFL time step after each step; Unbounded if not computed
	Ncuts  int       // number of time step cuts
}

// Save saves summary to disc
func (o *Summary) Save(dirout, fnkey, enctype string, nproc, proc int, verbose bool) (err error) {

	// set flags before saving
	o.Nproc = nproc
	o.Dirout = dirout
	o.Fnkey = fnkey

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary\n%v", err)
	}

	// save file
	fn := out_sum_path(dirout, fnkey, enctype, proc)
	return save_file(fn, &buf, verbose)
}

// Read reads summary back
func (o *Summary) Read(dir, fnkey, enctype string) (err error) {

	// open file
	fn := out_sum_path(dir, fnkey, enctype, 0) // reading always from proc # 0
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); e != nil && err == nil {
			err = e
		}
	}()

	// decode summary
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string, proc int) string {
	return filepath.Join(dir, io.Sf("%s_p%d_sum.%s", fnkey, proc, enctype))
}
