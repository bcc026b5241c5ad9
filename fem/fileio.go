// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mortezaaesmaeilpour/moose/msolid"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveIvs saves the converged states of points to a file which name is set with tidx (time output index)
func (o Domain) SaveIvs(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// points that go to file
	err = enc.Encode(o.Pids)
	if err != nil {
		return chk.Err("cannot encode ids of points\n%v", err)
	}

	// encode states
	err = enc.Encode(o.Sto.Old)
	if err != nil {
		return chk.Err("cannot encode states\n%v", err)
	}

	// save file
	fn := out_ivs_path(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, tidx, o.Comm.Rank())
	return save_file(fn, &buf, verbose)
}

// ReadIvs reads the states of points from a file which name is set with tidx (time output index)
func ReadIvs(dir, fnkey, enctype string, tidx, proc int) (pids []int, states []msolid.State, err error) {

	// open file
	fn := out_ivs_path(dir, fnkey, enctype, tidx, proc)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); e != nil && err == nil {
			err = e
		}
	}()

	// decoder
	dec := GetDecoder(fil, enctype)

	// points that are in file
	err = dec.Decode(&pids)
	if err != nil {
		return nil, nil, chk.Err("cannot decode ids of points:\n%v", err)
	}

	// states
	err = dec.Decode(&states)
	if err != nil {
		return nil, nil, chk.Err("cannot decode states:\n%v", err)
	}
	if len(states) != len(pids) {
		return nil, nil, chk.Err("number of states (%d) is different than number of points (%d)", len(states), len(pids))
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_ivs_path(dir, fnkey, enctype string, tidx, proc int) string {
	return filepath.Join(dir, io.Sf("%s_p%d_ivs_%010d.%s", fnkey, proc, tidx, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); e != nil && err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
