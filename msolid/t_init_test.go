// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"

	"github.com/mortezaaesmaeilpour/moose/mporous"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// get_model allocates a model with K = 200 and G = 100
func get_model(tst *testing.T, name string, A, n, φ0 float64) *Viscoplastic {
	var por mporous.Model
	err := por.Init("porosity", dbf.Params{&dbf.P{N: "phi0", V: φ0}})
	require.NoError(tst, err)
	mdl, err := NewFactory().New(name, dbf.Params{
		&dbf.P{N: "K", V: 200},
		&dbf.P{N: "G", V: 100},
		&dbf.P{N: "A", V: A},
		&dbf.P{N: "n", V: n},
	}, Options{}, &por, nil)
	require.NoError(tst, err)
	return mdl
}
