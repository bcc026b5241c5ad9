// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"

	"github.com/mortezaaesmaeilpour/moose/mporous"
)

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01")

	fac := NewFactory()
	require.Equal(tst, []string{"vp-norton", "vp-porous-norton"}, fac.Names())

	var por mporous.Model
	require.NoError(tst, por.Init("porosity", nil))

	// E and nu
	mdl, err := fac.New("vp-porous-norton", dbf.Params{
		&dbf.P{N: "E", V: 1500},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "A", V: 1e-10},
		&dbf.P{N: "n", V: 3},
	}, Options{}, &por, nil)
	require.NoError(tst, err)
	chk.Float64(tst, "K", 1e-12, mdl.K, 1000)
	chk.Float64(tst, "G", 1e-12, mdl.G, 600)
	chk.Float64(tst, "maxinc", 1e-17, mdl.Opts.MaxInc, DefaultMaxInc)
	chk.Int(tst, "maxits", mdl.Rm.MaxIts, DefaultMaxIts)
	require.Len(tst, mdl.GetPrms(), 4)

	// errors
	good := mdl.GetPrms()
	for i, c := range []struct {
		name string
		prms dbf.Params
		opts Options
		por  *mporous.Model
	}{
		{"vp-unknown", good, Options{}, &por},
		{"vp-norton", dbf.Params{&dbf.P{N: "E", V: 1}, &dbf.P{N: "B", V: 1}}, Options{}, &por},
		{"vp-norton", dbf.Params{&dbf.P{N: "E", V: 1}, &dbf.P{N: "A", V: 1}, &dbf.P{N: "n", V: 0.5}}, Options{}, &por},
		{"vp-norton", dbf.Params{&dbf.P{N: "A", V: 1}}, Options{}, &por},
		{"vp-norton", good, Options{MaxIts: -1}, &por},
		{"vp-norton", good, Options{MaxInc: -1}, &por},
		{"vp-norton", good, Options{}, nil},
	} {
		_, err = fac.New(c.name, c.prms, c.opts, c.por, nil)
		io.Pforan("%d: %v\n", i, err)
		require.True(tst, errors.Is(err, ErrConfiguration), "case %d", i)
	}
}
