// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01")

	mdl := get_model(tst, "vp-norton", 0.1, 1, 0)

	// porosity and strain increment are missing
	reg := NewRegistry()
	require.NoError(tst, mdl.Register(reg))
	require.Equal(tst, []string{"effective_viscoplasticity", "viscoplasticity"}, reg.Names())
	err := reg.Freeze()
	io.Pforan("err = %v\n", err)
	require.Error(tst, err)
	require.True(tst, errors.Is(err, ErrConfiguration))
	var cerr *ConfigError
	require.True(tst, errors.As(err, &cerr))
	require.Equal(tst, "vp-norton", cerr.Owner)

	// supply fields
	require.NoError(tst, reg.Declare("porosity", "porosity-aux"))
	require.NoError(tst, reg.Declare("strain_increment", "kinematics"))
	require.NoError(tst, reg.Freeze())
	require.Contains(tst, reg.Names(), "porosity")

	// frozen
	err = reg.Declare("another", "late")
	require.True(tst, errors.Is(err, ErrConfiguration))
	err = reg.Require("another", "late")
	require.True(tst, errors.Is(err, ErrConfiguration))
}

func Test_registry02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry02")

	reg := NewRegistry()
	require.NoError(tst, reg.Declare("porosity", "a"))
	err := reg.Declare("porosity", "b")
	require.True(tst, errors.Is(err, ErrConfiguration))
	err = reg.Declare("", "c")
	require.True(tst, errors.Is(err, ErrConfiguration))

	// two consumers of the same missing field
	require.NoError(tst, reg.Require("temperature", "x"))
	require.NoError(tst, reg.Require("temperature", "y"))
	err = reg.Check()
	require.ErrorContains(tst, err, "x")
	require.ErrorContains(tst, err, "y")

	// names
	opts := Options{BaseName: "creep_", TotalStrainBase: "mech"}
	opts.SetDefault()
	require.Equal(tst, "creep_effective_viscoplasticity", opts.EffectiveName())
	require.Equal(tst, "creep_viscoplasticity", opts.InelasticFieldName())
	require.Equal(tst, "mech_strain_increment", opts.StrainIncName())
	require.Equal(tst, "strain_increment", StrainIncName(""))
}
