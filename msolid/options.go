// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// Options holds the settings of a viscoplastic stress update
type Options struct {
	MaxInc          float64 `json:"max_inelastic_increment" yaml:"max_inelastic_increment" toml:"max_inelastic_increment"` // maximum increment of effective inelastic strain per step
	InelasticName   string  `json:"inelastic_strain_name" yaml:"inelastic_strain_name" toml:"inelastic_strain_name"`       // name of inelastic strain field
	Verbose         bool    `json:"verbose" yaml:"verbose" toml:"verbose"`                                                 // emit per-iteration diagnostics
	PorosityName    string  `json:"porosity_name" yaml:"porosity_name" toml:"porosity_name"`                               // name of porosity field
	TotalStrainBase string  `json:"total_strain_base_name" yaml:"total_strain_base_name" toml:"total_strain_base_name"`    // base name of total strain fields
	BaseName        string  `json:"base_name" yaml:"base_name" toml:"base_name"`                                           // prefix of fields declared by this update

	// local solver
	Rtol   float64 `json:"rtol" yaml:"rtol" toml:"rtol"`       // relative tolerance (w.r.t gauge stress)
	Atol   float64 `json:"atol" yaml:"atol" toml:"atol"`       // absolute tolerance
	MaxIts int     `json:"maxits" yaml:"maxits" toml:"maxits"` // maximum number of iterations
}

// default options
const (
	DefaultMaxInc        = 1e-4
	DefaultInelasticName = "viscoplasticity"
	DefaultPorosityName  = "porosity"
	DefaultRtol          = 1e-8
	DefaultAtol          = 1e-11
	DefaultMaxIts        = 100
)

// SetDefault fills zero-valued options with defaults
func (o *Options) SetDefault() {
	if o.MaxInc == 0 {
		o.MaxInc = DefaultMaxInc
	}
	if o.InelasticName == "" {
		o.InelasticName = DefaultInelasticName
	}
	if o.PorosityName == "" {
		o.PorosityName = DefaultPorosityName
	}
	if o.Rtol == 0 {
		o.Rtol = DefaultRtol
	}
	if o.Atol == 0 {
		o.Atol = DefaultAtol
	}
	if o.MaxIts == 0 {
		o.MaxIts = DefaultMaxIts
	}
}

// Check validates options
func (o Options) Check(owner string) error {
	if o.MaxInc <= 0 {
		return configErr(owner, "max_inelastic_increment must be positive. %g is invalid", o.MaxInc)
	}
	if o.Rtol <= 0 || o.Atol <= 0 {
		return configErr(owner, "tolerances must be positive. rtol=%g atol=%g", o.Rtol, o.Atol)
	}
	if o.MaxIts < 1 {
		return configErr(owner, "maxits must be at least 1. %d is invalid", o.MaxIts)
	}
	return nil
}

// StrainIncName returns the name of the total strain increment field
func (o Options) StrainIncName() string {
	return StrainIncName(o.TotalStrainBase)
}

// EffectiveName returns the name of the effective inelastic strain field
func (o Options) EffectiveName() string {
	return o.BaseName + "effective_" + o.InelasticName
}

// InelasticFieldName returns the name of the inelastic strain tensor field
func (o Options) InelasticFieldName() string {
	return o.BaseName + o.InelasticName
}

// StrainIncName composes the name of a strain increment field
func StrainIncName(base string) string {
	if base == "" {
		return "strain_increment"
	}
	return base + "_strain_increment"
}
