// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// sentinels to be used with errors.Is
var (
	ErrConvergence     = errors.New("return mapping did not converge")
	ErrNumericalDomain = errors.New("non-finite or singular value in local update")
	ErrConfiguration   = errors.New("invalid configuration")
)

// ConvergenceError is returned when the return mapping hits the maximum number
// of iterations. The step may be retried with a smaller time increment
type ConvergenceError struct {
	Loc Location // where it happened
	Nit int      // number of iterations performed
	Dp  float64  // last guess of Δε_eff
	Res float64  // last residual
	Ref float64  // reference residual
}

func (o *ConvergenceError) Error() string {
	return io.Sf("%v: %v after %d iterations: Δp=%g |R|=%g ref=%g", ErrConvergence, o.Loc, o.Nit, o.Dp, o.Res, o.Ref)
}

// Unwrap returns the sentinel
func (o *ConvergenceError) Unwrap() error { return ErrConvergence }

// DomainError is returned when a non-finite or singular value appears during
// the local update. Retrying with the same step is useless
type DomainError struct {
	Loc Location // where it happened
	Nit int      // iteration index
	Msg string   // what happened
}

func (o *DomainError) Error() string {
	return io.Sf("%v: %v at iteration %d: %s", ErrNumericalDomain, o.Loc, o.Nit, o.Msg)
}

// Unwrap returns the sentinel
func (o *DomainError) Unwrap() error { return ErrNumericalDomain }

// ConfigError reports an invalid parameter combination found at setup
type ConfigError struct {
	Owner string // object being configured
	Msg   string // what is wrong
}

func (o *ConfigError) Error() string {
	return io.Sf("%v: %s: %s", ErrConfiguration, o.Owner, o.Msg)
}

// Unwrap returns the sentinel
func (o *ConfigError) Unwrap() error { return ErrConfiguration }

// configErr returns a new ConfigError
func configErr(owner, msg string, prm ...interface{}) error {
	return &ConfigError{Owner: owner, Msg: io.Sf(msg, prm...)}
}
