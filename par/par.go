// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package par implements global reductions across partitions of a domain
package par

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

// Comm reduces scalars across all partitions. Every partition must call the
// reduction functions in the same order
type Comm interface {
	Rank() int                      // index of this partition
	Size() int                      // number of partitions
	AllReduceMin(x float64) float64 // minimum of x over all partitions
	AllReduceMax(x float64) float64 // maximum of x over all partitions
}

// Serial is the communicator of a run with a single partition
type Serial struct{}

func (o Serial) Rank() int                      { return 0 }
func (o Serial) Size() int                      { return 1 }
func (o Serial) AllReduceMin(x float64) float64 { return x }
func (o Serial) AllReduceMax(x float64) float64 { return x }

// MPI reduces over all processes of the world communicator
type MPI struct {
	comm *mpi.Communicator
	buf  []float64
}

// NewMPI returns the world communicator. mpi.Start must have been called
func NewMPI() (o *MPI, err error) {
	if !mpi.IsOn() {
		return nil, chk.Err("MPI is not on; call mpi.Start first")
	}
	return &MPI{comm: mpi.NewCommunicator(nil), buf: make([]float64, 1)}, nil
}

func (o *MPI) Rank() int { return o.comm.Rank() }
func (o *MPI) Size() int { return o.comm.Size() }

func (o *MPI) AllReduceMin(x float64) float64 {
	o.comm.AllReduceMin(o.buf, []float64{x})
	return o.buf[0]
}

func (o *MPI) AllReduceMax(x float64) float64 {
	o.comm.AllReduceMax(o.buf, []float64{x})
	return o.buf[0]
}

// Get returns the world communicator when MPI is on and Serial otherwise
func Get() Comm {
	if mpi.IsOn() && mpi.WorldSize() > 1 {
		if c, err := NewMPI(); err == nil {
			return c
		}
	}
	return Serial{}
}

// group holds the data shared by the members of a simulated set of partitions
type group struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int     // number of members
	arrived int     // members that arrived at the current reduction
	gen     int     // index of current reduction
	acc     float64 // partial result
	res     float64 // result of last reduction
}

// reduce combines x from all members; the last member to arrive releases the others
func (o *group) reduce(x float64, op func(a, b float64) float64) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.arrived == 0 {
		o.acc = x
	} else {
		o.acc = op(o.acc, x)
	}
	o.arrived++
	gen := o.gen
	if o.arrived == o.n {
		o.res = o.acc
		o.arrived = 0
		o.gen++
		o.cond.Broadcast()
		return o.res
	}
	for gen == o.gen {
		o.cond.Wait()
	}
	return o.res
}

// Member is one partition of a group running in this process; each member
// must be used by its own goroutine
type Member struct {
	rank int
	g    *group
}

// NewGroup returns n members sharing the reductions
func NewGroup(n int) (members []Comm) {
	if n < 1 {
		chk.Panic("number of partitions must be at least 1. %d is invalid", n)
	}
	g := &group{n: n}
	g.cond = sync.NewCond(&g.mu)
	members = make([]Comm, n)
	for i := 0; i < n; i++ {
		members[i] = &Member{rank: i, g: g}
	}
	return
}

func (o *Member) Rank() int { return o.rank }
func (o *Member) Size() int { return o.g.n }

func (o *Member) AllReduceMin(x float64) float64 { return o.g.reduce(x, utl.Min) }
func (o *Member) AllReduceMax(x float64) float64 { return o.g.reduce(x, utl.Max) }
