// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"database/sql"
	"path/filepath"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	_ "modernc.org/sqlite"

	"github.com/mortezaaesmaeilpour/moose/fem"
	"github.com/mortezaaesmaeilpour/moose/inp"
)

// tables of history databases
var schema = []string{`
CREATE TABLE IF NOT EXISTS steps (
	tidx   INTEGER PRIMARY KEY,
	time   REAL NOT NULL,
	dt     REAL NOT NULL,
	dtlim  REAL NOT NULL,
	cfl    REAL NOT NULL,
	ncuts  INTEGER NOT NULL,
	nitmax INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS points (
	tidx    INTEGER NOT NULL REFERENCES steps(tidx),
	pid     INTEGER NOT NULL,
	eid     INTEGER NOT NULL,
	ipid    INTEGER NOT NULL,
	block   INTEGER NOT NULL,
	epe     REAL NOT NULL,
	por     REAL NOT NULL,
	q       REAL NOT NULL,
	p       REAL NOT NULL,
	nit     INTEGER NOT NULL,
	loading INTEGER NOT NULL,
	PRIMARY KEY (tidx, pid)
)`}

// History saves converged steps to a sqlite database. One database per partition
type History struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// OpenHistory creates or opens a history database
func OpenHistory(path string) (o *History, err error) {

	// open database
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, chk.Err("cannot open history %q: %v", path, err)
	}
	db.SetMaxOpenConns(1)

	// pragmas and tables
	cmds := append([]string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"}, schema...)
	for _, cmd := range cmds {
		if _, err = db.Exec(cmd); err != nil {
			db.Close()
			return nil, chk.Err("cannot initialise history %q: %v", path, err)
		}
	}
	return &History{db: db, path: path}, nil
}

// HistoryPath returns the filename of the history of partition proc
func HistoryPath(dirout, fnkey string, proc int) string {
	return filepath.Join(dirout, io.Sf("%s_p%d_hist.db", fnkey, proc))
}

// NewRecorder opens the history of one partition; use it with fem.NewFEM
func NewRecorder(sim *inp.Simulation, rank int) (fem.Recorder, error) {
	return OpenHistory(HistoryPath(sim.DirOut, sim.Key, rank))
}

// Path returns the filename of the database
func (o *History) Path() string { return o.path }

// Record saves one step and the points of this partition in one transaction
func (o *History) Record(step *fem.StepData, ips []fem.OutIpData) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// transaction
	tx, err := o.db.Begin()
	if err != nil {
		return chk.Err("cannot begin transaction: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// step
	_, err = tx.Exec("INSERT OR REPLACE INTO steps (tidx, time, dt, dtlim, cfl, ncuts, nitmax) VALUES (?, ?, ?, ?, ?, ?, ?)",
		step.Tidx, step.Time, step.Dt, step.DtLim, step.Cfl, step.Ncuts, step.NitMax)
	if err != nil {
		return chk.Err("cannot save step %d: %v", step.Tidx, err)
	}

	// points
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO points (tidx, pid, eid, ipid, block, epe, por, q, p, nit, loading) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return chk.Err("cannot prepare statement: %v", err)
	}
	defer stmt.Close()
	for _, d := range ips {
		_, err = stmt.Exec(step.Tidx, d.Pid, d.Eid, d.Ipid, d.Block, d.Epe, d.Por, d.Q, d.P, d.Nit, d.Loading)
		if err != nil {
			return chk.Err("cannot save point %d of step %d: %v", d.Pid, step.Tidx, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return chk.Err("cannot commit step %d: %v", step.Tidx, err)
	}
	return
}

// Steps returns all recorded steps ordered by index
func (o *History) Steps() (steps []fem.StepData, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rows, err := o.db.Query("SELECT tidx, time, dt, dtlim, cfl, ncuts, nitmax FROM steps ORDER BY tidx")
	if err != nil {
		return nil, chk.Err("cannot query steps: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s fem.StepData
		if err = rows.Scan(&s.Tidx, &s.Time, &s.Dt, &s.DtLim, &s.Cfl, &s.Ncuts, &s.NitMax); err != nil {
			return nil, chk.Err("cannot read step: %v", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// PointSeries returns the times and the recorded data of point pid ordered by time
func (o *History) PointSeries(pid int) (times []float64, ips []fem.OutIpData, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rows, err := o.db.Query(`SELECT s.time, p.pid, p.eid, p.ipid, p.block, p.epe, p.por, p.q, p.p, p.nit, p.loading
		FROM points p JOIN steps s ON s.tidx = p.tidx WHERE p.pid = ? ORDER BY s.tidx`, pid)
	if err != nil {
		return nil, nil, chk.Err("cannot query point %d: %v", pid, err)
	}
	defer rows.Close()
	for rows.Next() {
		var t float64
		var d fem.OutIpData
		if err = rows.Scan(&t, &d.Pid, &d.Eid, &d.Ipid, &d.Block, &d.Epe, &d.Por, &d.Q, &d.P, &d.Nit, &d.Loading); err != nil {
			return nil, nil, chk.Err("cannot read point %d: %v", pid, err)
		}
		times = append(times, t)
		ips = append(ips, d)
	}
	return times, ips, rows.Err()
}

// Close closes the database
func (o *History) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.db == nil {
		return nil
	}
	err := o.db.Close()
	o.db = nil
	return err
}
