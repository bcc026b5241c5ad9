// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	goio "io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mortezaaesmaeilpour/moose/fem"
	"github.com/mortezaaesmaeilpour/moose/inp"
	"github.com/mortezaaesmaeilpour/moose/out"
)

// options holds the flags of all commands
type options struct {
	alias         string
	verbose       bool
	debug         bool
	erasePrev     bool
	saveSummary   bool
	allowParallel bool
	history       bool
}

func main() {

	// catch errors
	code := 0
	defer func() {
		if err := recover(); err != nil {
			if rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
			code = 1
		}
		mpi.Stop()
		os.Exit(code)
	}()
	mpi.Start()

	// run command
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if rank() == 0 {
			io.PfRed("ERROR: %v\n", err)
		}
		code = 1
	}
}

// rank returns the rank of this process; 0 if MPI is off
func rank() int {
	if mpi.IsOn() {
		return mpi.WorldRank()
	}
	return 0
}

// newRootCmd returns the root command
func newRootCmd(w goio.Writer) *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "vpsim",
		Short:         "Viscoplastic stress update of integration points along deformation paths",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(w)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", true, "show messages")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log each step and each iteration of local solvers")
	root.AddCommand(newRunCmd(opts), newInfoCmd(opts))
	return root
}

// newRunCmd returns the command that runs a simulation
func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.sim>",
		Short: "Run simulation given in .sim (JSON), .yaml or .toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.alias, "alias", "", "word to add to results")
	cmd.Flags().BoolVar(&opts.erasePrev, "erase", true, "erase previous results")
	cmd.Flags().BoolVar(&opts.saveSummary, "summary", true, "save summary and states at output times")
	cmd.Flags().BoolVar(&opts.allowParallel, "parallel", true, "allow parallel run")
	cmd.Flags().BoolVar(&opts.history, "history", false, "save step history to sqlite databases; also set by data.history")
	return cmd
}

// newInfoCmd returns the command that prints the input data after defaults are set
func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.sim>",
		Short: "Show simulation data with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := inp.ReadSim(args[0], "", false)
			if err != nil {
				return err
			}
			if err = sim.GetInfo(cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// newLogger returns a colourful logger
func newLogger(opts *options) *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}
	if opts.debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// run runs a simulation
func run(ctx context.Context, w goio.Writer, opts *options, fnamepath string) (err error) {

	// logger
	log := newLogger(opts)
	slog.SetDefault(log)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// message
	if rank() == 0 && opts.verbose {
		fmt.Fprintf(w, "\nvpsim -- viscoplastic stress update\n\n")
		fmt.Fprintf(w, "%-24s = %v\n", "filename path", fnamepath)
		fmt.Fprintf(w, "%-24s = %v\n", "erase previous results", opts.erasePrev)
		fmt.Fprintf(w, "%-24s = %v\n", "save summary", opts.saveSummary)
		fmt.Fprintf(w, "%-24s = %v\n", "allow parallel run", opts.allowParallel)
		fmt.Fprintf(w, "%-24s = %v\n", "save history", opts.history)
		fmt.Fprintf(w, "%-24s = %q\n\n", "word to add to results", opts.alias)
	}

	// history
	var newrec fem.RecorderMaker
	if opts.history {
		newrec = out.NewRecorder
	} else {
		newrec = func(sim *inp.Simulation, rank int) (fem.Recorder, error) {
			if !sim.Data.History {
				return nil, nil
			}
			return out.NewRecorder(sim, rank)
		}
	}

	// analysis data
	analysis, err := fem.NewFEM(fnamepath, opts.alias, opts.erasePrev, opts.saveSummary, opts.allowParallel, opts.verbose, log, newrec)
	if err != nil {
		return
	}
	defer func() {
		if e := analysis.Close(); e != nil && err == nil {
			err = e
		}
	}()

	// run simulation
	if err = analysis.Run(ctx); err != nil {
		return chk.Err("Run failed:\n%v", err)
	}
	log.Info("results saved", "dirout", analysis.Sim.DirOut, "key", analysis.Sim.Key)
	return
}
