// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonih.org/daydiff/internal/calculator"
	"gonih.org/daydiff/internal/config"
	"gonih.org/daydiff/internal/httpapi"
	"gonih.org/daydiff/internal/logging"
	"gonih.org/daydiff/internal/metrics"
)

// options are the flags shared by all commands and the configuration
// resolved from them.
type options struct {
	configPath   string
	format       string
	includeFirst bool
	includeLast  bool
	logLevel     string
	addr         string

	cfg    config.Config
	logger *slog.Logger
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&o.format, "format", "f", "", "date format, using %d, %m and %Y (default \"%d/%m/%Y\")")
	fs.BoolVar(&o.includeFirst, "include-first", false, "count the first date")
	fs.BoolVar(&o.includeLast, "include-last", false, "count the last date")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// setup loads the configuration, applies the flags that were set on the
// command line and creates the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("include-first") {
		cfg.IncludeFirst = o.includeFirst
	}
	if flags.Changed("include-last") {
		cfg.IncludeLast = o.includeLast
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("addr") {
		cfg.Addr = o.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	o.cfg, o.logger = cfg, logger
	return nil
}

func (o *options) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, o.logger)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "daydiff [flags] FIRST LAST",
		Short: "Count the days between two dates",
		Long: `daydiff counts the calendar days between FIRST and LAST, which are parsed
with --format. The order of the dates does not matter. Neither date is
counted unless --include-first or --include-last is given.`,
		Example: `  daydiff 02/06/1983 22/6/1983
  daydiff --format %Y-%m-%d --include-last 2000-02-28 2000-03-01`,
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return o.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := calculator.New(o.cfg, nil)
			res, err := calc.Calculate(o.context(cmd), calculator.Request{First: args[0], Last: args[1]})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res)
			return err
		},
	}
	o.addFlags(cmd.PersistentFlags())
	cmd.AddCommand(newBatchCmd(o), newServeCmd(o))
	return cmd
}

func newBatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Count the days for every CSV record of FILE",
		Long: `batch reads CSV records of the form FIRST,LAST[,FORMAT] from FILE, or from
standard input if FILE is omitted or "-", and prints one result per record.
Records that fail are reported together after all others were processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			out := cmd.OutOrStdout()
			calc := calculator.New(o.cfg, nil)
			return calc.Batch(o.context(cmd), in, func(_ int, res calculator.Result) error {
				_, err := fmt.Fprintln(out, res)
				return err
			})
		},
	}
}

func newServeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", o.cfg.Addr)
			if err != nil {
				return err
			}
			h := httpapi.NewRouter(httpapi.Options{
				Calculator:   calculator.New(o.cfg, m),
				Metrics:      m,
				Logger:       o.logger,
				MaxBodyBytes: o.cfg.MaxBodyBytes,
			})
			return httpapi.Serve(o.context(cmd), ln, h, o.cfg.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&o.addr, "addr", "", "listen address (default \":8080\")")
	return cmd
}
