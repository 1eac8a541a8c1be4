// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calculator turns pairs of date strings into day counts. It is the
// common core of the command line tool, the HTTP API and the Lambda handler.
package calculator

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"cloudeng.io/errors"
	"gonih.org/daydiff"
	"gonih.org/daydiff/internal/config"
	"gonih.org/daydiff/internal/logging"
	"gonih.org/daydiff/internal/metrics"
)

// Request asks for the number of days between two dates given as text.
// Empty or nil fields fall back to the defaults of the Calculator.
type Request struct {
	First        string `json:"first_day"`
	Last         string `json:"last_day"`
	Format       string `json:"fmt,omitempty"`
	IncludeFirst *bool  `json:"include_first,omitempty"`
	IncludeLast  *bool  `json:"include_last,omitempty"`
}

// Result echoes the dates of a Request as they were given, together with
// the number of days between them.
type Result struct {
	First string `json:"first_day"`
	Last  string `json:"last_day"`
	Days  int    `json:"days"`
}

// String returns r in the form "<first> - <last> = N days".
func (r Result) String() string {
	unit := "days"
	if r.Days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s - %s = %d %s", r.First, r.Last, r.Days, unit)
}

// Calculator evaluates Requests.
type Calculator struct {
	// Format is used for Requests without a format.
	Format string
	// Bounds is used for Requests that do not set IncludeFirst or
	// IncludeLast.
	Bounds daydiff.Bounds
	// Metrics, if not nil, records every calculation.
	Metrics *metrics.Metrics
}

// New returns a Calculator with the defaults of cfg.
func New(cfg config.Config, m *metrics.Metrics) *Calculator {
	return &Calculator{Format: cfg.Format, Bounds: cfg.Bounds(), Metrics: m}
}

func (c *Calculator) format(req Request) string {
	switch {
	case req.Format != "":
		return req.Format
	case c.Format != "":
		return c.Format
	}
	return daydiff.DefaultFormat
}

func (c *Calculator) bounds(req Request) daydiff.Bounds {
	b := c.Bounds
	set := func(flag daydiff.Bounds, v *bool) {
		switch {
		case v == nil:
		case *v:
			b |= flag
		default:
			b &^= flag
		}
	}
	set(daydiff.IncludeFirst, req.IncludeFirst)
	set(daydiff.IncludeLast, req.IncludeLast)
	return b
}

// Calculate parses both dates of req and counts the days between them. The
// returned error wraps daydiff.ErrInvalidDate or daydiff.ErrInvalidDateFormat.
func (c *Calculator) Calculate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res, err := c.calculate(req)
	c.Metrics.Observe(start, err)
	logger := logging.From(ctx)
	if err != nil {
		logger.Debug("calculation failed", "first_day", req.First, "last_day", req.Last, "error", err)
		return Result{}, err
	}
	logger.Debug("calculated", "first_day", req.First, "last_day", req.Last, "days", res.Days)
	return res, nil
}

func (c *Calculator) calculate(req Request) (Result, error) {
	format := c.format(req)
	first, err := daydiff.Parse(req.First, format)
	if err != nil {
		return Result{}, err
	}
	last, err := daydiff.Parse(req.Last, format)
	if err != nil {
		return Result{}, err
	}
	return Result{
		First: req.First,
		Last:  req.Last,
		Days:  daydiff.Days(first, last, c.bounds(req)),
	}, nil
}

// Batch reads CSV records of the form first,last[,format] from r and calls
// emit with the 1-based line and the result of every record that could be
// calculated. Blank lines and lines starting with # are skipped.
//
// A failing record does not stop the batch. The errors of all failing
// records are returned together once r is exhausted. Batch stops early if
// ctx is done, if r is not valid CSV or if emit returns an error.
func (c *Calculator) Batch(ctx context.Context, r io.Reader, emit func(line int, res Result) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true

	errs := &errors.M{}
	rows, failed := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			errs.Append(err)
			break
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs.Append(err)
			break
		}
		rows++
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 || len(rec) > 3 {
			errs.Append(fmt.Errorf("line %d: want 2 or 3 fields, got %d", line, len(rec)))
			failed++
			continue
		}
		req := Request{First: strings.TrimSpace(rec[0]), Last: strings.TrimSpace(rec[1])}
		if len(rec) == 3 {
			req.Format = rec[2]
		}
		res, err := c.Calculate(ctx, req)
		if err != nil {
			errs.Append(fmt.Errorf("line %d: %w", line, err))
			failed++
			continue
		}
		if err := emit(line, res); err != nil {
			errs.Append(err)
			break
		}
	}
	logging.From(ctx).Info("batch done", "rows", rows, "failed", failed)
	return errs.Err()
}
