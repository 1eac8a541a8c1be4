// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics for day calculations.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonih.org/daydiff"
)

const namespace = "daydiff"

// Result labels of the calculations counter.
const (
	ResultOK                = "ok"
	ResultInvalidDate       = "invalid_date"
	ResultInvalidDateFormat = "invalid_date_format"
	ResultError             = "error"
)

// Metrics records calculations. A nil *Metrics records nothing.
type Metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
	gatherer     prometheus.Gatherer
}

// New registers the metrics with reg. If reg is nil, a new registry is used.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Day calculations by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent parsing dates and counting days.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		gatherer: reg,
	}
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "format_cache_hits_total",
		Help:      "Lookups of compiled date formats that were cached.",
	}, func() float64 {
		h, _ := daydiff.FormatCacheStats()
		return float64(h)
	})
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "format_cache_misses_total",
		Help:      "Lookups of date formats that had to be compiled.",
	}, func() float64 {
		_, m := daydiff.FormatCacheStats()
		return float64(m)
	})
	for _, c := range []prometheus.Collector{m.calculations, m.duration, hits, misses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Result returns the result label for err.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, daydiff.ErrInvalidDateFormat):
		return ResultInvalidDateFormat
	case errors.Is(err, daydiff.ErrInvalidDate):
		return ResultInvalidDate
	}
	return ResultError
}

// Observe records a calculation that started at start and ended with err.
func (m *Metrics) Observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(Result(err)).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
