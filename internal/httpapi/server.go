// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httpapi serves day calculations over HTTP.
//
// The API has a single operation, POST /calculator, which takes a
// calculator.Request as JSON and answers with a calculator.Result or, on
// failure, an ErrorBody. GET /healthz and GET /metrics are provided for
// operations.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"gonih.org/daydiff/internal/calculator"
	"gonih.org/daydiff/internal/logging"
	"gonih.org/daydiff/internal/metrics"
)

// Options configures NewRouter.
type Options struct {
	Calculator *calculator.Calculator
	// Metrics is served on /metrics. If nil, /metrics answers 404.
	Metrics *metrics.Metrics
	// Logger, if not nil, replaces the context logger of every request.
	Logger *slog.Logger
	// MaxBodyBytes limits request bodies, if positive.
	MaxBodyBytes int64
}

type handler struct {
	calc    *calculator.Calculator
	maxBody int64
}

// NewRouter returns the handler of the API.
func NewRouter(o Options) http.Handler {
	h := &handler{calc: o.Calculator, maxBody: o.MaxBodyBytes}

	r := chi.NewRouter()
	if o.Logger != nil {
		r.Use(WithLogger(o.Logger))
	}
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, r, http.StatusNotFound, CodeNotFound, "no such path "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fail(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, r.Method+" is not supported for "+r.URL.Path)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", o.Metrics.Handler())
	r.Post("/calculator", h.calculate)
	return r
}

func (h *handler) calculate(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	var req calculator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, err.Error())
			return
		}
		fail(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body: "+err.Error())
		return
	}
	res, err := h.calc.Calculate(r.Context(), req)
	if err != nil {
		status, code := StatusFor(err)
		fail(w, r, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Serve serves h on ln until ctx is done, then shuts down gracefully,
// waiting at most shutdownTimeout for pending requests. It returns nil after
// a clean shutdown.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}
	logger := logging.From(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", shutdownTimeout)
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
