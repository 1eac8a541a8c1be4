// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command daydiff counts the days between two dates.
//
// Usage:
//
//	daydiff [flags] FIRST LAST
//	daydiff batch [flags] [FILE]
//	daydiff serve [flags]
//
// By default neither FIRST nor LAST are counted, so consecutive days are
// 0 days apart. See daydiff --help for the flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
