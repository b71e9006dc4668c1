// File: cmd/speedcore/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// speedcore runs the producer/consumer, thread-pool and arena workloads
// once and prints their combined wall time in milliseconds.
//
// Usage:
//
//	speedcore [-scale N] [-config file.yaml] [-log-level level] [N]
//
// An invalid or non-positive scale factor falls back to 1 with a warning.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/momentics/speedcore/control"
	"github.com/momentics/speedcore/workload"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("speedcore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scaleArg := fs.String("scale", "", "workload scale factor (positive integer)")
	configPath := fs.String("config", "", "YAML run configuration")
	logLevel := fs.String("log-level", "", "log level override (trace..emergency, off)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *scaleArg == "" && fs.NArg() > 0 {
		*scaleArg = fs.Arg(0)
	}

	cfg := control.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = control.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "speedcore: %v\n", err)
			return 1
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log, err := control.NewLogger(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "speedcore: %v\n", err)
		return 1
	}

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug().Logf(format, args...)
	}))
	defer undo()
	if err != nil {
		log.Warning().Err(err).Log("failed to set GOMAXPROCS")
	}

	scale := 1
	if *scaleArg != "" {
		if n, perr := strconv.Atoi(*scaleArg); perr == nil && n > 0 {
			scale = n
		} else {
			log.Warning().Str("scale", *scaleArg).Log("invalid scale factor, using default 1")
		}
	}
	cfg = cfg.Scale(scale)

	mr := control.NewMetricsRegistry()
	results, err := workload.RunAll(ctx, log, cfg, mr)
	if err != nil {
		fmt.Fprintf(stderr, "speedcore: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%.3f\n", workload.TotalMillis(results))
	return 0
}
