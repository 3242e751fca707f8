// Command holiday runs the holidayRequest process from the terminal. Users
// alternate between the employee and manager roles; metrics are printed on
// exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	bpm "github.com/polytechnice-si/5A-BPM-Demo"
	"github.com/polytechnice-si/5A-BPM-Demo/model/holiday"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
)

const (
	autoApprove = "approve"
	autoReject  = "reject"
)

func main() {
	configURL := flag.String("config", "", "YAML or JSON config location (file path or afs URL)")
	auto := flag.String("auto", "", "decide manager tasks automatically: approve or reject")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on addr, e.g. :9090")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, *configURL, *auto, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "holiday: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configURL, auto, metricsAddr string) error {
	cfg := bpm.DefaultConfig()
	if configURL != "" {
		var err error
		if cfg, err = bpm.LoadConfig(ctx, configURL); err != nil {
			return err
		}
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}
	switch auto {
	case "", autoApprove, autoReject:
	default:
		return fmt.Errorf("invalid -auto %q, expected %s or %s", auto, autoApprove, autoReject)
	}

	srv, err := bpm.New(bpm.WithConfig(cfg))
	if err != nil {
		return err
	}
	runtime := srv.Runtime()

	g, gctx := errgroup.WithContext(ctx)
	if exporter := srv.Exporter(); exporter != nil {
		listener, err := exporter.Listen()
		if err != nil {
			_ = srv.Shutdown(ctx)
			return fmt.Errorf("metrics exporter: %w", err)
		}
		g.Go(func() error {
			if err := exporter.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		defer func() { _ = srv.Shutdown(context.Background()) }()
		if auto != "" {
			stop := task.AutoDecide(gctx, runtime.Tasks(), holiday.GroupManagers, holiday.VarApproved,
				auto == autoApprove, runtime.CompleteTask, 0)
			defer stop()
		}
		return newConsole(runtime, os.Stdin, os.Stdout).run(gctx)
	})
	return g.Wait()
}
