//go:build !lambda

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
)

const usage = `Usage: seating-optimizer [flags] <events.json> [eventId]
       seating-optimizer [flags] serve

Positional arguments:
  events.json   Event document: one event, a list, or {"events": [...]}
  eventId       Only optimize this event (omitted = run all)
  serve         Run the HTTP API on --addr

Flags:
`

func runAll(ctx context.Context, w io.Writer, events []Event, cfg Config, log logr.Logger) error {
	results, err := runEvents(ctx, events, cfg, log)
	if err != nil {
		return err
	}
	if cfg.Format != "text" {
		return writeResults(w, cfg.Format, results)
	}
	for i, r := range results {
		fmt.Fprintln(w, FormatResult(&events[i], r.Result))
	}
	printTable(w, results)
	return nil
}

func runSingle(w io.Writer, events []Event, id string, cfg Config, log logr.Logger) error {
	ev := FindEvent(events, id)
	if ev == nil {
		return fmt.Errorf("event %q not found", id)
	}
	r := runEvent(ev, cfg, log)
	if cfg.Format != "text" {
		return writeResults(w, cfg.Format, []EventResult{r})
	}
	fmt.Fprintln(w, FormatResult(ev, r.Result))
	fmt.Fprintf(w, "Total: %.1f in %.1fs\n", r.Result.TotalScore, float64(r.TimeMs)/1000)
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet()
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := LoadConfig(fs)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Verbose)

	pos := fs.Args()
	if len(pos) < 1 {
		fs.Usage()
		return fmt.Errorf("missing arguments")
	}
	if pos[0] == "serve" {
		return NewServer(cfg, log).Start(ctx)
	}

	events, err := LoadEvents(pos[0])
	if err != nil {
		return err
	}
	log.Info("loaded", "events", len(events), "path", pos[0])

	if len(pos) >= 2 {
		return runSingle(stdout, events, pos[1], cfg, log)
	}
	return runAll(ctx, stdout, events, cfg, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
