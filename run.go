package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/neonwatty/seating-arrangement-sub002/seating"
)

// EventResult holds the outcome and timing of one event's optimization.
type EventResult struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Result seating.Result `json:"result" yaml:"result"`
	TimeMs int64          `json:"timeMs" yaml:"timeMs"`
}

// optionsFor merges an event's own options with the run configuration.
func optionsFor(ev *Event, cfg Config, start time.Time, log logr.Logger) seating.Options {
	opts := seating.Options{
		SelectedGuestIDs:           ev.Options.SelectedGuestIDs,
		SelectedTableIDs:           ev.Options.SelectedTableIDs,
		MaxIterations:              cfg.MaxIterations,
		PreserveCurrentAssignments: cfg.Preserve,
		Logger:                     log.WithValues("event", ev.ID),
	}
	if ev.Options.MaxIterations != 0 {
		opts.MaxIterations = ev.Options.MaxIterations
	}
	if ev.Options.Preserve != nil {
		opts.PreserveCurrentAssignments = *ev.Options.Preserve
	}
	if cfg.Timeout > 0 {
		opts.Deadline = start.Add(cfg.Timeout)
	}
	return opts
}

func runEvent(ev *Event, cfg Config, log logr.Logger) EventResult {
	start := time.Now()
	res := seating.OptimizeSeatingAdvanced(
		ev.Guests, ev.Tables, ev.Constraints,
		ev.WeightsFor(cfg.Weights),
		optionsFor(ev, cfg, start, log),
	)
	return EventResult{
		ID:     ev.ID,
		Name:   ev.Name,
		Result: res,
		TimeMs: time.Since(start).Milliseconds(),
	}
}

// runEvents optimizes events concurrently, at most cfg.Workers at a time.
// Results keep the order of events. Events not yet started when ctx is
// cancelled are skipped and ctx's error is returned.
func runEvents(ctx context.Context, events []Event, cfg Config, log logr.Logger) ([]EventResult, error) {
	results := make([]EventResult, len(events))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := range events {
		ev := &events[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(events), ev.ID), "guests", len(ev.Guests), "tables", len(ev.Tables))
			results[i] = runEvent(ev, cfg, log)
			log.V(1).Info("event done", "event", ev.ID, "score", results[i].Result.TotalScore, "ms", results[i].TimeMs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
