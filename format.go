package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neonwatty/seating-arrangement-sub002/seating"
)

// FormatResult renders a human-readable seating report for one event.
func FormatResult(ev *Event, res seating.Result) string {
	var b strings.Builder

	names := make(map[string]string, len(ev.Guests))
	for _, g := range ev.Guests {
		names[g.ID] = g.Name
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	title := ev.Name
	if title == "" {
		title = ev.ID
	}
	fmt.Fprintf(&b, "Event: %s (%s)\n", title, ev.ID)
	fmt.Fprintf(&b, "Score: %.1f (previous %.1f, %+.1f)\n", res.TotalScore, res.PreviousScore, res.ScoreImprovement)

	for _, ts := range res.TableScores {
		fmt.Fprintf(&b, "===================\n")
		fmt.Fprintf(&b, "%s [%d/%d] compatibility %.1f\n", ts.TableName, ts.GuestCount, ts.Capacity, ts.CompatibilityScore)
		for _, gs := range ts.GuestScores {
			fmt.Fprintf(&b, "  - %s (%.1f)\n", name(gs.GuestID), gs.TotalScore)
		}
		for _, issue := range ts.Issues {
			fmt.Fprintf(&b, "  ! %s\n", issue)
		}
	}

	var unseated []string
	for _, g := range seating.EligibleGuests(ev.Guests, ev.Options.SelectedGuestIDs) {
		if _, ok := res.Assignment[g.ID]; !ok {
			unseated = append(unseated, g.Name)
		}
	}
	if len(unseated) > 0 {
		fmt.Fprintf(&b, "===================\n")
		fmt.Fprintf(&b, "Unseated: %s\n", strings.Join(unseated, ", "))
	}

	if len(res.Violations) > 0 {
		fmt.Fprintf(&b, "===================\n")
		fmt.Fprintf(&b, "Violations:\n")
		for _, v := range res.Violations {
			fmt.Fprintf(&b, "  [%s] %s\n", v.Severity, v.Message)
		}
	}

	if len(res.MovedGuests) > 0 {
		moved := make([]string, len(res.MovedGuests))
		for i, id := range res.MovedGuests {
			moved[i] = name(id)
		}
		fmt.Fprintf(&b, "Moved: %s\n", strings.Join(moved, ", "))
	}
	return b.String()
}

// writeResults encodes results as JSON or YAML.
func writeResults(w io.Writer, format string, results []EventResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// printTable writes a one-line-per-event summary.
func printTable(w io.Writer, results []EventResult) {
	fmt.Fprintf(w, "%-24s %10s %10s %6s %6s %8s\n", "Event", "Score", "Delta", "Moved", "Viol", "Time")
	fmt.Fprintf(w, "%-24s %10s %10s %6s %6s %8s\n", "------------------------", "----------", "----------", "------", "------", "--------")
	var total float64
	var totalMs int64
	for _, r := range results {
		total += r.Result.TotalScore
		totalMs += r.TimeMs
		fmt.Fprintf(w, "%-24s %10.1f %+10.1f %6d %6d %7.1fs\n", r.ID, r.Result.TotalScore, r.Result.ScoreImprovement,
			len(r.Result.MovedGuests), len(r.Result.Violations), float64(r.TimeMs)/1000)
	}
	fmt.Fprintf(w, "%-24s %10s %10s %6s %6s %8s\n", "------------------------", "----------", "----------", "------", "------", "--------")
	fmt.Fprintf(w, "%-24s %10.1f %10s %6s %6s %7.1fs\n", "TOTAL", total, "", "", "", float64(totalMs)/1000)
}
