package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/neonwatty/seating-arrangement-sub002/seating"
)

// Event is one seating problem read from an input document.
type Event struct {
	ID          string
	Name        string
	Guests      []seating.Guest
	Tables      []seating.Table
	Constraints []seating.Constraint
	Options     EventOptions

	// weights holds the document's weight overrides, if any.
	weights gjson.Result
}

// WeightsFor overlays the event's own weights onto base.
func (ev *Event) WeightsFor(base seating.Weights) seating.Weights {
	if !ev.weights.IsObject() {
		return base
	}
	return parseWeights(ev.weights, base)
}

// EventOptions are the per-event optimizer settings carried by the document.
type EventOptions struct {
	SelectedGuestIDs []string
	SelectedTableIDs []string
	// MaxIterations is 0 when unset.
	MaxIterations int
	// Preserve is nil when unset.
	Preserve *bool
}

// LoadEvents reads every event in the JSON document at path.
func LoadEvents(path string) ([]Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	events, err := parseEvents(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return events, nil
}

// FindEvent returns the event with the given id, or nil if not found.
func FindEvent(events []Event, id string) *Event {
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

// parseEvents accepts {"events": [...]}, a bare array of events or a single
// event object.
func parseEvents(doc string) ([]Event, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.Parse(doc)

	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.Get("events").IsArray():
		items = root.Get("events").Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("expected an event object or a list of events")
	}

	events := make([]Event, 0, len(items))
	for i, item := range items {
		ev, err := parseEvent(item)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if ev.ID == "" {
			ev.ID = fmt.Sprintf("event-%d", i+1)
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseEvent(v gjson.Result) (Event, error) {
	if !v.IsObject() {
		return Event{}, fmt.Errorf("expected an object")
	}
	ev := Event{
		ID:   v.Get("id").String(),
		Name: v.Get("name").String(),
	}

	var err error
	v.Get("guests").ForEach(func(_, g gjson.Result) bool {
		var guest seating.Guest
		if guest, err = parseGuest(g); err != nil {
			return false
		}
		ev.Guests = append(ev.Guests, guest)
		return true
	})
	if err != nil {
		return Event{}, err
	}

	v.Get("tables").ForEach(func(_, t gjson.Result) bool {
		var table seating.Table
		if table, err = parseTable(t); err != nil {
			return false
		}
		ev.Tables = append(ev.Tables, table)
		return true
	})
	if err != nil {
		return Event{}, err
	}

	v.Get("constraints").ForEach(func(_, c gjson.Result) bool {
		ev.Constraints = append(ev.Constraints, parseConstraint(c))
		return true
	})

	ev.weights = v.Get("weights")

	opts := v.Get("options")
	ev.Options.SelectedGuestIDs = stringList(opts.Get("selectedGuestIds"))
	ev.Options.SelectedTableIDs = stringList(opts.Get("selectedTableIds"))
	ev.Options.MaxIterations = int(opts.Get("maxIterations").Int())
	if p := opts.Get("preserveCurrentAssignments"); p.Exists() {
		b := p.Bool()
		ev.Options.Preserve = &b
	}
	return ev, nil
}

func parseGuest(g gjson.Result) (seating.Guest, error) {
	guest := seating.Guest{
		ID:        g.Get("id").String(),
		Name:      g.Get("name").String(),
		Group:     g.Get("group").String(),
		Interests: stringList(g.Get("interests")),
		RSVP:      seating.RSVPStatus(firstString(g, "rsvpStatus", "rsvp")),
		TableID:   g.Get("tableId").String(),
	}
	if guest.ID == "" {
		return seating.Guest{}, fmt.Errorf("guest %q has no id", guest.Name)
	}
	if guest.Name == "" {
		guest.Name = strings.TrimSpace(g.Get("firstName").String() + " " + g.Get("lastName").String())
	}
	if guest.Name == "" {
		guest.Name = guest.ID
	}
	if guest.RSVP == "" {
		guest.RSVP = seating.RSVPPending
	}
	g.Get("relationships").ForEach(func(_, r gjson.Result) bool {
		guest.Relationships = append(guest.Relationships, seating.Relationship{
			TargetID: firstString(r, "targetGuestId", "guestId"),
			Type:     seating.RelationshipType(r.Get("type").String()),
			Strength: int(r.Get("strength").Int()),
		})
		return true
	})
	return guest, nil
}

func parseTable(t gjson.Result) (seating.Table, error) {
	table := seating.Table{
		ID:       t.Get("id").String(),
		Name:     t.Get("name").String(),
		Capacity: int(t.Get("capacity").Int()),
	}
	if table.ID == "" {
		return seating.Table{}, fmt.Errorf("table %q has no id", table.Name)
	}
	if table.Capacity < 0 {
		return seating.Table{}, fmt.Errorf("table %s: negative capacity %d", table.ID, table.Capacity)
	}
	if table.Name == "" {
		table.Name = table.ID
	}
	return table, nil
}

func parseConstraint(c gjson.Result) seating.Constraint {
	prio := seating.ConstraintPriority(c.Get("priority").String())
	if prio == "" {
		prio = seating.PriorityPreferred
	}
	return seating.Constraint{
		ID:       c.Get("id").String(),
		Type:     seating.ConstraintType(c.Get("type").String()),
		GuestIDs: stringList(c.Get("guestIds")),
		Priority: prio,
	}
}

// parseWeights overlays the keys present in v onto base.
func parseWeights(v gjson.Result, base seating.Weights) seating.Weights {
	w := base.Clone()
	v.Get("relationships").ForEach(func(k, x gjson.Result) bool {
		w.Relationships[seating.RelationshipType(k.String())] = x.Float()
		return true
	})
	v.Get("constraints").ForEach(func(k, x gjson.Result) bool {
		w.Constraints[seating.ConstraintPriority(k.String())] = x.Float()
		return true
	})
	if x := v.Get("groupCohesion"); x.Exists() {
		w.GroupCohesion = x.Float()
	}
	if x := v.Get("interestMatch"); x.Exists() {
		w.InterestMatch = x.Float()
	}
	return w
}

func stringList(v gjson.Result) []string {
	var out []string
	v.ForEach(func(_, s gjson.Result) bool {
		out = append(out, s.String())
		return true
	})
	return out
}

func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k); s.Exists() {
			return s.String()
		}
	}
	return ""
}
