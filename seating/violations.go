package seating

import (
	"fmt"
	"slices"
)

// DetectViolations checks a finished assignment against the constraints and
// against avoid relationships. It does not consult any weights.
//
// Together-constraints are violated when their seated guests span more than one
// table; apart-constraints when every named guest is seated at one table. Each
// avoid relationship whose two guests share a table yields a warning.
func DetectViolations(a Assignment, constraints []Constraint, guests []Guest) []Violation {
	p := newProblem(guests, constraints, Weights{})
	out := []Violation{}

	for _, c := range constraints {
		ids := dedup(c.GuestIDs)
		switch {
		case c.Type.together():
			var tables []string
			for _, id := range ids {
				if t, ok := a[id]; ok && !slices.Contains(tables, t) {
					tables = append(tables, t)
				}
			}
			if len(tables) > 1 {
				out = append(out, Violation{
					Severity:     severityFor(c.Priority),
					Message:      fmt.Sprintf("%s should sit together but are split across %d tables", p.names(ids), len(tables)),
					GuestIDs:     ids,
					ConstraintID: c.ID,
				})
			}
		case c.Type.apart():
			if len(ids) < 2 {
				continue
			}
			shared, all := "", true
			for i, id := range ids {
				t, ok := a[id]
				if !ok || (i > 0 && t != shared) {
					all = false
					break
				}
				shared = t
			}
			if all {
				out = append(out, Violation{
					Severity:     severityFor(c.Priority),
					Message:      fmt.Sprintf("%s should not sit together but share table %s", p.names(ids), shared),
					GuestIDs:     ids,
					ConstraintID: c.ID,
				})
			}
		}
	}

	for i := range guests {
		g := &guests[i]
		t, ok := a[g.ID]
		if !ok {
			continue
		}
		for _, r := range g.Relationships {
			if r.Type != RelAvoid || r.TargetID == g.ID {
				continue
			}
			if tt, ok := a[r.TargetID]; ok && tt == t {
				out = append(out, Violation{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("%s wants to avoid %s but they share table %s", p.name(g.ID), p.name(r.TargetID), t),
					GuestIDs: []string{g.ID, r.TargetID},
				})
			}
		}
	}
	return out
}

func dedup(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
