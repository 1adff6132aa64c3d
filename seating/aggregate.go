package seating

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// IssueOverCapacity is reported for a table seating more guests than it holds.
const IssueOverCapacity = "Over capacity"

// AggregateTableScores rolls guest scores up per table, in the order tables
// are given. The compatibility score maps the mean guest score onto 0–100 so
// that an empty or neutral table sits at 50.
func AggregateTableScores(scores []AssignmentScore, tables []Table) []TableScore {
	out := make([]TableScore, 0, len(tables))
	for _, t := range tables {
		ts := TableScore{
			TableID:     t.ID,
			TableName:   t.Name,
			Capacity:    t.Capacity,
			Issues:      []string{},
			GuestScores: []AssignmentScore{},
		}
		var values []float64
		for _, s := range scores {
			if s.TableID != t.ID {
				continue
			}
			ts.GuestScores = append(ts.GuestScores, s)
			values = append(values, s.TotalScore)
		}
		ts.GuestCount = len(ts.GuestScores)

		avg := 0.0
		if len(values) > 0 {
			avg = stat.Mean(values, nil)
		}
		ts.CompatibilityScore = clamp(50+avg/2, 0, 100)

		if ts.GuestCount > t.Capacity {
			ts.Issues = append(ts.Issues, IssueOverCapacity)
		}
		for _, s := range ts.GuestScores {
			for _, r := range s.Breakdown.Reasons {
				if r.Points >= 0 || (r.Kind != ReasonPenalty && r.Kind != ReasonConstraint) {
					continue
				}
				if !slices.Contains(ts.Issues, r.Description) {
					ts.Issues = append(ts.Issues, r.Description)
				}
			}
		}
		out = append(out, ts)
	}
	return out
}

// MovedGuests lists, in guest order, every guest whose table differs between
// prev and next. Gaining or losing a seat counts as a move.
func MovedGuests(prev, next Assignment, guests []Guest) []string {
	moved := []string{}
	for i := range guests {
		id := guests[i].ID
		if prev[id] != next[id] {
			moved = append(moved, id)
		}
	}
	return moved
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
