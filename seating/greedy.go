package seating

import (
	"cmp"
	"slices"
)

// Constructor builds an initial assignment. Guests already present in seed
// keep their seats; groups are placed around them.
type Constructor interface {
	Construct(seed Assignment, groups []GuestGroup, tables []Table, guests []Guest, constraints []Constraint, w Weights) Assignment
}

// Greedy places groups one at a time at the table with the best marginal score.
type Greedy struct{}

// Construct implements Constructor.
func (Greedy) Construct(seed Assignment, groups []GuestGroup, tables []Table, guests []Guest, constraints []Constraint, w Weights) Assignment {
	return newProblem(guests, constraints, w).greedy(seed, groups, tables)
}

// GreedyAssignment seats groups in the order given, starting from an empty
// assignment. Groups that fit nowhere are left out of the result.
func GreedyAssignment(groups []GuestGroup, tables []Table, guests []Guest, constraints []Constraint, w Weights) Assignment {
	return Greedy{}.Construct(nil, groups, tables, guests, constraints, w)
}

func (p *problem) greedy(seed Assignment, groups []GuestGroup, tables []Table) Assignment {
	// Largest tables first; stable so equal capacities keep input order.
	ordered := slices.Clone(tables)
	slices.SortStableFunc(ordered, func(x, y Table) int {
		return cmp.Compare(y.Capacity, x.Capacity)
	})

	a := seed.Clone()
	for _, grp := range groups {
		var members []string
		for _, id := range grp.GuestIDs {
			if _, known := p.index[id]; !known {
				continue
			}
			if _, seated := a[id]; seated || slices.Contains(members, id) {
				continue
			}
			members = append(members, id)
		}
		if len(members) == 0 {
			continue
		}
		if !p.internalConflict(members) {
			if next, ok := p.place(a, members, ordered); ok {
				a = next
				continue
			}
		}
		// The group cannot sit as a unit; seat whoever can be seated.
		if len(members) > 1 {
			for _, id := range members {
				if next, ok := p.place(a, []string{id}, ordered); ok {
					a = next
				}
			}
		}
	}
	return a
}

// place seats members together at the best surviving candidate table.
func (p *problem) place(a Assignment, members []string, tables []Table) (Assignment, bool) {
	occ := a.Occupancy()
	var (
		best      Assignment
		bestScore float64
	)
	for _, t := range tables {
		if t.Capacity-occ[t.ID] < len(members) {
			continue
		}
		if p.avoidConflict(a, members, t.ID) {
			continue
		}
		trial := a.With(t.ID, members...)
		l := p.layout(trial)
		score := 0.0
		for _, id := range members {
			score += p.scoreAt(id, t.ID, l).TotalScore
		}
		if best == nil || score > bestScore {
			best, bestScore = trial, score
		}
	}
	return best, best != nil
}

// internalConflict reports whether two members of one group are avoid-linked.
func (p *problem) internalConflict(members []string) bool {
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			if p.avoidLinked(members[i], members[j]) {
				return true
			}
		}
	}
	return false
}

// avoidConflict reports whether any member is avoid-linked to a guest
// currently seated at tableID. Guests listed in skip are ignored as occupants.
func (p *problem) avoidConflict(a Assignment, members []string, tableID string, skip ...string) bool {
	for occupant, t := range a {
		if t != tableID || slices.Contains(members, occupant) || slices.Contains(skip, occupant) {
			continue
		}
		for _, m := range members {
			if p.avoidLinked(m, occupant) {
				return true
			}
		}
	}
	return false
}
