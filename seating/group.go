package seating

import (
	"cmp"
	"slices"
)

// GroupPriority orders guest groups for placement; higher goes first.
type GroupPriority int

const (
	// PrioritySingleton is the base for lone guests; each relationship adds one.
	PrioritySingleton GroupPriority = 10
	// PriorityRequiredConstraint is used for required same-table groups.
	PriorityRequiredConstraint GroupPriority = 80
	// PriorityPartnerPair is used for partners, who are always placed first.
	PriorityPartnerPair GroupPriority = 100
)

// GuestGroup is a set of guests placed at the same table in one step.
type GuestGroup struct {
	GuestIDs []string      `json:"guestIds"`
	Priority GroupPriority `json:"priority"`
}

// PartnerPair holds two guests linked by a partner relationship.
type PartnerPair [2]string

// PartnerPairs scans guests in order and pairs each unclaimed guest with the
// first unclaimed guest it names as partner. Each guest joins at most one pair.
func PartnerPairs(guests []Guest) []PartnerPair {
	present := make(map[string]bool, len(guests))
	for i := range guests {
		present[guests[i].ID] = true
	}
	claimed := make(map[string]bool)
	var pairs []PartnerPair
	for i := range guests {
		g := &guests[i]
		if claimed[g.ID] {
			continue
		}
		for _, r := range g.Relationships {
			if r.Type != RelPartner || r.TargetID == g.ID || !present[r.TargetID] || claimed[r.TargetID] {
				continue
			}
			pairs = append(pairs, PartnerPair{g.ID, r.TargetID})
			claimed[g.ID] = true
			claimed[r.TargetID] = true
			break
		}
	}
	return pairs
}

// GroupGuestsByPriority splits guests into placement units: partner pairs, then
// required same-table constraint groups, then singletons ranked by how many
// relationships they carry. Every guest lands in exactly one group; ids that do
// not name one of guests are ignored. The result is sorted by descending
// priority, keeping extraction order among equals.
func GroupGuestsByPriority(guests []Guest, pairs []PartnerPair, constraints []Constraint) []GuestGroup {
	present := make(map[string]bool, len(guests))
	for i := range guests {
		present[guests[i].ID] = true
	}
	claimed := make(map[string]bool, len(guests))
	var groups []GuestGroup

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if a == b || !present[a] || !present[b] || claimed[a] || claimed[b] {
			continue
		}
		claimed[a], claimed[b] = true, true
		groups = append(groups, GuestGroup{GuestIDs: []string{a, b}, Priority: PriorityPartnerPair})
	}

	for _, c := range constraints {
		if !c.Type.together() || c.Priority != PriorityRequired {
			continue
		}
		var members []string
		for _, id := range c.GuestIDs {
			if present[id] && !claimed[id] {
				claimed[id] = true
				members = append(members, id)
			}
		}
		if len(members) > 0 {
			groups = append(groups, GuestGroup{GuestIDs: members, Priority: PriorityRequiredConstraint})
		}
	}

	for i := range guests {
		g := &guests[i]
		if claimed[g.ID] {
			continue
		}
		claimed[g.ID] = true
		groups = append(groups, GuestGroup{
			GuestIDs: []string{g.ID},
			Priority: PrioritySingleton + GroupPriority(len(g.Relationships)),
		})
	}

	slices.SortStableFunc(groups, func(x, y GuestGroup) int {
		return cmp.Compare(y.Priority, x.Priority)
	})
	return groups
}
