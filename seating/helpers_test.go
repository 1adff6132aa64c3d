package seating

import "fmt"

func rel(target string, t RelationshipType) Relationship {
	return Relationship{TargetID: target, Type: t}
}

func guest(id string, rels ...Relationship) Guest {
	return Guest{ID: id, Name: "Guest " + id, Relationships: rels, RSVP: RSVPConfirmed}
}

func table(id string, capacity int) Table {
	return Table{ID: id, Name: "Table " + id, Capacity: capacity}
}

// zeroWeights has every coefficient at zero so tests can switch on just the
// term they look at.
func zeroWeights() Weights {
	return Weights{
		Relationships: map[RelationshipType]float64{},
		Constraints:   map[ConstraintPriority]float64{},
	}
}

// crowd builds a deterministic mid-sized event: n guests in four groups, each
// friends with the next guest, every seventh guest avoiding the one after it,
// and every fifth guest partnered with the previous one.
func crowd(n int) []Guest {
	groups := []string{"Family", "Work", "School", "Club"}
	tags := []string{"music", "hiking", "chess", "film", "food"}
	guests := make([]Guest, n)
	for i := range guests {
		id := fmt.Sprintf("g%02d", i)
		next := fmt.Sprintf("g%02d", (i+1)%n)
		g := guest(id, rel(next, RelFriend))
		g.Group = groups[i%len(groups)]
		g.Interests = []string{tags[i%len(tags)], tags[(i+2)%len(tags)]}
		if i%7 == 0 {
			g.Relationships = append(g.Relationships, rel(fmt.Sprintf("g%02d", (i+2)%n), RelAvoid))
		}
		if i%5 == 4 {
			g.Relationships = append(g.Relationships, rel(fmt.Sprintf("g%02d", i-1), RelPartner))
		}
		guests[i] = g
	}
	return guests
}

func crowdTables() []Table {
	return []Table{table("t1", 5), table("t2", 6), table("t3", 5), table("t4", 4), table("t5", 6)}
}

func occupancyWithin(a Assignment, tables []Table) bool {
	occ := a.Occupancy()
	for _, t := range tables {
		if occ[t.ID] > t.Capacity {
			return false
		}
	}
	return true
}
