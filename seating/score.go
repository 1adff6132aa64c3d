package seating

import (
	"fmt"
	"math"
	"strings"
)

// problem is the read-only view of one optimization call: guests indexed by id
// plus the constraints and weights every score is computed against.
type problem struct {
	guests      []Guest
	index       map[string]int
	constraints []Constraint
	weights     Weights
}

func newProblem(guests []Guest, constraints []Constraint, w Weights) *problem {
	p := &problem{
		guests:      guests,
		index:       make(map[string]int, len(guests)),
		constraints: constraints,
		weights:     w,
	}
	for i := range guests {
		if _, dup := p.index[guests[i].ID]; !dup {
			p.index[guests[i].ID] = i
		}
	}
	return p
}

func (p *problem) guest(id string) *Guest {
	if i, ok := p.index[id]; ok {
		return &p.guests[i]
	}
	return nil
}

func (p *problem) name(id string) string {
	if g := p.guest(id); g != nil && g.Name != "" {
		return g.Name
	}
	return id
}

func (p *problem) names(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = p.name(id)
	}
	return strings.Join(out, ", ")
}

// avoidLinked reports whether either guest has an avoid relationship toward the other.
func (p *problem) avoidLinked(x, y string) bool {
	if gx := p.guest(x); gx != nil && gx.avoids(y) {
		return true
	}
	if gy := p.guest(y); gy != nil && gy.avoids(x) {
		return true
	}
	return false
}

// layout indexes an assignment by table. Occupants are kept in input guest
// order so reasons come out in the same order on every call.
type layout struct {
	assignment Assignment
	byTable    map[string][]int
}

func (p *problem) layout(a Assignment) layout {
	byTable := make(map[string][]int)
	for i := range p.guests {
		if t, ok := a[p.guests[i].ID]; ok {
			byTable[t] = append(byTable[t], i)
		}
	}
	return layout{assignment: a, byTable: byTable}
}

// ── Scoring ─────────────────────────────────────────────────────────

func (p *problem) scoreAt(guestID, tableID string, l layout) AssignmentScore {
	score := AssignmentScore{
		GuestID:   guestID,
		TableID:   tableID,
		Breakdown: ScoreBreakdown{Reasons: []Reason{}},
	}
	gi, ok := p.index[guestID]
	if !ok {
		return score
	}
	g := &p.guests[gi]
	bd := &score.Breakdown

	var mates []*Guest
	for _, mi := range l.byTable[tableID] {
		if mi != gi {
			mates = append(mates, &p.guests[mi])
		}
	}

	// 1. relationships toward tablemates
	for _, m := range mates {
		r, ok := g.relationshipTo(m.ID)
		if !ok {
			continue
		}
		w := p.weights.Relationships[r.Type]
		if w == 0 {
			continue
		}
		bd.Relationship += w
		bd.Reasons = append(bd.Reasons, Reason{
			Kind:        ReasonRelationship,
			Description: fmt.Sprintf("Seated with %s (%s)", p.name(m.ID), r.Type),
			Points:      w,
		})
	}

	// 2. partner seated elsewhere, counted once
	half := math.Abs(p.weights.Relationships[RelPartner]) / 2
	for _, r := range g.Relationships {
		if r.Type != RelPartner || half == 0 {
			continue
		}
		if pt, ok := l.assignment[r.TargetID]; ok && pt != tableID {
			bd.PartnerPenalty -= half
			bd.Reasons = append(bd.Reasons, Reason{
				Kind:        ReasonPenalty,
				Description: fmt.Sprintf("Separated from partner %s", p.name(r.TargetID)),
				Points:      -half,
			})
			break
		}
	}

	// 3. group cohesion
	if g.Group != "" {
		n := 0
		for _, m := range mates {
			if m.Group == g.Group {
				n++
			}
		}
		if n > 0 {
			bd.Group = float64(n) * p.weights.GroupCohesion
			bd.Reasons = append(bd.Reasons, Reason{
				Kind:        ReasonGroup,
				Description: fmt.Sprintf("Seated with %d member(s) of %q", n, g.Group),
				Points:      bd.Group,
			})
		}
	}

	// 4. shared interests
	if len(g.Interests) > 0 {
		mine := make(map[string]bool, len(g.Interests))
		for _, tag := range g.Interests {
			mine[tag] = true
		}
		n := 0
		for _, m := range mates {
			seen := make(map[string]bool, len(m.Interests))
			for _, tag := range m.Interests {
				if mine[tag] && !seen[tag] {
					seen[tag] = true
					n++
				}
			}
		}
		if n > 0 {
			bd.Interest = float64(n) * p.weights.InterestMatch
			bd.Reasons = append(bd.Reasons, Reason{
				Kind:        ReasonInterest,
				Description: fmt.Sprintf("%d shared interest(s) with tablemates", n),
				Points:      bd.Interest,
			})
		}
	}

	// 5. explicit constraints
	for ci := range p.constraints {
		c := &p.constraints[ci]
		if !c.Type.together() && !c.Type.apart() {
			continue
		}
		others, involved := otherGuests(c.GuestIDs, guestID)
		if !involved || len(others) == 0 {
			continue
		}
		w := p.weights.Constraints[c.Priority]
		if w == 0 {
			continue
		}
		atTable := 0
		for _, id := range others {
			if t, ok := l.assignment[id]; ok && t == tableID {
				atTable++
			}
		}

		var pts float64
		switch {
		case c.Type.together() && atTable == len(others):
			pts = w
		case c.Type.together():
			continue // no partial credit
		case atTable == 0:
			pts = w
		default:
			pts = -w
		}
		marker := "met"
		if pts < 0 {
			marker = "unmet"
		}
		bd.Constraint += pts
		bd.Reasons = append(bd.Reasons, Reason{
			Kind:        ReasonConstraint,
			Description: fmt.Sprintf("[%s] %s with %s (%s)", marker, c.Type, p.names(others), c.Priority),
			Points:      pts,
		})
	}

	score.TotalScore = bd.Relationship + bd.PartnerPenalty + bd.Group + bd.Interest + bd.Constraint
	return score
}

// otherGuests returns the distinct ids in ids other than self, and whether self
// appears at all.
func otherGuests(ids []string, self string) ([]string, bool) {
	involved := false
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == self {
			involved = true
			continue
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, involved
}

// total is the objective: the sum of every assigned guest's score, accumulated
// in sorted guest-id order.
func (p *problem) total(a Assignment) float64 {
	l := p.layout(a)
	sum := 0.0
	for _, id := range a.GuestIDs() {
		sum += p.scoreAt(id, a[id], l).TotalScore
	}
	return sum
}

// scores returns per-guest scores for every assigned guest, in input order.
func (p *problem) scores(a Assignment) []AssignmentScore {
	l := p.layout(a)
	out := make([]AssignmentScore, 0, len(a))
	for i := range p.guests {
		id := p.guests[i].ID
		if t, ok := a[id]; ok {
			out = append(out, p.scoreAt(id, t, l))
		}
	}
	return out
}

// ScoreGuestAtTable scores guestID seated at tableID given the rest of
// assignment. Tablemates are the other guests assigned to tableID. Unknown
// guests score zero.
func ScoreGuestAtTable(guestID, tableID string, assignment Assignment, guests []Guest, constraints []Constraint, w Weights) AssignmentScore {
	p := newProblem(guests, constraints, w)
	return p.scoreAt(guestID, tableID, p.layout(assignment))
}

// CalculateTotalScore sums ScoreGuestAtTable over every entry of assignment.
func CalculateTotalScore(assignment Assignment, guests []Guest, constraints []Constraint, w Weights) float64 {
	return newProblem(guests, constraints, w).total(assignment)
}
