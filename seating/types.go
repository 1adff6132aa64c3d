package seating

import (
	"maps"
	"slices"
)

// RelationshipType classifies how a guest relates to another guest.
type RelationshipType string

const (
	RelFamily       RelationshipType = "family"
	RelFriend       RelationshipType = "friend"
	RelColleague    RelationshipType = "colleague"
	RelAcquaintance RelationshipType = "acquaintance"
	RelPartner      RelationshipType = "partner"
	RelAvoid        RelationshipType = "avoid"
)

// RSVPStatus is a guest's reply to the invitation.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
)

// ConstraintType names an explicit seating rule.
type ConstraintType string

const (
	MustSitTogether    ConstraintType = "must_sit_together"
	MustNotSitTogether ConstraintType = "must_not_sit_together"
	SameTable          ConstraintType = "same_table"
	DifferentTable     ConstraintType = "different_table"
	// NearFront and Accessibility are accepted but not scored or enforced.
	NearFront     ConstraintType = "near_front"
	Accessibility ConstraintType = "accessibility"
)

// together reports whether the constraint asks its guests to share a table.
func (t ConstraintType) together() bool {
	return t == MustSitTogether || t == SameTable
}

// apart reports whether the constraint asks its guests to be split up.
func (t ConstraintType) apart() bool {
	return t == MustNotSitTogether || t == DifferentTable
}

// ConstraintPriority ranks how strongly a constraint should be honored.
type ConstraintPriority string

const (
	PriorityRequired  ConstraintPriority = "required"
	PriorityPreferred ConstraintPriority = "preferred"
	PriorityOptional  ConstraintPriority = "optional"
)

// Relationship is a directional link from the owning guest to TargetID.
type Relationship struct {
	TargetID string           `json:"targetGuestId" yaml:"targetGuestId"`
	Type     RelationshipType `json:"type" yaml:"type"`
	Strength int              `json:"strength,omitempty" yaml:"strength,omitempty"`
}

// Guest is a person to be seated.
type Guest struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Group         string         `json:"group,omitempty" yaml:"group,omitempty"`
	Interests     []string       `json:"interests,omitempty" yaml:"interests,omitempty"`
	RSVP          RSVPStatus     `json:"rsvpStatus,omitempty" yaml:"rsvpStatus,omitempty"`
	// TableID is the guest's current table, empty when unassigned.
	TableID string `json:"tableId,omitempty" yaml:"tableId,omitempty"`
}

// relationshipTo returns the first relationship toward target.
func (g *Guest) relationshipTo(target string) (Relationship, bool) {
	for _, r := range g.Relationships {
		if r.TargetID == target {
			return r, true
		}
	}
	return Relationship{}, false
}

// avoids reports whether g has an avoid relationship toward target.
func (g *Guest) avoids(target string) bool {
	for _, r := range g.Relationships {
		if r.Type == RelAvoid && r.TargetID == target {
			return true
		}
	}
	return false
}

// Table is a capacity-bounded seating unit.
type Table struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Constraint is an explicit rule tying guests together or apart.
type Constraint struct {
	ID       string             `json:"id" yaml:"id"`
	Type     ConstraintType     `json:"type" yaml:"type"`
	GuestIDs []string           `json:"guestIds" yaml:"guestIds"`
	Priority ConstraintPriority `json:"priority" yaml:"priority"`
}

// Assignment maps guest id to table id. Guests that could not be placed are
// absent. Values are treated as immutable once handed to another stage; use
// Clone or With to derive a modified copy.
type Assignment map[string]string

// Clone returns an independent copy of a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	maps.Copy(out, a)
	return out
}

// With returns a copy of a with every guest in guestIDs seated at tableID.
func (a Assignment) With(tableID string, guestIDs ...string) Assignment {
	out := make(Assignment, len(a)+len(guestIDs))
	maps.Copy(out, a)
	for _, id := range guestIDs {
		out[id] = tableID
	}
	return out
}

// Swapped returns a copy of a with the tables of guests x and y exchanged.
func (a Assignment) Swapped(x, y string) Assignment {
	out := a.Clone()
	out[x], out[y] = a[y], a[x]
	return out
}

// GuestIDs returns the assigned guest ids in sorted order.
func (a Assignment) GuestIDs() []string {
	return slices.Sorted(maps.Keys(a))
}

// Occupancy counts guests per table.
func (a Assignment) Occupancy() map[string]int {
	occ := make(map[string]int)
	for _, t := range a {
		occ[t]++
	}
	return occ
}

// ReasonKind labels a line of a score breakdown.
type ReasonKind string

const (
	ReasonRelationship ReasonKind = "relationship"
	ReasonPenalty      ReasonKind = "penalty"
	ReasonGroup        ReasonKind = "group"
	ReasonInterest     ReasonKind = "interest"
	ReasonConstraint   ReasonKind = "constraint"
)

// Reason is one human-readable contribution to a guest's score.
type Reason struct {
	Kind        ReasonKind `json:"type" yaml:"type"`
	Description string     `json:"description" yaml:"description"`
	Points      float64    `json:"points" yaml:"points"`
}

// ScoreBreakdown splits a guest's score by source.
type ScoreBreakdown struct {
	Relationship   float64  `json:"relationshipScore" yaml:"relationshipScore"`
	PartnerPenalty float64  `json:"partnerPenalty" yaml:"partnerPenalty"`
	Constraint     float64  `json:"constraintScore" yaml:"constraintScore"`
	Group          float64  `json:"groupScore" yaml:"groupScore"`
	Interest       float64  `json:"interestScore" yaml:"interestScore"`
	Reasons        []Reason `json:"reasons" yaml:"reasons"`
}

// AssignmentScore is the score of one guest seated at one table.
type AssignmentScore struct {
	GuestID    string         `json:"guestId" yaml:"guestId"`
	TableID    string         `json:"tableId" yaml:"tableId"`
	TotalScore float64        `json:"score" yaml:"score"`
	Breakdown  ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
}

// TableScore summarises one table of a finished assignment.
type TableScore struct {
	TableID            string            `json:"tableId" yaml:"tableId"`
	TableName          string            `json:"tableName" yaml:"tableName"`
	GuestCount         int               `json:"guestCount" yaml:"guestCount"`
	Capacity           int               `json:"capacity" yaml:"capacity"`
	CompatibilityScore float64           `json:"compatibilityScore" yaml:"compatibilityScore"`
	Issues             []string          `json:"issues" yaml:"issues"`
	GuestScores        []AssignmentScore `json:"guestScores" yaml:"guestScores"`
}

// Severity grades a violation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// severityFor maps a constraint priority onto a violation severity.
func severityFor(p ConstraintPriority) Severity {
	switch p {
	case PriorityRequired:
		return SeverityCritical
	case PriorityPreferred:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Violation is a breached constraint or a co-seated avoid pair.
type Violation struct {
	Severity     Severity `json:"severity" yaml:"severity"`
	Message      string   `json:"message" yaml:"message"`
	GuestIDs     []string `json:"guestIds" yaml:"guestIds"`
	ConstraintID string   `json:"constraintId,omitempty" yaml:"constraintId,omitempty"`
}

// Result is the outcome of OptimizeSeatingAdvanced.
type Result struct {
	Assignment         Assignment        `json:"assignments" yaml:"assignments"`
	PreviousAssignment Assignment        `json:"previousAssignments" yaml:"previousAssignments"`
	TotalScore         float64           `json:"totalScore" yaml:"totalScore"`
	PreviousScore      float64           `json:"previousScore" yaml:"previousScore"`
	ScoreImprovement   float64           `json:"scoreImprovement" yaml:"scoreImprovement"`
	GuestScores        []AssignmentScore `json:"guestScores" yaml:"guestScores"`
	TableScores        []TableScore      `json:"tableScores" yaml:"tableScores"`
	Violations         []Violation       `json:"violations" yaml:"violations"`
	MovedGuests        []string          `json:"movedGuests" yaml:"movedGuests"`
	// Iterations counts accepted local-search swaps.
	Iterations       int  `json:"iterations" yaml:"iterations"`
	DeadlineExceeded bool `json:"deadlineExceeded,omitempty" yaml:"deadlineExceeded,omitempty"`
}
