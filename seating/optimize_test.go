package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_PartnersShareTable(t *testing.T) {
	guests := []Guest{guest("A", rel("B", RelPartner)), guest("B", rel("A", RelPartner))}
	tables := []Table{table("T1", 2)}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{})

	assert.Equal(t, Assignment{"A": "T1", "B": "T1"}, res.Assignment)
	assert.ElementsMatch(t, []string{"A", "B"}, res.MovedGuests)
	assert.Equal(t, 200.0, res.TotalScore)
	assert.Zero(t, res.PreviousScore)
	assert.Equal(t, 200.0, res.ScoreImprovement)
	assert.Empty(t, res.Violations)
}

func TestOptimize_AvoidPairSeparated(t *testing.T) {
	guests := []Guest{guest("A", rel("B", RelAvoid)), guest("B")}
	tables := []Table{table("T1", 2), table("T2", 2)}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{})

	require.Len(t, res.Assignment, 2)
	assert.NotEqual(t, res.Assignment["A"], res.Assignment["B"])
	assert.Empty(t, res.Violations)
}

func TestOptimize_RequiredConstraintViolationSurfaced(t *testing.T) {
	guests := []Guest{guest("A"), guest("B"), guest("C")}
	tables := []Table{table("T1", 2), table("T2", 2)}
	constraints := []Constraint{{ID: "k1", Type: MustSitTogether, GuestIDs: []string{"A", "B", "C"}, Priority: PriorityRequired}}

	res := OptimizeSeatingAdvanced(guests, tables, constraints, DefaultWeights(), Options{})

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, SeverityCritical, v.Severity)
	assert.Equal(t, "k1", v.ConstraintID)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, v.GuestIDs)
	assert.Len(t, res.Assignment, 3)
	assert.True(t, occupancyWithin(res.Assignment, tables))
}

func TestOptimize_AvoidBeatsRequiredTogether(t *testing.T) {
	guests := []Guest{guest("A", rel("B", RelAvoid)), guest("B")}
	tables := []Table{table("T1", 2), table("T2", 2)}
	constraints := []Constraint{{ID: "k1", Type: SameTable, GuestIDs: []string{"A", "B"}, Priority: PriorityRequired}}

	res := OptimizeSeatingAdvanced(guests, tables, constraints, DefaultWeights(), Options{})

	assert.NotEqual(t, res.Assignment["A"], res.Assignment["B"])
	require.Len(t, res.Violations, 1)
	assert.Equal(t, SeverityCritical, res.Violations[0].Severity)
}

func TestOptimize_EmptyInput(t *testing.T) {
	res := OptimizeSeatingAdvanced(nil, nil, nil, DefaultWeights(), Options{})

	assert.Empty(t, res.Assignment)
	assert.Zero(t, res.TotalScore)
	assert.Equal(t, []Violation{}, res.Violations)
	assert.Equal(t, []string{}, res.MovedGuests)
	assert.Empty(t, res.TableScores)
}

func TestOptimize_NoTables(t *testing.T) {
	guests := []Guest{guest("A"), guest("B")}
	guests[0].TableID = "old"

	res := OptimizeSeatingAdvanced(guests, nil, nil, DefaultWeights(), Options{})

	assert.Empty(t, res.Assignment)
	assert.Equal(t, []string{"A"}, res.MovedGuests)
}

func TestOptimize_GroupCohesion(t *testing.T) {
	guests := []Guest{guest("A"), guest("B"), guest("C")}
	for i := range guests {
		guests[i].Group = "Family"
	}
	w := DefaultWeights()
	w.GroupCohesion = 40

	res := OptimizeSeatingAdvanced(guests, []Table{table("T1", 3)}, nil, w, Options{})

	assert.Equal(t, 3*2*40.0, res.TotalScore)
	require.Len(t, res.GuestScores, 3)
	for _, s := range res.GuestScores {
		assert.Equal(t, 80.0, s.Breakdown.Group)
		require.Len(t, s.Breakdown.Reasons, 1)
		assert.Equal(t, ReasonGroup, s.Breakdown.Reasons[0].Kind)
		assert.Equal(t, 80.0, s.Breakdown.Reasons[0].Points)
	}
	require.Len(t, res.TableScores, 1)
	assert.Equal(t, 3, res.TableScores[0].GuestCount)
	assert.Equal(t, 90.0, res.TableScores[0].CompatibilityScore)
}

func TestOptimize_EligibleUniverse(t *testing.T) {
	guests := []Guest{guest("A"), guest("B"), guest("C")}
	guests[1].RSVP = RSVPDeclined
	tables := []Table{table("T1", 4), table("T2", 4)}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{})
	assert.Len(t, res.Assignment, 2)
	assert.NotContains(t, res.Assignment, "B")

	res = OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{
		SelectedGuestIDs: []string{"B", "C"},
		SelectedTableIDs: []string{"T2"},
	})
	assert.Equal(t, Assignment{"B": "T2", "C": "T2"}, res.Assignment)
	require.Len(t, res.TableScores, 1)
	assert.Equal(t, "T2", res.TableScores[0].TableID)
}

func TestOptimize_PreviousScoreAndImprovement(t *testing.T) {
	guests := []Guest{
		guest("A", rel("B", RelFriend)),
		guest("B", rel("A", RelFriend)),
		guest("C"),
		guest("D"),
	}
	guests[0].TableID, guests[2].TableID = "T1", "T1"
	guests[1].TableID, guests[3].TableID = "T2", "T2"
	tables := []Table{table("T1", 2), table("T2", 2)}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{})

	assert.Equal(t, Assignment{"A": "T1", "C": "T1", "B": "T2", "D": "T2"}, res.PreviousAssignment)
	assert.Zero(t, res.PreviousScore)
	assert.Equal(t, 60.0, res.TotalScore)
	assert.Equal(t, 60.0, res.ScoreImprovement)
	assert.Equal(t, res.Assignment["A"], res.Assignment["B"])
}

func TestOptimize_PreserveCurrentAssignments(t *testing.T) {
	guests := []Guest{
		guest("A", rel("B", RelPartner)),
		guest("B", rel("A", RelPartner)),
		guest("C"),
		guest("D"),
	}
	guests[0].TableID = "T1"
	guests[1].TableID = "T2"
	guests[2].TableID = "T2"
	guests[3].TableID = "T2" // T2 is full by the time D is pinned
	tables := []Table{table("T1", 2), table("T2", 2)}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{PreserveCurrentAssignments: true})

	assert.Equal(t, "T1", res.Assignment["A"])
	assert.Equal(t, "T2", res.Assignment["B"])
	assert.Equal(t, "T2", res.Assignment["C"])
	assert.Equal(t, "T1", res.Assignment["D"])
	assert.Equal(t, []string{"D"}, res.MovedGuests)

	free := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{})
	assert.Equal(t, free.Assignment["A"], free.Assignment["B"])
}

func TestOptimize_Deterministic(t *testing.T) {
	guests := crowd(22)
	tables := crowdTables()
	constraints := []Constraint{
		{ID: "k1", Type: MustSitTogether, GuestIDs: []string{"g01", "g02"}, Priority: PriorityRequired},
		{ID: "k2", Type: DifferentTable, GuestIDs: []string{"g05", "g06"}, Priority: PriorityPreferred},
	}

	first := OptimizeSeatingAdvanced(guests, tables, constraints, DefaultWeights(), Options{})
	second := OptimizeSeatingAdvanced(guests, tables, constraints, DefaultWeights(), Options{})

	require.Equal(t, first, second)
	assert.True(t, occupancyWithin(first.Assignment, tables))
	assert.GreaterOrEqual(t, first.TotalScore, CalculateTotalScore(
		GreedyAssignment(GroupGuestsByPriority(guests, PartnerPairs(guests), constraints), tables, guests, constraints, DefaultWeights()),
		guests, constraints, DefaultWeights()))
}

type noRefine struct{ called bool }

func (n *noRefine) Refine(a Assignment, _ []Guest, _ []Table, _ []Constraint, _ Weights, _ RefineOptions) (Assignment, RefineStats) {
	n.called = true
	return a, RefineStats{}
}

func TestOptimize_PluggableStages(t *testing.T) {
	guests := []Guest{guest("A", rel("B", RelFriend)), guest("B"), guest("C"), guest("D")}
	tables := []Table{table("T1", 2), table("T2", 2)}
	r := &noRefine{}

	res := OptimizeSeatingAdvanced(guests, tables, nil, DefaultWeights(), Options{Refiner: r})

	assert.True(t, r.called)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, GreedyAssignment(GroupGuestsByPriority(guests, nil, nil), tables, guests, nil, DefaultWeights()), res.Assignment)
}
