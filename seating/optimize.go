package seating

import (
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Options tunes OptimizeSeatingAdvanced. The zero value optimizes every
// non-declined guest over every table with the stock strategy.
type Options struct {
	// SelectedGuestIDs restricts the run to these guests. When empty, every
	// guest whose RSVP is not declined takes part.
	SelectedGuestIDs []string
	// SelectedTableIDs restricts the run to these tables. When empty, all
	// tables are used.
	SelectedTableIDs []string
	// MaxIterations caps local-search passes (see RefineOptions).
	MaxIterations int
	// PreserveCurrentAssignments pins guests already seated at a selected
	// table, as long as that table has room for them in guest order.
	PreserveCurrentAssignments bool
	// Deadline, when non-zero, stops refinement early.
	Deadline time.Time
	Logger   logr.Logger

	Constructor Constructor
	Refiner     Refiner
}

// OptimizeSeatingAdvanced proposes a seating for the eligible guests and
// tables and reports how it compares with the seating supplied on input.
// It never fails: guests that cannot be seated are absent from the result's
// assignment and show up in MovedGuests if they previously had a table.
func OptimizeSeatingAdvanced(guests []Guest, tables []Table, constraints []Constraint, w Weights, opts Options) Result {
	log := opts.Logger
	construct := opts.Constructor
	if construct == nil {
		construct = Greedy{}
	}
	refiner := opts.Refiner
	if refiner == nil {
		refiner = SwapSearch{}
	}

	eligible := EligibleGuests(guests, opts.SelectedGuestIDs)
	eligibleTables := eligibleTables(tables, opts.SelectedTableIDs)
	log.Info("[init]", "guests", len(eligible), "tables", len(eligibleTables), "constraints", len(constraints))

	previous := Assignment{}
	for _, g := range eligible {
		if g.TableID != "" {
			previous[g.ID] = g.TableID
		}
	}

	seed, pinned := Assignment{}, map[string]bool{}
	if opts.PreserveCurrentAssignments {
		seed, pinned = pinCurrent(eligible, eligibleTables)
		log.V(1).Info("[pin]", "guests", len(pinned))
	}

	var movable []Guest
	for _, g := range eligible {
		if !pinned[g.ID] {
			movable = append(movable, g)
		}
	}
	groups := GroupGuestsByPriority(movable, PartnerPairs(movable), constraints)

	a := construct.Construct(seed, groups, eligibleTables, eligible, constraints, w)
	p := newProblem(eligible, constraints, w)
	log.Info("[greedy]", "groups", len(groups), "seated", len(a), "score", p.total(a))

	a, stats := refiner.Refine(a, eligible, eligibleTables, constraints, w, RefineOptions{
		MaxIterations: opts.MaxIterations,
		Pinned:        pinned,
		Deadline:      opts.Deadline,
		Logger:        log,
	})

	res := Result{
		Assignment:         a,
		PreviousAssignment: previous,
		TotalScore:         p.total(a),
		PreviousScore:      p.total(previous),
		GuestScores:        p.scores(a),
		Violations:         DetectViolations(a, constraints, eligible),
		MovedGuests:        MovedGuests(previous, a, eligible),
		Iterations:         stats.Swaps,
		DeadlineExceeded:   stats.DeadlineExceeded,
	}
	res.ScoreImprovement = res.TotalScore - res.PreviousScore
	res.TableScores = AggregateTableScores(res.GuestScores, eligibleTables)

	log.Info("[done]", "score", res.TotalScore, "previous", res.PreviousScore,
		"swaps", stats.Swaps, "violations", len(res.Violations), "moved", len(res.MovedGuests))
	return res
}

// EligibleGuests returns the guests that take part in a run: the selected
// ones when selected is non-empty, otherwise every guest who has not declined.
func EligibleGuests(guests []Guest, selected []string) []Guest {
	out := make([]Guest, 0, len(guests))
	for _, g := range guests {
		if len(selected) > 0 {
			if slices.Contains(selected, g.ID) {
				out = append(out, g)
			}
			continue
		}
		if g.RSVP != RSVPDeclined {
			out = append(out, g)
		}
	}
	return out
}

func eligibleTables(tables []Table, selected []string) []Table {
	if len(selected) == 0 {
		return slices.Clone(tables)
	}
	out := make([]Table, 0, len(selected))
	for _, t := range tables {
		if slices.Contains(selected, t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// pinCurrent seeds an assignment with guests already seated at one of tables,
// skipping anyone who would push a table past capacity.
func pinCurrent(guests []Guest, tables []Table) (Assignment, map[string]bool) {
	capacity := make(map[string]int, len(tables))
	for _, t := range tables {
		capacity[t.ID] = t.Capacity
	}
	seed := Assignment{}
	pinned := map[string]bool{}
	used := map[string]int{}
	for _, g := range guests {
		room, ok := capacity[g.TableID]
		if !ok || used[g.TableID] >= room {
			continue
		}
		used[g.TableID]++
		seed[g.ID] = g.TableID
		pinned[g.ID] = true
	}
	return seed, pinned
}
