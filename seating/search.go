package seating

import (
	"time"

	"github.com/go-logr/logr"
)

// DefaultMaxIterations bounds the number of local-search passes.
const DefaultMaxIterations = 10

// improvementEps is the minimum gain for a swap to count as an improvement.
const improvementEps = 1e-9

// deadlineCheckEvery is how many swap evaluations run between clock reads.
const deadlineCheckEvery = 256

// RefineOptions controls a Refiner run.
type RefineOptions struct {
	// MaxIterations caps the passes; 0 means DefaultMaxIterations and a
	// negative value disables refinement.
	MaxIterations int
	// Pinned guests never move.
	Pinned map[string]bool
	// Deadline, when non-zero, stops the search at the first checkpoint past it.
	Deadline time.Time
	Logger   logr.Logger
}

// RefineStats reports what a Refiner did.
type RefineStats struct {
	Passes           int
	Swaps            int
	DeadlineExceeded bool
}

// Refiner improves a complete assignment without breaking table capacity.
type Refiner interface {
	Refine(a Assignment, guests []Guest, tables []Table, constraints []Constraint, w Weights, opts RefineOptions) (Assignment, RefineStats)
}

// SwapSearch is a first-improvement pairwise swap search.
type SwapSearch struct{}

// Refine implements Refiner.
func (SwapSearch) Refine(a Assignment, guests []Guest, tables []Table, constraints []Constraint, w Weights, opts RefineOptions) (Assignment, RefineStats) {
	return newProblem(guests, constraints, w).refine(a, tables, opts)
}

// LocalSearchImprove runs one pass over guest pairs seated at different
// tables and returns the first swap that strictly raises the total score
// without seating anyone next to a guest they are avoid-linked with. ok is
// false when no such swap exists.
func LocalSearchImprove(a Assignment, guests []Guest, tables []Table, constraints []Constraint, w Weights) (improved Assignment, ok bool) {
	p := newProblem(guests, constraints, w)
	return p.improve(a, tables, nil, &checkpoint{})
}

// Refine repeats LocalSearchImprove up to maxIterations times, stopping at the
// first pass without improvement.
func Refine(a Assignment, guests []Guest, tables []Table, constraints []Constraint, w Weights, maxIterations int) Assignment {
	out, _ := SwapSearch{}.Refine(a, guests, tables, constraints, w, RefineOptions{MaxIterations: maxIterations})
	return out
}

func (p *problem) refine(a Assignment, tables []Table, opts RefineOptions) (Assignment, RefineStats) {
	var stats RefineStats
	maxIter := opts.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}
	log := opts.Logger
	ck := &checkpoint{deadline: opts.Deadline}

	cur := a
	for stats.Passes < maxIter {
		stats.Passes++
		next, ok := p.improve(cur, tables, opts.Pinned, ck)
		if ck.exceeded {
			stats.DeadlineExceeded = true
			log.Info("[refine] deadline reached", "pass", stats.Passes, "swaps", stats.Swaps)
			break
		}
		if !ok {
			break
		}
		cur = next
		stats.Swaps++
		if v := log.V(1); v.Enabled() {
			v.Info("[refine] swap accepted", "pass", stats.Passes, "score", p.total(cur))
		}
	}
	return cur, stats
}

// improve performs one first-improvement pass.
func (p *problem) improve(a Assignment, tables []Table, pinned map[string]bool, ck *checkpoint) (Assignment, bool) {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.ID] = true
	}

	// Movable guests in input order.
	var movable []string
	for i := range p.guests {
		id := p.guests[i].ID
		if t, ok := a[id]; ok && known[t] && !pinned[id] {
			movable = append(movable, id)
		}
	}

	current := p.total(a)
	for i := 0; i < len(movable); i++ {
		x := movable[i]
		for j := i + 1; j < len(movable); j++ {
			y := movable[j]
			tx, ty := a[x], a[y]
			if tx == ty {
				continue
			}
			if ck.tick() {
				return a, false
			}
			if p.avoidConflict(a, []string{x}, ty, y) || p.avoidConflict(a, []string{y}, tx, x) {
				continue
			}
			trial := a.Swapped(x, y)
			if p.total(trial) > current+improvementEps {
				return trial, true
			}
		}
	}
	return a, false
}

// checkpoint is a cooperative deadline probe read every deadlineCheckEvery ticks.
type checkpoint struct {
	deadline time.Time
	step     int
	exceeded bool
}

func (c *checkpoint) tick() bool {
	if c.deadline.IsZero() {
		return false
	}
	c.step++
	if c.step%deadlineCheckEvery == 0 && time.Now().After(c.deadline) {
		c.exceeded = true
	}
	return c.exceeded
}
