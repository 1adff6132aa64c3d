// Package seating assigns event guests to fixed-capacity tables.
//
// The engine is a two-stage heuristic:
//
//   - GroupGuestsByPriority derives must-move-together units (partner pairs,
//     required same-table constraints, singletons) and a placement order.
//   - GreedyAssignment places each unit at the table with the best marginal
//     score, never seating two guests linked by an "avoid" relationship together.
//   - LocalSearchImprove / Refine swap guests between tables while the total
//     score strictly increases, bounded by an iteration budget.
//
// ScoreGuestAtTable and CalculateTotalScore define the objective. DetectViolations
// and AggregateTableScores summarise a finished assignment independently of the
// search. OptimizeSeatingAdvanced wires everything together.
//
// All functions are synchronous and free of side effects. Inputs are treated as
// read-only snapshots; callers must not mutate them during a call.
package seating
