// Package ai ranks the actions available to computer-controlled units by
// asking the components on their items.
package ai

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/component"
)

// Choice is one item used on one target.
type Choice struct {
	Item   *component.Entity
	Target component.Unit
	Score  float64
}

// Evaluator answers targeting and priority questions for AI units.
type Evaluator struct {
	eng  *component.Engine
	eval component.Evaluator
}

// NewEvaluator creates an Evaluator. eval may be nil.
func NewEvaluator(eng *component.Engine, eval component.Evaluator) *Evaluator {
	return &Evaluator{eng: eng, eval: eval}
}

// Targets returns the units u may use item on: the union of every ai_targets
// answer, minus those rejected by target_restrict. Unavailable items have no
// targets.
func (e *Evaluator) Targets(u component.Unit, item *component.Entity, board component.Board) []component.Unit {
	a := e.args(u, item, nil, board)
	if !component.All(e.eng.Dispatch(item, component.Available, a, component.Aggregate)) {
		return nil
	}

	var out []component.Unit
	for _, t := range component.UnionUnits(e.eng.Dispatch(item, component.AITargets, a, component.Aggregate)) {
		a.Target = t
		if component.All(e.eng.Dispatch(item, component.TargetRestrict, a, component.Aggregate)) {
			out = append(out, t)
		}
	}
	return out
}

// Score is the first non-zero ai_priority answer for using item on target.
func (e *Evaluator) Score(u component.Unit, item *component.Entity, target component.Unit, board component.Board) float64 {
	a := e.args(u, item, target, board)
	return e.eng.Dispatch(item, component.AIPriority, a, component.FirstTruthy).Float()
}

// Best picks the highest scoring choice over u's items and their targets.
// Ties keep the earlier item, then the earlier target.
func (e *Evaluator) Best(u component.Unit, board component.Board) (Choice, bool) {
	var best Choice
	found := false
	for _, item := range u.Items() {
		for _, t := range e.Targets(u, item, board) {
			score := e.Score(u, item, t, board)
			if IsDebugEnabled() {
				slog.Debug("ai candidate",
					"unit", u.NID(),
					"item", item.Nid,
					"target", t.NID(),
					"score", score)
			}
			if !found || score > best.Score {
				best = Choice{Item: item, Target: t, Score: score}
				found = true
			}
		}
	}
	return best, found
}

func (e *Evaluator) args(u component.Unit, item *component.Entity, target component.Unit, board component.Board) *component.Args {
	return &component.Args{Unit: u, Item: item, Target: target, Board: board, Eval: e.eval}
}
