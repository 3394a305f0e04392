package combat

import "github.com/udisondev/tactica/internal/component"

// boosted reports a unit's stats with the stat_change bonuses of its active
// skills folded in.
type boosted struct {
	component.Unit
	bonus map[string]int
}

// Boosted wraps u so Stat includes skill stat bonuses. Units without bonuses
// are returned as is.
func Boosted(eng *component.Engine, eval component.Evaluator, u component.Unit) component.Unit {
	if u == nil {
		return nil
	}
	if b, ok := u.(*boosted); ok {
		return b
	}
	pairs := component.SumStats(eng.DispatchAll(u.Skills(), component.StatChange, &component.Args{Eval: eval, Unit: u}, component.Aggregate))
	if len(pairs) == 0 {
		return u
	}
	bonus := make(map[string]int, len(pairs))
	for _, p := range pairs {
		n, _ := component.AsInt(p.Value)
		bonus[p.Key] += n
	}
	return &boosted{Unit: u, bonus: bonus}
}

func (b *boosted) Stat(name string) int {
	return b.Unit.Stat(name) + b.bonus[name]
}
