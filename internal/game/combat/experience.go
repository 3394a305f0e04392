package combat

import (
	"math"
	"slices"

	"github.com/udisondev/tactica/internal/component"
)

// ExpCurve shapes the experience handed out for one exchange.
type ExpCurve struct {
	// Magnitude is the experience for fighting a unit of equal level.
	Magnitude float64
	// Slope makes each level of difference worth exp(Slope) times more.
	Slope float64
	// Offset shifts the curve so players stay this many levels ahead.
	Offset int
	// KillMultiplier applies when the defender died.
	KillMultiplier float64
	// BossBonus is added for killing a unit tagged Boss.
	BossBonus int
	// Min is the least a unit gets for striking at all.
	Min int
}

// DefaultExpCurve returns the stock curve.
func DefaultExpCurve() ExpCurve {
	return ExpCurve{
		Magnitude:      10,
		Slope:          0.035,
		KillMultiplier: 3,
		BossBonus:      40,
		Min:            1,
	}
}

const maxExp = 100

// Experience is what attacker earns from out against defender. A unit that
// never struck gets nothing; otherwise the curve result is scaled by the
// product of exp_multiplier over the attacker's skills and clamped into
// [Min, 100].
func (r *Resolver) Experience(curve ExpCurve, attacker, defender component.Unit, out Outcome) int {
	struck, landed := false, false
	for _, s := range out.Strikes {
		if s.Attacker != attacker.NID() {
			continue
		}
		struck = true
		landed = landed || s.Hit
	}
	if !struck {
		return 0
	}
	if !landed {
		return curve.Min
	}

	diff := level(defender) - level(attacker)
	exp := curve.Magnitude * math.Exp(curve.Slope*float64(diff+curve.Offset))

	a := &component.Args{Eval: r.eqs, Unit: attacker, Target: defender}
	exp *= component.Product(r.eng.DispatchAll(attacker.Skills(), component.ExpMultiplier, a, component.Aggregate))

	if dead(defender) {
		exp *= curve.KillMultiplier
		if slices.Contains(defender.Tags(), "Boss") {
			exp += float64(curve.BossBonus)
		}
	}
	return max(curve.Min, min(int(exp), maxExp))
}

func level(u component.Unit) int { return max(1, u.Stat("LVL")) }
