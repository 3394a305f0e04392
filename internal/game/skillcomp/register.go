// Package skillcomp holds the component kinds that can be attached to skills.
package skillcomp

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/component"
)

// Kinds returns every skill component kind, in registration order.
func Kinds() []component.Behavior {
	return []component.Behavior{
		Time{},
		EndTime{},
		Regeneration{},
		StatChange{},
		SkillTags{},
		Damage{},
		Resist{},
		Hit{},
		Avoid{},
		Crit{},
		AttackSpeed{},
		EvalDamage{},
		DamageMultiplier{},
		Vantage{},
		NoDouble{},
		ExpMultiplier{},
		DecreasingSightRange{},
		Condition{},
		AlternateDamageFormula{},
		AlternateResistFormula{},
		AlternateAccuracyFormula{},
		AlternateAvoidFormula{},
		AlternateCritAccuracyFormula{},
		AlternateAttackSpeedFormula{},
		OverrideDamageFormula{},
		OverrideResistFormula{},
		OverrideAccuracyFormula{},
		OverrideAvoidFormula{},
		OverrideCritAccuracyFormula{},
		OverrideAttackSpeedFormula{},
		ProcTurnSkill{},
		ProcRate{},
		Aura{},
		AuraRange{},
		AuraTarget{},
	}
}

// Register adds every skill kind to r and returns how many were accepted.
func Register(r *component.Registry) int {
	n := 0
	for _, k := range Kinds() {
		if r.Register(k) {
			n++
		}
	}
	slog.Debug("skill components registered", "count", n)
	return n
}
