package combat

import (
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/equation"
)

// Equation names used when no skill swaps the formula for spells.
const (
	MagicDamage  = "MAGIC_DAMAGE"
	MagicDefense = "MAGIC_DEFENSE"
	CritAvoid    = "CRIT_AVOID"
	HealEquation = "HEAL"
)

// CritMultiplier scales damage on a critical strike.
const CritMultiplier = 3

// Resolver computes combat numbers from the equation set and the components
// carried by units and items.
type Resolver struct {
	eng *component.Engine
	eqs *equation.Set
}

var _ component.Calculator = (*Resolver)(nil)

// NewResolver creates a Resolver. A nil eqs uses the default equations.
func NewResolver(eng *component.Engine, eqs *equation.Set) *Resolver {
	if eqs == nil {
		eqs = equation.Default()
	}
	return &Resolver{eng: eng, eqs: eqs}
}

// Formula returns the equation name a unit uses for formula hook h. The last
// attached override among the unit's skills wins, then the first plain
// answer, then the built-in name.
func (r *Resolver) Formula(u component.Unit, h component.Hook) string {
	return r.eng.DispatchAll(u.Skills(), h, &component.Args{Eval: r.eqs, Unit: u}, component.Override).String()
}

// Damage implements component.Calculator.
func (r *Resolver) Damage(attacker component.Unit, item *component.Entity, defender component.Unit, mode string, crit bool) int {
	a := &component.Args{Eval: r.eqs, Unit: attacker, Item: item, Target: defender, Mode: mode}

	might := r.eng.Dispatch(item, component.Damage, a, component.FirstTruthy).Int()
	might += r.equation(attacker, r.damageFormula(attacker, item))
	might += r.skillSum(attacker, component.ModifyDamage, a)
	might += component.SumInt(r.eng.Dispatch(item, component.DynamicDamage, a, component.Aggregate))
	might += r.skillSum(attacker, component.DynamicDamage, a)

	dmg := might - r.Resist(defender, item, attacker)
	if crit {
		dmg *= CritMultiplier
	}
	mult := component.Product(r.eng.DispatchAll(attacker.Skills(), component.DamageMultiplier, a, component.Aggregate))
	return max(0, int(float64(dmg)*mult))
}

// Resist is the damage the defender shrugs off from item.
func (r *Resolver) Resist(defender component.Unit, item *component.Entity, attacker component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: defender, Item: item, Target: attacker, Mode: component.ModeDefense}
	res := r.eng.DispatchAll(defender.Skills(), component.ResistFormula, a, component.Override)
	name := res.String()
	if !res.Found && r.isSpell(item, a) {
		name = MagicDefense
	}
	return r.equation(defender, name) + r.skillSum(defender, component.ModifyResist, a)
}

// Heal implements component.Calculator.
func (r *Resolver) Heal(healer component.Unit, item *component.Entity, target component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: healer, Item: item, Target: target}
	return r.equation(healer, HealEquation) + r.skillSum(healer, component.EmpowerHeal, a)
}

// HitChance is the percent chance attacker hits defender with item. Items
// without a hit component always hit.
func (r *Resolver) HitChance(attacker component.Unit, item *component.Entity, defender component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: attacker, Item: item, Target: defender}
	hit := r.eng.Dispatch(item, component.Hit, a, component.FirstTruthy)
	if hit.Calls == 0 {
		return 100
	}
	acc := hit.Int() +
		r.equation(attacker, r.Formula(attacker, component.AccuracyFormula)) +
		r.skillSum(attacker, component.ModifyAccuracy, a)
	return clamp(acc-r.Avoid(defender, attacker), 0, 100)
}

// Avoid is the defender's avoid rating.
func (r *Resolver) Avoid(defender, attacker component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: defender, Target: attacker, Mode: component.ModeDefense}
	return r.equation(defender, r.Formula(defender, component.AvoidFormula)) +
		r.skillSum(defender, component.ModifyAvoid, a)
}

// CritChance is the percent chance a hit is critical. Items without a crit
// component never crit.
func (r *Resolver) CritChance(attacker component.Unit, item *component.Entity, defender component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: attacker, Item: item, Target: defender}
	crit := r.eng.Dispatch(item, component.Crit, a, component.FirstTruthy)
	if crit.Calls == 0 {
		return 0
	}
	acc := crit.Int() +
		r.equation(attacker, r.Formula(attacker, component.CritAccuracyFormula)) +
		r.skillSum(attacker, component.ModifyCritAccuracy, a)
	return clamp(acc-r.equation(defender, CritAvoid), 0, 100)
}

// AttackSpeed is the unit's attack speed rating.
func (r *Resolver) AttackSpeed(u component.Unit) int {
	a := &component.Args{Eval: r.eqs, Unit: u}
	return r.equation(u, r.Formula(u, component.AttackSpeedFormula)) +
		r.skillSum(u, component.ModifyAttackSpeed, a)
}

func (r *Resolver) damageFormula(u component.Unit, item *component.Entity) string {
	a := &component.Args{Eval: r.eqs, Unit: u, Item: item}
	res := r.eng.DispatchAll(u.Skills(), component.DamageFormula, a, component.Override)
	if !res.Found && r.isSpell(item, a) {
		return MagicDamage
	}
	return res.String()
}

func (r *Resolver) isSpell(item *component.Entity, a *component.Args) bool {
	return item != nil && r.eng.Dispatch(item, component.IsSpell, a, component.FirstTruthy).Bool()
}

func (r *Resolver) skillSum(u component.Unit, h component.Hook, a *component.Args) int {
	return component.SumInt(r.eng.DispatchAll(u.Skills(), h, a, component.Aggregate))
}

func (r *Resolver) equation(u component.Unit, name string) int {
	return r.eqs.Get(name, Boosted(r.eng, r.eqs, u))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
