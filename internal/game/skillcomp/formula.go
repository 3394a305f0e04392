package skillcomp

import "github.com/udisondev/tactica/internal/component"

// formula is the shared part of every formula-swapping kind; the embedding
// type picks the hook.
type formula struct{}

func formulaMeta(nid, desc, equation string) component.Meta {
	return component.Meta{
		Nid:    nid,
		Desc:   desc,
		Tag:    component.TagFormula,
		Expose: component.Expose{Type: component.TypeEquation},
		Value:  equation,
	}
}

func (formula) name(c *component.Instance) string { return component.StringValue(c) }

type AlternateDamageFormula struct{ formula }

func (AlternateDamageFormula) Meta() component.Meta {
	return formulaMeta("alternate_damage_formula", "Unit uses a different damage formula", "DAMAGE")
}
func (f AlternateDamageFormula) DamageFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type AlternateResistFormula struct{ formula }

func (AlternateResistFormula) Meta() component.Meta {
	return formulaMeta("alternate_resist_formula", "Unit uses a different resist formula", "DEFENSE")
}
func (f AlternateResistFormula) ResistFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type AlternateAccuracyFormula struct{ formula }

func (AlternateAccuracyFormula) Meta() component.Meta {
	return formulaMeta("alternate_accuracy_formula", "Unit uses a different accuracy formula", "HIT")
}
func (f AlternateAccuracyFormula) AccuracyFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type AlternateAvoidFormula struct{ formula }

func (AlternateAvoidFormula) Meta() component.Meta {
	return formulaMeta("alternate_avoid_formula", "Unit uses a different avoid formula", "AVOID")
}
func (f AlternateAvoidFormula) AvoidFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type AlternateCritAccuracyFormula struct{ formula }

func (AlternateCritAccuracyFormula) Meta() component.Meta {
	return formulaMeta("alternate_crit_accuracy_formula", "Unit uses a different critical accuracy formula", "CRIT_HIT")
}
func (f AlternateCritAccuracyFormula) CritAccuracyFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type AlternateAttackSpeedFormula struct{ formula }

func (AlternateAttackSpeedFormula) Meta() component.Meta {
	return formulaMeta("alternate_attack_speed_formula", "Unit uses a different attack speed formula", "ATTACK_SPEED")
}
func (f AlternateAttackSpeedFormula) AttackSpeedFormula(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

// Override kinds win over every alternate formula regardless of order.

type OverrideDamageFormula struct{ formula }

func (OverrideDamageFormula) Meta() component.Meta {
	return formulaMeta("override_damage_formula", "Unit always uses this damage formula", "DAMAGE")
}
func (f OverrideDamageFormula) DamageFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type OverrideResistFormula struct{ formula }

func (OverrideResistFormula) Meta() component.Meta {
	return formulaMeta("override_resist_formula", "Unit always uses this resist formula", "DEFENSE")
}
func (f OverrideResistFormula) ResistFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type OverrideAccuracyFormula struct{ formula }

func (OverrideAccuracyFormula) Meta() component.Meta {
	return formulaMeta("override_accuracy_formula", "Unit always uses this accuracy formula", "HIT")
}
func (f OverrideAccuracyFormula) AccuracyFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type OverrideAvoidFormula struct{ formula }

func (OverrideAvoidFormula) Meta() component.Meta {
	return formulaMeta("override_avoid_formula", "Unit always uses this avoid formula", "AVOID")
}
func (f OverrideAvoidFormula) AvoidFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type OverrideCritAccuracyFormula struct{ formula }

func (OverrideCritAccuracyFormula) Meta() component.Meta {
	return formulaMeta("override_crit_accuracy_formula", "Unit always uses this critical accuracy formula", "CRIT_HIT")
}
func (f OverrideCritAccuracyFormula) CritAccuracyFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}

type OverrideAttackSpeedFormula struct{ formula }

func (OverrideAttackSpeedFormula) Meta() component.Meta {
	return formulaMeta("override_attack_speed_formula", "Unit always uses this attack speed formula", "ATTACK_SPEED")
}
func (f OverrideAttackSpeedFormula) AttackSpeedFormulaOverride(c *component.Instance, a *component.Args) string {
	return f.name(c)
}
