package skillcomp

import (
	"log/slog"
	"math"

	"github.com/udisondev/tactica/internal/component"
)

func intMeta(nid, desc string) component.Meta {
	return component.Meta{
		Nid:    nid,
		Desc:   desc,
		Tag:    component.TagCombat,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  0,
	}
}

// StatChange grants flat stat bonuses.
type StatChange struct{}

func (StatChange) Meta() component.Meta {
	return component.Meta{
		Nid:    "stat_change",
		Desc:   "Gives stat bonuses",
		Tag:    component.TagCombat,
		Expose: component.Expose{Type: component.TypeDict, Elem: component.TypeStat},
		Value:  []component.Pair{},
	}
}

func (StatChange) StatChange(c *component.Instance, a *component.Args) []component.Pair {
	return component.PairsValue(c)
}

type Damage struct{}

func (Damage) Meta() component.Meta { return intMeta("damage", "Gives +X damage") }
func (Damage) ModifyDamage(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type Resist struct{}

func (Resist) Meta() component.Meta { return intMeta("resist", "Gives +X damage resist") }
func (Resist) ModifyResist(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type Hit struct{}

func (Hit) Meta() component.Meta { return intMeta("hit", "Gives +X accuracy") }
func (Hit) ModifyAccuracy(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type Avoid struct{}

func (Avoid) Meta() component.Meta { return intMeta("avoid", "Gives +X avoid") }
func (Avoid) ModifyAvoid(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type Crit struct{}

func (Crit) Meta() component.Meta { return intMeta("crit", "Gives +X crit") }
func (Crit) ModifyCritAccuracy(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type AttackSpeed struct{}

func (AttackSpeed) Meta() component.Meta { return intMeta("attack_speed", "Gives +X attack speed") }
func (AttackSpeed) ModifyAttackSpeed(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

// EvalDamage adds the result of an expression evaluated for the unit.
type EvalDamage struct{}

func (EvalDamage) Meta() component.Meta {
	return component.Meta{
		Nid:    "eval_damage",
		Desc:   "Gives +X damage solved using evaluate",
		Tag:    component.TagCombat,
		Expose: component.Expose{Type: component.TypeString},
		Value:  "0",
	}
}

func (EvalDamage) ModifyDamage(c *component.Instance, a *component.Args) int {
	if a == nil || a.Eval == nil {
		return 0
	}
	v, err := a.Eval.Eval(component.StringValue(c), a.UnitFor(c))
	if err != nil {
		slog.Warn("eval_damage failed", "expr", component.StringValue(c), "err", err)
		return 0
	}
	return int(math.Floor(v))
}

// DamageMultiplier scales final damage.
type DamageMultiplier struct{}

func (DamageMultiplier) Meta() component.Meta {
	return component.Meta{
		Nid:    "damage_multiplier",
		Desc:   "Multiplies damage given by a fraction",
		Tag:    component.TagCombat,
		Expose: component.Expose{Type: component.TypeFloat},
		Value:  0.5,
	}
}

func (DamageMultiplier) DamageMultiplier(c *component.Instance, a *component.Args) float64 {
	return component.FloatValue(c)
}

type Vantage struct{}

func (Vantage) Meta() component.Meta {
	return component.Meta{Nid: "vantage", Desc: "Unit will attack first even while defending", Tag: component.TagCombat}
}
func (Vantage) Vantage(c *component.Instance, a *component.Args) bool { return true }

type NoDouble struct{}

func (NoDouble) Meta() component.Meta {
	return component.Meta{Nid: "no_double", Desc: "Unit cannot double", Tag: component.TagCombat}
}
func (NoDouble) NoDouble(c *component.Instance, a *component.Args) bool { return true }
