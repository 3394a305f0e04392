package itemcomp

import (
	"log/slog"
	"slices"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
)

// Damage deals damage on hit and crit.
type Damage struct{}

func (Damage) Meta() component.Meta {
	return component.Meta{
		Nid:    "damage",
		Desc:   "Item does damage on hit",
		Tag:    component.TagWeapon,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  0,
	}
}

func (Damage) Damage(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

func (Damage) OnHit(c *component.Instance, a *component.Args) { strike(c, a, false) }

func (Damage) OnCrit(c *component.Instance, a *component.Args) { strike(c, a, true) }

func strike(c *component.Instance, a *component.Args, crit bool) {
	if a == nil || a.Target == nil {
		return
	}
	attacker := a.UnitFor(c)
	dmg := component.IntValue(c)
	if a.Calc != nil && attacker != nil {
		dmg = a.Calc.Damage(attacker, c.Owner(), a.Target, a.Mode, crit)
	}
	dmg = max(0, dmg)

	a.AppendAction(&model.ChangeHP{Unit: a.Target, Delta: -dmg})
	a.AppendPlayback(playback.Damage(nidOf(attacker), a.Target.NID(), ownerNid(c), dmg, crit))
	if dmg == 0 {
		a.AppendPlayback(playback.Sound(playback.SoundNoDamage))
		a.AppendPlayback(playback.Anim(playback.AnimNoDamage, a.Target.NID()))
	}
}

// Heal restores HP on hit.
type Heal struct{}

func (Heal) Meta() component.Meta {
	return component.Meta{
		Nid:    "heal",
		Desc:   "Item heals on hit",
		Tag:    component.TagWeapon,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  10,
	}
}

func (Heal) Heal(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

// TargetRestrict only allows wounded targets.
func (Heal) TargetRestrict(c *component.Instance, a *component.Args) bool {
	return a != nil && a.Target != nil && a.Target.HP() < a.Target.MaxHP()
}

func (Heal) OnHit(c *component.Instance, a *component.Args) {
	if a == nil || a.Target == nil {
		return
	}
	healer := a.UnitFor(c)
	amount := component.IntValue(c)
	if a.Calc != nil && healer != nil {
		amount += a.Calc.Heal(healer, c.Owner(), a.Target)
	}

	a.AppendAction(&model.ChangeHP{Unit: a.Target, Delta: amount})
	a.AppendPlayback(playback.Heal(nidOf(healer), a.Target.NID(), ownerNid(c), amount))
	a.AppendPlayback(playback.Sound(playback.SoundMapHeal))
	a.AppendPlayback(playback.Anim(healAnim(amount), a.Target.NID()))
}

func healAnim(amount int) string {
	switch {
	case amount >= 30:
		return "MapBigHealTrans"
	case amount >= 15:
		return "MapMediumHealTrans"
	}
	return "MapSmallHealTrans"
}

type Hit struct{}

func (Hit) Meta() component.Meta {
	return component.Meta{
		Nid:    "hit",
		Desc:   "Item has a chance to hit. If left off, item will always hit.",
		Tag:    component.TagWeapon,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  75,
	}
}

func (Hit) Hit(c *component.Instance, a *component.Args) int { return component.IntValue(c) }

type Crit struct{}

func (Crit) Meta() component.Meta {
	return component.Meta{
		Nid:    "crit",
		Desc:   "Item has a chance to crit. If left off, item cannot crit.",
		Tag:    component.TagWeapon,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  0,
	}
}

func (Crit) Crit(c *component.Instance, a *component.Args) int { return component.IntValue(c) }

// StatusOnHit grants a skill to the target on hit.
type StatusOnHit struct{}

func (StatusOnHit) Meta() component.Meta {
	return component.Meta{
		Nid:    "status_on_hit",
		Desc:   "Item gives status to target when it hits",
		Tag:    component.TagStatus,
		Expose: component.Expose{Type: component.TypeSkill},
	}
}

func (StatusOnHit) OnHit(c *component.Instance, a *component.Args) {
	nid := component.StringValue(c)
	if a == nil || a.Target == nil || nid == "" {
		return
	}
	status, err := a.NewSkill(nid)
	if err != nil {
		slog.Warn("status not applied", "skill", nid, "err", err)
		return
	}
	a.AppendAction(&model.AddSkill{Unit: a.Target, Skill: status})
	a.AppendPlayback(playback.Token{
		Kind:   playback.StatusHit,
		Source: nidOf(a.UnitFor(c)),
		Target: a.Target.NID(),
		Item:   ownerNid(c),
		Name:   nid,
	})
}

// AIPriority prefers targets that do not already carry the status.
func (StatusOnHit) AIPriority(c *component.Instance, a *component.Args) float64 {
	if a == nil || a.Target == nil {
		return 0
	}
	nid := component.StringValue(c)
	if slices.ContainsFunc(a.Target.Skills(), func(s *component.Entity) bool { return s.Nid == nid }) {
		return 0
	}
	return 0.5
}

func nidOf(u component.Unit) string {
	if u == nil {
		return ""
	}
	return u.NID()
}

func ownerNid(c *component.Instance) string {
	if e := c.Owner(); e != nil {
		return e.Nid
	}
	return ""
}
