package itemcomp

import "github.com/udisondev/tactica/internal/component"

// TargetEnemy lets the item target hostile units.
type TargetEnemy struct{}

func (TargetEnemy) Meta() component.Meta {
	return component.Meta{Nid: "target_enemy", Desc: "Item targets any enemy", Tag: component.TagTarget}
}

func (TargetEnemy) TargetRestrict(c *component.Instance, a *component.Args) bool {
	u := a.UnitFor(c)
	return u != nil && a != nil && a.Target != nil && a.Board != nil && !a.Board.Allied(u, a.Target)
}

func (TargetEnemy) AITargets(c *component.Instance, a *component.Args) []component.Unit {
	return candidates(c, a, false)
}

// TargetAlly lets the item target friendly units other than the user.
type TargetAlly struct{}

func (TargetAlly) Meta() component.Meta {
	return component.Meta{Nid: "target_ally", Desc: "Item targets any ally", Tag: component.TagTarget}
}

func (TargetAlly) TargetRestrict(c *component.Instance, a *component.Args) bool {
	u := a.UnitFor(c)
	return u != nil && a != nil && a.Target != nil && a.Board != nil &&
		a.Target.NID() != u.NID() && a.Board.Allied(u, a.Target)
}

func (TargetAlly) AITargets(c *component.Instance, a *component.Args) []component.Unit {
	return candidates(c, a, true)
}

func candidates(c *component.Instance, a *component.Args, allied bool) []component.Unit {
	u := a.UnitFor(c)
	if u == nil || a == nil || a.Board == nil {
		return nil
	}
	var out []component.Unit
	for _, other := range a.Board.Units() {
		if other.NID() == u.NID() {
			continue
		}
		if a.Board.Allied(u, other) == allied {
			out = append(out, other)
		}
	}
	return out
}

// AIPriority is a flat preference weight for the AI.
type AIPriority struct{}

func (AIPriority) Meta() component.Meta {
	return component.Meta{
		Nid:    "ai_priority",
		Desc:   "Flat weight the AI gives to using this item",
		Tag:    component.TagAI,
		Expose: component.Expose{Type: component.TypeFloat},
		Value:  0.1,
	}
}

func (AIPriority) AIPriority(c *component.Instance, a *component.Args) float64 {
	return component.FloatValue(c)
}
