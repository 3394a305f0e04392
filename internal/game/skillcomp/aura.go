package skillcomp

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
)

// TargetFilter selects which nearby units an aura affects.
type TargetFilter uint8

const (
	FilterAlly TargetFilter = iota
	FilterEnemy
	FilterUnit
)

// ParseTargetFilter maps "ally", "enemy" and "unit"; anything else is ally.
func ParseTargetFilter(s string) TargetFilter {
	switch s {
	case "enemy":
		return FilterEnemy
	case "unit":
		return FilterUnit
	}
	return FilterAlly
}

func (f TargetFilter) String() string {
	switch f {
	case FilterEnemy:
		return "enemy"
	case FilterUnit:
		return "unit"
	}
	return "ally"
}

// Match reports whether other is affected by an aura held by holder.
func (f TargetFilter) Match(b component.Board, holder, other component.Unit) bool {
	switch f {
	case FilterEnemy:
		return !b.Allied(holder, other)
	case FilterUnit:
		return true
	}
	return b.Allied(holder, other)
}

const defaultAuraRange = 3

type auraGrant struct {
	unit  component.Unit
	skill *component.Entity
}

// AuraState tracks the skills the aura handed out this turn.
type AuraState struct {
	Granted []string `json:"granted,omitempty"`

	grants []auraGrant
}

// Aura grants a child skill to units around its holder each upkeep and
// withdraws it on endstep.
type Aura struct{}

func (Aura) Meta() component.Meta {
	return component.Meta{
		Nid:        "aura",
		Desc:       "Skill has an aura that gives off child skill",
		Tag:        component.TagAura,
		Expose:     component.Expose{Type: component.TypeSkill},
		PairedWith: []string{"aura_range", "aura_target"},
	}
}

func (Aura) NewState() any { return &AuraState{} }

func (Aura) OnUpkeep(c *component.Instance, a *component.Args) {
	u := a.UnitFor(c)
	child := component.StringValue(c)
	if u == nil || a == nil || a.Board == nil || child == "" {
		return
	}
	radius, filter := auraShape(c.Owner())
	st := component.StateOf[AuraState](c)
	for _, other := range a.Board.Within(u, radius) {
		if !filter.Match(a.Board, u, other) {
			continue
		}
		skill, err := a.NewSkill(child)
		if err != nil {
			slog.Warn("aura child skill not granted", "skill", child, "err", err)
			return
		}
		a.AppendAction(&model.AddSkill{Unit: other, Skill: skill})
		st.grants = append(st.grants, auraGrant{unit: other, skill: skill})
		st.Granted = append(st.Granted, other.NID())
	}
}

func (Aura) OnEndstepUnconditional(c *component.Instance, a *component.Args) {
	st := component.StateOf[AuraState](c)
	for _, g := range st.grants {
		a.AppendAction(&model.RemoveSkill{Unit: g.unit, Skill: g.skill})
	}
	if len(st.grants) == 0 && len(st.Granted) > 0 && a != nil && a.Board != nil {
		// Restored from a save: withdraw by nid.
		child := component.StringValue(c)
		for _, other := range a.Board.Units() {
			for _, nid := range st.Granted {
				if other.NID() == nid {
					a.AppendAction(&model.RemoveSkillNid{Unit: other, Nid: child})
				}
			}
		}
	}
	st.grants = nil
	st.Granted = nil
}

// auraShape reads the range and filter partners; missing partners fall back
// to their kind defaults.
func auraShape(owner *component.Entity) (int, TargetFilter) {
	radius, filter := defaultAuraRange, FilterAlly
	if owner == nil {
		return radius, filter
	}
	if raw, ok := owner.ComponentValue("aura_range"); ok {
		if n, ok := component.AsInt(raw); ok {
			radius = n
		}
	}
	if raw, ok := owner.ComponentValue("aura_target"); ok {
		s, _ := component.AsString(raw)
		filter = ParseTargetFilter(s)
	}
	return radius, filter
}

type AuraRange struct{}

func (AuraRange) Meta() component.Meta {
	return component.Meta{
		Nid:        "aura_range",
		Desc:       "Set range of skill's aura",
		Tag:        component.TagAura,
		Expose:     component.Expose{Type: component.TypeInt},
		Value:      defaultAuraRange,
		PairedWith: []string{"aura"},
	}
}

type AuraTarget struct{}

func (AuraTarget) Meta() component.Meta {
	return component.Meta{
		Nid:        "aura_target",
		Desc:       "Set target of skill's aura (ally, enemy or unit)",
		Tag:        component.TagAura,
		Expose:     component.Expose{Type: component.TypeString},
		Value:      FilterAlly.String(),
		PairedWith: []string{"aura"},
	}
}
