package skillcomp

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
)

// Regeneration heals a fraction of max HP on upkeep.
type Regeneration struct{}

func (Regeneration) Meta() component.Meta {
	return component.Meta{
		Nid:    "regeneration",
		Desc:   "Unit restores a fraction of HP at beginning of turn",
		Tag:    component.TagTime,
		Expose: component.Expose{Type: component.TypeFloat},
		Value:  0.2,
	}
}

func (Regeneration) OnUpkeep(c *component.Instance, a *component.Args) {
	u := a.UnitFor(c)
	if u == nil || u.HP() >= u.MaxHP() {
		return
	}
	amount := int(float64(u.MaxHP()) * component.FloatValue(c))
	if amount <= 0 {
		return
	}
	a.AppendAction(&model.ChangeHP{Unit: u, Delta: amount})
	a.AppendPlayback(playback.Sound(playback.SoundMapHeal))
	a.AppendPlayback(playback.Token{Kind: playback.CastAnim, Name: healAnim(amount), Target: u.NID()})
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

// SkillTags attaches arbitrary tags, mostly for conditions.
type SkillTags struct{}

func (SkillTags) Meta() component.Meta {
	return component.Meta{
		Nid:    "skill_tags",
		Desc:   "Attach arbitrary tags to the unit",
		Tag:    component.TagBase,
		Expose: component.Expose{Type: component.TypeList, Elem: component.TypeTag},
		Value:  []any{},
	}
}

func (SkillTags) Tags(c *component.Instance, a *component.Args) []string {
	return component.StringsValue(c)
}

type ExpMultiplier struct{}

func (ExpMultiplier) Meta() component.Meta {
	return component.Meta{
		Nid:    "exp_multiplier",
		Desc:   "Unit receives a multiplier on exp gained",
		Tag:    component.TagBase,
		Expose: component.Expose{Type: component.TypeFloat},
		Value:  1.0,
	}
}

func (ExpMultiplier) ExpMultiplier(c *component.Instance, a *component.Args) float64 {
	return component.FloatValue(c)
}

// SightState counts the turns a sight bonus has been decaying.
type SightState struct {
	TorchCounter int `json:"torch_counter"`
}

// DecreasingSightRange grants a sight bonus that shrinks every upkeep.
type DecreasingSightRange struct{}

func (DecreasingSightRange) Meta() component.Meta {
	return component.Meta{
		Nid:    "decreasing_sight_range",
		Desc:   "Sight range bonus that decreases by 1 each turn",
		Tag:    component.TagBase,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  3,
	}
}

func (DecreasingSightRange) NewState() any { return &SightState{} }

func (DecreasingSightRange) Init(c *component.Instance, a *component.Args) {
	component.StateOf[SightState](c).TorchCounter = 0
}

func (DecreasingSightRange) SightRange(c *component.Instance, a *component.Args) int {
	return max(0, component.IntValue(c)-component.StateOf[SightState](c).TorchCounter)
}

func (DecreasingSightRange) OnUpkeep(c *component.Instance, a *component.Args) {
	component.StateOf[SightState](c).TorchCounter++
}

// Condition makes its skill active only while an expression holds.
type Condition struct{}

func (Condition) Meta() component.Meta {
	return component.Meta{
		Nid:               "condition",
		Desc:              "Skill is active only while the expression is true",
		Tag:               component.TagAdvanced,
		Expose:            component.Expose{Type: component.TypeString},
		Value:             "false",
		IgnoreConditional: true,
	}
}

func (Condition) Condition(c *component.Instance, a *component.Args) bool {
	if a == nil || a.Eval == nil {
		return false
	}
	ok, err := a.Eval.EvalBool(component.StringValue(c), a.UnitFor(c))
	if err != nil {
		slog.Warn("skill condition failed",
			"expr", component.StringValue(c),
			"err", err)
		return false
	}
	return ok
}
