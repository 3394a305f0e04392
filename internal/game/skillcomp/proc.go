package skillcomp

import (
	"log/slog"
	"math"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
)

// defaultProcRate applies when a proc skill has no proc_rate partner.
const defaultProcRate = 100

// ProcState remembers whether the proc fired this turn.
type ProcState struct {
	Active bool `json:"active"`

	granted *component.Entity
}

// ProcTurnSkill may grant a skill on upkeep and takes it back on endstep.
type ProcTurnSkill struct{}

func (ProcTurnSkill) Meta() component.Meta {
	return component.Meta{
		Nid:        "proc_turn_skill",
		Desc:       "Unit has a chance to gain the proc skill at the beginning of the turn, and loses it on endstep",
		Tag:        component.TagAdvanced,
		Expose:     component.Expose{Type: component.TypeSkill},
		PairedWith: []string{"proc_rate"},
	}
}

func (ProcTurnSkill) NewState() any { return &ProcState{} }

func (ProcTurnSkill) OnUpkeep(c *component.Instance, a *component.Args) {
	u := a.UnitFor(c)
	nid := component.StringValue(c)
	if u == nil || nid == "" {
		return
	}
	if a.Roll(100) >= procRate(c, a, u) {
		return
	}
	granted, err := a.NewSkill(nid)
	if err != nil {
		slog.Warn("proc skill not granted", "skill", nid, "err", err)
		return
	}
	a.AppendAction(&model.AddSkill{Unit: u, Skill: granted})
	st := component.StateOf[ProcState](c)
	st.Active = true
	st.granted = granted
}

func (ProcTurnSkill) OnEndstepUnconditional(c *component.Instance, a *component.Args) {
	st := component.StateOf[ProcState](c)
	if !st.Active {
		return
	}
	st.Active = false
	u := a.UnitFor(c)
	if u == nil {
		return
	}
	if st.granted != nil {
		a.AppendAction(&model.RemoveSkill{Unit: u, Skill: st.granted})
		st.granted = nil
		return
	}
	// Restored from a save: only the nid is known.
	a.AppendAction(&model.RemoveSkillNid{Unit: u, Nid: component.StringValue(c)})
}

// procRate reads the proc_rate partner through the owner. Without one the
// proc always fires.
func procRate(c *component.Instance, a *component.Args, u component.Unit) int {
	owner := c.Owner()
	if owner == nil {
		return defaultProcRate
	}
	raw, ok := owner.ComponentValue("proc_rate")
	if !ok {
		return defaultProcRate
	}
	expr, _ := component.AsString(raw)
	if a == nil || a.Eval == nil {
		return defaultProcRate
	}
	v, err := a.Eval.Eval(expr, u)
	if err != nil {
		slog.Warn("proc rate failed", "expr", expr, "err", err)
		return 0
	}
	return int(math.Floor(v))
}

// ProcRate is the chance, in percent, of its proc partner firing.
type ProcRate struct{}

func (ProcRate) Meta() component.Meta {
	return component.Meta{
		Nid:    "proc_rate",
		Desc:   "Set the proc rate",
		Tag:    component.TagAdvanced,
		Expose: component.Expose{Type: component.TypeEquation},
		Value:  "SKL",
	}
}
