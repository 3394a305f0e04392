package skillcomp

import (
	"strconv"

	"github.com/udisondev/tactica/internal/component"
)

// TurnsState is the countdown of a timed skill.
type TurnsState struct {
	Turns int `json:"turns"`
}

// Time removes its skill after value upkeeps.
type Time struct{}

func (Time) Meta() component.Meta {
	return component.Meta{
		Nid:    "time",
		Desc:   "Skill is removed after this many upkeeps",
		Tag:    component.TagTime,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  1,
	}
}

func (Time) NewState() any { return &TurnsState{} }

func (Time) Init(c *component.Instance, a *component.Args) {
	component.StateOf[TurnsState](c).Turns = component.IntValue(c)
}

func (Time) OnUpkeepUnconditional(c *component.Instance, a *component.Args) {
	countDown(c)
}

func (Time) Text(c *component.Instance, a *component.Args) string {
	return strconv.Itoa(component.StateOf[TurnsState](c).Turns)
}

// EndTime removes its skill after value endsteps.
type EndTime struct{}

func (EndTime) Meta() component.Meta {
	return component.Meta{
		Nid:    "end_time",
		Desc:   "Skill is removed after this many endsteps",
		Tag:    component.TagTime,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  1,
	}
}

func (EndTime) NewState() any { return &TurnsState{} }

func (EndTime) Init(c *component.Instance, a *component.Args) {
	component.StateOf[TurnsState](c).Turns = component.IntValue(c)
}

func (EndTime) OnEndstepUnconditional(c *component.Instance, a *component.Args) {
	countDown(c)
}

func (EndTime) Text(c *component.Instance, a *component.Args) string {
	return strconv.Itoa(component.StateOf[TurnsState](c).Turns)
}

func countDown(c *component.Instance) {
	st := component.StateOf[TurnsState](c)
	st.Turns--
	if st.Turns <= 0 {
		if owner := c.Owner(); owner != nil {
			owner.MarkForRemoval()
		}
	}
}
