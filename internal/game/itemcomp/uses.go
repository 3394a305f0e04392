package itemcomp

import (
	"fmt"
	"strconv"

	"github.com/udisondev/tactica/internal/component"
)

// UsesState is the remaining use count.
type UsesState struct {
	Uses int `json:"uses"`
}

// Uses limits how many times an item can be used. A spent item is flagged
// for removal once its combat ends.
type Uses struct{}

func (Uses) Meta() component.Meta {
	return component.Meta{
		Nid:    "uses",
		Desc:   "Number of uses of item",
		Tag:    component.TagUses,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  1,
	}
}

func (Uses) NewState() any { return &UsesState{} }

func (Uses) Init(c *component.Instance, a *component.Args) {
	component.StateOf[UsesState](c).Uses = component.IntValue(c)
}

func (Uses) Available(c *component.Instance, a *component.Args) bool {
	return component.StateOf[UsesState](c).Uses > 0
}

func (Uses) OnHit(c *component.Instance, a *component.Args)  { spend(c, a) }
func (Uses) OnCrit(c *component.Instance, a *component.Args) { spend(c, a) }
func (Uses) OnMiss(c *component.Instance, a *component.Args) { spend(c, a) }

func (Uses) EndCombatUnconditional(c *component.Instance, a *component.Args) {
	if component.StateOf[UsesState](c).Uses > 0 {
		return
	}
	a.MarkForRemoval(c.Owner())
}

func (Uses) Text(c *component.Instance, a *component.Args) string {
	return strconv.Itoa(component.StateOf[UsesState](c).Uses)
}

func spend(c *component.Instance, a *component.Args) {
	a.AppendAction(&spendUse{state: component.StateOf[UsesState](c), item: ownerNid(c)})
}

// spendUse decrements the use counter when committed.
type spendUse struct {
	state *UsesState
	item  string
}

func (s *spendUse) Do()      { s.state.Uses-- }
func (s *spendUse) Reverse() { s.state.Uses++ }

func (s *spendUse) Describe() string { return fmt.Sprintf("spend_use %s", s.item) }
