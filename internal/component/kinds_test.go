package component

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder appends its nid to a shared log from every event hook it has.
type recorder struct {
	nid string
	log *[]string
}

func (r recorder) Meta() Meta                     { return Meta{Nid: r.nid} }
func (r recorder) OnHit(c *Instance, a *Args)     { *r.log = append(*r.log, r.nid) }
func (r recorder) OnEndstep(c *Instance, a *Args) { *r.log = append(*r.log, r.nid+":endstep") }
func (r recorder) OnEndstepUnconditional(c *Instance, a *Args) {
	*r.log = append(*r.log, r.nid+":cleanup")
}

type plainFormula struct{ nid, answer string }

func (f plainFormula) Meta() Meta { return Meta{Nid: f.nid, Tag: TagFormula} }
func (f plainFormula) DamageFormula(c *Instance, a *Args) string {
	return f.answer
}

type overrideFormula struct{ nid, answer string }

func (f overrideFormula) Meta() Meta { return Meta{Nid: f.nid, Tag: TagFormula} }
func (f overrideFormula) DamageFormulaOverride(c *Instance, a *Args) string {
	return f.answer
}

type faulty struct{ nid string }

func (f faulty) Meta() Meta                 { return Meta{Nid: f.nid} }
func (f faulty) OnHit(c *Instance, a *Args) { panic("broken component") }
func (f faulty) DamageFormulaOverride(c *Instance, a *Args) string {
	panic("broken override")
}

type turnsState struct {
	Turns int `json:"turns"`
}

// turns counts down on upkeep cleanup and flags its owner at zero.
type turns struct{}

func (turns) Meta() Meta {
	return Meta{Nid: "turns", Tag: TagTime, Expose: Expose{Type: TypeInt}, Value: 1}
}
func (turns) NewState() any { return &turnsState{} }
func (turns) Init(c *Instance, a *Args) {
	StateOf[turnsState](c).Turns = IntValue(c)
}
func (turns) OnUpkeepUnconditional(c *Instance, a *Args) {
	st := StateOf[turnsState](c)
	st.Turns--
	if st.Turns <= 0 {
		c.Owner().MarkForRemoval()
	}
}

type gate struct{ open bool }

func (g gate) Meta() Meta                          { return Meta{Nid: "gate"} }
func (g gate) Condition(c *Instance, a *Args) bool { return g.open }

type always struct{ log *[]string }

func (k always) Meta() Meta                 { return Meta{Nid: "always", IgnoreConditional: true} }
func (k always) OnHit(c *Instance, a *Args) { *k.log = append(*k.log, "always") }

// bump writes its own value from inside its hook.
type bump struct{}

func (bump) Meta() Meta {
	return Meta{Nid: "bump", Expose: Expose{Type: TypeInt}, Value: 0}
}
func (bump) OnHit(c *Instance, a *Args) {
	if err := c.SetValue(IntValue(c) + 1); err != nil {
		panic(err)
	}
}

type listValued struct{}

func (listValued) Meta() Meta {
	return Meta{Nid: "tags", Expose: Expose{Type: TypeList, Elem: TypeTag}, Value: []any{}}
}

// scribble reads the sibling tags list and scribbles over its copy.
type scribble struct{}

func (scribble) Meta() Meta { return Meta{Nid: "scribble"} }
func (scribble) OnHit(c *Instance, a *Args) {
	v, ok := c.Owner().ComponentValue("tags")
	if !ok {
		return
	}
	if list, ok := v.([]any); ok && len(list) > 0 {
		list[0] = "Scribbled"
	}
}

type dictValued struct{}

func (dictValued) Meta() Meta {
	return Meta{Nid: "stats", Expose: Expose{Type: TypeDict, Elem: TypeStat}, Value: []Pair{}}
}

type aura struct{}

func (aura) Meta() Meta {
	return Meta{Nid: "aura", Expose: Expose{Type: TypeSkill}, PairedWith: []string{"aura_range", "aura_target"}}
}

type auraRange struct{}

func (auraRange) Meta() Meta {
	return Meta{Nid: "aura_range", Expose: Expose{Type: TypeInt}, Value: 3, PairedWith: []string{"aura"}}
}

type removable struct{ log *[]string }

func (r removable) Meta() Meta                    { return Meta{Nid: "removable"} }
func (r removable) OnRemove(c *Instance, a *Args) { *r.log = append(*r.log, "removed") }

func newTestEngine(t *testing.T, kinds ...Behavior) *Engine {
	t.Helper()
	skills := NewRegistry("skill")
	items := NewRegistry("item")
	for _, k := range kinds {
		require.True(t, skills.Register(k), "register %s", k.Meta().Nid)
		require.True(t, items.Register(k), "register %s", k.Meta().Nid)
	}
	return NewEngine(skills, items)
}
