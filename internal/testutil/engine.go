// Package testutil holds fixtures shared by tests that need a fully
// registered component engine.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/game/itemcomp"
	"github.com/udisondev/tactica/internal/game/skillcomp"
)

// NewEngine returns an engine with every skill and item kind registered.
func NewEngine(t testing.TB) *component.Engine {
	t.Helper()

	skills := component.NewRegistry("skill")
	require.Equal(t, len(skillcomp.Kinds()), skillcomp.Register(skills))
	items := component.NewRegistry("item")
	require.Equal(t, len(itemcomp.Kinds()), itemcomp.Register(items))

	return component.NewEngine(skills, items)
}

// Comp is shorthand for a component entry.
func Comp(nid string, value any) component.Persisted {
	return component.Persisted{Nid: nid, Value: value}
}

// Holder is the part of a unit that can receive entities.
type Holder interface {
	AddSkill(s *component.Entity)
	AddItem(it *component.Entity)
}

// Skill builds a skill from comps and grants it to holder when non-nil.
func Skill(eng *component.Engine, holder Holder, nid string, comps ...component.Persisted) *component.Entity {
	s := component.NewSkill(nid, "")
	for _, c := range comps {
		eng.AttachNew(s, c.Nid, c.Value, nil)
	}
	if holder != nil {
		holder.AddSkill(s)
	}
	return s
}

// Item builds an item from comps and gives it to holder when non-nil.
func Item(eng *component.Engine, holder Holder, nid string, comps ...component.Persisted) *component.Entity {
	it := component.NewItem(nid, "")
	for _, c := range comps {
		eng.AttachNew(it, c.Nid, c.Value, nil)
	}
	if holder != nil {
		holder.AddItem(it)
	}
	return it
}
