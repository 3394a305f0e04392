package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/component"
)

func newTestUnit(t *testing.T, nid, team string, x, y int) *Unit {
	t.Helper()
	u := NewUnit(nid, team, map[string]int{"HP": 20, "STR": 5, "DEF": 2})
	u.SetPosition(x, y)
	return u
}

func TestUnit_SetHPClamps(t *testing.T) {
	u := newTestUnit(t, "eirika", TeamPlayer, 0, 0)
	u.SetHP(99)
	assert.Equal(t, 20, u.HP())
	u.SetHP(-4)
	assert.Equal(t, 0, u.HP())
	assert.True(t, u.Dead())
}

func TestChangeHP_ReverseRestoresClampedValue(t *testing.T) {
	u := newTestUnit(t, "eirika", TeamPlayer, 0, 0)
	u.SetHP(3)

	h := action.NewHistory()
	l := action.NewList()
	l.Append(&ChangeHP{Unit: u, Delta: -10})
	h.Commit(l)
	assert.Equal(t, 0, u.HP())

	h.RewindTo(0)
	assert.Equal(t, 3, u.HP())
}

func TestBoard_WithinAndAllegiance(t *testing.T) {
	eirika := newTestUnit(t, "eirika", TeamPlayer, 0, 0)
	seth := newTestUnit(t, "seth", TeamOther, 1, 1)
	bandit := newTestUnit(t, "bandit", TeamEnemy, 0, 3)
	far := newTestUnit(t, "far", TeamEnemy2, 5, 5)
	b := NewBoard(eirika, seth, bandit, far)

	near := b.Within(eirika, 3)
	var nids []string
	for _, u := range near {
		nids = append(nids, u.NID())
	}
	assert.Equal(t, []string{"seth", "bandit"}, nids)

	assert.True(t, b.Allied(eirika, seth))
	assert.False(t, b.Allied(eirika, bandit))
	assert.False(t, Allied(TeamEnemy, TeamEnemy2))

	bandit.SetHP(0)
	assert.Len(t, b.Within(eirika, 3), 1)
}

func TestSkillActions_Reversible(t *testing.T) {
	u := newTestUnit(t, "eirika", TeamPlayer, 0, 0)
	s := component.NewSkill("rally", "")

	h := action.NewHistory()
	h.Do(&AddSkill{Unit: u, Skill: s})
	assert.Same(t, s, u.FindSkill("rally"))
	assert.Equal(t, component.Unit(u), s.Holder())

	mark := h.Mark()
	h.Do(&RemoveSkillNid{Unit: u, Nid: "rally"})
	assert.Empty(t, u.Skills())

	h.RewindTo(mark)
	assert.Len(t, u.Skills(), 1)
	h.RewindTo(0)
	assert.Empty(t, u.Skills())
}

func TestRemoveItem_NoopWhenNotCarried(t *testing.T) {
	u := newTestUnit(t, "eirika", TeamPlayer, 0, 0)
	it := component.NewItem("vulnerary", "")
	act := &RemoveItem{Unit: u, Item: it}

	act.Do()
	act.Reverse()
	assert.Empty(t, u.Items())

	u.AddItem(it)
	act.Do()
	assert.Empty(t, u.Items())
	act.Reverse()
	assert.Len(t, u.Items(), 1)
}

func TestGainExp_LevelsUpAndReverses(t *testing.T) {
	u := NewUnit("eirika", TeamPlayer, map[string]int{"HP": 20, "LVL": 3})

	h := action.NewHistory()
	first := &GainExp{Unit: u, Amount: 70}
	h.Do(first)
	assert.Equal(t, 70, u.Exp())
	assert.False(t, first.LevelledUp())

	second := &GainExp{Unit: u, Amount: 45}
	h.Do(second)
	assert.Equal(t, 15, u.Exp())
	assert.Equal(t, 4, u.Level())
	assert.True(t, second.LevelledUp())
	assert.Equal(t, "gain_exp eirika +45", second.Describe())

	h.RewindTo(0)
	assert.Zero(t, u.Exp())
	assert.Equal(t, 3, u.Level())
}

func TestUnit_LevelDefaultsToOne(t *testing.T) {
	u := newTestUnit(t, "bandit", TeamEnemy, 0, 0)
	assert.Equal(t, 1, u.Level())
}
