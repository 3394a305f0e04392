package itemcomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
)

type fixedCalc struct{ damage, heal int }

func (f fixedCalc) Damage(component.Unit, *component.Entity, component.Unit, string, bool) int {
	return f.damage
}

func (f fixedCalc) Heal(component.Unit, *component.Entity, component.Unit) int { return f.heal }

type factoryFunc func(nid string) (*component.Entity, error)

func (f factoryFunc) NewSkill(nid string) (*component.Entity, error) { return f(nid) }

func newTestEngine(t *testing.T) *component.Engine {
	t.Helper()
	items := component.NewRegistry("item")
	require.Equal(t, len(Kinds()), Register(items))
	return component.NewEngine(component.NewRegistry("skill"), items)
}

func newItem(t *testing.T, eng *component.Engine, holder *model.Unit, nid string, comps ...component.Persisted) *component.Entity {
	t.Helper()
	it := component.NewItem(nid, "")
	for _, p := range comps {
		eng.AttachNew(it, p.Nid, p.Value, nil)
	}
	if holder != nil {
		holder.AddItem(it)
	}
	return it
}

func comp(nid string, value any) component.Persisted {
	return component.Persisted{Nid: nid, Value: value}
}

func duel(t *testing.T) (*model.Unit, *model.Unit, *model.Board) {
	t.Helper()
	eirika := model.NewUnit("eirika", model.TeamPlayer, map[string]int{"HP": 16, "STR": 4})
	bandit := model.NewUnit("bandit", model.TeamEnemy, map[string]int{"HP": 20, "DEF": 9})
	bandit.SetPosition(0, 1)
	return eirika, bandit, model.NewBoard(eirika, bandit)
}

func TestDamage_ZeroDamageMarkers(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	sword := newItem(t, eng, eirika, "rapier", comp("damage", 0))

	l := action.NewList()
	a := &component.Args{Actions: l, Playback: playback.NewLog(), Unit: eirika, Item: sword, Target: bandit, Board: board, Mode: component.ModeAttack}
	eng.Dispatch(sword, component.OnHit, a, component.Aggregate)

	require.Equal(t, 1, l.Len())
	change, ok := l.Actions()[0].(*model.ChangeHP)
	require.True(t, ok)
	assert.Zero(t, change.Delta)

	_, ok = a.Playback.Find(playback.HitSound, playback.SoundNoDamage)
	assert.True(t, ok)
	_, ok = a.Playback.Find(playback.HitAnim, playback.AnimNoDamage)
	assert.True(t, ok)
	assert.Equal(t, playback.DamageHit, a.Playback.Tokens()[0].Kind)
}

func TestDamage_UsesCalculator(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	sword := newItem(t, eng, eirika, "iron_sword", comp("damage", 5))

	l := action.NewList()
	a := &component.Args{Actions: l, Playback: playback.NewLog(), Unit: eirika, Target: bandit, Board: board, Calc: fixedCalc{damage: 7}}
	eng.Dispatch(sword, component.OnCrit, a, component.Aggregate)
	action.NewHistory().Commit(l)

	assert.Equal(t, 13, bandit.HP())
	assert.True(t, a.Playback.Has(playback.DamageCrit))
	assert.False(t, a.Playback.Has(playback.HitSound))
}

func TestHeal_RestrictsToWounded(t *testing.T) {
	eng := newTestEngine(t)
	healer := model.NewUnit("natasha", model.TeamPlayer, map[string]int{"HP": 18, "MAG": 5})
	ally := model.NewUnit("seth", model.TeamPlayer, map[string]int{"HP": 30})
	board := model.NewBoard(healer, ally)
	staff := newItem(t, eng, healer, "heal_staff", comp("heal", 10), comp("target_ally", nil))
	a := &component.Args{Unit: healer, Target: ally, Board: board}

	assert.False(t, component.All(eng.Dispatch(staff, component.TargetRestrict, a, component.Aggregate)))

	ally.SetHP(5)
	assert.True(t, component.All(eng.Dispatch(staff, component.TargetRestrict, a, component.Aggregate)))

	l := action.NewList()
	a.Actions, a.Playback, a.Calc = l, playback.NewLog(), fixedCalc{heal: 5}
	eng.Dispatch(staff, component.OnHit, a, component.Aggregate)
	action.NewHistory().Commit(l)

	assert.Equal(t, 20, ally.HP())
	tok, ok := a.Playback.Find(playback.HitAnim, "MapMediumHealTrans")
	require.True(t, ok)
	assert.Equal(t, "seth", tok.Target)
}

func TestUses_SpentItemFlaggedAfterCombat(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	javelin := newItem(t, eng, eirika, "javelin", comp("uses", 2), comp("damage", 1))
	h := action.NewHistory()

	for i := range 2 {
		assert.True(t, eng.Dispatch(javelin, component.Available, nil, component.FirstTruthy).Bool(), "use %d", i)
		l := action.NewList()
		a := &component.Args{Actions: l, Playback: playback.NewLog(), Unit: eirika, Target: bandit, Board: board}
		eng.Dispatch(javelin, component.OnMiss, a, component.Aggregate)
		h.Commit(l)
		eng.Dispatch(javelin, component.EndCombatUnconditional, a, component.Unconditional)
		h.Commit(l)
	}

	assert.Equal(t, "0", eng.Dispatch(javelin, component.Text, nil, component.FirstTruthy).String())
	assert.True(t, javelin.MarkedForRemoval())
	assert.False(t, component.All(eng.Dispatch(javelin, component.Available, nil, component.Aggregate)))

	h.RewindTo(0)
	assert.False(t, javelin.MarkedForRemoval())
	assert.Equal(t, "2", eng.Dispatch(javelin, component.Text, nil, component.FirstTruthy).String())
}

func TestEffective_PairedBonus(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	bandit.SetTags("Armor")
	rapier := newItem(t, eng, eirika, "rapier",
		comp("damage", 7),
		comp("effective", 14),
		comp("effective_tag", []any{"Armor", "Horse"}),
	)
	assert.Empty(t, eng.Validate(rapier))

	a := &component.Args{Unit: eirika, Target: bandit, Board: board}
	assert.Equal(t, 14, component.SumInt(eng.Dispatch(rapier, component.DynamicDamage, a, component.Aggregate)))

	bandit.SetTags("Infantry")
	assert.Zero(t, component.SumInt(eng.Dispatch(rapier, component.DynamicDamage, a, component.Aggregate)))

	lone := newItem(t, eng, eirika, "broken", comp("effective_tag", []any{"Infantry"}))
	warnings := eng.Validate(lone)
	require.Len(t, warnings, 1)
	assert.Equal(t, component.WarnMissingPartner, warnings[0].Kind)
	assert.Zero(t, component.SumInt(eng.Dispatch(lone, component.DynamicDamage, a, component.Aggregate)))
}

func TestStatusOnHit(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	venin := newItem(t, eng, eirika, "venin_edge", comp("status_on_hit", "poison"), comp("target_enemy", nil))
	l := action.NewList()
	a := &component.Args{
		Actions: l, Playback: playback.NewLog(), Unit: eirika, Target: bandit, Board: board,
		Skills: factoryFunc(func(nid string) (*component.Entity, error) { return component.NewSkill(nid, ""), nil }),
	}

	assert.InDelta(t, 0.5, eng.Dispatch(venin, component.AIPriority, a, component.FirstTruthy).Float(), 1e-9)

	eng.Dispatch(venin, component.OnHit, a, component.Aggregate)
	action.NewHistory().Commit(l)

	require.Len(t, bandit.Skills(), 1)
	assert.Equal(t, "poison", bandit.Skills()[0].Nid)
	assert.True(t, a.Playback.Has(playback.StatusHit))
	assert.Zero(t, eng.Dispatch(venin, component.AIPriority, a, component.FirstTruthy).Float())
}

func TestTargets(t *testing.T) {
	eng := newTestEngine(t)
	eirika, bandit, board := duel(t)
	seth := model.NewUnit("seth", model.TeamOther, map[string]int{"HP": 30})
	board.Add(seth)
	lance := newItem(t, eng, eirika, "lance", comp("target_enemy", nil))
	vulnerary := newItem(t, eng, eirika, "vulnerary", comp("target_ally", nil))
	a := &component.Args{Unit: eirika, Board: board}

	enemies := component.UnionUnits(eng.Dispatch(lance, component.AITargets, a, component.Aggregate))
	require.Len(t, enemies, 1)
	assert.Equal(t, "bandit", enemies[0].NID())

	allies := component.UnionUnits(eng.Dispatch(vulnerary, component.AITargets, a, component.Aggregate))
	require.Len(t, allies, 1)
	assert.Equal(t, "seth", allies[0].NID())

	a.Target = bandit
	assert.True(t, eng.Dispatch(lance, component.TargetRestrict, a, component.FirstTruthy).Bool())
	a.Target = seth
	assert.False(t, component.All(eng.Dispatch(lance, component.TargetRestrict, a, component.Aggregate)))
}
