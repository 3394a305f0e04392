package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/game"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
	"github.com/udisondev/tactica/internal/testutil"
)

func setup(t *testing.T) (*Driver, *game.Session, *model.Unit) {
	t.Helper()
	eng := testutil.NewEngine(t)

	u := model.NewUnit("joshua", model.TeamPlayer, map[string]int{"HP": 20, "SKL": 12})
	s := game.NewSession(eng, nil, model.NewBoard(u), 3)
	s.Skills = testutil.BlankSkills
	return NewDriver(eng), s, u
}

func grant(s *game.Session, u *model.Unit, nid string, comps ...component.Persisted) *component.Entity {
	return testutil.Skill(s.Engine, u, nid, comps...)
}

func TestUpkeep_TimedSkillSweptAfterTwoTurns(t *testing.T) {
	d, s, u := setup(t)
	grant(s, u, "rally", testutil.Comp("time", 2))
	units := []*model.Unit{u}

	rep := d.Upkeep(s, units, Options{})
	assert.Empty(t, rep.Removed)
	require.Len(t, u.Skills(), 1)

	rep = d.Upkeep(s, units, Options{})
	assert.Equal(t, []string{"rally"}, rep.Removed)
	assert.Equal(t, component.OnUpkeep, rep.Phase)
	assert.Empty(t, u.Skills())

	s.History.RewindTo(0)
	assert.Len(t, u.Skills(), 1)
}

func TestUpkeep_SuppressedSkipsNormalHooks(t *testing.T) {
	d, s, u := setup(t)
	u.SetHP(5)
	grant(s, u, "renewal",
		testutil.Comp("regeneration", 0.5),
		testutil.Comp("time", 1),
	)

	rep := d.Upkeep(s, []*model.Unit{u}, Options{Suppressed: true})

	assert.Equal(t, 5, u.HP())
	assert.Equal(t, []string{"renewal"}, rep.Removed, "cleanup still counts down")
	assert.False(t, s.Playback.Has(playback.HitSound))
}

func TestUpkeep_RegenerationCommitted(t *testing.T) {
	d, s, u := setup(t)
	u.SetHP(5)
	grant(s, u, "renewal", testutil.Comp("regeneration", 0.5))

	d.Upkeep(s, []*model.Unit{u}, Options{})

	assert.Equal(t, 15, u.HP())
	_, ok := s.Playback.Find(playback.HitSound, playback.SoundMapHeal)
	assert.True(t, ok)
}

func TestEndstep_CleanupRunsOnceWhenSuppressed(t *testing.T) {
	d, s, u := setup(t)
	grant(s, u, "sol",
		testutil.Comp("proc_turn_skill", "sol_proc"),
		testutil.Comp("proc_rate", "100"),
	)
	units := []*model.Unit{u}

	d.Upkeep(s, units, Options{})
	require.NotNil(t, u.FindSkill("sol_proc"))

	rep := d.Endstep(s, units, Options{Suppressed: true})

	assert.Nil(t, u.FindSkill("sol_proc"))
	assert.Len(t, u.Skills(), 1)
	assert.Zero(t, rep.Faults)
}

func TestEndstep_SweepsSpentItems(t *testing.T) {
	d, s, u := setup(t)
	vulnerary := testutil.Item(s.Engine, u, "vulnerary", testutil.Comp("uses", 1))
	vulnerary.MarkForRemoval()

	rep := d.Endstep(s, []*model.Unit{u}, Options{})

	assert.Equal(t, []string{"vulnerary"}, rep.Removed)
	assert.Empty(t, u.Items())
}
