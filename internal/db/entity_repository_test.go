package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/testutil"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := testutil.Context(t)
	d, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, d.Migrate(ctx))
	return d
}

func loadout(eng *component.Engine) []*component.Entity {
	rally := component.NewSkill("rally_strength", "Rally Strength")
	eng.AttachNew(rally, "time", 3, nil)
	eng.AttachNew(rally, "skill_tags", []string{"Rally"}, nil)
	eng.AttachNew(rally, "regeneration", 0.5, nil)

	satchel := component.NewItem("satchel", "Satchel")
	eng.AttachNew(satchel, "uses", 2, nil)
	vulnerary := component.NewItem("vulnerary", "Vulnerary")
	eng.AttachNew(vulnerary, "heal", 10, nil)
	eng.AttachNew(vulnerary, "uses", 3, nil)
	satchel.AddChild(vulnerary)

	sword := component.NewItem("iron_sword", "Iron Sword")
	eng.AttachNew(sword, "weapon", nil, nil)
	eng.AttachNew(sword, "damage", 5, nil)
	eng.Restore(sword, component.Persisted{Nid: "legacy_glow", Value: "blue"})

	return []*component.Entity{rally, satchel, sword}
}

func records(es []*component.Entity) []component.EntityRecord {
	out := make([]component.EntityRecord, 0, len(es))
	for _, e := range es {
		out = append(out, e.Serialize())
	}
	return out
}

func TestEntityRepository_RoundTrip(t *testing.T) {
	ctx := testutil.Context(t)
	eng := testutil.NewEngine(t)
	repo := NewEntityRepository(openTestDB(t))

	saved := loadout(eng)
	// Tick the timer so persisted state differs from the initial value.
	eng.Dispatch(saved[0], component.OnUpkeepUnconditional, nil, component.Unconditional)
	require.NoError(t, repo.Save(ctx, "eirika", records(saved)))

	loaded, err := repo.Load(ctx, "eirika")
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	for i, rec := range loaded {
		restored := eng.RestoreEntity(rec)
		assert.Equal(t, saved[i].Serialize(), restored.Serialize(), "entity %s", rec.Nid)
	}

	satchel := eng.RestoreEntity(loaded[1])
	require.Len(t, satchel.Children(), 1)
	assert.Equal(t, "vulnerary", satchel.Children()[0].Nid)
	assert.Same(t, satchel, satchel.Children()[0].Parent())

	sword := eng.RestoreEntity(loaded[2])
	glow, ok := sword.ComponentValue("legacy_glow")
	require.True(t, ok)
	assert.Equal(t, "blue", glow)
}

func TestEntityRepository_SaveReplaces(t *testing.T) {
	ctx := testutil.Context(t)
	eng := testutil.NewEngine(t)
	repo := NewEntityRepository(openTestDB(t))

	es := loadout(eng)
	require.NoError(t, repo.Save(ctx, "eirika", records(es)))
	require.NoError(t, repo.Save(ctx, "eirika", records(es[2:])))

	loaded, err := repo.Load(ctx, "eirika")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "iron_sword", loaded[0].Nid)
}

func TestEntityRepository_OwnersAreIsolated(t *testing.T) {
	ctx := testutil.Context(t)
	eng := testutil.NewEngine(t)
	repo := NewEntityRepository(openTestDB(t))

	require.NoError(t, repo.Save(ctx, "eirika", records(loadout(eng)[:1])))
	require.NoError(t, repo.Save(ctx, "seth", records(loadout(eng)[2:])))

	eirika, err := repo.Load(ctx, "eirika")
	require.NoError(t, err)
	require.Len(t, eirika, 1)
	assert.Equal(t, "rally_strength", eirika[0].Nid)

	nobody, err := repo.Load(ctx, "bandit")
	require.NoError(t, err)
	assert.Empty(t, nobody)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	lite := &DB{driver: DriverSQLite}
	q := `SELECT * FROM entities WHERE owner = ? AND nid = ?`

	assert.Equal(t, `SELECT * FROM entities WHERE owner = $1 AND nid = $2`, pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
}
