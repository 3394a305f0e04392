package component

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DuplicateIgnored(t *testing.T) {
	r := NewRegistry("skill")
	require.True(t, r.Register(turns{}))
	assert.False(t, r.Register(turns{}))
	assert.False(t, r.Register(recorder{nid: ""}))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ImplementsIsStructural(t *testing.T) {
	r := NewRegistry("skill")
	r.Register(turns{})

	assert.True(t, r.Implements("turns", Init))
	assert.True(t, r.Implements("turns", OnUpkeepUnconditional))
	assert.False(t, r.Implements("turns", OnUpkeep))
	assert.False(t, r.Implements("missing", Init))

	k, ok := r.Kind("turns")
	require.True(t, ok)
	assert.Equal(t, []Hook{Init, OnUpkeepUnconditional}, k.Hooks())
	assert.Equal(t, "Turns", k.Name())
}

func TestRegistry_InstantiateClonesDefault(t *testing.T) {
	r := NewRegistry("skill")
	r.Register(listValued{})

	a := r.Instantiate("tags", nil)
	b := r.Instantiate("tags", []string{"Armor"})

	assert.Equal(t, []any{}, a.Value())
	assert.Equal(t, []any{"Armor"}, b.Value())
}

func TestRegistry_InvalidValueFallsBackToDefault(t *testing.T) {
	r := NewRegistry("skill")
	r.Register(turns{})

	c := r.Instantiate("turns", "soon")

	assert.Equal(t, 1, c.Value())
}

func TestLifecycle_TimeCountsDownAcrossUpkeeps(t *testing.T) {
	eng := newTestEngine(t, turns{})
	s := NewSkill("rally", "")
	eng.AttachNew(s, "turns", 2, nil)

	eng.Dispatch(s, OnUpkeepUnconditional, nil, Unconditional)
	assert.False(t, s.MarkedForRemoval())

	eng.Dispatch(s, OnUpkeepUnconditional, nil, Unconditional)
	assert.True(t, s.MarkedForRemoval())
}

func TestLifecycle_RestoreSkipsInitAndKeepsState(t *testing.T) {
	eng := newTestEngine(t, turns{})
	s := NewSkill("rally", "")
	c := eng.AttachNew(s, "turns", 3, nil)
	eng.Dispatch(s, OnUpkeepUnconditional, nil, Unconditional)

	saved := c.Serialize()
	assert.Equal(t, "turns", saved.Nid)
	assert.JSONEq(t, `{"turns":2}`, string(saved.Data))

	loaded := NewSkill("rally", "")
	restored := eng.Restore(loaded, saved)

	assert.Equal(t, 3, restored.Value())
	assert.Equal(t, 2, StateOf[turnsState](restored).Turns)
}

func TestLifecycle_RoundTrip(t *testing.T) {
	eng := newTestEngine(t, turns{}, listValued{}, dictValued{})
	cases := []struct {
		name  string
		nid   string
		value any
	}{
		{"scalar", "turns", 4},
		{"list", "tags", []any{"Armor", "Flying"}},
		{"mapping", "stats", []Pair{{Key: "STR", Value: 2}, {Key: "DEF", Value: -1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewSkill("s", "")
			c := eng.AttachNew(e, tc.nid, tc.value, nil)

			blob, err := json.Marshal(c.Serialize())
			require.NoError(t, err)
			var p Persisted
			require.NoError(t, json.Unmarshal(blob, &p))

			restored := eng.Restore(NewSkill("s", ""), p)
			assert.Equal(t, c.Value(), restored.Value())
			assert.Equal(t, c.Serialize().Value, restored.Serialize().Value)
		})
	}
}

func TestLifecycle_MappingSerializesStructurally(t *testing.T) {
	eng := newTestEngine(t, dictValued{})
	c := eng.AttachNew(NewSkill("s", ""), "stats", map[string]any{"STR": 2, "DEF": 1}, nil)

	assert.Equal(t, []any{[]any{"DEF", 1}, []any{"STR", 2}}, c.Serialize().Value)
}

func TestLifecycle_UnknownComponentRoundTrip(t *testing.T) {
	var log []string
	eng := newTestEngine(t, recorder{nid: "rec", log: &log})
	s := NewSkill("s", "")

	c := eng.Restore(s, Persisted{Nid: "unknown_component_xyz", Value: 5})
	require.NotNil(t, c)
	assert.True(t, c.Kind().Unknown())

	for _, h := range KnownHooks() {
		assert.Nil(t, c.Hook(h))
	}
	res := eng.Dispatch(s, OnHit, nil, Aggregate)
	assert.Zero(t, res.Calls)

	assert.Equal(t, Persisted{Nid: "unknown_component_xyz", Value: 5}, c.Serialize())
}

func TestLifecycle_UnknownComponentKeepsRawData(t *testing.T) {
	eng := newTestEngine(t)
	data := json.RawMessage(`{"charge":3}`)

	c := eng.Restore(NewItem("i", ""), Persisted{Nid: "legacy", Value: "x", Data: data})

	assert.JSONEq(t, string(data), string(c.Serialize().Data))
}

func TestLifecycle_RemoveRunsTeardown(t *testing.T) {
	var log []string
	eng := newTestEngine(t, removable{log: &log}, turns{})
	e := NewSkill("s", "")
	eng.AttachNew(e, "turns", 1, nil)
	eng.AttachNew(e, "removable", nil, nil)

	assert.True(t, eng.Remove(e, "removable", nil))
	assert.Equal(t, []string{"removed"}, log)
	assert.Equal(t, []string{"turns"}, e.Nids())
	assert.False(t, eng.Remove(e, "removable", nil))
}

func TestLifecycle_EntityTreeRoundTrip(t *testing.T) {
	eng := newTestEngine(t, turns{}, listValued{})
	bag := NewItem("bag", "Bag")
	eng.AttachNew(bag, "tags", []string{"Container"}, nil)
	gem := NewItem("gem", "Gem")
	eng.AttachNew(gem, "turns", 2, nil)
	bag.AddChild(gem)

	rec := bag.Serialize()
	restored := eng.RestoreEntity(rec)

	assert.Equal(t, bag.UID, restored.UID)
	assert.Equal(t, rec, restored.Serialize())
	require.Len(t, restored.Children(), 1)
	assert.Same(t, restored, restored.Children()[0].Parent())
}
