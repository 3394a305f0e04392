package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tactica/internal/rng"
)

type counter struct{ n int }

type add struct {
	c     *counter
	delta int
}

func (a add) Do()              { a.c.n += a.delta }
func (a add) Reverse()         { a.c.n -= a.delta }
func (a add) Describe() string { return "add" }

func TestHistory_CommitAppliesInOrder(t *testing.T) {
	c := &counter{}
	l := NewList()
	l.Append(add{c, 2})
	l.Append(add{c, 3})
	assert.Equal(t, 0, c.n, "pending actions must not apply")

	h := NewHistory()
	h.Commit(l)

	assert.Equal(t, 5, c.n)
	assert.Equal(t, 2, h.Len())
	assert.Zero(t, l.Len())
}

func TestHistory_RewindTo(t *testing.T) {
	c := &counter{}
	h := NewHistory()
	h.Do(add{c, 1})
	mark := h.Mark()
	h.Do(add{c, 10})
	h.Do(add{c, 100})

	h.RewindTo(mark)

	assert.Equal(t, 1, c.n)
	assert.Equal(t, 1, h.Len())
}

func TestList_DiscardRewindsRandomStream(t *testing.T) {
	s := rng.New(99)
	l := NewList()

	first := Roll(l, s, 100)
	Roll(l, s, 100)
	l.Discard()

	again := s.Roll(100)
	assert.Equal(t, first, again)
	assert.Zero(t, l.Len())
}

func TestHistory_CommitDoesNotReapplyEager(t *testing.T) {
	s := rng.New(3)
	l := NewList()
	Roll(l, s, 10)
	after := s.State()

	h := NewHistory()
	h.Commit(l)

	assert.Equal(t, after, s.State())
	h.RewindTo(0)
	replay := rng.New(3)
	assert.Equal(t, replay.State(), s.State())
}

func TestHistory_Digest(t *testing.T) {
	build := func() *History {
		s := rng.New(5)
		l := NewList()
		Roll(l, s, 100)
		Roll(l, s, 100)
		h := NewHistory()
		h.Commit(l)
		return h
	}
	a, b := build(), build()
	require.Len(t, a.Digest(), 64)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), NewHistory().Digest())
}
