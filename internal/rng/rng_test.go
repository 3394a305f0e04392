package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SameSeedSameRolls(t *testing.T) {
	a, b := New(42), New(42)
	for range 50 {
		assert.Equal(t, a.Roll(100), b.Roll(100))
	}
}

func TestStream_RestoreReplays(t *testing.T) {
	s := New(7)
	s.Roll(10)
	state := s.State()

	first := []int{s.Percent(), s.Percent(), s.Percent()}
	require.NoError(t, s.Restore(state))
	second := []int{s.Percent(), s.Percent(), s.Percent()}

	assert.Equal(t, first, second)
}

func TestStream_RollBounds(t *testing.T) {
	s := New(1)
	assert.Equal(t, 0, s.Roll(0))
	assert.Equal(t, 0, s.Roll(-3))
	for range 200 {
		v := s.Roll(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestStream_RestoreRejectsGarbage(t *testing.T) {
	s := New(1)
	assert.Error(t, s.Restore([]byte("nope")))
}
