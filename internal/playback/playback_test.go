package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_OrderAndQueries(t *testing.T) {
	l := NewLog()
	l.Append(Damage("eirika", "bandit", "iron_sword", 0, false))
	l.Append(Sound(SoundNoDamage))
	l.Append(Anim(AnimNoDamage, "bandit"))
	l.Append(Damage("eirika", "bandit", "iron_sword", 7, true))

	tokens := l.Tokens()
	assert.Len(t, tokens, 4)
	assert.Equal(t, DamageHit, tokens[0].Kind)
	assert.Equal(t, DamageCrit, tokens[3].Kind)
	assert.Equal(t, 1, l.Count(HitSound))
	assert.False(t, l.Has(HealHit))

	tok, ok := l.Find(HitAnim, AnimNoDamage)
	assert.True(t, ok)
	assert.Equal(t, "bandit", tok.Target)
}

func TestLog_TokensIsACopy(t *testing.T) {
	l := NewLog()
	l.Append(Sound("Hit"))
	tokens := l.Tokens()
	tokens[0].Name = "changed"
	assert.Equal(t, "Hit", l.Tokens()[0].Name)
}

func TestLog_Truncate(t *testing.T) {
	l := NewLog()
	l.Append(Sound("Hit"))
	n := l.Len()
	l.Append(Damage("eirika", "bandit", "iron_sword", 7, false))
	l.Append(Sound(SoundNoDamage))

	l.Truncate(n)
	assert.Equal(t, []Token{Sound("Hit")}, l.Tokens())

	l.Truncate(5)
	l.Truncate(-1)
	assert.Equal(t, 1, l.Len())
}
