// Package playback is the append-only log of presentation tokens produced by
// gameplay hooks and consumed by the rendering layer.
package playback

// Kind names a presentation token type.
type Kind string

const (
	DamageHit    Kind = "damage_hit"
	DamageCrit   Kind = "damage_crit"
	HealHit      Kind = "heal_hit"
	HitSound     Kind = "hit_sound"
	HitAnim      Kind = "hit_anim"
	CastAnim     Kind = "cast_anim"
	StatusHit    Kind = "status_hit"
	Miss         Kind = "miss"
	SkillRemoved Kind = "skill_removed"
)

// Well-known token names.
const (
	SoundNoDamage = "No Damage"
	AnimNoDamage  = "MapNoDamage"
	SoundMapHeal  = "MapHeal"
)

// Token is one presentation event. Only the fields relevant to Kind are set.
type Token struct {
	Kind   Kind
	Source string
	Target string
	Item   string
	Name   string
	Amount int
}

// Log is an ordered token list.
type Log struct {
	tokens []Token
}

// NewLog creates an empty log.
func NewLog() *Log { return &Log{} }

// Append adds t at the end.
func (l *Log) Append(t Token) { l.tokens = append(l.tokens, t) }

// Tokens returns all tokens in order.
func (l *Log) Tokens() []Token {
	out := make([]Token, len(l.tokens))
	copy(out, l.tokens)
	return out
}

// Len returns the number of tokens.
func (l *Log) Len() int { return len(l.tokens) }

// Truncate drops every token after the first n.
func (l *Log) Truncate(n int) {
	if n >= 0 && n < len(l.tokens) {
		l.tokens = l.tokens[:n]
	}
}

// Has reports whether a token of kind k was appended.
func (l *Log) Has(k Kind) bool { return l.Count(k) > 0 }

// Count returns the number of tokens of kind k.
func (l *Log) Count(k Kind) int {
	n := 0
	for _, t := range l.tokens {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// Find returns the first token of kind k named name.
func (l *Log) Find(k Kind, name string) (Token, bool) {
	for _, t := range l.tokens {
		if t.Kind == k && t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

// Damage builds a damage token; crit selects DamageCrit.
func Damage(source, target, item string, amount int, crit bool) Token {
	k := DamageHit
	if crit {
		k = DamageCrit
	}
	return Token{Kind: k, Source: source, Target: target, Item: item, Amount: amount}
}

// Heal builds a heal token.
func Heal(source, target, item string, amount int) Token {
	return Token{Kind: HealHit, Source: source, Target: target, Item: item, Amount: amount}
}

// Sound builds a hit sound token.
func Sound(name string) Token { return Token{Kind: HitSound, Name: name} }

// Anim builds a hit animation token on target.
func Anim(name, target string) Token { return Token{Kind: HitAnim, Name: name, Target: target} }
