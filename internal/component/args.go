package component

import (
	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/playback"
	"github.com/udisondev/tactica/internal/rng"
)

// Combat modes passed to hooks in Args.Mode.
const (
	ModeAttack  = "attack"
	ModeDefense = "defense"
	ModeSplash  = "splash"
)

// Unit is the view of a map unit that hooks can query and act upon.
type Unit interface {
	NID() string
	Team() string
	Position() (x, y int)
	HP() int
	MaxHP() int
	SetHP(hp int)
	Stat(name string) int
	Tags() []string
	Skills() []*Entity
	Items() []*Entity
	AddSkill(s *Entity)
	RemoveSkill(s *Entity) bool
}

// Board answers spatial and allegiance queries.
type Board interface {
	Units() []Unit
	Within(u Unit, radius int) []Unit
	Allied(a, b Unit) bool
}

// Calculator is the combat-math collaborator used by damage and heal
// components.
type Calculator interface {
	Damage(attacker Unit, item *Entity, defender Unit, mode string, crit bool) int
	Heal(healer Unit, item *Entity, target Unit) int
}

// Evaluator evaluates expression-valued components against a unit.
type Evaluator interface {
	Eval(expr string, u Unit) (float64, error)
	EvalBool(expr string, u Unit) (bool, error)
}

// SkillFactory builds skill entities by prefab nid.
type SkillFactory interface {
	NewSkill(nid string) (*Entity, error)
}

// Args carries everything a hook body may read or append to. Every field is
// optional; hooks must tolerate nil collaborators.
type Args struct {
	Actions  *action.List
	Playback *playback.Log

	Unit   Unit
	Item   *Entity
	Target Unit
	Item2  *Entity
	Mode   string

	Random *rng.Stream
	Board  Board
	Calc   Calculator
	Eval   Evaluator
	Skills SkillFactory
}

// AppendAction adds act to the pending action list when one is present.
func (a *Args) AppendAction(act action.Action) {
	if a == nil || a.Actions == nil {
		return
	}
	a.Actions.Append(act)
}

// AppendPlayback adds t to the playback log when one is present.
func (a *Args) AppendPlayback(t playback.Token) {
	if a == nil || a.Playback == nil {
		return
	}
	a.Playback.Append(t)
}

// Roll draws an integer in [0, n) from the session stream and records the
// stream transition. Without a stream it returns 0.
func (a *Args) Roll(n int) int {
	if a == nil || a.Random == nil {
		return 0
	}
	if a.Actions == nil {
		return a.Random.Roll(n)
	}
	return action.Roll(a.Actions, a.Random, n)
}

// NewSkill builds a skill through the session factory.
func (a *Args) NewSkill(nid string) (*Entity, error) {
	if a == nil || a.Skills == nil {
		return nil, ErrNoSkillFactory
	}
	return a.Skills.NewSkill(nid)
}

// UnitFor returns the unit a hook acts for: Args.Unit when set, otherwise
// the holder of c's owner.
func (a *Args) UnitFor(c *Instance) Unit {
	if a != nil && a.Unit != nil {
		return a.Unit
	}
	if c == nil || c.owner == nil {
		return nil
	}
	return c.owner.holder
}

// MarkForRemoval flags e for the end-of-phase sweep. With a pending list the
// flag is set through it, so discarding or rewinding clears it again.
func (a *Args) MarkForRemoval(e *Entity) {
	if e == nil {
		return
	}
	if a == nil || a.Actions == nil {
		e.MarkForRemoval()
		return
	}
	a.Actions.Append(&markRemoval{entity: e})
}

type markRemoval struct {
	entity *Entity
	was    bool
}

func (m *markRemoval) Do() {
	m.was = m.entity.removal
	m.entity.removal = true
}

func (m *markRemoval) Reverse() { m.entity.removal = m.was }

func (m *markRemoval) Describe() string { return "mark_removal " + m.entity.Nid }
