package model

import (
	"slices"

	"github.com/udisondev/tactica/internal/component"
)

// Teams. player и other союзны, враги союзны только между собой.
const (
	TeamPlayer = "player"
	TeamOther  = "other"
	TeamEnemy  = "enemy"
	TeamEnemy2 = "enemy2"
)

// Stat names understood by equations.
var StatNames = []string{"HP", "STR", "MAG", "SKL", "SPD", "LCK", "DEF", "RES", "CON", "MOV", "LVL"}

// Unit is a map unit carrying skills and items.
type Unit struct {
	nid   string
	team  string
	x, y  int
	hp    int
	exp   int
	stats map[string]int
	tags  []string

	skills []*component.Entity
	items  []*component.Entity
}

// NewUnit creates a unit at full HP. stats["HP"] is the max HP.
func NewUnit(nid, team string, stats map[string]int) *Unit {
	u := &Unit{
		nid:   nid,
		team:  team,
		stats: make(map[string]int, len(stats)),
	}
	for k, v := range stats {
		u.stats[k] = v
	}
	u.hp = u.stats["HP"]
	return u
}

func (u *Unit) NID() string  { return u.nid }
func (u *Unit) Team() string { return u.team }

func (u *Unit) Position() (x, y int) { return u.x, u.y }

// SetPosition moves the unit.
func (u *Unit) SetPosition(x, y int) { u.x, u.y = x, y }

func (u *Unit) HP() int    { return u.hp }
func (u *Unit) MaxHP() int { return u.stats["HP"] }

// SetHP clamps hp into [0, MaxHP].
func (u *Unit) SetHP(hp int) {
	u.hp = max(0, min(hp, u.MaxHP()))
}

// Dead reports whether the unit has no HP left.
func (u *Unit) Dead() bool { return u.hp <= 0 }

// Stat returns a base stat; unknown stats are 0.
func (u *Unit) Stat(name string) int { return u.stats[name] }

// Level is the LVL stat, at least 1.
func (u *Unit) Level() int { return max(1, u.stats["LVL"]) }

// Exp is the progress towards the next level, 0..99.
func (u *Unit) Exp() int { return u.exp }

func (u *Unit) Tags() []string { return slices.Clone(u.tags) }

// SetTags replaces the unit tags.
func (u *Unit) SetTags(tags ...string) { u.tags = slices.Clone(tags) }

func (u *Unit) Skills() []*component.Entity { return slices.Clone(u.skills) }
func (u *Unit) Items() []*component.Entity  { return slices.Clone(u.items) }

// AddSkill grants s and makes u its holder.
func (u *Unit) AddSkill(s *component.Entity) {
	s.SetHolder(u)
	u.skills = append(u.skills, s)
}

// RemoveSkill drops s; false when u did not have it.
func (u *Unit) RemoveSkill(s *component.Entity) bool {
	i := slices.Index(u.skills, s)
	if i < 0 {
		return false
	}
	u.skills = slices.Delete(u.skills, i, i+1)
	return true
}

// FindSkill returns the first skill with nid.
func (u *Unit) FindSkill(nid string) *component.Entity {
	for _, s := range u.skills {
		if s.Nid == nid {
			return s
		}
	}
	return nil
}

// AddItem gives it to u.
func (u *Unit) AddItem(it *component.Entity) {
	it.SetHolder(u)
	u.items = append(u.items, it)
}

// RemoveItem drops it; false when u did not carry it.
func (u *Unit) RemoveItem(it *component.Entity) bool {
	i := slices.Index(u.items, it)
	if i < 0 {
		return false
	}
	u.items = slices.Delete(u.items, i, i+1)
	return true
}

var _ component.Unit = (*Unit)(nil)
