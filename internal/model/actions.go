package model

import (
	"fmt"
	"slices"

	"github.com/udisondev/tactica/internal/component"
)

// ChangeHP adds Delta to the unit HP; Reverse restores the exact previous HP
// even when the change was clamped.
type ChangeHP struct {
	Unit  component.Unit
	Delta int

	old int
}

func (a *ChangeHP) Do() {
	a.old = a.Unit.HP()
	a.Unit.SetHP(a.old + a.Delta)
}

func (a *ChangeHP) Reverse() { a.Unit.SetHP(a.old) }

func (a *ChangeHP) Describe() string {
	return fmt.Sprintf("change_hp %s %+d", a.Unit.NID(), a.Delta)
}

// AddSkill grants Skill to Unit.
type AddSkill struct {
	Unit  component.Unit
	Skill *component.Entity
}

func (a *AddSkill) Do()      { a.Unit.AddSkill(a.Skill) }
func (a *AddSkill) Reverse() { a.Unit.RemoveSkill(a.Skill) }

func (a *AddSkill) Describe() string {
	return fmt.Sprintf("add_skill %s %s", a.Unit.NID(), a.Skill.Nid)
}

// RemoveSkill takes Skill away from Unit.
type RemoveSkill struct {
	Unit  component.Unit
	Skill *component.Entity

	removed bool
}

func (a *RemoveSkill) Do() { a.removed = a.Unit.RemoveSkill(a.Skill) }
func (a *RemoveSkill) Reverse() {
	if a.removed {
		a.Unit.AddSkill(a.Skill)
	}
}

func (a *RemoveSkill) Describe() string {
	return fmt.Sprintf("remove_skill %s %s", a.Unit.NID(), a.Skill.Nid)
}

// RemoveSkillNid removes every skill with Nid from Unit.
type RemoveSkillNid struct {
	Unit component.Unit
	Nid  string

	removed []*component.Entity
}

func (a *RemoveSkillNid) Do() {
	a.removed = nil
	for _, s := range a.Unit.Skills() {
		if s.Nid == a.Nid && a.Unit.RemoveSkill(s) {
			a.removed = append(a.removed, s)
		}
	}
}

func (a *RemoveSkillNid) Reverse() {
	for _, s := range a.removed {
		a.Unit.AddSkill(s)
	}
	a.removed = nil
}

func (a *RemoveSkillNid) Describe() string {
	return fmt.Sprintf("remove_skill_nid %s %s", a.Unit.NID(), a.Nid)
}

// ItemHolder is a unit that can lose and regain items.
type ItemHolder interface {
	NID() string
	Items() []*component.Entity
	AddItem(it *component.Entity)
	RemoveItem(it *component.Entity) bool
}

// RemoveItem takes Item away from Unit.
type RemoveItem struct {
	Unit ItemHolder
	Item *component.Entity

	removed bool
}

func (a *RemoveItem) Do() {
	a.removed = slices.Contains(a.Unit.Items(), a.Item) && a.Unit.RemoveItem(a.Item)
}

func (a *RemoveItem) Reverse() {
	if a.removed {
		a.Unit.AddItem(a.Item)
	}
}

func (a *RemoveItem) Describe() string {
	return fmt.Sprintf("remove_item %s %s", a.Unit.NID(), a.Item.Nid)
}

// ExpPerLevel is the experience needed for one level.
const ExpPerLevel = 100

// GainExp adds Amount experience to Unit, levelling it up each time the
// total reaches ExpPerLevel.
type GainExp struct {
	Unit   *Unit
	Amount int

	oldExp, oldLevel int
}

func (a *GainExp) Do() {
	a.oldExp, a.oldLevel = a.Unit.exp, a.Unit.stats["LVL"]
	total := a.Unit.exp + a.Amount
	level := a.Unit.Level()
	for total >= ExpPerLevel {
		total -= ExpPerLevel
		level++
	}
	a.Unit.exp = total
	a.Unit.stats["LVL"] = level
}

func (a *GainExp) Reverse() {
	a.Unit.exp = a.oldExp
	a.Unit.stats["LVL"] = a.oldLevel
}

func (a *GainExp) Describe() string {
	return fmt.Sprintf("gain_exp %s %+d", a.Unit.NID(), a.Amount)
}

// LevelledUp reports whether the last Do crossed a level boundary.
func (a *GainExp) LevelledUp() bool { return a.Unit.stats["LVL"] > max(1, a.oldLevel) }
