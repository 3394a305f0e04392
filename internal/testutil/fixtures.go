package testutil

import (
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
)

// Fixtures содержит статы тестовых юнитов, чтобы не дублировать их в тестах.
var Fixtures = struct {
	Eirika map[string]int
	Seth   map[string]int
	Bandit map[string]int
}{
	Eirika: map[string]int{"HP": 20, "STR": 5, "MAG": 2, "SKL": 10, "SPD": 10, "DEF": 2, "RES": 1},
	Seth:   map[string]int{"HP": 30, "STR": 13, "SKL": 13, "SPD": 12, "DEF": 11, "RES": 8},
	Bandit: map[string]int{"HP": 30, "STR": 8, "SPD": 4, "DEF": 3, "RES": 1},
}

// Unit places a new unit at (x, y).
func Unit(nid, team string, stats map[string]int, x, y int) *model.Unit {
	u := model.NewUnit(nid, team, stats)
	u.SetPosition(x, y)
	return u
}

// SkillFactory adapts a func to component.SkillFactory.
type SkillFactory func(nid string) (*component.Entity, error)

func (f SkillFactory) NewSkill(nid string) (*component.Entity, error) { return f(nid) }

// BlankSkills builds empty skills named after the requested nid.
var BlankSkills = SkillFactory(func(nid string) (*component.Entity, error) {
	return component.NewSkill(nid, ""), nil
})
