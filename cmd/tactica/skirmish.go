package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/tactica/internal/ai"
	"github.com/udisondev/tactica/internal/catalog"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/equation"
	"github.com/udisondev/tactica/internal/game"
	"github.com/udisondev/tactica/internal/game/combat"
	"github.com/udisondev/tactica/internal/game/phase"
	"github.com/udisondev/tactica/internal/model"
)

type unitSpec struct {
	nid    string
	team   string
	x, y   int
	stats  map[string]int
	tags   []string
	skills []string
	items  []string
}

// Демо-состав: два игрока против двух бандитов на клочке 2x2.
var roster = []unitSpec{
	{
		nid: "eirika", team: model.TeamPlayer,
		stats:  map[string]int{"HP": 20, "STR": 5, "MAG": 2, "SKL": 10, "SPD": 11, "LCK": 6, "DEF": 4, "RES": 3},
		skills: []string{"sol"},
		items:  []string{"rapier"},
	},
	{
		nid: "seth", team: model.TeamPlayer, x: 1,
		stats:  map[string]int{"HP": 30, "STR": 13, "MAG": 2, "SKL": 13, "SPD": 12, "LCK": 12, "DEF": 11, "RES": 8},
		tags:   []string{"Horse"},
		skills: []string{"charm", "paragon"},
		items:  []string{"iron_sword", "javelin"},
	},
	{
		nid: "bandit", team: model.TeamEnemy, y: 1,
		stats:  map[string]int{"HP": 24, "STR": 8, "SKL": 3, "SPD": 4, "LCK": 1, "DEF": 3, "RES": 0},
		skills: []string{"vantage"},
		items:  []string{"iron_axe"},
	},
	{
		nid: "brigand", team: model.TeamEnemy, x: 1, y: 1,
		stats:  map[string]int{"HP": 26, "STR": 9, "SKL": 4, "SPD": 3, "LCK": 0, "DEF": 4, "RES": 0},
		skills: []string{"wary_fighter"},
		items:  []string{"javelin", "iron_axe"},
	},
}

type skirmish struct {
	eng      *component.Engine
	session  *game.Session
	board    *model.Board
	resolver *combat.Resolver
	driver   *phase.Driver
	ai       *ai.Evaluator
}

type summary struct {
	Turns  int
	Winner string
}

func newSkirmish(eng *component.Engine, cat *catalog.Catalog, eqs *equation.Set, seed uint64) (*skirmish, error) {
	board := model.NewBoard()
	for _, spec := range roster {
		u := model.NewUnit(spec.nid, spec.team, spec.stats)
		u.SetPosition(spec.x, spec.y)
		u.SetTags(spec.tags...)
		for _, nid := range spec.skills {
			s, err := cat.NewSkill(eng, nid)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", spec.nid, err)
			}
			u.AddSkill(s)
		}
		for _, nid := range spec.items {
			it, err := cat.NewItem(eng, nid)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", spec.nid, err)
			}
			u.AddItem(it)
		}
		if ws := eng.ValidateAll(u.NID(), u.Skills()); len(ws) > 0 {
			for _, w := range ws {
				slog.Warn("loadout", "unit", u.NID(), "warning", w.String())
			}
		}
		board.Add(u)
	}

	resolver := combat.NewResolver(eng, eqs)
	session := game.NewSession(eng, eqs, board, seed)
	session.Calc = resolver
	session.Skills = cat.Factory(eng)

	return &skirmish{
		eng:      eng,
		session:  session,
		board:    board,
		resolver: resolver,
		driver:   phase.NewDriver(eng),
		ai:       ai.NewEvaluator(eng, eqs),
	}, nil
}

// Run plays up to turns full turns, player phase first. It stops early when a
// side is wiped out or ctx is cancelled.
func (sk *skirmish) Run(ctx context.Context, turns int) summary {
	var sum summary
	for turn := 1; turn <= turns; turn++ {
		sum.Turns = turn
		for _, team := range []string{model.TeamPlayer, model.TeamEnemy} {
			if ctx.Err() != nil {
				return sum
			}
			units := sk.alive(team)
			if len(units) == 0 {
				sum.Winner = sk.opponent(team)
				return sum
			}
			sk.phase(turn, team, units)
		}
	}
	return sum
}

func (sk *skirmish) phase(turn int, team string, units []*model.Unit) {
	up := sk.driver.Upkeep(sk.session, units, phase.Options{})
	slog.Debug("upkeep", "turn", turn, "team", team, "calls", up.Calls, "removed", up.Removed)

	for _, u := range units {
		if u.Dead() {
			continue
		}
		sk.act(u)
	}

	end := sk.driver.Endstep(sk.session, sk.alive(team), phase.Options{})
	slog.Debug("endstep", "turn", turn, "team", team, "calls", end.Calls, "removed", end.Removed)
}

func (sk *skirmish) act(u *model.Unit) {
	choice, ok := sk.ai.Best(u, sk.board)
	if !ok {
		slog.Info("no action", "unit", u.NID())
		return
	}
	if !sk.resolver.InRange(u, choice.Item, choice.Target) {
		slog.Info("target out of range", "unit", u.NID(), "item", choice.Item.Nid, "target", choice.Target.NID())
		return
	}
	defender := sk.board.Unit(choice.Target.NID())
	counter := sk.counterWeapon(defender, u)

	forecast, err := sk.resolver.Combat(sk.session, u, choice.Item, defender, counter, false)
	if err != nil {
		slog.Warn("forecast failed", "unit", u.NID(), "err", err)
		return
	}
	slog.Debug("forecast",
		"unit", u.NID(),
		"item", choice.Item.Nid,
		"target", defender.NID(),
		"dealt", forecast.Damage(u.NID()),
		"taken", forecast.Damage(defender.NID()))

	out, err := sk.resolver.Combat(sk.session, u, choice.Item, defender, counter, true)
	if err != nil {
		slog.Warn("combat failed", "unit", u.NID(), "err", err)
		return
	}
	slog.Info("combat",
		"unit", u.NID(),
		"item", choice.Item.Nid,
		"target", defender.NID(),
		"strikes", len(out.Strikes),
		"dealt", out.Damage(u.NID()),
		"taken", out.Damage(defender.NID()),
		"hp", u.HP(),
		"target_hp", defender.HP())

	sk.reward(u, defender, out)
	sk.reward(defender, u, out)
}

// reward hands player units their experience for out.
func (sk *skirmish) reward(u, other *model.Unit, out combat.Outcome) {
	if u.Team() != model.TeamPlayer || u.Dead() {
		return
	}
	exp := sk.resolver.Experience(combat.DefaultExpCurve(), u, other, out)
	if exp == 0 {
		return
	}
	gain := &model.GainExp{Unit: u, Amount: exp}
	sk.session.History.Do(gain)
	if gain.LevelledUp() {
		slog.Info("level up", "unit", u.NID(), "level", u.Level())
	}
}

// counterWeapon returns the first weapon defender can answer attacker with.
func (sk *skirmish) counterWeapon(defender, attacker *model.Unit) *component.Entity {
	for _, it := range defender.Items() {
		if it.Has("weapon") && sk.resolver.InRange(defender, it, attacker) {
			return it
		}
	}
	return nil
}

func (sk *skirmish) alive(team string) []*model.Unit {
	var out []*model.Unit
	for _, u := range sk.board.Roster() {
		if u.Team() == team && !u.Dead() {
			out = append(out, u)
		}
	}
	return out
}

func (sk *skirmish) opponent(team string) string {
	if team == model.TeamPlayer {
		return model.TeamEnemy
	}
	return model.TeamPlayer
}

// loadout returns the saved form of u's skills and items.
func loadout(u *model.Unit) []component.EntityRecord {
	var out []component.EntityRecord
	for _, s := range u.Skills() {
		out = append(out, s.Serialize())
	}
	for _, it := range u.Items() {
		out = append(out, it.Serialize())
	}
	return out
}
