package combat

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/game"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
)

// DoubleThreshold is the attack speed advantage needed for a follow-up strike.
const DoubleThreshold = 4

var (
	// ErrNoWeapon is returned when the attacking item is nil.
	ErrNoWeapon = errors.New("combat: no item")
	// ErrInvalidTarget is returned when the item refuses the target.
	ErrInvalidTarget = errors.New("combat: invalid target")
	// ErrUnavailable is returned when the item cannot be used right now.
	ErrUnavailable = errors.New("combat: item unavailable")
)

// StrikeResult is the outcome of one strike.
type StrikeResult struct {
	Attacker string
	Defender string
	Hit      bool
	Crit     bool
	Damage   int
}

// Outcome summarizes one combat.
type Outcome struct {
	Strikes []StrikeResult
	// Mark is the history position before the combat; rewinding to it undoes
	// the whole exchange.
	Mark      int
	Committed bool
}

// Damage is the total damage dealt by u across the combat.
func (o Outcome) Damage(u string) int {
	total := 0
	for _, s := range o.Strikes {
		if s.Attacker == u {
			total += s.Damage
		}
	}
	return total
}

// Strike rolls hit and crit for one swing of item and dispatches on_hit,
// on_crit or on_miss on the item. The actions gathered in l are committed to
// the session history before returning.
func (r *Resolver) Strike(s *game.Session, l *action.List, attacker component.Unit, item *component.Entity, defender component.Unit, mode string) StrikeResult {
	a := r.args(s, l)
	a.Unit, a.Item, a.Target, a.Mode = attacker, item, defender, mode

	res := StrikeResult{Attacker: attacker.NID(), Defender: defender.NID()}
	res.Hit = a.Roll(100) < r.HitChance(attacker, item, defender)
	if res.Hit {
		res.Crit = a.Roll(100) < r.CritChance(attacker, item, defender)
	}

	before := defender.HP()
	switch {
	case res.Crit:
		r.eng.Dispatch(item, component.OnCrit, a, component.Aggregate)
	case res.Hit:
		r.eng.Dispatch(item, component.OnHit, a, component.Aggregate)
	default:
		r.eng.Dispatch(item, component.OnMiss, a, component.Aggregate)
		a.AppendPlayback(playback.Token{Kind: playback.Miss, Source: attacker.NID(), Target: defender.NID(), Item: item.Nid})
	}
	s.History.Commit(l)
	res.Damage = max(0, before-defender.HP())

	slog.Debug("strike",
		"attacker", res.Attacker,
		"defender", res.Defender,
		"item", item.Nid,
		"hit", res.Hit,
		"crit", res.Crit,
		"damage", res.Damage)
	return res
}

// Combat resolves an exchange between attacker and defender. The defender
// counters with counter when it is non-nil and in range. When commit is
// false every effect is rewound after resolution, which makes Combat usable
// as a forecast.
func (r *Resolver) Combat(s *game.Session, attacker component.Unit, item *component.Entity, defender component.Unit, counter *component.Entity, commit bool) (Outcome, error) {
	if item == nil {
		return Outcome{}, ErrNoWeapon
	}
	out := Outcome{Mark: s.History.Mark()}
	tokens := s.Playback.Len()

	first := swing{attacker, item, defender, component.ModeAttack}
	if !r.available(s, first) {
		return out, fmt.Errorf("%w: %s", ErrUnavailable, item.Nid)
	}
	if !component.All(r.eng.Dispatch(item, component.TargetRestrict, first.args(r, s, nil), component.Aggregate)) {
		return out, fmt.Errorf("%w: %s on %s", ErrInvalidTarget, item.Nid, defender.NID())
	}

	second := swing{defender, counter, attacker, component.ModeDefense}
	if counter != nil && (!r.InRange(defender, counter, attacker) || !r.available(s, second)) {
		counter = nil
	}
	sides := []swing{first}
	if counter != nil {
		sides = append(sides, second)
	}
	r.bracket(s, sides, component.StartCombat)

	order := []swing{first}
	if counter != nil {
		if r.vantage(second) {
			order = []swing{second, first}
		} else {
			order = append(order, second)
		}
	}
	if follow, ok := r.followUp(s, first, second, counter != nil); ok {
		order = append(order, follow)
	}

	for _, sw := range order {
		if dead(sw.from) || dead(sw.to) {
			break
		}
		// A follow-up may find the item spent by the first swing.
		if !r.available(s, sw) {
			continue
		}
		out.Strikes = append(out.Strikes, r.Strike(s, action.NewList(), sw.from, sw.item, sw.to, sw.mode))
	}

	r.bracket(s, sides, component.EndCombat)

	if commit {
		out.Committed = true
		return out, nil
	}
	s.History.RewindTo(out.Mark)
	s.Playback.Truncate(tokens)
	return out, nil
}

// swing is one unit striking another with an item.
type swing struct {
	from component.Unit
	item *component.Entity
	to   component.Unit
	mode string
}

func (sw swing) args(r *Resolver, s *game.Session, l *action.List) *component.Args {
	a := r.args(s, l)
	a.Unit, a.Item, a.Target, a.Mode = sw.from, sw.item, sw.to, sw.mode
	return a
}

// followUp picks the unit that strikes a second time, if any.
func (r *Resolver) followUp(s *game.Session, first, second swing, countered bool) (swing, bool) {
	diff := r.AttackSpeed(first.from) - r.AttackSpeed(first.to)
	switch {
	case diff >= DoubleThreshold && !r.noDouble(s, first):
		return first, true
	case countered && -diff >= DoubleThreshold && !r.noDouble(s, second):
		return second, true
	}
	return swing{}, false
}

func (r *Resolver) available(s *game.Session, sw swing) bool {
	return component.All(r.eng.Dispatch(sw.item, component.Available, sw.args(r, s, nil), component.Aggregate))
}

func (r *Resolver) noDouble(s *game.Session, sw swing) bool {
	a := sw.args(r, s, nil)
	if component.Any(r.eng.Dispatch(sw.item, component.NoDouble, a, component.Aggregate)) {
		return true
	}
	return component.Any(r.eng.DispatchAll(sw.from.Skills(), component.NoDouble, a, component.Aggregate))
}

func (r *Resolver) vantage(sw swing) bool {
	a := &component.Args{Eval: r.eqs, Unit: sw.from, Item: sw.item, Target: sw.to, Mode: sw.mode}
	return component.Any(r.eng.DispatchAll(sw.from.Skills(), component.Vantage, a, component.Aggregate))
}

// InRange reports whether target sits within item's range band from u.
func (r *Resolver) InRange(u component.Unit, item *component.Entity, target component.Unit) bool {
	a := &component.Args{Eval: r.eqs, Unit: u, Item: item, Target: target}
	lo := r.eng.Dispatch(item, component.MinimumRange, a, component.FirstTruthy).Int()
	hi := r.eng.Dispatch(item, component.MaximumRange, a, component.FirstTruthy).Int()
	ux, uy := u.Position()
	tx, ty := target.Position()
	d := model.Distance(ux, uy, tx, ty)
	return d >= lo && d <= hi
}

// bracket dispatches the combat bracket hook h and then its cleanup variant
// on each side's item and skills. The resulting actions are committed
// immediately.
func (r *Resolver) bracket(s *game.Session, sides []swing, h component.Hook) {
	for _, hook := range []component.Hook{h, h.Unconditional()} {
		strategy := component.Aggregate
		if hook.IsUnconditional() {
			strategy = component.Unconditional
		}
		for _, sw := range sides {
			l := action.NewList()
			ents := append([]*component.Entity{sw.item}, sw.from.Skills()...)
			r.eng.DispatchAll(ents, hook, sw.args(r, s, l), strategy)
			s.History.Commit(l)
		}
	}
}

func (r *Resolver) args(s *game.Session, l *action.List) *component.Args {
	a := s.Args(l)
	a.Calc = r
	return a
}

func dead(u component.Unit) bool { return u.HP() <= 0 }
