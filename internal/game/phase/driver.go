// Package phase drives the per-turn upkeep and endstep phases: every skill
// and item on every unit gets the phase hook and its cleanup variant, and
// entities flagged for removal are swept afterwards.
package phase

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/game"
	"github.com/udisondev/tactica/internal/model"
)

// Options tune one phase run.
type Options struct {
	// Suppressed skips the normal phase hooks. Cleanup hooks still run once.
	Suppressed bool
}

// Report summarizes one phase run.
type Report struct {
	Phase   component.Hook
	Calls   int
	Faults  int
	Removed []string
}

// Driver runs turn phases over a session.
type Driver struct {
	eng *component.Engine
}

// NewDriver creates a Driver bound to eng.
func NewDriver(eng *component.Engine) *Driver {
	return &Driver{eng: eng}
}

// Upkeep runs the start-of-turn phase for units.
func (d *Driver) Upkeep(s *game.Session, units []*model.Unit, opts Options) Report {
	return d.run(s, units, component.OnUpkeep, opts)
}

// Endstep runs the end-of-turn phase for units.
func (d *Driver) Endstep(s *game.Session, units []*model.Unit, opts Options) Report {
	return d.run(s, units, component.OnEndstep, opts)
}

func (d *Driver) run(s *game.Session, units []*model.Unit, h component.Hook, opts Options) Report {
	rep := Report{Phase: h}
	l := action.NewList()

	for _, u := range units {
		a := s.Args(l)
		a.Unit = u
		for _, e := range entities(u) {
			if !opts.Suppressed {
				rep.add(d.eng.Dispatch(e, h, a, component.Aggregate))
			}
			rep.add(d.eng.Dispatch(e, h.Unconditional(), a, component.Unconditional))
		}
	}
	s.History.Commit(l)

	for _, u := range units {
		rep.Removed = append(rep.Removed, d.sweep(s, u)...)
	}

	slog.Debug("phase complete",
		"phase", h,
		"units", len(units),
		"calls", rep.Calls,
		"faults", rep.Faults,
		"removed", len(rep.Removed))
	return rep
}

// sweep removes every skill and item of u flagged for removal, running the
// on_remove teardown first.
func (d *Driver) sweep(s *game.Session, u *model.Unit) []string {
	var removed []string
	l := action.NewList()
	a := s.Args(l)
	a.Unit = u

	for _, sk := range u.Skills() {
		if !sk.MarkedForRemoval() {
			continue
		}
		d.eng.Teardown(sk, a)
		l.Append(&model.RemoveSkill{Unit: u, Skill: sk})
		removed = append(removed, sk.Nid)
	}
	for _, it := range u.Items() {
		if !it.MarkedForRemoval() {
			continue
		}
		a.Item = it
		d.eng.Teardown(it, a)
		l.Append(&model.RemoveItem{Unit: u, Item: it})
		removed = append(removed, it.Nid)
	}
	s.History.Commit(l)
	return removed
}

func (r *Report) add(res component.Result) {
	r.Calls += res.Calls
	r.Faults += res.Faults
}

func entities(u *model.Unit) []*component.Entity {
	return append(u.Skills(), u.Items()...)
}
