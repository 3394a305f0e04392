package component

import (
	"log/slog"

	"github.com/samber/oops"
)

// Strategy selects how the answers of several implementers are reconciled.
type Strategy uint8

const (
	// Aggregate runs every active implementer in attachment order.
	Aggregate Strategy = iota
	// Override returns the last attached X_override answer, falling back to
	// FirstTruthy over plain X.
	Override
	// FirstTruthy returns the first truthy answer or the hook's neutral value.
	FirstTruthy
	// Unconditional is Aggregate with the suppression gate disabled.
	Unconditional
)

func (s Strategy) String() string {
	switch s {
	case Aggregate:
		return "aggregate"
	case Override:
		return "override"
	case FirstTruthy:
		return "first_truthy"
	case Unconditional:
		return "unconditional"
	}
	return "unknown"
}

// Result is the outcome of one dispatch.
type Result struct {
	Hook Hook

	// Values holds every non-nil answer in call order.
	Values []any
	// Value is the resolved answer for Override and FirstTruthy.
	Value any
	// Found reports whether a component supplied Value.
	Found bool
	// Source is the nid of the component that supplied Value.
	Source string

	Calls  int
	Faults int
}

// String returns Value as a string.
func (r Result) String() string {
	s, _ := AsString(r.Value)
	return s
}

// Int returns Value as an int.
func (r Result) Int() int {
	n, _ := AsInt(r.Value)
	return n
}

// Float returns Value as a float64.
func (r Result) Float() float64 {
	f, _ := AsFloat(r.Value)
	return f
}

// Bool returns Value as a bool.
func (r Result) Bool() bool {
	b, _ := AsBool(r.Value)
	return b
}

// Engine dispatches hooks over entities and owns the per-class registries.
type Engine struct {
	registries map[Class]*Registry
}

// NewEngine creates an engine over the skill and item registries.
func NewEngine(skills, items *Registry) *Engine {
	return &Engine{
		registries: map[Class]*Registry{
			ClassSkill: skills,
			ClassItem:  items,
		},
	}
}

// Registry returns the registry used for entities of class.
func (g *Engine) Registry(class Class) *Registry {
	if r, ok := g.registries[class]; ok {
		return r
	}
	return g.registries[ClassSkill]
}

// Dispatch invokes h on e according to s.
func (g *Engine) Dispatch(e *Entity, h Hook, a *Args, s Strategy) Result {
	return g.DispatchAll([]*Entity{e}, h, a, s)
}

// DispatchAll invokes h over several entities as one candidate sequence, in
// slice order. It is used for queries over all skills of a unit.
func (g *Engine) DispatchAll(ents []*Entity, h Hook, a *Args, s Strategy) Result {
	if _, known := hookTable[h]; !known {
		slog.Debug("dispatch of unknown hook", "hook", h)
		return Result{Hook: h}
	}

	switch s {
	case Override:
		return g.override(ents, h, a)
	case FirstTruthy:
		return g.firstTruthy(ents, h, a)
	case Unconditional:
		return g.aggregate(ents, h, a, false)
	default:
		return g.aggregate(ents, h, a, true)
	}
}

func (g *Engine) aggregate(ents []*Entity, h Hook, a *Args, gated bool) Result {
	res := Result{Hook: h}
	g.walk(ents, h, a, gated, func(c *Instance) bool {
		out, err := g.invoke(c, h, a)
		res.Calls++
		if err != nil {
			res.Faults++
			return true
		}
		if out != nil {
			res.Values = append(res.Values, out)
		}
		return true
	})
	return res
}

func (g *Engine) firstTruthy(ents []*Entity, h Hook, a *Args) Result {
	res := Result{Hook: h, Value: Neutral(h)}
	g.walk(ents, h, a, true, func(c *Instance) bool {
		out, err := g.invoke(c, h, a)
		res.Calls++
		if err != nil {
			res.Faults++
			return true
		}
		if out != nil {
			res.Values = append(res.Values, out)
		}
		if !Truthy(out) {
			return true
		}
		res.Value = out
		res.Found = true
		res.Source = c.Nid()
		return false
	})
	return res
}

func (g *Engine) override(ents []*Entity, h Hook, a *Args) Result {
	base := h.Base()
	ov := base.Override()

	var overrides []*Instance
	if _, ok := hookTable[ov]; ok {
		g.walk(ents, ov, a, true, func(c *Instance) bool {
			overrides = append(overrides, c)
			return true
		})
	}

	// Earlier overrides are shadowed even when the last one has no answer.
	res := Result{Hook: ov}
	if n := len(overrides); n > 0 {
		c := overrides[n-1]
		out, err := g.invoke(c, ov, a)
		res.Calls++
		switch {
		case err != nil:
			res.Faults++
		case Truthy(out):
			res.Values = append(res.Values, out)
			res.Value = out
			res.Found = true
			res.Source = c.Nid()
			return res
		}
	}

	fallback := g.firstTruthy(ents, base, a)
	fallback.Calls += res.Calls
	fallback.Faults += res.Faults
	return fallback
}

// walk visits the candidates for h in entity order, then attachment order,
// then (for cascading hooks) child entities. visit returns false to stop.
func (g *Engine) walk(ents []*Entity, h Hook, a *Args, gated bool, visit func(*Instance) bool) bool {
	spec := hookTable[h]
	gated = gated && !spec.ungated
	for _, e := range ents {
		if e == nil {
			continue
		}
		if !g.walkEntity(e, h, a, gated, spec.cascade, visit) {
			return false
		}
	}
	return true
}

func (g *Engine) walkEntity(e *Entity, h Hook, a *Args, gated, cascade bool, visit func(*Instance) bool) bool {
	checked, active := false, true
	for _, c := range e.instances() {
		if !c.kind.Implements(h) {
			continue
		}
		if gated && !c.kind.IgnoreConditional() {
			if !checked {
				active, checked = g.Active(e, a), true
			}
			if !active {
				continue
			}
		}
		if !visit(c) {
			return false
		}
	}
	if !cascade {
		return true
	}
	for _, child := range e.Children() {
		if !g.walkEntity(child, h, a, gated, cascade, visit) {
			return false
		}
	}
	return true
}

// Active reports whether the normal hooks of e may run: e is not suppressed
// and every condition component on it holds. A faulting condition is
// ignored.
func (g *Engine) Active(e *Entity, a *Args) bool {
	if e.Suppressed() {
		return false
	}
	for _, c := range e.instances() {
		if !c.kind.Implements(Condition) {
			continue
		}
		out, err := g.invoke(c, Condition, a)
		if err != nil {
			continue
		}
		if !Truthy(out) {
			return false
		}
	}
	return true
}

// invoke runs one hook body with panic isolation.
func (g *Engine) invoke(c *Instance, h Hook, a *Args) (out any, err error) {
	fn := c.Hook(h)
	if fn == nil {
		return nil, nil
	}
	err = oops.
		In("component").
		With("component", c.Nid()).
		With("hook", string(h)).
		Recoverf(func() {
			out = fn(a)
		}, "hook %s of %s failed", h, c.Nid())
	if err != nil {
		slog.Warn("component hook fault",
			"component", c.Nid(),
			"hook", h,
			"err", err)
		return nil, err
	}
	return out, nil
}
