package component

import (
	"encoding/json"
	"log/slog"

	"github.com/oklog/ulid/v2"
)

// AttachNew grants a fresh component to e and runs its init hook.
func (g *Engine) AttachNew(e *Entity, nid string, value any, a *Args) *Instance {
	c := g.Registry(e.Class).Instantiate(nid, value)
	e.attach(c)
	if c.kind.Implements(Init) {
		_, _ = g.invoke(c, Init, a)
	}
	return c
}

// Restore re-attaches a persisted component to e without running init and
// installs its saved state.
func (g *Engine) Restore(e *Entity, p Persisted) *Instance {
	c := g.Registry(e.Class).Instantiate(p.Nid, p.Value)
	if len(p.Data) > 0 {
		if c.state == nil {
			c.raw = append(json.RawMessage(nil), p.Data...)
		} else if err := json.Unmarshal(p.Data, c.state); err != nil {
			slog.Warn("component state not restored, keeping raw data",
				"component", p.Nid,
				"err", err)
			c.state = c.kind.newState()
			c.raw = append(json.RawMessage(nil), p.Data...)
		}
	}
	e.attach(c)
	return c
}

// RestoreEntity rebuilds an entity tree from its saved form.
func (g *Engine) RestoreEntity(rec EntityRecord) *Entity {
	e := NewEntity(rec.Class, rec.Nid, rec.Name)
	if uid, err := ulid.Parse(rec.UID); err == nil {
		e.UID = uid
	} else if rec.UID != "" {
		slog.Warn("invalid entity uid, assigned a new one", "entity", rec.Nid, "uid", rec.UID)
	}
	for _, p := range rec.Components {
		g.Restore(e, p)
	}
	for _, child := range rec.Children {
		e.AddChild(g.RestoreEntity(child))
	}
	return e
}

// Remove detaches the first component with nid from e, running its on_remove
// hook first. Its state is discarded.
func (g *Engine) Remove(e *Entity, nid string, a *Args) bool {
	c := e.find(nid)
	if c == nil {
		return false
	}
	return g.RemoveInstance(c, a)
}

// RemoveInstance detaches c from its owner, running its on_remove hook first.
func (g *Engine) RemoveInstance(c *Instance, a *Args) bool {
	e := c.owner
	if e == nil {
		return false
	}
	if c.kind.Implements(OnRemove) {
		_, _ = g.invoke(c, OnRemove, a)
	}
	return e.detach(c)
}

// Teardown runs on_remove for every component of e and its children, as
// happens when the entity itself is removed from its holder.
func (g *Engine) Teardown(e *Entity, a *Args) Result {
	return g.Dispatch(e, OnRemove, a, Unconditional)
}
