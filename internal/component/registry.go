package component

import (
	"errors"
	"log/slog"
)

// ErrNoSkillFactory is returned by Args.NewSkill when the session has no
// skill factory.
var ErrNoSkillFactory = errors.New("no skill factory in hook args")

// Registry maps component nids to kinds for one entity class.
type Registry struct {
	name  string
	kinds map[string]*Kind
	order []*Kind
}

// NewRegistry creates an empty registry. name is used in log records only.
func NewRegistry(name string) *Registry {
	return &Registry{
		name:  name,
		kinds: make(map[string]*Kind),
	}
}

// Register adds b under its nid. A missing or duplicate nid is logged and
// ignored.
func (r *Registry) Register(b Behavior) bool {
	nid := b.Meta().Nid
	if nid == "" {
		slog.Warn("component kind without nid ignored", "registry", r.name)
		return false
	}
	if _, exists := r.kinds[nid]; exists {
		slog.Warn("duplicate component kind ignored", "registry", r.name, "component", nid)
		return false
	}
	k := newKind(b)
	r.kinds[nid] = k
	r.order = append(r.order, k)
	return true
}

// Kind returns the kind registered under nid.
func (r *Registry) Kind(nid string) (*Kind, bool) {
	k, ok := r.kinds[nid]
	return k, ok
}

// Kinds returns all kinds in registration order.
func (r *Registry) Kinds() []*Kind {
	out := make([]*Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.order) }

// Implements reports whether the kind registered under nid implements h.
// Unknown nids implement nothing.
func (r *Registry) Implements(nid string, h Hook) bool {
	k, ok := r.kinds[nid]
	return ok && k.Implements(h)
}

// Instantiate creates a detached instance of nid. A nil value selects the
// kind default. Unknown nids produce a sentinel instance that implements no
// hooks and keeps value verbatim.
func (r *Registry) Instantiate(nid string, value any) *Instance {
	k, ok := r.kinds[nid]
	if !ok {
		slog.Warn("unknown component", "registry", r.name, "component", nid)
		return &Instance{kind: unknownKind(nid), value: Clone(value)}
	}

	c := &Instance{kind: k, state: k.newState()}
	if value == nil {
		c.value = k.Default()
		return c
	}
	decoded, err := Decode(k.meta.Expose, value)
	if err != nil {
		slog.Warn("invalid component value, using default",
			"registry", r.name,
			"component", nid,
			"err", err)
		decoded = k.Default()
	}
	c.value = decoded
	return c
}
