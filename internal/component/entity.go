package component

import (
	"github.com/oklog/ulid/v2"
)

// Class distinguishes the two composable entity types.
type Class string

const (
	ClassSkill Class = "skill"
	ClassItem  Class = "item"
)

// Entity is a Skill or an Item: an ordered list of component instances plus
// optional child entities (sub-items).
type Entity struct {
	UID   ulid.ULID
	Nid   string
	Name  string
	Class Class

	components []*Instance
	children   []*Entity
	parent     *Entity
	holder     Unit

	suppressed bool
	removal    bool
}

// NewEntity creates an empty entity with a fresh identity.
func NewEntity(class Class, nid, name string) *Entity {
	if name == "" {
		name = nid
	}
	return &Entity{
		UID:   ulid.Make(),
		Nid:   nid,
		Name:  name,
		Class: class,
	}
}

// NewSkill creates an empty skill entity.
func NewSkill(nid, name string) *Entity { return NewEntity(ClassSkill, nid, name) }

// NewItem creates an empty item entity.
func NewItem(nid, name string) *Entity { return NewEntity(ClassItem, nid, name) }

// instances snapshots the attached instances so hooks may detach while a
// walk is in progress.
func (e *Entity) instances() []*Instance {
	out := make([]*Instance, len(e.components))
	copy(out, e.components)
	return out
}

// Nids returns the attached component identifiers in attachment order.
func (e *Entity) Nids() []string {
	out := make([]string, len(e.components))
	for i, c := range e.components {
		out[i] = c.Nid()
	}
	return out
}

// Has reports whether a component with nid is attached.
func (e *Entity) Has(nid string) bool {
	return e.find(nid) != nil
}

// ComponentValue is the public query other components use to read a
// sibling's value. The first attached instance with nid answers.
func (e *Entity) ComponentValue(nid string) (any, bool) {
	c := e.find(nid)
	if c == nil {
		return nil, false
	}
	return c.Value(), true
}

func (e *Entity) find(nid string) *Instance {
	for _, c := range e.components {
		if c.Nid() == nid {
			return c
		}
	}
	return nil
}

// Children returns the sub-entities in attachment order.
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, len(e.children))
	copy(out, e.children)
	return out
}

// AddChild attaches child under e.
func (e *Entity) AddChild(child *Entity) {
	child.parent = e
	child.holder = e.holder
	e.children = append(e.children, child)
}

// Parent returns the owning entity of a sub-item.
func (e *Entity) Parent() *Entity { return e.parent }

// Holder returns the unit carrying e, if any.
func (e *Entity) Holder() Unit { return e.holder }

// SetHolder records the unit carrying e and its children.
func (e *Entity) SetHolder(u Unit) {
	e.holder = u
	for _, child := range e.children {
		child.SetHolder(u)
	}
}

// Suppress toggles the explicit suppression gate.
func (e *Entity) Suppress(on bool) { e.suppressed = on }

// Suppressed reports whether e or one of its ancestors is suppressed.
func (e *Entity) Suppressed() bool {
	for p := e; p != nil; p = p.parent {
		if p.suppressed {
			return true
		}
	}
	return false
}

// MarkForRemoval flags e so that the phase driver removes it at the end of
// the phase.
func (e *Entity) MarkForRemoval() { e.removal = true }

// MarkedForRemoval reports the removal flag.
func (e *Entity) MarkedForRemoval() bool { return e.removal }

func (e *Entity) attach(c *Instance) {
	c.owner = e
	e.components = append(e.components, c)
}

func (e *Entity) detach(c *Instance) bool {
	for i, cur := range e.components {
		if cur == c {
			e.components = append(e.components[:i], e.components[i+1:]...)
			c.owner = nil
			return true
		}
	}
	return false
}
