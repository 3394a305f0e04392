package component

import (
	"encoding/json"
	"log/slog"
)

// Persisted is the saved form of one component: its nid, its structurally
// encoded value and, for stateful kinds, the JSON state.
type Persisted struct {
	Nid   string          `json:"nid" yaml:"nid"`
	Value any             `json:"value" yaml:"value"`
	Data  json.RawMessage `json:"data,omitempty" yaml:"-"`
}

// Serialize emits the persisted form of c.
func (c *Instance) Serialize() Persisted {
	p := Persisted{Nid: c.Nid(), Value: Encode(c.value)}
	switch {
	case c.state != nil:
		data, err := json.Marshal(c.state)
		if err != nil {
			slog.Warn("component state not serializable", "component", c.Nid(), "err", err)
			p.Data = append(json.RawMessage(nil), c.raw...)
			break
		}
		p.Data = data
	case len(c.raw) > 0:
		p.Data = append(json.RawMessage(nil), c.raw...)
	}
	return p
}

// EntityRecord is the saved form of an entity tree.
type EntityRecord struct {
	UID        string         `json:"uid"`
	Nid        string         `json:"nid"`
	Name       string         `json:"name"`
	Class      Class          `json:"class"`
	Components []Persisted    `json:"components"`
	Children   []EntityRecord `json:"children,omitempty"`
}

// Serialize emits e and its children, preserving component order.
func (e *Entity) Serialize() EntityRecord {
	rec := EntityRecord{
		UID:        e.UID.String(),
		Nid:        e.Nid,
		Name:       e.Name,
		Class:      e.Class,
		Components: make([]Persisted, 0, len(e.components)),
	}
	for _, c := range e.components {
		rec.Components = append(rec.Components, c.Serialize())
	}
	for _, child := range e.children {
		rec.Children = append(rec.Children, child.Serialize())
	}
	return rec
}
