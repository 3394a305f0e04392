package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ComponentSpec is one component attached by a prefab.
type ComponentSpec struct {
	Nid   string
	Value any
}

// UnmarshalYAML accepts a bare nid, a [nid] or [nid, value] sequence, or a
// single-key mapping {nid: value}.
func (c *ComponentSpec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		c.Nid, c.Value = n.Value, nil
		return nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 || len(n.Content) > 2 {
			return fmt.Errorf("line %d: component needs [nid] or [nid, value]", n.Line)
		}
		if err := n.Content[0].Decode(&c.Nid); err != nil {
			return fmt.Errorf("line %d: component nid: %w", n.Line, err)
		}
		c.Value = nil
		if len(n.Content) == 2 {
			if err := n.Content[1].Decode(&c.Value); err != nil {
				return fmt.Errorf("line %d: component %s value: %w", n.Line, c.Nid, err)
			}
		}
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("line %d: component mapping must have exactly one key", n.Line)
		}
		c.Nid = n.Content[0].Value
		c.Value = nil
		if err := n.Content[1].Decode(&c.Value); err != nil {
			return fmt.Errorf("line %d: component %s value: %w", n.Line, c.Nid, err)
		}
		return nil
	}
	return fmt.Errorf("line %d: unexpected component node", n.Line)
}

// Prefab is the authored template of a skill or item.
type Prefab struct {
	Nid        string          `yaml:"nid"`
	Name       string          `yaml:"name"`
	Desc       string          `yaml:"desc"`
	Components []ComponentSpec `yaml:"components"`
	// Subitems are item nids built as children of this item.
	Subitems []string `yaml:"subitems"`
}

// DisplayName returns Name, falling back to Nid.
func (p Prefab) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Nid
}

type document struct {
	Skills []Prefab `yaml:"skills"`
	Items  []Prefab `yaml:"items"`
}
