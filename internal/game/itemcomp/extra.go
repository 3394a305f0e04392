package itemcomp

import (
	"slices"

	"github.com/udisondev/tactica/internal/component"
)

// Effective is the bonus damage EffectiveTag applies.
type Effective struct{}

func (Effective) Meta() component.Meta {
	return component.Meta{
		Nid:        "effective",
		Desc:       "Item does extra damage against certain units",
		Tag:        component.TagExtra,
		Expose:     component.Expose{Type: component.TypeInt},
		Value:      0,
		PairedWith: []string{"effective_tag"},
	}
}

// EffectiveTag adds the Effective bonus against targets with any listed tag.
type EffectiveTag struct{}

func (EffectiveTag) Meta() component.Meta {
	return component.Meta{
		Nid:        "effective_tag",
		Desc:       "Item does extra damage against units with these tags",
		Tag:        component.TagExtra,
		Expose:     component.Expose{Type: component.TypeList, Elem: component.TypeTag},
		Value:      []any{},
		PairedWith: []string{"effective"},
	}
}

func (EffectiveTag) DynamicDamage(c *component.Instance, a *component.Args) int {
	if a == nil || a.Target == nil {
		return 0
	}
	tags := a.Target.Tags()
	hit := slices.ContainsFunc(component.StringsValue(c), func(tag string) bool {
		return slices.Contains(tags, tag)
	})
	if !hit {
		return 0
	}
	owner := c.Owner()
	if owner == nil {
		return 0
	}
	raw, _ := owner.ComponentValue("effective")
	bonus, _ := component.AsInt(raw)
	return bonus
}
