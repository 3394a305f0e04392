package itemcomp

import "github.com/udisondev/tactica/internal/component"

// Weapon marks an item that can double, counter and be equipped.
type Weapon struct{}

func (Weapon) Meta() component.Meta {
	return component.Meta{
		Nid:  "weapon",
		Desc: "Item will be treated as a normal weapon (can double, counterattack, be equipped)",
		Tag:  component.TagBase,
	}
}

func (Weapon) IsWeapon(c *component.Instance, a *component.Args) bool { return true }

// Spell marks an item that can neither double nor counter.
type Spell struct{}

func (Spell) Meta() component.Meta {
	return component.Meta{
		Nid:  "spell",
		Desc: "Item will be treated as a spell (cannot counterattack or double)",
		Tag:  component.TagBase,
	}
}

func (Spell) IsSpell(c *component.Instance, a *component.Args) bool { return true }

type MinimumRange struct{}

func (MinimumRange) Meta() component.Meta {
	return component.Meta{
		Nid:    "min_range",
		Desc:   "Set the minimum range of the item",
		Tag:    component.TagTarget,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  0,
	}
}

func (MinimumRange) MinimumRange(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}

type MaximumRange struct{}

func (MaximumRange) Meta() component.Meta {
	return component.Meta{
		Nid:    "max_range",
		Desc:   "Set the maximum range of the item",
		Tag:    component.TagTarget,
		Expose: component.Expose{Type: component.TypeInt},
		Value:  1,
	}
}

func (MaximumRange) MaximumRange(c *component.Instance, a *component.Args) int {
	return component.IntValue(c)
}
