// Package itemcomp holds the component kinds that can be attached to items.
package itemcomp

import (
	"log/slog"

	"github.com/udisondev/tactica/internal/component"
)

// Kinds returns every item component kind, in registration order.
func Kinds() []component.Behavior {
	return []component.Behavior{
		Weapon{},
		Spell{},
		MinimumRange{},
		MaximumRange{},
		Damage{},
		Heal{},
		Hit{},
		Crit{},
		StatusOnHit{},
		Uses{},
		Effective{},
		EffectiveTag{},
		TargetEnemy{},
		TargetAlly{},
		AIPriority{},
	}
}

// Register adds every item kind to r and returns how many were accepted.
func Register(r *component.Registry) int {
	n := 0
	for _, k := range Kinds() {
		if r.Register(k) {
			n++
		}
	}
	slog.Debug("item components registered", "count", n)
	return n
}
