package component

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tag groups component kinds for the editor.
type Tag string

const (
	TagBase     Tag = "base"
	TagCombat   Tag = "combat"
	TagTime     Tag = "time"
	TagFormula  Tag = "formula"
	TagAdvanced Tag = "advanced"
	TagStatus   Tag = "status"
	TagAura     Tag = "aura"
	TagWeapon   Tag = "weapon"
	TagTarget   Tag = "target"
	TagUses     Tag = "uses"
	TagExtra    Tag = "extra"
	TagAI       Tag = "ai"
	TagUnknown  Tag = "unknown"
)

// Meta is the static description of a component kind.
type Meta struct {
	Nid  string
	Name string // derived from Nid when empty
	Desc string
	Tag  Tag

	Expose Expose
	Value  any // default value, cloned into every new instance

	// PairedWith lists component nids that must be attached to the same entity.
	PairedWith []string

	// IgnoreConditional lets the kind's hooks run while its entity is inactive.
	IgnoreConditional bool
}

// Behavior is implemented by every component kind. Hooks are optional methods
// matched against the checklist in hooks.go when the kind is registered.
type Behavior interface {
	Meta() Meta
}

// Stateful kinds own typed per-instance state. NewState must return a pointer
// to a JSON-serializable struct.
type Stateful interface {
	NewState() any
}

// Kind is a registered, immutable component prototype.
type Kind struct {
	meta     Meta
	behavior Behavior
	stateful Stateful
	hooks    map[Hook]HookFunc
	names    []Hook
	unknown  bool
}

func newKind(b Behavior) *Kind {
	meta := b.Meta()
	if meta.Name == "" {
		meta.Name = displayName(meta.Nid)
	}
	meta.PairedWith = append([]string(nil), meta.PairedWith...)

	k := &Kind{
		meta:     meta,
		behavior: b,
		hooks:    bindHooks(b),
	}
	if s, ok := b.(Stateful); ok {
		k.stateful = s
	}
	for h := range k.hooks {
		k.names = append(k.names, h)
	}
	sortHooks(k.names)
	return k
}

// unknownKind is the sentinel used for nids missing from the registry. It
// implements no hooks.
func unknownKind(nid string) *Kind {
	return &Kind{
		meta: Meta{
			Nid:  nid,
			Name: displayName(nid),
			Desc: "Unknown component",
			Tag:  TagUnknown,
		},
		hooks:   map[Hook]HookFunc{},
		unknown: true,
	}
}

func displayName(nid string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(nid, "_", " "))
}

func (k *Kind) Nid() string             { return k.meta.Nid }
func (k *Kind) Name() string            { return k.meta.Name }
func (k *Kind) Desc() string            { return k.meta.Desc }
func (k *Kind) Tag() Tag                { return k.meta.Tag }
func (k *Kind) Expose() Expose          { return k.meta.Expose }
func (k *Kind) IgnoreConditional() bool { return k.meta.IgnoreConditional }

// Unknown reports whether k is the sentinel for an unregistered nid.
func (k *Kind) Unknown() bool { return k.unknown }

// Default returns a fresh copy of the declared default value.
func (k *Kind) Default() any { return Clone(k.meta.Value) }

// PairedWith returns the nids this kind must be attached alongside.
func (k *Kind) PairedWith() []string {
	return append([]string(nil), k.meta.PairedWith...)
}

// Hooks returns the implemented hook names in sorted order.
func (k *Kind) Hooks() []Hook {
	return append([]Hook(nil), k.names...)
}

// Implements is the capability check the dispatcher relies on.
func (k *Kind) Implements(h Hook) bool {
	_, ok := k.hooks[h]
	return ok
}

func (k *Kind) newState() any {
	if k.stateful == nil {
		return nil
	}
	return k.stateful.NewState()
}
