package component

import (
	"fmt"
	"log/slog"
	"strings"
)

// WarningKind classifies a configuration warning.
type WarningKind uint8

const (
	WarnUnknownComponent WarningKind = iota + 1
	WarnMissingPartner
	WarnShadowedOverride
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnknownComponent:
		return "unknown_component"
	case WarnMissingPartner:
		return "missing_partner"
	case WarnShadowedOverride:
		return "shadowed_override"
	}
	return "unknown"
}

// Warning is a non-fatal content problem found by Validate.
type Warning struct {
	Kind      WarningKind
	Entity    string
	Component string
	Hook      Hook

	// Missing lists absent partners for WarnMissingPartner.
	Missing []string
	// Shadowed lists the override components that never answer because a
	// later one wins, in attachment order.
	Shadowed []string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnUnknownComponent:
		return fmt.Sprintf("%s: unknown component %q", w.Entity, w.Component)
	case WarnMissingPartner:
		return fmt.Sprintf("%s: component %q is missing partners %s",
			w.Entity, w.Component, strings.Join(w.Missing, ", "))
	case WarnShadowedOverride:
		return fmt.Sprintf("%s: %s from %q shadows %s",
			w.Entity, w.Hook, w.Component, strings.Join(w.Shadowed, ", "))
	}
	return w.Entity + ": " + w.Kind.String()
}

// Validate checks e and its children for unknown components, missing
// pairing partners and shadowed overrides. Every warning is logged once.
func (g *Engine) Validate(e *Entity) []Warning {
	warnings := validateEntity(e)
	warnings = append(warnings, shadowedOverrides(e.Nid, []*Entity{e})...)
	logWarnings(warnings)
	return warnings
}

// ValidateAll validates each entity and additionally reports overrides
// shadowed across the whole set, as happens when a unit's skills are
// dispatched together.
func (g *Engine) ValidateAll(label string, ents []*Entity) []Warning {
	var warnings []Warning
	for _, e := range ents {
		warnings = append(warnings, validateEntity(e)...)
	}
	warnings = append(warnings, shadowedOverrides(label, ents)...)
	logWarnings(warnings)
	return warnings
}

func validateEntity(e *Entity) []Warning {
	var warnings []Warning
	counts := make(map[string]int, len(e.components))
	for _, c := range e.components {
		counts[c.Nid()]++
	}

	for _, c := range e.components {
		if c.kind.Unknown() {
			warnings = append(warnings, Warning{
				Kind:      WarnUnknownComponent,
				Entity:    e.Nid,
				Component: c.Nid(),
			})
			continue
		}
		var missing []string
		for _, partner := range c.kind.meta.PairedWith {
			need := 1
			if partner == c.Nid() {
				need = 2
			}
			if counts[partner] < need {
				missing = append(missing, partner)
			}
		}
		if len(missing) > 0 {
			warnings = append(warnings, Warning{
				Kind:      WarnMissingPartner,
				Entity:    e.Nid,
				Component: c.Nid(),
				Missing:   missing,
			})
		}
	}

	for _, child := range e.children {
		warnings = append(warnings, validateEntity(child)...)
	}
	return warnings
}

// shadowedOverrides reports, per override hook, every implementer except the
// last attached one.
func shadowedOverrides(label string, ents []*Entity) []Warning {
	var warnings []Warning
	for _, h := range KnownHooks() {
		if !h.IsOverride() {
			continue
		}
		var implementers []string
		for _, e := range ents {
			for _, c := range e.components {
				if c.kind.Implements(h) {
					implementers = append(implementers, c.Nid())
				}
			}
		}
		if len(implementers) < 2 {
			continue
		}
		last := len(implementers) - 1
		warnings = append(warnings, Warning{
			Kind:      WarnShadowedOverride,
			Entity:    label,
			Component: implementers[last],
			Hook:      h,
			Shadowed:  implementers[:last],
		})
	}
	return warnings
}

func logWarnings(warnings []Warning) {
	for _, w := range warnings {
		slog.Warn("component configuration", "kind", w.Kind, "detail", w.String())
	}
}
