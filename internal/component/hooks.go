package component

import (
	"sort"
	"strings"
)

// Hook names an extension point a component kind may implement.
type Hook string

const (
	unconditionalSuffix = "_unconditional"
	overrideSuffix      = "_override"
)

// Lifecycle and gating.
const (
	Init      Hook = "init"
	OnRemove  Hook = "on_remove"
	Condition Hook = "condition"
)

// Combat and phase events.
const (
	OnHit                    Hook = "on_hit"
	OnCrit                   Hook = "on_crit"
	OnMiss                   Hook = "on_miss"
	StartCombat              Hook = "start_combat"
	StartCombatUnconditional Hook = "start_combat_unconditional"
	EndCombat                Hook = "end_combat"
	EndCombatUnconditional   Hook = "end_combat_unconditional"
	OnUpkeep                 Hook = "on_upkeep"
	OnUpkeepUnconditional    Hook = "on_upkeep_unconditional"
	OnEndstep                Hook = "on_endstep"
	OnEndstepUnconditional   Hook = "on_endstep_unconditional"
	OnEquipItem              Hook = "on_equip_item"
	OnUnequipItem            Hook = "on_unequip_item"
)

// Formula selection. Each formula has a privileged _override variant.
const (
	DamageFormula               Hook = "damage_formula"
	DamageFormulaOverride       Hook = "damage_formula_override"
	ResistFormula               Hook = "resist_formula"
	ResistFormulaOverride       Hook = "resist_formula_override"
	AccuracyFormula             Hook = "accuracy_formula"
	AccuracyFormulaOverride     Hook = "accuracy_formula_override"
	AvoidFormula                Hook = "avoid_formula"
	AvoidFormulaOverride        Hook = "avoid_formula_override"
	CritAccuracyFormula         Hook = "crit_accuracy_formula"
	CritAccuracyFormulaOverride Hook = "crit_accuracy_formula_override"
	AttackSpeedFormula          Hook = "attack_speed_formula"
	AttackSpeedFormulaOverride  Hook = "attack_speed_formula_override"
)

// Numeric modifiers, folded by the caller.
const (
	ModifyDamage       Hook = "modify_damage"
	ModifyResist       Hook = "modify_resist"
	ModifyAccuracy     Hook = "modify_accuracy"
	ModifyAvoid        Hook = "modify_avoid"
	ModifyCritAccuracy Hook = "modify_crit_accuracy"
	ModifyAttackSpeed  Hook = "modify_attack_speed"
	DynamicDamage      Hook = "dynamic_damage"
	EmpowerHeal        Hook = "empower_heal"
	DamageMultiplier   Hook = "damage_multiplier"
	ExpMultiplier      Hook = "exp_multiplier"
)

// Queries.
const (
	Available      Hook = "available"
	TargetRestrict Hook = "target_restrict"
	NoDouble       Hook = "no_double"
	Vantage        Hook = "vantage"
	IsWeapon       Hook = "is_weapon"
	IsSpell        Hook = "is_spell"
	Damage         Hook = "damage"
	Hit            Hook = "hit"
	Crit           Hook = "crit"
	Heal           Hook = "heal"
	MinimumRange   Hook = "minimum_range"
	MaximumRange   Hook = "maximum_range"
	SightRange     Hook = "sight_range"
	StatChange     Hook = "stat_change"
	Tags           Hook = "tags"
	Text           Hook = "text"
	AIPriority     Hook = "ai_priority"
	AITargets      Hook = "ai_targets"
)

// Unconditional returns the cleanup variant of h.
func (h Hook) Unconditional() Hook {
	if h.IsUnconditional() {
		return h
	}
	return h + unconditionalSuffix
}

// IsUnconditional reports whether h is a cleanup variant.
func (h Hook) IsUnconditional() bool { return strings.HasSuffix(string(h), unconditionalSuffix) }

// Override returns the privileged variant of h.
func (h Hook) Override() Hook {
	if h.IsOverride() {
		return h
	}
	return h + overrideSuffix
}

// IsOverride reports whether h is a privileged override variant.
func (h Hook) IsOverride() bool { return strings.HasSuffix(string(h), overrideSuffix) }

// Base strips the override suffix.
func (h Hook) Base() Hook { return Hook(strings.TrimSuffix(string(h), overrideSuffix)) }

// HookFunc is a hook entry point bound to its kind's behavior.
type HookFunc func(c *Instance, a *Args) any

// Hook interfaces. A behavior implements a hook by having the matching method.
type (
	InitHook      interface{ Init(c *Instance, a *Args) }
	OnRemoveHook  interface{ OnRemove(c *Instance, a *Args) }
	ConditionHook interface {
		Condition(c *Instance, a *Args) bool
	}

	OnHitHook                    interface{ OnHit(c *Instance, a *Args) }
	OnCritHook                   interface{ OnCrit(c *Instance, a *Args) }
	OnMissHook                   interface{ OnMiss(c *Instance, a *Args) }
	StartCombatHook              interface{ StartCombat(c *Instance, a *Args) }
	StartCombatUnconditionalHook interface {
		StartCombatUnconditional(c *Instance, a *Args)
	}
	EndCombatHook              interface{ EndCombat(c *Instance, a *Args) }
	EndCombatUnconditionalHook interface {
		EndCombatUnconditional(c *Instance, a *Args)
	}
	OnUpkeepHook              interface{ OnUpkeep(c *Instance, a *Args) }
	OnUpkeepUnconditionalHook interface {
		OnUpkeepUnconditional(c *Instance, a *Args)
	}
	OnEndstepHook              interface{ OnEndstep(c *Instance, a *Args) }
	OnEndstepUnconditionalHook interface {
		OnEndstepUnconditional(c *Instance, a *Args)
	}
	OnEquipItemHook   interface{ OnEquipItem(c *Instance, a *Args) }
	OnUnequipItemHook interface{ OnUnequipItem(c *Instance, a *Args) }

	DamageFormulaHook interface {
		DamageFormula(c *Instance, a *Args) string
	}
	DamageFormulaOverrideHook interface {
		DamageFormulaOverride(c *Instance, a *Args) string
	}
	ResistFormulaHook interface {
		ResistFormula(c *Instance, a *Args) string
	}
	ResistFormulaOverrideHook interface {
		ResistFormulaOverride(c *Instance, a *Args) string
	}
	AccuracyFormulaHook interface {
		AccuracyFormula(c *Instance, a *Args) string
	}
	AccuracyFormulaOverrideHook interface {
		AccuracyFormulaOverride(c *Instance, a *Args) string
	}
	AvoidFormulaHook interface {
		AvoidFormula(c *Instance, a *Args) string
	}
	AvoidFormulaOverrideHook interface {
		AvoidFormulaOverride(c *Instance, a *Args) string
	}
	CritAccuracyFormulaHook interface {
		CritAccuracyFormula(c *Instance, a *Args) string
	}
	CritAccuracyFormulaOverrideHook interface {
		CritAccuracyFormulaOverride(c *Instance, a *Args) string
	}
	AttackSpeedFormulaHook interface {
		AttackSpeedFormula(c *Instance, a *Args) string
	}
	AttackSpeedFormulaOverrideHook interface {
		AttackSpeedFormulaOverride(c *Instance, a *Args) string
	}

	ModifyDamageHook interface {
		ModifyDamage(c *Instance, a *Args) int
	}
	ModifyResistHook interface {
		ModifyResist(c *Instance, a *Args) int
	}
	ModifyAccuracyHook interface {
		ModifyAccuracy(c *Instance, a *Args) int
	}
	ModifyAvoidHook interface {
		ModifyAvoid(c *Instance, a *Args) int
	}
	ModifyCritAccuracyHook interface {
		ModifyCritAccuracy(c *Instance, a *Args) int
	}
	ModifyAttackSpeedHook interface {
		ModifyAttackSpeed(c *Instance, a *Args) int
	}
	DynamicDamageHook interface {
		DynamicDamage(c *Instance, a *Args) int
	}
	EmpowerHealHook interface {
		EmpowerHeal(c *Instance, a *Args) int
	}
	DamageMultiplierHook interface {
		DamageMultiplier(c *Instance, a *Args) float64
	}
	ExpMultiplierHook interface {
		ExpMultiplier(c *Instance, a *Args) float64
	}

	AvailableHook interface {
		Available(c *Instance, a *Args) bool
	}
	TargetRestrictHook interface {
		TargetRestrict(c *Instance, a *Args) bool
	}
	NoDoubleHook interface {
		NoDouble(c *Instance, a *Args) bool
	}
	VantageHook interface {
		Vantage(c *Instance, a *Args) bool
	}
	IsWeaponHook interface {
		IsWeapon(c *Instance, a *Args) bool
	}
	IsSpellHook interface {
		IsSpell(c *Instance, a *Args) bool
	}
	DamageHook interface {
		Damage(c *Instance, a *Args) int
	}
	HitHook interface {
		Hit(c *Instance, a *Args) int
	}
	CritHook interface {
		Crit(c *Instance, a *Args) int
	}
	HealHook interface {
		Heal(c *Instance, a *Args) int
	}
	MinimumRangeHook interface {
		MinimumRange(c *Instance, a *Args) int
	}
	MaximumRangeHook interface {
		MaximumRange(c *Instance, a *Args) int
	}
	SightRangeHook interface {
		SightRange(c *Instance, a *Args) int
	}
	StatChangeHook interface {
		StatChange(c *Instance, a *Args) []Pair
	}
	TagsHook interface {
		Tags(c *Instance, a *Args) []string
	}
	TextHook interface {
		Text(c *Instance, a *Args) string
	}
	AIPriorityHook interface {
		AIPriority(c *Instance, a *Args) float64
	}
	AITargetsHook interface {
		AITargets(c *Instance, a *Args) []Unit
	}
)

type binder func(b Behavior) HookFunc

type hookSpec struct {
	bind binder
	// neutral is the FirstTruthy / Override answer when no component answers.
	neutral any
	// ungated hooks run even when their entity is suppressed or inactive.
	ungated bool
	// cascade hooks also reach the entity's children.
	cascade bool
}

func event[H any](call func(H, *Instance, *Args)) binder {
	return func(b Behavior) HookFunc {
		h, ok := b.(H)
		if !ok {
			return nil
		}
		return func(c *Instance, a *Args) any {
			call(h, c, a)
			return nil
		}
	}
}

func query[H any, R any](call func(H, *Instance, *Args) R) binder {
	return func(b Behavior) HookFunc {
		h, ok := b.(H)
		if !ok {
			return nil
		}
		return func(c *Instance, a *Args) any {
			return call(h, c, a)
		}
	}
}

// hookTable is the capability checklist: every hook the engine knows, how to
// bind it on a behavior, and how dispatch treats it.
var hookTable = map[Hook]hookSpec{
	Init: {bind: event(func(h InitHook, c *Instance, a *Args) { h.Init(c, a) }), ungated: true},
	OnRemove: {
		bind:    event(func(h OnRemoveHook, c *Instance, a *Args) { h.OnRemove(c, a) }),
		ungated: true, cascade: true,
	},
	Condition: {
		bind:    query(func(h ConditionHook, c *Instance, a *Args) bool { return h.Condition(c, a) }),
		neutral: true, ungated: true,
	},

	OnHit:  {bind: event(func(h OnHitHook, c *Instance, a *Args) { h.OnHit(c, a) })},
	OnCrit: {bind: event(func(h OnCritHook, c *Instance, a *Args) { h.OnCrit(c, a) })},
	OnMiss: {bind: event(func(h OnMissHook, c *Instance, a *Args) { h.OnMiss(c, a) })},
	StartCombat: {
		bind: event(func(h StartCombatHook, c *Instance, a *Args) { h.StartCombat(c, a) }),
	},
	StartCombatUnconditional: {
		bind: event(func(h StartCombatUnconditionalHook, c *Instance, a *Args) {
			h.StartCombatUnconditional(c, a)
		}),
		ungated: true,
	},
	EndCombat: {bind: event(func(h EndCombatHook, c *Instance, a *Args) { h.EndCombat(c, a) })},
	EndCombatUnconditional: {
		bind: event(func(h EndCombatUnconditionalHook, c *Instance, a *Args) {
			h.EndCombatUnconditional(c, a)
		}),
		ungated: true,
	},
	OnUpkeep: {
		bind:    event(func(h OnUpkeepHook, c *Instance, a *Args) { h.OnUpkeep(c, a) }),
		cascade: true,
	},
	OnUpkeepUnconditional: {
		bind: event(func(h OnUpkeepUnconditionalHook, c *Instance, a *Args) {
			h.OnUpkeepUnconditional(c, a)
		}),
		ungated: true, cascade: true,
	},
	OnEndstep: {
		bind:    event(func(h OnEndstepHook, c *Instance, a *Args) { h.OnEndstep(c, a) }),
		cascade: true,
	},
	OnEndstepUnconditional: {
		bind: event(func(h OnEndstepUnconditionalHook, c *Instance, a *Args) {
			h.OnEndstepUnconditional(c, a)
		}),
		ungated: true, cascade: true,
	},
	OnEquipItem:   {bind: event(func(h OnEquipItemHook, c *Instance, a *Args) { h.OnEquipItem(c, a) })},
	OnUnequipItem: {bind: event(func(h OnUnequipItemHook, c *Instance, a *Args) { h.OnUnequipItem(c, a) })},

	DamageFormula: {
		bind:    query(func(h DamageFormulaHook, c *Instance, a *Args) string { return h.DamageFormula(c, a) }),
		neutral: "DAMAGE",
	},
	DamageFormulaOverride: {
		bind: query(func(h DamageFormulaOverrideHook, c *Instance, a *Args) string {
			return h.DamageFormulaOverride(c, a)
		}),
	},
	ResistFormula: {
		bind:    query(func(h ResistFormulaHook, c *Instance, a *Args) string { return h.ResistFormula(c, a) }),
		neutral: "DEFENSE",
	},
	ResistFormulaOverride: {
		bind: query(func(h ResistFormulaOverrideHook, c *Instance, a *Args) string {
			return h.ResistFormulaOverride(c, a)
		}),
	},
	AccuracyFormula: {
		bind:    query(func(h AccuracyFormulaHook, c *Instance, a *Args) string { return h.AccuracyFormula(c, a) }),
		neutral: "HIT",
	},
	AccuracyFormulaOverride: {
		bind: query(func(h AccuracyFormulaOverrideHook, c *Instance, a *Args) string {
			return h.AccuracyFormulaOverride(c, a)
		}),
	},
	AvoidFormula: {
		bind:    query(func(h AvoidFormulaHook, c *Instance, a *Args) string { return h.AvoidFormula(c, a) }),
		neutral: "AVOID",
	},
	AvoidFormulaOverride: {
		bind: query(func(h AvoidFormulaOverrideHook, c *Instance, a *Args) string {
			return h.AvoidFormulaOverride(c, a)
		}),
	},
	CritAccuracyFormula: {
		bind: query(func(h CritAccuracyFormulaHook, c *Instance, a *Args) string {
			return h.CritAccuracyFormula(c, a)
		}),
		neutral: "CRIT_HIT",
	},
	CritAccuracyFormulaOverride: {
		bind: query(func(h CritAccuracyFormulaOverrideHook, c *Instance, a *Args) string {
			return h.CritAccuracyFormulaOverride(c, a)
		}),
	},
	AttackSpeedFormula: {
		bind: query(func(h AttackSpeedFormulaHook, c *Instance, a *Args) string {
			return h.AttackSpeedFormula(c, a)
		}),
		neutral: "ATTACK_SPEED",
	},
	AttackSpeedFormulaOverride: {
		bind: query(func(h AttackSpeedFormulaOverrideHook, c *Instance, a *Args) string {
			return h.AttackSpeedFormulaOverride(c, a)
		}),
	},

	ModifyDamage:   {bind: query(func(h ModifyDamageHook, c *Instance, a *Args) int { return h.ModifyDamage(c, a) }), neutral: 0},
	ModifyResist:   {bind: query(func(h ModifyResistHook, c *Instance, a *Args) int { return h.ModifyResist(c, a) }), neutral: 0},
	ModifyAccuracy: {bind: query(func(h ModifyAccuracyHook, c *Instance, a *Args) int { return h.ModifyAccuracy(c, a) }), neutral: 0},
	ModifyAvoid:    {bind: query(func(h ModifyAvoidHook, c *Instance, a *Args) int { return h.ModifyAvoid(c, a) }), neutral: 0},
	ModifyCritAccuracy: {
		bind:    query(func(h ModifyCritAccuracyHook, c *Instance, a *Args) int { return h.ModifyCritAccuracy(c, a) }),
		neutral: 0,
	},
	ModifyAttackSpeed: {
		bind:    query(func(h ModifyAttackSpeedHook, c *Instance, a *Args) int { return h.ModifyAttackSpeed(c, a) }),
		neutral: 0,
	},
	DynamicDamage: {bind: query(func(h DynamicDamageHook, c *Instance, a *Args) int { return h.DynamicDamage(c, a) }), neutral: 0},
	EmpowerHeal:   {bind: query(func(h EmpowerHealHook, c *Instance, a *Args) int { return h.EmpowerHeal(c, a) }), neutral: 0},
	DamageMultiplier: {
		bind:    query(func(h DamageMultiplierHook, c *Instance, a *Args) float64 { return h.DamageMultiplier(c, a) }),
		neutral: 1.0,
	},
	ExpMultiplier: {
		bind:    query(func(h ExpMultiplierHook, c *Instance, a *Args) float64 { return h.ExpMultiplier(c, a) }),
		neutral: 1.0,
	},

	Available:      {bind: query(func(h AvailableHook, c *Instance, a *Args) bool { return h.Available(c, a) }), neutral: true},
	TargetRestrict: {bind: query(func(h TargetRestrictHook, c *Instance, a *Args) bool { return h.TargetRestrict(c, a) }), neutral: true},
	NoDouble:       {bind: query(func(h NoDoubleHook, c *Instance, a *Args) bool { return h.NoDouble(c, a) }), neutral: false},
	Vantage:        {bind: query(func(h VantageHook, c *Instance, a *Args) bool { return h.Vantage(c, a) }), neutral: false},
	IsWeapon:       {bind: query(func(h IsWeaponHook, c *Instance, a *Args) bool { return h.IsWeapon(c, a) }), neutral: false},
	IsSpell:        {bind: query(func(h IsSpellHook, c *Instance, a *Args) bool { return h.IsSpell(c, a) }), neutral: false},
	Damage:         {bind: query(func(h DamageHook, c *Instance, a *Args) int { return h.Damage(c, a) })},
	Hit:            {bind: query(func(h HitHook, c *Instance, a *Args) int { return h.Hit(c, a) })},
	Crit:           {bind: query(func(h CritHook, c *Instance, a *Args) int { return h.Crit(c, a) })},
	Heal:           {bind: query(func(h HealHook, c *Instance, a *Args) int { return h.Heal(c, a) })},
	MinimumRange:   {bind: query(func(h MinimumRangeHook, c *Instance, a *Args) int { return h.MinimumRange(c, a) }), neutral: 0},
	MaximumRange:   {bind: query(func(h MaximumRangeHook, c *Instance, a *Args) int { return h.MaximumRange(c, a) }), neutral: 0},
	SightRange:     {bind: query(func(h SightRangeHook, c *Instance, a *Args) int { return h.SightRange(c, a) }), neutral: 0},
	StatChange:     {bind: query(func(h StatChangeHook, c *Instance, a *Args) []Pair { return h.StatChange(c, a) })},
	Tags:           {bind: query(func(h TagsHook, c *Instance, a *Args) []string { return h.Tags(c, a) })},
	Text:           {bind: query(func(h TextHook, c *Instance, a *Args) string { return h.Text(c, a) }), neutral: ""},
	AIPriority:     {bind: query(func(h AIPriorityHook, c *Instance, a *Args) float64 { return h.AIPriority(c, a) }), neutral: 0.0},
	AITargets: {
		bind:    query(func(h AITargetsHook, c *Instance, a *Args) []Unit { return h.AITargets(c, a) }),
		cascade: true,
	},
}

// bindHooks probes b once against the checklist.
func bindHooks(b Behavior) map[Hook]HookFunc {
	hooks := make(map[Hook]HookFunc)
	for name, spec := range hookTable {
		if fn := spec.bind(b); fn != nil {
			hooks[name] = fn
		}
	}
	return hooks
}

// KnownHooks returns every hook name the engine can dispatch, sorted.
func KnownHooks() []Hook {
	out := make([]Hook, 0, len(hookTable))
	for h := range hookTable {
		out = append(out, h)
	}
	sortHooks(out)
	return out
}

// Neutral returns the answer FirstTruthy and Override give for h when no
// component answers.
func Neutral(h Hook) any {
	return hookTable[h].neutral
}

func sortHooks(hs []Hook) {
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
}
