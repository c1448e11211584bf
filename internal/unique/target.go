package unique

// ModifierType describes whether, and how, a Target may appear inside <...>.
type ModifierType int

const (
	// ModifierNone targets only carry leading uniques.
	ModifierNone ModifierType = iota
	// ModifierConditional targets are filters evaluated against a State.
	ModifierConditional
	// ModifierOther targets are modifiers that never filter: trigger
	// conditions, unit action modifiers and meta modifiers.
	ModifierOther
)

// Target names the kind of ruleset object, or modifier slot, a unique may be
// attached to. Targets are fixed at package init; fields are read through
// accessors only.
type Target struct {
	name         string
	doc          string
	inheritsFrom *Target
	modifierType ModifierType
}

// Name is the target's display name.
func (t *Target) Name() string { return t.name }

// Doc is a one-line description, possibly empty.
func (t *Target) Doc() string { return t.doc }

// InheritsFrom returns the parent target, or nil at the root of a chain.
func (t *Target) InheritsFrom() *Target { return t.inheritsFrom }

// ModifierType reports how t may appear inside <...>.
func (t *Target) ModifierType() ModifierType { return t.modifierType }

// CanAccept reports whether a unique declared for other may be attached to t.
//
// Postcondition: Returns true when other is t or one of t's ancestors.
func (t *Target) CanAccept(other *Target) bool {
	if other == nil {
		return false
	}
	for cur := t; cur != nil; cur = cur.inheritsFrom {
		if cur == other {
			return true
		}
	}
	return false
}

// IsModifier reports whether t only appears inside <...>.
func (t *Target) IsModifier() bool { return t != nil && t.modifierType != ModifierNone }

func (t *Target) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

var (
	TargetTriggerable     = &Target{name: "Triggerable", doc: "Uniques that have immediate, one-time effects"}
	TargetUnitTriggerable = &Target{name: "UnitTriggerable", doc: "Uniques that have immediate, one-time effects on a unit", inheritsFrom: TargetTriggerable}
	TargetGlobal          = &Target{name: "Global", doc: "Uniques that apply to a civilization", inheritsFrom: TargetTriggerable}

	TargetNation         = &Target{name: "Nation", inheritsFrom: TargetGlobal}
	TargetEra            = &Target{name: "Era", inheritsFrom: TargetGlobal}
	TargetTech           = &Target{name: "Tech", inheritsFrom: TargetGlobal}
	TargetPolicy         = &Target{name: "Policy", inheritsFrom: TargetGlobal}
	TargetFounderBelief  = &Target{name: "FounderBelief", doc: "Uniques for Founder and Enhancer type Beliefs", inheritsFrom: TargetGlobal}
	TargetFollowerBelief = &Target{name: "FollowerBelief", doc: "Uniques for Pantheon and Follower type beliefs"}
	TargetBuilding       = &Target{name: "Building", inheritsFrom: TargetGlobal}
	TargetWonder         = &Target{name: "Wonder", inheritsFrom: TargetBuilding}

	TargetUnitAction = &Target{name: "UnitAction", doc: "Uniques that describe an action a unit can take", inheritsFrom: TargetUnitTriggerable}
	TargetUnit       = &Target{name: "Unit", doc: "Uniques that apply to a single unit", inheritsFrom: TargetUnitAction}
	TargetUnitType   = &Target{name: "UnitType", inheritsFrom: TargetUnit}
	TargetPromotion  = &Target{name: "Promotion", inheritsFrom: TargetUnit}

	TargetTerrain     = &Target{name: "Terrain"}
	TargetImprovement = &Target{name: "Improvement"}
	TargetResource    = &Target{name: "Resource", inheritsFrom: TargetGlobal}
	TargetRuins       = &Target{name: "Ruins", inheritsFrom: TargetUnitTriggerable}

	TargetSpeed       = &Target{name: "Speed"}
	TargetDifficulty  = &Target{name: "Difficulty"}
	TargetCityState   = &Target{name: "CityState", inheritsFrom: TargetGlobal}
	TargetModOptions  = &Target{name: "ModOptions"}
	TargetEvent       = &Target{name: "Event"}
	TargetEventChoice = &Target{name: "EventChoice"}

	TargetConditional          = &Target{name: "Conditional", doc: "Modifiers that can be added to other uniques to limit when they will be active", modifierType: ModifierConditional}
	TargetTriggerCondition     = &Target{name: "TriggerCondition", doc: "Special conditionals that can be added to Triggerable uniques, to make them activate upon specific actions", inheritsFrom: TargetGlobal, modifierType: ModifierOther}
	TargetUnitTriggerCondition = &Target{name: "UnitTriggerCondition", doc: "Special conditionals that can be added to UnitTriggerable uniques", inheritsFrom: TargetTriggerCondition, modifierType: ModifierOther}
	TargetUnitActionModifier   = &Target{name: "UnitActionModifier", doc: "Modifiers that can be added to UnitAction uniques as conditionals", modifierType: ModifierOther}
	TargetMetaModifier         = &Target{name: "MetaModifier", doc: "Modifiers that can be added to other uniques changing user experience, not their behavior", modifierType: ModifierOther}
)

var allTargets = []*Target{
	TargetTriggerable, TargetUnitTriggerable, TargetGlobal,
	TargetNation, TargetEra, TargetTech, TargetPolicy, TargetFounderBelief, TargetFollowerBelief,
	TargetBuilding, TargetWonder,
	TargetUnitAction, TargetUnit, TargetUnitType, TargetPromotion,
	TargetTerrain, TargetImprovement, TargetResource, TargetRuins,
	TargetSpeed, TargetDifficulty, TargetCityState, TargetModOptions, TargetEvent, TargetEventChoice,
	TargetConditional, TargetTriggerCondition, TargetUnitTriggerCondition, TargetUnitActionModifier, TargetMetaModifier,
}

// AllTargets returns every target in declaration order.
//
// Postcondition: The returned slice is a fresh copy.
func AllTargets() []*Target {
	out := make([]*Target, len(allTargets))
	copy(out, allTargets)
	return out
}

// TargetByName looks up a target by its name.
func TargetByName(name string) (*Target, bool) {
	for _, t := range allTargets {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}
