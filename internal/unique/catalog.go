package unique

import (
	"fmt"
	"sort"
)

// Type is a catalog entry: one fixed unique template with positional slots.
// None marks text that resolved to no entry.
type Type int

const (
	None Type = iota

	// Yields.
	Stats
	StatsPerCity
	StatPercentBonus
	StatPercentBonusCities
	HappinessBonus
	Unhappy
	GrowthPercent
	ProductionPercentBuildings
	GreatPersonEarnedFaster

	// Combat.
	Strength
	StrengthVs
	BonusVs
	CityStrength
	CannotAttack
	HealAdjacentUnits

	// Movement.
	Movement
	Sight
	IgnoreTerrainCost
	CannotMove

	// Resources.
	ProvidesResources
	ConsumesResources
	StrategicResourcesIncrease

	// Units.
	UnitStartingExperience
	UnitMaintenance
	MaxNumberBuildable
	FoundCity

	// Availability and restrictions.
	OnlyAvailable
	Unbuildable
	Unsellable
	Uncapturable
	CannotBeBuiltWith
	MustBeOn
	CanOnlyBeBuiltOnTile
	HiddenFromCivilopedia
	Comment

	// Triggerables.
	FreeUnit
	OneTimeGainStat
	OneTimeUnitGainPromotion
	OneTimeFreeTech
	TriggerEvent

	// Conditionals.
	ConditionalChance
	ConditionalEveryTurns
	ConditionalBeforeTurns
	ConditionalAfterTurns
	ConditionalCivFilter
	ConditionalWar
	ConditionalNotWar
	ConditionalHappy
	ConditionalBetweenHappiness
	ConditionalAboveHappiness
	ConditionalBelowHappiness
	ConditionalGoldenAge
	ConditionalNotGoldenAge
	ConditionalBeforeEra
	ConditionalStartingFromEra
	ConditionalDuringEra
	ConditionalSpeed
	ConditionalDifficulty
	ConditionalVictoryEnabled
	ConditionalVictoryDisabled
	ConditionalReligionEnabled
	ConditionalReligionDisabled
	ConditionalTech
	ConditionalNoTech
	ConditionalAfterPolicyOrBelief
	ConditionalBeforePolicyOrBelief
	ConditionalWithResource
	ConditionalWithoutResource
	ConditionalWhenAboveAmountStatResource
	ConditionalWhenBelowAmountStatResource
	ConditionalWhenBetweenStatResource
	ConditionalBuildingBuilt
	ConditionalBuildingBuiltByAnybody
	ConditionalInThisCity
	ConditionalCityFilter
	ConditionalCityConnected
	ConditionalCityWithBuilding
	ConditionalCityWithoutBuilding
	ConditionalPopulationFilter
	ConditionalBelowPopulationFilter
	ConditionalWLTKD
	ConditionalVsCity
	ConditionalVsCombatant
	ConditionalVsUnits
	ConditionalVsLargerCiv
	ConditionalOurUnit
	ConditionalUnitWithPromotion
	ConditionalUnitWithoutPromotion
	ConditionalAttacking
	ConditionalDefending
	ConditionalAboveHP
	ConditionalBelowHP
	ConditionalInTiles
	ConditionalInTilesNot
	ConditionalAdjacentTo
	ConditionalNotAdjacentTo
	ConditionalFightingInTiles
	ConditionalNeighborTiles

	// Trigger conditions.
	TriggerUponResearch
	TriggerUponAdoptingPolicyOrBelief
	TriggerUponFoundingCity
	TriggerUponConstructingBuilding
	TriggerUponEnteringEra
	TriggerUponDefeatingUnit
	TriggerUponPromotion

	// Unit action modifiers.
	UnitActionConsumeUnit

	// Meta modifiers.
	ConditionalTimedUnique
	ModifierHiddenFromUsers
	ModifiedByGameSpeed
	ForEveryCountable
	ForEveryAmountCountable
	ForEveryAdjacentTile

	numTypes
)

// Flag marks catalog entries with special handling.
type Flag int

const (
	// FlagHiddenToUsers keeps the unique out of player facing text.
	FlagHiddenToUsers Flag = 1 << iota
	// FlagNoConditionals rejects any <...> modifier.
	FlagNoConditionals
	// FlagAcceptsSpeedModifier allows <adjusted by game speed>.
	FlagAcceptsSpeedModifier
)

type category int

const (
	catCombat category = 1 << iota
	catMovement
	catResource
	catCity
	catUnit
)

// DeprecationLevel says how loudly a deprecated entry is reported.
type DeprecationLevel int

const (
	DeprecationWarning DeprecationLevel = iota
	DeprecationError
)

func (l DeprecationLevel) String() string {
	if l == DeprecationError {
		return "Error"
	}
	return "Warning"
}

// Deprecation annotates a catalog entry that has a replacement.
type Deprecation struct {
	Message string
	// ReplaceWith holds one or more replacement templates. Their slots name
	// the deprecated template's slots; "+name"/"-name" request a sign.
	ReplaceWith []string
	Level       DeprecationLevel
}

type typeInfo struct {
	name        string
	text        string
	targets     []*Target
	flags       Flag
	cats        category
	deprecation *Deprecation

	skeleton string
	params   [][]ParamType
}

var (
	onGlobal       = []*Target{TargetGlobal}
	onGlobalUnit   = []*Target{TargetGlobal, TargetUnit}
	onUnit         = []*Target{TargetUnit}
	onConditional  = []*Target{TargetConditional}
	onTrigger      = []*Target{TargetTriggerCondition}
	onUnitTrigger  = []*Target{TargetUnitTriggerCondition}
	onMeta         = []*Target{TargetMetaModifier}
	onAvailability = []*Target{TargetBuilding, TargetUnit, TargetImprovement, TargetTech, TargetPolicy, TargetNation, TargetPromotion, TargetResource, TargetFounderBelief, TargetFollowerBelief}
	onEverything   = []*Target{TargetGlobal, TargetFollowerBelief, TargetUnitAction, TargetTerrain, TargetImprovement, TargetSpeed, TargetDifficulty, TargetModOptions, TargetEvent, TargetEventChoice}
)

var catalog = [numTypes]typeInfo{
	None: {name: "None"},

	Stats:                      {name: "Stats", text: "[stats]", targets: []*Target{TargetGlobal, TargetFollowerBelief, TargetImprovement, TargetTerrain}, cats: catCity},
	StatsPerCity:               {name: "StatsPerCity", text: "[stats] [cityFilter]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	StatPercentBonus:           {name: "StatPercentBonus", text: "[relativeAmount]% [stat]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	StatPercentBonusCities:     {name: "StatPercentBonusCities", text: "[relativeAmount]% [stat] [cityFilter]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	HappinessBonus:             {name: "HappinessBonus", text: "[amount] Happiness", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	Unhappy:                    {name: "Unhappy", text: "Unhappy", targets: onGlobal, cats: catCity, deprecation: &Deprecation{Message: "Use a negative Happiness unique instead", ReplaceWith: []string{"[-1] Happiness"}, Level: DeprecationError}},
	GrowthPercent:              {name: "GrowthPercent", text: "[relativeAmount]% growth [cityFilter]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	ProductionPercentBuildings: {name: "ProductionPercentBuildings", text: "[relativeAmount]% Production when constructing [buildingFilter] buildings [cityFilter]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catCity},
	GreatPersonEarnedFaster:    {name: "GreatPersonEarnedFaster", text: "[greatPerson] is earned [relativeAmount]% faster", targets: onGlobal},

	Strength:          {name: "Strength", text: "[relativeAmount]% Strength", targets: onGlobalUnit, cats: catCombat | catUnit},
	StrengthVs:        {name: "StrengthVs", text: "+[amount]% Strength vs [combatantFilter]", targets: onGlobalUnit, cats: catCombat | catUnit, deprecation: &Deprecation{Message: "Use the Strength unique with a vs conditional", ReplaceWith: []string{"[+amount]% Strength <vs [combatantFilter]>"}, Level: DeprecationWarning}},
	BonusVs:           {name: "BonusVs", text: "[amount]% Bonus vs [combatantFilter]", targets: onGlobalUnit, cats: catCombat | catUnit, deprecation: &Deprecation{Message: "Bonus uniques have been merged into Strength", ReplaceWith: []string{"+[amount]% Strength vs [combatantFilter]"}, Level: DeprecationError}},
	CityStrength:      {name: "CityStrength", text: "[relativeAmount]% Strength for cities", targets: onGlobal, cats: catCombat | catCity},
	CannotAttack:      {name: "CannotAttack", text: "Cannot attack", targets: onUnit, cats: catCombat | catUnit},
	HealAdjacentUnits: {name: "HealAdjacentUnits", text: "All adjacent units heal [amount] HP when healing", targets: onUnit, cats: catUnit},

	Movement:          {name: "Movement", text: "[amount] Movement", targets: onGlobalUnit, cats: catMovement | catUnit},
	Sight:             {name: "Sight", text: "[amount] Sight", targets: []*Target{TargetGlobal, TargetUnit, TargetTerrain}, cats: catMovement | catUnit},
	IgnoreTerrainCost: {name: "IgnoreTerrainCost", text: "Ignores terrain cost", targets: onUnit, cats: catMovement | catUnit},
	CannotMove:        {name: "CannotMove", text: "Cannot move", targets: onUnit, cats: catMovement | catUnit},

	ProvidesResources:          {name: "ProvidesResources", text: "Provides [amount] [resource]", targets: []*Target{TargetBuilding, TargetImprovement}, cats: catResource},
	ConsumesResources:          {name: "ConsumesResources", text: "Consumes [amount] [resource]", targets: []*Target{TargetBuilding, TargetImprovement, TargetUnit}, cats: catResource},
	StrategicResourcesIncrease: {name: "StrategicResourcesIncrease", text: "Quantity of strategic resources produced by the empire +[relativeAmount]%", targets: onGlobal, cats: catResource},

	UnitStartingExperience: {name: "UnitStartingExperience", text: "New [mapUnitFilter] units start with [amount] Experience [cityFilter]", targets: []*Target{TargetGlobal, TargetFollowerBelief}, cats: catUnit | catCity},
	UnitMaintenance:        {name: "UnitMaintenance", text: "[relativeAmount]% maintenance costs for [mapUnitFilter] units", targets: onGlobal, cats: catUnit},
	MaxNumberBuildable:     {name: "MaxNumberBuildable", text: "Limited to [amount] per Civilization", targets: []*Target{TargetBuilding, TargetUnit}},
	FoundCity:              {name: "FoundCity", text: "Founds a new city", targets: []*Target{TargetUnitAction}, cats: catUnit},

	OnlyAvailable:         {name: "OnlyAvailable", text: "Only available", targets: onAvailability},
	Unbuildable:           {name: "Unbuildable", text: "Unbuildable", targets: []*Target{TargetBuilding, TargetUnit, TargetImprovement}},
	Unsellable:            {name: "Unsellable", text: "Unsellable", targets: []*Target{TargetBuilding}},
	Uncapturable:          {name: "Uncapturable", text: "Uncapturable", targets: onUnit, cats: catUnit},
	CannotBeBuiltWith:     {name: "CannotBeBuiltWith", text: "Cannot be built with [building]", targets: []*Target{TargetBuilding}},
	MustBeOn:              {name: "MustBeOn", text: "Must be on [terrain]", targets: []*Target{TargetBuilding, TargetImprovement}},
	CanOnlyBeBuiltOnTile:  {name: "CanOnlyBeBuiltOnTile", text: "Can only be built on [tile] tiles", targets: []*Target{TargetImprovement}},
	HiddenFromCivilopedia: {name: "HiddenFromCivilopedia", text: "Will not be displayed in Civilopedia", targets: append(append([]*Target{}, onAvailability...), onEverything...), flags: FlagHiddenToUsers | FlagNoConditionals},
	Comment:               {name: "Comment", text: "Comment [comment]", targets: append(append([]*Target{}, onAvailability...), onEverything...), flags: FlagHiddenToUsers | FlagNoConditionals},

	FreeUnit:                 {name: "FreeUnit", text: "Free [unit] appears", targets: []*Target{TargetTriggerable}, cats: catUnit},
	OneTimeGainStat:          {name: "OneTimeGainStat", text: "Gain [amount] [stat]", targets: []*Target{TargetTriggerable}, flags: FlagAcceptsSpeedModifier},
	OneTimeUnitGainPromotion: {name: "OneTimeUnitGainPromotion", text: "This Unit gains the [promotion] promotion", targets: []*Target{TargetUnitTriggerable}, cats: catUnit},
	OneTimeFreeTech:          {name: "OneTimeFreeTech", text: "Free Technology", targets: []*Target{TargetTriggerable}},
	TriggerEvent:             {name: "TriggerEvent", text: "Triggers a [event] event", targets: []*Target{TargetTriggerable}},

	ConditionalChance:                      {name: "ConditionalChance", text: "with [percent]% chance", targets: onConditional},
	ConditionalEveryTurns:                  {name: "ConditionalEveryTurns", text: "every [positiveAmount] turns", targets: onConditional},
	ConditionalBeforeTurns:                 {name: "ConditionalBeforeTurns", text: "before turn number [amount]", targets: onConditional},
	ConditionalAfterTurns:                  {name: "ConditionalAfterTurns", text: "after turn number [amount]", targets: onConditional},
	ConditionalCivFilter:                   {name: "ConditionalCivFilter", text: "for [civFilter] Civilizations", targets: onConditional},
	ConditionalWar:                         {name: "ConditionalWar", text: "when at war", targets: onConditional},
	ConditionalNotWar:                      {name: "ConditionalNotWar", text: "when not at war", targets: onConditional},
	ConditionalHappy:                       {name: "ConditionalHappy", text: "while the empire is happy", targets: onConditional},
	ConditionalBetweenHappiness:            {name: "ConditionalBetweenHappiness", text: "when between [amount] and [amount] Happiness", targets: onConditional},
	ConditionalAboveHappiness:              {name: "ConditionalAboveHappiness", text: "when above [amount] Happiness", targets: onConditional},
	ConditionalBelowHappiness:              {name: "ConditionalBelowHappiness", text: "when below [amount] Happiness", targets: onConditional},
	ConditionalGoldenAge:                   {name: "ConditionalGoldenAge", text: "during a Golden Age", targets: onConditional},
	ConditionalNotGoldenAge:                {name: "ConditionalNotGoldenAge", text: "when not in a Golden Age", targets: onConditional},
	ConditionalBeforeEra:                   {name: "ConditionalBeforeEra", text: "before the [era]", targets: onConditional},
	ConditionalStartingFromEra:             {name: "ConditionalStartingFromEra", text: "starting from the [era]", targets: onConditional},
	ConditionalDuringEra:                   {name: "ConditionalDuringEra", text: "during the [era]", targets: onConditional},
	ConditionalSpeed:                       {name: "ConditionalSpeed", text: "on [speed] game speed", targets: onConditional},
	ConditionalDifficulty:                  {name: "ConditionalDifficulty", text: "on [difficulty] difficulty", targets: onConditional},
	ConditionalVictoryEnabled:              {name: "ConditionalVictoryEnabled", text: "when [victoryType] Victory is enabled", targets: onConditional},
	ConditionalVictoryDisabled:             {name: "ConditionalVictoryDisabled", text: "when [victoryType] Victory is disabled", targets: onConditional},
	ConditionalReligionEnabled:             {name: "ConditionalReligionEnabled", text: "when religion is enabled", targets: onConditional},
	ConditionalReligionDisabled:            {name: "ConditionalReligionDisabled", text: "when religion is disabled", targets: onConditional},
	ConditionalTech:                        {name: "ConditionalTech", text: "after discovering [tech]", targets: onConditional},
	ConditionalNoTech:                      {name: "ConditionalNoTech", text: "before discovering [tech]", targets: onConditional},
	ConditionalAfterPolicyOrBelief:         {name: "ConditionalAfterPolicyOrBelief", text: "after adopting [policy/belief]", targets: onConditional},
	ConditionalBeforePolicyOrBelief:        {name: "ConditionalBeforePolicyOrBelief", text: "before adopting [policy/belief]", targets: onConditional},
	ConditionalWithResource:                {name: "ConditionalWithResource", text: "with [resource]", targets: onConditional},
	ConditionalWithoutResource:             {name: "ConditionalWithoutResource", text: "without [resource]", targets: onConditional},
	ConditionalWhenAboveAmountStatResource: {name: "ConditionalWhenAboveAmountStatResource", text: "when above [amount] [stat/resource]", targets: onConditional},
	ConditionalWhenBelowAmountStatResource: {name: "ConditionalWhenBelowAmountStatResource", text: "when below [amount] [stat/resource]", targets: onConditional},
	ConditionalWhenBetweenStatResource:     {name: "ConditionalWhenBetweenStatResource", text: "when between [amount] and [amount] [stat/resource]", targets: onConditional},
	ConditionalBuildingBuilt:               {name: "ConditionalBuildingBuilt", text: "if [buildingFilter] is constructed", targets: onConditional},
	ConditionalBuildingBuiltByAnybody:      {name: "ConditionalBuildingBuiltByAnybody", text: "if [buildingFilter] is constructed by anybody", targets: onConditional},
	ConditionalInThisCity:                  {name: "ConditionalInThisCity", text: "in this city", targets: onConditional},
	ConditionalCityFilter:                  {name: "ConditionalCityFilter", text: "in [cityFilter] cities", targets: onConditional},
	ConditionalCityConnected:               {name: "ConditionalCityConnected", text: "in cities connected to the capital", targets: onConditional},
	ConditionalCityWithBuilding:            {name: "ConditionalCityWithBuilding", text: "in cities with a [buildingFilter]", targets: onConditional},
	ConditionalCityWithoutBuilding:         {name: "ConditionalCityWithoutBuilding", text: "in cities without a [buildingFilter]", targets: onConditional},
	ConditionalPopulationFilter:            {name: "ConditionalPopulationFilter", text: "in cities with at least [amount] [populationFilter]", targets: onConditional},
	ConditionalBelowPopulationFilter:       {name: "ConditionalBelowPopulationFilter", text: "in cities with less than [amount] [populationFilter]", targets: onConditional},
	ConditionalWLTKD:                       {name: "ConditionalWLTKD", text: "during We Love The King Day", targets: onConditional},
	ConditionalVsCity:                      {name: "ConditionalVsCity", text: "vs cities", targets: onConditional, cats: catCombat},
	ConditionalVsCombatant:                 {name: "ConditionalVsCombatant", text: "vs [combatantFilter]", targets: onConditional, cats: catCombat},
	ConditionalVsUnits:                     {name: "ConditionalVsUnits", text: "vs [mapUnitFilter] units", targets: onConditional, cats: catCombat, deprecation: &Deprecation{Message: "Use the vs [combatantFilter] conditional", ReplaceWith: []string{"vs [mapUnitFilter]"}, Level: DeprecationWarning}},
	ConditionalVsLargerCiv:                 {name: "ConditionalVsLargerCiv", text: "when fighting units from a Civilization with more Cities than you", targets: onConditional, cats: catCombat},
	ConditionalOurUnit:                     {name: "ConditionalOurUnit", text: "for [mapUnitFilter] units", targets: onConditional, cats: catUnit},
	ConditionalUnitWithPromotion:           {name: "ConditionalUnitWithPromotion", text: "for units with [promotion]", targets: onConditional, cats: catUnit},
	ConditionalUnitWithoutPromotion:        {name: "ConditionalUnitWithoutPromotion", text: "for units without [promotion]", targets: onConditional, cats: catUnit},
	ConditionalAttacking:                   {name: "ConditionalAttacking", text: "when attacking", targets: onConditional, cats: catCombat},
	ConditionalDefending:                   {name: "ConditionalDefending", text: "when defending", targets: onConditional, cats: catCombat},
	ConditionalAboveHP:                     {name: "ConditionalAboveHP", text: "when above [amount] HP", targets: onConditional, cats: catCombat},
	ConditionalBelowHP:                     {name: "ConditionalBelowHP", text: "when below [amount] HP", targets: onConditional, cats: catCombat},
	ConditionalInTiles:                     {name: "ConditionalInTiles", text: "in [tileFilter] tiles", targets: onConditional},
	ConditionalInTilesNot:                  {name: "ConditionalInTilesNot", text: "in tiles without [tileFilter]", targets: onConditional},
	ConditionalAdjacentTo:                  {name: "ConditionalAdjacentTo", text: "in tiles adjacent to [tileFilter]", targets: onConditional},
	ConditionalNotAdjacentTo:               {name: "ConditionalNotAdjacentTo", text: "in tiles not adjacent to [tileFilter]", targets: onConditional},
	ConditionalFightingInTiles:             {name: "ConditionalFightingInTiles", text: "when fighting in [tileFilter] tiles", targets: onConditional, cats: catCombat},
	ConditionalNeighborTiles:               {name: "ConditionalNeighborTiles", text: "with [amount] to [amount] neighboring [tileFilter] tiles", targets: onConditional},

	TriggerUponResearch:               {name: "TriggerUponResearch", text: "upon discovering [tech]", targets: onTrigger},
	TriggerUponAdoptingPolicyOrBelief: {name: "TriggerUponAdoptingPolicyOrBelief", text: "upon adopting [policy/belief]", targets: onTrigger},
	TriggerUponFoundingCity:           {name: "TriggerUponFoundingCity", text: "upon founding a city", targets: onTrigger},
	TriggerUponConstructingBuilding:   {name: "TriggerUponConstructingBuilding", text: "upon constructing [buildingFilter]", targets: onTrigger},
	TriggerUponEnteringEra:            {name: "TriggerUponEnteringEra", text: "upon entering the [era]", targets: onTrigger},
	TriggerUponDefeatingUnit:          {name: "TriggerUponDefeatingUnit", text: "upon defeating a [mapUnitFilter] unit", targets: onUnitTrigger},
	TriggerUponPromotion:              {name: "TriggerUponPromotion", text: "upon being promoted", targets: onUnitTrigger},

	UnitActionConsumeUnit: {name: "UnitActionConsumeUnit", text: "by consuming this unit", targets: []*Target{TargetUnitActionModifier}},

	ConditionalTimedUnique:  {name: "ConditionalTimedUnique", text: "for [amount] turns", targets: onMeta},
	ModifierHiddenFromUsers: {name: "ModifierHiddenFromUsers", text: "hidden from users", targets: onMeta},
	ModifiedByGameSpeed:     {name: "ModifiedByGameSpeed", text: "adjusted by game speed", targets: onMeta},
	ForEveryCountable:       {name: "ForEveryCountable", text: "for every [countable]", targets: onMeta},
	ForEveryAmountCountable: {name: "ForEveryAmountCountable", text: "for every [positiveAmount] [countable]", targets: onMeta},
	ForEveryAdjacentTile:    {name: "ForEveryAdjacentTile", text: "for every adjacent [tileFilter]", targets: onMeta},
}

var skeletonIndex map[string][]Type

func init() {
	skeletonIndex = make(map[string][]Type, numTypes)
	for t := Type(1); t < numTypes; t++ {
		info := &catalog[t]
		if info.name == "" || info.text == "" || len(info.targets) == 0 {
			panic(fmt.Sprintf("catalog: precondition violated: type %d is missing name, text or targets", t))
		}
		info.skeleton = Skeleton(info.text)
		for _, slot := range placeholderParams(info.text) {
			info.params = append(info.params, slotParamTypes(slot))
		}
		skeletonIndex[info.skeleton] = append(skeletonIndex[info.skeleton], t)
	}
}

func (t Type) info() *typeInfo {
	if t < 0 || t >= numTypes {
		return &catalog[None]
	}
	return &catalog[t]
}

func (t Type) String() string { return t.info().name }

// Text returns the template text, slots named.
func (t Type) Text() string { return t.info().text }

// Skeleton returns the template with slot names removed.
func (t Type) Skeleton() string { return t.info().skeleton }

// Targets returns the targets the entry is declared for.
func (t Type) Targets() []*Target {
	return append([]*Target(nil), t.info().targets...)
}

// ParamTypes returns, per slot, the parameter types the slot accepts.
func (t Type) ParamTypes() [][]ParamType {
	src := t.info().params
	out := make([][]ParamType, len(src))
	for i, p := range src {
		out[i] = append([]ParamType(nil), p...)
	}
	return out
}

// Deprecation returns the deprecation annotation, if any.
func (t Type) Deprecation() (Deprecation, bool) {
	d := t.info().deprecation
	if d == nil {
		return Deprecation{}, false
	}
	out := *d
	out.ReplaceWith = append([]string(nil), d.ReplaceWith...)
	return out, true
}

// Render fills the template slots with values in order.
func (t Type) Render(values ...string) string { return fillTemplate(t.Text(), values) }

func (t Type) HasFlag(f Flag) bool { return t.info().flags&f != 0 }
func (t Type) IsCombatModifier() bool { return t.info().cats&catCombat != 0 }
func (t Type) IsMovementModifier() bool { return t.info().cats&catMovement != 0 }
func (t Type) IsResourceModifier() bool { return t.info().cats&catResource != 0 }
func (t Type) IsCityModifier() bool { return t.info().cats&catCity != 0 }
func (t Type) IsUnitModifier() bool { return t.info().cats&catUnit != 0 }
func (t Type) RequiresParameters() bool { return len(t.info().params) > 0 }
func (t Type) CanApplyToBuilding() bool { return t.CanAcceptTarget(TargetBuilding) }
func (t Type) CanApplyToUnit() bool { return t.CanAcceptTarget(TargetUnit) }
func (t Type) IsDeprecated() bool { return t.info().deprecation != nil }
func (t Type) IsConditional() bool { return t.hasModifierType(ModifierConditional) }
func (t Type) isOtherModifier() bool { return t.hasModifierType(ModifierOther) }
func (t Type) canLead() bool { return t.hasModifierType(ModifierNone) }
func (t Type) canModify() bool { return t.IsConditional() || t.isOtherModifier() }
func (t Type) IsModifier() bool { return t.canModify() && !t.canLead() }
func (t Type) declares(tg *Target) bool { return containsTarget(t.info().targets, tg) }

// IsTrigger reports whether the entry is a one-time effect.
func (t Type) IsTrigger() bool {
	for _, tg := range t.info().targets {
		if tg == TargetTriggerable || tg == TargetUnitTriggerable {
			return true
		}
	}
	return false
}

// CanAcceptTarget reports whether a unique of type t may live on an object
// of the given target.
func (t Type) CanAcceptTarget(target *Target) bool {
	if t == None || target == nil {
		return false
	}
	for _, declared := range t.info().targets {
		if target.CanAccept(declared) {
			return true
		}
	}
	return false
}

func (t Type) hasModifierType(m ModifierType) bool {
	if t == None {
		return false
	}
	for _, tg := range t.info().targets {
		if tg.modifierType == m {
			return true
		}
	}
	return false
}

func containsTarget(ts []*Target, tg *Target) bool {
	for _, t := range ts {
		if t == tg {
			return true
		}
	}
	return false
}

// AllTypes returns every catalog entry, None excluded, in declaration order.
func AllTypes() []Type {
	out := make([]Type, 0, numTypes-1)
	for t := Type(1); t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType looks a catalog entry up by name.
func ParseType(name string) (Type, bool) {
	for t := Type(1); t < numTypes; t++ {
		if catalog[t].name == name {
			return t, true
		}
	}
	return None, false
}

// MatchText resolves the head of raw against the catalog regardless of role.
// When more than one entry shares the skeleton, it returns None with every
// candidate.
func MatchText(raw string) (Type, []Type) {
	head, _ := splitModifiers(raw)
	return matchSkeleton(Skeleton(head), func(Type) bool { return true })
}

func matchSkeleton(skel string, allowed func(Type) bool) (Type, []Type) {
	var candidates []Type
	for _, t := range skeletonIndex[skel] {
		if allowed(t) {
			candidates = append(candidates, t)
		}
	}
	switch len(candidates) {
	case 0:
		return None, nil
	case 1:
		return candidates[0], nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return None, candidates
}

// AmbiguousSkeletons lists every skeleton shared by more than one entry.
func AmbiguousSkeletons() map[string][]Type {
	out := make(map[string][]Type)
	for skel, ts := range skeletonIndex {
		if len(ts) > 1 {
			out[skel] = append([]Type(nil), ts...)
		}
	}
	return out
}
