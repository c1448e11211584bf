package unique

import "strings"

// ParamType is the kind of value a template slot accepts.
type ParamType int

const (
	ParamText ParamType = iota
	ParamNumber
	ParamPositiveNumber
	ParamRelativeNumber
	ParamPercent
	ParamStat
	ParamStats
	ParamCountable
	ParamCivFilter
	ParamCombatantFilter
	ParamMapUnitFilter
	ParamCityFilter
	ParamTileFilter
	ParamBuildingFilter
	ParamPopulationFilter
	ParamUnit
	ParamBuilding
	ParamTech
	ParamPolicy
	ParamPromotion
	ParamResource
	ParamTerrain
	ParamTile
	ParamImprovement
	ParamNation
	ParamBelief
	ParamGreatPerson
	ParamVictoryType
	ParamDifficulty
	ParamSpeed
	ParamEra
	ParamEvent
	ParamCombatType
	ParamCombatModifier
	ParamCombatBonus
	ParamCombatPenalty
	ParamCombatUnit
	ParamCombatTerrain
	ParamCombatFeature
	numParamTypes
)

// paramSlotNames maps each type to the slot name templates use for it.
var paramSlotNames = [numParamTypes]string{
	ParamText:             "text",
	ParamNumber:           "amount",
	ParamPositiveNumber:   "positiveAmount",
	ParamRelativeNumber:   "relativeAmount",
	ParamPercent:          "percent",
	ParamStat:             "stat",
	ParamStats:            "stats",
	ParamCountable:        "countable",
	ParamCivFilter:        "civFilter",
	ParamCombatantFilter:  "combatantFilter",
	ParamMapUnitFilter:    "mapUnitFilter",
	ParamCityFilter:       "cityFilter",
	ParamTileFilter:       "tileFilter",
	ParamBuildingFilter:   "buildingFilter",
	ParamPopulationFilter: "populationFilter",
	ParamUnit:             "unit",
	ParamBuilding:         "building",
	ParamTech:             "tech",
	ParamPolicy:           "policy",
	ParamPromotion:        "promotion",
	ParamResource:         "resource",
	ParamTerrain:          "terrain",
	ParamTile:             "tile",
	ParamImprovement:      "improvement",
	ParamNation:           "nation",
	ParamBelief:           "belief",
	ParamGreatPerson:      "greatPerson",
	ParamVictoryType:      "victoryType",
	ParamDifficulty:       "difficulty",
	ParamSpeed:            "speed",
	ParamEra:              "era",
	ParamEvent:            "event",
	ParamCombatType:       "combatType",
	ParamCombatModifier:   "combatModifier",
	ParamCombatBonus:      "combatBonus",
	ParamCombatPenalty:    "combatPenalty",
	ParamCombatUnit:       "combatUnit",
	ParamCombatTerrain:    "combatTerrain",
	ParamCombatFeature:    "combatFeature",
}

// referenceCollections lists the collections a ruleset-reference type must name a key of.
var referenceCollections = map[ParamType][]Collection{
	ParamUnit:           {CollectionUnits},
	ParamBuilding:       {CollectionBuildings},
	ParamTech:           {CollectionTechnologies},
	ParamPolicy:         {CollectionPolicies},
	ParamPromotion:      {CollectionPromotions},
	ParamResource:       {CollectionTileResources},
	ParamTerrain:        {CollectionTerrains},
	ParamTile:           {CollectionTerrains, CollectionTileImprovements},
	ParamImprovement:    {CollectionTileImprovements},
	ParamNation:         {CollectionNations},
	ParamBelief:         {CollectionBeliefs},
	ParamGreatPerson:    {CollectionGreatPeople, CollectionUnits},
	ParamVictoryType:    {CollectionVictories},
	ParamDifficulty:     {CollectionDifficulties},
	ParamSpeed:          {CollectionSpeeds},
	ParamEra:            {CollectionEras},
	ParamEvent:          {CollectionEvents},
	ParamCombatType:     {CollectionCombatTypes},
	ParamCombatModifier: {CollectionCombatModifiers},
	ParamCombatBonus:    {CollectionCombatBonuses},
	ParamCombatPenalty:  {CollectionCombatPenalties},
	ParamCombatUnit:     {CollectionCombatUnits},
	ParamCombatTerrain:  {CollectionCombatTerrains},
	ParamCombatFeature:  {CollectionCombatFeatures},
}

func (p ParamType) String() string {
	if p < 0 || p >= numParamTypes {
		return "ParamType(?)"
	}
	return paramSlotNames[p]
}

// slotParamTypes derives the accepted types of a slot name; "policy/belief"
// accepts either. Unknown names accept free text.
func slotParamTypes(slot string) []ParamType {
	var out []ParamType
	for _, name := range strings.Split(slot, "/") {
		out = append(out, paramTypeBySlot(strings.TrimSpace(name)))
	}
	return out
}

func paramTypeBySlot(name string) ParamType {
	for p, n := range paramSlotNames {
		if n == name {
			return ParamType(p)
		}
	}
	return ParamText
}

// ParamSeverity ranks how wrong a parameter value is. ParamValid means no error.
type ParamSeverity int

const (
	ParamValid ParamSeverity = iota
	// ParamPossibleFilteringUnique is an unknown filter that may name a
	// unique used as a filter tag.
	ParamPossibleFilteringUnique
	// ParamRulesetSpecific depends on which objects the ruleset defines.
	ParamRulesetSpecific
	// ParamRulesetInvariant is wrong in every ruleset.
	ParamRulesetInvariant
)

func (s ParamSeverity) String() string {
	switch s {
	case ParamValid:
		return "Valid"
	case ParamPossibleFilteringUnique:
		return "PossibleFilteringUnique"
	case ParamRulesetSpecific:
		return "RulesetSpecific"
	case ParamRulesetInvariant:
		return "RulesetInvariant"
	}
	return "ParamSeverity(?)"
}

// IsValid reports whether value is acceptable for p against rs.
func (p ParamType) IsValid(value string, rs RulesetView) bool {
	return p.ErrorSeverity(value, rs) == ParamValid
}

// ErrorSeverity classifies value for p. A nil rs behaves as an empty ruleset.
//
// Postcondition: Total over all inputs; never panics.
func (p ParamType) ErrorSeverity(value string, rs RulesetView) ParamSeverity {
	rs = viewOrEmpty(rs)
	switch p {
	case ParamText:
		return ParamValid
	case ParamNumber:
		_, ok := ParseNumber(value)
		return validIf(ok)
	case ParamPositiveNumber:
		n, ok := ParseNumber(value)
		return validIf(ok && n > 0)
	case ParamRelativeNumber:
		_, ok := ParseNumber(value)
		return validIf(ok)
	case ParamPercent:
		n, ok := ParseNumber(value)
		return validIf(ok && n >= -100 && n <= 100)
	case ParamStat:
		_, ok := ParseStat(value)
		return validIf(ok)
	case ParamStats:
		_, ok := ParseStats(value)
		return validIf(ok)
	case ParamCountable:
		return countableSeverity(value, rs)
	case ParamCivFilter:
		return filterSeverity(value, func(f string) bool { return knownCivFilter(f, rs) }, ParamPossibleFilteringUnique)
	case ParamCombatantFilter:
		return filterSeverity(value, func(f string) bool {
			return f == "City" || knownCivFilter(f, rs) || knownMapUnitFilter(f, rs)
		}, ParamPossibleFilteringUnique)
	case ParamMapUnitFilter:
		return filterSeverity(value, func(f string) bool {
			return knownMapUnitFilter(f, rs) || knownCivFilter(f, rs)
		}, ParamPossibleFilteringUnique)
	case ParamCityFilter:
		return filterSeverity(value, func(f string) bool { return cityFilterKeywords[f] }, ParamPossibleFilteringUnique)
	case ParamTileFilter:
		return filterSeverity(value, func(f string) bool {
			return tileFilterKeywords[f] || rs.Has(CollectionTerrains, f) ||
				rs.Has(CollectionTileResources, f) || rs.Has(CollectionTileImprovements, f)
		}, ParamPossibleFilteringUnique)
	case ParamBuildingFilter:
		return filterSeverity(value, func(f string) bool {
			_, isStat := ParseStat(f)
			return buildingFilterKeywords[f] || isStat || rs.Has(CollectionBuildings, f)
		}, ParamPossibleFilteringUnique)
	case ParamPopulationFilter:
		return filterSeverity(value, func(f string) bool { return populationFilterKeywords[f] }, ParamRulesetSpecific)
	}
	if cols, ok := referenceCollections[p]; ok {
		if strings.TrimSpace(value) == "" {
			return ParamRulesetInvariant
		}
		for _, c := range cols {
			if rs.Has(c, value) {
				return ParamValid
			}
		}
		return ParamRulesetSpecific
	}
	return ParamRulesetInvariant
}

func validIf(ok bool) ParamSeverity {
	if ok {
		return ParamValid
	}
	return ParamRulesetInvariant
}

// filterSeverity applies known to every leaf of a multi-filter and reports
// the worst outcome; an empty leaf is always invariant.
func filterSeverity(value string, known func(string) bool, unknown ParamSeverity) ParamSeverity {
	worst := ParamValid
	for _, leaf := range AllSingleFilters(value) {
		switch {
		case leaf == "":
			return ParamRulesetInvariant
		case !known(leaf):
			if unknown > worst {
				worst = unknown
			}
		}
	}
	return worst
}

var civFilterKeywords = map[string]bool{
	"All": true, "Major": true, "City-State": true, "City-States": true,
	"Barbarian": true, "Barbarians": true, "Human": true, "AI": true,
}

var mapUnitFilterKeywords = map[string]bool{
	"All": true, "Military": true, "Civilian": true, "Melee": true, "Ranged": true,
	"Land": true, "Water": true, "Air": true, "Wounded": true, "Embarked": true,
	"Great Person": true, "Religious": true, "Nuclear Weapon": true,
}

var cityFilterKeywords = map[string]bool{
	"in this city": true, "in all cities": true, "in your cities": true, "in other cities": true,
	"in all coastal cities": true, "in coastal cities": true, "in capital": true,
	"in all non-occupied cities": true, "in non-occupied cities": true,
	"in all cities with a world wonder": true, "in all cities connected to capital": true,
	"in all cities with a garrison": true, "in puppeted cities": true, "in holy cities": true,
	"in annexed cities": true, "in City-State cities": true, "in cities following this religion": true,
	"All": true, "Capital": true, "Coastal": true,
}

var tileFilterKeywords = map[string]bool{
	"All": true, "Land": true, "Water": true, "River": true, "Coastal": true,
	"Friendly Land": true, "Foreign Land": true, "Enemy Land": true, "Fresh water": true,
	"Open terrain": true, "Rough terrain": true, "Natural Wonder": true, "Featureless": true,
	"Improved": true, "Unimproved": true, "Pillaged": true, "City center": true,
	"Strategic resource": true, "Luxury resource": true, "Bonus resource": true, "Water resource": true,
}

var buildingFilterKeywords = map[string]bool{
	"All": true, "Building": true, "Buildings": true, "Wonder": true, "Wonders": true,
	"National Wonder": true, "National": true, "World Wonder": true, "World": true,
}

var populationFilterKeywords = map[string]bool{
	"Population": true, "Specialists": true, "Unemployed": true,
	"Followers of the Majority Religion": true, "Followers of this Religion": true,
}

func knownCivFilter(f string, rs RulesetView) bool {
	return civFilterKeywords[f] || rs.Has(CollectionNations, f)
}

func knownMapUnitFilter(f string, rs RulesetView) bool {
	return mapUnitFilterKeywords[f] || rs.Has(CollectionUnits, f) ||
		rs.Has(CollectionUnitTypes, f) || rs.Has(CollectionPromotions, f)
}
