package unique

// Collection identifies a keyed ruleset collection consulted while validating
// parameters.
type Collection int

const (
	CollectionUnits Collection = iota
	CollectionBuildings
	CollectionTechnologies
	CollectionPolicies
	CollectionPromotions
	CollectionTerrains
	CollectionTileImprovements
	CollectionTileResources
	CollectionNations
	CollectionBeliefs
	CollectionGreatPeople
	CollectionVictories
	CollectionDifficulties
	CollectionSpeeds
	CollectionEras
	CollectionUnitTypes
	CollectionEvents
	CollectionCombatTypes
	CollectionCombatModifiers
	CollectionCombatBonuses
	CollectionCombatPenalties
	CollectionCombatUnits
	CollectionCombatTerrains
	CollectionCombatFeatures
	numCollections
)

var collectionNames = [numCollections]string{
	CollectionUnits:            "Units",
	CollectionBuildings:        "Buildings",
	CollectionTechnologies:     "Technologies",
	CollectionPolicies:         "Policies",
	CollectionPromotions:       "Promotions",
	CollectionTerrains:         "Terrains",
	CollectionTileImprovements: "TileImprovements",
	CollectionTileResources:    "TileResources",
	CollectionNations:          "Nations",
	CollectionBeliefs:          "Beliefs",
	CollectionGreatPeople:      "GreatPeople",
	CollectionVictories:        "Victories",
	CollectionDifficulties:     "Difficulties",
	CollectionSpeeds:           "Speeds",
	CollectionEras:             "Eras",
	CollectionUnitTypes:        "UnitTypes",
	CollectionEvents:           "Events",
	CollectionCombatTypes:      "CombatTypes",
	CollectionCombatModifiers:  "CombatModifiers",
	CollectionCombatBonuses:    "CombatBonuses",
	CollectionCombatPenalties:  "CombatPenalties",
	CollectionCombatUnits:      "CombatUnits",
	CollectionCombatTerrains:   "CombatTerrains",
	CollectionCombatFeatures:   "CombatFeatures",
}

func (c Collection) String() string {
	if c < 0 || c >= numCollections {
		return "Collection(?)"
	}
	return collectionNames[c]
}

// AllCollections returns every collection in declaration order.
func AllCollections() []Collection {
	out := make([]Collection, 0, numCollections)
	for c := Collection(0); c < numCollections; c++ {
		out = append(out, c)
	}
	return out
}

// RulesetView is the read-only slice of a ruleset the engine consults.
type RulesetView interface {
	// Has reports whether key names an object of collection c.
	Has(c Collection, key string) bool
	// Keys enumerates the names in collection c.
	Keys(c Collection) []string
}

type emptyView struct{}

func (emptyView) Has(Collection, string) bool { return false }
func (emptyView) Keys(Collection) []string { return nil }

// viewOrEmpty lets every query treat a nil ruleset as one with no objects.
func viewOrEmpty(rs RulesetView) RulesetView {
	if rs == nil {
		return emptyView{}
	}
	return rs
}
