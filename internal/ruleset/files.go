package ruleset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cory-johannsen/uniques/internal/unique"
)

const (
	// GlobalUniquesName names the single object of GlobalUniques.json.
	GlobalUniquesName = "Global uniques"
	// ModOptionsName names the single object of ModOptions.json.
	ModOptionsName = "Mod options"
)

// fileSpec describes one ruleset JSON file.
type fileSpec struct {
	name string
	// keyed files contribute their object names to collection.
	keyed      bool
	collection unique.Collection
	// paths are gjson paths that each yield an array of objects. Empty means
	// the document is a single object.
	paths  []string
	target func(obj gjson.Result) *unique.Target
	single string
}

func fixed(t *unique.Target) func(gjson.Result) *unique.Target {
	return func(gjson.Result) *unique.Target { return t }
}

func buildingTarget(obj gjson.Result) *unique.Target {
	if obj.Get("isWonder").Bool() || obj.Get("isNationalWonder").Bool() {
		return unique.TargetWonder
	}
	return unique.TargetBuilding
}

func beliefTarget(obj gjson.Result) *unique.Target {
	switch obj.Get("type").String() {
	case "Founder", "Enhancer":
		return unique.TargetFounderBelief
	}
	return unique.TargetFollowerBelief
}

func nationTarget(obj gjson.Result) *unique.Target {
	if obj.Get("cityStateType").String() != "" {
		return unique.TargetCityState
	}
	return unique.TargetNation
}

func improvementTarget(obj gjson.Result) *unique.Target {
	if strings.Contains(obj.Get("name").String(), "Ancient ruins") {
		return unique.TargetRuins
	}
	return unique.TargetImprovement
}

// files lists the ruleset files in the fixed order loading and auto-update
// visit them.
var files = []fileSpec{
	{name: "Buildings.json", keyed: true, collection: unique.CollectionBuildings, paths: []string{"@this"}, target: buildingTarget},
	{name: "Units.json", keyed: true, collection: unique.CollectionUnits, paths: []string{"@this"}, target: fixed(unique.TargetUnit)},
	{name: "UnitTypes.json", keyed: true, collection: unique.CollectionUnitTypes, paths: []string{"@this"}, target: fixed(unique.TargetUnitType)},
	{name: "UnitPromotions.json", keyed: true, collection: unique.CollectionPromotions, paths: []string{"@this"}, target: fixed(unique.TargetPromotion)},
	{name: "Techs.json", keyed: true, collection: unique.CollectionTechnologies, paths: []string{"#.techs|@flatten"}, target: fixed(unique.TargetTech)},
	{name: "Policies.json", keyed: true, collection: unique.CollectionPolicies, paths: []string{"@this", "#.policies|@flatten"}, target: fixed(unique.TargetPolicy)},
	{name: "Beliefs.json", keyed: true, collection: unique.CollectionBeliefs, paths: []string{"@this"}, target: beliefTarget},
	{name: "Nations.json", keyed: true, collection: unique.CollectionNations, paths: []string{"@this"}, target: nationTarget},
	{name: "Terrains.json", keyed: true, collection: unique.CollectionTerrains, paths: []string{"@this"}, target: fixed(unique.TargetTerrain)},
	{name: "TileImprovements.json", keyed: true, collection: unique.CollectionTileImprovements, paths: []string{"@this"}, target: improvementTarget},
	{name: "TileResources.json", keyed: true, collection: unique.CollectionTileResources, paths: []string{"@this"}, target: fixed(unique.TargetResource)},
	{name: "Eras.json", keyed: true, collection: unique.CollectionEras, paths: []string{"@this"}, target: fixed(unique.TargetEra)},
	{name: "Speeds.json", keyed: true, collection: unique.CollectionSpeeds, paths: []string{"@this"}, target: fixed(unique.TargetSpeed)},
	{name: "Difficulties.json", keyed: true, collection: unique.CollectionDifficulties, paths: []string{"@this"}, target: fixed(unique.TargetDifficulty)},
	{name: "VictoryTypes.json", keyed: true, collection: unique.CollectionVictories, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "GreatPeople.json", keyed: true, collection: unique.CollectionGreatPeople, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "Events.json", keyed: true, collection: unique.CollectionEvents, paths: []string{"@this"}, target: fixed(unique.TargetEvent)},
	{name: "CombatTypes.json", keyed: true, collection: unique.CollectionCombatTypes, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "CombatModifiers.json", keyed: true, collection: unique.CollectionCombatModifiers, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "CombatBonuses.json", keyed: true, collection: unique.CollectionCombatBonuses, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "CombatPenalties.json", keyed: true, collection: unique.CollectionCombatPenalties, paths: []string{"@this"}, target: fixed(unique.TargetGlobal)},
	{name: "CombatUnits.json", keyed: true, collection: unique.CollectionCombatUnits, paths: []string{"@this"}, target: fixed(unique.TargetUnit)},
	{name: "CombatTerrains.json", keyed: true, collection: unique.CollectionCombatTerrains, paths: []string{"@this"}, target: fixed(unique.TargetTerrain)},
	{name: "CombatFeatures.json", keyed: true, collection: unique.CollectionCombatFeatures, paths: []string{"@this"}, target: fixed(unique.TargetTerrain)},
	{name: "GlobalUniques.json", target: fixed(unique.TargetGlobal), single: GlobalUniquesName},
	{name: "ModOptions.json", target: fixed(unique.TargetModOptions), single: ModOptionsName},
}

// FileNames returns the ruleset file names in their fixed visiting order.
func FileNames() []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.name
	}
	return out
}

// JSONDir returns the directory holding folder's JSON files: folder/jsons
// when it exists, otherwise folder itself.
func JSONDir(folder string) string {
	jsons := filepath.Join(folder, "jsons")
	if info, err := os.Stat(jsons); err == nil && info.IsDir() {
		return jsons
	}
	return folder
}
