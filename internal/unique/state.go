package unique

// Game exposes the game-wide facts conditionals read.
type Game interface {
	Turn() int
	Speed() string
	Difficulty() string
	IsVictoryEnabled(victory string) bool
	IsReligionEnabled() bool
	// EraNumber returns the position of era in the ruleset's era order.
	EraNumber(era string) (int, bool)
	// IsBuiltByAnybody reports whether any civilization owns a building
	// matching filter.
	IsBuiltByAnybody(buildingFilter string) bool
}

// Civ exposes a civilization. MatchesFilter answers filters the engine does
// not resolve itself.
type Civ interface {
	NationName() string
	IsCityState() bool
	IsBarbarian() bool
	IsHuman() bool
	IsAtWar() bool
	Happiness() int
	IsGoldenAge() bool
	EraNumber() int
	HasTech(tech string) bool
	HasPolicyOrBelief(name string) bool
	// ResourceAmount returns the stockpile of resource; ok is false when the
	// name is not a resource.
	ResourceAmount(resource string) (amount int, ok bool)
	StatAmount(stat Stat) int
	CityCount() int
	UnitCount(mapUnitFilter string) int
	BuildingCount(buildingFilter string) int
	OwnedTiles() int
	CompletedPolicyBranches() int
	MatchesFilter(filter string) bool
}

// City exposes a city.
type City interface {
	MatchesFilter(cityFilter string) bool
	HasBuilding(buildingFilter string) bool
	PopulationCount(populationFilter string) int
	IsConnectedToCapital() bool
	IsWeLoveTheKingDay() bool
}

// Unit exposes a map unit.
type Unit interface {
	MatchesFilter(mapUnitFilter string) bool
	HasPromotion(promotion string) bool
	Health() int
}

// Tile exposes a map tile.
type Tile interface {
	MatchesFilter(tileFilter string) bool
	// NeighborCount counts adjacent tiles matching tileFilter.
	NeighborCount(tileFilter string) int
}

// Combatant exposes either side of a fight.
type Combatant interface {
	// MatchesFilter answers unit and city filters.
	MatchesFilter(filter string) bool
	IsCity() bool
	Civ() Civ
	Health() int
}

// CombatAction is the role of OurCombatant in a fight.
type CombatAction int

const (
	CombatNone CombatAction = iota
	CombatAttack
	CombatDefend
	CombatIntercept
)

// State is the context a conditional is evaluated against. Every field is
// optional; conditionals needing an absent field do not apply. It is built
// fresh for each query.
type State struct {
	Game           Game
	Civ            Civ
	City           City
	Unit           Unit
	Tile           Tile
	OurCombatant   Combatant
	TheirCombatant Combatant
	AttackedTile   Tile
	CombatAction   CombatAction

	// IgnoreConditionals makes every conditional apply.
	IgnoreConditionals bool
}

// IgnoreConditionals returns the state under which every unique applies.
func IgnoreConditionals() State { return State{IgnoreConditionals: true} }

// ForCiv builds a state for civ-wide queries.
func ForCiv(game Game, civ Civ) State { return State{Game: game, Civ: civ} }

// ForCity builds a state for queries about one city.
func ForCity(game Game, civ Civ, city City) State {
	return State{Game: game, Civ: civ, City: city}
}

// ForUnit builds a state for queries about one unit on tile.
func ForUnit(game Game, civ Civ, unit Unit, tile Tile) State {
	return State{Game: game, Civ: civ, Unit: unit, Tile: tile}
}

// ForCombat builds a state for a fight between ours and theirs.
func ForCombat(game Game, ours, theirs Combatant, attacked Tile, action CombatAction) State {
	s := State{Game: game, OurCombatant: ours, TheirCombatant: theirs, AttackedTile: attacked, CombatAction: action}
	if ours != nil {
		s.Civ = ours.Civ()
	}
	return s
}

func (s State) relevantCiv() Civ {
	if s.Civ != nil {
		return s.Civ
	}
	if s.OurCombatant != nil {
		return s.OurCombatant.Civ()
	}
	return nil
}

func (s State) relevantTile() Tile {
	if s.AttackedTile != nil {
		return s.AttackedTile
	}
	return s.Tile
}

func (s State) health() (int, bool) {
	if s.OurCombatant != nil {
		return s.OurCombatant.Health(), true
	}
	if s.Unit != nil {
		return s.Unit.Health(), true
	}
	return 0, false
}
