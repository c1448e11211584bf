package unique

import (
	"hash/fnv"
	"strconv"
)

// MaxMultiplier caps the number of copies Multiplied returns. Callers that
// need to know when the cap applied use Multiplier.
const MaxMultiplier = 10000

// ConditionalsApply reports whether every modifier of u holds in s. A unique
// without modifiers always applies; IgnoreConditionals overrides everything.
//
// Postcondition: Equals the conjunction of ConditionalApplies over u's modifiers.
func ConditionalsApply(u *Unique, s State) bool {
	if u == nil {
		return false
	}
	if s.IgnoreConditionals {
		return true
	}
	for _, m := range u.modifiers {
		if !ConditionalApplies(u, m, s) {
			return false
		}
	}
	return true
}

// ConditionalApplies evaluates one modifier of parent against s. Unknown
// modifiers never apply; trigger conditions, unit action modifiers and meta
// modifiers always do.
func ConditionalApplies(parent, m *Unique, s State) bool {
	if m == nil || m.typ == None {
		return false
	}
	if s.IgnoreConditionals || m.typ.isOtherModifier() {
		return true
	}
	civ := s.relevantCiv()
	p := m.Param

	switch m.typ {
	case ConditionalChance:
		pct, ok := ParseNumber(p(0))
		return ok && chanceRoll(parent, m, s) < pct*100
	case ConditionalEveryTurns:
		n, ok := ParseNumber(p(0))
		return ok && n > 0 && s.Game != nil && s.Game.Turn()%n == 0
	case ConditionalBeforeTurns:
		n, ok := ParseNumber(p(0))
		return ok && s.Game != nil && s.Game.Turn() < n
	case ConditionalAfterTurns:
		n, ok := ParseNumber(p(0))
		return ok && s.Game != nil && s.Game.Turn() >= n
	case ConditionalSpeed:
		return s.Game != nil && s.Game.Speed() == p(0)
	case ConditionalDifficulty:
		return s.Game != nil && s.Game.Difficulty() == p(0)
	case ConditionalVictoryEnabled:
		return s.Game != nil && s.Game.IsVictoryEnabled(p(0))
	case ConditionalVictoryDisabled:
		return s.Game != nil && !s.Game.IsVictoryEnabled(p(0))
	case ConditionalReligionEnabled:
		return s.Game != nil && s.Game.IsReligionEnabled()
	case ConditionalReligionDisabled:
		return s.Game != nil && !s.Game.IsReligionEnabled()
	case ConditionalBuildingBuiltByAnybody:
		return s.Game != nil && s.Game.IsBuiltByAnybody(p(0))

	case ConditionalCivFilter:
		return civ != nil && CivMatchesFilter(civ, p(0))
	case ConditionalWar:
		return civ != nil && civ.IsAtWar()
	case ConditionalNotWar:
		return civ != nil && !civ.IsAtWar()
	case ConditionalHappy:
		return civ != nil && civ.Happiness() >= 0
	case ConditionalAboveHappiness:
		n, ok := ParseNumber(p(0))
		return ok && civ != nil && civ.Happiness() > n
	case ConditionalBelowHappiness:
		n, ok := ParseNumber(p(0))
		return ok && civ != nil && civ.Happiness() < n
	case ConditionalBetweenHappiness:
		lo, ok1 := ParseNumber(p(0))
		hi, ok2 := ParseNumber(p(1))
		return ok1 && ok2 && civ != nil && civ.Happiness() >= lo && civ.Happiness() <= hi
	case ConditionalGoldenAge:
		return civ != nil && civ.IsGoldenAge()
	case ConditionalNotGoldenAge:
		return civ != nil && !civ.IsGoldenAge()
	case ConditionalBeforeEra, ConditionalStartingFromEra, ConditionalDuringEra:
		if civ == nil || s.Game == nil {
			return false
		}
		era, ok := s.Game.EraNumber(p(0))
		if !ok {
			return false
		}
		switch m.typ {
		case ConditionalBeforeEra:
			return civ.EraNumber() < era
		case ConditionalStartingFromEra:
			return civ.EraNumber() >= era
		}
		return civ.EraNumber() == era
	case ConditionalTech:
		return civ != nil && civ.HasTech(p(0))
	case ConditionalNoTech:
		return civ != nil && !civ.HasTech(p(0))
	case ConditionalAfterPolicyOrBelief:
		return civ != nil && civ.HasPolicyOrBelief(p(0))
	case ConditionalBeforePolicyOrBelief:
		return civ != nil && !civ.HasPolicyOrBelief(p(0))
	case ConditionalWithResource:
		n, ok := resourceAmount(civ, p(0))
		return ok && n > 0
	case ConditionalWithoutResource:
		n, ok := resourceAmount(civ, p(0))
		return ok && n <= 0
	case ConditionalWhenAboveAmountStatResource:
		limit, ok1 := ParseNumber(p(0))
		n, ok2 := statOrResourceAmount(civ, p(1))
		return ok1 && ok2 && n > limit
	case ConditionalWhenBelowAmountStatResource:
		limit, ok1 := ParseNumber(p(0))
		n, ok2 := statOrResourceAmount(civ, p(1))
		return ok1 && ok2 && n < limit
	case ConditionalWhenBetweenStatResource:
		lo, ok1 := ParseNumber(p(0))
		hi, ok2 := ParseNumber(p(1))
		n, ok3 := statOrResourceAmount(civ, p(2))
		return ok1 && ok2 && ok3 && n >= lo && n <= hi
	case ConditionalBuildingBuilt:
		return civ != nil && civ.BuildingCount(p(0)) > 0

	case ConditionalInThisCity:
		return s.City != nil
	case ConditionalCityFilter:
		return s.City != nil && s.City.MatchesFilter(p(0))
	case ConditionalCityConnected:
		return s.City != nil && s.City.IsConnectedToCapital()
	case ConditionalCityWithBuilding:
		return s.City != nil && s.City.HasBuilding(p(0))
	case ConditionalCityWithoutBuilding:
		return s.City != nil && !s.City.HasBuilding(p(0))
	case ConditionalPopulationFilter:
		n, ok := ParseNumber(p(0))
		return ok && s.City != nil && s.City.PopulationCount(p(1)) >= n
	case ConditionalBelowPopulationFilter:
		n, ok := ParseNumber(p(0))
		return ok && s.City != nil && s.City.PopulationCount(p(1)) < n
	case ConditionalWLTKD:
		return s.City != nil && s.City.IsWeLoveTheKingDay()

	case ConditionalVsCity:
		return s.TheirCombatant != nil && s.TheirCombatant.IsCity()
	case ConditionalVsCombatant, ConditionalVsUnits:
		return s.TheirCombatant != nil && CombatantMatchesFilter(s.TheirCombatant, p(0))
	case ConditionalVsLargerCiv:
		if civ == nil || s.TheirCombatant == nil || s.TheirCombatant.Civ() == nil {
			return false
		}
		return s.TheirCombatant.Civ().CityCount() > civ.CityCount()
	case ConditionalAttacking:
		return s.CombatAction == CombatAttack
	case ConditionalDefending:
		return s.CombatAction == CombatDefend
	case ConditionalAboveHP:
		n, ok := ParseNumber(p(0))
		hp, has := s.health()
		return ok && has && hp > n
	case ConditionalBelowHP:
		n, ok := ParseNumber(p(0))
		hp, has := s.health()
		return ok && has && hp < n
	case ConditionalOurUnit:
		if s.OurCombatant != nil {
			return CombatantMatchesFilter(s.OurCombatant, p(0))
		}
		return s.Unit != nil && s.Unit.MatchesFilter(p(0))
	case ConditionalUnitWithPromotion:
		return s.Unit != nil && s.Unit.HasPromotion(p(0))
	case ConditionalUnitWithoutPromotion:
		return s.Unit != nil && !s.Unit.HasPromotion(p(0))

	case ConditionalInTiles:
		return s.Tile != nil && s.Tile.MatchesFilter(p(0))
	case ConditionalInTilesNot:
		return s.Tile != nil && !s.Tile.MatchesFilter(p(0))
	case ConditionalAdjacentTo:
		return s.Tile != nil && s.Tile.NeighborCount(p(0)) > 0
	case ConditionalNotAdjacentTo:
		return s.Tile != nil && s.Tile.NeighborCount(p(0)) == 0
	case ConditionalFightingInTiles:
		t := s.relevantTile()
		return t != nil && t.MatchesFilter(p(0))
	case ConditionalNeighborTiles:
		lo, ok1 := ParseNumber(p(0))
		hi, ok2 := ParseNumber(p(1))
		if !ok1 || !ok2 || s.Tile == nil {
			return false
		}
		n := s.Tile.NeighborCount(p(2))
		return n >= lo && n <= hi
	}
	return false
}

func resourceAmount(civ Civ, name string) (int, bool) {
	if civ == nil {
		return 0, false
	}
	return civ.ResourceAmount(name)
}

func statOrResourceAmount(civ Civ, name string) (int, bool) {
	if civ == nil {
		return 0, false
	}
	if stat, ok := ParseStat(name); ok {
		return civ.StatAmount(stat), true
	}
	return civ.ResourceAmount(name)
}

// chanceRoll maps the state to a stable value in [0, 10000) so a chance
// conditional answers the same way for the same turn, civ and unique.
func chanceRoll(parent, m *Unique, s State) int {
	h := fnv.New64a()
	if s.Game != nil {
		h.Write([]byte(strconv.Itoa(s.Game.Turn())))
	}
	if civ := s.relevantCiv(); civ != nil {
		h.Write([]byte(civ.NationName()))
	}
	if parent != nil {
		h.Write([]byte(parent.text))
	}
	h.Write([]byte(m.text))
	return int(h.Sum64() % 10000)
}

// CivMatchesFilter resolves a civ filter. Keywords are answered here; other
// leaves fall back to the nation name and then civ.MatchesFilter.
func CivMatchesFilter(civ Civ, filter string) bool {
	if civ == nil {
		return false
	}
	return MultiFilter(filter, func(f string) bool { return civMatchesSingle(civ, f) })
}

func civMatchesSingle(civ Civ, f string) bool {
	switch f {
	case "All":
		return true
	case "Major":
		return !civ.IsCityState() && !civ.IsBarbarian()
	case "City-State", "City-States":
		return civ.IsCityState()
	case "Barbarian", "Barbarians":
		return civ.IsBarbarian()
	case "Human":
		return civ.IsHuman()
	case "AI":
		return !civ.IsHuman()
	}
	return f == civ.NationName() || civ.MatchesFilter(f)
}

// CombatantMatchesFilter resolves a combatant filter. Each leaf matches when
// the combatant itself matches, or when its owning civ does.
func CombatantMatchesFilter(c Combatant, filter string) bool {
	if c == nil {
		return false
	}
	return MultiFilter(filter, func(f string) bool {
		switch f {
		case "All":
			return true
		case "City":
			return c.IsCity()
		}
		if c.MatchesFilter(f) {
			return true
		}
		civ := c.Civ()
		return civ != nil && civMatchesSingle(civ, f)
	})
}

// Multiplied returns u repeated once per multiplier. Multipliers from
// <for every [countable]>, <for every [amount] [countable]> and
// <for every adjacent [tileFilter]> multiply together; unresolvable
// countables are skipped. The count is capped at MaxMultiplier.
//
// Postcondition: 0 <= len(result) <= MaxMultiplier.
func (u *Unique) Multiplied(s State) []*Unique {
	n, _ := u.Multiplier(s)
	out := make([]*Unique, n)
	for i := range out {
		out[i] = u
	}
	return out
}

// Multiplier returns the number of copies Multiplied produces and whether the
// uncapped product exceeded MaxMultiplier.
func (u *Unique) Multiplier(s State) (n int, capped bool) {
	amount := 1
	for _, m := range u.modifiers {
		var factor int
		switch m.typ {
		case ForEveryCountable:
			v, ok := m.countable(0, s)
			if !ok {
				continue
			}
			factor = v
		case ForEveryAmountCountable:
			per, ok := ParseNumber(m.Param(0))
			v, ok2 := m.countable(1, s)
			if !ok || !ok2 {
				continue
			}
			if per <= 0 {
				factor = 0
			} else {
				factor = v / per
			}
		case ForEveryAdjacentTile:
			if s.Tile == nil {
				continue
			}
			factor = s.Tile.NeighborCount(m.Param(0))
		default:
			continue
		}
		if factor <= 0 {
			return 0, false
		}
		if amount > MaxMultiplier/factor {
			amount = MaxMultiplier
			capped = true
			continue
		}
		amount *= factor
	}
	if amount > MaxMultiplier {
		return MaxMultiplier, true
	}
	return amount, capped
}
