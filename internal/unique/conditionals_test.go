package unique_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/uniques/internal/unique"
)

func TestConditionals_VsCityStates(t *testing.T) {
	u := unique.Parse("[+25]% Strength <vs [City-States]>", unique.TargetUnit, "Warrior")
	ours := &fakeCombatant{civ: &fakeCiv{nation: "Rome"}}

	cityState := &fakeCombatant{civ: &fakeCiv{nation: "Geneva", cityState: true}}
	assert.True(t, unique.ConditionalsApply(u, unique.ForCombat(nil, ours, cityState, nil, unique.CombatAttack)))

	major := &fakeCombatant{civ: &fakeCiv{nation: "Greece"}}
	assert.False(t, unique.ConditionalsApply(u, unique.ForCombat(nil, ours, major, nil, unique.CombatAttack)))

	assert.False(t, unique.ConditionalsApply(u, unique.State{}), "no opponent means the conditional cannot hold")
}

func TestConditionals_NoModifiersAlwaysApply(t *testing.T) {
	u := unique.Parse("[+1] Movement", unique.TargetUnit, "")
	assert.True(t, unique.ConditionalsApply(u, unique.State{}))
}

func TestConditionals_UnknownModifierNeverApplies(t *testing.T) {
	u := unique.Parse("[+1] Movement <when the moon is full>", unique.TargetUnit, "")
	assert.False(t, unique.ConditionalsApply(u, unique.ForCiv(&fakeGame{}, &fakeCiv{})))
	assert.True(t, unique.ConditionalsApply(u, unique.IgnoreConditionals()))
}

func TestConditionals_OtherModifiersNeverFilter(t *testing.T) {
	for _, text := range []string{
		"Gain [10] [Gold] <upon founding a city>",
		"[+1] Movement <hidden from users>",
		"Founds a new city <by consuming this unit>",
		"[+2 Gold] <for every [Cities]>",
	} {
		u := unique.Parse(text, unique.TargetGlobal, "")
		require.True(t, u.HasType(), text)
		assert.True(t, unique.ConditionalsApply(u, unique.State{}), text)
	}
}

func TestConditionals_CivState(t *testing.T) {
	game := &fakeGame{turn: 40, speed: "Quick", difficulty: "Prince", eras: map[string]int{"Ancient era": 0, "Classical era": 1, "Medieval era": 2}, victories: set("Domination")}
	civ := &fakeCiv{
		nation:    "Rome",
		atWar:     true,
		happiness: 5,
		golden:    true,
		era:       1,
		techs:     set("Bronze Working"),
		policies:  set("Tradition"),
		resources: map[string]int{"Iron": 2, "Horses": 0},
		stats:     map[unique.Stat]int{unique.StatGold: 150},
		buildings: map[string]int{"Monument": 1},
	}
	s := unique.ForCiv(game, civ)

	cases := map[string]bool{
		"when at war":                          true,
		"when not at war":                      false,
		"while the empire is happy":            true,
		"when above [4] Happiness":             true,
		"when below [5] Happiness":             false,
		"when between [0] and [5] Happiness":   true,
		"during a Golden Age":                  true,
		"when not in a Golden Age":             false,
		"before the [Medieval era]":            true,
		"starting from the [Classical era]":    true,
		"during the [Ancient era]":             false,
		"before the [Unknown era]":             false,
		"after discovering [Bronze Working]":   true,
		"before discovering [Bronze Working]":  false,
		"after adopting [Tradition]":           true,
		"before adopting [Liberty]":            true,
		"with [Iron]":                          true,
		"with [Horses]":                        false,
		"without [Horses]":                     true,
		"with [Coal]":                          false,
		"when above [100] [Gold]":              true,
		"when below [2] [Iron]":                false,
		"when between [1] and [3] [Iron]":      true,
		"if [Monument] is constructed":         true,
		"if [Palace] is constructed":           false,
		"for [Rome] Civilizations":             true,
		"for [City-States] Civilizations":      false,
		"for [non-[Barbarians]] Civilizations": true,
		"before turn number [50]":              true,
		"after turn number [50]":               false,
		"every [10] turns":                     true,
		"every [3] turns":                      false,
		"on [Quick] game speed":                true,
		"on [Deity] difficulty":                false,
		"when [Domination] Victory is enabled": true,
		"when [Science] Victory is disabled":   true,
		"when religion is enabled":             false,
	}
	for text, want := range cases {
		u := unique.Parse("[+1 Gold] <"+text+">", unique.TargetGlobal, "")
		require.True(t, u.Modifiers()[0].HasType(), text)
		assert.Equal(t, want, unique.ConditionalsApply(u, s), text)
	}
}

func TestConditionals_CityState(t *testing.T) {
	city := &fakeCity{
		filters:    set("Coastal"),
		buildings:  set("Library"),
		population: map[string]int{"Population": 6},
		connected:  true,
		wltkd:      true,
	}
	s := unique.ForCity(&fakeGame{}, &fakeCiv{}, city)
	cases := map[string]bool{
		"in this city":                              true,
		"in [Coastal] cities":                       true,
		"in [Capital] cities":                       false,
		"in cities connected to the capital":        true,
		"in cities with a [Library]":                true,
		"in cities without a [Library]":             false,
		"in cities with at least [5] [Population]":  true,
		"in cities with less than [5] [Population]": false,
		"during We Love The King Day":               true,
	}
	for text, want := range cases {
		u := unique.Parse("[+1 Gold] <"+text+">", unique.TargetGlobal, "")
		assert.Equal(t, want, unique.ConditionalsApply(u, s), text)
	}
	assert.False(t, unique.ConditionalsApply(unique.Parse("[+1 Gold] <in this city>", nil, ""), unique.ForCiv(nil, &fakeCiv{})))
}

func TestConditionals_Combat(t *testing.T) {
	ourCiv := &fakeCiv{cities: 2}
	ours := &fakeCombatant{civ: ourCiv, health: 60, filters: set("Melee")}
	theirs := &fakeCombatant{civ: &fakeCiv{cities: 5}, city: true}
	tile := &fakeTile{filters: set("Hill")}
	s := unique.ForCombat(nil, ours, theirs, tile, unique.CombatAttack)

	cases := map[string]bool{
		"vs cities":                                                         true,
		"vs [City]":                                                         true,
		"vs [Mounted]":                                                      false,
		"when attacking":                                                    true,
		"when defending":                                                    false,
		"when above [50] HP":                                                true,
		"when below [50] HP":                                                false,
		"for [Melee] units":                                                 true,
		"when fighting in [Hill] tiles":                                     true,
		"when fighting in [Marsh] tiles":                                    false,
		"when fighting units from a Civilization with more Cities than you": true,
	}
	for text, want := range cases {
		u := unique.Parse("[+10]% Strength <"+text+">", unique.TargetUnit, "")
		assert.Equal(t, want, unique.ConditionalsApply(u, s), text)
	}
}

func TestConditionals_UnitAndTile(t *testing.T) {
	unit := &fakeUnit{promotions: set("Shock I"), health: 100, filters: set("Land")}
	tile := &fakeTile{filters: set("Forest"), neighbors: map[string]int{"River": 2}}
	s := unique.ForUnit(&fakeGame{}, &fakeCiv{}, unit, tile)

	cases := map[string]bool{
		"for units with [Shock I]":                  true,
		"for units without [Shock I]":               false,
		"for [Land] units":                          true,
		"in [Forest] tiles":                         true,
		"in tiles without [Forest]":                 false,
		"in tiles adjacent to [River]":              true,
		"in tiles not adjacent to [River]":          false,
		"with [1] to [2] neighboring [River] tiles": true,
		"with [3] to [6] neighboring [River] tiles": false,
	}
	for text, want := range cases {
		u := unique.Parse("[+1] Movement <"+text+">", unique.TargetUnit, "")
		assert.Equal(t, want, unique.ConditionalsApply(u, s), text)
	}
}

func TestConditionals_ValidAmountsEvaluate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int32().Draw(t, "amount")
		text := fmt.Sprintf("when above [%d] HP", n)
		m := unique.ParseConditional(text, nil, "")
		require.Len(t, m.Params(), 1)
		assert.True(t, unique.ParamNumber.IsValid(m.Param(0), nil), text)

		u := unique.Parse("[+10]% Strength <"+text+">", unique.TargetUnit, "")
		unit := &fakeUnit{health: int(n) + 1}
		assert.True(t, unique.ConditionalsApply(u, unique.ForUnit(&fakeGame{}, &fakeCiv{}, unit, &fakeTile{})), text)
	})
}

func TestConditionals_DecimalAmountNeverValidates(t *testing.T) {
	m := unique.ParseConditional("when above [2.5] HP", nil, "")
	assert.Equal(t, unique.ConditionalAboveHP, m.Type())
	assert.False(t, unique.ParamNumber.IsValid(m.Param(0), nil))
}

func TestConditionals_ChanceIsDeterministic(t *testing.T) {
	s := unique.ForCiv(&fakeGame{turn: 7}, &fakeCiv{nation: "Rome"})
	always := unique.Parse("Gain [5] [Gold] <with [100]% chance>", unique.TargetGlobal, "")
	never := unique.Parse("Gain [5] [Gold] <with [0]% chance>", unique.TargetGlobal, "")
	half := unique.Parse("Gain [5] [Gold] <with [50]% chance>", unique.TargetGlobal, "")

	assert.True(t, unique.ConditionalsApply(always, s))
	assert.False(t, unique.ConditionalsApply(never, s))
	first := unique.ConditionalsApply(half, s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, unique.ConditionalsApply(half, s))
	}
}

var conditionalPool = []string{
	"when at war",
	"when not at war",
	"during a Golden Age",
	"when above [0] Happiness",
	"when below [3] Happiness",
	"with [Iron]",
	"after discovering [Writing]",
	"for [Major] Civilizations",
	"before turn number [20]",
	"upon founding a city",
	"hidden from users",
	"when the stars align",
}

func randomState(t *rapid.T) unique.State {
	civ := &fakeCiv{
		nation:    "Rome",
		atWar:     rapid.Bool().Draw(t, "atWar"),
		golden:    rapid.Bool().Draw(t, "golden"),
		happiness: rapid.IntRange(-10, 10).Draw(t, "happiness"),
		techs:     map[string]bool{"Writing": rapid.Bool().Draw(t, "writing")},
		resources: map[string]int{"Iron": rapid.IntRange(0, 3).Draw(t, "iron")},
		cityState: rapid.Bool().Draw(t, "cityState"),
	}
	return unique.ForCiv(&fakeGame{turn: rapid.IntRange(0, 40).Draw(t, "turn")}, civ)
}

func randomUnique(t *rapid.T) *unique.Unique {
	n := rapid.IntRange(0, 4).Draw(t, "modifierCount")
	text := "[+10]% Strength"
	for i := 0; i < n; i++ {
		text += " <" + rapid.SampledFrom(conditionalPool).Draw(t, "modifier") + ">"
	}
	return unique.Parse(text, unique.TargetGlobal, "")
}

func TestPropertyConjunctionLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := randomUnique(t)
		s := randomState(t)
		want := true
		for _, m := range u.Modifiers() {
			want = want && unique.ConditionalApplies(u, m, s)
		}
		assert.Equal(t, want, unique.ConditionalsApply(u, s))
		if len(u.Modifiers()) == 0 {
			assert.True(t, unique.ConditionalsApply(u, s))
		}
	})
}

func TestPropertyIgnoreOverride(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := randomUnique(t)
		s := randomState(t)
		s.IgnoreConditionals = true
		assert.True(t, unique.ConditionalsApply(u, s))
	})
}

func TestMultiplied(t *testing.T) {
	civ := &fakeCiv{cities: 3, units: map[string]int{"Melee": 4}, resources: map[string]int{"Iron": 7}}
	s := unique.ForCiv(&fakeGame{turn: 12}, civ)

	cases := map[string]int{
		"[+1 Gold]":                                           1,
		"[+1 Gold] <for every [Cities]>":                      3,
		"[+1 Gold] <for every [2] [Iron]>":                    3,
		"[+1 Gold] <for every [Cities]> <for every [Cities]>": 9,
		"[+1 Gold] <for every [[Cities] * 2]>":                6,
		"[+1 Gold] <for every [[Melee] Units]>":               4,
		"[+1 Gold] <for every [turns]>":                       12,
		"[+1 Gold] <for every [Coal]>":                        1,
		"[+1 Gold] <for every [0]>":                           0,
		"[+1 Gold] <for every [-3]>":                          0,
	}
	for text, want := range cases {
		u := unique.Parse(text, unique.TargetGlobal, "")
		got := u.Multiplied(s)
		assert.Len(t, got, want, text)
		for _, c := range got {
			assert.Same(t, u, c)
		}
	}
}

func TestMultiplied_AdjacentTiles(t *testing.T) {
	tile := &fakeTile{neighbors: map[string]int{"Mountain": 2}}
	u := unique.Parse("[+1 Production] <for every adjacent [Mountain]>", unique.TargetImprovement, "")
	assert.Len(t, u.Multiplied(unique.State{Tile: tile}), 2)
	assert.Len(t, u.Multiplied(unique.State{}), 1)
}

func TestMultiplied_CappedAtMax(t *testing.T) {
	u := unique.Parse("[+1 Gold] <for every [Cities]>", unique.TargetGlobal, "")

	n, capped := u.Multiplier(unique.ForCiv(nil, &fakeCiv{cities: 15000}))
	assert.Equal(t, unique.MaxMultiplier, n)
	assert.True(t, capped)
	assert.Len(t, u.Multiplied(unique.ForCiv(nil, &fakeCiv{cities: 15000})), unique.MaxMultiplier)

	n, capped = u.Multiplier(unique.ForCiv(nil, &fakeCiv{cities: 12}))
	assert.Equal(t, 12, n)
	assert.False(t, capped)
}

func TestPropertyMultiplied_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		civ := &fakeCiv{cities: rapid.IntRange(-5, 50).Draw(t, "cities")}
		u := unique.Parse("[+1 Gold] <for every [Cities]>", unique.TargetGlobal, "")
		n := len(u.Multiplied(unique.ForCiv(nil, civ)))
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, unique.MaxMultiplier)
	})
}

func TestMultiFilter(t *testing.T) {
	match := func(f string) bool { return f == "A" || f == "B" }
	assert.True(t, unique.MultiFilter("A OR C", match))
	assert.False(t, unique.MultiFilter("C OR D", match))
	assert.True(t, unique.MultiFilter("{A} {B}", match))
	assert.False(t, unique.MultiFilter("{A} {C}", match))
	assert.True(t, unique.MultiFilter("non-[C]", match))
	assert.False(t, unique.MultiFilter("non-[A]", match))
	assert.True(t, unique.MultiFilter("{A OR C} {non-[D]}", match))
	assert.Equal(t, []string{"A", "C", "D"}, unique.AllSingleFilters("{A OR C} {non-[D]}"))
}
