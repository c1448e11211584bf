package unique_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/uniques/internal/unique"
)

func TestParse_StrengthVsCityStates(t *testing.T) {
	u := unique.Parse("[+25]% Strength <vs [City-States]>", unique.TargetUnit, "Warrior")
	require.True(t, u.HasType())
	assert.Equal(t, unique.Strength, u.Type())
	assert.True(t, u.Type().IsCombatModifier())
	assert.Equal(t, []string{"+25"}, u.Params())
	require.Len(t, u.Modifiers(), 1)
	m := u.Modifiers()[0]
	assert.Equal(t, unique.ConditionalVsCombatant, m.Type())
	assert.Equal(t, "City-States", m.Param(0))
	assert.True(t, m.IsConditional())
	assert.Equal(t, "Warrior", u.SourceName())
	assert.Equal(t, unique.TargetUnit, u.SourceTarget())
	assert.Equal(t, "[+25]% Strength <vs [City-States]>", u.Text())
}

func TestParse_OrStaysInsideParam(t *testing.T) {
	u := unique.Parse("[+10]% Strength <for [Melee OR Ranged] units>", nil, "")
	require.Len(t, u.Modifiers(), 1)
	assert.Equal(t, []string{"Melee OR Ranged"}, u.Modifiers()[0].Params())
}

func TestParse_Unrecognized(t *testing.T) {
	u := unique.Parse("Makes everyone happy forever", unique.TargetBuilding, "Circus")
	assert.False(t, u.HasType())
	assert.Equal(t, unique.None, u.Type())
	assert.Empty(t, u.Ambiguous())
}

func TestParse_RoleConstrainsMatching(t *testing.T) {
	// A conditional template is not a leading unique, and vice versa.
	assert.False(t, unique.Parse("when at war", nil, "").HasType())
	assert.True(t, unique.ParseConditional("when at war", nil, "").HasType())

	u := unique.Parse("[+10]% Strength <[+1] Movement>", nil, "")
	require.Len(t, u.Modifiers(), 1)
	assert.False(t, u.Modifiers()[0].HasType())
}

func TestParse_ModifiersInSourceOrder(t *testing.T) {
	u := unique.Parse("[+15]% Strength <when attacking> <for [Mounted] units> <when at war>", nil, "")
	require.Len(t, u.Modifiers(), 3)
	assert.Equal(t, unique.ConditionalAttacking, u.Modifiers()[0].Type())
	assert.Equal(t, unique.ConditionalOurUnit, u.Modifiers()[1].Type())
	assert.Equal(t, unique.ConditionalWar, u.Modifiers()[2].Type())
	assert.Equal(t, []string{"+15", "Mounted"}, u.AllParams())
	assert.Equal(t, "[+15]% Strength", u.Head())
}

func TestUnique_MetaPredicates(t *testing.T) {
	timed := unique.Parse("[+20]% Strength <for [3] turns>", unique.TargetGlobal, "")
	assert.True(t, timed.IsTimedTriggerable())
	assert.True(t, timed.IsTriggerable())

	hidden := unique.Parse("[+1] Movement <hidden from users>", unique.TargetUnit, "")
	assert.True(t, hidden.IsHiddenToUsers())
	assert.Equal(t, "[+1] Movement", hidden.DisplayText())

	comment := unique.Parse("Comment [Only for testing]", unique.TargetBuilding, "")
	assert.True(t, comment.IsHiddenToUsers())

	local := unique.Parse("[+2 Gold] [in this city]", unique.TargetBuilding, "Market")
	assert.True(t, local.IsLocalEffect())
	assert.False(t, unique.Parse("[+2 Gold] [in all cities]", unique.TargetBuilding, "").IsLocalEffect())

	trig := unique.Parse("Free [Settler] appears <upon founding a city>", unique.TargetPolicy, "")
	assert.True(t, trig.HasTriggerConditional())
	assert.True(t, trig.IsTriggerable())

	speed := unique.Parse("Gain [50] [Gold] <adjusted by game speed>", unique.TargetTech, "")
	assert.True(t, speed.IsModifiedByGameSpeed())
}

func TestUnique_ParamOutOfRange(t *testing.T) {
	u := unique.Parse("Unbuildable", unique.TargetBuilding, "")
	assert.Equal(t, "", u.Param(0))
	assert.Equal(t, "", u.Param(-1))
}

func TestReplacementTexts(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Unhappy", "[-1] Happiness"},
		{"[25]% Bonus vs [City-States]", "+[25]% Strength vs [City-States]"},
		{"[-10]% Bonus vs [Mounted]", "+[-10]% Strength vs [Mounted]"},
		{"+[25]% Strength vs [City-States]", "[+25]% Strength <vs [City-States]>"},
		{"+[-10]% Strength vs [Mounted]", "[-10]% Strength <vs [Mounted]>"},
	}
	for _, tc := range cases {
		u := unique.Parse(tc.text, unique.TargetUnit, "")
		require.True(t, u.IsDeprecated(), tc.text)
		assert.Equal(t, []string{tc.want}, u.ReplacementTexts(), tc.text)
	}

	cond := unique.ParseConditional("vs [Mounted] units", nil, "")
	require.True(t, cond.IsDeprecated())
	assert.Equal(t, []string{"vs [Mounted]"}, cond.ReplacementTexts())

	assert.Nil(t, unique.Parse("[+1] Movement", nil, "").ReplacementTexts())
}
