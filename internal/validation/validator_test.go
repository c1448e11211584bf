package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/unique"
	"github.com/cory-johannsen/uniques/internal/validation"
)

func loadRuleset(t testing.TB, base bool, files map[string]string) *ruleset.Ruleset {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	if base {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ModOptions.json"), []byte(`{"isBaseRuleset": true}`), 0o644))
	}
	rs, err := ruleset.Load(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	return rs
}

func check(t testing.TB, v *validation.Validator, text string, target *unique.Target, specific bool) validation.ErrorList {
	t.Helper()
	o := ruleset.NewObject("Thing", "Test.json", target, []string{text})
	return v.CheckUnique(o.Uniques()[0], o, specific, true)
}

func TestCheckRuleset_CleanBaseRuleset(t *testing.T) {
	rs := loadRuleset(t, true, map[string]string{
		"Units.json":     `[{"name": "Warrior", "uniques": ["[+10]% Strength <vs [City-States]>", "Mounted"]}]`,
		"Buildings.json": `[{"name": "Stable", "uniques": ["[+10]% Strength <for [Mounted] units>"]}]`,
		"Policies.json":  `[{"name": "Tradition", "uniques": ["Free [Warrior] appears <upon founding a city>"]}]`,
	})
	errs := validation.New(rs, zaptest.NewLogger(t)).CheckRuleset()
	assert.Empty(t, errs)
}

func TestCheckUnique_Unrecognized(t *testing.T) {
	v := validation.New(nil, nil)

	errs := check(t, v, "Makes everyone happy forever", unique.TargetBuilding, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParseUnrecognized, errs[0].Kind)
	assert.Equal(t, validation.SeverityOK, errs[0].Severity)

	errs = check(t, v, "Gains [5] glory points", unique.TargetBuilding, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity)

	errs = check(t, v, "[+10]% Strength <when at war", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParseUnrecognized, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "mismatched conditional braces")
}

func TestCheckUnique_MisspellingSuggestion(t *testing.T) {
	v := validation.New(nil, nil)
	errs := check(t, v, "[+10]% Strngth <when at war>", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParseUnrecognized, errs[0].Kind)
	assert.Equal(t, validation.SeverityOK, errs[0].Severity)
	assert.Contains(t, errs[0].Message, `"[relativeAmount]% Strength" <when at war>`)

	o := ruleset.NewObject("Thing", "Test.json", unique.TargetUnit, []string{"[+10]% Strngth"})
	errs = v.CheckUnique(o.Uniques()[0], o, false, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity, "no suggestions without tryFix")
}

func TestCheckUnique_Target(t *testing.T) {
	v := validation.New(nil, nil)

	errs := check(t, v, "Unbuildable", unique.TargetTech, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindTargetNotAllowed, errs[0].Kind)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity)
	assert.Equal(t, "Thing", errs[0].Object.Name)

	assert.Empty(t, check(t, v, "Unbuildable", unique.TargetBuilding, false))
	assert.Empty(t, check(t, v, "Cannot attack <for [3] turns>", unique.TargetPolicy, false),
		"timed uniques are allowed on triggerable targets")
	assert.NotEmpty(t, check(t, v, "Cannot attack", unique.TargetPolicy, false))
}

func TestCheckUnique_Parameters(t *testing.T) {
	v := validation.New(nil, nil)

	errs := check(t, v, "[abc]% Strength", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParameterInvalid, errs[0].Kind)
	assert.Equal(t, validation.SeverityError, errs[0].Severity)
	assert.Contains(t, errs[0].Message, "relativeAmount")

	// unknown references only matter once the ruleset is complete
	assert.Empty(t, check(t, v, "Free [Giant Robot] appears", unique.TargetPolicy, false))
	errs = check(t, v, "Free [Giant Robot] appears", unique.TargetPolicy, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParameterInvalid, errs[0].Kind)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity)
}

func TestCheckUnique_NonIntegerAmountInConditional(t *testing.T) {
	v := validation.New(nil, nil)

	for _, amount := range []string{"2.5", "99999999999"} {
		errs := check(t, v, "[+10]% Strength <when above ["+amount+"] HP>", unique.TargetUnit, true)
		require.Len(t, errs, 1, amount)
		assert.Equal(t, validation.KindConditionalInvalid, errs[0].Kind)
		assert.Equal(t, validation.SeverityError, errs[0].Severity)
		assert.Contains(t, errs[0].Message, amount)
	}
	assert.Empty(t, check(t, v, "[+10]% Strength <when above [50] HP>", unique.TargetUnit, true))
}

func TestCheckUnique_Modifiers(t *testing.T) {
	v := validation.New(nil, nil)

	errs := check(t, v, "[+10]% Strength <when at wr>", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindConditionalInvalid, errs[0].Kind)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity)
	assert.Contains(t, errs[0].Message, `May be a misspelling of "when at war"`)

	errs = check(t, v, "Comment [hi] <when at war>", unique.TargetBuilding, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindConditionalInvalid, errs[0].Kind)
	assert.Equal(t, validation.SeverityError, errs[0].Severity)

	errs = check(t, v, "[+10]% Strength <with [abc]% chance>", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindConditionalInvalid, errs[0].Kind)
	assert.Equal(t, validation.SeverityError, errs[0].Severity)

	errs = check(t, v, "[+1] Movement <by consuming this unit>", unique.TargetUnit, false)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "UnitActionModifier")
	assert.Empty(t, check(t, v, "Founds a new city <by consuming this unit>", unique.TargetUnit, false))
}

func TestCheckUnique_Deprecation(t *testing.T) {
	v := validation.New(nil, nil)

	assert.Empty(t, check(t, v, "Unhappy", unique.TargetBuilding, false), "deprecation is mod-specific")

	errs := check(t, v, "Unhappy", unique.TargetBuilding, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindDeprecated, errs[0].Kind)
	assert.Equal(t, validation.SeverityWarning, errs[0].Severity)
	assert.Contains(t, errs[0].Message, `replace with "[-1] Happiness"`)

	errs = check(t, v, "+[25]% Strength vs [City-States]", unique.TargetUnit, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.SeverityOK, errs[0].Severity, "warning-level deprecations are informational")

	errs = check(t, v, "[+10]% Strength <vs [Melee] units>", unique.TargetUnit, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindDeprecated, errs[0].Kind)
	assert.Contains(t, errs[0].Message, `contains modifier "vs [Melee] units"`)
}

func TestCheckRuleset_ExtensionModSkipsRulesetSpecific(t *testing.T) {
	files := map[string]string{
		"Policies.json": `[{"name": "Tradition", "uniques": ["Free [Giant Robot] appears"]}]`,
	}
	mod := loadRuleset(t, false, files)
	assert.Empty(t, validation.New(mod, nil).CheckRuleset())

	base := loadRuleset(t, true, files)
	errs := validation.New(base, nil).CheckRuleset()
	require.Len(t, errs, 1)
	assert.Equal(t, validation.KindParameterInvalid, errs[0].Kind)
}

func TestCheckUnique_NilInputs(t *testing.T) {
	v := validation.New(nil, nil)
	assert.Empty(t, v.CheckUnique(nil, nil, true, true))
	assert.Empty(t, v.CheckObject(nil, true, true))
	assert.Empty(t, v.CheckRuleset())
}

func TestCheckUnique_NeverPanics(t *testing.T) {
	v := validation.New(nil, nil)
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.OneOf(
			rapid.String(),
			rapid.StringMatching(`[\[\]<> a-zA-Z0-9+%-]{0,40}`),
		).Draw(rt, "text")
		specific := rapid.Bool().Draw(rt, "specific")
		target := rapid.SampledFrom(unique.AllTargets()).Draw(rt, "target")
		o := ruleset.NewObject("X", "Test.json", target, []string{text})
		errs := v.CheckUnique(o.Uniques()[0], o, specific, true)
		for _, e := range errs {
			assert.NotEmpty(rt, e.Message)
		}
		_ = v.CheckUnique(unique.Parse(text, nil, ""), nil, specific, true)
	})
}

func TestRelativeDistance(t *testing.T) {
	assert.Equal(t, 0.0, validation.RelativeDistance("", ""))
	assert.Equal(t, 0.0, validation.RelativeDistance("abc", "abc"))
	assert.InDelta(t, 2.0/21.0, validation.RelativeDistance("when at wr", "when at war"), 1e-9)
	assert.Equal(t, validation.RelativeDistance("ab", "xyz"), validation.RelativeDistance("xyz", "ab"))
}

func TestErrorList(t *testing.T) {
	l := validation.ErrorList{
		{Severity: validation.SeverityOK, Kind: validation.KindDeprecated},
		{Severity: validation.SeverityError, Kind: validation.KindParameterInvalid},
		{Severity: validation.SeverityWarning, Kind: validation.KindParameterInvalid},
	}
	assert.Equal(t, validation.SeverityError, l.MaxSeverity())
	assert.True(t, l.HasError())
	assert.Len(t, l.AtLeast(validation.SeverityWarning), 2)
	assert.Len(t, l.OfKind(validation.KindParameterInvalid), 2)
	assert.Equal(t, map[validation.Severity]int{
		validation.SeverityOK: 1, validation.SeverityWarning: 1, validation.SeverityError: 1,
	}, l.CountBySeverity())
	assert.Equal(t, validation.SeverityOK, validation.ErrorList(nil).MaxSeverity())

	sev, ok := validation.ParseSeverity("Warning")
	assert.True(t, ok)
	assert.Equal(t, validation.SeverityWarning, sev)
	_, ok = validation.ParseSeverity("Fatal")
	assert.False(t, ok)
	assert.Equal(t, "DeprecationChainUnresolved", validation.KindDeprecationChainUnresolved.String())
}
