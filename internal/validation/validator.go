package validation

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/unique"
)

// Validator checks uniques against one ruleset.
//
// A Validator is immutable after New and safe for concurrent use.
type Validator struct {
	rs        *ruleset.Ruleset
	logger    *zap.Logger
	threshold float64
	tryFix    bool
	// ambiguous returns the catalog candidates a unique's skeleton matched
	// when more than one did.
	ambiguous func(*unique.Unique) []unique.Type

	// untyped holds texts of unrecognized uniques across the ruleset.
	untyped map[string]struct{}
	// filterParams holds every single filter used as a parameter anywhere in
	// the ruleset; an untyped unique named here is a filtering unique.
	filterParams map[string]struct{}
}

// Option configures a Validator.
type Option func(*Validator)

// WithMisspellingThreshold sets the relative distance for suggestions.
func WithMisspellingThreshold(t float64) Option {
	return func(v *Validator) { v.threshold = t }
}

// WithTryFixUnknown controls whether CheckRuleset suggests catalog entries
// for unrecognized uniques.
func WithTryFixUnknown(on bool) Option {
	return func(v *Validator) { v.tryFix = on }
}

// New indexes rs for validation. A nil logger is replaced with a no-op one.
//
// Postcondition: Returns a non-nil Validator; rs may be nil.
func New(rs *ruleset.Ruleset, logger *zap.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &Validator{
		rs:           rs,
		logger:       logger,
		threshold:    DefaultMisspellingThreshold,
		tryFix:       true,
		ambiguous:    (*unique.Unique).Ambiguous,
		untyped:      make(map[string]struct{}),
		filterParams: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(v)
	}
	for _, u := range rs.AllUniques() {
		if !u.HasType() {
			v.untyped[u.Text()] = struct{}{}
			continue
		}
		for _, p := range u.AllParams() {
			for _, f := range unique.AllSingleFilters(p) {
				v.filterParams[f] = struct{}{}
			}
		}
	}
	return v
}

// CheckRuleset validates every unique of the ruleset. Base rulesets get both
// passes; extension mods only the mod-invariant one.
func (v *Validator) CheckRuleset() ErrorList {
	var out ErrorList
	specific := v.rs != nil && v.rs.IsBaseRuleset
	for _, o := range v.rs.Objects() {
		out = append(out, v.CheckObject(o, specific, v.tryFix)...)
	}
	v.logger.Debug("ruleset checked",
		zap.String("ruleset", rulesetName(v.rs)),
		zap.Bool("rulesetSpecific", specific),
		zap.Int("findings", len(out)),
	)
	return out
}

// CheckObject validates every unique on o in authored order.
func (v *Validator) CheckObject(o *ruleset.Object, reportRulesetSpecific, tryFixUnknown bool) ErrorList {
	var out ErrorList
	for _, u := range o.Uniques() {
		out = append(out, v.CheckUnique(u, o, reportRulesetSpecific, tryFixUnknown)...)
	}
	return out
}

// CheckUnique validates one unique. container may be nil, which skips the
// target check.
//
// Checks run in order: recognition, target, parameters, modifiers,
// deprecation. reportRulesetSpecific adds findings that only hold once the
// ruleset is complete, including deprecation notices.
//
// Postcondition: Total over all inputs; never panics.
func (v *Validator) CheckUnique(u *unique.Unique, container *ruleset.Object, reportRulesetSpecific, tryFixUnknown bool) ErrorList {
	var out ErrorList
	if u == nil {
		return out
	}
	prefix := containerPrefix(container) + fmt.Sprintf("%q", u.Text())

	if !u.HasType() {
		return v.checkUntyped(u, container, prefix, tryFixUnknown)
	}
	typ := u.Type()

	if container != nil && container.Target != nil {
		target := container.Target
		timedOnTriggerable := u.IsTimedTriggerable() && target.CanAccept(unique.TargetTriggerable)
		if !typ.CanAcceptTarget(target) && !timedOnTriggerable {
			out.add(SeverityWarning, KindTargetNotAllowed,
				fmt.Sprintf("%s is not allowed on its target type %s", prefix, target), u, container)
		}
	}

	for _, ce := range v.complianceErrors(u, reportRulesetSpecific) {
		out.add(ce.severity, KindParameterInvalid,
			fmt.Sprintf("%s contains parameter %q, which does not fit parameter type %s!", prefix, ce.value, ce.accepted), u, container)
	}

	for _, m := range u.Modifiers() {
		v.checkModifier(&out, u, m, container, prefix, reportRulesetSpecific)
	}

	if reportRulesetSpecific {
		v.addDeprecation(&out, u, container, prefix+" is deprecated")
	}
	return out
}

func (v *Validator) checkUntyped(u *unique.Unique, container *ruleset.Object, prefix string, tryFix bool) ErrorList {
	var out ErrorList
	text := u.Text()

	if amb := v.ambiguous(u); len(amb) > 0 {
		out.add(SeverityError, KindParseAmbiguous,
			fmt.Sprintf("%s matches more than one unique type: %s", prefix, joinTypes(amb)), u, container)
		return out
	}

	if strings.Count(text, "<") != strings.Count(text, ">") {
		out.add(SeverityWarning, KindParseUnrecognized,
			fmt.Sprintf("%s contains mismatched conditional braces!", prefix), u, container)
		return out
	}

	if v.isFilteringUnique(u) {
		return out
	}

	if tryFix {
		if fixes := v.suggestFixes(u, container, prefix); len(fixes) > 0 {
			return fixes
		}
	}

	sev := SeverityWarning
	if len(u.Params()) == 0 {
		sev = SeverityOK
	}
	out.add(sev, KindParseUnrecognized,
		fmt.Sprintf("%s not found in the unique catalog, and is not used as a filtering unique.", prefix), u, container)
	return out
}

// isFilteringUnique reports whether u is a bare tag that some other unique
// uses as a filter value.
func (v *Validator) isFilteringUnique(u *unique.Unique) bool {
	if len(u.Modifiers()) > 0 || len(u.Params()) > 0 {
		return false
	}
	_, ok := v.filterParams[u.Text()]
	return ok
}

func (v *Validator) suggestFixes(u *unique.Unique, container *ruleset.Object, prefix string) ErrorList {
	var out ErrorList
	placeholder := u.Placeholder()
	similar := similarTypes(placeholder, v.threshold, func(t unique.Type) bool { return !t.IsModifier() })
	if len(similar) == 0 {
		return out
	}
	for _, t := range similar {
		if t.Skeleton() == placeholder {
			out.add(SeverityOK, KindParseUnrecognized,
				fmt.Sprintf("%s looks like it should be fine, but for some reason isn't recognized.", prefix), u, container)
			return out
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s looks like it may be a misspelling of:", prefix)
	for _, t := range similar {
		fmt.Fprintf(&b, "\n\t%q", t.Text())
		for _, m := range u.Modifiers() {
			fmt.Fprintf(&b, " <%s>", m.Text())
		}
		if t.IsDeprecated() {
			b.WriteString(" (Deprecated)")
		}
	}
	out.add(SeverityOK, KindParseUnrecognized, b.String(), u, container)
	return out
}

func (v *Validator) checkModifier(out *ErrorList, parent, m *unique.Unique, container *ruleset.Object, prefix string, reportRulesetSpecific bool) {
	if parent.Type().HasFlag(unique.FlagNoConditionals) {
		out.add(SeverityError, KindConditionalInvalid,
			fmt.Sprintf("%s contains the conditional %q, but the unique does not accept conditionals!", prefix, m.Text()), parent, container)
		return
	}

	if !m.HasType() {
		if amb := v.ambiguous(m); len(amb) > 0 {
			out.add(SeverityError, KindConditionalInvalid,
				fmt.Sprintf("%s contains the conditional %q, which matches more than one type: %s", prefix, m.Text(), joinTypes(amb)), parent, container)
			return
		}
		msg := fmt.Sprintf("%s contains the conditional %q, which is of an unknown type!", prefix, m.Text())
		if similar := similarTypes(m.Placeholder(), v.threshold, isModifierType); len(similar) > 0 {
			quoted := make([]string, len(similar))
			for i, t := range similar {
				quoted[i] = fmt.Sprintf("%q", t.Text())
			}
			msg += " May be a misspelling of " + strings.Join(quoted, ", or ")
		}
		out.add(SeverityWarning, KindConditionalInvalid, msg, parent, container)
		return
	}

	mt := m.Type()
	if mt.CanAcceptTarget(unique.TargetUnitActionModifier) && !acceptsUnitAction(parent.Type()) {
		out.add(SeverityWarning, KindConditionalInvalid,
			fmt.Sprintf("%s contains the conditional %q, which as a UnitActionModifier is only allowed on UnitAction uniques.", prefix, m.Text()), parent, container)
	}

	for _, ce := range v.complianceErrors(m, reportRulesetSpecific) {
		out.add(ce.severity, KindConditionalInvalid,
			fmt.Sprintf("%s contains modifier %q. This contains the parameter %q which does not fit parameter type %s!", prefix, m.Text(), ce.value, ce.accepted), parent, container)
	}

	if reportRulesetSpecific {
		v.addDeprecation(out, m, container, fmt.Sprintf("%s contains modifier %q which is deprecated", prefix, m.Text()))
	}
}

func isModifierType(t unique.Type) bool {
	return t.IsModifier() || t.IsConditional()
}

func acceptsUnitAction(t unique.Type) bool {
	for _, tg := range t.Targets() {
		if unique.TargetUnitAction.CanAccept(tg) {
			return true
		}
	}
	return false
}

func (v *Validator) addDeprecation(out *ErrorList, u *unique.Unique, container *ruleset.Object, lead string) {
	dep, ok := u.Deprecation()
	if !ok {
		return
	}
	msg := lead + " " + dep.Message
	if repl := u.ReplacementTexts(); len(repl) > 0 {
		msg += `, replace with "` + strings.Join(repl, `", "`) + `"`
	}
	sev := SeverityWarning
	if dep.Level == unique.DeprecationWarning {
		sev = SeverityOK
	}
	out.add(sev, KindDeprecated, msg, u, container)
}

type complianceError struct {
	value    string
	accepted string
	severity Severity
}

// complianceErrors returns one entry per parameter that no accepted type
// admits, graded by the least severe failure.
func (v *Validator) complianceErrors(u *unique.Unique, reportRulesetSpecific bool) []complianceError {
	slots := u.Type().ParamTypes()
	params := u.Params()
	if len(slots) != len(params) {
		v.logger.Error("parameter count does not match catalog entry",
			zap.String("unique", u.Text()),
			zap.Stringer("type", u.Type()),
		)
		return nil
	}

	var out []complianceError
	for i, value := range params {
		least := unique.ParamRulesetInvariant
		valid := false
		for _, pt := range slots[i] {
			sev := pt.ErrorSeverity(value, v.rs)
			if sev == unique.ParamValid {
				valid = true
				break
			}
			if sev < least {
				least = sev
			}
		}
		if valid {
			continue
		}
		if least == unique.ParamPossibleFilteringUnique && v.isKnownFilter(value) {
			continue
		}
		if least != unique.ParamRulesetInvariant && !reportRulesetSpecific {
			continue
		}
		out = append(out, complianceError{value: value, accepted: joinParamTypes(slots[i]), severity: severityOf(least)})
	}
	return out
}

// isKnownFilter reports whether every single filter in value is itself a
// unique text somewhere in the ruleset.
func (v *Validator) isKnownFilter(value string) bool {
	filters := unique.AllSingleFilters(value)
	if len(filters) == 0 {
		return false
	}
	for _, f := range filters {
		if _, ok := v.untyped[f]; !ok {
			return false
		}
	}
	return true
}

func severityOf(p unique.ParamSeverity) Severity {
	if p == unique.ParamRulesetInvariant {
		return SeverityError
	}
	return SeverityWarning
}

func containerPrefix(o *ruleset.Object) string {
	if o == nil {
		return "The unique "
	}
	return fmt.Sprintf("(%s) %s's unique ", o.Target, o.Name)
}

func joinTypes(ts []unique.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func joinParamTypes(ps []unique.ParamType) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, " or ")
}

func rulesetName(rs *ruleset.Ruleset) string {
	if rs == nil {
		return ""
	}
	return rs.Name
}
